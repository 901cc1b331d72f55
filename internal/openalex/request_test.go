// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "testing"

func TestRequestValues(t *testing.T) {
	req := Request{
		ISSNs:    []string{"1111-1111", "2222-2222"},
		Search:   `"machine learning" OR "deep learning"`,
		YearFrom: "2015",
		YearTo:   "2020",
		Sort:     SortCitedByDesc,
		Page:     3,
		PerPage:  40,
		APIKey:   "secret",
		Mailto:   "user@example.com",
	}

	params := req.Values()

	if got := params.Get("page"); got != "3" {
		t.Errorf("page = %q, want %q", got, "3")
	}
	if got := params.Get("per_page"); got != "40" {
		t.Errorf("per_page = %q, want %q", got, "40")
	}
	if got := params.Get("search"); got != `"machine learning" OR "deep learning"` {
		t.Errorf("search = %q", got)
	}
	wantFilter := "primary_location.source.issn:1111-1111|2222-2222," +
		"from_publication_date:2015-01-01,to_publication_date:2020-12-31"
	if got := params.Get("filter"); got != wantFilter {
		t.Errorf("filter = %q, want %q", got, wantFilter)
	}
	if got := params.Get("sort"); got != SortCitedByDesc {
		t.Errorf("sort = %q, want %q", got, SortCitedByDesc)
	}
	if got := params.Get("api_key"); got != "secret" {
		t.Errorf("api_key = %q", got)
	}
	if got := params.Get("mailto"); got != "user@example.com" {
		t.Errorf("mailto = %q", got)
	}
}

func TestRequestValuesOmitsEmpty(t *testing.T) {
	params := Request{Page: 1, PerPage: 20}.Values()

	for _, key := range []string{"search", "filter", "sort", "api_key", "mailto"} {
		if params.Has(key) {
			t.Errorf("empty request should not set %q, got %q", key, params.Get(key))
		}
	}
	if got := params.Get("page"); got != "1" {
		t.Errorf("page = %q, want %q", got, "1")
	}
}

func TestRequestValuesYearBoundsIndependent(t *testing.T) {
	params := Request{Page: 1, PerPage: 20, YearFrom: "2019"}.Values()
	if got := params.Get("filter"); got != "from_publication_date:2019-01-01" {
		t.Errorf("filter = %q", got)
	}

	params = Request{Page: 1, PerPage: 20, YearTo: "2021"}.Values()
	if got := params.Get("filter"); got != "to_publication_date:2021-12-31" {
		t.Errorf("filter = %q", got)
	}
}

func TestPageSizes(t *testing.T) {
	want := []int{20, 30, 40, 50}
	got := PageSizes()
	if len(got) != len(want) {
		t.Fatalf("PageSizes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PageSizes()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
