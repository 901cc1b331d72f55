// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort orders accepted by the works endpoint.
const (
	SortCitedByDesc = "cited_by_count:desc"
	SortDateDesc    = "publication_date:desc"
	SortDateAsc     = "publication_date:asc"
	SortTitleAsc    = "display_name:asc"
)

// Sorts lists the allowed sort orders.
func Sorts() []string {
	return []string{SortCitedByDesc, SortDateDesc, SortDateAsc, SortTitleAsc}
}

// PageSizes lists the allowed interactive page sizes.
func PageSizes() []int {
	return []int{20, 30, 40, 50}
}

// Request describes one works query. Building the query string is pure;
// the Client performs the I/O.
type Request struct {
	// ISSNs scope the query to the given source ISSNs, OR-joined into a
	// single filter clause.
	ISSNs []string

	// Search is the free-text keyword string. Empty means no keyword
	// constraint.
	Search string

	// YearFrom and YearTo are optional 4-digit year bounds, inclusive.
	// They become date-range filter clauses anchored to Jan 1 and Dec 31.
	YearFrom string
	YearTo   string

	// Sort is the sort specification (field:direction), passed verbatim.
	Sort string

	// Page is the 1-based page number; PerPage the page size.
	Page    int
	PerPage int

	// APIKey is attached as a query parameter when non-empty.
	APIKey string

	// Mailto is sent for polite pool access when non-empty.
	Mailto string
}

// Values encodes the request as works-endpoint query parameters. Filter
// clauses (ISSN scope, year bounds) combine by AND; the ISSN clause
// OR-joins its values with "|".
func (r Request) Values() url.Values {
	params := url.Values{
		"page":     {strconv.Itoa(r.Page)},
		"per_page": {strconv.Itoa(r.PerPage)},
	}

	if s := strings.TrimSpace(r.Search); s != "" {
		params.Set("search", s)
	}

	var filters []string
	if len(r.ISSNs) > 0 {
		filters = append(filters, "primary_location.source.issn:"+strings.Join(r.ISSNs, "|"))
	}
	if y := strings.TrimSpace(r.YearFrom); y != "" {
		filters = append(filters, "from_publication_date:"+y+"-01-01")
	}
	if y := strings.TrimSpace(r.YearTo); y != "" {
		filters = append(filters, "to_publication_date:"+y+"-12-31")
	}
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}

	if s := strings.TrimSpace(r.Sort); s != "" {
		params.Set("sort", s)
	}
	if k := strings.TrimSpace(r.APIKey); k != "" {
		params.Set("api_key", k)
	}
	if m := strings.TrimSpace(r.Mailto); m != "" {
		params.Set("mailto", m)
	}

	return params
}
