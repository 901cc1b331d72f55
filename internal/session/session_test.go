// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylee0412/journal-query/internal/journals"
	"github.com/harrylee0412/journal-query/internal/openalex"
	"github.com/harrylee0412/journal-query/pkg/types"
)

// fakeSearcher serves deterministic works: record i has ID "W<i>". When
// block is set, Search stalls until the channel closes or the context is
// canceled; blockOnly restricts the stall to that 1-based call number, and
// started (buffered) signals that a call is in flight.
type fakeSearcher struct {
	mu        sync.Mutex
	calls     []openalex.Request
	total     int
	err       error
	block     chan struct{}
	blockOnly int
	started   chan struct{}
}

func (f *fakeSearcher) Search(ctx context.Context, req openalex.Request) (*openalex.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	call := len(f.calls)
	f.mu.Unlock()

	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.block != nil && (f.blockOnly == 0 || call == f.blockOnly) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.block:
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	start := (req.Page - 1) * req.PerPage
	end := start + req.PerPage
	if end > f.total {
		end = f.total
	}
	works := make([]openalex.Work, 0, end-start)
	for i := start; i < end; i++ {
		works = append(works, openalex.Work{
			ID:              fmt.Sprintf("W%d", i),
			DisplayName:     fmt.Sprintf("Work %d", i),
			PublicationDate: fmt.Sprintf("2024-01-%02d", i%28+1),
		})
	}
	return &openalex.Page{Works: works, Count: f.total}, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearcher) lastCall() openalex.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func testJournals() []types.Journal {
	return []types.Journal{
		{Title: "Finance Journal", ISSN: "1111-1111", Field: "Finance", ABSRank: "4*", IsFT50: true},
		{Title: "Management Journal", ISSN: "2222-2222", Field: "Management", ABSRank: "3"},
	}
}

func newTestSession(f *fakeSearcher) *Session {
	return New(f, testJournals(), types.SearchConfig{PageSize: 20, Sort: openalex.SortCitedByDesc}, nil)
}

// readySession returns a session with one completed search over total records.
func readySession(t *testing.T, total int) (*Session, *fakeSearcher) {
	t.Helper()
	f := &fakeSearcher{total: total}
	s := newTestSession(f)
	require.NoError(t, s.RunSearch(context.Background()))
	require.Equal(t, PhaseReady, s.Phase())
	return s, f
}

func TestRunSearch(t *testing.T) {
	s, f := readySession(t, 100)

	assert.Equal(t, 100, s.TotalCount())
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, 5, s.TotalPages())
	assert.Len(t, s.Works(), 20)
	assert.Empty(t, s.ErrorMessage())

	req := f.lastCall()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PerPage)
	assert.Equal(t, []string{"1111-1111", "2222-2222"}, req.ISSNs)
	assert.Equal(t, openalex.SortCitedByDesc, req.Sort)
}

func TestRunSearchEmptyISSNSet(t *testing.T) {
	f := &fakeSearcher{total: 100}
	s := New(f, nil, types.SearchConfig{PageSize: 20}, nil)

	require.NoError(t, s.RunSearch(context.Background()))

	assert.Equal(t, PhaseError, s.Phase())
	assert.Equal(t, NoResultsMessage, s.ErrorMessage())
	assert.Empty(t, s.Works())
	assert.Zero(t, s.TotalCount())
	assert.Zero(t, f.callCount(), "no request should reach the network")
}

func TestRunSearchFilterExcludesEverything(t *testing.T) {
	f := &fakeSearcher{total: 100}
	s := newTestSession(f)
	s.ApplyFilter(journals.Filter{Fields: []string{"Economics"}})

	require.NoError(t, s.RunSearch(context.Background()))

	assert.Equal(t, PhaseError, s.Phase())
	assert.Equal(t, NoResultsMessage, s.ErrorMessage())
	assert.Zero(t, f.callCount())
}

func TestRunSearchPassesInputs(t *testing.T) {
	f := &fakeSearcher{total: 10}
	s := newTestSession(f)
	s.ApplyFilter(journals.Filter{Fields: []string{"Finance"}})
	s.SetKeywords("  corporate governance  ")
	s.SetYearRange("2018", "2022")

	require.NoError(t, s.RunSearch(context.Background()))

	req := f.lastCall()
	assert.Equal(t, []string{"1111-1111"}, req.ISSNs)
	assert.Equal(t, "corporate governance", req.Search)
	assert.Equal(t, "2018", req.YearFrom)
	assert.Equal(t, "2022", req.YearTo)
}

func TestRunSearchError(t *testing.T) {
	f := &fakeSearcher{total: 100, err: fmt.Errorf("boom")}
	s := newTestSession(f)

	err := s.RunSearch(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseError, s.Phase())
	assert.Equal(t, "boom", s.ErrorMessage())
	assert.Empty(t, s.Works())
	assert.Zero(t, s.TotalCount())
}

func TestFreshSearchClearsSelection(t *testing.T) {
	s, _ := readySession(t, 100)
	s.ToggleSelection("W0")
	s.ToggleSelection("W1")
	require.Len(t, s.SelectedIDs(), 2)

	require.NoError(t, s.RunSearch(context.Background()))

	assert.Empty(t, s.SelectedIDs())
	assert.Empty(t, s.SelectedWorks())
}

func TestChangePageMergesRecordsAndKeepsSelection(t *testing.T) {
	s, f := readySession(t, 100)
	s.ToggleSelection("W0")

	require.NoError(t, s.ChangePage(context.Background(), 2))

	assert.Equal(t, 2, s.CurrentPage())
	assert.Equal(t, 2, f.lastCall().Page)
	assert.Equal(t, []string{"W0"}, s.SelectedIDs())

	// the page-1 record survives the page change
	selected := s.SelectedWorks()
	require.Len(t, selected, 1)
	assert.Equal(t, "W0", selected[0].ID)
}

func TestChangePageClamps(t *testing.T) {
	s, f := readySession(t, 100) // 5 pages at size 20

	require.NoError(t, s.ChangePage(context.Background(), 99))
	assert.Equal(t, 5, s.CurrentPage())
	assert.Equal(t, 5, f.lastCall().Page)

	require.NoError(t, s.ChangePage(context.Background(), 0))
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, 1, f.lastCall().Page)
}

func TestChangePageBeforeSearch(t *testing.T) {
	f := &fakeSearcher{total: 100}
	s := newTestSession(f)

	require.NoError(t, s.ChangePage(context.Background(), 3))
	assert.Zero(t, f.callCount())
}

func TestChangeSortResetsRecordsKeepsChecked(t *testing.T) {
	s, f := readySession(t, 100)
	s.ToggleSelection("W0")
	require.NoError(t, s.ChangePage(context.Background(), 2))
	s.ToggleSelection("W20")

	require.NoError(t, s.ChangeSort(context.Background(), openalex.SortDateDesc))

	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, openalex.SortDateDesc, f.lastCall().Sort)

	// both ids stay checked; only the page-1 record resolves after the reset
	assert.Equal(t, []string{"W0", "W20"}, s.SelectedIDs())
	selected := s.SelectedWorks()
	require.Len(t, selected, 1)
	assert.Equal(t, "W0", selected[0].ID)
}

func TestChangeSortInvalid(t *testing.T) {
	s, f := readySession(t, 100)
	before := f.callCount()

	err := s.ChangeSort(context.Background(), "relevance:desc")
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "sort", invalid.Field)
	assert.Equal(t, before, f.callCount())
}

func TestChangeSortBeforeSearch(t *testing.T) {
	f := &fakeSearcher{total: 100}
	s := newTestSession(f)

	require.NoError(t, s.ChangeSort(context.Background(), openalex.SortTitleAsc))
	assert.Zero(t, f.callCount())
	assert.Equal(t, openalex.SortTitleAsc, s.Sort())
}

func TestChangePageSize(t *testing.T) {
	s, f := readySession(t, 100)
	s.ToggleSelection("W0")

	require.NoError(t, s.ChangePageSize(context.Background(), 50))

	assert.Equal(t, 50, s.PageSize())
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, 50, f.lastCall().PerPage)
	assert.Equal(t, []string{"W0"}, s.SelectedIDs())
	assert.Equal(t, 2, s.TotalPages())
}

func TestChangePageSizeInvalid(t *testing.T) {
	s, f := readySession(t, 100)
	before := f.callCount()

	err := s.ChangePageSize(context.Background(), 25)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, before, f.callCount())
	assert.Equal(t, 20, s.PageSize())
}

func TestSelectCurrentPage(t *testing.T) {
	s, _ := readySession(t, 50)
	s.ToggleSelection("W49") // replaced by the page selection

	s.SelectCurrentPage()

	ids := s.SelectedIDs()
	require.Len(t, ids, 20)
	assert.Equal(t, "W0", ids[0])
	assert.Equal(t, "W19", ids[19])
}

func TestToggleSelection(t *testing.T) {
	s, _ := readySession(t, 50)

	s.ToggleSelection("W3")
	s.ToggleSelection("W5")
	assert.Equal(t, []string{"W3", "W5"}, s.SelectedIDs())

	s.ToggleSelection("W3")
	assert.Equal(t, []string{"W5"}, s.SelectedIDs())

	s.ClearSelection()
	assert.Empty(t, s.SelectedIDs())
}

func TestSelectedWorksSkipsUnmapped(t *testing.T) {
	s, _ := readySession(t, 50)
	s.ToggleSelection("W0")
	s.ToggleSelection("W9999") // never fetched

	selected := s.SelectedWorks()
	require.Len(t, selected, 1)
	assert.Equal(t, "W0", selected[0].ID)
}

func TestExportSelected(t *testing.T) {
	s, _ := readySession(t, 50)
	dir := t.TempDir()

	path, err := s.ExportSelected(dir)
	require.NoError(t, err)
	assert.Empty(t, path, "empty selection exports nothing")

	s.ToggleSelection("W1")
	s.ToggleSelection("W0")
	path, err = s.ExportSelected(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "openalex_selected.ris"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// check order, not id order
	assert.Less(t, strings.Index(string(data), "UR  - W1\n"), strings.Index(string(data), "UR  - W0\n"))
}

func TestExportCurrentPage(t *testing.T) {
	s, _ := readySession(t, 50)
	require.NoError(t, s.ChangePage(context.Background(), 2))
	dir := t.TempDir()

	path, err := s.ExportCurrentPage(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "openalex_page_2.ris"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(data), "TY  - JOUR"))
}

func TestExportCurrentPageEmpty(t *testing.T) {
	f := &fakeSearcher{total: 0}
	s := newTestSession(f)
	require.NoError(t, s.RunSearch(context.Background()))

	path, err := s.ExportCurrentPage(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSaveCredential(t *testing.T) {
	s, f := readySession(t, 50)

	require.NoError(t, s.SaveCredential("  my-key  "))
	require.NoError(t, s.RunSearch(context.Background()))

	assert.Equal(t, "my-key", f.lastCall().APIKey)
}

func TestFilteredJournalsAndISSNList(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	s.ApplyFilter(journals.Filter{FT50: true})

	filtered := s.FilteredJournals()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Finance Journal", filtered[0].Title)
	assert.Equal(t, []string{"1111-1111"}, s.ISSNList())
}

func TestTotalPagesFor(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{450, 50, 9},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, totalPagesFor(tc.total, tc.pageSize),
			"totalPagesFor(%d, %d)", tc.total, tc.pageSize)
	}
}

func TestMaxExportPages(t *testing.T) {
	s := newTestSession(&fakeSearcher{})
	assert.Equal(t, 100, s.MaxExportPages()) // 2000 / 20

	require.NoError(t, s.ChangePageSize(context.Background(), 50))
	assert.Equal(t, 40, s.MaxExportPages())
}

func TestNewDefaults(t *testing.T) {
	s := New(&fakeSearcher{}, nil, types.SearchConfig{}, nil)
	assert.Equal(t, 20, s.PageSize(), "invalid size falls back to the smallest")
	assert.Equal(t, openalex.SortCitedByDesc, s.Sort())
	assert.Equal(t, PhaseIdle, s.Phase())
}
