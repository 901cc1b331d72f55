// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session owns the application state for journal search: the active
// filter, the paged search controller, the selection set, and the bulk
// retrieval operations. All derived values (filtered journals, ISSN set,
// total pages) are computed from this state, never cached.
package session

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/harrylee0412/journal-query/internal/cache"
	"github.com/harrylee0412/journal-query/internal/journals"
	"github.com/harrylee0412/journal-query/internal/openalex"
	"github.com/harrylee0412/journal-query/internal/ris"
	"github.com/harrylee0412/journal-query/pkg/types"
)

// Phase is the interactive search state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseReady     Phase = "ready"
	PhaseError     Phase = "error"
)

// NoResultsMessage is surfaced when a search cannot produce results,
// including the no-network case of an empty derived ISSN set.
const NoResultsMessage = "No results found. Adjust your filters or keywords."

// Searcher is the remote query dependency. *openalex.Client implements it.
type Searcher interface {
	Search(ctx context.Context, req openalex.Request) (*openalex.Page, error)
}

// Session is the single owner of all mutable search state. The UI layer
// mutates it only through the operation methods and renders the accessor
// values. Methods are safe for the one-writer-plus-countdown-ticker
// concurrency the CLI actually has.
type Session struct {
	mu     sync.Mutex
	client Searcher
	store  *cache.Cache // optional credential cache

	journals []types.Journal
	filter   journals.Filter

	keywords string
	yearFrom string
	yearTo   string
	sortBy   string
	pageSize int
	apiKey   string
	mailto   string

	hasSearched bool
	phase       Phase
	errMsg      string
	exportErr   string

	works       []openalex.Work
	totalCount  int
	currentPage int

	selectedIDs []string
	records     map[string]openalex.Work

	selectAll bulkOp
	export    bulkOp
}

// New builds a Session over the loaded allow-list. store may be nil when no
// credential cache is available.
func New(client Searcher, list []types.Journal, cfg types.SearchConfig, store *cache.Cache) *Session {
	pageSize := cfg.PageSize
	if !validPageSize(pageSize) {
		pageSize = openalex.PageSizes()[0]
	}
	sortBy := cfg.Sort
	if sortBy == "" {
		sortBy = openalex.SortCitedByDesc
	}
	return &Session{
		client:      client,
		store:       store,
		journals:    list,
		sortBy:      sortBy,
		pageSize:    pageSize,
		apiKey:      cfg.APIKey,
		mailto:      cfg.Mailto,
		phase:       PhaseIdle,
		currentPage: 1,
		records:     make(map[string]openalex.Work),
	}
}

// --- filter and inputs ---

// ApplyFilter replaces the journal filter.
func (s *Session) ApplyFilter(f journals.Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// SetKeywords sets the free-text search string.
func (s *Session) SetKeywords(keywords string) {
	s.mu.Lock()
	s.keywords = strings.TrimSpace(keywords)
	s.mu.Unlock()
}

// SetYearRange sets the optional inclusive year bounds (4-digit strings;
// empty means unbounded on that side).
func (s *Session) SetYearRange(from, to string) {
	s.mu.Lock()
	s.yearFrom = strings.TrimSpace(from)
	s.yearTo = strings.TrimSpace(to)
	s.mu.Unlock()
}

// FilteredJournals returns the allow-list subset passing the current filter,
// in allow-list order.
func (s *Session) FilteredJournals() []types.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return journals.Apply(s.journals, s.filter)
}

// ISSNList returns the derived identifier set for the current filter.
func (s *Session) ISSNList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issnListLocked()
}

func (s *Session) issnListLocked() []string {
	return journals.ISSNList(journals.Apply(s.journals, s.filter))
}

// --- interactive search ---

// RunSearch starts a fresh search at page 1. An empty derived ISSN set is a
// benign no-results outcome: the session moves to the error phase with
// NoResultsMessage, the working results and checked selection are cleared,
// and no request is sent. A fresh search also replaces the selection-record
// mapping with exactly the new page's records.
func (s *Session) RunSearch(ctx context.Context) error {
	s.mu.Lock()
	if len(s.issnListLocked()) == 0 {
		s.phase = PhaseError
		s.errMsg = NoResultsMessage
		s.works = nil
		s.totalCount = 0
		s.selectedIDs = nil
		s.mu.Unlock()
		return nil
	}
	s.hasSearched = true
	s.currentPage = 1
	s.selectedIDs = nil
	s.mu.Unlock()
	return s.fetch(ctx, 1, true)
}

// ChangePage re-issues the current search for another page. Newly returned
// records merge into the selection-record mapping without removing prior
// entries, which keeps cross-page selections exportable.
func (s *Session) ChangePage(ctx context.Context, page int) error {
	s.mu.Lock()
	if !s.hasSearched {
		s.mu.Unlock()
		return nil
	}
	if page < 1 {
		page = 1
	}
	if max := totalPagesFor(s.totalCount, s.pageSize); page > max {
		page = max
	}
	s.currentPage = page
	s.mu.Unlock()
	return s.fetch(ctx, page, false)
}

// ChangeSort sets the sort order and, once a search has run, re-fetches
// page 1 with a fresh selection-record mapping. Checked identifiers are
// kept even when their records scroll out of the new mapping.
func (s *Session) ChangeSort(ctx context.Context, sortBy string) error {
	if !validSort(sortBy) {
		return &InvalidInputError{Field: "sort", Value: sortBy}
	}
	s.mu.Lock()
	s.sortBy = sortBy
	refetch := s.hasSearched
	s.mu.Unlock()
	if !refetch {
		return nil
	}
	s.mu.Lock()
	s.currentPage = 1
	s.mu.Unlock()
	return s.fetch(ctx, 1, true)
}

// ChangePageSize sets the interactive page size (one of PageSizes) and
// re-fetches page 1 the same way ChangeSort does.
func (s *Session) ChangePageSize(ctx context.Context, size int) error {
	if !validPageSize(size) {
		return &InvalidInputError{Field: "page size", Value: size}
	}
	s.mu.Lock()
	s.pageSize = size
	refetch := s.hasSearched
	s.mu.Unlock()
	if !refetch {
		return nil
	}
	s.mu.Lock()
	s.currentPage = 1
	s.mu.Unlock()
	return s.fetch(ctx, 1, true)
}

// fetch issues one interactive page request and folds the outcome into the
// session state. reset replaces the selection-record mapping with exactly
// the fetched page; otherwise the page merges in.
func (s *Session) fetch(ctx context.Context, page int, reset bool) error {
	s.mu.Lock()
	s.phase = PhaseSearching
	s.errMsg = ""
	req := s.requestLocked(page, s.pageSize)
	s.mu.Unlock()

	result, err := s.client.Search(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.phase = PhaseError
		s.errMsg = err.Error()
		s.works = nil
		s.totalCount = 0
		return err
	}

	s.works = result.Works
	s.totalCount = result.Count
	if reset {
		s.records = make(map[string]openalex.Work, len(result.Works))
	}
	for _, w := range result.Works {
		s.records[w.ID] = w
	}
	s.phase = PhaseReady
	return nil
}

func (s *Session) requestLocked(page, perPage int) openalex.Request {
	return openalex.Request{
		ISSNs:    s.issnListLocked(),
		Search:   s.keywords,
		YearFrom: s.yearFrom,
		YearTo:   s.yearTo,
		Sort:     s.sortBy,
		Page:     page,
		PerPage:  perPage,
		APIKey:   s.apiKey,
		Mailto:   s.mailto,
	}
}

// --- selection ---

// SelectCurrentPage replaces the checked set with the current page's ids.
func (s *Session) SelectCurrentPage() {
	s.mu.Lock()
	ids := make([]string, len(s.works))
	for i, w := range s.works {
		ids[i] = w.ID
	}
	s.selectedIDs = ids
	s.mu.Unlock()
}

// ToggleSelection checks or unchecks one work id.
func (s *Session) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.selectedIDs {
		if v == id {
			s.selectedIDs = append(s.selectedIDs[:i], s.selectedIDs[i+1:]...)
			return
		}
	}
	s.selectedIDs = append(s.selectedIDs, id)
}

// ClearSelection unchecks everything. The selection-record mapping is left
// alone; it is replaced wholesale on the next fresh search.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.selectedIDs = nil
	s.mu.Unlock()
}

// SelectedWorks resolves the checked ids against the selection-record
// mapping, in check order. Ids whose record was never captured (a page
// change raced the check) are skipped silently.
func (s *Session) SelectedWorks() []openalex.Work {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []openalex.Work
	for _, id := range s.selectedIDs {
		if w, ok := s.records[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// --- export (single-page paths; the range path lives in bulk.go) ---

// ExportSelected writes the checked works to dir as RIS and returns the
// file path, or "" when nothing resolvable is checked.
func (s *Session) ExportSelected(dir string) (string, error) {
	works := s.SelectedWorks()
	if len(works) == 0 {
		return "", nil
	}
	path := filepath.Join(dir, ris.SelectedFilename())
	if err := ris.Write(path, works); err != nil {
		return "", err
	}
	return path, nil
}

// ExportCurrentPage writes the current result page to dir as RIS.
func (s *Session) ExportCurrentPage(dir string) (string, error) {
	s.mu.Lock()
	works := s.works
	page := s.currentPage
	s.mu.Unlock()
	if len(works) == 0 {
		return "", nil
	}
	path := filepath.Join(dir, ris.PageFilename(page))
	if err := ris.Write(path, works); err != nil {
		return "", err
	}
	return path, nil
}

// --- credential ---

// SaveCredential stores the OpenAlex API key for subsequent requests and
// persists it in the credential cache when one is attached.
func (s *Session) SaveCredential(key string) error {
	key = strings.TrimSpace(key)
	s.mu.Lock()
	s.apiKey = key
	store := s.store
	s.mu.Unlock()
	if store == nil {
		return nil
	}
	return store.Put(cache.APIKeyEntry, key)
}

// --- observable state ---

// Phase returns the interactive search phase.
func (s *Session) Phase() Phase { s.mu.Lock(); defer s.mu.Unlock(); return s.phase }

// ErrorMessage returns the interactive search error text ("" when none).
func (s *Session) ErrorMessage() string { s.mu.Lock(); defer s.mu.Unlock(); return s.errMsg }

// ExportError returns the page-range export error text ("" when none).
func (s *Session) ExportError() string { s.mu.Lock(); defer s.mu.Unlock(); return s.exportErr }

// Works returns the current result page.
func (s *Session) Works() []openalex.Work { s.mu.Lock(); defer s.mu.Unlock(); return s.works }

// TotalCount returns the total matching record count last reported.
func (s *Session) TotalCount() int { s.mu.Lock(); defer s.mu.Unlock(); return s.totalCount }

// CurrentPage returns the 1-based current page.
func (s *Session) CurrentPage() int { s.mu.Lock(); defer s.mu.Unlock(); return s.currentPage }

// PageSize returns the interactive page size.
func (s *Session) PageSize() int { s.mu.Lock(); defer s.mu.Unlock(); return s.pageSize }

// Sort returns the current sort order.
func (s *Session) Sort() string { s.mu.Lock(); defer s.mu.Unlock(); return s.sortBy }

// SelectedIDs returns the checked ids in check order.
func (s *Session) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selectedIDs))
	copy(out, s.selectedIDs)
	return out
}

// TotalPages derives the page count from the last total, clamped to >= 1.
func (s *Session) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPagesFor(s.totalCount, s.pageSize)
}

// MaxExportPages derives the per-operation logical page cap from the bulk
// record ceiling and the current page size.
func (s *Session) MaxExportPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maxExportPagesFor(s.pageSize)
}

func totalPagesFor(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func maxExportPagesFor(pageSize int) int {
	pages := MaxBulkRecords / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func validPageSize(size int) bool {
	for _, s := range openalex.PageSizes() {
		if s == size {
			return true
		}
	}
	return false
}

func validSort(sortBy string) bool {
	for _, s := range openalex.Sorts() {
		if s == sortBy {
			return true
		}
	}
	return false
}
