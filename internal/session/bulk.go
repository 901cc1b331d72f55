// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrylee0412/journal-query/internal/openalex"
	"github.com/harrylee0412/journal-query/internal/ris"
)

const (
	// MaxBulkRecords caps every bulk operation (select-all and page-range
	// export) at 2000 records, the OpenAlex deep-paging limit.
	MaxBulkRecords = 2000

	// BulkPageSize is the fixed remote page size bulk operations fetch
	// at, independent of the interactive page size.
	BulkPageSize = 200
)

// RangeErrorMessage is surfaced for a malformed or over-cap page range.
const RangeErrorMessage = "Invalid page range."

// countdownInterval drives the cosmetic countdown tick. Tests override it
// to avoid real sleeps.
var countdownInterval = time.Second

// bulkOp is the per-kind state of one bulk operation. Each kind (select-all,
// export) holds exactly one live cancel func; starting a same-kind operation
// preempts its predecessor. The two kinds are deliberately independent.
// gen counts operations of the kind, so a preempted predecessor's cleanup
// can recognize that the slot now belongs to its successor.
type bulkOp struct {
	loading   bool
	countdown int
	cancel    context.CancelFunc
	gen       int
}

// SelectAllResults fetches every result of the current search, up to
// MaxBulkRecords, at the fixed bulk page size, then replaces both the
// selection-record mapping and the checked set with the fetched works.
// Cancellation discards everything fetched so far and surfaces no error.
func (s *Session) SelectAllResults(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasSearched {
		s.mu.Unlock()
		return nil
	}
	total := s.totalCount
	s.errMsg = ""
	s.mu.Unlock()

	opCtx, gen := s.beginBulk(ctx, &s.selectAll)
	defer s.endBulk(&s.selectAll, gen)

	toFetch := total
	if toFetch > MaxBulkRecords {
		toFetch = MaxBulkRecords
	}
	pages := (toFetch + BulkPageSize - 1) / BulkPageSize

	stop := s.startCountdown(&s.selectAll, estimateSeconds(toFetch))
	defer stop()

	all, err := s.fetchSpan(opCtx, 1, pages)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		s.mu.Lock()
		s.errMsg = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectAll.gen != gen {
		// a successor preempted this operation after its last fetch
		return nil
	}
	records := make(map[string]openalex.Work, len(all))
	ids := make([]string, len(all))
	for i, w := range all {
		records[w.ID] = w
		ids[i] = w.ID
	}
	s.records = records
	s.selectedIDs = ids
	return nil
}

// CancelSelectAll aborts an in-flight select-all. The operation stops
// silently: no result, no error message, loading off.
func (s *Session) CancelSelectAll() { s.cancelBulk(&s.selectAll) }

// ExportPageRange fetches the works spanning the inclusive logical page
// range [start, end] at the current page size and writes them to dir as one
// RIS file. The range is validated before any request: it must be ordered,
// within the known page count, and span at most MaxExportPages logical
// pages. Returns the written path, or "" on cancellation or an empty slice.
func (s *Session) ExportPageRange(ctx context.Context, start, end int, dir string) (string, error) {
	s.mu.Lock()
	pageSize := s.pageSize
	total := s.totalCount
	if start < 1 || end < start ||
		end > totalPagesFor(total, pageSize) ||
		end-start+1 > maxExportPagesFor(pageSize) {
		s.exportErr = RangeErrorMessage
		s.mu.Unlock()
		return "", &RangeError{Start: start, End: end}
	}
	s.exportErr = ""
	s.mu.Unlock()

	opCtx, gen := s.beginBulk(ctx, &s.export)
	defer s.endBulk(&s.export, gen)

	// Convert the logical record range [startIndex, endIndex) into the
	// minimal covering span of fixed-size remote pages.
	startIndex := (start - 1) * pageSize
	endIndex := end * pageSize
	if endIndex > total {
		endIndex = total
	}
	remoteStart := startIndex/BulkPageSize + 1
	remoteEnd := (endIndex + BulkPageSize - 1) / BulkPageSize

	stop := s.startCountdown(&s.export, estimateSeconds(endIndex-startIndex))
	defer stop()

	all, err := s.fetchSpan(opCtx, remoteStart, remoteEnd)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", nil
		}
		s.mu.Lock()
		s.exportErr = err.Error()
		s.mu.Unlock()
		return "", err
	}

	s.mu.Lock()
	preempted := s.export.gen != gen
	s.mu.Unlock()
	if preempted {
		return "", nil
	}

	slice := sliceWorks(all, startIndex-(remoteStart-1)*BulkPageSize, endIndex-startIndex)
	if len(slice) == 0 {
		return "", nil
	}

	path := filepath.Join(dir, ris.PageRangeFilename(start, end))
	if err := ris.Write(path, slice); err != nil {
		s.mu.Lock()
		s.exportErr = err.Error()
		s.mu.Unlock()
		return "", err
	}
	return path, nil
}

// CancelExport aborts an in-flight page-range export, silently.
func (s *Session) CancelExport() { s.cancelBulk(&s.export) }

// SelectAllLoading reports whether a select-all is in flight.
func (s *Session) SelectAllLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectAll.loading
}

// SelectAllCountdown returns the select-all countdown, in seconds.
func (s *Session) SelectAllCountdown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectAll.countdown
}

// ExportLoading reports whether a page-range export is in flight.
func (s *Session) ExportLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.export.loading
}

// ExportCountdown returns the export countdown, in seconds.
func (s *Session) ExportCountdown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.export.countdown
}

// --- shared bulk machinery ---

// fetchSpan fetches remote pages [startPage, endPage] strictly in order,
// one at a time, at the bulk page size, concatenating results in fetch
// order. The first failure aborts the whole span; there is no
// partial-result fallback.
func (s *Session) fetchSpan(ctx context.Context, startPage, endPage int) ([]openalex.Work, error) {
	s.mu.Lock()
	req := s.requestLocked(0, BulkPageSize)
	s.mu.Unlock()

	var all []openalex.Work
	for page := startPage; page <= endPage; page++ {
		req.Page = page
		result, err := s.client.Search(ctx, req)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Works...)
	}
	return all, nil
}

// beginBulk cancels any in-flight operation of the same kind and arms a new
// cancellation token for this one. The returned generation identifies the
// new operation to endBulk.
func (s *Session) beginBulk(parent context.Context, op *bulkOp) (context.Context, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op.cancel != nil {
		op.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	op.cancel = cancel
	op.loading = true
	op.gen++
	return ctx, op.gen
}

// endBulk releases the slot, but only when it still belongs to the ending
// operation. A preempted predecessor's deferred cleanup must not cancel or
// zero the successor that took the slot over.
func (s *Session) endBulk(op *bulkOp, gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op.gen != gen {
		return
	}
	if op.cancel != nil {
		op.cancel()
		op.cancel = nil
	}
	op.loading = false
	op.countdown = 0
}

func (s *Session) cancelBulk(op *bulkOp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op.cancel != nil {
		op.cancel()
	}
	op.loading = false
	op.countdown = 0
}

// startCountdown arms the cosmetic countdown: a wall-clock ticker that
// decrements once a second, deliberately decoupled from fetch progress (it
// is an estimate, not a progress bar). The returned stop func ends the
// ticker; endBulk zeroes the display.
func (s *Session) startCountdown(op *bulkOp, seconds int) (stop func()) {
	s.mu.Lock()
	op.countdown = seconds
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(countdownInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				if op.countdown > 0 {
					op.countdown--
				}
				s.mu.Unlock()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// estimateSeconds maps a record count to the displayed estimate:
// clamp(1, 40, ceil(records * 40 / MaxBulkRecords)).
func estimateSeconds(records int) int {
	seconds := (records*40 + MaxBulkRecords - 1) / MaxBulkRecords
	if seconds < 1 {
		seconds = 1
	}
	if seconds > 40 {
		seconds = 40
	}
	return seconds
}

// sliceWorks takes the clamped window [offset, offset+count) of all.
func sliceWorks(all []openalex.Work, offset, count int) []openalex.Work {
	if offset < 0 {
		offset = 0
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + count
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
