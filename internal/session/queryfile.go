// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/harrylee0412/journal-query/internal/journals"
)

// QueryFile is the on-disk snapshot of a search: the filter and inputs that
// produced it plus a summary of the fetched page. A saved search can be
// reloaded later and re-run without rebuilding the filter by hand.
type QueryFile struct {
	Filter  FilterParams  `yaml:"filter"`
	Query   QueryParams   `yaml:"query"`
	Summary QuerySummary  `yaml:"summary"`
	Works   []WorkSummary `yaml:"works,omitempty"`
}

// FilterParams stores the journal filter in a serializable form.
type FilterParams struct {
	Fields []string `yaml:"fields,omitempty"`
	Ranks  []string `yaml:"ranks,omitempty"`
	FT50   bool     `yaml:"ft50,omitempty"`
	UTD24  bool     `yaml:"utd24,omitempty"`
}

// QueryParams stores the search inputs.
type QueryParams struct {
	Keywords string `yaml:"keywords,omitempty"`
	YearFrom string `yaml:"year_from,omitempty"`
	YearTo   string `yaml:"year_to,omitempty"`
	Sort     string `yaml:"sort"`
	PageSize int    `yaml:"page_size"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	TotalCount int       `yaml:"total_count"`
	Page       int       `yaml:"page"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WorkSummary is the per-work slice of the snapshot.
type WorkSummary struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Journal string `yaml:"journal,omitempty"`
	Year    int    `yaml:"year,omitempty"`
	Date    string `yaml:"date,omitempty"`
	CitedBy int    `yaml:"cited_by"`
	DOI     string `yaml:"doi,omitempty"`
}

// WriteQueryFile saves the session's current search to a YAML file.
func (s *Session) WriteQueryFile(path string) error {
	s.mu.Lock()
	qf := QueryFile{
		Filter: FilterParams{
			Fields: s.filter.Fields,
			Ranks:  s.filter.Ranks,
			FT50:   s.filter.FT50,
			UTD24:  s.filter.UTD24,
		},
		Query: QueryParams{
			Keywords: s.keywords,
			YearFrom: s.yearFrom,
			YearTo:   s.yearTo,
			Sort:     s.sortBy,
			PageSize: s.pageSize,
		},
		Summary: QuerySummary{
			TotalCount: s.totalCount,
			Page:       s.currentPage,
			Timestamp:  time.Now(),
		},
	}
	for _, w := range s.works {
		qf.Works = append(qf.Works, WorkSummary{
			ID:      w.ID,
			Title:   w.DisplayName,
			Journal: w.JournalName(),
			Year:    w.PublicationYear,
			Date:    w.PublicationDate,
			CitedBy: w.CitedByCount,
			DOI:     w.BareDOI(),
		})
	}
	s.mu.Unlock()

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToFilter converts stored FilterParams back into a journal filter.
func (p FilterParams) ToFilter() journals.Filter {
	return journals.Filter{
		Fields: p.Fields,
		Ranks:  p.Ranks,
		FT50:   p.FT50,
		UTD24:  p.UTD24,
	}
}
