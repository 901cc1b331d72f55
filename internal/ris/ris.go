// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ris serializes OpenAlex works to the RIS citation format.
package ris

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrylee0412/journal-query/internal/openalex"
)

// Record serializes one work as an RIS block. Tags appear in a fixed order;
// optional tags are emitted only when their value is non-empty:
//
//	TY, TI, AU (one per author), JO, SN, PY, VL, IS, SP, EP, DO, UR, AB, ER
func Record(w openalex.Work) string {
	lines := []string{"TY  - JOUR"}

	appendTag := func(tag, value string) {
		if value != "" {
			lines = append(lines, tag+"  - "+value)
		}
	}

	appendTag("TI", w.DisplayName)
	for _, author := range w.Authors() {
		appendTag("AU", author)
	}
	appendTag("JO", w.JournalName())
	appendTag("SN", w.FirstISSN())
	if w.PublicationYear > 0 {
		appendTag("PY", fmt.Sprintf("%d", w.PublicationYear))
	}
	appendTag("VL", w.Biblio.Volume)
	appendTag("IS", w.Biblio.Issue)
	appendTag("SP", w.Biblio.FirstPage)
	appendTag("EP", w.Biblio.LastPage)
	appendTag("DO", w.BareDOI())
	appendTag("UR", w.ID)
	appendTag("AB", openalex.ReconstructAbstract(w.AbstractInvertedIndex))

	lines = append(lines, "ER  -")
	return strings.Join(lines, "\n")
}

// File joins the works' RIS blocks into one file body, records separated by
// a blank line.
func File(works []openalex.Work) string {
	records := make([]string, len(works))
	for i, w := range works {
		records[i] = Record(w)
	}
	return strings.Join(records, "\n\n")
}

// Write serializes works to path. Writing an empty list is a no-op.
func Write(path string, works []openalex.Work) error {
	if len(works) == 0 {
		return nil
	}
	if err := os.WriteFile(path, []byte(File(works)+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing RIS file: %w", err)
	}
	return nil
}

// Filenames are deterministic and encode the export context.

// SelectedFilename names the export of the current selection.
func SelectedFilename() string { return "openalex_selected.ris" }

// PageFilename names the export of one interactive page.
func PageFilename(page int) string { return fmt.Sprintf("openalex_page_%d.ris", page) }

// PageRangeFilename names the export of an inclusive page range.
func PageRangeFilename(start, end int) string {
	return fmt.Sprintf("openalex_pages_%d-%d.ris", start, end)
}
