// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/harrylee0412/journal-query/internal/openalex"
)

// writeWorksTable renders one result page as a human-readable table with a
// trailing pagination summary.
func writeWorksTable(w io.Writer, works []openalex.Work, total, page, totalPages int) {
	if len(works) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-58s  %-22s  %-34s  %-4s  %s\n",
		"#", "Title", "Authors", "Journal", "Year", "Cites")
	fmt.Fprintln(w, strings.Repeat("-", 136))

	for i, work := range works {
		year := ""
		if work.PublicationYear != 0 {
			year = fmt.Sprintf("%d", work.PublicationYear)
		}
		fmt.Fprintf(w, "%-4d  %-58s  %-22s  %-34s  %-4s  %d\n",
			i+1,
			truncate(work.DisplayName, 58),
			formatAuthors(work.Authors()),
			truncate(work.JournalName(), 34),
			year,
			work.CitedByCount)
	}

	fmt.Fprintf(w, "\nPage %d of %d · %d results\n", page, totalPages, total)
}

// writeWorksJSON writes the page as indented JSON.
func writeWorksJSON(w io.Writer, works []openalex.Work) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(works)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 22)
	default:
		return truncate(authors[0], 15) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
