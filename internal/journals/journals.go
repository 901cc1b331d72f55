// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journals loads the curated journal allow-list and filters it into
// the ISSN set that scopes OpenAlex queries.
package journals

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/harrylee0412/journal-query/pkg/types"
)

// Load reads the journal allow-list from a JSON file. The table is static
// and read-only for the life of the process.
func Load(path string) ([]types.Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading journal list: %w", err)
	}
	var list []types.Journal
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing journal list: %w", err)
	}
	return list, nil
}

// Filter selects a subset of the allow-list along three dimensions:
// discipline labels, ABS rank tiers, and the two special-collection toggles.
type Filter struct {
	// Fields restricts to journals whose discipline label is in the set.
	// Empty means no discipline constraint.
	Fields []string

	// Ranks restricts to journals whose ABS rank is in the set. Empty
	// means no rank constraint; unranked journals never match a
	// non-empty set.
	Ranks []string

	// FT50 and UTD24 toggle the special collections. With both off the
	// collections impose no constraint; with either on, a journal passes
	// if it belongs to any toggled-on collection. The toggles narrow by
	// union across the collections and combine by AND with the other two
	// dimensions.
	FT50  bool
	UTD24 bool
}

// Validate rejects filter rank values outside the known ABS tiers. Field
// labels are not validated; an unknown label just matches nothing.
func (f Filter) Validate() error {
	for _, r := range f.Ranks {
		if !contains(Ranks(), r) {
			return fmt.Errorf("unknown ABS rank %q (valid: %s)", r, strings.Join(Ranks(), ", "))
		}
	}
	return nil
}

// Matches reports whether j passes all three filter dimensions.
func (f Filter) Matches(j types.Journal) bool {
	if f.FT50 || f.UTD24 {
		if !((f.FT50 && j.IsFT50) || (f.UTD24 && j.IsUTD24)) {
			return false
		}
	}

	if len(f.Fields) > 0 && !contains(f.Fields, FieldLabel(j)) {
		return false
	}

	if len(f.Ranks) > 0 {
		if j.ABSRank == "" || !contains(f.Ranks, j.ABSRank) {
			return false
		}
	}

	return true
}

// Apply returns the journals passing f, preserving input order.
func Apply(list []types.Journal, f Filter) []types.Journal {
	var out []types.Journal
	for _, j := range list {
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}

// ISSNList derives the deduplicated identifier set from a filtered journal
// list. ISSNs are trimmed; values of length <= 4 or equal to the "nan"
// placeholder are dropped. First-seen order is preserved.
func ISSNList(list []types.Journal) []string {
	seen := make(map[string]bool)
	var out []string
	for _, j := range list {
		issn := strings.TrimSpace(j.ISSN)
		if len(issn) <= 4 || issn == "nan" {
			continue
		}
		if seen[issn] {
			continue
		}
		seen[issn] = true
		out = append(out, issn)
	}
	return out
}

// FieldLabel returns the journal's trimmed discipline label, or "" when the
// journal has none.
func FieldLabel(j types.Journal) string {
	return strings.TrimSpace(j.Field)
}

// Fields returns the sorted set of non-empty discipline labels in the list.
func Fields(list []types.Journal) []string {
	seen := make(map[string]bool)
	var out []string
	for _, j := range list {
		label := FieldLabel(j)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Ranks returns the ABS ranking tiers in display order.
func Ranks() []string {
	return []string{"4*", "4", "3", "2", "1"}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
