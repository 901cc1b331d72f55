// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for journal-query.
package types

// Journal is one entry of the curated journal allow-list. The list is
// loaded once at startup and never mutated; ISSN is the identity.
type Journal struct {
	// Title is the journal title.
	Title string `json:"title" yaml:"title"`

	// ISSN is the journal's ISSN. The source data is messy: values may be
	// empty, too short, or the literal placeholder "nan", and such values
	// are excluded from derived identifier sets.
	ISSN string `json:"issn" yaml:"issn"`

	// Field is the research discipline label (e.g. "Finance"). Optional.
	Field string `json:"field_en" yaml:"field_en"`

	// ABSRank is the ABS 2024 ranking tier: one of "4*", "4", "3", "2",
	// "1", or empty when the journal is unranked.
	ABSRank string `json:"abs_rank" yaml:"abs_rank"`

	// IsFT50 marks membership in the Financial Times 50 list.
	IsFT50 bool `json:"is_ft50" yaml:"is_ft50"`

	// IsUTD24 marks membership in the UT Dallas 24 list.
	IsUTD24 bool `json:"is_utd24" yaml:"is_utd24"`
}
