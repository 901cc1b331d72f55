// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "strings"

// Work is one bibliographic record returned by the OpenAlex works endpoint.
// Records are received only and never persisted; ID is the stable identifier
// used as the selection key.
type Work struct {
	ID                    string           `json:"id"`
	DisplayName           string           `json:"display_name"`
	PublicationYear       int              `json:"publication_year"`
	PublicationDate       string           `json:"publication_date"`
	CitedByCount          int              `json:"cited_by_count"`
	DOI                   string           `json:"doi"`
	IDs                   WorkIDs          `json:"ids"`
	PrimaryLocation       *Location        `json:"primary_location"`
	Authorships           []Authorship     `json:"authorships"`
	Biblio                Biblio           `json:"biblio"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// WorkIDs holds the alternative identifiers of a work.
type WorkIDs struct {
	DOI string `json:"doi"`
}

// Location is a hosting venue of a work.
type Location struct {
	Source *Source `json:"source"`
}

// Source is the venue (journal) a work appeared in.
type Source struct {
	DisplayName string   `json:"display_name"`
	ISSN        []string `json:"issn"`
}

// Authorship links a work to one author.
type Authorship struct {
	Author Author `json:"author"`
}

// Author is the author record inside an authorship.
type Author struct {
	DisplayName string `json:"display_name"`
}

// Biblio holds volume/issue/page metadata.
type Biblio struct {
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	FirstPage string `json:"first_page"`
	LastPage  string `json:"last_page"`
}

// Authors returns the author display names in source order, skipping
// authorships without a name.
func (w Work) Authors() []string {
	var out []string
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			out = append(out, a.Author.DisplayName)
		}
	}
	return out
}

// JournalName returns the primary venue's display name, or "".
func (w Work) JournalName() string {
	if w.PrimaryLocation == nil || w.PrimaryLocation.Source == nil {
		return ""
	}
	return w.PrimaryLocation.Source.DisplayName
}

// FirstISSN returns the first ISSN the primary venue exposes, or "".
func (w Work) FirstISSN() string {
	if w.PrimaryLocation == nil || w.PrimaryLocation.Source == nil {
		return ""
	}
	if len(w.PrimaryLocation.Source.ISSN) == 0 {
		return ""
	}
	return w.PrimaryLocation.Source.ISSN[0]
}

// BareDOI returns the work's DOI with the https://doi.org/ prefix stripped.
// The top-level doi field wins; ids.doi is the fallback.
func (w Work) BareDOI() string {
	doi := w.DOI
	if doi == "" {
		doi = w.IDs.DOI
	}
	return strings.TrimPrefix(doi, "https://doi.org/")
}
