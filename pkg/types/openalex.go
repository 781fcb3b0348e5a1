// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Work is a scholarly work from OpenAlex.
type Work struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	PublicationYear *int     `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`
	DOI             string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	CitedByCount    int      `json:"cited_by_count" yaml:"cited_by_count"`
	IsOpenAccess    bool     `json:"is_open_access" yaml:"is_open_access"`
	Authors         []string `json:"authors" yaml:"authors"`
	Journal         string   `json:"journal,omitempty" yaml:"journal,omitempty"`
	Abstract        string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// Author is a researcher from OpenAlex.
type Author struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	WorksCount   int    `json:"works_count" yaml:"works_count"`
	CitedByCount int    `json:"cited_by_count" yaml:"cited_by_count"`
	HIndex       *int   `json:"h_index,omitempty" yaml:"h_index,omitempty"`

	// Institution is the first affiliation's display name.
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`
}

// Journal is a source (journal, repository, conference) from OpenAlex.
type Journal struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// ISSN is the linking ISSN (ISSN-L).
	ISSN         string `json:"issn,omitempty" yaml:"issn,omitempty"`
	Publisher    string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	WorksCount   int    `json:"works_count" yaml:"works_count"`
	IsOpenAccess bool   `json:"is_open_access" yaml:"is_open_access"`
}
