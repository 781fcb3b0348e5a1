// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the settings structs and the normalized records that
// every client produces. Optional fields are zero values or nil pointers when
// the upstream record omits them; list fields are never nil after parsing.
package types

// CatalogDocument is one hit from a Primo catalog search.
type CatalogDocument struct {
	Title string `json:"title" yaml:"title"`

	// Authors holds at most five contributor strings in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PublicationYear is the first four characters of the creation date.
	PublicationYear string `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	ISSN      string `json:"issn,omitempty" yaml:"issn,omitempty"`

	// ISBN is only populated when the record carries no ISSN.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	Permalink string `json:"permalink,omitempty" yaml:"permalink,omitempty"`

	// IsAvailable is true when the delivery availability list is non-empty.
	IsAvailable bool `json:"is_available" yaml:"is_available"`

	// AvailabilityStatus is the first raw availability code, e.g.
	// "available_in_maininstitution".
	AvailabilityStatus string `json:"availability_status,omitempty" yaml:"availability_status,omitempty"`
}

// CatalogSearchResult is one page of a Primo search.
type CatalogSearchResult struct {
	// Total is the server-reported hit count; it may exceed len(Documents).
	Total     int               `json:"total" yaml:"total"`
	Documents []CatalogDocument `json:"documents" yaml:"documents"`
	Query     string            `json:"query" yaml:"query"`
}
