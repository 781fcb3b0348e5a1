// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RepositoryWork is an item from a bePress/Digital Commons repository.
type RepositoryWork struct {
	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`

	// PublicationYear is at most four characters.
	PublicationYear string `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`
	DocumentType    string `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	URL             string `json:"url,omitempty" yaml:"url,omitempty"`
	FulltextURL     string `json:"fulltext_url,omitempty" yaml:"fulltext_url,omitempty"`

	// Collection is the trailing path segment of the parent link (e.g.
	// "gc_etds"); CollectionName is its title-cased form ("Gc Etds").
	Collection     string `json:"collection,omitempty" yaml:"collection,omitempty"`
	CollectionName string `json:"collection_name,omitempty" yaml:"collection_name,omitempty"`

	// Abstract is only populated by detail fetches.
	Abstract         string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	PublicationTitle string   `json:"publication_title,omitempty" yaml:"publication_title,omitempty"`
	Advisor          string   `json:"advisor,omitempty" yaml:"advisor,omitempty"`
}

// RepositorySearchResult is one page of repository results.
type RepositorySearchResult struct {
	Works []RepositoryWork `json:"works" yaml:"works"`
	Total int              `json:"total" yaml:"total"`
	Query string           `json:"query,omitempty" yaml:"query,omitempty"`
}
