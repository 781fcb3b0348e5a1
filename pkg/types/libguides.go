// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Database is an entry of the LibGuides A-Z database list.
type Database struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	URL           string   `json:"url,omitempty" yaml:"url,omitempty"`
	AltNames      []string `json:"alt_names" yaml:"alt_names"`
	Subjects      []string `json:"subjects" yaml:"subjects"`
	Types         []string `json:"types" yaml:"types"`
	Vendor        string   `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	RequiresProxy bool     `json:"requires_proxy" yaml:"requires_proxy"`
}

// DatabaseSearchResult holds the filtered, limited database list.
type DatabaseSearchResult struct {
	Databases []Database `json:"databases" yaml:"databases"`
	Total     int        `json:"total" yaml:"total"`
}

// GuidePage is a page (tab) within a guide.
type GuidePage struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Guide is a LibGuides research guide.
type Guide struct {
	ID          int         `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string      `json:"url,omitempty" yaml:"url,omitempty"`
	Pages       []GuidePage `json:"pages" yaml:"pages"`

	// OwnerName is "first last"; empty when both parts are blank.
	OwnerName   string `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
	StatusLabel string `json:"status_label,omitempty" yaml:"status_label,omitempty"`
}

// GuideSearchResult holds guides from either a by-id fetch or a search.
// Total always equals len(Guides).
type GuideSearchResult struct {
	Guides []Guide `json:"guides" yaml:"guides"`
	Total  int     `json:"total" yaml:"total"`
}
