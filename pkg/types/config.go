// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every client.
type HTTPConfig struct {
	// Timeout bounds a single logical operation, including any sub-calls.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "library-tools/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PrimoConfig holds settings for the Ex Libris Primo catalog client.
type PrimoConfig struct {
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url" yaml:"base_url"`

	// VID is the Primo view id (e.g. "01INST:VIEW").
	VID   string `json:"vid" yaml:"vid"`
	Scope string `json:"scope" yaml:"scope"`

	// PermalinkHost is used when no entry of PermalinkHosts matches the view id.
	PermalinkHost string `json:"permalink_host" yaml:"permalink_host"`

	// PermalinkHosts maps a case-insensitive marker found in the view id to the
	// discovery host that serves that institution's permalinks.
	PermalinkHosts map[string]string `json:"permalink_hosts,omitempty" yaml:"permalink_hosts,omitempty"`
}

// OpenAlexConfig holds settings for the OpenAlex client.
type OpenAlexConfig struct {
	// Email is sent as the mailto parameter for polite pool access.
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// LibGuidesConfig holds settings for the Springshare LibGuides client.
type LibGuidesConfig struct {
	SiteID       string `json:"site_id" yaml:"site_id"`
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	BaseURL      string `json:"base_url" yaml:"base_url"`
}

// RepositoryConfig holds settings for the bePress/Digital Commons client.
type RepositoryConfig struct {
	// BaseURL is the content-out API root, e.g.
	// https://content-out.bepress.com/v2/institution.edu
	BaseURL string `json:"base_url" yaml:"base_url"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// CollectionURLTemplate builds the parent_link filter for a collection.
	// {domain} is the last path segment of BaseURL, {collection} the code.
	CollectionURLTemplate string `json:"collection_url_template" yaml:"collection_url_template"`
}

// WorldCatConfig holds settings for the OCLC WorldCat client.
type WorldCatConfig struct {
	ClientID      string `json:"client_id" yaml:"client_id"`
	ClientSecret  string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	InstitutionID string `json:"institution_id" yaml:"institution_id"`
	TokenURL      string `json:"token_url" yaml:"token_url"`
	MetadataURL   string `json:"metadata_url" yaml:"metadata_url"`
	DiscoveryURL  string `json:"discovery_url" yaml:"discovery_url"`
}

// Settings groups the configuration of every client. It is built once by
// the config loader and passed explicitly to the tool layer.
type Settings struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Primo      PrimoConfig      `json:"primo" yaml:"primo"`
	OpenAlex   OpenAlexConfig   `json:"openalex" yaml:"openalex"`
	LibGuides  LibGuidesConfig  `json:"libguides" yaml:"libguides"`
	Repository RepositoryConfig `json:"repository" yaml:"repository"`
	WorldCat   WorldCatConfig   `json:"worldcat" yaml:"worldcat"`
}
