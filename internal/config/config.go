// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the Settings value shared by every client.
//
// Values are resolved in priority order: environment variables (including
// those loaded from a .env file) and an optional YAML config file, then the
// secrets directory, then the declared defaults below. Loading never fails on
// a missing value; each client validates the settings it needs when it is
// constructed.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/library-tools/pkg/types"
)

// Setting keys. They double as environment variable names and, lower-cased,
// as YAML config keys.
const (
	PrimoAPIKey         = "PRIMO_API_KEY"
	PrimoBaseURL        = "PRIMO_BASE_URL"
	PrimoVID            = "PRIMO_VID"
	PrimoScope          = "PRIMO_SCOPE"
	PrimoPermalinkHost  = "PRIMO_PERMALINK_HOST"
	PrimoPermalinkHosts = "PRIMO_PERMALINK_HOSTS"

	OpenAlexEmail   = "OPENALEX_EMAIL"
	OpenAlexBaseURL = "OPENALEX_BASE_URL"

	LibGuidesSiteID       = "LIBGUIDES_SITE_ID"
	LibGuidesClientID     = "LIBGUIDES_CLIENT_ID"
	LibGuidesClientSecret = "LIBGUIDES_CLIENT_SECRET"
	LibGuidesBaseURL      = "LIBGUIDES_BASE_URL"

	RepositoryBaseURL               = "REPOSITORY_BASE_URL"
	RepositoryAPIKey                = "REPOSITORY_API_KEY"
	RepositoryCollectionURLTemplate = "REPOSITORY_COLLECTION_URL_TEMPLATE"

	OCLCClientID      = "OCLC_CLIENT_ID"
	OCLCClientSecret  = "OCLC_CLIENT_SECRET"
	OCLCInstitutionID = "OCLC_INSTITUTION_ID"
	OCLCTokenURL      = "OCLC_TOKEN_URL"
	OCLCMetadataURL   = "OCLC_METADATA_URL"
	OCLCDiscoveryURL  = "OCLC_DISCOVERY_URL"

	HTTPTimeout   = "HTTP_TIMEOUT"
	HTTPUserAgent = "HTTP_USER_AGENT"
)

// Defaults lists the declared default for every key that has one.
var Defaults = map[string]string{
	PrimoBaseURL:        "https://api-na.hosted.exlibrisgroup.com/primo/v1/search",
	PrimoScope:          "Everything",
	PrimoPermalinkHost:  "primo.exlibrisgroup.com",
	PrimoPermalinkHosts: "cuny=cuny-gc.primo.exlibrisgroup.com",

	OpenAlexBaseURL: "https://api.openalex.org",

	LibGuidesBaseURL: "https://lgapi-us.libapps.com/1.2",

	RepositoryCollectionURLTemplate: "http://{domain}/{collection}",

	OCLCTokenURL:     "https://oauth.oclc.org/token",
	OCLCMetadataURL:  "https://metadata.api.oclc.org/worldcat",
	OCLCDiscoveryURL: "https://americas.discovery.api.oclc.org/worldcat/search/v2",

	HTTPTimeout:   "30s",
	HTTPUserAgent: "library-tools/dev",
}

// keys lists every setting Load reads, including those without a default.
var keys = []string{
	PrimoAPIKey, PrimoBaseURL, PrimoVID, PrimoScope, PrimoPermalinkHost, PrimoPermalinkHosts,
	OpenAlexEmail, OpenAlexBaseURL,
	LibGuidesSiteID, LibGuidesClientID, LibGuidesClientSecret, LibGuidesBaseURL,
	RepositoryBaseURL, RepositoryAPIKey, RepositoryCollectionURLTemplate,
	OCLCClientID, OCLCClientSecret, OCLCInstitutionID, OCLCTokenURL, OCLCMetadataURL, OCLCDiscoveryURL,
	HTTPTimeout, HTTPUserAgent,
}

// LoadDotEnv loads environment variables from the given .env files
// (default ".env"). Variables already present in the environment win.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Debug("loaded env file", "path", p)
	}
	return nil
}

// Load resolves every setting through v and returns a fresh Settings value.
// secrets is keyed by environment variable name (see secrets.ByEnvName) and
// overrides the declared defaults but not the environment or config file.
func Load(v *viper.Viper, secrets map[string]string) *types.Settings {
	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	for _, key := range keys {
		def := Defaults[key]
		if s, ok := secrets[key]; ok && s != "" {
			def = s
		}
		v.SetDefault(key, def)
	}

	get := func(key string) string { return strings.TrimSpace(v.GetString(key)) }

	timeout := v.GetDuration(HTTPTimeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &types.Settings{
		HTTP: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: get(HTTPUserAgent),
		},
		Primo: types.PrimoConfig{
			APIKey:         get(PrimoAPIKey),
			BaseURL:        get(PrimoBaseURL),
			VID:            get(PrimoVID),
			Scope:          get(PrimoScope),
			PermalinkHost:  get(PrimoPermalinkHost),
			PermalinkHosts: hostTable(v.Get(PrimoPermalinkHosts)),
		},
		OpenAlex: types.OpenAlexConfig{
			Email:   get(OpenAlexEmail),
			BaseURL: get(OpenAlexBaseURL),
		},
		LibGuides: types.LibGuidesConfig{
			SiteID:       get(LibGuidesSiteID),
			ClientID:     get(LibGuidesClientID),
			ClientSecret: get(LibGuidesClientSecret),
			BaseURL:      get(LibGuidesBaseURL),
		},
		Repository: types.RepositoryConfig{
			BaseURL:               get(RepositoryBaseURL),
			APIKey:                get(RepositoryAPIKey),
			CollectionURLTemplate: get(RepositoryCollectionURLTemplate),
		},
		WorldCat: types.WorldCatConfig{
			ClientID:      get(OCLCClientID),
			ClientSecret:  get(OCLCClientSecret),
			InstitutionID: get(OCLCInstitutionID),
			TokenURL:      get(OCLCTokenURL),
			MetadataURL:   get(OCLCMetadataURL),
			DiscoveryURL:  get(OCLCDiscoveryURL),
		},
	}
}

// Configured reports which keys currently resolve to a non-empty value, in
// sorted order. Secret values are never returned.
func Configured(v *viper.Viper) []string {
	var out []string
	for _, key := range keys {
		if strings.TrimSpace(v.GetString(key)) != "" {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// hostTable accepts either a "marker=host,marker=host" string (environment
// form) or a YAML mapping and returns marker (lower-cased) to host.
func hostTable(raw any) map[string]string {
	table := map[string]string{}
	switch t := raw.(type) {
	case string:
		for _, pair := range strings.Split(t, ",") {
			marker, host, ok := strings.Cut(pair, "=")
			marker, host = strings.TrimSpace(marker), strings.TrimSpace(host)
			if !ok || marker == "" || host == "" {
				continue
			}
			table[strings.ToLower(marker)] = host
		}
	case map[string]any:
		for marker, host := range t {
			if s, ok := host.(string); ok && strings.TrimSpace(s) != "" {
				table[strings.ToLower(marker)] = strings.TrimSpace(s)
			}
		}
	case map[string]string:
		for marker, host := range t {
			if strings.TrimSpace(host) != "" {
				table[strings.ToLower(marker)] = strings.TrimSpace(host)
			}
		}
	}
	return table
}
