// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package primo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/library-tools/pkg/types"
)

func TestFormatSearchEmpty(t *testing.T) {
	got := FormatSearch(&types.CatalogSearchResult{Query: "zzqxj", Documents: []types.CatalogDocument{}})
	assert.Equal(t, "No results found for 'zzqxj'. Try:\n1. Using broader search terms\n2. Checking spelling\n3. Searching in 'any' field instead of specific fields", got)
}

func TestFormatSearch(t *testing.T) {
	res := &types.CatalogSearchResult{
		Total: 42,
		Query: "darkness",
		Documents: []types.CatalogDocument{
			{
				Title:              "The Left Hand of Darkness",
				Authors:            []string{"Le Guin, Ursula K.$$QLe Guin", "Bloom, Harold", "Third"},
				PublicationYear:    "1969",
				Format:             "book",
				Publisher:          "Ace Books",
				ISBN:               "9780441478125",
				IsAvailable:        true,
				AvailabilityStatus: "available_in_maininstitution",
				Permalink:          "https://primo.example/x",
			},
			{Title: "Untitled", Authors: []string{}, AvailabilityStatus: "unavailable"},
		},
	}
	got := FormatSearch(res)

	assert.Contains(t, got, "Found 42 results for 'darkness' (showing 2):")
	assert.Contains(t, got, "1. The Left Hand of Darkness (1969) [book] by Le Guin, Ursula K., Bloom, Harold et al.")
	assert.Contains(t, got, "   Publisher: Ace Books | ISBN: 9780441478125")
	assert.Contains(t, got, "   ✓ Available (available_in_maininstitution)")
	assert.Contains(t, got, "   Link: https://primo.example/x")
	assert.Contains(t, got, "2. Untitled\n   Status: unavailable")
	assert.NotContains(t, got, "$$")
}

func TestCleanAuthor(t *testing.T) {
	assert.Equal(t, "Smith, J.", CleanAuthor("Smith, J.$$QSmith"))
	assert.Equal(t, "Plain", CleanAuthor(" Plain "))
	assert.Equal(t, "", CleanAuthor("$$Qonly"))
}

func TestToolSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "any,contains,nothing here" {
			w.Write([]byte(`{"info":{"total":0},"docs":[]}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	settings := &types.Settings{Primo: testConfig(srv.URL)}
	tl := &Tools{Settings: settings, Client: srv.Client()}

	defs := tl.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "search_primo", defs[0].Name)

	out := defs[0].Handler(context.Background(), json.RawMessage(`{"query":"nothing here"}`))
	assert.Contains(t, out, "No results found for 'nothing here'")

	out = defs[0].Handler(context.Background(), json.RawMessage(`{"query":"busy"}`))
	assert.Equal(t, "Rate limit exceeded. Please try again in a few moments.", out)

	unconfigured := &Tools{Settings: &types.Settings{}}
	out = unconfigured.Search(context.Background(), DefaultSearchArgs())
	assert.Equal(t, "Primo API key is required. Please set PRIMO_API_KEY in your environment or .env file.", out)
}
