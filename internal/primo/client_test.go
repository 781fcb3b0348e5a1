// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package primo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

const searchFixture = `{
  "info": {"total": 2},
  "docs": [
    {
      "context": "L",
      "pnx": {
        "display": {
          "title": ["The Left Hand of Darkness"],
          "contributor": ["Le Guin, Ursula K.$$QLe Guin", "A", "B", "C", "D", "E"],
          "creationdate": ["1969-03-01"],
          "type": ["book"],
          "publisher": ["Ace Books"],
          "identifier": ["$$CISBN$$V9780441478125"]
        },
        "control": {"recordid": ["alma991000"]},
        "addata": {}
      },
      "delivery": {"availability": ["available_in_maininstitution"]}
    },
    "not a document",
    {
      "context": "PC",
      "pnx": {
        "display": {"type": ["journal"]},
        "control": {"recordid": ["cdi_journal_1"]},
        "addata": {"issn": ["1234-5678"]}
      },
      "delivery": {"availability": []}
    }
  ]
}`

func testConfig(baseURL string) types.PrimoConfig {
	return types.PrimoConfig{
		APIKey:         "l7xx-test",
		BaseURL:        baseURL,
		VID:            "01CUNY_GC:CUNY_GC",
		Scope:          "",
		PermalinkHost:  "primo.exlibrisgroup.com",
		PermalinkHosts: map[string]string{"cuny": "cuny-gc.primo.exlibrisgroup.com"},
	}
}

func TestSearch(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL), types.HTTPConfig{}, srv.Client())
	require.NoError(t, err)

	res, err := c.Search(context.Background(), SearchParams{Query: "left hand of darkness", Field: FieldTitle, Limit: 5, Start: 10})
	require.NoError(t, err)

	assert.Equal(t, "title,contains,left hand of darkness", got.Get("q"))
	assert.Equal(t, "01CUNY_GC:CUNY_GC", got.Get("vid"))
	assert.Equal(t, "Everything", got.Get("scope"))
	assert.Equal(t, "l7xx-test", got.Get("apikey"))
	assert.Equal(t, "5", got.Get("limit"))
	assert.Equal(t, "10", got.Get("offset"))
	assert.Equal(t, "rank", got.Get("sort"))
	assert.Empty(t, got.Get("tab"))

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "left hand of darkness", res.Query)
	require.Len(t, res.Documents, 2, "the malformed document is dropped")

	book := res.Documents[0]
	assert.Equal(t, "The Left Hand of Darkness", book.Title)
	assert.Len(t, book.Authors, 5)
	assert.Equal(t, "1969", book.PublicationYear)
	assert.Equal(t, "book", book.Format)
	assert.Equal(t, "Ace Books", book.Publisher)
	assert.Empty(t, book.ISSN)
	assert.Equal(t, "$$CISBN$$V9780441478125", book.ISBN)
	assert.True(t, book.IsAvailable)
	assert.Equal(t, "available_in_maininstitution", book.AvailabilityStatus)
	assert.Equal(t, "https://cuny-gc.primo.exlibrisgroup.com/discovery/fulldisplay?docid=alma991000&context=L&vid=01CUNY_GC%3ACUNY_GC", book.Permalink)

	journal := res.Documents[1]
	assert.Equal(t, "Untitled", journal.Title)
	assert.NotNil(t, journal.Authors)
	assert.Empty(t, journal.Authors)
	assert.Empty(t, journal.PublicationYear)
	assert.Equal(t, "1234-5678", journal.ISSN)
	assert.Empty(t, journal.ISBN, "ISBN is only read when ISSN is absent")
	assert.False(t, journal.IsAvailable)
	assert.Empty(t, journal.AvailabilityStatus)
}

func TestSearchClampsAndJournals(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		start      int
		wantLimit  string
		wantOffset string
	}{
		{"limit below range", 0, 0, "1", "0"},
		{"limit above range", 1000, 5, "100", "5"},
		{"negative start", 10, -3, "10", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got url.Values
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query()
				w.Write([]byte(`{"info":{"total":0},"docs":[]}`))
			}))
			defer srv.Close()

			c, err := New(testConfig(srv.URL), types.HTTPConfig{}, srv.Client())
			require.NoError(t, err)
			_, err = c.Search(context.Background(), SearchParams{Query: "nature", Limit: tt.limit, Start: tt.start, JournalsOnly: true})
			require.NoError(t, err)

			assert.Equal(t, tt.wantLimit, got.Get("limit"))
			assert.Equal(t, tt.wantOffset, got.Get("offset"))
			assert.Equal(t, "jsearch_slot", got.Get("tab"))
			assert.Equal(t, "any,contains,nature", got.Get("q"))
		})
	}
}

func TestSearchValidation(t *testing.T) {
	c, err := New(testConfig("http://127.0.0.1:1"), types.HTTPConfig{}, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		params SearchParams
		field  string
	}{
		{"empty query", SearchParams{Query: "   "}, "query"},
		{"unknown field", SearchParams{Query: "x", Field: "publisher"}, "field"},
		{"unknown operator", SearchParams{Query: "x", Operator: "fuzzy"}, "operator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Search(context.Background(), tt.params)
			var vErr *toolerr.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Contains(t, vErr.LLMMessage(), "Invalid input")
		})
	}
}

func TestSearchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL), types.HTTPConfig{}, srv.Client())
	require.NoError(t, err)
	_, err = c.Search(context.Background(), SearchParams{Query: "x"})
	assert.Equal(t, 403, toolerr.StatusCode(err))
	assert.Contains(t, toolerr.FormatForLLM(err), "Authentication failed")

	closed := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := closed.URL
	closed.Close()
	c, err = New(testConfig(addr), types.HTTPConfig{}, &http.Client{})
	require.NoError(t, err)
	_, err = c.Search(context.Background(), SearchParams{Query: "x"})
	assert.Equal(t, "Could not connect to the library catalog. Please try again.", toolerr.FormatForLLM(err))
}

func TestNewRequiresSettings(t *testing.T) {
	_, err := New(types.PrimoConfig{VID: "x"}, types.HTTPConfig{}, nil)
	var cfgErr *toolerr.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "PRIMO_API_KEY", cfgErr.Setting)

	_, err = New(types.PrimoConfig{APIKey: "k"}, types.HTTPConfig{}, nil)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "PRIMO_VID", cfgErr.Setting)
}

func TestPermalinkHost(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.PrimoConfig
		want string
	}{
		{"marker match is case-insensitive", types.PrimoConfig{VID: "01CUNY_GC:CUNY_GC", PermalinkHosts: map[string]string{"cuny": "cuny-gc.primo.exlibrisgroup.com"}}, "cuny-gc.primo.exlibrisgroup.com"},
		{"configured default", types.PrimoConfig{VID: "01LEHIGH:LU", PermalinkHost: "lehigh.example.com", PermalinkHosts: map[string]string{"cuny": "x"}}, "lehigh.example.com"},
		{"built-in default", types.PrimoConfig{VID: "01INST:VIEW"}, "primo.exlibrisgroup.com"},
		{"first marker in lexical order", types.PrimoConfig{VID: "ab", PermalinkHosts: map[string]string{"b": "b.host", "a": "a.host"}}, "a.host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permalinkHost(tt.cfg))
		})
	}

	c := &Client{cfg: types.PrimoConfig{VID: "V"}}
	assert.Empty(t, c.Permalink("", "L"))
	assert.Empty(t, c.Permalink("id", ""))
}
