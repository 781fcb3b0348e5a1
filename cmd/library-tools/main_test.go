package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/library-tools/pkg/types"
)

func TestRegistryNames(t *testing.T) {
	r := newRegistry(&types.Settings{}, nil)
	assert.Equal(t, []string{
		"get_author_works",
		"get_latest_repository_works",
		"get_repository_work_details",
		"get_worldcat_classification",
		"get_worldcat_full_record",
		"lookup_worldcat_isbn",
		"search_authors",
		"search_databases",
		"search_guides",
		"search_journals",
		"search_primo",
		"search_repository",
		"search_works",
		"search_worldcat_books",
	}, r.Names())
}

func TestRegistryCallWithoutConfig(t *testing.T) {
	r := newRegistry(&types.Settings{}, nil)

	out, err := r.Call(context.Background(), "search_primo", json.RawMessage(`{"query":"dune"}`))
	require.NoError(t, err)
	assert.Contains(t, out, "PRIMO_API_KEY")

	_, err = r.Call(context.Background(), "search_everything", nil)
	assert.ErrorContains(t, err, "unknown tool")
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		pairs   []string
		want    string
		wantErr bool
	}{
		{"empty", "", nil, `{}`, false},
		{"object only", `{"query":"dune","limit":5}`, nil, `{"limit":5,"query":"dune"}`, false},
		{"flags override object", `{"limit":5}`, []string{"limit=7", "query=urban heat"}, `{"limit":7,"query":"urban heat"}`, false},
		{"json values", "", []string{"fetch_holdings=true", `check_institutions=["NYP"]`}, `{"check_institutions":["NYP"],"fetch_holdings":true}`, false},
		{"comments and trailing commas", "{\n  // search term\n  \"query\": \"dune\",\n}", nil, `{"query":"dune"}`, false},
		{"not an object", `[1,2]`, nil, "", true},
		{"missing equals", "", []string{"limit"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildArgs(tt.raw, tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestWriteCatalog(t *testing.T) {
	list := newRegistry(&types.Settings{}, nil).Tools()

	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, list, "table"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 15)
	assert.True(t, strings.HasPrefix(lines[1], "search_primo"))

	buf.Reset()
	require.NoError(t, writeCatalog(&buf, list, "yaml"))
	var entries []catalogEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 14)
	assert.Equal(t, "object", entries[0].InputSchema["type"])

	buf.Reset()
	require.NoError(t, writeCatalog(&buf, list, "json"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Len(t, entries, 14)

	assert.Error(t, writeCatalog(&buf, list, "xml"))
}

func TestWriteConfigured(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"none", nil, "Configured settings: none\n"},
		{"some", []string{"OPENALEX_EMAIL", "PRIMO_API_KEY"}, "Configured settings: OPENALEX_EMAIL, PRIMO_API_KEY\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeConfigured(&buf, tt.keys)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCiteUnknownSource(t *testing.T) {
	_, err := citeSearch(context.Background(), &types.Settings{}, "scholar", "dune", 5)
	assert.ErrorContains(t, err, "unknown source")
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()
	setupLogger("debug")
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelDebug))
	setupLogger("bogus")
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelWarn))
}
