package main

import (
	"net/http"

	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/libguides"
	"github.com/pdiddy/library-tools/internal/openalex"
	"github.com/pdiddy/library-tools/internal/primo"
	"github.com/pdiddy/library-tools/internal/repository"
	"github.com/pdiddy/library-tools/internal/tools"
	"github.com/pdiddy/library-tools/internal/worldcat"
	"github.com/pdiddy/library-tools/pkg/types"
)

// newRegistry registers every service's tools against s. All services share
// one HTTP client.
func newRegistry(s *types.Settings, client *http.Client) *tools.Registry {
	if client == nil {
		client = httputil.NewClient(s.HTTP.Timeout)
	}
	return tools.NewRegistry(
		(&primo.Tools{Settings: s, Client: client}).Definitions(),
		(&openalex.Tools{Settings: s, Client: client}).Definitions(),
		(&libguides.Tools{Settings: s, Client: client}).Definitions(),
		(&repository.Tools{Settings: s, Client: client}).Definitions(),
		(&worldcat.Tools{Settings: s, Client: client}).Definitions(),
	)
}
