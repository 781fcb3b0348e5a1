// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oauth adapts golang.org/x/oauth2 client-credentials grants to the
// tool error model.
//
// A cached token is reused until Skew before its server-declared expiry.
// Refreshes are serialized so concurrent callers share one token request.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/pdiddy/library-tools/internal/toolerr"
)

// Skew is subtracted from the server-declared lifetime before caching.
const Skew = 60 * time.Second

// DefaultLifetime is assumed when the token response omits expires_in.
const DefaultLifetime = 3600 * time.Second

// Config describes one client-credentials endpoint.
type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string

	// Scope is sent as the scope form field when non-empty. Multiple scopes
	// are space separated.
	Scope string

	// BasicAuth sends the credentials as an HTTP basic auth header instead of
	// client_id/client_secret form fields.
	BasicAuth bool

	// Service names the provider in error messages, e.g. "LibGuides".
	Service string
}

// TokenSource hands out bearer tokens, refreshing them on expiry.
type TokenSource struct {
	service string
	grant   *clientcredentials.Config
	client  *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

// NewTokenSource returns a TokenSource that requests tokens from
// cfg.TokenURL using client.
func NewTokenSource(cfg Config, client *http.Client) *TokenSource {
	style := oauth2.AuthStyleInParams
	if cfg.BasicAuth {
		style = oauth2.AuthStyleInHeader
	}
	return &TokenSource{
		service: cfg.Service,
		grant: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       strings.Fields(cfg.Scope),
			AuthStyle:    style,
		},
		client: client,
	}
}

// Token returns a valid bearer token, fetching a new one when the cached
// token is missing or within Skew of expiry. Failures are *toolerr.APIError
// values with an authentication-specific LLM message.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if ts.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, ts.client)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	prev := ts.token
	src := oauth2.ReuseTokenSourceWithExpiry(prev, grantSource{ctx: ctx, grant: ts.grant}, Skew)
	tok, err := src.Token()
	if err != nil {
		return "", ts.failure(err)
	}
	if tok != prev {
		slog.Debug("refreshed access token", "service", ts.service, "expiry", tok.Expiry)
	}
	ts.token = tok
	return tok.AccessToken, nil
}

// Invalidate drops the cached token so the next call fetches a new one.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = nil
	ts.mu.Unlock()
}

// failure maps an oauth2 error to an APIError. Only non-2xx token endpoint
// responses carry a status code.
func (ts *TokenSource) failure(err error) error {
	status := 0
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil && (re.Response.StatusCode < 200 || re.Response.StatusCode > 299) {
		status = re.Response.StatusCode
	}
	return toolerr.NewAPIError(
		fmt.Sprintf("%s OAuth failed: %v", ts.service, err), status, authMessage(ts.service),
	).Wrap(err)
}

// grantSource performs one client-credentials request per Token call.
type grantSource struct {
	ctx   context.Context
	grant *clientcredentials.Config
}

func (g grantSource) Token() (*oauth2.Token, error) {
	tok, err := g.grant.Token(g.ctx)
	if err != nil {
		return nil, err
	}
	if tok.Expiry.IsZero() {
		tok.Expiry = time.Now().Add(DefaultLifetime)
	}
	return tok, nil
}

func authMessage(service string) string {
	return fmt.Sprintf("Could not authenticate with %s. Please check configuration.", service)
}
