// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/library-tools/internal/toolerr"
)

func tokenServer(t *testing.T, expiresIn int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if expiresIn > 0 {
			fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":%d}`, n, expiresIn)
			return
		}
		fmt.Fprintf(w, `{"access_token":"tok-%d"}`, n)
	}))
}

func TestTokenCachedUntilExpiry(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int
		wantCalls int32
	}{
		{"long lifetime is reused", 3600, 1},
		{"lifetime inside skew is refreshed", 30, 2},
		{"missing lifetime uses the default", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := tokenServer(t, tt.expiresIn, &calls)
			defer srv.Close()

			ts := NewTokenSource(Config{TokenURL: srv.URL, ClientID: "id", ClientSecret: "secret", Service: "LibGuides"}, srv.Client())
			tok, err := ts.Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "tok-1", tok)

			_, err = ts.Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestTokenDefaultLifetime(t *testing.T) {
	var calls int32
	srv := tokenServer(t, 0, &calls)
	defer srv.Close()

	ts := NewTokenSource(Config{TokenURL: srv.URL, Service: "LibGuides"}, srv.Client())
	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ts.token)
	assert.WithinDuration(t, time.Now().Add(DefaultLifetime), ts.token.Expiry, 5*time.Second)
}

func TestTokenFormCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "lg-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "lg-secret", r.PostForm.Get("client_secret"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc","expires_in":"7200"}`))
	}))
	defer srv.Close()

	ts := NewTokenSource(Config{TokenURL: srv.URL, ClientID: "lg-id", ClientSecret: "lg-secret", Service: "LibGuides"}, srv.Client())
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestTokenBasicAuthAndScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "wskey", user)
		assert.Equal(t, "wssecret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "WorldCatMetadataAPI", r.PostForm.Get("scope"))
		assert.Empty(t, r.PostForm.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"oclc","expires_in":1199}`))
	}))
	defer srv.Close()

	ts := NewTokenSource(Config{
		TokenURL: srv.URL, ClientID: "wskey", ClientSecret: "wssecret",
		Scope: "WorldCatMetadataAPI", BasicAuth: true, Service: "WorldCat",
	}, srv.Client())
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "oclc", tok)
}

func TestTokenFailure(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{"rejected credentials", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, 401},
		{"missing token", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"invalid_client"}`))
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			ts := NewTokenSource(Config{TokenURL: srv.URL, Service: "LibGuides"}, srv.Client())
			_, err := ts.Token(context.Background())
			require.Error(t, err)

			var apiErr *toolerr.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, "Could not authenticate with LibGuides. Please check configuration.", apiErr.LLMMessage())
		})
	}
}

func TestInvalidate(t *testing.T) {
	var calls int32
	srv := tokenServer(t, 3600, &calls)
	defer srv.Close()

	ts := NewTokenSource(Config{TokenURL: srv.URL, Service: "LibGuides"}, srv.Client())
	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	ts.Invalidate()
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestTokenConcurrentUse(t *testing.T) {
	var calls int32
	srv := tokenServer(t, 3600, &calls)
	defer srv.Close()

	ts := NewTokenSource(Config{TokenURL: srv.URL, Service: "LibGuides"}, srv.Client())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := ts.Token(context.Background())
			assert.NoError(t, err)
			assert.NotEmpty(t, tok)
		}()
	}
	wg.Wait()

	// Refreshes are serialized, so the burst shares one token request.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	before := atomic.LoadInt32(&calls)
	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}
