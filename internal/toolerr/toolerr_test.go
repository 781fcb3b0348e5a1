// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorStatusBuckets(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"not found", 404, "not found"},
		{"unauthorized", 401, "Authentication failed"},
		{"forbidden", 403, "Authentication failed"},
		{"rate limited", 429, "try again in a few moments"},
		{"server error", 500, "temporarily unavailable"},
		{"bad gateway", 502, "temporarily unavailable"},
		{"bad request", 400, "Please try again"},
		{"no status", 0, "Please try again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError("upstream failed", tt.status, "")
			assert.Contains(t, FormatForLLM(err), tt.want)
			assert.Equal(t, tt.status, err.StatusCode)
		})
	}
}

func TestAPIErrorCustomMessageWins(t *testing.T) {
	err := NewAPIError("dial tcp: refused", 0, "Could not connect to the library catalog. Please try again.")
	assert.Equal(t, "Could not connect to the library catalog. Please try again.", FormatForLLM(err))
	assert.Equal(t, "dial tcp: refused", err.Error())
}

func TestAPIErrorWrapKeepsCause(t *testing.T) {
	err := NewAPIError("request failed", 0, "").Wrap(context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestBaseErrorDefaultsLLMMessage(t *testing.T) {
	err := NewError("something odd", "")
	assert.Equal(t, "something odd", FormatForLLM(err))

	err = NewError("something odd", "Friendly text.")
	assert.Equal(t, "Friendly text.", FormatForLLM(err))
}

func TestConfigErrors(t *testing.T) {
	err := MissingSetting("PRIMO_API_KEY", "Primo API key")
	assert.Equal(t, "PRIMO_API_KEY", err.Setting)
	assert.Equal(t, "PRIMO_API_KEY not configured", err.Error())
	assert.Contains(t, FormatForLLM(err), "Primo API key is required")
	assert.Contains(t, FormatForLLM(err), "PRIMO_API_KEY")

	generic := NewConfigError("OCLC credentials missing", "")
	assert.Equal(t, "Configuration error: OCLC credentials missing. Please check your environment variables or .env file.", FormatForLLM(generic))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("limit", "limit must be a number", "")
	assert.Equal(t, "limit", err.Field)
	assert.Equal(t, "Invalid input: limit must be a number. Please check your parameters and try again.", FormatForLLM(err))
}

func TestFormatForLLMFindsWrappedTaxonomyError(t *testing.T) {
	inner := NewAPIError("boom", 404, "")
	wrapped := fmt.Errorf("layer: %w", inner)
	assert.Contains(t, FormatForLLM(wrapped), "not found")
	assert.Equal(t, 404, StatusCode(wrapped))
}

func TestFormatForLLMGenericFallback(t *testing.T) {
	err := errors.New("/srv/app/secret.go:42 nil pointer dereference")
	got := FormatForLLM(err)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "An unexpected error occurred (errorString)")
	assert.Contains(t, got, "rephrasing")
	assert.NotContains(t, got, "secret.go")
	assert.NotContains(t, got, "nil pointer")
}

func TestFormatForLLMNil(t *testing.T) {
	assert.Equal(t, "", FormatForLLM(nil))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestRewrap(t *testing.T) {
	tests := []struct {
		name       string
		inner      error
		wantStatus int
		wantLLM    string
	}{
		{"keeps status bucket", NewAPIError("OpenAlex API error: 429", 429, ""), 429, "try again in a few moments"},
		{"keeps connection guidance", NewAPIError("dial tcp", 0, "Could not connect to OpenAlex. Please try again."), 0, "Could not connect to OpenAlex"},
		{"keeps validation guidance", NewValidationError("query", "query is required", ""), 0, "Invalid input: query is required"},
		{"plain error becomes generic", errors.New("boom"), 0, "An error occurred while contacting the service"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Rewrap("Failed to search works", tt.inner)
			assert.Equal(t, tt.wantStatus, err.StatusCode)
			assert.Contains(t, err.LLMMessage(), tt.wantLLM)
			assert.Contains(t, err.Error(), "Failed to search works")
			assert.ErrorIs(t, err, tt.inner)
		})
	}
}

func TestRewrapStatus(t *testing.T) {
	inner := NewAPIError("Repository API error: 503", 503, "")
	err := RewrapStatus("Repository search failed", "Could not search repository. Please try again.", inner)
	assert.Equal(t, 503, err.StatusCode)
	assert.Equal(t, "Could not search repository. Please try again.", err.LLMMessage())
	assert.ErrorIs(t, err, inner)

	timeout := NewAPIError("Repository request timed out", 0, "The request to Repository timed out. Please try again.")
	err = RewrapStatus("Repository search failed", "Could not search repository. Please try again.", timeout)
	assert.Equal(t, 0, err.StatusCode)
	assert.Equal(t, "The request to Repository timed out. Please try again.", err.LLMMessage())
}
