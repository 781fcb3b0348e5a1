// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single request/response cycle shared by
// every client. Transport failures, timeouts, non-2xx responses and
// undecodable bodies all surface as *toolerr.APIError; nothing from
// net/http leaks past a client boundary. There are no retries: a 429 is
// returned to the caller as a typed error.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/library-tools/internal/toolerr"
)

// DefaultTimeout bounds one logical operation when none is configured.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a non-2xx body is kept in the technical message.
const maxErrorBody = 512

// Caller performs requests against one upstream service.
type Caller struct {
	Client    *http.Client
	UserAgent string

	// Service names the upstream in technical messages, e.g. "Primo".
	Service string

	// ConnectMessage is the LLM message used when the service cannot be
	// reached. Empty selects a generic message.
	ConnectMessage string
}

// NewClient returns an *http.Client with the given timeout (DefaultTimeout
// when zero or negative).
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// GetJSON issues a GET to base with the given query parameters and decodes
// the JSON response into out.
func (c *Caller) GetJSON(ctx context.Context, base string, params url.Values, header http.Header, out any) error {
	reqURL := base
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		reqURL = base + sep + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return toolerr.NewAPIError(fmt.Sprintf("creating %s request: %v", c.Service, err), 0, "").Wrap(err)
	}
	copyHeader(req.Header, header)
	return c.Do(req, out)
}

// Do sends req and decodes a 2xx JSON body into out (skipped when out is nil).
func (c *Caller) Do(req *http.Request, out any) error {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	client := c.Client
	if client == nil {
		client = NewClient(0)
	}

	resp, err := client.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("%s API error: %d", c.Service, resp.StatusCode)
		if detail := strings.TrimSpace(string(body)); detail != "" {
			msg += ": " + detail
		}
		return toolerr.NewAPIError(msg, resp.StatusCode, "")
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return toolerr.NewAPIError(fmt.Sprintf("parsing %s response: %v", c.Service, err), resp.StatusCode,
			"The service returned an unexpected response. Please try again.").Wrap(err)
	}
	return nil
}

func (c *Caller) transportError(err error) error {
	if isTimeout(err) {
		return toolerr.NewAPIError(fmt.Sprintf("%s request timed out: %v", c.Service, err), 0,
			fmt.Sprintf("The request to %s timed out. Please try again.", c.serviceName())).Wrap(err)
	}
	llm := c.ConnectMessage
	if llm == "" {
		llm = fmt.Sprintf("Could not connect to %s. Please try again.", c.serviceName())
	}
	return toolerr.NewAPIError(fmt.Sprintf("network error contacting %s: %v", c.Service, err), 0, llm).Wrap(err)
}

func (c *Caller) serviceName() string {
	if c.Service == "" {
		return "the service"
	}
	return c.Service
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
