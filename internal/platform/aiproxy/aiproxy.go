// Package aiproxy forwards the two optional AI-assisted endpoints (query
// parsing and result summarization) to an external AI service, carrying
// the caller-supplied API key straight through rather than holding any
// credential of its own.
package aiproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client proxies requests to a configured AI endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient builds a Client bound to endpoint.
func NewClient(endpoint string) *Client {
	return &Client{Endpoint: endpoint, HTTPClient: &http.Client{}}
}

// ErrUpstreamFailure wraps a non-2xx or transport failure from the AI
// endpoint; the handler maps it straight to 502.
type ErrUpstreamFailure struct {
	Err error
}

func (e *ErrUpstreamFailure) Error() string { return fmt.Sprintf("ai proxy upstream: %v", e.Err) }
func (e *ErrUpstreamFailure) Unwrap() error  { return e.Err }

// ParseRequest is the /api/ai/parse request body.
type ParseRequest struct {
	Query  string `json:"query"`
	APIKey string `json:"apiKey"`
}

// SummaryRequest is the /api/ai/summary request body.
type SummaryRequest struct {
	Results interface{} `json:"results"`
	Query   string      `json:"query"`
	APIKey  string      `json:"apiKey"`
}

// SummaryResponse is the /api/ai/summary response body.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// Parse POSTs req as JSON to <endpoint><path> (the handler uses "/parse"
// and "/summary") and decodes the JSON the AI service returns into out.
func (c *Client) Parse(ctx context.Context, path string, req interface{}, out interface{}) error {
	if c.Endpoint == "" {
		return &ErrUpstreamFailure{Err: fmt.Errorf("no AI endpoint configured")}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &ErrUpstreamFailure{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+path, bytes.NewReader(body))
	if err != nil {
		return &ErrUpstreamFailure{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return &ErrUpstreamFailure{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ErrUpstreamFailure{Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ErrUpstreamFailure{Err: err}
	}
	return nil
}
