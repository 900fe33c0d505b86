// Package meshproxy proxies MeSH descriptor lookups to an operator-configured
// lookup endpoint (MESH_BASE_URL), returning only the label strings.
package meshproxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Client queries a MeSH lookup endpoint for descriptor labels.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a Client bound to baseURL.
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: &http.Client{}}
}

type meshTerm struct {
	Label string `json:"label"`
}

// Lookup queries the MeSH endpoint for q and returns its label strings.
// Any network, decode, or non-2xx failure degrades to an empty list rather
// than an error — this surface is contract-only, never load-bearing.
func (c *Client) Lookup(ctx context.Context, q string) []string {
	if c.BaseURL == "" || len(q) < 2 {
		return []string{}
	}

	reqURL := c.BaseURL + "?" + url.Values{"q": {q}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return []string{}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return []string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []string{}
	}

	var terms []meshTerm
	if err := json.NewDecoder(resp.Body).Decode(&terms); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Label != "" {
			out = append(out, t.Label)
		}
	}
	return out
}
