// Package sources implements the six external bibliographic-API adapters.
// Every adapter shares one contract: given query parts or a joined query
// string, return a list of normalized records within an 8-second deadline,
// treating a non-fatal empty response as an empty list and surfacing a
// typed error only on an HTTP failure worth reporting to the caller.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/medsearch/aggregator/internal/domain/evidence"
	"github.com/medsearch/aggregator/internal/domain/record"
)

// Timeout is the fixed per-adapter deadline spec.md §4.C assigns to every
// source call.
const Timeout = 8 * time.Second

// UpstreamFailure wraps a non-2xx or transport-level failure from a
// source's HTTP call. It is recorded under sources.errors in the response
// envelope, never surfaced as the orchestration's own status code.
type UpstreamFailure struct {
	Source record.Source
	Err    error
}

func (e *UpstreamFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UpstreamFailure) Unwrap() error { return e.Err }

// Adapter is the contract every source implements. Query carries either
// the original parts (joined per-adapter as each adapter's contract
// requires) or a pre-joined string, depending on what the adapter needs.
type Adapter interface {
	Name() record.Source
	Search(ctx context.Context, parts []string) ([]record.Record, error)
}

// htmlTagPattern strips tag spans; per spec.md §9 this is an intentionally
// approximate contract ("remove all <…> spans"), not a real HTML parser.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// cdataPattern matches a CDATA section so its inner text can be unwrapped
// before tag stripping runs — a bare <[^>]*> pass would otherwise consume
// everything up to the first ">" inside the section and delete the text.
var cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// StripHTML expands CDATA sections to their inner text, removes tag spans,
// and unescapes entities, approximating plain text extraction from a
// source's HTML/XML-bearing title field.
func StripHTML(s string) string {
	s = cdataPattern.ReplaceAllString(s, "$1")
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(s, "")))
}

// fourDigitYear finds the first run of four digits in s, used to pull a
// publication year out of loosely-formatted date fields like PubMed's
// pubdate ("2019 Jan 15" or "2019 Jan-Feb").
var fourDigitYear = regexp.MustCompile(`\d{4}`)

// ParseYear extracts the first 4-digit run in s, or nil if none is found.
func ParseYear(s string) *int {
	m := fourDigitYear.FindString(s)
	if m == "" {
		return nil
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return record.IntPtr(y)
}

// ClassifyTitleFallback applies the pubType classifier first and, only
// when it yields no better-than-Other result, falls back to the title
// regex cascade — the fallback order every adapter's own classification
// step uses when pubTypes don't pin a level by themselves.
func ClassifyTitleFallback(pubTypes []string, title string) record.EvidenceLevel {
	if lvl := evidence.ClassifyPubType(pubTypes); lvl != record.Other {
		return lvl
	}
	return evidence.ClassifyByTitle(title)
}

// JoinAND joins parts with " AND ", the term-construction rule PubMed and
// Europe PMC share for a multi-part query.
func JoinAND(parts []string) string {
	return strings.Join(parts, " AND ")
}

// firstNAuthors truncates an author list to at most n entries, the limit
// every adapter applies per spec.md's Record.authors invariant.
func firstNAuthors(names []string, n int) []string {
	if len(names) <= n {
		return names
	}
	return names[:n]
}

var errHTTPStatus = errors.New("unexpected status code")

// getJSON performs a GET and decodes a 200 JSON body into out. Any
// transport failure or non-200 status is returned as an error for the
// caller to wrap in an UpstreamFailure; a 429 is handled by adapters that
// need to treat it as a soft-empty result rather than a failure, so this
// helper does not special-case it.
func getJSON(ctx context.Context, client *http.Client, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errHTTPStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// getRaw performs a GET and returns the response's status code and body
// bytes for adapters that need to inspect the status before deciding
// whether the body is even worth parsing (Semantic Scholar's 429 handling,
// J-STAGE's XML body).
func getRaw(ctx context.Context, client *http.Client, reqURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
