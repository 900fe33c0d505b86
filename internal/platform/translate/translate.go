// Package translate detects Japanese script and proxies short strings to
// an external translation endpoint, degrading to an absent result on any
// failure rather than raising.
package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Timeout is the fixed deadline every translate call is bound by per the
// 4.B contract; it is not configurable per-call.
const Timeout = 5 * time.Second

// japaneseRanges covers CJK Unified Ideographs, Hiragana, Katakana, and CJK
// Compatibility, the last split into its ideographs block and its
// symbols block, giving five ranges. A single matching code point is
// sufficient.
var japaneseRanges = []struct{ lo, hi rune }{
	{0x4E00, 0x9FFF},   // CJK Unified Ideographs
	{0x3040, 0x309F},   // Hiragana
	{0x30A0, 0x30FF},   // Katakana
	{0xF900, 0xFAFF},   // CJK Compatibility Ideographs
	{0x3300, 0x33FF},   // CJK Compatibility
}

// IsJapanese reports whether any code point in text falls in a Japanese
// Unicode range.
func IsJapanese(text string) bool {
	for _, r := range text {
		for _, rng := range japaneseRanges {
			if r >= rng.lo && r <= rng.hi {
				return true
			}
		}
	}
	return false
}

// Client issues translation requests against a single configured endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient builds a Client bound to endpoint with the fixed 5-second
// deadline wired into its own http.Client.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: Timeout},
	}
}

// segment is one [translatedText, originalText, ...] tuple in the
// translation endpoint's response shape; only index 0 is consumed.
type segment []json.RawMessage

// Translate issues a GET to the configured endpoint with a 5-second
// deadline, concatenates the first element of every segment in the
// response's first array, and returns that string. It returns ("", false)
// — the absent sentinel — on an empty or unchanged translation, or on any
// network, timeout, or parse failure. Translate never returns an error:
// per spec.md §7, translation failure must degrade silently.
func (c *Client) Translate(ctx context.Context, text, src, tgt string) (string, bool) {
	if c.Endpoint == "" || text == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("text", text)
	q.Set("src", src)
	q.Set("tgt", tgt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", false
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var top []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		return "", false
	}
	if len(top) == 0 {
		return "", false
	}

	var segments []segment
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", false
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			// The segment's first slot may carry a nested array rather
			// than a string in some responses; skip what doesn't parse
			// as text instead of failing the whole translation.
			continue
		}
		b.WriteString(piece)
	}

	result := b.String()
	if result == "" || strings.EqualFold(result, text) {
		return "", false
	}
	return result, true
}
