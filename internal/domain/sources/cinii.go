package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/record"
)

// CiNii is the Japanese multidisciplinary index adapter. Its open-search
// list view does not report authors.
type CiNii struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewCiNii(baseURL string) *CiNii {
	return &CiNii{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: Timeout}}
}

func (c *CiNii) Name() record.Source { return record.SourceCiNii }

type ciniiResponse struct {
	Items []ciniiItem `json:"items"`
}

type ciniiItem struct {
	ID          string `json:"@id"`
	Title       string `json:"title"`
	PublisherName string `json:"publisher,omitempty"`
	PubDate     string `json:"pubDate"`
	Identifiers []struct {
		Type  string `json:"@type"`
		Value string `json:"value"`
	} `json:"dc:identifier"`
}

func (c *CiNii) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	query := strings.Join(parts, " ")
	reqURL := c.BaseURL + "?" + url.Values{
		"q":      {query},
		"format": {"json"},
	}.Encode()

	status, body, err := getRaw(ctx, c.HTTPClient, reqURL)
	if err != nil {
		return nil, &UpstreamFailure{Source: c.Name(), Err: err}
	}
	if status != http.StatusOK {
		return nil, &UpstreamFailure{Source: c.Name(), Err: errHTTPStatus}
	}

	var parsed ciniiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamFailure{Source: c.Name(), Err: err}
	}

	out := make([]record.Record, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out = append(out, c.toRecord(item))
	}
	return out, nil
}

func (c *CiNii) toRecord(item ciniiItem) record.Record {
	r := record.NewFromAdapter(record.SourceCiNii)
	r.ID = item.ID
	r.Title = StripHTML(item.Title)
	r.Journal = item.PublisherName
	r.Year = ParseYear(item.PubDate)
	r.URL = item.ID

	for _, id := range item.Identifiers {
		if id.Type == "cir:DOI" {
			r.DOI = id.Value
			break
		}
	}

	r.EvidenceLevel = ClassifyTitleFallback(nil, r.Title)
	return r
}
