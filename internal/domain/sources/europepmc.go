package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/record"
)

// EuropePMC is the European biomed index adapter. Like PubMed, it joins
// its parts with " AND "; a part may itself be a parenthesized AND/OR
// expression built by the caller (the patient-voice branch, in
// particular, appends a quoted-term disjunction as one part).
type EuropePMC struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewEuropePMC(baseURL string) *EuropePMC {
	return &EuropePMC{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: Timeout}}
}

func (e *EuropePMC) Name() record.Source { return record.SourceEuropePMC }

type europePMCResponse struct {
	ResultList struct {
		Result []europePMCArticle `json:"result"`
	} `json:"resultList"`
}

type europePMCArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	JournalInfo struct {
		Journal struct {
			Title string `json:"title"`
		} `json:"journal"`
	} `json:"journalInfo"`
	PubYear    string `json:"pubYear"`
	DOI        string `json:"doi"`
	PubTypeList struct {
		PubType []string `json:"pubType"`
	} `json:"pubTypeList"`
	AuthorString string `json:"authorString"`
	CitedByCount *int   `json:"citedByCount"`
}

// Search joins every part with " AND " into one query string; any part
// that is already a boolean expression (OR/quoted terms) is passed
// through as-is.
func (e *EuropePMC) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	query := JoinAND(parts)
	reqURL := e.BaseURL + "/search?" + url.Values{
		"query":  {query},
		"format": {"json"},
		"pageSize": {"50"},
	}.Encode()

	var parsed europePMCResponse
	if err := getJSON(ctx, e.HTTPClient, reqURL, &parsed); err != nil {
		return nil, &UpstreamFailure{Source: e.Name(), Err: err}
	}

	out := make([]record.Record, 0, len(parsed.ResultList.Result))
	for _, a := range parsed.ResultList.Result {
		out = append(out, e.toRecord(a))
	}
	return out, nil
}

func (e *EuropePMC) toRecord(a europePMCArticle) record.Record {
	r := record.NewFromAdapter(record.SourceEuropePMC)
	r.ID = a.ID
	r.Title = StripHTML(a.Title)
	r.Journal = a.JournalInfo.Journal.Title
	r.Year = ParseYear(a.PubYear)
	r.DOI = a.DOI
	r.Citations = a.CitedByCount
	r.PubTypes = a.PubTypeList.PubType
	r.URL = "https://europepmc.org/article/MED/" + a.ID

	if a.AuthorString != "" {
		r.Authors = firstNAuthors(splitAuthorString(a.AuthorString), 5)
	}

	r.EvidenceLevel = ClassifyTitleFallback(a.PubTypeList.PubType, r.Title)
	return r
}

func splitAuthorString(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
