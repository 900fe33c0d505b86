package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/record"
)

// PubMed is the primary biomed index adapter (NCBI E-utilities). It is a
// two-step call: esearch for a ranked ID list, then esummary for the
// article metadata behind those IDs.
type PubMed struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewPubMed(baseURL string) *PubMed {
	return &PubMed{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: Timeout}}
}

func (p *PubMed) Name() record.Source { return record.SourcePubMed }

type pubmedSearchResult struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedSummaryResult struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedArticle struct {
	UID         string `json:"uid"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	PubDate     string `json:"pubdate"`
	PubType     []string `json:"pubtype"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

// Search runs esearch with the parts joined by " AND ", retmax=50, sorted
// by relevance, then esummary for the returned ID list.
func (p *PubMed) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	term := JoinAND(parts)

	searchURL := p.BaseURL + "/esearch.fcgi?" + url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmax":  {"50"},
		"sort":    {"relevance"},
		"retmode": {"json"},
	}.Encode()

	var search pubmedSearchResult
	if err := getJSON(ctx, p.HTTPClient, searchURL, &search); err != nil {
		return nil, &UpstreamFailure{Source: p.Name(), Err: err}
	}

	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return nil, nil
	}

	summaryURL := p.BaseURL + "/esummary.fcgi?" + url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}.Encode()

	var summary pubmedSummaryResult
	if err := getJSON(ctx, p.HTTPClient, summaryURL, &summary); err != nil {
		return nil, &UpstreamFailure{Source: p.Name(), Err: err}
	}

	var out []record.Record
	for _, id := range ids {
		raw, ok := summary.Result[id]
		if !ok {
			continue
		}
		var a pubmedArticle
		if err := json.Unmarshal(raw, &a); err != nil {
			continue
		}
		out = append(out, p.toRecord(a))
	}
	return out, nil
}

func (p *PubMed) toRecord(a pubmedArticle) record.Record {
	r := record.NewFromAdapter(record.SourcePubMed)
	r.ID = a.UID
	r.Title = StripHTML(a.Title)
	r.Journal = a.Source
	r.Year = ParseYear(a.PubDate)
	r.PubTypes = a.PubType
	r.URL = fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", a.UID)

	names := make([]string, 0, len(a.Authors))
	for _, au := range a.Authors {
		names = append(names, au.Name)
	}
	r.Authors = firstNAuthors(names, 5)

	for _, id := range a.ArticleIDs {
		if id.IDType == "doi" {
			r.DOI = id.Value
			break
		}
	}

	r.EvidenceLevel = ClassifyTitleFallback(a.PubType, r.Title)
	return r
}
