package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/evidence"
	"github.com/medsearch/aggregator/internal/domain/record"
)

// SemanticScholar is the citation-aggregator adapter. A 429 is a known
// benign rate-limit response and must degrade to an empty result list,
// not an UpstreamFailure — per spec.md §4.C and §7 (UpstreamSoftEmpty).
type SemanticScholar struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewSemanticScholar(baseURL string) *SemanticScholar {
	return &SemanticScholar{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: Timeout}}
}

func (s *SemanticScholar) Name() record.Source { return record.SourceS2 }

type s2Response struct {
	Data []s2Paper `json:"data"`
}

type s2Paper struct {
	PaperID          string   `json:"paperId"`
	Title            string   `json:"title"`
	Venue            string   `json:"venue"`
	Year             *int     `json:"year"`
	PublicationTypes []string `json:"publicationTypes"`
	CitationCount    *int     `json:"citationCount"`
	ExternalIDs      struct {
		DOI string `json:"DOI"`
	} `json:"externalIds"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

var systematicPattern = regexp.MustCompile(`(?i)systematic`)

func (s *SemanticScholar) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	query := strings.Join(parts, " ")
	reqURL := s.BaseURL + "/paper/search?" + url.Values{
		"query":  {query},
		"limit":  {"50"},
		"fields": {"title,venue,year,publicationTypes,citationCount,externalIds,authors"},
	}.Encode()

	status, body, err := getRaw(ctx, s.HTTPClient, reqURL)
	if err != nil {
		return nil, &UpstreamFailure{Source: s.Name(), Err: err}
	}
	if status == http.StatusTooManyRequests {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, &UpstreamFailure{Source: s.Name(), Err: errHTTPStatus}
	}

	var parsed s2Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamFailure{Source: s.Name(), Err: err}
	}

	out := make([]record.Record, 0, len(parsed.Data))
	for _, p := range parsed.Data {
		out = append(out, s.toRecord(p))
	}
	return out, nil
}

func (s *SemanticScholar) toRecord(p s2Paper) record.Record {
	r := record.NewFromAdapter(record.SourceS2)
	r.ID = p.PaperID
	r.Title = StripHTML(p.Title)
	r.Journal = p.Venue
	r.Year = p.Year
	r.PubTypes = p.PublicationTypes
	r.DOI = p.ExternalIDs.DOI
	r.Citations = p.CitationCount
	r.URL = "https://www.semanticscholar.org/paper/" + p.PaperID

	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	r.Authors = firstNAuthors(names, 5)

	r.EvidenceLevel = classifyS2(p.PublicationTypes, r.Title)
	return r
}

// classifyS2 implements the S2-specific publicationTypes cascade spec.md
// §4.C spells out, falling back to title-based classification only when
// none of those tags match.
func classifyS2(pubTypes []string, title string) record.EvidenceLevel {
	lowered := make([]string, len(pubTypes))
	for i, t := range pubTypes {
		lowered[i] = strings.ToLower(t)
	}
	has := func(v string) bool {
		for _, t := range lowered {
			if strings.Contains(t, v) {
				return true
			}
		}
		return false
	}

	switch {
	case has("metaanalysis"), has("meta-analysis"):
		return record.SRMA
	case has("review") && systematicPattern.MatchString(title):
		return record.SRMA
	case has("clinicaltrial"), has("clinical trial"):
		return record.ClinicalTrial
	case has("casereport"), has("case report"):
		return record.CaseReport
	case has("review"):
		return record.Review
	default:
		return evidence.ClassifyByTitle(title)
	}
}
