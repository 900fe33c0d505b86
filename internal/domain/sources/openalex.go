package sources

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/evidence"
	"github.com/medsearch/aggregator/internal/domain/record"
)

// OpenAlex is the open scholarly graph adapter.
type OpenAlex struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewOpenAlex(baseURL string) *OpenAlex {
	return &OpenAlex{BaseURL: baseURL, HTTPClient: &http.Client{Timeout: Timeout}}
}

func (o *OpenAlex) Name() record.Source { return record.SourceOpenAlex }

type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DisplayName     string `json:"display_name"`
	PublicationYear *int   `json:"publication_year"`
	Type            string `json:"type"`
	DOI             string `json:"doi"`
	CitedByCount    *int   `json:"cited_by_count"`
	PrimaryLocation struct {
		Source struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
}

var japaneseSRMAPattern = regexp.MustCompile(`システマティック|メタアナリシス|メタ分析`)
var srmaTitlePattern = regexp.MustCompile(`(?i)systematic|meta[\s-]?analysis`)

func (o *OpenAlex) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	query := strings.Join(parts, " ")
	reqURL := o.BaseURL + "/works?" + url.Values{
		"search":   {query},
		"per-page": {"50"},
	}.Encode()

	var parsed openAlexResponse
	if err := getJSON(ctx, o.HTTPClient, reqURL, &parsed); err != nil {
		return nil, &UpstreamFailure{Source: o.Name(), Err: err}
	}

	out := make([]record.Record, 0, len(parsed.Results))
	for _, w := range parsed.Results {
		out = append(out, o.toRecord(w))
	}
	return out, nil
}

func (o *OpenAlex) toRecord(w openAlexWork) record.Record {
	r := record.NewFromAdapter(record.SourceOpenAlex)
	r.ID = w.ID
	title := w.Title
	if title == "" {
		title = w.DisplayName
	}
	r.Title = StripHTML(title)
	r.Journal = w.PrimaryLocation.Source.DisplayName
	r.Year = w.PublicationYear
	r.DOI = strings.TrimPrefix(strings.TrimPrefix(w.DOI, "https://doi.org/"), "http://doi.org/")
	r.Citations = w.CitedByCount
	r.URL = w.ID
	if w.Type != "" {
		r.PubTypes = []string{w.Type}
	}

	names := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		names = append(names, a.Author.DisplayName)
	}
	r.Authors = firstNAuthors(names, 5)

	r.EvidenceLevel = classifyOpenAlex(w.Type, r.Title)
	return r
}

// classifyOpenAlex upgrades a bare "review" type to sr_ma when the title
// carries systematic/meta-analysis language (in either script); any other
// type defers straight to the title cascade.
func classifyOpenAlex(workType, title string) record.EvidenceLevel {
	if workType != "review" {
		return evidence.ClassifyByTitle(title)
	}
	if srmaTitlePattern.MatchString(title) || japaneseSRMAPattern.MatchString(title) {
		return record.SRMA
	}
	return record.Review
}
