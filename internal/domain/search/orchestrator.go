// Package search implements the primary literature-search orchestrator:
// query parsing, language planning, the source dispatch matrix, concurrent
// fan-out, reconciliation, and local guideline/CQ scoring.
package search

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/medsearch/aggregator/internal/config"
	"github.com/medsearch/aggregator/internal/domain/cq"
	"github.com/medsearch/aggregator/internal/domain/guideline"
	"github.com/medsearch/aggregator/internal/domain/reconcile"
	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/medsearch/aggregator/internal/domain/sources"
	"github.com/medsearch/aggregator/internal/domain/synonym"
	"github.com/medsearch/aggregator/internal/platform/translate"
)

// ErrNoQueryParts is the InputError raised when neither q nor any of
// disease/treatment/topic carries a non-empty value.
var ErrNoQueryParts = errors.New("at least one of q, disease, treatment, or topic is required")

// Request carries the orchestrator's parsed inputs from the HTTP layer.
type Request struct {
	Q            string
	Disease      string
	Treatment    string
	Topic        string
	Multilingual bool
	PatientVoice bool
}

// Orchestrator wires the six source adapters, the translation client, and
// the synonym index together to answer one search request at a time. A
// single Orchestrator is shared across requests; none of its fields are
// mutated after construction.
type Orchestrator struct {
	PubMed    sources.Adapter
	JStage    sources.Adapter
	S2        sources.Adapter
	OpenAlex  sources.Adapter
	CiNii     sources.Adapter
	EuropePMC sources.Adapter

	Translate *translate.Client
	Synonyms  *synonym.Index
}

// New builds an Orchestrator from cfg, wiring every source adapter to its
// configured base URL and the translation client to the configured
// translate endpoint.
func New(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		PubMed:    sources.NewPubMed(cfg.PubMedBaseURL),
		JStage:    sources.NewJStage(cfg.JStageBaseURL),
		S2:        sources.NewSemanticScholar(cfg.SemanticScholarURL),
		OpenAlex:  sources.NewOpenAlex(cfg.OpenAlexBaseURL),
		CiNii:     sources.NewCiNii(cfg.CiNiiBaseURL),
		EuropePMC: sources.NewEuropePMC(cfg.EuropePMCBaseURL),
		Translate: translate.NewClient(cfg.TranslateEndpoint),
		Synonyms:  synonym.DefaultIndex,
	}
}

// queryPart is one term of the parsed query, tagged with the field it came
// from so translation results can be re-attached to disease/treatment/topic
// in the response envelope.
type queryPart struct {
	key  string
	text string
}

// parseParts splits req.Q on whitespace when present, otherwise collects
// whichever of disease/treatment/topic are non-empty, in that fixed order.
func parseParts(req Request) ([]queryPart, error) {
	if strings.TrimSpace(req.Q) != "" {
		fields := strings.Fields(req.Q)
		parts := make([]queryPart, len(fields))
		for i, f := range fields {
			parts[i] = queryPart{key: "q", text: f}
		}
		return parts, nil
	}

	var parts []queryPart
	if req.Disease != "" {
		parts = append(parts, queryPart{key: "disease", text: req.Disease})
	}
	if req.Treatment != "" {
		parts = append(parts, queryPart{key: "treatment", text: req.Treatment})
	}
	if req.Topic != "" {
		parts = append(parts, queryPart{key: "topic", text: req.Topic})
	}
	if len(parts) == 0 {
		return nil, ErrNoQueryParts
	}
	return parts, nil
}

func texts(parts []queryPart) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.text
	}
	return out
}

// Run executes one full orchestration: parse, expand, plan language,
// dispatch the source fan-out, reconcile, and attach local GL/CQ matches.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Response, error) {
	parsed, err := parseParts(req)
	if err != nil {
		return nil, err
	}
	parts := texts(parsed)

	expandedParts := o.Synonyms.Expand(parts)

	isJaQuery := translate.IsJapanese(strings.Join(parts, ""))
	needsTranslation := req.Multilingual || isJaQuery

	var translatedParts []string
	translatedByKey := make(map[string]string)

	if needsTranslation {
		srcLang, tgtLang := "en", "ja"
		if isJaQuery {
			srcLang, tgtLang = "ja", "en"
		}

		tasks := make([]translateTask, len(parsed))
		for i, p := range parsed {
			tasks[i] = translateTask{key: p.key + ":" + strconv.Itoa(i), text: p.text}
		}

		results := translateAll(ctx, func(ctx context.Context, text string) (string, bool) {
			return o.Translate.Translate(ctx, text, srcLang, tgtLang)
		}, tasks)

		for i, p := range parsed {
			key := p.key + ":" + strconv.Itoa(i)
			if v, ok := results[key]; ok {
				translatedParts = append(translatedParts, v)
				if _, exists := translatedByKey[p.key]; !exists {
					translatedByKey[p.key] = v
				}
			}
		}
	}

	translationSucceeded := len(translatedParts) > 0

	var taskList []task
	switch {
	case req.Multilingual && translationSucceeded:
		taskList = o.planMultilingual(parts, translatedParts)
	case isJaQuery && !req.Multilingual && translationSucceeded:
		taskList = o.planJapaneseNonMultilingual(parts, translatedParts)
	default:
		taskList = o.planOtherwise(parts)
	}

	results, errsBySource := runAll(ctx, taskList)

	rc := reconcile.NewReconciler()
	for _, r := range results {
		rc.Add(r)
	}

	scoringTerms := append(append([]string{}, expandedParts...), translatedParts...)
	nationalGuidelines := guideline.Rank(scoringTerms)
	clinicalQuestions := cq.Rank(scoringTerms)

	resp := &Response{
		Query:              queryLabel(req, parts),
		TotalCount:         len(rc.Results()),
		Results:            groupByEvidenceLevel(rc.Results()),
		NationalGuidelines: nationalGuidelines,
		ClinicalQuestions:  clinicalQuestions,
		Sources: SourcesInfo{
			Errors: errorsAsStrings(errsBySource),
			Counts: rc.SourceCounts(),
		},
	}

	if req.Multilingual {
		resp.Multilingual = &MultilingualInfo{Translated: structuredTranslations(translatedByKey)}
	}

	if req.PatientVoice {
		pv := o.runPatientVoice(ctx, parts, translatedParts, isJaQuery && translationSucceeded)
		resp.PatientVoice = pv
	}

	return resp, nil
}

// queryLabel renders the request's query for the response envelope: the
// raw q string when one was supplied, else the structured parts joined by
// a space.
func queryLabel(req Request, parts []string) string {
	if strings.TrimSpace(req.Q) != "" {
		return req.Q
	}
	return strings.Join(parts, " ")
}

// structuredTranslations keeps only the disease/treatment/topic entries of
// translatedByKey — free-text q parts are never individually exposed.
func structuredTranslations(translatedByKey map[string]string) map[string]string {
	out := make(map[string]string)
	for _, key := range []string{"disease", "treatment", "topic"} {
		if v, ok := translatedByKey[key]; ok {
			out[key] = v
		}
	}
	return out
}

func errorsAsStrings(errs map[record.Source]error) map[string]string {
	out := make(map[string]string)
	for src, err := range errs {
		out[string(src)] = err.Error()
	}
	return out
}

// planOtherwise dispatches every source once with the original parts —
// plan 3: an English query, or a Japanese query with no usable translation.
func (o *Orchestrator) planOtherwise(parts []string) []task {
	return []task{
		adapterTask(o.PubMed, parts),
		adapterTask(o.JStage, parts),
		adapterTask(o.S2, parts),
		adapterTask(o.OpenAlex, parts),
		adapterTask(o.CiNii, parts),
		adapterTask(o.EuropePMC, parts),
	}
}

// planMultilingual dispatches every source twice, once with the original
// parts and once with the translated parts — plan 2, 12 tasks total.
func (o *Orchestrator) planMultilingual(parts, translatedParts []string) []task {
	out := o.planOtherwise(parts)
	out = append(out,
		adapterTask(o.PubMed, translatedParts),
		adapterTask(o.JStage, translatedParts),
		adapterTask(o.S2, translatedParts),
		adapterTask(o.OpenAlex, translatedParts),
		adapterTask(o.CiNii, translatedParts),
		adapterTask(o.EuropePMC, translatedParts),
	)
	return out
}

// planJapaneseNonMultilingual is plan 1: PubMed and S2 get the translated
// English text; J-STAGE, OpenAlex, CiNii, and Europe PMC get the original
// Japanese text; OpenAlex and Europe PMC additionally get the translated
// text to widen coverage of bilingual records. 8 tasks total.
func (o *Orchestrator) planJapaneseNonMultilingual(parts, translatedParts []string) []task {
	return []task{
		adapterTask(o.PubMed, translatedParts),
		adapterTask(o.S2, translatedParts),
		adapterTask(o.JStage, parts),
		adapterTask(o.OpenAlex, parts),
		adapterTask(o.CiNii, parts),
		adapterTask(o.EuropePMC, parts),
		adapterTask(o.OpenAlex, translatedParts),
		adapterTask(o.EuropePMC, translatedParts),
	}
}

// adapterTask wraps one adapter call for a given set of parts into a task,
// labeled with the adapter's own declared source name.
func adapterTask(a sources.Adapter, parts []string) task {
	return task{
		source: a.Name(),
		run: func(ctx context.Context) ([]record.Record, error) {
			return a.Search(ctx, parts)
		},
	}
}

// StatusFor maps an orchestrator-level error to its HTTP status: every
// error Run can return today is an InputError.
func StatusFor(err error) int {
	if errors.Is(err, ErrNoQueryParts) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
