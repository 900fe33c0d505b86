package search

import (
	"context"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/reconcile"
	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/medsearch/aggregator/internal/platform/translate"
)

// pubmedQualitativeFilter is the [pt]/[tw] disjunction PubMed's query gets
// ANDed with for the patient-voice branch.
const pubmedQualitativeFilter = `(qualitative research[pt] OR patient experience[tw] OR lived experience[tw] OR quality of life[tw] OR patient reported outcome[tw] OR patient perspective[tw])`

// englishQualitativeTerms are quoted and OR'd together for the Europe PMC
// patient-voice query; only the first four are used.
var englishQualitativeTerms = []string{"qualitative research", "patient experience", "lived experience", "quality of life"}

// japaneseQualitativeTerms supplies the single term appended to the base
// query for J-STAGE and CiNii when the query is Japanese.
var japaneseQualitativeTerms = []string{"患者の声", "生活の質", "患者体験"}

func europePMCQualitativeClause() string {
	clause := ""
	for i, t := range englishQualitativeTerms {
		if i > 0 {
			clause += " OR "
		}
		clause += `"` + t + `"`
	}
	return "(" + clause + ")"
}

// runPatientVoice fans out the qualitative-research branch, reconciles its
// own results independently of the primary search, tags every record
// isPatientVoice, and caps the output at 30.
func (o *Orchestrator) runPatientVoice(ctx context.Context, parts, translatedParts []string, useTranslated bool) []record.Record {
	pubmedParts := parts
	epmcParts := parts
	if useTranslated && len(translatedParts) > 0 {
		pubmedParts = translatedParts
		epmcParts = translatedParts
	}

	tasks := []task{
		{source: o.PubMed.Name(), run: func(ctx context.Context) ([]record.Record, error) {
			return o.PubMed.Search(ctx, append(append([]string{}, pubmedParts...), pubmedQualitativeFilter))
		}},
		{source: o.EuropePMC.Name(), run: func(ctx context.Context) ([]record.Record, error) {
			return o.EuropePMC.Search(ctx, append(append([]string{}, epmcParts...), europePMCQualitativeClause()))
		}},
	}

	isJaQuery := translate.IsJapanese(strings.Join(parts, " "))
	if isJaQuery {
		tasks = append(tasks,
			task{source: o.JStage.Name(), run: func(ctx context.Context) ([]record.Record, error) {
				return o.JStage.Search(ctx, append(append([]string{}, parts...), japaneseQualitativeTerms[0]))
			}},
			task{source: o.CiNii.Name(), run: func(ctx context.Context) ([]record.Record, error) {
				return o.CiNii.Search(ctx, append(append([]string{}, parts...), japaneseQualitativeTerms[0]))
			}},
		)
	}

	results, _ := runAll(ctx, tasks)

	rc := reconcile.NewReconciler()
	for _, r := range results {
		r.IsPatientVoice = true
		rc.Add(r)
	}

	out := rc.Results()
	if len(out) > 30 {
		out = out[:30]
	}
	return out
}
