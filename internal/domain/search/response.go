package search

import (
	"github.com/medsearch/aggregator/internal/domain/cq"
	"github.com/medsearch/aggregator/internal/domain/guideline"
	"github.com/medsearch/aggregator/internal/domain/record"
)

// Response is the /api/search envelope.
type Response struct {
	Query              string                                `json:"query"`
	Multilingual       *MultilingualInfo                     `json:"multilingual,omitempty"`
	TotalCount         int                                    `json:"totalCount"`
	Results            map[record.EvidenceLevel][]record.Record `json:"results"`
	NationalGuidelines []guideline.Scored                    `json:"nationalGuidelines"`
	ClinicalQuestions  []cq.Scored                           `json:"clinicalQuestions"`
	Sources            SourcesInfo                           `json:"sources"`
	PatientVoice       []record.Record                       `json:"patientVoice,omitempty"`
}

// MultilingualInfo carries the per-field translations exposed only when the
// request set multilingual=true.
type MultilingualInfo struct {
	Translated map[string]string `json:"translated"`
}

// SourcesInfo reports per-source failures and the reconciler's credit
// counts.
type SourcesInfo struct {
	Errors map[string]string      `json:"errors"`
	Counts map[record.Source]int  `json:"counts"`
}

// groupByEvidenceLevel buckets recs by EvidenceLevel into an object keyed
// by every level in record.DisplayOrder (including empty buckets), sorting
// each bucket by descending year.
func groupByEvidenceLevel(recs []record.Record) map[record.EvidenceLevel][]record.Record {
	out := make(map[record.EvidenceLevel][]record.Record, len(record.DisplayOrder))
	for _, lvl := range record.DisplayOrder {
		out[lvl] = []record.Record{}
	}
	for _, r := range recs {
		out[r.EvidenceLevel] = append(out[r.EvidenceLevel], r)
	}
	for _, lvl := range record.DisplayOrder {
		record.SortByYearDescending(out[lvl])
	}
	return out
}
