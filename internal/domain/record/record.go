// Package record defines the unified bibliographic record every source
// adapter normalizes into, and the evidence-level enum that orders them.
package record

import "sort"

// EvidenceLevel is a closed ranking of study-design strength, best first.
type EvidenceLevel string

const (
	Guideline     EvidenceLevel = "guideline"
	SRMA          EvidenceLevel = "sr_ma"
	RCT           EvidenceLevel = "rct"
	ClinicalTrial EvidenceLevel = "clinical_trial"
	Observational EvidenceLevel = "observational"
	CaseReport    EvidenceLevel = "case_report"
	Review        EvidenceLevel = "review"
	Other         EvidenceLevel = "other"
)

// DisplayOrder is the fixed bucket order the search response groups results
// into; it doubles as the enumeration of every valid EvidenceLevel.
var DisplayOrder = []EvidenceLevel{
	Guideline, SRMA, RCT, ClinicalTrial, Observational, CaseReport, Review, Other,
}

// EVRank gives each level's position in the total order; rank 0 is
// strongest. Lower rank always wins when two levels are compared.
var EVRank = map[EvidenceLevel]int{
	Guideline:     0,
	SRMA:          1,
	RCT:           2,
	ClinicalTrial: 3,
	Observational: 4,
	CaseReport:    5,
	Review:        6,
	Other:         7,
}

// Best returns the EvidenceLevel with the lower (stronger) EVRank.
func Best(a, b EvidenceLevel) EvidenceLevel {
	if EVRank[a] <= EVRank[b] {
		return a
	}
	return b
}

// Source identifies which external adapter produced a record.
type Source string

const (
	SourcePubMed     Source = "pubmed"
	SourceJStage     Source = "jstage"
	SourceS2         Source = "s2"
	SourceOpenAlex   Source = "openalex"
	SourceCiNii      Source = "cinii"
	SourceEuropePMC  Source = "epmc"
)

// Record is the normalized shape every adapter and the reconciler operate
// on. Optional fields are nil/zero-length when the source did not report
// them, never a zero sentinel that could be confused with a real zero —
// Year and Citations are pointers for exactly that reason.
type Record struct {
	ID            string
	Title         string
	Authors       []string
	Journal       string
	Year          *int
	PubTypes      []string
	EvidenceLevel EvidenceLevel
	DOI           string
	URL           string
	Source        Source
	FoundIn       []Source
	Citations     *int
	Language      *string
	IsPatientVoice bool
}

// NewFromAdapter builds a record with FoundIn seeded to exactly its own
// source, the invariant every adapter output must satisfy before reaching
// the reconciler.
func NewFromAdapter(src Source) Record {
	return Record{Source: src, FoundIn: []Source{src}}
}

// HasSource reports whether src already appears in FoundIn.
func (r Record) HasSource(src Source) bool {
	for _, s := range r.FoundIn {
		if s == src {
			return true
		}
	}
	return false
}

// SortByYearDescending sorts records in place by descending Year, treating
// a missing year as 0 so undated records sink to the bottom of a bucket.
func SortByYearDescending(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return yearOf(recs[i]) > yearOf(recs[j])
	})
}

func yearOf(r Record) int {
	if r.Year == nil {
		return 0
	}
	return *r.Year
}

// IntPtr is a small helper adapters use to populate the optional int
// fields without littering call sites with local variables.
func IntPtr(v int) *int { return &v }

// StringPtr is IntPtr's counterpart for the optional string fields
// (Language), so adapters don't need a local variable just to take its
// address.
func StringPtr(v string) *string { return &v }
