// Package reconcile deduplicates bibliographic records collected from
// multiple sources by a deterministic identity key and merges
// complementary fields across colliding records.
package reconcile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/record"
)

// nonTitleChars strips everything outside word characters, whitespace, and
// CJK ranges when normalizing a title for the dedup key.
var nonTitleChars = regexp.MustCompile(`[^\w\s\p{Han}\p{Hiragana}\p{Katakana}]`)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeTitle lowercases title, drops punctuation and symbols outside
// word characters/whitespace/CJK, collapses runs of whitespace, and trims
// the result.
func NormalizeTitle(title string) string {
	lowered := strings.ToLower(title)
	stripped := nonTitleChars.ReplaceAllString(lowered, "")
	collapsed := whitespace.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(collapsed)
}

func normalizeDOI(doi string) string {
	lowered := strings.ToLower(doi)
	lowered = strings.TrimPrefix(lowered, "https://doi.org/")
	lowered = strings.TrimPrefix(lowered, "http://doi.org/")
	return lowered
}

// DedupKey returns the deterministic identity r collides under: DOI when
// present, else normalized-title+year when the normalized title is long
// enough to be meaningful, else the adapter-scoped record ID (which
// guarantees no collision at all for records too sparse to compare).
func DedupKey(r record.Record) string {
	if r.DOI != "" {
		return "doi:" + normalizeDOI(r.DOI)
	}

	normalized := NormalizeTitle(r.Title)
	if len(normalized) > 10 {
		year := "?"
		if r.Year != nil {
			year = strconv.Itoa(*r.Year)
		}
		return "t:" + normalized + ":" + year
	}

	return "id:" + r.ID
}

// Reconciler accumulates records by dedup key, applying the merge rules on
// every collision, and tracks which source gets credit for each key.
type Reconciler struct {
	byKey        map[string]*record.Record
	order        []string
	firstSource  map[string]record.Source
}

// NewReconciler returns an empty Reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{
		byKey:       make(map[string]*record.Record),
		firstSource: make(map[string]record.Source),
	}
}

// Add folds r into the accumulator, merging into an existing record at the
// same dedup key or inserting r as the new representative for that key.
func (rc *Reconciler) Add(r record.Record) {
	key := DedupKey(r)

	existing, ok := rc.byKey[key]
	if !ok {
		cp := r
		rc.byKey[key] = &cp
		rc.order = append(rc.order, key)
		rc.firstSource[key] = r.Source
		return
	}

	merge(existing, r)
}

// merge folds incoming into existing per the 4.E merge rules.
func merge(existing *record.Record, incoming record.Record) {
	existing.EvidenceLevel = record.Best(existing.EvidenceLevel, incoming.EvidenceLevel)

	if incoming.Citations != nil {
		if existing.Citations == nil || *incoming.Citations > *existing.Citations {
			existing.Citations = incoming.Citations
		}
	}

	if existing.DOI == "" && incoming.DOI != "" {
		existing.DOI = incoming.DOI
	}
	if existing.Journal == "" && incoming.Journal != "" {
		existing.Journal = incoming.Journal
	}
	if existing.Year == nil && incoming.Year != nil {
		existing.Year = incoming.Year
	}
	if existing.Language == nil && incoming.Language != nil {
		existing.Language = incoming.Language
	}

	if len(incoming.Authors) > len(existing.Authors) {
		existing.Authors = incoming.Authors
	}

	if isPubMedURL(incoming.URL) && !isPubMedURL(existing.URL) {
		existing.URL = incoming.URL
	}

	existing.PubTypes = unionStrings(existing.PubTypes, incoming.PubTypes)

	for _, src := range incoming.FoundIn {
		if !existing.HasSource(src) {
			existing.FoundIn = append(existing.FoundIn, src)
		}
	}
}

func isPubMedURL(u string) bool {
	return strings.Contains(u, "pubmed.ncbi.nlm.nih.gov")
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Results returns the reconciled records in first-insertion order.
func (rc *Reconciler) Results() []record.Record {
	out := make([]record.Record, 0, len(rc.order))
	for _, key := range rc.order {
		out = append(out, *rc.byKey[key])
	}
	return out
}

// SourceCounts counts each dedup key once, against the source of the first
// record that occupied it — not every contributing source, per spec.md
// 4.E. Use a record's FoundIn field for full provenance instead.
func (rc *Reconciler) SourceCounts() map[record.Source]int {
	counts := make(map[record.Source]int)
	for _, key := range rc.order {
		counts[rc.firstSource[key]]++
	}
	return counts
}
