// Package cqevidence answers the CQ-evidence endpoint: given a clinical
// question's text (and optionally its pre-attached keywords), extract
// query terms and fetch a handful of high-grade PubMed records.
package cqevidence

import (
	"context"
	"regexp"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/medsearch/aggregator/internal/domain/sources"
	"github.com/medsearch/aggregator/internal/domain/synonym"
)

var cqPrefix = regexp.MustCompile(`(?i)^(CQ\d+|Q\d+)\s*`)

var (
	katakanaRun = regexp.MustCompile(`[\x{30A0}-\x{30FF}]{2,}`)
	kanjiRun    = regexp.MustCompile(`[\x{4E00}-\x{9FFF}]{2,}`)
	latinToken  = regexp.MustCompile(`[A-Za-z][A-Za-z0-9]{1,}`)
)

// japaneseStopCompounds are kanji runs too generic to be useful search
// terms on their own.
var japaneseStopCompounds = map[string]bool{
	"患者": true, "対象": true, "効果": true, "推奨": true, "検討": true,
	"治療": true, "評価": true, "調査": true, "症例": true, "研究": true,
}

var englishStopWords = map[string]bool{
	"is": true, "are": true, "the": true, "a": true, "an": true, "of": true,
	"for": true, "in": true, "with": true, "to": true, "and": true, "or": true,
	"does": true, "do": true, "should": true, "be": true, "patients": true,
	"patient": true, "than": true, "compared": true,
}

// japaneseEnglishLexicon is a small curated fallback for common therapy
// terms that don't round-trip cleanly through the synonym index.
var japaneseEnglishLexicon = map[string]string{
	"リハビリテーション": "rehabilitation",
	"早期リハビリ":     "early rehabilitation",
	"運動療法":       "exercise therapy",
	"薬物療法":       "pharmacotherapy",
	"食事療法":       "diet therapy",
	"呼吸リハビリテーション": "pulmonary rehabilitation",
	"転倒":         "falls",
	"認知症":        "dementia",
}

// extractCQKeywords implements spec's keyword-extraction rule: strip the
// leading CQ/Q numeral prefix, then branch on script. Japanese input
// yields up to 3 deduplicated terms (katakana runs, kanji runs with
// 患者/症例 trimmed, embedded Latin tokens, minus the stop compounds);
// English input yields up to 4 terms (whitespace-split, punctuation
// stripped, minus the stop words).
func extractCQKeywords(q string) []string {
	stripped := cqPrefix.ReplaceAllString(strings.TrimSpace(q), "")

	if isJapanese(stripped) {
		return extractJapaneseKeywords(stripped)
	}
	return extractEnglishKeywords(stripped)
}

func isJapanese(s string) bool {
	for _, r := range s {
		if (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3040 && r <= 0x30FF) {
			return true
		}
	}
	return false
}

func extractJapaneseKeywords(s string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" || japaneseStopCompounds[term] || seen[term] || len(out) >= 3 {
			return
		}
		seen[term] = true
		out = append(out, term)
	}

	for _, m := range katakanaRun.FindAllString(s, -1) {
		add(m)
	}
	for _, m := range kanjiRun.FindAllString(s, -1) {
		trimmed := strings.TrimSuffix(strings.TrimSuffix(m, "患者"), "症例")
		add(trimmed)
	}
	for _, m := range latinToken.FindAllString(s, -1) {
		add(m)
	}
	return out
}

func extractEnglishKeywords(s string) []string {
	cleaned := stripASCIIPunctuation(s)
	var out []string
	for _, word := range strings.Fields(cleaned) {
		lower := strings.ToLower(word)
		if englishStopWords[lower] {
			continue
		}
		out = append(out, lower)
		if len(out) >= 4 {
			break
		}
	}
	return out
}

var asciiPunctuation = regexp.MustCompile(`[!"#$%&'()*+,\-./:;<=>?@\[\]^_` + "`" + `{|}~]`)

func stripASCIIPunctuation(s string) string {
	return asciiPunctuation.ReplaceAllString(s, " ")
}

// parseKW takes the raw kw query param and returns up to its first 4
// comma-separated, trimmed terms.
func parseKW(kw string) []string {
	raw := strings.Split(kw, ",")
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) >= 4 {
			break
		}
	}
	return out
}

// promoteToEnglish maps a Japanese keyword to an English surface form via
// the synonym index first, then the curated lexicon, returning ok=false if
// neither has one.
func promoteToEnglish(term string, idx *synonym.Index) (string, bool) {
	for _, member := range idx.Lookup(term) {
		if isASCII(member) {
			return member, true
		}
	}
	if en, ok := japaneseEnglishLexicon[term]; ok {
		return en, true
	}
	return "", false
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 0x7F {
			return false
		}
	}
	return s != ""
}

// queryTerms decides the final PubMed search terms: an explicit kw
// override wins outright; otherwise the extracted keywords are used as-is
// for English questions, and promoted to English (synonym index, then the
// curated lexicon) term-by-term for Japanese questions — any term with no
// promotion falls back to its original Japanese form.
func queryTerms(q, kw string, idx *synonym.Index) []string {
	if strings.TrimSpace(kw) != "" {
		return parseKW(kw)
	}

	extracted := extractCQKeywords(q)
	if !isJapanese(q) {
		return extracted
	}

	out := make([]string, len(extracted))
	for i, term := range extracted {
		if en, ok := promoteToEnglish(term, idx); ok {
			out[i] = en
		} else {
			out[i] = term
		}
	}
	return out
}

const pubmedEvidenceFilter = `(systematic review[pt] OR meta-analysis[pt] OR randomized controlled trial[pt])`

var highGradeLevels = map[record.EvidenceLevel]bool{
	record.Guideline: true,
	record.SRMA:       true,
	record.RCT:        true,
}

// Result is the CQ-evidence lookup's outcome.
type Result struct {
	Results  []record.Record
	Keywords []string
}

// Lookup builds the focused PubMed query from q/kw, runs it, and returns up
// to 5 guideline/sr_ma/rct records plus the keywords used.
func Lookup(ctx context.Context, pubmed sources.Adapter, idx *synonym.Index, q, kw string) (Result, error) {
	terms := queryTerms(q, kw, idx)
	if len(terms) == 0 {
		return Result{Keywords: terms}, nil
	}

	parts := append(append([]string{}, terms...), pubmedEvidenceFilter)
	recs, err := pubmed.Search(ctx, parts)
	if err != nil {
		return Result{Keywords: terms}, err
	}

	var filtered []record.Record
	for _, r := range recs {
		if highGradeLevels[r.EvidenceLevel] {
			filtered = append(filtered, r)
		}
		if len(filtered) == 5 {
			break
		}
	}

	return Result{Results: filtered, Keywords: terms}, nil
}
