// Package evidence classifies bibliographic records into an EvidenceLevel,
// either from publication-type metadata or, failing that, from a regex
// cascade over the title in English and Japanese.
package evidence

import (
	"regexp"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/record"
)

// ClassifyPubType scans lowercased raw publication-type tokens in the
// fixed priority order the source databases' own metadata implies:
// guideline metadata beats a review label, a named RCT beats a generic
// "clinical trial" tag, and so on. The order here is binding — see
// titleTiers below for why reordering breaks invariant 5.
func ClassifyPubType(pubTypes []string) record.EvidenceLevel {
	lowered := make([]string, len(pubTypes))
	for i, t := range pubTypes {
		lowered[i] = strings.ToLower(t)
	}

	has := func(pred func(string) bool) bool {
		for _, t := range lowered {
			if pred(t) {
				return true
			}
		}
		return false
	}
	equals := func(v string) func(string) bool {
		return func(t string) bool { return t == v }
	}
	contains := func(v string) func(string) bool {
		return func(t string) bool { return strings.Contains(t, v) }
	}
	any := func(preds ...func(string) bool) func(string) bool {
		return func(t string) bool {
			for _, p := range preds {
				if p(t) {
					return true
				}
			}
			return false
		}
	}

	switch {
	case has(contains("practice guideline")), has(equals("guideline")):
		return record.Guideline
	case has(contains("systematic review")):
		return record.SRMA
	case has(contains("meta-analysis")):
		return record.SRMA
	case has(contains("randomized controlled trial")):
		return record.RCT
	case has(contains("clinical trial")):
		return record.ClinicalTrial
	case has(any(contains("observational"), contains("cohort"), contains("case-control"))):
		return record.Observational
	case has(contains("case report")):
		return record.CaseReport
	case has(equals("review")):
		return record.Review
	default:
		return record.Other
	}
}

// titleTier is one row of the classification cascade: the first tier whose
// pattern matches the title wins, regardless of how specific a later tier's
// pattern would have been.
type titleTier struct {
	level   record.EvidenceLevel
	pattern *regexp.Regexp
}

// titleTiers is compiled once at package init, in the exact priority order
// spec'd: tiers 8-10 and 12 exist because Japanese titles rarely carry an
// explicit "cohort" or "case-control" label and instead signal study type
// through idiomatic phrasing; tier 11 sits last among the non-Japanese
// heuristics because efficacy/effectiveness language is too broad to trust
// ahead of anything more specific.
var titleTiers = []titleTier{
	{record.Guideline, regexp.MustCompile(`(?i)guideline|practice parameter|consensus statement|clinical recommendation|ガイドライン|推奨グレード`)},
	{record.SRMA, regexp.MustCompile(`(?i)systematic|meta[\s-]?analysis|umbrella review|scoping review|システマティック|メタアナリシス|メタ分析`)},
	{record.RCT, regexp.MustCompile(`(?i)randomiz|rct\b|controlled trial|ランダム化|無作為化?比較`)},
	{record.ClinicalTrial, regexp.MustCompile(`(?i)clinical trial|intervention study|pilot study|feasibility|臨床試験|介入研究|パイロット`)},
	{record.Observational, regexp.MustCompile(`(?i)cohort|cross[\s-]?sectional|case[\s-]?control|registry|retrospectiv|prospectiv|epidemiolog|prevalence|incidence|survey|longitudinal|コホート|観察研究|横断研究|前向き|後ろ向き|追跡調査|縦断|症例対照|レジストリ|有病率|発生率|アンケート|質問紙`)},
	{record.CaseReport, regexp.MustCompile(`(?i)case report|case series|症例報告|症例検討|一例|1例|一症例|経験例`)},
	{record.Review, regexp.MustCompile(`(?i)review|overview|narrative|レビュー|総説|文献的考察|文献検討`)},
	{record.Observational, regexp.MustCompile(`についての検討|に関する検討|の検討|因子の検討|要因.{0,4}検討|発生要因|に関する研究|に関する調査|の実態調査|解析|分析した|を分析|多変量|回帰|統計`)},
	{record.Review, regexp.MustCompile(`の現状と課題|現状と展望|の動向|の概要|の概説|の紹介|最新の|特集|考え方と実際|の実際`)},
	{record.CaseReport, regexp.MustCompile(`の報告|について報告|を報告|を経験`)},
	{record.ClinicalTrial, regexp.MustCompile(`(?i)efficacy|effectiveness|comparison|outcome|効果|有効性|比較検討|治療成績`)},
	{record.Observational, regexp.MustCompile(`影響|予後|関連|関与|相関|関係`)},
}

// ClassifyByTitle runs the cascade above against title and returns the
// first matching tier's level, or Other if none match. It is total: every
// title, including the empty string, resolves to a level.
func ClassifyByTitle(title string) record.EvidenceLevel {
	for _, tier := range titleTiers {
		if tier.pattern.MatchString(title) {
			return tier.level
		}
	}
	return record.Other
}
