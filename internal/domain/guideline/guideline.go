// Package guideline holds the static national-guideline corpus and the
// local relevance scorer that ranks it against a query's expanded terms.
package guideline

import (
	"sort"
	"strings"
)

// Guideline is one national clinical-practice guideline entry.
type Guideline struct {
	ID       string
	Title    string
	TitleEn  string
	Org      string
	URL      string
	Category string
	Country  string
	Year     int
	Diseases []string
}

// Scored pairs a Guideline with the query-relevance score computed by
// Score, so callers can sort and threshold without re-scoring.
type Scored struct {
	Guideline
	Score int
}

// Guidelines is the read-only, process-lifetime corpus loaded at startup.
// It is a representative sample: the full national guideline registry is
// out of scope for this repository (spec.md §1 lists GUIDELINES as a
// contract-only static bundle), but the scorer below operates on however
// many entries are loaded here.
var Guidelines = []Guideline{
	{
		ID: "jsa-stroke-2021", Title: "脳卒中治療ガイドライン2021", TitleEn: "Japanese Guidelines for the Management of Stroke 2021",
		Org: "日本脳卒中学会", URL: "https://www.jsts.gr.jp/guideline.html", Category: "neurology", Country: "JP", Year: 2021,
		Diseases: []string{"脳卒中", "stroke", "cerebrovascular accident", "リハビリテーション", "rehabilitation"},
	},
	{
		ID: "jcs-heart-failure-2021", Title: "急性・慢性心不全診療ガイドライン", TitleEn: "Guideline on Diagnosis and Treatment of Acute and Chronic Heart Failure",
		Org: "日本循環器学会", URL: "https://www.j-circ.or.jp/guideline/", Category: "cardiology", Country: "JP", Year: 2021,
		Diseases: []string{"心不全", "heart failure", "cardiac failure"},
	},
	{
		ID: "jds-diabetes-2024", Title: "糖尿病診療ガイドライン2024", TitleEn: "Treatment Guide for Diabetes 2024",
		Org: "日本糖尿病学会", URL: "https://www.jds.or.jp/", Category: "endocrinology", Country: "JP", Year: 2024,
		Diseases: []string{"糖尿病", "diabetes", "diabetes mellitus"},
	},
	{
		ID: "jsh-hypertension-2019", Title: "高血圧治療ガイドライン2019", TitleEn: "Guidelines for the Management of Hypertension 2019",
		Org: "日本高血圧学会", URL: "https://www.jpnsh.jp/guideline.html", Category: "cardiology", Country: "JP", Year: 2019,
		Diseases: []string{"高血圧", "hypertension", "high blood pressure"},
	},
	{
		ID: "jgs-dementia-2017", Title: "認知症疾患診療ガイドライン2017", TitleEn: "Clinical Practice Guidelines for Dementia 2017",
		Org: "日本神経学会", URL: "https://www.neurology-jp.org/guidelinem/", Category: "neurology", Country: "JP", Year: 2017,
		Diseases: []string{"認知症", "dementia"},
	},
	{
		ID: "jgs-falls-2022", Title: "高齢者の転倒予防ガイドライン", TitleEn: "Fall Prevention Guideline for Older Adults",
		Org: "日本老年医学会", URL: "https://www.jpn-geriat-soc.or.jp/", Category: "geriatrics", Country: "JP", Year: 2022,
		Diseases: []string{"転倒", "falls", "fall prevention", "高齢者"},
	},
	{
		ID: "jrs-copd-2022", Title: "COPD診断と治療のためのガイドライン", TitleEn: "Guidelines for the Diagnosis and Treatment of COPD",
		Org: "日本呼吸器学会", URL: "https://www.jrs.or.jp/", Category: "pulmonology", Country: "JP", Year: 2022,
		Diseases: []string{"copd", "chronic obstructive pulmonary disease", "慢性閉塞性肺疾患"},
	},
}

// Score computes the disease/title relevance score for one Guideline
// against a list of already-lowercased query terms: +10 for an exact
// match against a disease term, +5 for a substring containment against a
// disease term in either direction, +3 for a substring containment in the
// title, summed across all terms.
func Score(g Guideline, lowerTerms []string) int {
	lowerTitle := strings.ToLower(g.Title + " " + g.TitleEn)
	score := 0

	for _, term := range lowerTerms {
		for _, disease := range g.Diseases {
			d := strings.ToLower(disease)
			switch {
			case d == term:
				score += 10
			case strings.Contains(d, term) || strings.Contains(term, d):
				score += 5
			}
		}
		if strings.Contains(lowerTitle, term) {
			score += 3
		}
	}
	return score
}

// Rank scores every Guideline against terms, keeps only positive scores,
// and sorts by descending score then descending year.
func Rank(terms []string) []Scored {
	lowerTerms := make([]string, len(terms))
	for i, t := range terms {
		lowerTerms[i] = strings.ToLower(t)
	}

	var out []Scored
	for _, g := range Guidelines {
		s := Score(g, lowerTerms)
		if s > 0 {
			out = append(out, Scored{Guideline: g, Score: s})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Year > out[j].Year
	})
	return out
}

// ByID looks up a Guideline by its ID, returning ok=false if not found.
func ByID(id string) (Guideline, bool) {
	for _, g := range Guidelines {
		if g.ID == id {
			return g, true
		}
	}
	return Guideline{}, false
}
