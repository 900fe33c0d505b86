// Package cq holds the static clinical-question corpus extracted from the
// guideline registry, and the local relevance scorer that ranks it.
package cq

import (
	"sort"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/guideline"
	"github.com/medsearch/aggregator/internal/domain/record"
)

// ClinicalQuestion is one CQ unit belonging to a parent Guideline.
type ClinicalQuestion struct {
	GID  string
	CQ   string
	Q    string
	Type string
	Rec  string
	EV   record.EvidenceLevel
	Page string
	KW   []string
}

// Scored pairs a ClinicalQuestion with its query-relevance score and, when
// available, the parent Guideline's display fields.
type Scored struct {
	ClinicalQuestion
	Score        int
	GuidelineTitle string
	GuidelineOrg   string
	GuidelineURL   string
}

// Data is the read-only, process-lifetime CQ corpus, a representative
// sample mirroring the Guidelines set in internal/domain/guideline.
var Data = []ClinicalQuestion{
	{
		GID: "jsa-stroke-2021", CQ: "CQ1", Q: "急性期脳卒中患者に早期リハビリテーションは推奨されるか",
		Type: "治療", Rec: "強く推奨する", EV: record.SRMA, Page: "p.45",
		KW: []string{"早期リハビリテーション", "early rehabilitation", "急性期", "acute stroke"},
	},
	{
		GID: "jsa-stroke-2021", CQ: "CQ2", Q: "脳卒中後うつに対する薬物療法は有効か",
		Type: "治療", Rec: "弱く推奨する", EV: record.RCT, Page: "p.112",
		KW: []string{"脳卒中後うつ", "post-stroke depression", "薬物療法"},
	},
	{
		GID: "jcs-heart-failure-2021", CQ: "CQ1", Q: "慢性心不全患者に対する運動療法は推奨されるか",
		Type: "治療", Rec: "強く推奨する", EV: record.SRMA, Page: "p.80",
		KW: []string{"運動療法", "exercise therapy", "心不全", "heart failure"},
	},
	{
		GID: "jds-diabetes-2024", CQ: "CQ3", Q: "2型糖尿病患者における食事療法の目標は何か",
		Type: "管理", Rec: "推奨", EV: record.Guideline, Page: "p.30",
		KW: []string{"食事療法", "diet therapy", "2型糖尿病", "type 2 diabetes"},
	},
	{
		GID: "jgs-falls-2022", CQ: "CQ1", Q: "高齢者における転倒の危険因子は何か",
		Type: "疫学", Rec: "情報提供", EV: record.Observational, Page: "p.12",
		KW: []string{"転倒", "falls", "危険因子", "risk factors", "高齢者"},
	},
	{
		GID: "jrs-copd-2022", CQ: "CQ1", Q: "COPD患者における呼吸リハビリテーションは有効か",
		Type: "治療", Rec: "強く推奨する", EV: record.SRMA, Page: "p.55",
		KW: []string{"呼吸リハビリテーション", "pulmonary rehabilitation", "copd"},
	},
}

// Score scores a ClinicalQuestion against already-lowercased query terms
// using the same rule as guideline.Score, with KW in the role of
// diseases and Q in the role of title.
func Score(cq ClinicalQuestion, lowerTerms []string) int {
	lowerQ := strings.ToLower(cq.Q)
	score := 0

	for _, term := range lowerTerms {
		for _, kw := range cq.KW {
			k := strings.ToLower(kw)
			switch {
			case k == term:
				score += 10
			case strings.Contains(k, term) || strings.Contains(term, k):
				score += 5
			}
		}
		if strings.Contains(lowerQ, term) {
			score += 3
		}
	}
	return score
}

// Rank scores every ClinicalQuestion against terms, keeps only positive
// scores, attaches the parent Guideline's display fields when available,
// and sorts by descending score.
func Rank(terms []string) []Scored {
	lowerTerms := make([]string, len(terms))
	for i, t := range terms {
		lowerTerms[i] = strings.ToLower(t)
	}

	var out []Scored
	for _, q := range Data {
		s := Score(q, lowerTerms)
		if s <= 0 {
			continue
		}
		scored := Scored{ClinicalQuestion: q, Score: s}
		if g, ok := guideline.ByID(q.GID); ok {
			scored.GuidelineTitle = g.Title
			scored.GuidelineOrg = g.Org
			scored.GuidelineURL = g.URL
		}
		out = append(out, scored)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Group is one guideline's worth of CQs for the /api/cq/list browse view.
type Group struct {
	GuidelineID    string
	GuidelineTitle string
	Org            string
	Category       string
	Questions      []ClinicalQuestion
}

// GroupedByGuideline buckets every CQ by its parent guideline, optionally
// filtered to a single category, in guideline registration order.
func GroupedByGuideline(category string) []Group {
	order := make([]string, 0)
	byGID := make(map[string][]ClinicalQuestion)

	for _, q := range Data {
		if _, ok := byGID[q.GID]; !ok {
			order = append(order, q.GID)
		}
		byGID[q.GID] = append(byGID[q.GID], q)
	}

	var groups []Group
	for _, gid := range order {
		g, ok := guideline.ByID(gid)
		if !ok {
			continue
		}
		if category != "" && g.Category != category {
			continue
		}
		groups = append(groups, Group{
			GuidelineID:    g.ID,
			GuidelineTitle: g.Title,
			Org:            g.Org,
			Category:       g.Category,
			Questions:      byGID[gid],
		})
	}
	return groups
}
