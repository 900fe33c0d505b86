// Package synonym builds the bidirectional equivalence-class index used to
// expand a query term to every other surface form of the same clinical
// concept, across Japanese and Latin scripts.
package synonym

import "strings"

// Class is an unordered set of surface terms that denote the same clinical
// concept. Membership is case-insensitive; a Class stores the original,
// un-lowered terms so expansion results preserve whatever casing the
// static table used.
type Class []string

// Index maps a lowercased term to the Class it belongs to. Built once at
// process start from a static table and never mutated afterward, so no
// synchronization is needed once published — every lookup is a plain map
// read.
type Index struct {
	byTerm map[string]Class
}

// NewIndex builds an Index from a list of equivalence classes. Distinct
// classes are expected to be disjoint; if the static table violates that,
// later classes overwrite earlier mappings for any shared term.
func NewIndex(classes []Class) *Index {
	idx := &Index{byTerm: make(map[string]Class)}
	for _, class := range classes {
		for _, term := range class {
			idx.byTerm[strings.ToLower(term)] = class
		}
	}
	return idx
}

// Lookup returns the Class containing term, or nil if term belongs to no
// known class.
func (idx *Index) Lookup(term string) Class {
	return idx.byTerm[strings.ToLower(term)]
}

// Expand returns the set union of every input term and its class members,
// deduplicated by lowercased identity. Order among the results is not
// significant.
func (idx *Index) Expand(terms []string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(term string) {
		key := strings.ToLower(term)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, term)
	}

	for _, term := range terms {
		add(term)
		for _, member := range idx.Lookup(term) {
			add(member)
		}
	}
	return out
}

// DefaultClasses is the static table of clinical-term equivalence classes
// the process-lifetime Index is built from at startup. Each class mixes
// Japanese and Latin surface forms for the same concept; new classes
// should be appended here rather than mutating an existing one in place.
var DefaultClasses = []Class{
	{"stroke", "cerebrovascular accident", "cva", "脳卒中", "脳血管障害"},
	{"rehabilitation", "rehab", "リハビリテーション", "リハビリ"},
	{"diabetes", "diabetes mellitus", "dm", "糖尿病"},
	{"hypertension", "high blood pressure", "htn", "高血圧"},
	{"heart failure", "cardiac failure", "hf", "心不全"},
	{"knee osteoarthritis", "knee oa", "変形性膝関節症"},
	{"dementia", "認知症"},
	{"depression", "major depressive disorder", "うつ病", "抑うつ"},
	{"pneumonia", "肺炎"},
	{"chronic kidney disease", "ckd", "慢性腎臓病"},
	{"copd", "chronic obstructive pulmonary disease", "慢性閉塞性肺疾患"},
	{"sepsis", "敗血症"},
	{"falls", "fall prevention", "転倒", "転倒予防"},
	{"cancer", "malignancy", "neoplasm", "がん", "癌", "悪性腫瘍"},
	{"asthma", "喘息"},
}

// DefaultIndex is the process-lifetime Index built from DefaultClasses,
// published once at initialization and read thereafter without locking.
var DefaultIndex = NewIndex(DefaultClasses)
