// Package suggest implements local autocomplete over the static
// guideline-disease and clinical-question-keyword vocabularies.
package suggest

import (
	"sort"
	"strings"

	"github.com/medsearch/aggregator/internal/domain/cq"
	"github.com/medsearch/aggregator/internal/domain/guideline"
)

// MaxResults is the fixed cap on how many suggestions Suggest returns.
const MaxResults = 15

// vocabulary returns every disease term from the guideline corpus followed
// by every keyword from the CQ corpus, in their static registration order.
func vocabulary() []string {
	var out []string
	for _, g := range guideline.Guidelines {
		out = append(out, g.Diseases...)
	}
	for _, q := range cq.Data {
		out = append(out, q.KW...)
	}
	return out
}

// Suggest returns up to MaxResults terms from the vocabulary matching q
// case-insensitively: terms the query prefixes come first, then terms
// that merely contain it, each group sorted by ascending length.
func Suggest(q string) []string {
	if len(q) < 1 {
		return nil
	}
	lowerQ := strings.ToLower(q)

	seen := make(map[string]bool)
	var prefixed, contained []string

	for _, term := range vocabulary() {
		lower := strings.ToLower(term)
		if seen[lower] {
			continue
		}
		switch {
		case strings.HasPrefix(lower, lowerQ):
			prefixed = append(prefixed, term)
			seen[lower] = true
		case strings.Contains(lower, lowerQ):
			contained = append(contained, term)
			seen[lower] = true
		}
	}

	byLength := func(s []string) {
		sort.SliceStable(s, func(i, j int) bool { return len(s[i]) < len(s[j]) })
	}
	byLength(prefixed)
	byLength(contained)

	out := append(prefixed, contained...)
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}
