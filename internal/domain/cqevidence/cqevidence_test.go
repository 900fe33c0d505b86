package cqevidence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/medsearch/aggregator/internal/domain/synonym"
)

func TestExtractCQKeywords_StripsLeadingCQPrefix(t *testing.T) {
	got := extractCQKeywords("CQ1 急性期脳卒中患者に早期リハビリテーションは推奨されるか")
	assert.NotContains(t, got, "CQ1")
}

func TestExtractCQKeywords_JapaneseReturnsAtMostThree(t *testing.T) {
	got := extractCQKeywords("CQ1 急性期脳卒中患者に早期リハビリテーションは推奨されるか")
	assert.LessOrEqual(t, len(got), 3)
	assert.NotEmpty(t, got)
}

func TestExtractCQKeywords_DropsStopCompounds(t *testing.T) {
	got := extractCQKeywords("患者の対象における効果の検討")
	for _, term := range got {
		assert.False(t, japaneseStopCompounds[term])
	}
}

func TestExtractCQKeywords_EnglishReturnsAtMostFourAndDropsStopWords(t *testing.T) {
	got := extractCQKeywords("Is early rehabilitation effective for stroke patients?")
	assert.LessOrEqual(t, len(got), 4)
	assert.NotContains(t, got, "is")
	assert.NotContains(t, got, "patients")
}

func TestParseKW_TakesFirstFourCommaSeparatedTerms(t *testing.T) {
	got := parseKW("stroke, rehabilitation, early, acute, extra, ignored")
	assert.Equal(t, []string{"stroke", "rehabilitation", "early", "acute"}, got)
}

func TestQueryTerms_KWOverridesExtraction(t *testing.T) {
	got := queryTerms("CQ1 急性期脳卒中患者に早期リハビリテーションは推奨されるか", "a, b", synonym.DefaultIndex)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestQueryTerms_PromotesJapaneseToEnglishViaSynonymIndex(t *testing.T) {
	got := queryTerms("CQ1 リハビリテーションは有効か", "", synonym.DefaultIndex)
	assert.Contains(t, got, "rehabilitation")
}

func TestQueryTerms_FallsBackToCuratedLexicon(t *testing.T) {
	en, ok := promoteToEnglish("食事療法", synonym.NewIndex(nil))
	require.True(t, ok)
	assert.Equal(t, "diet therapy", en)
}

type fakePubMed struct {
	calls [][]string
	recs  []record.Record
	err   error
}

func (f *fakePubMed) Name() record.Source { return record.SourcePubMed }

func (f *fakePubMed) Search(ctx context.Context, parts []string) ([]record.Record, error) {
	f.calls = append(f.calls, parts)
	return f.recs, f.err
}

func TestLookup_BuildsEvidenceFilteredQueryAndCapsAtFive(t *testing.T) {
	recs := []record.Record{
		{ID: "1", EvidenceLevel: record.SRMA},
		{ID: "2", EvidenceLevel: record.RCT},
		{ID: "3", EvidenceLevel: record.Observational},
		{ID: "4", EvidenceLevel: record.Guideline},
		{ID: "5", EvidenceLevel: record.RCT},
		{ID: "6", EvidenceLevel: record.SRMA},
		{ID: "7", EvidenceLevel: record.RCT},
	}
	pubmed := &fakePubMed{recs: recs}

	result, err := Lookup(context.Background(), pubmed, synonym.DefaultIndex, "stroke rehabilitation benefit", "")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Results), 5)
	for _, r := range result.Results {
		assert.NotEqual(t, record.Observational, r.EvidenceLevel)
	}

	require.Len(t, pubmed.calls, 1)
	assert.Contains(t, pubmed.calls[0], pubmedEvidenceFilter)
}

func TestLookup_NoTermsReturnsEmptyWithoutCallingPubMed(t *testing.T) {
	pubmed := &fakePubMed{}
	result, err := Lookup(context.Background(), pubmed, synonym.DefaultIndex, "", "")
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Empty(t, pubmed.calls)
}
