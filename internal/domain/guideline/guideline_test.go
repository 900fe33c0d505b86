package guideline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_ExactDiseaseMatchOutweighsSubstring(t *testing.T) {
	g := Guideline{Title: "Stroke Guideline", Diseases: []string{"stroke"}}
	exact := Score(g, []string{"stroke"})
	substring := Score(g, []string{"strok"})
	assert.Greater(t, exact, substring)
}

func TestScore_OnlyPositiveScoresRank(t *testing.T) {
	ranked := Rank([]string{"completely unrelated gibberish term"})
	assert.Empty(t, ranked)
}

func TestRank_SortsByScoreThenYear(t *testing.T) {
	ranked := Rank([]string{"stroke", "リハビリテーション"})
	assert.NotEmpty(t, ranked)
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score == ranked[i].Score {
			assert.GreaterOrEqual(t, ranked[i-1].Year, ranked[i].Year)
		} else {
			assert.Greater(t, ranked[i-1].Score, ranked[i].Score)
		}
	}
}

func TestByID_FindsKnownGuideline(t *testing.T) {
	g, ok := ByID("jsa-stroke-2021")
	assert.True(t, ok)
	assert.Equal(t, "日本脳卒中学会", g.Org)
}

func TestByID_UnknownReturnsFalse(t *testing.T) {
	_, ok := ByID("nonexistent")
	assert.False(t, ok)
}
