package cq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_AttachesParentGuidelineFields(t *testing.T) {
	ranked := Rank([]string{"早期リハビリテーション"})
	assert.NotEmpty(t, ranked)
	assert.NotEmpty(t, ranked[0].GuidelineTitle)
	assert.NotEmpty(t, ranked[0].GuidelineOrg)
}

func TestRank_OnlyPositiveScores(t *testing.T) {
	ranked := Rank([]string{"totally unrelated nonsense"})
	assert.Empty(t, ranked)
}

func TestGroupedByGuideline_FiltersByCategory(t *testing.T) {
	groups := GroupedByGuideline("cardiology")
	for _, g := range groups {
		assert.Equal(t, "cardiology", g.Category)
	}
	assert.NotEmpty(t, groups)
}

func TestGroupedByGuideline_NoFilterReturnsAll(t *testing.T) {
	all := GroupedByGuideline("")
	filtered := GroupedByGuideline("neurology")
	assert.Greater(t, len(all), 0)
	assert.LessOrEqual(t, len(filtered), len(all))
}
