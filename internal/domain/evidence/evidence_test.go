package evidence

import (
	"testing"

	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPubType_GuidelinePriority(t *testing.T) {
	assert.Equal(t, record.Guideline, ClassifyPubType([]string{"Practice Guideline"}))
	assert.Equal(t, record.Guideline, ClassifyPubType([]string{"Guideline"}))
}

func TestClassifyPubType_FixedPriority(t *testing.T) {
	// A type list carrying both a guideline and a review tag must resolve
	// to guideline: earlier tiers always win regardless of list order.
	assert.Equal(t, record.Guideline, ClassifyPubType([]string{"Review", "Practice Guideline"}))
	assert.Equal(t, record.SRMA, ClassifyPubType([]string{"Meta-Analysis", "Review"}))
}

func TestClassifyPubType_Fallback(t *testing.T) {
	assert.Equal(t, record.Other, ClassifyPubType([]string{"Letter"}))
	assert.Equal(t, record.Other, ClassifyPubType(nil))
}

func TestClassifyPubType_Observational(t *testing.T) {
	assert.Equal(t, record.Observational, ClassifyPubType([]string{"Cohort Studies"}))
	assert.Equal(t, record.Observational, ClassifyPubType([]string{"Case-Control Studies"}))
}

func TestClassifyByTitle_Guideline(t *testing.T) {
	assert.Equal(t, record.Guideline, ClassifyByTitle("2021 Clinical Practice Guideline for Stroke"))
	assert.Equal(t, record.Guideline, ClassifyByTitle("脳卒中治療ガイドライン2021"))
}

func TestClassifyByTitle_S5_JapaneseObservationalTier8(t *testing.T) {
	got := ClassifyByTitle("高齢者における転倒の危険因子の検討")
	assert.Equal(t, record.Observational, got)
}

func TestClassifyByTitle_Fallthrough(t *testing.T) {
	assert.Equal(t, record.Other, ClassifyByTitle("A letter to the editor"))
	assert.Equal(t, record.Other, ClassifyByTitle(""))
}

func TestClassifyByTitle_IsTotal(t *testing.T) {
	titles := []string{"", "xyz", "12345", "ガイドライン", "systematic review of reviews"}
	for _, title := range titles {
		got := ClassifyByTitle(title)
		_, known := record.EVRank[got]
		assert.True(t, known, "title %q produced unknown level %q", title, got)
	}
}

func TestClassifyByTitle_PriorityOrderIsRespected(t *testing.T) {
	// Tier 1 (guideline) must win over a later-tier pattern (review) when
	// both appear in the same title.
	got := ClassifyByTitle("A review and clinical recommendation for sepsis management")
	assert.Equal(t, record.Guideline, got)
}

func TestClassifyByTitle_Tier11LastAmongNonJapanese(t *testing.T) {
	// "efficacy" alone, with nothing from earlier tiers, falls to tier 11.
	got := ClassifyByTitle("Efficacy of early mobilization after stroke")
	assert.Equal(t, record.ClinicalTrial, got)
}
