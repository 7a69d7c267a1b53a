package recommender_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/recommender"
)

func TestScore_OccupationBoosts(t *testing.T) {
	records := []models.SchemeRecord{
		{
			DisplayName:     "Farmer Aid",
			EligibilityText: "Small and marginal farmers",
			SearchBlob:      "farmer aid small and marginal farmers subsidy income",
		},
	}
	profile := models.Profile{Occupation: "Farmer"}

	scored := recommender.Score(profile, records, recommender.DefaultWeights())
	require.Len(t, scored, 1)

	// keyword 2 + blob 6 + eligibility field 3
	assert.Equal(t, 11, scored[0].Score)
}

func TestScore_OccupationAllFieldBoosts(t *testing.T) {
	records := []models.SchemeRecord{
		{
			DisplayName:     "Farmer Aid",
			EligibilityText: "Registered farmers only",
			CategoryTag:     "Farmer Welfare",
			Description:     "Support for farmers",
			SearchBlob:      "farmer aid registered farmers only farmer welfare support for farmers",
		},
	}
	profile := models.Profile{Occupation: "farmer"}

	scored := recommender.Score(profile, records, recommender.DefaultWeights())
	require.Len(t, scored, 1)

	// keyword 2 + blob 6 + 3 each for eligibility, category, description
	assert.Equal(t, 17, scored[0].Score)
}

func TestScore_CategoryAndEducationBoosts(t *testing.T) {
	records := []models.SchemeRecord{
		{
			DisplayName:     "Post Matric Scholarship",
			EligibilityText: "SC students who passed matriculation",
			SearchBlob:      "post matric scholarship sc students who passed matriculation",
		},
	}
	profile := models.Profile{Category: "SC", Education: "Matric"}

	scored := recommender.Score(profile, records, recommender.DefaultWeights())
	require.Len(t, scored, 1)

	// category: keyword 2 + blob 3 + eligibility 2
	// education: keyword 2 + blob 2 + eligibility 1
	assert.Equal(t, 12, scored[0].Score)
}

func TestScore_AnyFieldsContributeNothing(t *testing.T) {
	records := []models.SchemeRecord{
		{DisplayName: "Any Scheme", SearchBlob: "any scheme for anyone"},
	}
	profile := models.Profile{Occupation: "any", Education: "Any", Category: " any "}

	scored := recommender.Score(profile, records, recommender.DefaultWeights())
	require.Len(t, scored, 1)
	assert.Equal(t, 0, scored[0].Score)
}

func TestScore_PreservesOrderAndLength(t *testing.T) {
	records := []models.SchemeRecord{
		{DisplayName: "C", SearchBlob: "nothing here"},
		{DisplayName: "A", SearchBlob: "farmer things"},
		{DisplayName: "B", SearchBlob: "nothing either"},
	}
	profile := models.Profile{Occupation: "farmer"}

	scored := recommender.Score(profile, records, recommender.DefaultWeights())
	require.Len(t, scored, 3)
	assert.Equal(t, "C", scored[0].DisplayName)
	assert.Equal(t, "A", scored[1].DisplayName)
	assert.Equal(t, "B", scored[2].DisplayName)
}

func TestScore_Deterministic(t *testing.T) {
	records := []models.SchemeRecord{
		{DisplayName: "Farmer Aid", EligibilityText: "farmers", SearchBlob: "farmer aid farmers"},
		{DisplayName: "Other", SearchBlob: "other"},
	}
	profile := models.Profile{Occupation: "farmer", Category: "sc"}

	first := recommender.Score(profile, records, recommender.DefaultWeights())
	second := recommender.Score(profile, records, recommender.DefaultWeights())
	assert.Equal(t, first, second)
}

func TestScore_SubstringFalsePositive(t *testing.T) {
	// Matching is substring-based, not word-boundary: "art" inside
	// "department" counts. Pinned so a change here is deliberate.
	records := []models.SchemeRecord{
		{DisplayName: "Dept Scheme", SearchBlob: "dept scheme department of finance"},
	}
	profile := models.Profile{Occupation: "art"}

	scored := recommender.Score(profile, records, recommender.DefaultWeights())
	require.Len(t, scored, 1)

	// keyword 2 + occupation blob 6
	assert.Equal(t, 8, scored[0].Score)
}

func TestScore_CustomWeights(t *testing.T) {
	records := []models.SchemeRecord{
		{DisplayName: "Farmer Aid", SearchBlob: "farmer aid"},
	}
	profile := models.Profile{Occupation: "farmer"}

	w := recommender.Weights{Keyword: 1, OccupationBlob: 10}
	scored := recommender.Score(profile, records, w)
	require.Len(t, scored, 1)
	assert.Equal(t, 11, scored[0].Score)
}
