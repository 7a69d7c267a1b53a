package recommender_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/services/recommender"
)

func scoredRec(name string, score int) models.ScoredRecord {
	return models.ScoredRecord{
		SchemeRecord: models.SchemeRecord{DisplayName: name},
		Score:        score,
	}
}

func TestRank_ScoreDescending(t *testing.T) {
	scored := []models.ScoredRecord{
		scoredRec("Low", 2),
		scoredRec("High", 9),
		scoredRec("Mid", 5),
	}

	out := recommender.Rank(scored, 3)
	require.Len(t, out, 3)
	assert.Equal(t, "High", out[0].DisplayName)
	assert.Equal(t, "Mid", out[1].DisplayName)
	assert.Equal(t, "Low", out[2].DisplayName)
}

func TestRank_TieBreakCaseInsensitive(t *testing.T) {
	scored := []models.ScoredRecord{
		scoredRec("banana scheme", 4),
		scoredRec("Apple Scheme", 4),
		scoredRec("Cherry Scheme", 4),
	}

	out := recommender.Rank(scored, 3)
	require.Len(t, out, 3)
	assert.Equal(t, "Apple Scheme", out[0].DisplayName)
	assert.Equal(t, "banana scheme", out[1].DisplayName)
	assert.Equal(t, "Cherry Scheme", out[2].DisplayName)
}

func TestRank_ZeroScoreFallbackKeepsOrder(t *testing.T) {
	scored := []models.ScoredRecord{
		scoredRec("Zeta", 0),
		scoredRec("Alpha", 0),
	}

	out := recommender.Rank(scored, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "Zeta", out[0].DisplayName, "all-zero scores keep pre-scoring order")
}

func TestRank_TruncatesToLimit(t *testing.T) {
	scored := []models.ScoredRecord{
		scoredRec("A", 3), scoredRec("B", 2), scoredRec("C", 1), scoredRec("D", 4),
	}

	out := recommender.Rank(scored, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "D", out[0].DisplayName)
	assert.Equal(t, "A", out[1].DisplayName)
}

func TestRank_LimitBeyondLength(t *testing.T) {
	scored := []models.ScoredRecord{scoredRec("Only", 1)}

	out := recommender.Rank(scored, 50)
	assert.Len(t, out, 1)
}

func TestRank_EmptyInput(t *testing.T) {
	out := recommender.Rank(nil, 5)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	scored := []models.ScoredRecord{
		scoredRec("Low", 1),
		scoredRec("High", 9),
	}

	recommender.Rank(scored, 2)
	assert.Equal(t, "Low", scored[0].DisplayName)
	assert.Equal(t, "High", scored[1].DisplayName)
}
