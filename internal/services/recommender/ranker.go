package recommender

import (
	"sort"
	"strings"

	"scheme-recommendation-engine/internal/models"
)

// Rank orders scored records by (score descending, display name
// ascending) and truncates to at most limit entries. The display-name
// tie-break folds case, so ordering is reproducible regardless of how
// the source capitalizes names.
//
// When every record scored zero the pre-scoring order is kept and the
// first limit records are returned: an under-specified profile still
// yields something rather than an empty set. An empty input stays empty.
// The input slice is not modified.
func Rank(scored []models.ScoredRecord, limit int) []models.ScoredRecord {
	if limit < 0 {
		limit = 0
	}
	if limit > len(scored) {
		limit = len(scored)
	}
	if len(scored) == 0 {
		return []models.ScoredRecord{}
	}

	maxScore := 0
	for _, s := range scored {
		if s.Score > maxScore {
			maxScore = s.Score
		}
	}

	out := make([]models.ScoredRecord, len(scored))
	copy(out, scored)

	if maxScore > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Score != out[j].Score {
				return out[i].Score > out[j].Score
			}
			return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
		})
	}

	return out[:limit]
}
