package recommender

import (
	"strings"

	"scheme-recommendation-engine/internal/models"
)

// Weights are the scoring boost constants. The source data on which the
// pipeline was tuned used slightly different occupation boosts in
// different places; they are configuration here, not code paths.
type Weights struct {
	Keyword              int `mapstructure:"keyword"`
	OccupationBlob       int `mapstructure:"occupation-blob"`
	OccupationField      int `mapstructure:"occupation-field"`
	CategoryBlob         int `mapstructure:"category-blob"`
	CategoryEligibility  int `mapstructure:"category-eligibility"`
	EducationBlob        int `mapstructure:"education-blob"`
	EducationEligibility int `mapstructure:"education-eligibility"`
}

// DefaultWeights returns the canonical scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Keyword:              2,
		OccupationBlob:       6,
		OccupationField:      3,
		CategoryBlob:         3,
		CategoryEligibility:  2,
		EducationBlob:        2,
		EducationEligibility: 1,
	}
}

// Score assigns each record a non-negative relevance score, preserving
// input order and length. Scores are deterministic for a given
// (profile, record) pair.
//
// All checks are case-insensitive substring tests, not word-boundary
// matches: a keyword inside an unrelated word still counts. That is a
// known precision limitation carried over deliberately.
func Score(profile models.Profile, records []models.SchemeRecord, w Weights) []models.ScoredRecord {
	kws := profile.Keywords()
	occKw := profile.OccupationKeyword()
	catKw := profile.CategoryKeyword()
	eduKw := profile.EducationKeyword()

	scored := make([]models.ScoredRecord, len(records))
	for i, rec := range records {
		score := 0

		for _, kw := range kws {
			if strings.Contains(rec.SearchBlob, kw) {
				score += w.Keyword
			}
		}

		if occKw != "" {
			if strings.Contains(rec.SearchBlob, occKw) {
				score += w.OccupationBlob
			}
			for _, field := range []string{rec.EligibilityText, rec.CategoryTag, rec.Description} {
				if strings.Contains(strings.ToLower(field), occKw) {
					score += w.OccupationField
				}
			}
		}

		if catKw != "" {
			if strings.Contains(rec.SearchBlob, catKw) {
				score += w.CategoryBlob
			}
			if strings.Contains(strings.ToLower(rec.EligibilityText), catKw) {
				score += w.CategoryEligibility
			}
		}

		if eduKw != "" {
			if strings.Contains(rec.SearchBlob, eduKw) {
				score += w.EducationBlob
			}
			if strings.Contains(strings.ToLower(rec.EligibilityText), eduKw) {
				score += w.EducationEligibility
			}
		}

		scored[i] = models.ScoredRecord{SchemeRecord: rec, Score: score}
	}

	return scored
}
