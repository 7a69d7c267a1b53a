// Package recommender implements the profile-driven filter, score and rank pipeline.
package recommender

import (
	"strings"

	"scheme-recommendation-engine/internal/models"
)

// nationwideMarkers are level-tag substrings that exempt a scheme from
// the state filter: nationwide schemes match every location.
var nationwideMarkers = []string{"central", "national", "all india"}

// Filter applies the hard eligibility predicates to records, returning
// the surviving subset in its original order. All predicates are
// conjunctive and order-independent. The input slice is not modified.
func Filter(profile models.Profile, query string, records []models.SchemeRecord) []models.SchemeRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	locKw := profile.LocationKeyword()
	catKw := profile.CategoryKeyword()

	out := make([]models.SchemeRecord, 0, len(records))
	for _, rec := range records {
		if !ageEligible(profile, rec) {
			continue
		}
		if !incomeEligible(profile, rec) {
			continue
		}
		if locKw != "" && !locationEligible(locKw, rec) {
			continue
		}
		if catKw != "" && !categoryEligible(catKw, rec) {
			continue
		}
		if q != "" && !strings.Contains(rec.SearchBlob, q) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ageEligible excludes records whose age bounds provably exclude the
// profile. A missing bound on either side is no constraint.
func ageEligible(profile models.Profile, rec models.SchemeRecord) bool {
	if profile.Age == nil {
		return true
	}
	if rec.MinAge != nil && *rec.MinAge > *profile.Age {
		return false
	}
	if rec.MaxAge != nil && *rec.MaxAge < *profile.Age {
		return false
	}
	return true
}

// incomeEligible excludes records whose income ceiling is below the
// profile's income.
func incomeEligible(profile models.Profile, rec models.SchemeRecord) bool {
	if profile.Income == nil || rec.IncomeLimit == nil {
		return true
	}
	return *rec.IncomeLimit >= *profile.Income
}

// locationEligible keeps records whose state contains the location, or
// whose level marks them nationwide.
func locationEligible(locKw string, rec models.SchemeRecord) bool {
	if strings.Contains(strings.ToLower(rec.StateTag), locKw) {
		return true
	}
	level := strings.ToLower(rec.LevelTag)
	for _, marker := range nationwideMarkers {
		if strings.Contains(level, marker) {
			return true
		}
	}
	return false
}

// categoryEligible keeps records whose eligibility text or search blob
// contains the category keyword. A record with empty eligibility text
// can still pass when another field matches via the blob, and is
// excluded otherwise; this permissiveness is deliberate and pinned by
// tests.
func categoryEligible(catKw string, rec models.SchemeRecord) bool {
	if strings.Contains(strings.ToLower(rec.EligibilityText), catKw) {
		return true
	}
	return strings.Contains(rec.SearchBlob, catKw)
}
