// Package models defines the data structures for the scheme recommendation engine.
package models

import (
	"strings"
)

// AnySentinel is the free-text field value meaning "no constraint".
const AnySentinel = "any"

// Profile holds one user's query parameters for a single recommendation
// request. All fields are optional; nil numeric fields and "any" (or
// empty) text fields impose no constraint.
type Profile struct {
	Age        *int     `json:"age,omitempty"`
	Income     *float64 `json:"income,omitempty"`
	Occupation string   `json:"occupation,omitempty"`
	Education  string   `json:"education,omitempty"`
	Category   string   `json:"category,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// keyword normalizes a profile text field to a lowercase search keyword,
// returning "" when the field imposes no constraint.
func keyword(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" || s == AnySentinel {
		return ""
	}
	return s
}

// OccupationKeyword returns the occupation search keyword, or "".
func (p *Profile) OccupationKeyword() string { return keyword(p.Occupation) }

// EducationKeyword returns the education search keyword, or "".
func (p *Profile) EducationKeyword() string { return keyword(p.Education) }

// CategoryKeyword returns the social-category search keyword, or "".
func (p *Profile) CategoryKeyword() string { return keyword(p.Category) }

// LocationKeyword returns the location search keyword, or "".
func (p *Profile) LocationKeyword() string { return keyword(p.Location) }

// Keywords returns the profile's soft-match keywords in a fixed order:
// occupation, education, location, category. Unset and "any" fields are
// omitted.
func (p *Profile) Keywords() []string {
	kws := make([]string, 0, 4)
	for _, v := range []string{p.Occupation, p.Education, p.Location, p.Category} {
		if kw := keyword(v); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}

// RecommendRequest is the wire shape of a recommendation request shared
// by the HTTP server and the Lambda handler.
type RecommendRequest struct {
	Profile Profile `json:"profile"`
	Query   string  `json:"query,omitempty"`
	Limit   int     `json:"limit,omitempty"`
}

// ValidateLimit rejects a requested result limit outside [1, max]. The
// core pipeline never clamps; callers must validate before invoking it.
func ValidateLimit(limit, max int) error {
	if limit < 1 || limit > max {
		return ErrInvalidLimit
	}
	return nil
}
