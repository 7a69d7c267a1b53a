// Package models defines the data structures for the scheme recommendation engine.
package models

// Sentinel values substituted when the source dataset has no usable
// name or description for a row.
const (
	UnknownSchemeName = "Unknown Scheme"
	NoDescription     = "No description available."
)

// SchemeRecord is one row of the scheme dataset after normalization.
// Every textual field is guaranteed non-nil (empty string when absent);
// numeric bounds are nil when the dataset does not constrain them.
type SchemeRecord struct {
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	EligibilityText string `json:"eligibility"`
	BenefitsText    string `json:"benefits"`
	CategoryTag     string `json:"scheme_category"`
	LevelTag        string `json:"level"`
	StateTag        string `json:"state"`
	DepartmentTag   string `json:"department"`
	TagsText        string `json:"tags,omitempty"`

	// SearchBlob is the lowercased concatenation of every textual column,
	// built once at normalization time. Any substring of a textual field
	// is also a substring of the blob.
	SearchBlob string `json:"-"`

	// Optional eligibility bounds. nil means "no constraint", not zero.
	MinAge      *int     `json:"min_age,omitempty"`
	MaxAge      *int     `json:"max_age,omitempty"`
	IncomeLimit *float64 `json:"income_limit,omitempty"`

	// Fields holds every canonical column's raw string value, used by
	// presentation layers for CSV export and idempotence checks.
	Fields map[string]string `json:"-"`
}

// ScoredRecord pairs a SchemeRecord with its relevance score for one
// recommendation request.
type ScoredRecord struct {
	SchemeRecord
	Score int `json:"score"`
}

// SchemeSummary is a lightweight view of a scheme for listings.
type SchemeSummary struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	CategoryTag string `json:"scheme_category"`
	LevelTag    string `json:"level"`
	StateTag    string `json:"state"`
}

// ToSummary converts a SchemeRecord to a SchemeSummary.
func (r *SchemeRecord) ToSummary() SchemeSummary {
	return SchemeSummary{
		DisplayName: r.DisplayName,
		Description: r.Description,
		CategoryTag: r.CategoryTag,
		LevelTag:    r.LevelTag,
		StateTag:    r.StateTag,
	}
}
