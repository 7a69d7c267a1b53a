// Package normalizer maps heterogeneous scheme tables onto the canonical schema.
package normalizer

import (
	"strconv"
	"strings"

	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/utils"
)

// Config drives column reconciliation. All matching against column names
// is case-insensitive; keyword lists are ordered priority lists, first
// match wins.
type Config struct {
	// ColumnSynonyms maps lowercased source column names to canonical names.
	ColumnSynonyms map[string]string

	// TextColumns are the canonical textual columns. They are guaranteed
	// present (empty default) after normalization and feed the search blob
	// in this order.
	TextColumns []string

	// NameKeywords and DescKeywords drive display-name and description
	// column discovery: the first keyword contained in any column name wins.
	NameKeywords []string
	DescKeywords []string

	// NameFallbacks and DescFallbacks are tried per row when the discovered
	// column holds an empty value.
	NameFallbacks []string
	DescFallbacks []string

	NameSentinel string
	DescSentinel string
}

// DefaultConfig returns the canonical column configuration.
func DefaultConfig() Config {
	return Config{
		ColumnSynonyms: map[string]string{
			"scheme name":  "schemeName",
			"schemename":   "schemeName",
			"scheme_name":  "schemeName",
			"cat":          "schemeCategory",
			"categories":   "schemeCategory",
			"benefit":      "benefits",
			"benefits":     "benefits",
			"minage":       "minAge",
			"min_age":      "minAge",
			"min age":      "minAge",
			"maxage":       "maxAge",
			"max_age":      "maxAge",
			"max age":      "maxAge",
			"incomelimit":  "incomeLimit",
			"income_limit": "incomeLimit",
			"income limit": "incomeLimit",
		},
		TextColumns: []string{
			"title", "name", "schemeName", "description", "eligibility",
			"schemeCategory", "category", "level", "state", "department",
			"tags", "benefits",
		},
		NameKeywords:  []string{"schemename", "scheme name", "scheme_name", "scheme", "title", "name"},
		DescKeywords:  []string{"description", "desc", "about", "details", "summary", "overview"},
		NameFallbacks: []string{"schemeName", "title", "name"},
		DescFallbacks: []string{"description", "details", "about"},
		NameSentinel:  models.UnknownSchemeName,
		DescSentinel:  models.NoDescription,
	}
}

// Normalizer turns raw string tables into canonical SchemeRecords.
type Normalizer struct {
	cfg Config
}

// New creates a normalizer with the default configuration.
func New() *Normalizer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a normalizer with a custom configuration.
func NewWithConfig(cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// column binds a canonical column name to the source header it came from.
// Backfilled columns have no source header.
type column struct {
	canonical string
	source    string
	backfill  bool
}

// Normalize maps every row of the table onto a SchemeRecord. It never
// drops rows and never fails: missing columns are backfilled empty and
// unresolvable names degrade to sentinels.
func (n *Normalizer) Normalize(table *utils.RawTable) []models.SchemeRecord {
	if table == nil {
		return nil
	}

	cols := n.reconcile(table.Headers)

	records := make([]models.SchemeRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, n.normalizeRow(cols, row))
	}
	return records
}

// reconcile maps source headers onto canonical columns, preserving header
// order, and backfills any missing canonical column.
func (n *Normalizer) reconcile(headers []string) []column {
	cols := make([]column, 0, len(headers)+len(n.cfg.TextColumns))
	seen := make(map[string]bool, len(headers))

	for _, h := range headers {
		canonical := h
		if mapped, ok := n.cfg.ColumnSynonyms[strings.ToLower(h)]; ok {
			canonical = mapped
		}
		// First occurrence of a canonical name wins.
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		cols = append(cols, column{canonical: canonical, source: h})
	}

	for _, c := range n.cfg.TextColumns {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, column{canonical: c, backfill: true})
		}
	}
	for _, c := range []string{"minAge", "maxAge", "incomeLimit"} {
		if !seen[c] {
			seen[c] = true
			cols = append(cols, column{canonical: c, backfill: true})
		}
	}

	return cols
}

func (n *Normalizer) normalizeRow(cols []column, row map[string]string) models.SchemeRecord {
	fields := make(map[string]string, len(cols))
	for _, c := range cols {
		if c.backfill {
			fields[c.canonical] = ""
		} else {
			fields[c.canonical] = row[c.source]
		}
	}

	displayName := n.resolve(cols, fields, n.cfg.NameKeywords, n.cfg.NameFallbacks, n.cfg.NameSentinel)
	description := n.resolve(cols, fields, n.cfg.DescKeywords, n.cfg.DescFallbacks, n.cfg.DescSentinel)

	rec := models.SchemeRecord{
		DisplayName:     displayName,
		Description:     description,
		EligibilityText: fields["eligibility"],
		BenefitsText:    fields["benefits"],
		CategoryTag:     fields["schemeCategory"],
		LevelTag:        fields["level"],
		StateTag:        fields["state"],
		DepartmentTag:   fields["department"],
		TagsText:        fields["tags"],
		MinAge:          parseOptionalInt(fields["minAge"]),
		MaxAge:          parseOptionalInt(fields["maxAge"]),
		IncomeLimit:     parseOptionalFloat(fields["incomeLimit"]),
		Fields:          fields,
	}
	rec.SearchBlob = n.buildBlob(fields, displayName, description)

	return rec
}

// resolve finds a row's value for a derived field: discover the column by
// keyword, then fall back through the given canonical columns, then the
// sentinel.
func (n *Normalizer) resolve(cols []column, fields map[string]string, keywords, fallbacks []string, sentinel string) string {
	if c := findColumn(cols, keywords); c != "" {
		if v := strings.TrimSpace(fields[c]); v != "" {
			return v
		}
	}
	for _, fb := range fallbacks {
		if v := strings.TrimSpace(fields[fb]); v != "" {
			return v
		}
	}
	return sentinel
}

// findColumn returns the first canonical column whose name contains one of
// the keywords, honoring keyword priority over header order.
func findColumn(cols []column, keywords []string) string {
	for _, kw := range keywords {
		for _, c := range cols {
			if c.backfill {
				continue
			}
			if strings.Contains(strings.ToLower(c.canonical), kw) {
				return c.canonical
			}
		}
	}
	return ""
}

// buildBlob concatenates every canonical textual column plus the derived
// name and description, lowercased. Any substring of a textual field is a
// substring of the blob.
func (n *Normalizer) buildBlob(fields map[string]string, displayName, description string) string {
	parts := make([]string, 0, len(n.cfg.TextColumns)+2)
	for _, c := range n.cfg.TextColumns {
		parts = append(parts, fields[c])
	}
	parts = append(parts, displayName, description)
	return strings.ToLower(strings.Join(parts, " "))
}

// parseOptionalInt parses a numeric bound, treating absence and garbage
// as "no constraint". Commas and float notation are tolerated.
func parseOptionalInt(s string) *int {
	f := parseOptionalFloat(s)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// parseOptionalFloat parses a numeric bound, treating absence and garbage
// as "no constraint". Commas and currency prefixes are tolerated.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
