package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scheme-recommendation-engine/internal/models"
)

func TestValidateLimit(t *testing.T) {
	assert.NoError(t, models.ValidateLimit(1, 50))
	assert.NoError(t, models.ValidateLimit(50, 50))
	assert.NoError(t, models.ValidateLimit(5, 50))

	assert.ErrorIs(t, models.ValidateLimit(0, 50), models.ErrInvalidLimit)
	assert.ErrorIs(t, models.ValidateLimit(-3, 50), models.ErrInvalidLimit)
	assert.ErrorIs(t, models.ValidateLimit(51, 50), models.ErrInvalidLimit)
}

func TestProfileKeywords(t *testing.T) {
	p := models.Profile{
		Occupation: " Farmer ",
		Education:  "any",
		Category:   "SC",
		Location:   "",
	}

	assert.Equal(t, "farmer", p.OccupationKeyword())
	assert.Equal(t, "", p.EducationKeyword(), `"any" imposes no constraint`)
	assert.Equal(t, "sc", p.CategoryKeyword())
	assert.Equal(t, "", p.LocationKeyword())

	assert.Equal(t, []string{"farmer", "sc"}, p.Keywords())
}

func TestProfileKeywordsEmpty(t *testing.T) {
	p := models.Profile{Occupation: "Any", Education: " ANY "}
	assert.Empty(t, p.Keywords())
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name   string
		signup models.SignupCreate
		want   error
	}{
		{"valid", models.SignupCreate{Name: "Asha", Age: 28, Email: "asha@example.com"}, nil},
		{"valid without email", models.SignupCreate{Name: "Asha", Age: 28}, nil},
		{"blank name", models.SignupCreate{Name: "   ", Age: 28}, models.ErrEmptyName},
		{"negative age", models.SignupCreate{Name: "Asha", Age: -1}, models.ErrInvalidAge},
		{"email without at", models.SignupCreate{Name: "Asha", Email: "asha.example.com"}, models.ErrInvalidEmail},
		{"email without domain dot", models.SignupCreate{Name: "Asha", Email: "asha@example"}, models.ErrInvalidEmail},
		{"email ending in dot", models.SignupCreate{Name: "Asha", Email: "asha@example."}, models.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := models.ValidateSignup(&tt.signup)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSchemeRecordToSummary(t *testing.T) {
	rec := models.SchemeRecord{
		DisplayName: "PM Kisan",
		Description: "Income support",
		CategoryTag: "Agriculture",
		LevelTag:    "Central",
		StateTag:    "",
		SearchBlob:  "should not leak",
	}

	sum := rec.ToSummary()
	assert.Equal(t, "PM Kisan", sum.DisplayName)
	assert.Equal(t, "Income support", sum.Description)
	assert.Equal(t, "Agriculture", sum.CategoryTag)
	assert.Equal(t, "Central", sum.LevelTag)
}
