package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/edu-enroll-api/internal/models"
)

func sampleCourses() []models.Course {
	return []models.Course{
		{ID: "c1", Title: "Vedic Maths", Description: "Mental arithmetic techniques", Level: "Beginner", Category: "mathematics", TargetAudience: []string{"School Students"}},
		{ID: "c2", Title: "Spoken Sanskrit", Description: "Conversational fluency", Level: "Intermediate", Category: "language", TargetAudience: []string{"General"}},
		{ID: "c3", Title: "Yoga Fundamentals", Description: "Asanas and breathing", Level: "Beginner", Category: "wellness", TargetAudience: []string{"Adults", "Seniors"}},
		{ID: "c4", Title: "Advanced Sanskrit Grammar", Description: "Panini sutras in depth", Level: "Advanced", Category: "language", TargetAudience: []string{"Scholars"}},
	}
}

func TestVisibleNoFilterReturnsAll(t *testing.T) {
	got := Visible(sampleCourses(), models.FilterState{})
	assert.Len(t, got, 4)
}

func TestVisibleCategoryAndQueryAreConjunctive(t *testing.T) {
	courses := sampleCourses()

	byCategory := Visible(courses, models.FilterState{ActiveCategory: "language"})
	assert.Len(t, byCategory, 2)

	both := Visible(courses, models.FilterState{ActiveCategory: "language", SearchQuery: "grammar"})
	if assert.Len(t, both, 1) {
		assert.Equal(t, "c4", both[0].ID)
	}

	// Query matches a wellness course, but the category excludes it.
	none := Visible(courses, models.FilterState{ActiveCategory: "language", SearchQuery: "yoga"})
	assert.Empty(t, none)
}

func TestVisibleCategoryAllDisablesCategoryFilter(t *testing.T) {
	courses := sampleCourses()

	assert.Len(t, Visible(courses, models.FilterState{ActiveCategory: models.CategoryAll}), 4)
	assert.Len(t, Visible(courses, models.FilterState{ActiveCategory: ""}), 4)
}

func TestVisibleSearchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	courses := sampleCourses()

	upper := Visible(courses, models.FilterState{SearchQuery: "SANSKRIT"})
	lower := Visible(courses, models.FilterState{SearchQuery: "  sanskrit "})
	assert.Equal(t, upper, lower)
	assert.Len(t, upper, 2)
}

func TestVisibleSearchSpansTitleDescriptionLevelAudience(t *testing.T) {
	courses := sampleCourses()

	byDescription := Visible(courses, models.FilterState{SearchQuery: "breathing"})
	if assert.Len(t, byDescription, 1) {
		assert.Equal(t, "c3", byDescription[0].ID)
	}

	byLevel := Visible(courses, models.FilterState{SearchQuery: "advanced"})
	if assert.Len(t, byLevel, 1) {
		assert.Equal(t, "c4", byLevel[0].ID)
	}

	byAudience := Visible(courses, models.FilterState{SearchQuery: "seniors"})
	if assert.Len(t, byAudience, 1) {
		assert.Equal(t, "c3", byAudience[0].ID)
	}
}

func TestVisibleDropsBlankTitles(t *testing.T) {
	courses := append(sampleCourses(), models.Course{ID: "c5", Title: "   ", Category: "language"})

	got := Visible(courses, models.FilterState{ActiveCategory: "language"})
	for _, c := range got {
		assert.NotEqual(t, "c5", c.ID)
	}
}

func TestVisibleEmptyCatalog(t *testing.T) {
	assert.Empty(t, Visible(nil, models.FilterState{SearchQuery: "anything"}))
}

func TestVisibleNoMatchIsEmptyNotError(t *testing.T) {
	got := Visible(sampleCourses(), models.FilterState{SearchQuery: "astrophysics"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
