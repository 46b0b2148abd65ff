package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-enroll-api/internal/models"
)

func TestDeriveBreadcrumbsRoot(t *testing.T) {
	trail := DeriveBreadcrumbs("/")

	require.Len(t, trail, 1)
	assert.Equal(t, models.BreadcrumbItem{Label: "Home", Href: "/", IsActive: true}, trail[0])
}

func TestDeriveBreadcrumbsNestedPath(t *testing.T) {
	trail := DeriveBreadcrumbs("/about-us/leadership")

	require.Len(t, trail, 3)
	assert.Equal(t, models.BreadcrumbItem{Label: "Home", Href: "/", IsActive: false}, trail[0])
	assert.Equal(t, models.BreadcrumbItem{Label: "About", Href: "/about-us", IsActive: false}, trail[1])
	assert.Equal(t, models.BreadcrumbItem{Label: "Leadership", IsActive: true}, trail[2])
}

func TestDeriveBreadcrumbsTerminalItemHasNoHref(t *testing.T) {
	trail := DeriveBreadcrumbs("/our-works/education/girls-education")

	last := trail[len(trail)-1]
	assert.True(t, last.IsActive)
	assert.Empty(t, last.Href)
	for _, item := range trail[:len(trail)-1] {
		assert.False(t, item.IsActive)
		assert.NotEmpty(t, item.Href)
	}
}

func TestDeriveBreadcrumbsKnownLabels(t *testing.T) {
	cases := map[string]string{
		"/reports-financials":          "Reports & Financials",
		"/media-events":                "Media & Events",
		"/working-model":               "Our Working Model",
		"/partnering-institutions":     "Partnering with Educational Institutions",
		"/out-of-school-dropout":       "Out of School / School Dropout",
		"/discourse-oriented-pedagogy": "Discourse Oriented Pedagogy",
	}
	for path, want := range cases {
		trail := DeriveBreadcrumbs(path)
		require.Len(t, trail, 2, path)
		assert.Equal(t, want, trail[1].Label, path)
	}
}

func TestDeriveBreadcrumbsUnknownSegmentCapitalised(t *testing.T) {
	trail := DeriveBreadcrumbs("/volunteering")

	require.Len(t, trail, 2)
	assert.Equal(t, "Volunteering", trail[1].Label)
}

func TestDeriveBreadcrumbsCapitalisesMultiByteRune(t *testing.T) {
	trail := DeriveBreadcrumbs("/éducation")

	require.Len(t, trail, 2)
	assert.Equal(t, "Éducation", trail[1].Label)
}

func TestDeriveBreadcrumbsIgnoresEmptySegments(t *testing.T) {
	assert.Equal(t, DeriveBreadcrumbs("/courses/"), DeriveBreadcrumbs("/courses"))
	assert.Equal(t, DeriveBreadcrumbs("//courses"), DeriveBreadcrumbs("/courses"))
}

func TestDeriveBreadcrumbsIsIdempotent(t *testing.T) {
	first := DeriveBreadcrumbs("/our-works/education")
	second := DeriveBreadcrumbs("/our-works/education")
	assert.Equal(t, first, second)
}
