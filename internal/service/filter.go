package service

import (
	"strings"

	"github.com/noah-isme/edu-enroll-api/internal/models"
)

// Visible computes the course subset matching the filter. Pure function,
// safe to call on every request.
//
// A course appears only when it passes every step:
//  1. its title is non-blank (placeholder rows are dropped),
//  2. its category equals the active category exactly, unless the active
//     category is the "all" sentinel,
//  3. the trimmed, lowercased search query is a substring of its lowercase
//     title, description, level, or any target-audience entry.
func Visible(courses []models.Course, filter models.FilterState) []models.Course {
	query := strings.ToLower(strings.TrimSpace(filter.SearchQuery))

	result := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if strings.TrimSpace(course.Title) == "" {
			continue
		}
		if filter.ActiveCategory != "" && filter.ActiveCategory != models.CategoryAll &&
			course.Category != filter.ActiveCategory {
			continue
		}
		if query != "" && !matchesQuery(course, query) {
			continue
		}
		result = append(result, course)
	}
	return result
}

func matchesQuery(course models.Course, query string) bool {
	if strings.Contains(strings.ToLower(course.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(course.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(course.Level), query) {
		return true
	}
	for _, audience := range course.TargetAudience {
		if strings.Contains(strings.ToLower(audience), query) {
			return true
		}
	}
	return false
}
