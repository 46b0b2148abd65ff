package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/noah-isme/edu-enroll-api/internal/models"
)

// routeLabels maps known path segments to their display labels. Unknown
// segments fall back to capitalising the first letter.
var routeLabels = map[string]string{
	"about-us":                     "About",
	"introduction":                 "Introduction",
	"leadership":                   "Leadership",
	"contact":                      "Contact",
	"testimonials":                 "Testimonials",
	"reports-financials":           "Reports & Financials",
	"our-works":                    "Our Works",
	"courses":                      "Courses",
	"partners":                     "Partners",
	"donation":                     "Donation",
	"media-events":                 "Media & Events",
	"working-model":                "Our Working Model",
	"blended-learning":             "Blended Learning Model",
	"discourse-oriented-pedagogy":  "Discourse Oriented Pedagogy",
	"application-of-technology":    "Application Of Technology",
	"partnering-institutions":      "Partnering with Educational Institutions",
	"remote-learning":              "Remote Individual Learning",
	"gallery":                      "Gallery",
	"education":                    "Education",
	"elementary-middle-school":     "Elementary & Middle School",
	"slum-children":                "Slum Children",
	"public-government-school":     "Public(government) School",
	"girls-education":              "Girls' Education",
	"out-of-school-dropout":        "Out of School / School Dropout",
	"madrasa":                      "Madrasa",
	"teachers-training":            "Teachers Training",
	"skills-training":              "Skills Training",
	"adult-education":              "Adult Education",
	"global-education":             "Global Education",
}

// DeriveBreadcrumbs maps a URL path to a labeled wayfinding trail. The trail
// always starts at Home; the terminal item is active and carries no href.
// Pure and idempotent.
func DeriveBreadcrumbs(path string) []models.BreadcrumbItem {
	segments := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	trail := make([]models.BreadcrumbItem, 0, len(segments)+1)
	trail = append(trail, models.BreadcrumbItem{Label: "Home", Href: "/", IsActive: len(segments) == 0})

	currentPath := ""
	for i, segment := range segments {
		currentPath += "/" + segment
		isLast := i == len(segments)-1

		item := models.BreadcrumbItem{
			Label:    labelFor(segment),
			IsActive: isLast,
		}
		if !isLast {
			item.Href = currentPath
		}
		trail = append(trail, item)
	}
	return trail
}

func labelFor(segment string) string {
	if label, ok := routeLabels[segment]; ok {
		return label
	}
	r, size := utf8.DecodeRuneInString(segment)
	if r == utf8.RuneError && size <= 1 {
		return segment
	}
	return string(unicode.ToUpper(r)) + segment[size:]
}
