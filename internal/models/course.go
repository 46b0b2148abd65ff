package models

import "strings"

// Defaults applied when the upstream catalog omits a field, so downstream
// filtering and display code never branch on "missing".
const (
	DefaultLevel          = "Beginner"
	DefaultCategory       = "general"
	DefaultTargetAudience = "General"
)

// Course represents one enrollable offering from the institute catalog.
type Course struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	Level          string   `json:"level"`
	TargetAudience []string `json:"targetAudience"`
	ImageURL       string   `json:"imageUrl"`
	Fees           int      `json:"fees"`
	Category       string   `json:"category"`
	IsNew          bool     `json:"isNew"`
	TimeSlots      []string `json:"timeSlots"`
	WhatsappLink   string   `json:"whatsappLink,omitempty"`
}

// ApplyDefaults fills absent fields per the catalog defaulting rules.
func (c *Course) ApplyDefaults(placeholderImageURL string) {
	if strings.TrimSpace(c.Level) == "" {
		c.Level = DefaultLevel
	}
	if len(c.TargetAudience) == 0 {
		c.TargetAudience = []string{DefaultTargetAudience}
	}
	if c.Fees < 0 {
		c.Fees = 0
	}
	if strings.TrimSpace(c.Category) == "" {
		c.Category = DefaultCategory
	}
	if strings.TrimSpace(c.ImageURL) == "" {
		c.ImageURL = placeholderImageURL
	}
}

// UserType selects between the two application workflows.
type UserType string

const (
	UserTypeIndividual  UserType = "individual"
	UserTypeInstitution UserType = "institution"
)

// Valid reports whether the user type is one of the two known modes.
func (u UserType) Valid() bool {
	return u == UserTypeIndividual || u == UserTypeInstitution
}

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// FilterState captures the active catalog filter.
type FilterState struct {
	ActiveCategory string   `json:"activeCategory"`
	SearchQuery    string   `json:"searchQuery"`
	UserType       UserType `json:"userType"`
}

// ReferredByOption is one entry of the upstream referral source list.
type ReferredByOption struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CatalogState tracks the load lifecycle of the catalog snapshot.
type CatalogState string

const (
	CatalogIdle    CatalogState = "idle"
	CatalogLoading CatalogState = "loading"
	CatalogLoaded  CatalogState = "loaded"
	CatalogFailed  CatalogState = "failed"
)
