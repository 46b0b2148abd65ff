package models

// BreadcrumbItem is one entry of a derived navigation trail. The terminal
// item carries IsActive=true and no Href; every other item links back.
type BreadcrumbItem struct {
	Label    string `json:"label"`
	Href     string `json:"href,omitempty"`
	IsActive bool   `json:"isActive"`
}
