package models

// Selection is the externally visible state of a session's course picks.
// CourseIDs preserves insertion order for a stable review-list display.
type Selection struct {
	UserType  UserType `json:"userType"`
	CourseIDs []string `json:"courseIds"`
}

// NavigationTarget is the apply-view redirect produced by an individual-mode pick.
type NavigationTarget struct {
	CourseID string `json:"courseId"`
	Path     string `json:"path"`
}
