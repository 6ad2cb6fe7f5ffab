package models

// ManagedTracker is a per-user tracker template offered as a suggestion.
type ManagedTracker struct {
	ID      int64  `json:"id"`
	Tracker string `json:"tracker"` // Unique per owner
	Kind    Kind   `json:"type"`
	UserID  string `json:"-"`
}

type ManagedTrackerRequest struct {
	Tracker *string `json:"tracker"`
	Type    *string `json:"type"`
}
