package models

type Opponent struct {
	ID     int64  `json:"id"`   // Primary key
	Name   string `json:"name"` // Unique per owner
	UserID string `json:"-"`    // Owner (identity provider subject)
}

type OpponentRequest struct {
	Name string `json:"name"`
}
