package models

type Deck struct {
	ID         int64  `json:"id"`   // Primary key
	OpponentID int64  `json:"-"`    // FK to opponents(id)
	Name       string `json:"name"` // Deck name
	UserID     string `json:"-"`    // Owner
}

type DeckRequest struct {
	Name string `json:"name"`
}
