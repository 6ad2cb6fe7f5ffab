package models

// Player is a seat in a game.
type Player struct {
	ID         int64 `json:"id"`          // Primary key
	GameID     int64 `json:"game_id"`     // FK to games(id)
	Seat       int   `json:"seat"`        // Unique within the game
	OpponentID int64 `json:"opponent_id"` // FK to opponents(id)
	DeckID     int64 `json:"deck_id"`     // FK to decks(id)
}

// Seat is a validated seat assignment used when creating a game.
type Seat struct {
	Seat       int
	OpponentID int64
	DeckID     int64
}

// SeatView is a seat joined with its opponent and deck names.
type SeatView struct {
	ID       int64  `json:"id"`
	Seat     int    `json:"seat"`
	Opponent string `json:"opponent"`
	Deck     string `json:"deck"`
}
