package models

import "time"

// Game is one recorded session. OpponentID and DeckID mirror the first seat
// only; the full seating lives in Player.
type Game struct {
	ID         int64     `json:"id"`          // Primary key
	OpponentID int64     `json:"opponent_id"` // FK to opponents(id), first seat
	DeckID     int64     `json:"deck_id"`     // FK to decks(id), first seat
	UserID     string    `json:"-"`           // Owner
	CreatedAt  time.Time `json:"created_at"`
}

// GameSummary is the list-view row of a game.
type GameSummary struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	Opponent  string    `json:"opponent"`
	Deck      string    `json:"deck"`
}

type SeatRequest struct {
	Seat       any `json:"seat"`
	OpponentID any `json:"opponent_id"`
	DeckID     any `json:"deck_id"`
}

type CreateGameRequest struct {
	Players []SeatRequest `json:"players"`
}

type CreateGameResponse struct {
	ID int64 `json:"id"`
}
