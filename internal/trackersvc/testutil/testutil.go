// Package testutil holds fixtures shared by the tracker service tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store/sqlite"
)

// NewStore opens a fresh SQLite store in a temp dir and closes it when the
// test ends.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// Table is one opponent with one deck, both owned by the same user.
type Table struct {
	OpponentID int64
	DeckID     int64
}

// CreateOpponentWithDeck inserts an opponent and a deck for userID.
func CreateOpponentWithDeck(t *testing.T, st *sqlite.Store, userID, opponent, deck string) Table {
	t.Helper()

	ctx := context.Background()
	opponentID, err := st.CreateOpponent(ctx, userID, opponent)
	if err != nil {
		t.Fatalf("Failed to create opponent %q: %v", opponent, err)
	}
	deckID, err := st.CreateDeck(ctx, userID, opponentID, deck)
	if err != nil {
		t.Fatalf("Failed to create deck %q: %v", deck, err)
	}
	return Table{OpponentID: opponentID, DeckID: deckID}
}

// CreateGame seats tables in order starting at seat 1 and returns the game id.
func CreateGame(t *testing.T, st *sqlite.Store, userID string, tables ...Table) int64 {
	t.Helper()

	seats := make([]models.Seat, 0, len(tables))
	for i, tb := range tables {
		seats = append(seats, models.Seat{Seat: i + 1, OpponentID: tb.OpponentID, DeckID: tb.DeckID})
	}
	gameID, err := st.CreateGame(context.Background(), userID, seats)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	return gameID
}

func Seat(n int) *int {
	return &n
}

func Name(s string) *string {
	return &s
}
