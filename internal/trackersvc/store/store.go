// Package store defines the persistence contracts of the tracker service.
// Two implementations exist: store/postgres (pgx pool) and store/sqlite
// (database/sql on modernc.org/sqlite).
package store

import (
	"context"
	"errors"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("invalid reference")
)

type OpponentStore interface {
	CreateOpponent(ctx context.Context, userID, name string) (int64, error)
	ListOpponents(ctx context.Context, userID string) ([]models.Opponent, error)
	GetOpponentOwner(ctx context.Context, opponentID int64) (string, error)
}

type DeckStore interface {
	CreateDeck(ctx context.Context, userID string, opponentID int64, name string) (int64, error)
	ListDecks(ctx context.Context, userID string, opponentID int64) ([]models.Deck, error)
}

type ManagedTrackerStore interface {
	CreateManagedTracker(ctx context.Context, userID, tracker string, kind models.Kind) (int64, error)
	ListManagedTrackers(ctx context.Context, userID string) ([]models.ManagedTracker, error)
	GetManagedTracker(ctx context.Context, userID string, id int64) (*models.ManagedTracker, error)
	UpdateManagedTracker(ctx context.Context, userID string, id int64, tracker *string, kind *models.Kind) error
	DeleteManagedTracker(ctx context.Context, userID string, id int64) error
}

type GameStore interface {
	// CreateGame inserts the game and all of its seats in one transaction.
	CreateGame(ctx context.Context, userID string, seats []models.Seat) (int64, error)
	ListGames(ctx context.Context, userID string) ([]models.GameSummary, error)
	// GetGameByID returns ErrNotFound when the game does not exist.
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	ListSeats(ctx context.Context, gameID int64) ([]models.SeatView, error)
}

type TrackerStore interface {
	// UpsertAndApply creates the row identified by key with count 0 if it is
	// absent, then sets (number) or increments (player, yesno) its count by
	// value. Both steps run in one transaction.
	UpsertAndApply(ctx context.Context, key models.TrackerKey, value int) error
	// ApplyByID mutates one row of gameID. A missing row is not an error.
	ApplyByID(ctx context.Context, gameID, trackerID int64, action models.Action, value int) error
	DeleteTracker(ctx context.Context, gameID, trackerID int64) error
	ListTrackers(ctx context.Context, gameID int64) ([]models.Tracker, error)
	// ListTrackerFacts returns every tracker of every game owned by userID.
	ListTrackerFacts(ctx context.Context, userID string) ([]models.TrackerFact, error)
}

// Store bundles all persistence contracts for one backend.
type Store interface {
	OpponentStore
	DeckStore
	ManagedTrackerStore
	GameStore
	TrackerStore
	Close() error
}
