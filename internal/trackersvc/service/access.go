package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is the store sentinel so errors.Is matches across layers.
	ErrNotFound = store.ErrNotFound
)

// InputError is a validation failure with a message fit for the client.
// errors.Is(err, ErrInvalidInput) holds for it.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error {
	return &InputError{Msg: msg}
}

// Access guards every game-scoped operation.
type Access struct {
	games store.GameStore
}

func NewAccess(games store.GameStore) *Access {
	return &Access{games: games}
}

// AuthorizeGame returns the game when userID owns it. A missing game and a
// game owned by someone else both yield ErrNotFound.
func (a *Access) AuthorizeGame(ctx context.Context, gameID int64, userID string) (*models.Game, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	game, err := a.games.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("authorize game %d: %w", gameID, err)
	}
	if game.UserID != userID {
		return nil, ErrNotFound
	}
	return game, nil
}
