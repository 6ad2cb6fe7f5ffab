package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	log "github.com/sirupsen/logrus"
)

type GameService struct {
	gameStore     store.GameStore
	opponentStore store.OpponentStore
	deckStore     store.DeckStore
}

func NewGameService(gameStore store.GameStore, opponentStore store.OpponentStore, deckStore store.DeckStore) *GameService {
	return &GameService{gameStore: gameStore, opponentStore: opponentStore, deckStore: deckStore}
}

func (s *GameService) ListGames(ctx context.Context, userID string) ([]models.GameSummary, error) {
	return s.gameStore.ListGames(ctx, userID)
}

// CreateGame seats every player of the request. The first seat becomes the
// game's listed opponent and deck. Every seated opponent must belong to
// userID, and every deck to that opponent.
func (s *GameService) CreateGame(ctx context.Context, userID string, req models.CreateGameRequest) (*models.CreateGameResponse, error) {
	if len(req.Players) == 0 {
		return nil, invalid("players array required")
	}

	seats := make([]models.Seat, 0, len(req.Players))
	for _, p := range req.Players {
		seat, err := models.ParseInt(p.Seat)
		if err != nil {
			return nil, invalid("invalid players data")
		}
		opponentID, err := models.ParseID(p.OpponentID)
		if err != nil || opponentID == 0 {
			return nil, invalid("invalid players data")
		}
		deckID, err := models.ParseID(p.DeckID)
		if err != nil || deckID == 0 {
			return nil, invalid("invalid players data")
		}
		seats = append(seats, models.Seat{Seat: seat, OpponentID: opponentID, DeckID: deckID})
	}

	for _, seat := range seats {
		ok, err := s.seatOwned(ctx, userID, seat)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("unknown opponent or deck")
		}
	}

	gameID, err := s.gameStore.CreateGame(ctx, userID, seats)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidReference):
			return nil, invalid("unknown opponent or deck")
		case errors.Is(err, store.ErrConflict):
			return nil, invalid("duplicate seat")
		}
		return nil, fmt.Errorf("create game: %w", err)
	}

	log.WithFields(log.Fields{"game_id": gameID, "seats": len(seats)}).Info("game created")
	return &models.CreateGameResponse{ID: gameID}, nil
}

func (s *GameService) seatOwned(ctx context.Context, userID string, seat models.Seat) (bool, error) {
	owner, err := s.opponentStore.GetOpponentOwner(ctx, seat.OpponentID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if owner != userID {
		return false, nil
	}

	decks, err := s.deckStore.ListDecks(ctx, userID, seat.OpponentID)
	if err != nil {
		return false, err
	}
	for _, d := range decks {
		if d.ID == seat.DeckID {
			return true, nil
		}
	}
	return false, nil
}
