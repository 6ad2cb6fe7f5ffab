package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

// CreateGame stores the game row, mirroring the first seat, and one players
// row per seat. Nothing is written unless every seat inserts.
func (s *GameStore) CreateGame(ctx context.Context, userID string, seats []models.Seat) (int64, error) {
	if len(seats) == 0 {
		return 0, fmt.Errorf("create game: no seats")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var gameID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO games (opponent_id, deck_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, seats[0].OpponentID, seats[0].DeckID, userID).Scan(&gameID)
	if err != nil {
		return 0, mapWriteError("insert game", err)
	}

	for _, seat := range seats {
		_, err := tx.Exec(ctx, `
			INSERT INTO players (game_id, seat, opponent_id, deck_id)
			VALUES ($1, $2, $3, $4)
		`, gameID, seat.Seat, seat.OpponentID, seat.DeckID)
		if err != nil {
			return 0, mapWriteError("insert player", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return gameID, nil
}

func (s *GameStore) ListGames(ctx context.Context, userID string) ([]models.GameSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id, g.created_at, o.name, d.name
		FROM games g
		JOIN opponents o ON o.id = g.opponent_id
		JOIN decks d ON d.id = g.deck_id
		WHERE g.user_id = $1
		ORDER BY g.created_at DESC, g.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []models.GameSummary{}
	for rows.Next() {
		var g models.GameSummary
		if err := rows.Scan(&g.ID, &g.CreatedAt, &g.Opponent, &g.Deck); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	var g models.Game
	err := s.db.QueryRow(ctx, `
		SELECT id, opponent_id, deck_id, user_id, created_at
		FROM games
		WHERE id = $1
	`, gameID).Scan(&g.ID, &g.OpponentID, &g.DeckID, &g.UserID, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &g, nil
}

func (s *GameStore) ListSeats(ctx context.Context, gameID int64) ([]models.SeatView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.seat, o.name, d.name
		FROM players p
		JOIN opponents o ON o.id = p.opponent_id
		JOIN decks d ON d.id = p.deck_id
		WHERE p.game_id = $1
		ORDER BY p.seat
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	defer rows.Close()

	seats := []models.SeatView{}
	for rows.Next() {
		var sv models.SeatView
		if err := rows.Scan(&sv.ID, &sv.Seat, &sv.Opponent, &sv.Deck); err != nil {
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, sv)
	}
	return seats, rows.Err()
}

func mapWriteError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return store.ErrInvalidReference
	case isUniqueViolation(err):
		return store.ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
