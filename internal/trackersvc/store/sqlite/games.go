package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
)

func (s *Store) CreateGame(ctx context.Context, userID string, seats []models.Seat) (int64, error) {
	if len(seats) == 0 {
		return 0, fmt.Errorf("create game: no seats")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (opponent_id, deck_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		seats[0].OpponentID, seats[0].DeckID, userID, toMillis(s.now()))
	if err != nil {
		return 0, mapWriteError("insert game", err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("game id: %w", err)
	}

	for _, seat := range seats {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (game_id, seat, opponent_id, deck_id) VALUES (?, ?, ?, ?)`,
			gameID, seat.Seat, seat.OpponentID, seat.DeckID); err != nil {
			return 0, mapWriteError("insert player", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return gameID, nil
}

func (s *Store) ListGames(ctx context.Context, userID string) ([]models.GameSummary, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT g.id, g.created_at, o.name, d.name
		FROM games g
		JOIN opponents o ON o.id = g.opponent_id
		JOIN decks d ON d.id = g.deck_id
		WHERE g.user_id = ?
		ORDER BY g.created_at DESC, g.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []models.GameSummary{}
	for rows.Next() {
		var (
			g         models.GameSummary
			createdAt int64
		)
		if err := rows.Scan(&g.ID, &createdAt, &g.Opponent, &g.Deck); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.CreatedAt = fromMillis(createdAt)
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *Store) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	var (
		g         models.Game
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, opponent_id, deck_id, user_id, created_at
		FROM games
		WHERE id = ?
	`, gameID).Scan(&g.ID, &g.OpponentID, &g.DeckID, &g.UserID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	g.CreatedAt = fromMillis(createdAt)
	return &g, nil
}

func (s *Store) ListSeats(ctx context.Context, gameID int64) ([]models.SeatView, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT p.id, p.seat, o.name, d.name
		FROM players p
		JOIN opponents o ON o.id = p.opponent_id
		JOIN decks d ON d.id = p.deck_id
		WHERE p.game_id = ?
		ORDER BY p.seat
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()

	seats := []models.SeatView{}
	for rows.Next() {
		var sv models.SeatView
		if err := rows.Scan(&sv.ID, &sv.Seat, &sv.Opponent, &sv.Deck); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, sv)
	}
	return seats, rows.Err()
}
