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

type OpponentStore struct {
	db *pgxpool.Pool
}

func NewOpponentStore(db *pgxpool.Pool) *OpponentStore {
	return &OpponentStore{db: db}
}

// CreateOpponent returns store.ErrConflict when the user already has an
// opponent with this name.
func (s *OpponentStore) CreateOpponent(ctx context.Context, userID, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO opponents (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`, name, userID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrConflict
		}
		return 0, fmt.Errorf("failed to create opponent: %w", err)
	}
	return id, nil
}

func (s *OpponentStore) ListOpponents(ctx context.Context, userID string) ([]models.Opponent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, user_id
		FROM opponents
		WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opponents: %w", err)
	}
	defer rows.Close()

	opponents := []models.Opponent{}
	for rows.Next() {
		var o models.Opponent
		if err := rows.Scan(&o.ID, &o.Name, &o.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan opponent: %w", err)
		}
		opponents = append(opponents, o)
	}
	return opponents, rows.Err()
}

func (s *OpponentStore) GetOpponentOwner(ctx context.Context, opponentID int64) (string, error) {
	var owner string
	err := s.db.QueryRow(ctx, `SELECT user_id FROM opponents WHERE id = $1`, opponentID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to get opponent owner: %w", err)
	}
	return owner, nil
}
