package postgres

import (
	"context"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeckStore struct {
	db *pgxpool.Pool
}

func NewDeckStore(db *pgxpool.Pool) *DeckStore {
	return &DeckStore{db: db}
}

func (s *DeckStore) CreateDeck(ctx context.Context, userID string, opponentID int64, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO decks (opponent_id, name, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, opponentID, name, userID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, store.ErrInvalidReference
		}
		return 0, fmt.Errorf("failed to create deck: %w", err)
	}
	return id, nil
}

func (s *DeckStore) ListDecks(ctx context.Context, userID string, opponentID int64) ([]models.Deck, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, opponent_id, name, user_id
		FROM decks
		WHERE opponent_id = $1 AND user_id = $2
		ORDER BY name
	`, opponentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.OpponentID, &d.Name, &d.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}
