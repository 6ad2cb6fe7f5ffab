package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
)

func (s *Store) CreateOpponent(ctx context.Context, userID, name string) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO opponents (name, user_id) VALUES (?, ?)`, name, userID)
	if err != nil {
		return 0, mapWriteError("create opponent", err)
	}
	return res.LastInsertId()
}

func (s *Store) ListOpponents(ctx context.Context, userID string) ([]models.Opponent, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, user_id FROM opponents WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list opponents: %w", err)
	}
	defer rows.Close()

	opponents := []models.Opponent{}
	for rows.Next() {
		var o models.Opponent
		if err := rows.Scan(&o.ID, &o.Name, &o.UserID); err != nil {
			return nil, fmt.Errorf("scan opponent: %w", err)
		}
		opponents = append(opponents, o)
	}
	return opponents, rows.Err()
}

func (s *Store) GetOpponentOwner(ctx context.Context, opponentID int64) (string, error) {
	var owner string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id FROM opponents WHERE id = ?`, opponentID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get opponent owner: %w", err)
	}
	return owner, nil
}

func (s *Store) CreateDeck(ctx context.Context, userID string, opponentID int64, name string) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO decks (opponent_id, name, user_id) VALUES (?, ?, ?)`, opponentID, name, userID)
	if err != nil {
		return 0, mapWriteError("create deck", err)
	}
	return res.LastInsertId()
}

func (s *Store) ListDecks(ctx context.Context, userID string, opponentID int64) ([]models.Deck, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, opponent_id, name, user_id
		FROM decks
		WHERE opponent_id = ? AND user_id = ?
		ORDER BY name
	`, opponentID, userID)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.OpponentID, &d.Name, &d.UserID); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (s *Store) CreateManagedTracker(ctx context.Context, userID, tracker string, kind models.Kind) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO managed_trackers (tracker, type, user_id) VALUES (?, ?, ?)`,
		tracker, string(kind), userID)
	if err != nil {
		return 0, mapWriteError("create managed tracker", err)
	}
	return res.LastInsertId()
}

func (s *Store) ListManagedTrackers(ctx context.Context, userID string) ([]models.ManagedTracker, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, tracker, type, user_id
		FROM managed_trackers
		WHERE user_id = ?
		ORDER BY tracker
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list managed trackers: %w", err)
	}
	defer rows.Close()

	trackers := []models.ManagedTracker{}
	for rows.Next() {
		mt, err := scanManagedTracker(rows)
		if err != nil {
			return nil, err
		}
		trackers = append(trackers, *mt)
	}
	return trackers, rows.Err()
}

func (s *Store) GetManagedTracker(ctx context.Context, userID string, id int64) (*models.ManagedTracker, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, tracker, type, user_id
		FROM managed_trackers
		WHERE id = ? AND user_id = ?
	`, id, userID)
	mt, err := scanManagedTracker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return mt, err
}

func (s *Store) UpdateManagedTracker(ctx context.Context, userID string, id int64, tracker *string, kind *models.Kind) error {
	var kindArg sql.NullString
	if kind != nil {
		kindArg = sql.NullString{String: string(*kind), Valid: true}
	}
	var trackerArg sql.NullString
	if tracker != nil {
		trackerArg = sql.NullString{String: *tracker, Valid: true}
	}

	res, err := s.sqlDB.ExecContext(ctx, `
		UPDATE managed_trackers
		SET tracker = COALESCE(?, tracker),
		    type = COALESCE(?, type)
		WHERE id = ? AND user_id = ?
	`, trackerArg, kindArg, id, userID)
	if err != nil {
		return mapWriteError("update managed tracker", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteManagedTracker(ctx context.Context, userID string, id int64) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM managed_trackers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete managed tracker: %w", err)
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanManagedTracker(row rowScanner) (*models.ManagedTracker, error) {
	var (
		mt   models.ManagedTracker
		kind string
	)
	if err := row.Scan(&mt.ID, &mt.Tracker, &kind, &mt.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan managed tracker: %w", err)
	}
	mt.Kind = models.Kind(kind)
	return &mt, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
