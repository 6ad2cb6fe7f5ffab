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

type ManagedTrackerStore struct {
	db *pgxpool.Pool
}

func NewManagedTrackerStore(db *pgxpool.Pool) *ManagedTrackerStore {
	return &ManagedTrackerStore{db: db}
}

func (s *ManagedTrackerStore) CreateManagedTracker(ctx context.Context, userID, tracker string, kind models.Kind) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO managed_trackers (tracker, type, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, tracker, string(kind), userID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrConflict
		}
		return 0, fmt.Errorf("failed to create managed tracker: %w", err)
	}
	return id, nil
}

func (s *ManagedTrackerStore) ListManagedTrackers(ctx context.Context, userID string) ([]models.ManagedTracker, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, tracker, type, user_id
		FROM managed_trackers
		WHERE user_id = $1
		ORDER BY tracker
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed trackers: %w", err)
	}
	defer rows.Close()

	trackers := []models.ManagedTracker{}
	for rows.Next() {
		var (
			mt   models.ManagedTracker
			kind string
		)
		if err := rows.Scan(&mt.ID, &mt.Tracker, &kind, &mt.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan managed tracker: %w", err)
		}
		mt.Kind = models.Kind(kind)
		trackers = append(trackers, mt)
	}
	return trackers, rows.Err()
}

func (s *ManagedTrackerStore) GetManagedTracker(ctx context.Context, userID string, id int64) (*models.ManagedTracker, error) {
	var (
		mt   models.ManagedTracker
		kind string
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, tracker, type, user_id
		FROM managed_trackers
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&mt.ID, &mt.Tracker, &kind, &mt.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get managed tracker: %w", err)
	}
	mt.Kind = models.Kind(kind)
	return &mt, nil
}

// UpdateManagedTracker changes only the fields that are non-nil.
func (s *ManagedTrackerStore) UpdateManagedTracker(ctx context.Context, userID string, id int64, tracker *string, kind *models.Kind) error {
	var kindArg *string
	if kind != nil {
		k := string(*kind)
		kindArg = &k
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE managed_trackers
		SET tracker = COALESCE($1, tracker),
		    type = COALESCE($2, type)
		WHERE id = $3 AND user_id = $4
	`, tracker, kindArg, id, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to update managed tracker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ManagedTrackerStore) DeleteManagedTracker(ctx context.Context, userID string, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM managed_trackers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete managed tracker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
