package postgres

import (
	"context"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TrackerStore struct {
	db *pgxpool.Pool
}

func NewTrackerStore(db *pgxpool.Pool) *TrackerStore {
	return &TrackerStore{db: db}
}

// UpsertAndApply relies on the partial unique indexes on trackers: a
// concurrent insert of the same key blocks on the index and then falls
// through to the UPDATE, which re-reads the committed row.
func (s *TrackerStore) UpsertAndApply(ctx context.Context, key models.TrackerKey, value int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO trackers (game_id, tracker, count, type, player_seat)
		VALUES ($1, $2, 0, $3, $4)
		ON CONFLICT DO NOTHING
	`, key.GameID, key.Tracker, string(key.Kind), key.PlayerSeat)
	if err != nil {
		return mapWriteError("insert tracker", err)
	}

	update := `UPDATE trackers SET count = count + $1`
	if key.Kind == models.KindNumber {
		update = `UPDATE trackers SET count = $1`
	}
	_, err = tx.Exec(ctx, update+`
		WHERE game_id = $2 AND tracker = $3 AND type = $4
		  AND player_seat IS NOT DISTINCT FROM $5
	`, value, key.GameID, key.Tracker, string(key.Kind), key.PlayerSeat)
	if err != nil {
		return fmt.Errorf("apply tracker: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *TrackerStore) ApplyByID(ctx context.Context, gameID, trackerID int64, action models.Action, value int) error {
	var err error
	switch action {
	case models.ActionDecrement:
		_, err = s.db.Exec(ctx, `
			UPDATE trackers
			SET count = CASE WHEN count > 0 THEN count - 1 ELSE 0 END
			WHERE id = $1 AND game_id = $2
		`, trackerID, gameID)
	case models.ActionSetValue:
		_, err = s.db.Exec(ctx, `
			UPDATE trackers SET count = $1 WHERE id = $2 AND game_id = $3
		`, value, trackerID, gameID)
	default:
		_, err = s.db.Exec(ctx, `
			UPDATE trackers SET count = count + 1 WHERE id = $1 AND game_id = $2
		`, trackerID, gameID)
	}
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", action, err)
	}
	return nil
}

func (s *TrackerStore) DeleteTracker(ctx context.Context, gameID, trackerID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM trackers WHERE id = $1 AND game_id = $2`, trackerID, gameID); err != nil {
		return fmt.Errorf("failed to delete tracker: %w", err)
	}
	return nil
}

func (s *TrackerStore) ListTrackers(ctx context.Context, gameID int64) ([]models.Tracker, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.id, t.game_id, t.tracker, t.count, t.type, t.player_seat, o.name
		FROM trackers t
		LEFT JOIN players p ON p.game_id = t.game_id AND p.seat = t.player_seat
		LEFT JOIN opponents o ON o.id = p.opponent_id
		WHERE t.game_id = $1
		ORDER BY t.tracker, t.id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trackers: %w", err)
	}
	defer rows.Close()

	trackers := []models.Tracker{}
	for rows.Next() {
		var (
			t    models.Tracker
			kind string
		)
		if err := rows.Scan(&t.ID, &t.GameID, &t.Tracker, &t.Count, &kind, &t.PlayerSeat, &t.PlayerName); err != nil {
			return nil, fmt.Errorf("failed to scan tracker: %w", err)
		}
		t.Kind = models.Kind(kind)
		trackers = append(trackers, t)
	}
	return trackers, rows.Err()
}

func (s *TrackerStore) ListTrackerFacts(ctx context.Context, userID string) ([]models.TrackerFact, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.game_id, t.tracker, t.type, t.count, o.name
		FROM trackers t
		JOIN games g ON g.id = t.game_id
		LEFT JOIN players p ON p.game_id = t.game_id AND p.seat = t.player_seat
		LEFT JOIN opponents o ON o.id = p.opponent_id
		WHERE g.user_id = $1
		ORDER BY t.tracker, t.type, t.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracker facts: %w", err)
	}
	defer rows.Close()

	facts := []models.TrackerFact{}
	for rows.Next() {
		var (
			f    models.TrackerFact
			kind string
		)
		if err := rows.Scan(&f.GameID, &f.Tracker, &kind, &f.Count, &f.PlayerName); err != nil {
			return nil, fmt.Errorf("failed to scan tracker fact: %w", err)
		}
		f.Kind = models.Kind(kind)
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

var _ store.Store = (*Store)(nil)
