package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
)

// UpsertAndApply runs insert-if-absent and the count update in a single
// transaction. The store holds one connection, so concurrent callers are
// serialized by database/sql.
func (s *Store) UpsertAndApply(ctx context.Context, key models.TrackerKey, value int) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	seat := nullSeat(key.PlayerSeat)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO trackers (game_id, tracker, count, type, player_seat)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT DO NOTHING
	`, key.GameID, key.Tracker, string(key.Kind), seat); err != nil {
		return mapWriteError("insert tracker", err)
	}

	update := `UPDATE trackers SET count = count + ?`
	if key.Kind == models.KindNumber {
		update = `UPDATE trackers SET count = ?`
	}
	if _, err := tx.ExecContext(ctx, update+`
		WHERE game_id = ? AND tracker = ? AND type = ? AND player_seat IS ?
	`, value, key.GameID, key.Tracker, string(key.Kind), seat); err != nil {
		return fmt.Errorf("apply tracker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) ApplyByID(ctx context.Context, gameID, trackerID int64, action models.Action, value int) error {
	var err error
	switch action {
	case models.ActionDecrement:
		_, err = s.sqlDB.ExecContext(ctx, `
			UPDATE trackers
			SET count = CASE WHEN count > 0 THEN count - 1 ELSE 0 END
			WHERE id = ? AND game_id = ?
		`, trackerID, gameID)
	case models.ActionSetValue:
		_, err = s.sqlDB.ExecContext(ctx,
			`UPDATE trackers SET count = ? WHERE id = ? AND game_id = ?`, value, trackerID, gameID)
	default:
		_, err = s.sqlDB.ExecContext(ctx,
			`UPDATE trackers SET count = count + 1 WHERE id = ? AND game_id = ?`, trackerID, gameID)
	}
	if err != nil {
		return fmt.Errorf("apply %s: %w", action, err)
	}
	return nil
}

func (s *Store) DeleteTracker(ctx context.Context, gameID, trackerID int64) error {
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM trackers WHERE id = ? AND game_id = ?`, trackerID, gameID); err != nil {
		return fmt.Errorf("delete tracker: %w", err)
	}
	return nil
}

func (s *Store) ListTrackers(ctx context.Context, gameID int64) ([]models.Tracker, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT t.id, t.game_id, t.tracker, t.count, t.type, t.player_seat, o.name
		FROM trackers t
		LEFT JOIN players p ON p.game_id = t.game_id AND p.seat = t.player_seat
		LEFT JOIN opponents o ON o.id = p.opponent_id
		WHERE t.game_id = ?
		ORDER BY t.tracker, t.id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}
	defer rows.Close()

	trackers := []models.Tracker{}
	for rows.Next() {
		var (
			t    models.Tracker
			kind string
			seat sql.NullInt64
			name sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.GameID, &t.Tracker, &t.Count, &kind, &seat, &name); err != nil {
			return nil, fmt.Errorf("scan tracker: %w", err)
		}
		t.Kind = models.Kind(kind)
		t.PlayerSeat = seatPtr(seat)
		t.PlayerName = namePtr(name)
		trackers = append(trackers, t)
	}
	return trackers, rows.Err()
}

func (s *Store) ListTrackerFacts(ctx context.Context, userID string) ([]models.TrackerFact, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT t.game_id, t.tracker, t.type, t.count, o.name
		FROM trackers t
		JOIN games g ON g.id = t.game_id
		LEFT JOIN players p ON p.game_id = t.game_id AND p.seat = t.player_seat
		LEFT JOIN opponents o ON o.id = p.opponent_id
		WHERE g.user_id = ?
		ORDER BY t.tracker, t.type, t.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracker facts: %w", err)
	}
	defer rows.Close()

	facts := []models.TrackerFact{}
	for rows.Next() {
		var (
			f    models.TrackerFact
			kind string
			name sql.NullString
		)
		if err := rows.Scan(&f.GameID, &f.Tracker, &kind, &f.Count, &name); err != nil {
			return nil, fmt.Errorf("scan tracker fact: %w", err)
		}
		f.Kind = models.Kind(kind)
		f.PlayerName = namePtr(name)
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

func nullSeat(seat *int) sql.NullInt64 {
	if seat == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*seat), Valid: true}
}

func seatPtr(seat sql.NullInt64) *int {
	if !seat.Valid {
		return nil
	}
	v := int(seat.Int64)
	return &v
}

func namePtr(name sql.NullString) *string {
	if !name.Valid {
		return nil
	}
	v := name.String
	return &v
}
