// Package postgres implements the tracker service stores on a pgx pool.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres backend. It owns the pool and closes it on Close.
type Store struct {
	*OpponentStore
	*DeckStore
	*ManagedTrackerStore
	*GameStore
	*TrackerStore

	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{
		OpponentStore:       NewOpponentStore(pool),
		DeckStore:           NewDeckStore(pool),
		ManagedTrackerStore: NewManagedTrackerStore(pool),
		GameStore:           NewGameStore(pool),
		TrackerStore:        NewTrackerStore(pool),
		pool:                pool,
	}
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
