package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/avvvet/tracker-services/internal/trackersvc/db"
	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	"github.com/avvvet/tracker-services/internal/trackersvc/store/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openStore connects to TEST_POSTGRES_URL. Each test uses a fresh user id
// so runs against a shared database do not see each other's rows.
func openStore(t *testing.T) (*postgres.Store, string) {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.CreateSchema(ctx, pool))

	st := postgres.New(pool)
	t.Cleanup(func() { _ = st.Close() })
	return st, "test-" + uuid.NewString()
}

func newGame(t *testing.T, st *postgres.Store, userID string) int64 {
	t.Helper()
	ctx := context.Background()

	opponentID, err := st.CreateOpponent(ctx, userID, "Alice")
	require.NoError(t, err)
	deckID, err := st.CreateDeck(ctx, userID, opponentID, "Elves")
	require.NoError(t, err)
	gameID, err := st.CreateGame(ctx, userID, []models.Seat{{Seat: 1, OpponentID: opponentID, DeckID: deckID}})
	require.NoError(t, err)
	return gameID
}

func TestUpsertAndApplyConcurrent(t *testing.T) {
	st, userID := openStore(t)
	ctx := context.Background()
	gameID := newGame(t, st, userID)

	seat := 1
	key := models.TrackerKey{GameID: gameID, Tracker: "Draws", Kind: models.KindPlayer, PlayerSeat: &seat}

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- st.UpsertAndApply(ctx, key, 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	trackers, err := st.ListTrackers(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, trackers, 1)
	assert.Equal(t, workers, trackers[0].Count)
	require.NotNil(t, trackers[0].PlayerName)
	assert.Equal(t, "Alice", *trackers[0].PlayerName)
}

func TestUpsertAndApplyNullSeat(t *testing.T) {
	st, userID := openStore(t)
	ctx := context.Background()
	gameID := newGame(t, st, userID)

	key := models.TrackerKey{GameID: gameID, Tracker: "Turns", Kind: models.KindNumber}
	require.NoError(t, st.UpsertAndApply(ctx, key, 3))
	require.NoError(t, st.UpsertAndApply(ctx, key, 8))

	trackers, err := st.ListTrackers(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, trackers, 1)
	assert.Equal(t, 8, trackers[0].Count)
	assert.Nil(t, trackers[0].PlayerSeat)

	require.NoError(t, st.ApplyByID(ctx, gameID, trackers[0].ID, models.ActionDecrement, 0))
	facts, err := st.ListTrackerFacts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, 7, facts[0].Count)
}

func TestUpsertAndApplyLargeValues(t *testing.T) {
	st, userID := openStore(t)
	ctx := context.Background()
	gameID := newGame(t, st, userID)

	seat := 3000000000
	number := models.TrackerKey{GameID: gameID, Tracker: "Life", Kind: models.KindNumber}
	player := models.TrackerKey{GameID: gameID, Tracker: "Damage", Kind: models.KindPlayer, PlayerSeat: &seat}
	require.NoError(t, st.UpsertAndApply(ctx, number, 5000000000))
	require.NoError(t, st.UpsertAndApply(ctx, player, 1))

	trackers, err := st.ListTrackers(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, trackers, 2)
	assert.Equal(t, "Damage", trackers[0].Tracker)
	require.NotNil(t, trackers[0].PlayerSeat)
	assert.Equal(t, seat, *trackers[0].PlayerSeat)
	assert.Equal(t, 5000000000, trackers[1].Count)

	require.NoError(t, st.ApplyByID(ctx, gameID, trackers[1].ID, models.ActionIncrement, 0))
	trackers, err = st.ListTrackers(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, 5000000001, trackers[1].Count)
}

func TestCatalogErrors(t *testing.T) {
	st, userID := openStore(t)
	ctx := context.Background()

	_, err := st.CreateOpponent(ctx, userID, "Bob")
	require.NoError(t, err)
	_, err = st.CreateOpponent(ctx, userID, "Bob")
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = st.GetGameByID(ctx, -1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.CreateDeck(ctx, userID, -1, "Nope")
	assert.ErrorIs(t, err, store.ErrInvalidReference)
}
