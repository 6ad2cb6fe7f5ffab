package service

import (
	"context"
	"testing"

	"github.com/avvvet/tracker-services/internal/comm"
	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store/sqlite"
	"github.com/avvvet/tracker-services/internal/trackersvc/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type trackerFixture struct {
	st     *sqlite.Store
	svc    *TrackerService
	events *PublisherMock
	gameID int64
	userID string
}

// newTrackerFixture seats OpponentA/DeckX at 1 and OpponentB/DeckY at 2.
func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()
	st := testutil.NewStore(t)
	a := testutil.CreateOpponentWithDeck(t, st, "userY", "OpponentA", "DeckX")
	b := testutil.CreateOpponentWithDeck(t, st, "userY", "OpponentB", "DeckY")
	gameID := testutil.CreateGame(t, st, "userY", a, b)

	events := new(PublisherMock)
	events.On("PublishTrackerEvent", mock.Anything, mock.Anything).Return(nil)

	return &trackerFixture{
		st:     st,
		svc:    NewTrackerService(NewAccess(st), st, events),
		events: events,
		gameID: gameID,
		userID: "userY",
	}
}

func (f *trackerFixture) record(t *testing.T, req models.RecordTrackerRequest) []models.Tracker {
	t.Helper()
	trackers, err := f.svc.Record(context.Background(), f.gameID, f.userID, req)
	require.NoError(t, err)
	return trackers
}

func TestRecordPlayerAccumulates(t *testing.T) {
	f := newTrackerFixture(t)
	req := models.RecordTrackerRequest{Tracker: "damage", Type: "player", PlayerSeat: float64(1)}

	f.record(t, req)
	f.record(t, req)
	trackers := f.record(t, req)

	require.Len(t, trackers, 1)
	tr := trackers[0]
	assert.Equal(t, "damage", tr.Tracker)
	assert.Equal(t, models.KindPlayer, tr.Kind)
	require.NotNil(t, tr.PlayerSeat)
	assert.Equal(t, 1, *tr.PlayerSeat)
	assert.Equal(t, 3, tr.Count)
	require.NotNil(t, tr.PlayerName)
	assert.Equal(t, "OpponentA", *tr.PlayerName)
}

func TestRecordYesNoAccumulatesPastOne(t *testing.T) {
	f := newTrackerFixture(t)
	req := models.RecordTrackerRequest{Tracker: "went-first", Type: "yesno", PlayerSeat: float64(2), Value: float64(7)}

	trackers := f.record(t, req)
	require.Len(t, trackers, 1)
	assert.Equal(t, 1, trackers[0].Count, "supplied value is ignored")
	assert.Nil(t, trackers[0].PlayerSeat, "seat is dropped for non-player kinds")

	trackers = f.record(t, req)
	require.Len(t, trackers, 1)
	assert.Equal(t, 2, trackers[0].Count)
}

func TestRecordNumberOverwrites(t *testing.T) {
	f := newTrackerFixture(t)

	f.record(t, models.RecordTrackerRequest{Tracker: "life", Type: "number", Value: float64(40)})
	trackers := f.record(t, models.RecordTrackerRequest{Tracker: "life", Type: "number", Value: "35"})

	require.Len(t, trackers, 1)
	assert.Equal(t, 35, trackers[0].Count)
}

func TestRecordUnknownKindIsPlayer(t *testing.T) {
	f := newTrackerFixture(t)
	trackers := f.record(t, models.RecordTrackerRequest{Tracker: " Removal ", Type: "bogus", PlayerSeat: "2"})

	require.Len(t, trackers, 1)
	assert.Equal(t, models.KindPlayer, trackers[0].Kind)
	assert.Equal(t, "Removal", trackers[0].Tracker)
	require.NotNil(t, trackers[0].PlayerName)
	assert.Equal(t, "OpponentB", *trackers[0].PlayerName)
}

func TestRecordUnmatchedSeatHasNoName(t *testing.T) {
	f := newTrackerFixture(t)
	trackers := f.record(t, models.RecordTrackerRequest{Tracker: "damage", Type: "player", PlayerSeat: float64(5)})

	require.Len(t, trackers, 1)
	assert.Nil(t, trackers[0].PlayerName)
}

func TestRecordInvalidInputWritesNothing(t *testing.T) {
	cases := []struct {
		name string
		req  models.RecordTrackerRequest
	}{
		{"player seat missing", models.RecordTrackerRequest{Tracker: "damage", Type: "player"}},
		{"player seat not numeric", models.RecordTrackerRequest{Tracker: "damage", Type: "player", PlayerSeat: "left"}},
		{"player seat bool", models.RecordTrackerRequest{Tracker: "damage", Type: "player", PlayerSeat: true}},
		{"number value missing", models.RecordTrackerRequest{Tracker: "life", Type: "number"}},
		{"number value not numeric", models.RecordTrackerRequest{Tracker: "life", Type: "number", Value: "lots"}},
		{"blank name", models.RecordTrackerRequest{Tracker: "   ", Type: "yesno"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTrackerFixture(t)
			_, err := f.svc.Record(context.Background(), f.gameID, f.userID, tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			trackers, err := f.svc.List(context.Background(), f.gameID, f.userID)
			require.NoError(t, err)
			assert.Empty(t, trackers)
			f.events.AssertNotCalled(t, "PublishTrackerEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestApplyDecrementFloorsAtZero(t *testing.T) {
	f := newTrackerFixture(t)
	trackers := f.record(t, models.RecordTrackerRequest{Tracker: "damage", Type: "player", PlayerSeat: float64(1)})
	id := trackers[0].ID
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		var err error
		trackers, err = f.svc.Apply(ctx, f.gameID, f.userID, models.ApplyTrackerRequest{ID: float64(id), Action: "decrement"})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, trackers[0].Count)
}

func TestApplyActions(t *testing.T) {
	f := newTrackerFixture(t)
	trackers := f.record(t, models.RecordTrackerRequest{Tracker: "went-first", Type: "yesno"})
	id := trackers[0].ID
	ctx := context.Background()

	trackers, err := f.svc.Apply(ctx, f.gameID, f.userID, models.ApplyTrackerRequest{ID: id, Action: "set_value", Value: float64(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, trackers[0].Count, "set_value works for any kind")

	trackers, err = f.svc.Apply(ctx, f.gameID, f.userID, models.ApplyTrackerRequest{ID: id, Action: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, 7, trackers[0].Count, "unknown action increments")

	_, err = f.svc.Apply(ctx, f.gameID, f.userID, models.ApplyTrackerRequest{ID: id, Action: "set_value"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Apply(ctx, f.gameID, f.userID, models.ApplyTrackerRequest{Action: "increment"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyAndDeleteMissingIDAreNoOps(t *testing.T) {
	f := newTrackerFixture(t)
	f.record(t, models.RecordTrackerRequest{Tracker: "life", Type: "number", Value: float64(20)})
	ctx := context.Background()

	trackers, err := f.svc.Apply(ctx, f.gameID, f.userID, models.ApplyTrackerRequest{ID: float64(9999), Action: "increment"})
	require.NoError(t, err)
	require.Len(t, trackers, 1)
	assert.Equal(t, 20, trackers[0].Count)

	trackers, err = f.svc.Delete(ctx, f.gameID, f.userID, models.DeleteTrackerRequest{ID: float64(9999)})
	require.NoError(t, err)
	assert.Len(t, trackers, 1)

	_, err = f.svc.Delete(ctx, f.gameID, f.userID, models.DeleteTrackerRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	f := newTrackerFixture(t)
	trackers := f.record(t, models.RecordTrackerRequest{Tracker: "life", Type: "number", Value: float64(20)})

	trackers, err := f.svc.Delete(context.Background(), f.gameID, f.userID, models.DeleteTrackerRequest{ID: trackers[0].ID})
	require.NoError(t, err)
	assert.Empty(t, trackers)
}

func TestTrackerOperationsRequireOwnership(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, f.gameID, "userX", models.RecordTrackerRequest{Tracker: "damage", Type: "yesno"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Apply(ctx, f.gameID, "userX", models.ApplyTrackerRequest{ID: float64(1)})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Delete(ctx, f.gameID, "userX", models.DeleteTrackerRequest{ID: float64(1)})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.List(ctx, f.gameID, "userX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.List(ctx, f.gameID+100, f.userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPublishesEvent(t *testing.T) {
	st := testutil.NewStore(t)
	a := testutil.CreateOpponentWithDeck(t, st, "u1", "OpponentA", "DeckX")
	gameID := testutil.CreateGame(t, st, "u1", a)

	events := new(PublisherMock)
	events.On("PublishTrackerEvent", mock.Anything, mock.MatchedBy(func(ev comm.TrackerEvent) bool {
		return ev.Type == comm.EventTrackerRecorded &&
			ev.GameID == gameID &&
			ev.Tracker == "life" &&
			ev.TrackerID != 0 &&
			ev.Count != nil && *ev.Count == 12
	})).Return(nil).Once()

	svc := NewTrackerService(NewAccess(st), st, events)
	_, err := svc.Record(context.Background(), gameID, "u1", models.RecordTrackerRequest{Tracker: "life", Type: "number", Value: float64(12)})
	require.NoError(t, err)

	events.AssertExpectations(t)
}

func TestPublishFailureDoesNotFailRecord(t *testing.T) {
	st := testutil.NewStore(t)
	gameID := testutil.CreateGame(t, st, "u1", testutil.CreateOpponentWithDeck(t, st, "u1", "OpponentA", "DeckX"))

	events := new(PublisherMock)
	events.On("PublishTrackerEvent", mock.Anything, mock.Anything).Return(assert.AnError)

	svc := NewTrackerService(NewAccess(st), st, events)
	trackers, err := svc.Record(context.Background(), gameID, "u1", models.RecordTrackerRequest{Tracker: "went-first", Type: "yesno"})
	require.NoError(t, err)
	assert.Len(t, trackers, 1)
	events.AssertNumberOfCalls(t, "PublishTrackerEvent", 1)
}
