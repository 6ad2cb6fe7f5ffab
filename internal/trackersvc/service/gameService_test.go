package service

import (
	"context"
	"testing"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGame(t *testing.T) {
	st := testutil.NewStore(t)
	ctx := context.Background()
	a := testutil.CreateOpponentWithDeck(t, st, "u1", "OpponentA", "DeckX")
	b := testutil.CreateOpponentWithDeck(t, st, "u1", "OpponentB", "DeckY")
	svc := NewGameService(st, st, st)

	resp, err := svc.CreateGame(ctx, "u1", models.CreateGameRequest{Players: []models.SeatRequest{
		{Seat: float64(1), OpponentID: float64(b.OpponentID), DeckID: float64(b.DeckID)},
		{Seat: "2", OpponentID: float64(a.OpponentID), DeckID: float64(a.DeckID)},
	}})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	games, err := svc.ListGames(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, resp.ID, games[0].ID)
	assert.Equal(t, "OpponentB", games[0].Opponent)
	assert.Equal(t, "DeckY", games[0].Deck)

	seats, err := st.ListSeats(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, seats, 2)
}

func TestCreateGameRejectsBadInput(t *testing.T) {
	st := testutil.NewStore(t)
	ctx := context.Background()
	a := testutil.CreateOpponentWithDeck(t, st, "u1", "OpponentA", "DeckX")
	b := testutil.CreateOpponentWithDeck(t, st, "u1", "OpponentB", "DeckY")
	foreign := testutil.CreateOpponentWithDeck(t, st, "u2", "Stranger", "DeckZ")
	svc := NewGameService(st, st, st)

	seat := func(n any, tb testutil.Table) models.SeatRequest {
		return models.SeatRequest{Seat: n, OpponentID: float64(tb.OpponentID), DeckID: float64(tb.DeckID)}
	}

	cases := map[string]models.CreateGameRequest{
		"no players":       {},
		"missing seat":     {Players: []models.SeatRequest{seat(nil, a)}},
		"missing opponent": {Players: []models.SeatRequest{{Seat: float64(1), DeckID: float64(a.DeckID)}}},
		"duplicate seat":   {Players: []models.SeatRequest{seat(float64(1), a), seat(float64(1), a)}},
		"foreign opponent": {Players: []models.SeatRequest{seat(float64(1), a), seat(float64(2), foreign)}},
		"unknown deck":     {Players: []models.SeatRequest{{Seat: float64(1), OpponentID: float64(a.OpponentID), DeckID: float64(9999)}}},
		"foreign deck":     {Players: []models.SeatRequest{seat(float64(1), testutil.Table{OpponentID: a.OpponentID, DeckID: foreign.DeckID})}},
		"mismatched deck":  {Players: []models.SeatRequest{seat(float64(1), testutil.Table{OpponentID: a.OpponentID, DeckID: b.DeckID})}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateGame(ctx, "u1", req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	games, err := svc.ListGames(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, games)
}
