package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeGame(t *testing.T) {
	ctx := context.Background()
	games := new(GameStoreMock)
	games.On("GetGameByID", mock.Anything, int64(1)).Return(&models.Game{ID: 1, UserID: "owner"}, nil)
	games.On("GetGameByID", mock.Anything, int64(2)).Return(nil, store.ErrNotFound)
	games.On("GetGameByID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))
	access := NewAccess(games)

	game, err := access.AuthorizeGame(ctx, 1, "owner")
	require.NoError(t, err)
	assert.Equal(t, int64(1), game.ID)

	_, err = access.AuthorizeGame(ctx, 1, "intruder")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = access.AuthorizeGame(ctx, 2, "owner")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = access.AuthorizeGame(ctx, 3, "owner")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = access.AuthorizeGame(ctx, 1, "")
	assert.ErrorIs(t, err, ErrNotFound)

	games.AssertExpectations(t)
}
