package service

import (
	"context"

	"github.com/avvvet/tracker-services/internal/comm"
	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishTrackerEvent(ctx context.Context, event comm.TrackerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type GameStoreMock struct {
	mock.Mock
}

func (m *GameStoreMock) CreateGame(ctx context.Context, userID string, seats []models.Seat) (int64, error) {
	args := m.Called(ctx, userID, seats)
	return args.Get(0).(int64), args.Error(1)
}

func (m *GameStoreMock) ListGames(ctx context.Context, userID string) ([]models.GameSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.GameSummary), args.Error(1)
}

func (m *GameStoreMock) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	args := m.Called(ctx, gameID)
	game, _ := args.Get(0).(*models.Game)
	return game, args.Error(1)
}

func (m *GameStoreMock) ListSeats(ctx context.Context, gameID int64) ([]models.SeatView, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).([]models.SeatView), args.Error(1)
}
