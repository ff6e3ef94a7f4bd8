package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"inn/config"
	"inn/infras/otel/mocks"
	roomMocks "inn/internal/domains/room/mocks"
	"inn/internal/domains/room/model"
	"inn/internal/domains/room/service"
	cacheMocks "inn/shared/cache/mocks"

	"github.com/pkg/errors"
)

func TestRoomService_GetAll(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, RoomNumber: "101", Floor: 1, IsAvailable: true},
		{ID: 2, RoomNumber: "102", Floor: 1, IsBooked: true, IsAvailable: true},
	}

	t.Run("cache miss hits the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockRepo := roomMocks.NewMockRoom(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(rooms, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

		res, err := svc.GetAll(context.Background())

		require.NoError(t, err)
		require.Len(t, res.Rooms, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, "101", res.Rooms[0].RoomNumber)
		assert.True(t, res.Rooms[1].IsBooked)
	})

	t.Run("store error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockRepo := roomMocks.NewMockRoom(ctrl)
		mockCache := cacheMocks.NewMockRedisCache(ctrl)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			GetAll(gomock.Any()).
			Return(nil, errors.New("connection refused"))

		svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

		_, err := svc.GetAll(context.Background())

		assert.Error(t, err)
	})
}
