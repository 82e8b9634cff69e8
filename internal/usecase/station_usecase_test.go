package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/usecase"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

func newStationUseCase(stationRepo *MockStationRepository, cacheRepo *MockCacheRepository) *usecase.StationUseCase {
	cfg := &config.CacheConfig{StationsCacheTTL: 5 * time.Minute, LinesCacheTTL: 5 * time.Minute}
	return usecase.NewStationUseCase(stationRepo, cacheRepo, fakeTxManager{}, cfg, zap.NewNop())
}

func TestStationUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves by name and attaches to the line", func(t *testing.T) {
		stationRepo := &MockStationRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newStationUseCase(stationRepo, cacheRepo)

		stationRepo.On("FindOrCreate", ctx, "Central").Return(&domain.Station{ID: 1, Name: "Central"}, nil)
		stationRepo.On("AttachToLine", ctx, int64(1), int64(3), 2).Return(nil)
		cacheRepo.On("Delete", ctx, "stations:all").Return(nil)

		station, err := uc.Create(ctx, dto.CreateStationRequest{Name: "Central", LineID: 3, StationOrder: 2})

		require.NoError(t, err)
		assert.Equal(t, int64(1), station.ID)
		stationRepo.AssertExpectations(t)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("attach failure rolls the unit back", func(t *testing.T) {
		stationRepo := &MockStationRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newStationUseCase(stationRepo, cacheRepo)

		stationRepo.On("FindOrCreate", ctx, "Central").Return(&domain.Station{ID: 1, Name: "Central"}, nil)
		stationRepo.On("AttachToLine", ctx, int64(1), int64(3), 2).Return(errors.ErrLineNotFound)

		_, err := uc.Create(ctx, dto.CreateStationRequest{Name: "Central", LineID: 3, StationOrder: 2})

		assert.ErrorIs(t, err, errors.ErrLineNotFound)
		cacheRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestStationUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		stationRepo := &MockStationRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newStationUseCase(stationRepo, cacheRepo)

		cached := []*domain.StationOnLine{{Station: domain.Station{ID: 1, Name: "Central"}, LineID: 3, StationOrder: 1}}
		data, err := json.Marshal(cached)
		require.NoError(t, err)
		cacheRepo.On("Get", ctx, "stations:all").Return(data, nil)

		stations, err := uc.List(ctx)

		require.NoError(t, err)
		require.Len(t, stations, 1)
		assert.Equal(t, "Central", stations[0].Name)
		stationRepo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		stationRepo := &MockStationRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newStationUseCase(stationRepo, cacheRepo)

		cacheRepo.On("Get", ctx, "stations:all").Return(nil, nil)
		stationRepo.On("List", ctx).Return([]*domain.StationOnLine{
			{Station: domain.Station{ID: 1, Name: "Central"}, LineID: 3, StationOrder: 1},
		}, nil)
		cacheRepo.On("Set", ctx, "stations:all", mock.Anything, 5*time.Minute).Return(nil)

		stations, err := uc.List(ctx)

		require.NoError(t, err)
		assert.Len(t, stations, 1)
		cacheRepo.AssertExpectations(t)
	})
}

func TestStationUseCase_Detach(t *testing.T) {
	ctx := context.Background()

	t.Run("station stays while other lines carry it", func(t *testing.T) {
		stationRepo := &MockStationRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newStationUseCase(stationRepo, cacheRepo)

		stationRepo.On("DetachFromLine", ctx, int64(1), int64(3)).Return(nil)
		stationRepo.On("CountLineAssociations", ctx, int64(1)).Return(2, nil)
		cacheRepo.On("Delete", ctx, "stations:all").Return(nil)

		err := uc.Detach(ctx, 1, dto.DetachStationRequest{LineID: 3})

		assert.NoError(t, err)
		stationRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("last association removes the station", func(t *testing.T) {
		stationRepo := &MockStationRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newStationUseCase(stationRepo, cacheRepo)

		stationRepo.On("DetachFromLine", ctx, int64(1), int64(3)).Return(nil)
		stationRepo.On("CountLineAssociations", ctx, int64(1)).Return(0, nil)
		stationRepo.On("Delete", ctx, int64(1)).Return(nil)
		cacheRepo.On("Delete", ctx, "stations:all").Return(nil)

		err := uc.Detach(ctx, 1, dto.DetachStationRequest{LineID: 3})

		assert.NoError(t, err)
		stationRepo.AssertExpectations(t)
	})
}
