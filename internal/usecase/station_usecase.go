package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

const stationsCacheKey = "stations:all"

type StationUseCase struct {
	stationRepo repository.StationRepository
	cacheRepo   repository.CacheRepository
	txManager   repository.TxManager
	cacheCfg    *config.CacheConfig
	logger      *zap.Logger
}

func NewStationUseCase(
	stationRepo repository.StationRepository,
	cacheRepo repository.CacheRepository,
	txManager repository.TxManager,
	cacheCfg *config.CacheConfig,
	logger *zap.Logger,
) *StationUseCase {
	return &StationUseCase{
		stationRepo: stationRepo,
		cacheRepo:   cacheRepo,
		txManager:   txManager,
		cacheCfg:    cacheCfg,
		logger:      logger,
	}
}

// Create resolves the station by name and places it on the requested line.
// Reusing an existing name is deliberate: the same physical station appears
// on several lines.
func (uc *StationUseCase) Create(ctx context.Context, req dto.CreateStationRequest) (*domain.Station, error) {
	var station *domain.Station
	err := uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		station, err = uc.stationRepo.FindOrCreate(ctx, req.Name)
		if err != nil {
			return err
		}
		return uc.stationRepo.AttachToLine(ctx, station.ID, req.LineID, req.StationOrder)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)
	return station, nil
}

func (uc *StationUseCase) List(ctx context.Context) ([]*domain.StationOnLine, error) {
	if cached, err := uc.cacheRepo.Get(ctx, stationsCacheKey); err == nil && cached != nil {
		var stations []*domain.StationOnLine
		if err := json.Unmarshal(cached, &stations); err == nil {
			return stations, nil
		}
		uc.logger.Warn("Discarding corrupt stations cache entry")
	}

	stations, err := uc.stationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stations); err == nil {
		if err := uc.cacheRepo.Set(ctx, stationsCacheKey, data, uc.cacheCfg.StationsCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache stations", zap.Error(err))
		}
	}
	return stations, nil
}

func (uc *StationUseCase) Get(ctx context.Context, id int64) (*domain.Station, error) {
	return uc.stationRepo.GetByID(ctx, id)
}

func (uc *StationUseCase) Update(ctx context.Context, id int64, req dto.UpdateStationRequest) error {
	if err := uc.stationRepo.Update(ctx, id, req.Name); err != nil {
		return err
	}
	uc.invalidateCache(ctx)
	return nil
}

func (uc *StationUseCase) UpdateOrder(ctx context.Context, id int64, req dto.UpdateStationOrderRequest) error {
	if err := uc.stationRepo.UpdateOrder(ctx, id, req.LineID, req.StationOrder); err != nil {
		return err
	}
	uc.invalidateCache(ctx)
	return nil
}

func (uc *StationUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.stationRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateCache(ctx)
	return nil
}

// Detach removes the station from one line; losing its last line association
// deletes the station itself, in the same transaction.
func (uc *StationUseCase) Detach(ctx context.Context, id int64, req dto.DetachStationRequest) error {
	err := uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.stationRepo.DetachFromLine(ctx, id, req.LineID); err != nil {
			return err
		}
		remaining, err := uc.stationRepo.CountLineAssociations(ctx, id)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return uc.stationRepo.Delete(ctx, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

func (uc *StationUseCase) invalidateCache(ctx context.Context) {
	if err := uc.cacheRepo.Delete(ctx, stationsCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate stations cache", zap.Error(err))
	}
}
