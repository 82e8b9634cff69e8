package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

const linesCacheKey = "lines:all"

type LineUseCase struct {
	lineRepo  repository.LineRepository
	trainRepo repository.TrainRepository
	cacheRepo repository.CacheRepository
	cacheCfg  *config.CacheConfig
	logger    *zap.Logger
}

func NewLineUseCase(
	lineRepo repository.LineRepository,
	trainRepo repository.TrainRepository,
	cacheRepo repository.CacheRepository,
	cacheCfg *config.CacheConfig,
	logger *zap.Logger,
) *LineUseCase {
	return &LineUseCase{
		lineRepo:  lineRepo,
		trainRepo: trainRepo,
		cacheRepo: cacheRepo,
		cacheCfg:  cacheCfg,
		logger:    logger,
	}
}

func (uc *LineUseCase) Create(ctx context.Context, req dto.CreateLineRequest) (*domain.Line, error) {
	line, err := uc.lineRepo.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	uc.invalidateCache(ctx)
	return line, nil
}

func (uc *LineUseCase) List(ctx context.Context) ([]*domain.Line, error) {
	if cached, err := uc.cacheRepo.Get(ctx, linesCacheKey); err == nil && cached != nil {
		var lines []*domain.Line
		if err := json.Unmarshal(cached, &lines); err == nil {
			return lines, nil
		}
		uc.logger.Warn("Discarding corrupt lines cache entry")
	}

	lines, err := uc.lineRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(lines); err == nil {
		if err := uc.cacheRepo.Set(ctx, linesCacheKey, data, uc.cacheCfg.LinesCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache lines", zap.Error(err))
		}
	}
	return lines, nil
}

func (uc *LineUseCase) Get(ctx context.Context, id int64) (*domain.Line, error) {
	return uc.lineRepo.GetByID(ctx, id)
}

func (uc *LineUseCase) GetStations(ctx context.Context, id int64) ([]*domain.StationOnLine, error) {
	if _, err := uc.lineRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.lineRepo.GetStations(ctx, id)
}

// GetTrains lists the trains stopping on one line, restricted by the
// caller's compiled access filter.
func (uc *LineUseCase) GetTrains(ctx context.Context, model *access.PermissionModel, id int64) ([]dto.NestedObject, error) {
	if _, err := uc.lineRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	filter, err := access.Compile(model, access.SubjectTrain, access.ActionRead)
	if err != nil {
		uc.logger.Error("Failed to compile train access filter", zap.Error(err))
		return nil, errors.ErrConfiguration
	}
	if filter.Denied {
		return []dto.NestedObject{}, nil
	}

	rows, err := uc.trainRepo.ListRows(ctx, repository.TrainListFilter{
		Access: filter,
		LineID: id,
	})
	if err != nil {
		return nil, err
	}
	return rowtree.Assemble(rows, trainNestingKeys), nil
}

func (uc *LineUseCase) Update(ctx context.Context, id int64, req dto.UpdateLineRequest) error {
	if err := uc.lineRepo.Update(ctx, id, req.Name); err != nil {
		return err
	}
	uc.invalidateCache(ctx)
	return nil
}

func (uc *LineUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.lineRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateCache(ctx)
	return nil
}

func (uc *LineUseCase) invalidateCache(ctx context.Context) {
	if err := uc.cacheRepo.Delete(ctx, linesCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate lines cache", zap.Error(err))
	}
}
