package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/itinerary"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

// Relation paths materialized as arrays in assembled listings, shallow
// before deep.
var (
	trainNestingKeys    = []string{"trainRuns", "trainRuns.policePeople"}
	trainGetNestingKeys = []string{"lines", "trainRuns", "trainRuns.policePeople"}
	runNestingKeys      = []string{"policePeople"}
)

// TrainUseCase composes access compilation, itinerary matching, the wide
// listing queries and row-tree assembly into the read path, and guards the
// timetable mutations.
type TrainUseCase struct {
	trainRepo   repository.TrainRepository
	stationRepo repository.StationRepository
	txManager   repository.TxManager
	logger      *zap.Logger
}

func NewTrainUseCase(
	trainRepo repository.TrainRepository,
	stationRepo repository.StationRepository,
	txManager repository.TxManager,
	logger *zap.Logger,
) *TrainUseCase {
	return &TrainUseCase{
		trainRepo:   trainRepo,
		stationRepo: stationRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List returns nested train objects the caller may see. With both journey
// stations set, the result narrows to trains actually serving that journey;
// an unknown station name or no qualifying train short-circuits to empty.
func (uc *TrainUseCase) List(ctx context.Context, model *access.PermissionModel, query dto.TrainListQuery) ([]dto.NestedObject, error) {
	filter, err := uc.compile(model, access.SubjectTrain, access.ActionRead)
	if err != nil {
		return nil, err
	}
	if filter.Denied {
		return []dto.NestedObject{}, nil
	}

	var trainIDs []int64
	if query.FromStation != "" && query.ToStation != "" {
		candidates, err := uc.matchJourney(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return []dto.NestedObject{}, nil
		}
		trainIDs = itinerary.TrainIDs(candidates)
	}

	rows, err := uc.trainRepo.ListRows(ctx, repository.TrainListFilter{
		Access:   filter,
		TrainIDs: trainIDs,
		LineID:   query.LineID,
	})
	if err != nil {
		return nil, err
	}
	return rowtree.Assemble(rows, trainNestingKeys), nil
}

// matchJourney resolves the station names and runs the itinerary matcher.
// Unknown names yield no candidates rather than an error.
func (uc *TrainUseCase) matchJourney(ctx context.Context, query dto.TrainListQuery) ([]itinerary.Candidate, error) {
	origin, err := uc.stationRepo.GetByName(ctx, query.FromStation)
	if err != nil {
		return nil, err
	}
	destination, err := uc.stationRepo.GetByName(ctx, query.ToStation)
	if err != nil {
		return nil, err
	}
	if origin == nil || destination == nil {
		return nil, nil
	}

	stops, err := uc.trainRepo.GetJourneyStops(ctx, []int64{origin.ID, destination.ID})
	if err != nil {
		return nil, err
	}

	opts := itinerary.Options{AllowNamedTransfer: query.AllowTransfer}
	if query.Direction == "backward" {
		opts.Direction = itinerary.DirectionBackward
	}
	return itinerary.Match(stops, origin.ID, destination.ID, opts), nil
}

// ListRuns returns nested run objects; the compiled predicate applies to the
// run rows themselves.
func (uc *TrainUseCase) ListRuns(ctx context.Context, model *access.PermissionModel, query dto.RunListQuery) ([]dto.NestedObject, error) {
	filter, err := uc.compile(model, access.SubjectTrainRun, access.ActionRead)
	if err != nil {
		return nil, err
	}
	if filter.Denied {
		return []dto.NestedObject{}, nil
	}

	rows, err := uc.trainRepo.ListRunRows(ctx, repository.RunListFilter{
		Access:  filter,
		TrainID: query.TrainID,
		Day:     query.Day,
	})
	if err != nil {
		return nil, err
	}
	return rowtree.Assemble(rows, runNestingKeys), nil
}

// Get returns one train with its lines and runs nested.
func (uc *TrainUseCase) Get(ctx context.Context, model *access.PermissionModel, id int64) (dto.NestedObject, error) {
	filter, err := uc.compile(model, access.SubjectTrain, access.ActionRead)
	if err != nil {
		return nil, err
	}
	if filter.Denied {
		return nil, errors.ErrForbidden
	}

	if _, err := uc.trainRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := uc.trainRepo.ListRows(ctx, repository.TrainListFilter{
		Access:       filter,
		TrainIDs:     []int64{id},
		IncludeLines: true,
	})
	if err != nil {
		return nil, err
	}

	assembled := rowtree.Assemble(rows, trainGetNestingKeys)
	if len(assembled) == 0 {
		// exists but outside the caller's grant conditions
		return nil, errors.ErrForbidden
	}
	return assembled[0], nil
}

func (uc *TrainUseCase) Create(ctx context.Context, model *access.PermissionModel, req dto.CreateTrainRequest) (*domain.Train, error) {
	if err := uc.requireManage(model); err != nil {
		return nil, err
	}
	return uc.trainRepo.Create(ctx, req.Number)
}

func (uc *TrainUseCase) Update(ctx context.Context, model *access.PermissionModel, id int64, req dto.UpdateTrainRequest) error {
	if err := uc.requireManage(model); err != nil {
		return err
	}
	return uc.trainRepo.Update(ctx, id, req.Number)
}

func (uc *TrainUseCase) Delete(ctx context.Context, model *access.PermissionModel, id int64) error {
	if err := uc.requireManage(model); err != nil {
		return err
	}
	return uc.trainRepo.Delete(ctx, id)
}

// UpsertStop creates or updates one scheduled stop of the train.
func (uc *TrainUseCase) UpsertStop(ctx context.Context, model *access.PermissionModel, trainID int64, req dto.UpsertStopRequest) error {
	if err := uc.requireManage(model); err != nil {
		return err
	}

	stop := &domain.TrainStop{
		TrainID:       trainID,
		LineID:        req.LineID,
		LineStationID: req.LineStationID,
		IsArrival:     req.IsArrival,
		IsDeparture:   req.IsDeparture,
	}
	var err error
	if stop.ArrivalTime, err = parseOptionalTime(req.ArrivalTime); err != nil {
		return err
	}
	if stop.DepartureTime, err = parseOptionalTime(req.DepartureTime); err != nil {
		return err
	}
	return uc.trainRepo.UpsertStop(ctx, stop)
}

func parseOptionalTime(s *string) (*domain.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(*s)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return &t, nil
}

// RemoveFromLine drops every stop of the train on one line; a train losing
// its last stop on its last line is deleted with it, in one transaction.
func (uc *TrainUseCase) RemoveFromLine(ctx context.Context, model *access.PermissionModel, trainID, lineID int64) error {
	if err := uc.requireManage(model); err != nil {
		return err
	}

	return uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.trainRepo.GetByID(ctx, trainID); err != nil {
			return err
		}
		remaining, err := uc.trainRepo.DeleteStopsOnLine(ctx, trainID, lineID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return uc.trainRepo.Delete(ctx, trainID)
		}
		return nil
	})
}

func (uc *TrainUseCase) compile(model *access.PermissionModel, subject access.Subject, action access.Action) (*access.AccessFilter, error) {
	filter, err := access.Compile(model, subject, action)
	if err != nil {
		uc.logger.Error("Failed to compile access filter",
			zap.String("subject", string(subject)),
			zap.String("action", string(action)),
			zap.Error(err))
		return nil, errors.ErrConfiguration
	}
	return filter, nil
}

func (uc *TrainUseCase) requireManage(model *access.PermissionModel) error {
	filter, err := uc.compile(model, access.SubjectTrain, access.ActionManage)
	if err != nil {
		return err
	}
	if filter.Denied {
		return errors.ErrForbidden
	}
	return nil
}
