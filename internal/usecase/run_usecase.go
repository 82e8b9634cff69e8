package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

// RunUseCase registers and removes train runs together with their escorts.
type RunUseCase struct {
	runRepo    repository.TrainRunRepository
	trainRepo  repository.TrainRepository
	rankRepo   repository.RankRepository
	deptRepo   repository.PoliceDepartmentRepository
	personRepo repository.PolicePersonRepository
	txManager  repository.TxManager
	logger     *zap.Logger
}

func NewRunUseCase(
	runRepo repository.TrainRunRepository,
	trainRepo repository.TrainRepository,
	rankRepo repository.RankRepository,
	deptRepo repository.PoliceDepartmentRepository,
	personRepo repository.PolicePersonRepository,
	txManager repository.TxManager,
	logger *zap.Logger,
) *RunUseCase {
	return &RunUseCase{
		runRepo:    runRepo,
		trainRepo:  trainRepo,
		rankRepo:   rankRepo,
		deptRepo:   deptRepo,
		personRepo: personRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Register creates one day of operation for a train with its escorts.
// Reference entities (ranks, departments, then police people) resolve via
// find-or-create fanned out over an errgroup; being idempotent they run
// outside the transaction, so only the run and its escort rows need the
// atomic unit. Any failure aborts the whole registration.
func (uc *RunUseCase) Register(ctx context.Context, model *access.PermissionModel, req dto.RegisterRunRequest) (*domain.TrainRun, error) {
	filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionManage)
	if err != nil {
		uc.logger.Error("Failed to compile run access filter", zap.Error(err))
		return nil, errors.ErrConfiguration
	}
	if filter.Denied {
		return nil, errors.ErrForbidden
	}

	if _, err := uc.trainRepo.GetByID(ctx, req.TrainID); err != nil {
		return nil, err
	}

	personIDs, err := uc.resolveEscorts(ctx, req.Escorts)
	if err != nil {
		return nil, err
	}

	var run *domain.TrainRun
	err = uc.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		run, err = uc.runRepo.Create(ctx, &domain.TrainRun{
			Day:         req.Day,
			TrainID:     req.TrainID,
			OwnerUserID: model.UserID(),
		})
		if err != nil {
			return err
		}

		assignments := make([]domain.EscortAssignment, 0, len(req.Escorts))
		for i, escort := range req.Escorts {
			assignments = append(assignments, domain.EscortAssignment{
				TrainRunID:     run.ID,
				PolicePersonID: personIDs[i],
				FromStationID:  escort.FromStationID,
				ToStationID:    escort.ToStationID,
			})
		}
		return uc.runRepo.AssignEscorts(ctx, assignments)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Train run registered",
		zap.Int64("run_id", run.ID),
		zap.Int64("train_id", run.TrainID),
		zap.String("day", run.Day),
		zap.Int("escorts", len(req.Escorts)))
	return run, nil
}

// resolveEscorts maps every escort input to a police person id. Ranks and
// departments resolve first, in parallel per distinct name, then the people
// themselves in parallel per escort.
func (uc *RunUseCase) resolveEscorts(ctx context.Context, escorts []dto.EscortInput) ([]int64, error) {
	if len(escorts) == 0 {
		return nil, nil
	}

	rankNames := distinct(escorts, func(e dto.EscortInput) string { return e.Rank })
	deptNames := distinct(escorts, func(e dto.EscortInput) string { return e.PoliceDepartment })
	rankIDs := make(map[string]int64, len(rankNames))
	deptIDs := make(map[string]int64, len(deptNames))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range rankNames {
		g.Go(func() error {
			rank, err := uc.rankRepo.FindOrCreate(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			rankIDs[name] = rank.ID
			mu.Unlock()
			return nil
		})
	}
	for _, name := range deptNames {
		g.Go(func() error {
			dept, err := uc.deptRepo.FindOrCreate(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			deptIDs[name] = dept.ID
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	personIDs := make([]int64, len(escorts))
	g, gctx = errgroup.WithContext(ctx)
	for i, e := range escorts {
		g.Go(func() error {
			person, err := uc.personRepo.FindOrCreate(gctx, &domain.PolicePerson{
				Name:               e.Name,
				PhoneNumber:        e.PhoneNumber,
				RankID:             rankIDs[e.Rank],
				PoliceDepartmentID: deptIDs[e.PoliceDepartment],
			})
			if err != nil {
				return err
			}
			personIDs[i] = person.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return personIDs, nil
}

// Delete removes one run of a train. The caller's compiled run filter must
// admit the run, so an editor only deletes runs they own.
func (uc *RunUseCase) Delete(ctx context.Context, model *access.PermissionModel, trainID, runID int64) error {
	filter, err := access.Compile(model, access.SubjectTrainRun, access.ActionManage)
	if err != nil {
		uc.logger.Error("Failed to compile run access filter", zap.Error(err))
		return errors.ErrConfiguration
	}
	if filter.Denied {
		return errors.ErrForbidden
	}

	if filter.Join == access.JoinRequired {
		rows, err := uc.trainRepo.ListRunRows(ctx, repository.RunListFilter{
			Access:  filter,
			TrainID: trainID,
		})
		if err != nil {
			return err
		}
		if !containsRun(rows, runID) {
			return errors.ErrRunNotFound
		}
	}

	return uc.runRepo.Delete(ctx, runID, trainID)
}

func distinct(escorts []dto.EscortInput, key func(dto.EscortInput) string) []string {
	seen := make(map[string]struct{}, len(escorts))
	var names []string
	for _, e := range escorts {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		names = append(names, k)
	}
	return names
}

func containsRun(rows []rowtree.Row, runID int64) bool {
	for _, row := range rows {
		if id, ok := row["id"].(int64); ok && id == runID {
			return true
		}
	}
	return false
}
