package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
	"github.com/train-schedule-microservice/internal/usecase"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

func editorModel(userID int64) *access.PermissionModel {
	return access.NewPermissionModel(userID, []access.Grant{
		{Action: access.ActionManage, Subject: access.SubjectTrainRun, Conditions: map[string]any{"ownerUserId": userID}},
	})
}

func newRunUseCase(
	runRepo *MockTrainRunRepository,
	trainRepo *MockTrainRepository,
	rankRepo *MockRankRepository,
	deptRepo *MockPoliceDepartmentRepository,
	personRepo *MockPolicePersonRepository,
) *usecase.RunUseCase {
	return usecase.NewRunUseCase(runRepo, trainRepo, rankRepo, deptRepo, personRepo, fakeTxManager{}, zap.NewNop())
}

func TestRunUseCase_Register(t *testing.T) {
	ctx := context.Background()

	req := dto.RegisterRunRequest{
		Day:     "2026-09-01",
		TrainID: 7,
		Escorts: []dto.EscortInput{
			{
				Name:             "Ivanov",
				PhoneNumber:      "+100200300",
				Rank:             "Sergeant",
				PoliceDepartment: "Central Division",
				FromStationID:    1,
				ToStationID:      4,
			},
			{
				Name:             "Petrov",
				PhoneNumber:      "+100200301",
				Rank:             "Sergeant",
				PoliceDepartment: "Harbor Division",
				FromStationID:    2,
				ToStationID:      4,
			},
		},
	}

	t.Run("registers run with escorts", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		rankRepo := &MockRankRepository{}
		deptRepo := &MockPoliceDepartmentRepository{}
		personRepo := &MockPolicePersonRepository{}
		uc := newRunUseCase(runRepo, trainRepo, rankRepo, deptRepo, personRepo)

		trainRepo.On("GetByID", ctx, int64(7)).Return(&domain.Train{ID: 7}, nil)
		rankRepo.On("FindOrCreate", mock.Anything, "Sergeant").Return(&domain.Rank{ID: 20, Name: "Sergeant"}, nil).Once()
		deptRepo.On("FindOrCreate", mock.Anything, "Central Division").Return(&domain.PoliceDepartment{ID: 30}, nil).Once()
		deptRepo.On("FindOrCreate", mock.Anything, "Harbor Division").Return(&domain.PoliceDepartment{ID: 31}, nil).Once()
		personRepo.On("FindOrCreate", mock.Anything, mock.MatchedBy(func(p *domain.PolicePerson) bool {
			return p.Name == "Ivanov" && p.RankID == 20 && p.PoliceDepartmentID == 30
		})).Return(&domain.PolicePerson{ID: 100}, nil)
		personRepo.On("FindOrCreate", mock.Anything, mock.MatchedBy(func(p *domain.PolicePerson) bool {
			return p.Name == "Petrov" && p.RankID == 20 && p.PoliceDepartmentID == 31
		})).Return(&domain.PolicePerson{ID: 101}, nil)

		runRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.TrainRun) bool {
			return r.TrainID == 7 && r.Day == "2026-09-01" && r.OwnerUserID == 9
		})).Return(&domain.TrainRun{ID: 55, Day: "2026-09-01", TrainID: 7, OwnerUserID: 9}, nil)
		runRepo.On("AssignEscorts", ctx, mock.MatchedBy(func(a []domain.EscortAssignment) bool {
			return len(a) == 2 && a[0].TrainRunID == 55 && a[0].PolicePersonID == 100 && a[1].PolicePersonID == 101
		})).Return(nil)

		run, err := uc.Register(ctx, editorModel(9), req)

		require.NoError(t, err)
		assert.Equal(t, int64(55), run.ID)
		runRepo.AssertExpectations(t)
		rankRepo.AssertExpectations(t)
		deptRepo.AssertExpectations(t)
	})

	t.Run("duplicate day surfaces as conflict", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		rankRepo := &MockRankRepository{}
		deptRepo := &MockPoliceDepartmentRepository{}
		personRepo := &MockPolicePersonRepository{}
		uc := newRunUseCase(runRepo, trainRepo, rankRepo, deptRepo, personRepo)

		trainRepo.On("GetByID", ctx, int64(7)).Return(&domain.Train{ID: 7}, nil)
		rankRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return(&domain.Rank{ID: 20}, nil)
		deptRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return(&domain.PoliceDepartment{ID: 30}, nil)
		personRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return(&domain.PolicePerson{ID: 100}, nil)
		runRepo.On("Create", ctx, mock.Anything).Return(nil, errors.ErrRunConflict)

		_, err := uc.Register(ctx, editorModel(9), req)

		assert.ErrorIs(t, err, errors.ErrRunConflict)
		runRepo.AssertNotCalled(t, "AssignEscorts", mock.Anything, mock.Anything)
	})

	t.Run("reference failure aborts before the run is created", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		rankRepo := &MockRankRepository{}
		deptRepo := &MockPoliceDepartmentRepository{}
		personRepo := &MockPolicePersonRepository{}
		uc := newRunUseCase(runRepo, trainRepo, rankRepo, deptRepo, personRepo)

		trainRepo.On("GetByID", ctx, int64(7)).Return(&domain.Train{ID: 7}, nil)
		rankRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return(nil, errors.ErrDatabaseError)
		deptRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return(&domain.PoliceDepartment{ID: 30}, nil).Maybe()

		_, err := uc.Register(ctx, editorModel(9), req)

		assert.ErrorIs(t, err, errors.ErrDatabaseError)
		runRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		personRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything)
	})

	t.Run("caller without run grants is forbidden", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		uc := newRunUseCase(runRepo, trainRepo, &MockRankRepository{}, &MockPoliceDepartmentRepository{}, &MockPolicePersonRepository{})

		model := access.NewPermissionModel(9, []access.Grant{
			{Action: access.ActionRead, Subject: access.SubjectTrainRun},
		})

		_, err := uc.Register(ctx, model, req)

		assert.ErrorIs(t, err, errors.ErrForbidden)
		trainRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		runRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRunUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("unconditional grant deletes directly", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		uc := newRunUseCase(runRepo, trainRepo, &MockRankRepository{}, &MockPoliceDepartmentRepository{}, &MockPolicePersonRepository{})

		runRepo.On("Delete", ctx, int64(55), int64(7)).Return(nil)

		err := uc.Delete(ctx, adminModel(), 7, 55)

		assert.NoError(t, err)
		trainRepo.AssertNotCalled(t, "ListRunRows", mock.Anything, mock.Anything)
	})

	t.Run("conditional grant checks visibility first", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		uc := newRunUseCase(runRepo, trainRepo, &MockRankRepository{}, &MockPoliceDepartmentRepository{}, &MockPolicePersonRepository{})

		trainRepo.On("ListRunRows", ctx, mock.MatchedBy(func(f repository.RunListFilter) bool {
			return f.TrainID == 7
		})).Return([]rowtree.Row{{"id": int64(55)}}, nil)
		runRepo.On("Delete", ctx, int64(55), int64(7)).Return(nil)

		err := uc.Delete(ctx, editorModel(9), 7, 55)

		assert.NoError(t, err)
		runRepo.AssertExpectations(t)
	})

	t.Run("run outside the caller's conditions is not found", func(t *testing.T) {
		runRepo := &MockTrainRunRepository{}
		trainRepo := &MockTrainRepository{}
		uc := newRunUseCase(runRepo, trainRepo, &MockRankRepository{}, &MockPoliceDepartmentRepository{}, &MockPolicePersonRepository{})

		trainRepo.On("ListRunRows", ctx, mock.Anything).Return([]rowtree.Row{{"id": int64(56)}}, nil)

		err := uc.Delete(ctx, editorModel(9), 7, 55)

		assert.ErrorIs(t, err, errors.ErrRunNotFound)
		runRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
