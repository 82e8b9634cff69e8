package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
)

type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) FindOrCreate(ctx context.Context, name string) (*domain.Station, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) GetByName(ctx context.Context, name string) (*domain.Station, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) List(ctx context.Context) ([]*domain.StationOnLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StationOnLine), args.Error(1)
}

func (m *MockStationRepository) Update(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockStationRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStationRepository) AttachToLine(ctx context.Context, stationID, lineID int64, stationOrder int) error {
	return m.Called(ctx, stationID, lineID, stationOrder).Error(0)
}

func (m *MockStationRepository) DetachFromLine(ctx context.Context, stationID, lineID int64) error {
	return m.Called(ctx, stationID, lineID).Error(0)
}

func (m *MockStationRepository) UpdateOrder(ctx context.Context, stationID, lineID int64, stationOrder int) error {
	return m.Called(ctx, stationID, lineID, stationOrder).Error(0)
}

func (m *MockStationRepository) CountLineAssociations(ctx context.Context, stationID int64) (int, error) {
	args := m.Called(ctx, stationID)
	return args.Int(0), args.Error(1)
}

type MockLineRepository struct {
	mock.Mock
}

func (m *MockLineRepository) Create(ctx context.Context, name string) (*domain.Line, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Line), args.Error(1)
}

func (m *MockLineRepository) GetByID(ctx context.Context, id int64) (*domain.Line, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Line), args.Error(1)
}

func (m *MockLineRepository) List(ctx context.Context) ([]*domain.Line, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Line), args.Error(1)
}

func (m *MockLineRepository) GetStations(ctx context.Context, lineID int64) ([]*domain.StationOnLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StationOnLine), args.Error(1)
}

func (m *MockLineRepository) Update(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockLineRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockTrainRepository struct {
	mock.Mock
}

func (m *MockTrainRepository) Create(ctx context.Context, number string) (*domain.Train, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainRepository) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainRepository) Update(ctx context.Context, id int64, number string) error {
	return m.Called(ctx, id, number).Error(0)
}

func (m *MockTrainRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrainRepository) ListRows(ctx context.Context, filter repository.TrainListFilter) ([]rowtree.Row, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rowtree.Row), args.Error(1)
}

func (m *MockTrainRepository) ListRunRows(ctx context.Context, filter repository.RunListFilter) ([]rowtree.Row, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rowtree.Row), args.Error(1)
}

func (m *MockTrainRepository) GetJourneyStops(ctx context.Context, stationIDs []int64) ([]domain.JourneyStop, error) {
	args := m.Called(ctx, stationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JourneyStop), args.Error(1)
}

func (m *MockTrainRepository) UpsertStop(ctx context.Context, stop *domain.TrainStop) error {
	return m.Called(ctx, stop).Error(0)
}

func (m *MockTrainRepository) DeleteStopsOnLine(ctx context.Context, trainID, lineID int64) (int, error) {
	args := m.Called(ctx, trainID, lineID)
	return args.Int(0), args.Error(1)
}

type MockTrainRunRepository struct {
	mock.Mock
}

func (m *MockTrainRunRepository) Create(ctx context.Context, run *domain.TrainRun) (*domain.TrainRun, error) {
	args := m.Called(ctx, run)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainRun), args.Error(1)
}

func (m *MockTrainRunRepository) AssignEscorts(ctx context.Context, assignments []domain.EscortAssignment) error {
	return m.Called(ctx, assignments).Error(0)
}

func (m *MockTrainRunRepository) Delete(ctx context.Context, runID, trainID int64) error {
	return m.Called(ctx, runID, trainID).Error(0)
}

func (m *MockTrainRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockRankRepository struct {
	mock.Mock
}

func (m *MockRankRepository) FindOrCreate(ctx context.Context, name string) (*domain.Rank, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rank), args.Error(1)
}

func (m *MockRankRepository) List(ctx context.Context) ([]*domain.Rank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rank), args.Error(1)
}

type MockPoliceDepartmentRepository struct {
	mock.Mock
}

func (m *MockPoliceDepartmentRepository) FindOrCreate(ctx context.Context, name string) (*domain.PoliceDepartment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PoliceDepartment), args.Error(1)
}

func (m *MockPoliceDepartmentRepository) List(ctx context.Context) ([]*domain.PoliceDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PoliceDepartment), args.Error(1)
}

type MockPolicePersonRepository struct {
	mock.Mock
}

func (m *MockPolicePersonRepository) FindOrCreate(ctx context.Context, person *domain.PolicePerson) (*domain.PolicePerson, error) {
	args := m.Called(ctx, person)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicePerson), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, patch *domain.User) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// fakeTxManager runs the unit of work inline; the transactional behavior is
// covered by the storage layer.
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
