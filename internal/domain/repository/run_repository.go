package repository

import (
	"context"
	"time"

	"github.com/train-schedule-microservice/internal/domain"
)

// TrainRunRepository persists runs and their escort assignments.
type TrainRunRepository interface {
	// Create inserts a run. A duplicate (train, day) pair fails with
	// ErrRunConflict.
	Create(ctx context.Context, run *domain.TrainRun) (*domain.TrainRun, error)

	// AssignEscorts attaches police people to a run.
	AssignEscorts(ctx context.Context, assignments []domain.EscortAssignment) error

	// Delete removes one run of a train.
	Delete(ctx context.Context, runID, trainID int64) error

	// DeleteOlderThan purges runs whose day predates the cutoff, together
	// with their escort assignments, and reports how many runs went.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RankRepository resolves ranks by name.
type RankRepository interface {
	FindOrCreate(ctx context.Context, name string) (*domain.Rank, error)
	List(ctx context.Context) ([]*domain.Rank, error)
}

// PoliceDepartmentRepository resolves departments by name.
type PoliceDepartmentRepository interface {
	FindOrCreate(ctx context.Context, name string) (*domain.PoliceDepartment, error)
	List(ctx context.Context) ([]*domain.PoliceDepartment, error)
}

// PolicePersonRepository resolves escorts by their full identity tuple.
type PolicePersonRepository interface {
	FindOrCreate(ctx context.Context, person *domain.PolicePerson) (*domain.PolicePerson, error)
}
