package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
)

type trainRunRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewTrainRunRepository(db *DB) repository.TrainRunRepository {
	return &trainRunRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *trainRunRepository) Create(ctx context.Context, run *domain.TrainRun) (*domain.TrainRun, error) {
	var created domain.TrainRun
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &created, `
		INSERT INTO train_runs (day, train_id, owner_user_id)
		VALUES ($1, $2, $3)
		RETURNING id, day, train_id, owner_user_id, created_at, updated_at
	`, run.Day, run.TrainID, run.OwnerUserID)
	if isPgError(err, pgUniqueViolation) {
		return nil, errors.ErrRunConflict
	}
	if isPgError(err, pgForeignKeyViolation) {
		return nil, errors.ErrTrainNotFound
	}
	if err != nil {
		r.logger.Error("Failed to create train run",
			zap.Int64("train_id", run.TrainID),
			zap.String("day", run.Day),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &created, nil
}

func (r *trainRunRepository) AssignEscorts(ctx context.Context, assignments []domain.EscortAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	_, err := sqlx.NamedExecContext(ctx, r.db.ext(ctx), `
		INSERT INTO train_run_police_people
			(train_run_id, police_person_id, from_station_id, to_station_id)
		VALUES (:train_run_id, :police_person_id, :from_station_id, :to_station_id)
		ON CONFLICT (train_run_id, police_person_id) DO UPDATE SET
			from_station_id = EXCLUDED.from_station_id,
			to_station_id   = EXCLUDED.to_station_id
	`, assignments)
	if isPgError(err, pgForeignKeyViolation) {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "escort assignment references an unknown run, person or station",
		})
	}
	if err != nil {
		r.logger.Error("Failed to assign escorts", zap.Int("count", len(assignments)), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *trainRunRepository) Delete(ctx context.Context, runID, trainID int64) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		DELETE FROM train_runs WHERE id = $1 AND train_id = $2
	`, runID, trainID)
	if err != nil {
		r.logger.Error("Failed to delete train run",
			zap.Int64("run_id", runID),
			zap.Int64("train_id", trainID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrRunNotFound
	}
	return nil
}

func (r *trainRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		DELETE FROM train_runs WHERE day::date < $1::date
	`, cutoff.Format("2006-01-02"))
	if err != nil {
		r.logger.Error("Failed to purge old train runs", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	purged, _ := res.RowsAffected()
	return purged, nil
}
