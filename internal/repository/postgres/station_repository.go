package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
)

type stationRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *stationRepository) FindOrCreate(ctx context.Context, name string) (*domain.Station, error) {
	ext := r.db.ext(ctx)

	_, err := ext.ExecContext(ctx, `
		INSERT INTO stations (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		r.logger.Error("Failed to insert station", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var station domain.Station
	err = sqlx.GetContext(ctx, ext, &station, `
		SELECT id, name, created_at, updated_at FROM stations WHERE name = $1
	`, name)
	if err != nil {
		r.logger.Error("Failed to load station after insert", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &station, nil
}

func (r *stationRepository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	var station domain.Station
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &station, `
		SELECT id, name, created_at, updated_at FROM stations WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrStationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get station by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &station, nil
}

// GetByName returns (nil, nil) for an unknown name: the itinerary path treats
// that as "no journey", not a fault.
func (r *stationRepository) GetByName(ctx context.Context, name string) (*domain.Station, error) {
	var station domain.Station
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &station, `
		SELECT id, name, created_at, updated_at FROM stations WHERE name = $1
	`, name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get station by name", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &station, nil
}

func (r *stationRepository) List(ctx context.Context) ([]*domain.StationOnLine, error) {
	var stations []*domain.StationOnLine
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &stations, `
		SELECT
			s.id, s.name, s.created_at, s.updated_at,
			COALESCE(ls.line_id, 0) AS line_id,
			COALESCE(ls.station_order, 0) AS station_order
		FROM stations s
		LEFT JOIN line_stations ls ON ls.station_id = s.id
		ORDER BY ls.line_id NULLS LAST, ls.station_order
	`)
	if err != nil {
		r.logger.Error("Failed to list stations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *stationRepository) Update(ctx context.Context, id int64, name string) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		UPDATE stations SET name = $1, updated_at = now() WHERE id = $2
	`, name, id)
	if isPgError(err, pgUniqueViolation) {
		return errors.ErrStationConflict
	}
	if err != nil {
		r.logger.Error("Failed to update station", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrStationNotFound
	}
	return nil
}

func (r *stationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if isPgError(err, pgForeignKeyViolation) {
		return errors.ErrStationReferenced
	}
	if err != nil {
		r.logger.Error("Failed to delete station", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrStationNotFound
	}
	return nil
}

func (r *stationRepository) AttachToLine(ctx context.Context, stationID, lineID int64, stationOrder int) error {
	_, err := r.db.ext(ctx).ExecContext(ctx, `
		INSERT INTO line_stations (line_id, station_id, station_order)
		VALUES ($1, $2, $3)
		ON CONFLICT (line_id, station_id) DO UPDATE SET station_order = EXCLUDED.station_order
	`, lineID, stationID, stationOrder)
	if isPgError(err, pgUniqueViolation) {
		// station_order is taken on this line
		return errors.ErrStationConflict
	}
	if isPgError(err, pgForeignKeyViolation) {
		return errors.ErrLineNotFound
	}
	if err != nil {
		r.logger.Error("Failed to attach station to line",
			zap.Int64("station_id", stationID),
			zap.Int64("line_id", lineID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *stationRepository) DetachFromLine(ctx context.Context, stationID, lineID int64) error {
	_, err := r.db.ext(ctx).ExecContext(ctx, `
		DELETE FROM line_stations WHERE station_id = $1 AND line_id = $2
	`, stationID, lineID)
	if isPgError(err, pgForeignKeyViolation) {
		return errors.ErrStationReferenced
	}
	if err != nil {
		r.logger.Error("Failed to detach station from line",
			zap.Int64("station_id", stationID),
			zap.Int64("line_id", lineID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *stationRepository) UpdateOrder(ctx context.Context, stationID, lineID int64, stationOrder int) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		UPDATE line_stations SET station_order = $1 WHERE station_id = $2 AND line_id = $3
	`, stationOrder, stationID, lineID)
	if isPgError(err, pgUniqueViolation) {
		return errors.ErrStationConflict
	}
	if err != nil {
		r.logger.Error("Failed to update station order",
			zap.Int64("station_id", stationID),
			zap.Int64("line_id", lineID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrStationNotFound
	}
	return nil
}

func (r *stationRepository) CountLineAssociations(ctx context.Context, stationID int64) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &count, `
		SELECT COUNT(*) FROM line_stations WHERE station_id = $1
	`, stationID)
	if err != nil {
		r.logger.Error("Failed to count line associations", zap.Int64("station_id", stationID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}
