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

type lineRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewLineRepository(db *DB) repository.LineRepository {
	return &lineRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *lineRepository) Create(ctx context.Context, name string) (*domain.Line, error) {
	var line domain.Line
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &line, `
		INSERT INTO lines (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`, name)
	if isPgError(err, pgUniqueViolation) {
		return nil, errors.ErrLineConflict
	}
	if err != nil {
		r.logger.Error("Failed to create line", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &line, nil
}

func (r *lineRepository) GetByID(ctx context.Context, id int64) (*domain.Line, error) {
	var line domain.Line
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &line, `
		SELECT id, name, created_at, updated_at FROM lines WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrLineNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get line by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &line, nil
}

func (r *lineRepository) List(ctx context.Context) ([]*domain.Line, error) {
	var lines []*domain.Line
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &lines, `
		SELECT
			l.id, l.name, l.created_at, l.updated_at,
			COUNT(ls.id) AS station_count
		FROM lines l
		LEFT JOIN line_stations ls ON ls.line_id = l.id
		GROUP BY l.id
		ORDER BY l.id
	`)
	if err != nil {
		r.logger.Error("Failed to list lines", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return lines, nil
}

func (r *lineRepository) GetStations(ctx context.Context, lineID int64) ([]*domain.StationOnLine, error) {
	var stations []*domain.StationOnLine
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &stations, `
		SELECT
			s.id, s.name, s.created_at, s.updated_at,
			ls.line_id, ls.station_order
		FROM stations s
		JOIN line_stations ls ON ls.station_id = s.id
		WHERE ls.line_id = $1
		ORDER BY ls.station_order
	`, lineID)
	if err != nil {
		r.logger.Error("Failed to get stations of line", zap.Int64("line_id", lineID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stations, nil
}

func (r *lineRepository) Update(ctx context.Context, id int64, name string) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		UPDATE lines SET name = $1, updated_at = now() WHERE id = $2
	`, name, id)
	if isPgError(err, pgUniqueViolation) {
		return errors.ErrLineConflict
	}
	if err != nil {
		r.logger.Error("Failed to update line", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrLineNotFound
	}
	return nil
}

func (r *lineRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `DELETE FROM lines WHERE id = $1`, id)
	if isPgError(err, pgForeignKeyViolation) {
		return errors.ErrLineReferenced
	}
	if err != nil {
		r.logger.Error("Failed to delete line", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrLineNotFound
	}
	return nil
}
