package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
)

type rankRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewRankRepository(db *DB) repository.RankRepository {
	return &rankRepository{db: db, logger: db.logger}
}

func (r *rankRepository) FindOrCreate(ctx context.Context, name string) (*domain.Rank, error) {
	ext := r.db.ext(ctx)

	_, err := ext.ExecContext(ctx, `
		INSERT INTO ranks (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		r.logger.Error("Failed to insert rank", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var rank domain.Rank
	err = sqlx.GetContext(ctx, ext, &rank, `
		SELECT id, name, created_at, updated_at FROM ranks WHERE name = $1
	`, name)
	if err != nil {
		r.logger.Error("Failed to load rank after insert", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &rank, nil
}

func (r *rankRepository) List(ctx context.Context) ([]*domain.Rank, error) {
	var ranks []*domain.Rank
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &ranks, `
		SELECT id, name, created_at, updated_at FROM ranks ORDER BY name
	`)
	if err != nil {
		r.logger.Error("Failed to list ranks", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return ranks, nil
}

type policeDepartmentRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewPoliceDepartmentRepository(db *DB) repository.PoliceDepartmentRepository {
	return &policeDepartmentRepository{db: db, logger: db.logger}
}

func (r *policeDepartmentRepository) FindOrCreate(ctx context.Context, name string) (*domain.PoliceDepartment, error) {
	ext := r.db.ext(ctx)

	_, err := ext.ExecContext(ctx, `
		INSERT INTO police_departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		r.logger.Error("Failed to insert police department", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var department domain.PoliceDepartment
	err = sqlx.GetContext(ctx, ext, &department, `
		SELECT id, name, created_at, updated_at FROM police_departments WHERE name = $1
	`, name)
	if err != nil {
		r.logger.Error("Failed to load police department after insert", zap.String("name", name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &department, nil
}

func (r *policeDepartmentRepository) List(ctx context.Context) ([]*domain.PoliceDepartment, error) {
	var departments []*domain.PoliceDepartment
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &departments, `
		SELECT id, name, created_at, updated_at FROM police_departments ORDER BY name
	`)
	if err != nil {
		r.logger.Error("Failed to list police departments", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return departments, nil
}

type policePersonRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewPolicePersonRepository(db *DB) repository.PolicePersonRepository {
	return &policePersonRepository{db: db, logger: db.logger}
}

// FindOrCreate matches on the full identity tuple: two escorts may share a
// name as long as any other attribute differs.
func (r *policePersonRepository) FindOrCreate(ctx context.Context, person *domain.PolicePerson) (*domain.PolicePerson, error) {
	ext := r.db.ext(ctx)

	_, err := ext.ExecContext(ctx, `
		INSERT INTO police_people (name, phone_number, rank_id, police_department_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, phone_number, rank_id, police_department_id) DO NOTHING
	`, person.Name, person.PhoneNumber, person.RankID, person.PoliceDepartmentID)
	if isPgError(err, pgForeignKeyViolation) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "police person references an unknown rank or department",
		})
	}
	if err != nil {
		r.logger.Error("Failed to insert police person", zap.String("name", person.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	var found domain.PolicePerson
	err = sqlx.GetContext(ctx, ext, &found, `
		SELECT id, name, phone_number, rank_id, police_department_id, created_at, updated_at
		FROM police_people
		WHERE name = $1 AND phone_number = $2 AND rank_id = $3 AND police_department_id = $4
	`, person.Name, person.PhoneNumber, person.RankID, person.PoliceDepartmentID)
	if err != nil {
		r.logger.Error("Failed to load police person after insert", zap.String("name", person.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &found, nil
}
