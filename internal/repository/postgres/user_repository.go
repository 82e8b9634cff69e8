package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
)

type userRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: db.logger,
	}
}

// userRow flattens the role join; the role columns are nullable because a
// user may momentarily exist without a role during provisioning.
type userRow struct {
	domain.User
	RoleRowID   sql.NullInt64  `db:"role_row_id"`
	RoleRowName sql.NullString `db:"role_row_name"`
}

func (r userRow) toUser() *domain.User {
	user := r.User
	if r.RoleRowID.Valid {
		user.Role = &domain.Role{ID: r.RoleRowID.Int64, Name: r.RoleRowName.String}
	}
	return &user
}

const userSelect = `
	SELECT
		u.id, u.username, u.password, u.is_admin, u.role_id,
		u.created_at, u.updated_at,
		ro.id AS role_row_id, ro.name AS role_row_name
	FROM users u
	LEFT JOIN roles ro ON ro.id = u.role_id
`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &row, userSelect+` WHERE u.id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return row.toUser(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &row, userSelect+` WHERE u.username = $1`, username)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by username", zap.String("username", username), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return row.toUser(), nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var created domain.User
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &created, `
		INSERT INTO users (username, password, is_admin, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password, is_admin, role_id, created_at, updated_at
	`, user.Username, user.Password, user.IsAdmin, user.RoleID)
	if isPgError(err, pgUniqueViolation) {
		return nil, errors.ErrUserConflict
	}
	if isPgError(err, pgForeignKeyViolation) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "unknown role",
		})
	}
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("username", user.Username), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	created.Role = user.Role
	return &created, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &rows, userSelect+` ORDER BY u.id`)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		user := row.toUser()
		user.Password = ""
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, patch *domain.User) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	appendSet := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}

	if patch.Username != "" {
		appendSet("username", patch.Username)
	}
	if patch.Password != "" {
		appendSet("password", patch.Password)
	}
	if patch.RoleID != 0 {
		appendSet("role_id", patch.RoleID)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		`, updated_at = now() WHERE id = $` + strconv.Itoa(len(args))

	res, err := r.db.ext(ctx).ExecContext(ctx, query, args...)
	if isPgError(err, pgUniqueViolation) {
		return errors.ErrUserConflict
	}
	if err != nil {
		r.logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete user", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}
