package repository

import (
	"context"

	"github.com/train-schedule-microservice/internal/domain"
)

// UserRepository persists users with their roles.
type UserRepository interface {
	// GetByID returns the user with the role loaded, or ErrUserNotFound.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername returns the user with the role loaded, or
	// ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create inserts a user with an already-hashed password.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// List returns users without password hashes.
	List(ctx context.Context) ([]*domain.User, error)

	// Update applies non-zero fields of the patch.
	Update(ctx context.Context, id int64, patch *domain.User) error

	// Delete removes a user.
	Delete(ctx context.Context, id int64) error
}
