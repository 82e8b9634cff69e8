package repository

import (
	"context"

	"github.com/train-schedule-microservice/internal/domain"
)

// LineRepository persists lines.
type LineRepository interface {
	// Create inserts a line. A duplicate name fails with ErrLineConflict.
	Create(ctx context.Context, name string) (*domain.Line, error)

	// GetByID returns the line or ErrLineNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Line, error)

	// List returns all lines with their station counts.
	List(ctx context.Context) ([]*domain.Line, error)

	// GetStations returns the line's stations ordered by station order.
	GetStations(ctx context.Context, lineID int64) ([]*domain.StationOnLine, error)

	// Update renames a line.
	Update(ctx context.Context, id int64, name string) error

	// Delete removes a line. Lines still carrying stops fail with
	// ErrLineReferenced.
	Delete(ctx context.Context, id int64) error
}
