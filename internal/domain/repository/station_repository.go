package repository

import (
	"context"

	"github.com/train-schedule-microservice/internal/domain"
)

// StationRepository persists stations and their placement on lines.
type StationRepository interface {
	// FindOrCreate resolves a station by name, creating it when absent.
	FindOrCreate(ctx context.Context, name string) (*domain.Station, error)

	// GetByID returns the station or ErrStationNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Station, error)

	// GetByName resolves a station name. A missing name returns (nil, nil):
	// an unknown station is a legitimate "no itinerary" answer, not a fault.
	GetByName(ctx context.Context, name string) (*domain.Station, error)

	// List returns all stations with their line placements, ordered by
	// station order within each line.
	List(ctx context.Context) ([]*domain.StationOnLine, error)

	// Update renames a station.
	Update(ctx context.Context, id int64, name string) error

	// Delete removes a station. A station still referenced by line stops
	// fails with ErrStationReferenced.
	Delete(ctx context.Context, id int64) error

	// AttachToLine places the station on a line at the given order.
	AttachToLine(ctx context.Context, stationID, lineID int64, stationOrder int) error

	// DetachFromLine removes the station's placement on one line.
	DetachFromLine(ctx context.Context, stationID, lineID int64) error

	// UpdateOrder moves the station within a line.
	UpdateOrder(ctx context.Context, stationID, lineID int64, stationOrder int) error

	// CountLineAssociations counts how many lines still carry the station.
	CountLineAssociations(ctx context.Context, stationID int64) (int, error)
}
