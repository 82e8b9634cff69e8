package repository

import (
	"context"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
)

// TrainListFilter narrows the wide train listing query. Access carries the
// compiled ownership predicate and join mode; TrainIDs, when non-nil,
// restricts to an itinerary's candidate set. LineID, when non-zero, restricts
// to trains stopping on one line.
type TrainListFilter struct {
	Access   *access.AccessFilter
	TrainIDs []int64
	LineID   int64
	// IncludeLines adds the train's lines to the row set, at the cost of
	// one more join fanning the rows out.
	IncludeLines bool
}

// RunListFilter narrows the run listing query. Access applies to the run rows
// themselves.
type RunListFilter struct {
	Access  *access.AccessFilter
	TrainID int64
	Day     string
}

// TrainRepository persists trains and their scheduled stops, and executes the
// wide joined listing queries whose flat rows feed the row-tree assembler.
type TrainRepository interface {
	// Create inserts a train. A duplicate number fails with
	// ErrTrainConflict.
	Create(ctx context.Context, number string) (*domain.Train, error)

	// GetByID returns the train or ErrTrainNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Train, error)

	// Update changes the train's number.
	Update(ctx context.Context, id int64, number string) error

	// Delete removes a train and cascades over its stops and runs.
	Delete(ctx context.Context, id int64) error

	// ListRows executes the single composed listing query and returns flat
	// path-keyed rows ("id", "trainRuns.id", "trainRuns.policePeople.id", ...).
	ListRows(ctx context.Context, filter TrainListFilter) ([]rowtree.Row, error)

	// ListRunRows is the run-rooted variant ("id", "train.id",
	// "policePeople.id", ...).
	ListRunRows(ctx context.Context, filter RunListFilter) ([]rowtree.Row, error)

	// GetJourneyStops returns every train stop at either station, joined
	// with line and order metadata, for the itinerary matcher.
	GetJourneyStops(ctx context.Context, stationIDs []int64) ([]domain.JourneyStop, error)

	// UpsertStop creates or updates a scheduled stop.
	UpsertStop(ctx context.Context, stop *domain.TrainStop) error

	// DeleteStopsOnLine removes a train's stops on one line and reports how
	// many stops the train keeps on any line.
	DeleteStopsOnLine(ctx context.Context, trainID, lineID int64) (remaining int, err error)
}
