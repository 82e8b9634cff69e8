package worker

import (
	"context"
)

// Worker is a long-running background task managed by the Manager.
type Worker interface {
	// Start runs the worker until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop signals the worker to finish its current cycle and exit.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
