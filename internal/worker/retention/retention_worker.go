// Package retention purges train runs older than the configured window so the
// operational tables stay bounded.
package retention

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/worker"
)

type RetentionWorker struct {
	*worker.BaseWorker
	runRepo   repository.TrainRunRepository
	txManager repository.TxManager
	cfg       *config.RetentionConfig
}

func NewRetentionWorker(
	runRepo repository.TrainRunRepository,
	txManager repository.TxManager,
	cfg *config.RetentionConfig,
	logger *zap.Logger,
) *RetentionWorker {
	return &RetentionWorker{
		BaseWorker: worker.NewBaseWorker("run-retention", logger),
		runRepo:    runRepo,
		txManager:  txManager,
		cfg:        cfg,
	}
}

// Start sweeps once immediately, then on every tick until stopped.
func (w *RetentionWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.SweepInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.StopChan():
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep deletes runs past the retention window in one transaction. A failed
// sweep is logged and retried on the next tick.
func (w *RetentionWorker) sweep(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -w.cfg.RunRetentionDays)

	var purged int64
	err := w.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		purged, err = w.runRepo.DeleteOlderThan(ctx, cutoff)
		return err
	})
	if err != nil {
		w.Logger().Error("Retention sweep failed", zap.Error(err))
		return
	}

	if purged > 0 {
		w.Logger().Info("Retention sweep completed",
			zap.Int64("purged_runs", purged),
			zap.Time("cutoff", cutoff))
	}
}
