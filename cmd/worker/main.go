package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/pkg/logger"
	"github.com/train-schedule-microservice/internal/repository/postgres"
	"github.com/train-schedule-microservice/internal/worker"
	"github.com/train-schedule-microservice/internal/worker/retention"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Train Schedule Worker")
	log.Info("Configuration loaded",
		zap.Int("run_retention_days", cfg.Retention.RunRetentionDays),
		zap.Duration("sweep_interval", cfg.Retention.SweepInterval))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and workers
	txManager := postgres.NewTxManager(db)
	runRepo := postgres.NewTrainRunRepository(db)

	manager := worker.NewManager(log)
	manager.Register(retention.NewRetentionWorker(runRepo, txManager, &cfg.Retention, log))

	// 5. Run until a shutdown signal arrives
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")
	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown failed", zap.Error(err))
	}

	log.Info("Worker stopped")
}
