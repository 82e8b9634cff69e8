package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/config"
	httpDelivery "github.com/train-schedule-microservice/internal/delivery/http"
	"github.com/train-schedule-microservice/internal/delivery/http/handler"
	"github.com/train-schedule-microservice/internal/pkg/logger"
	"github.com/train-schedule-microservice/internal/repository/cache"
	"github.com/train-schedule-microservice/internal/repository/postgres"
	"github.com/train-schedule-microservice/internal/usecase"
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

	log.Info("Starting Train Schedule Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	txManager := postgres.NewTxManager(db)
	stationRepo := postgres.NewStationRepository(db)
	lineRepo := postgres.NewLineRepository(db)
	trainRepo := postgres.NewTrainRepository(db)
	runRepo := postgres.NewTrainRunRepository(db)
	rankRepo := postgres.NewRankRepository(db)
	deptRepo := postgres.NewPoliceDepartmentRepository(db)
	personRepo := postgres.NewPolicePersonRepository(db)
	userRepo := postgres.NewUserRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, &cfg.Auth, log)
	stationUC := usecase.NewStationUseCase(stationRepo, cacheRepo, txManager, &cfg.Cache, log)
	lineUC := usecase.NewLineUseCase(lineRepo, trainRepo, cacheRepo, &cfg.Cache, log)
	trainUC := usecase.NewTrainUseCase(trainRepo, stationRepo, txManager, log)
	runUC := usecase.NewRunUseCase(runRepo, trainRepo, rankRepo, deptRepo, personRepo, txManager, log)
	referenceUC := usecase.NewReferenceUseCase(rankRepo, deptRepo)

	// 8. Initialize handlers
	userHandler := handler.NewUserHandler(userUC, log)
	stationHandler := handler.NewStationHandler(stationUC, log)
	lineHandler := handler.NewLineHandler(lineUC, log)
	trainHandler := handler.NewTrainHandler(trainUC, runUC, log)
	referenceHandler := handler.NewReferenceHandler(referenceUC, log)

	// 9. Start HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		userUC,
		userHandler,
		stationHandler,
		lineHandler,
		trainHandler,
		referenceHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 10. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
