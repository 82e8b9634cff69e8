package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/config"
	"github.com/train-schedule-microservice/internal/delivery/http/handler"
	"github.com/train-schedule-microservice/internal/delivery/http/middleware"
	"github.com/train-schedule-microservice/internal/usecase"
)

type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	userUC *usecase.UserUseCase

	// Handlers
	userHandler      *handler.UserHandler
	stationHandler   *handler.StationHandler
	lineHandler      *handler.LineHandler
	trainHandler     *handler.TrainHandler
	referenceHandler *handler.ReferenceHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	userUC *usecase.UserUseCase,
	userHandler *handler.UserHandler,
	stationHandler *handler.StationHandler,
	lineHandler *handler.LineHandler,
	trainHandler *handler.TrainHandler,
	referenceHandler *handler.ReferenceHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Train Schedule Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		userUC:           userUC,
		userHandler:      userHandler,
		stationHandler:   stationHandler,
		lineHandler:      lineHandler,
		trainHandler:     trainHandler,
		referenceHandler: referenceHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public routes
	api.Post("/login", s.userHandler.Login)
	api.Post("/users", s.userHandler.Create)

	// Everything below requires a bearer token
	auth := api.Group("", middleware.Auth(s.userUC))

	// Users
	auth.Get("/users", s.userHandler.List)
	auth.Put("/users/:id", s.userHandler.Update)
	auth.Delete("/users/:id", s.userHandler.Delete)

	// Stations
	auth.Post("/stations", s.stationHandler.Create)
	auth.Get("/stations", s.stationHandler.List)
	auth.Get("/stations/:id", s.stationHandler.Get)
	auth.Put("/stations/:id", s.stationHandler.Update)
	auth.Put("/stations/:id/order", s.stationHandler.UpdateOrder)
	auth.Delete("/stations/:id", s.stationHandler.Delete)
	auth.Delete("/stations/:id/line", s.stationHandler.Detach)

	// Lines
	auth.Post("/lines", s.lineHandler.Create)
	auth.Get("/lines", s.lineHandler.List)
	auth.Get("/lines/:id", s.lineHandler.Get)
	auth.Get("/lines/:id/stations", s.lineHandler.GetStations)
	auth.Get("/lines/:id/trains", s.lineHandler.GetTrains)
	auth.Put("/lines/:id", s.lineHandler.Update)
	auth.Delete("/lines/:id", s.lineHandler.Delete)

	// Trains and timetable
	auth.Get("/trains", s.trainHandler.List)
	auth.Get("/trains/:id", s.trainHandler.Get)
	auth.Post("/trains", s.trainHandler.Create)
	auth.Put("/trains/:id", s.trainHandler.Update)
	auth.Delete("/trains/:id", s.trainHandler.Delete)
	auth.Put("/trains/:id/stops", s.trainHandler.UpsertStop)
	auth.Delete("/trains/:id/lines/:lineId", s.trainHandler.RemoveFromLine)

	// Train runs and escorts
	auth.Get("/runs", s.trainHandler.ListRuns)
	auth.Post("/runs", s.trainHandler.RegisterRun)
	auth.Delete("/trains/:id/runs/:runId", s.trainHandler.DeleteRun)

	// Reference listings
	auth.Get("/ranks", s.referenceHandler.ListRanks)
	auth.Get("/police-departments", s.referenceHandler.ListDepartments)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
