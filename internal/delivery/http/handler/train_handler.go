package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/delivery/http/middleware"
	"github.com/train-schedule-microservice/internal/pkg/utils"
	"github.com/train-schedule-microservice/internal/pkg/validator"
	"github.com/train-schedule-microservice/internal/usecase"
	"github.com/train-schedule-microservice/internal/usecase/dto"
)

type TrainHandler struct {
	trainUC *usecase.TrainUseCase
	runUC   *usecase.RunUseCase
	logger  *zap.Logger
}

func NewTrainHandler(trainUC *usecase.TrainUseCase, runUC *usecase.RunUseCase, logger *zap.Logger) *TrainHandler {
	return &TrainHandler{
		trainUC: trainUC,
		runUC:   runUC,
		logger:  logger,
	}
}

// List serves the train listing, optionally narrowed to a journey between
// two named stations (?fromStation=&toStation=).
func (h *TrainHandler) List(c *fiber.Ctx) error {
	var query dto.TrainListQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid query parameters"})
	}
	if err := validator.Validate(&query); err != nil {
		return utils.SendError(c, err)
	}

	trains, err := h.trainUC.List(c.Context(), middleware.Permissions(c), query)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trains, &utils.Meta{Total: len(trains)})
}

func (h *TrainHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid train id"})
	}

	train, err := h.trainUC.Get(c.Context(), middleware.Permissions(c), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, train, nil)
}

func (h *TrainHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTrainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	train, err := h.trainUC.Create(c.Context(), middleware.Permissions(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, train)
}

func (h *TrainHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid train id"})
	}

	var req dto.UpdateTrainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.trainUC.Update(c.Context(), middleware.Permissions(c), int64(id), req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"updated": true}, nil)
}

func (h *TrainHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid train id"})
	}

	if err := h.trainUC.Delete(c.Context(), middleware.Permissions(c), int64(id)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

func (h *TrainHandler) UpsertStop(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid train id"})
	}

	var req dto.UpsertStopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.trainUC.UpsertStop(c.Context(), middleware.Permissions(c), int64(id), req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"saved": true}, nil)
}

// RemoveFromLine drops the train's stops on one line; losing the last stop
// deletes the train itself.
func (h *TrainHandler) RemoveFromLine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid train id"})
	}
	lineID, err := c.ParamsInt("lineId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line id"})
	}

	if err := h.trainUC.RemoveFromLine(c.Context(), middleware.Permissions(c), int64(id), int64(lineID)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"removed": true}, nil)
}

func (h *TrainHandler) ListRuns(c *fiber.Ctx) error {
	var query dto.RunListQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid query parameters"})
	}
	if err := validator.Validate(&query); err != nil {
		return utils.SendError(c, err)
	}

	runs, err := h.trainUC.ListRuns(c.Context(), middleware.Permissions(c), query)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, runs, &utils.Meta{Total: len(runs)})
}

func (h *TrainHandler) RegisterRun(c *fiber.Ctx) error {
	var req dto.RegisterRunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	run, err := h.runUC.Register(c.Context(), middleware.Permissions(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, run)
}

func (h *TrainHandler) DeleteRun(c *fiber.Ctx) error {
	trainID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid train id"})
	}
	runID, err := c.ParamsInt("runId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid run id"})
	}

	if err := h.runUC.Delete(c.Context(), middleware.Permissions(c), int64(trainID), int64(runID)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
