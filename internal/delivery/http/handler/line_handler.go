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

type LineHandler struct {
	lineUC *usecase.LineUseCase
	logger *zap.Logger
}

func NewLineHandler(lineUC *usecase.LineUseCase, logger *zap.Logger) *LineHandler {
	return &LineHandler{
		lineUC: lineUC,
		logger: logger,
	}
}

func (h *LineHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	line, err := h.lineUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, line)
}

func (h *LineHandler) List(c *fiber.Ctx) error {
	lines, err := h.lineUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, lines, &utils.Meta{Total: len(lines)})
}

func (h *LineHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line id"})
	}

	line, err := h.lineUC.Get(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, line, nil)
}

func (h *LineHandler) GetStations(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line id"})
	}

	stations, err := h.lineUC.GetStations(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

func (h *LineHandler) GetTrains(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line id"})
	}

	trains, err := h.lineUC.GetTrains(c.Context(), middleware.Permissions(c), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trains, &utils.Meta{Total: len(trains)})
}

func (h *LineHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line id"})
	}

	var req dto.UpdateLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.lineUC.Update(c.Context(), int64(id), req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"updated": true}, nil)
}

func (h *LineHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid line id"})
	}

	if err := h.lineUC.Delete(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
