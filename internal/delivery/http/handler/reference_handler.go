package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/pkg/utils"
	"github.com/train-schedule-microservice/internal/usecase"
)

// ReferenceHandler serves the rank and department listings.
type ReferenceHandler struct {
	referenceUC *usecase.ReferenceUseCase
	logger      *zap.Logger
}

func NewReferenceHandler(referenceUC *usecase.ReferenceUseCase, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUC: referenceUC,
		logger:      logger,
	}
}

func (h *ReferenceHandler) ListRanks(c *fiber.Ctx) error {
	ranks, err := h.referenceUC.ListRanks(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, ranks, &utils.Meta{Total: len(ranks)})
}

func (h *ReferenceHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.referenceUC.ListDepartments(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, departments, &utils.Meta{Total: len(departments)})
}
