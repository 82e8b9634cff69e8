package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/pkg/utils"
	"github.com/train-schedule-microservice/internal/usecase"
)

const (
	// LocalsUser holds the authenticated *domain.User.
	LocalsUser = "auth_user"
	// LocalsPermissions holds the request's *access.PermissionModel.
	LocalsPermissions = "auth_permissions"
)

// Auth validates the bearer token, loads the user with their role and builds
// the immutable permission model for the request. Handlers downstream only
// read it.
func Auth(userUC *usecase.UserUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		user, err := userUC.Authenticate(c.Context(), token)
		if err != nil {
			return utils.SendError(c, err)
		}

		model := access.ForUser(user)
		if model == nil {
			return utils.SendError(c, errors.ErrForbidden)
		}

		c.Locals(LocalsUser, user)
		c.Locals(LocalsPermissions, model)
		return c.Next()
	}
}

// Permissions reads the model stashed by Auth; nil when the route skipped it.
func Permissions(c *fiber.Ctx) *access.PermissionModel {
	model, _ := c.Locals(LocalsPermissions).(*access.PermissionModel)
	return model
}
