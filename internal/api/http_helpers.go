package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/models"
	"github.com/terraincognita07/intakedesk/internal/services"
	"go.uber.org/zap"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Could not validate credentials"
	msgInternal         = "internal server error"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apiError(c, fiber.StatusUnauthorized, message)
}

// respondServiceError maps service error kinds to status codes. Unknown
// errors are logged and answered with a generic 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return unauthorized(c, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrMissingCredentials):
		return unauthorized(c, msgNotAuthenticated)
	case errors.Is(err, services.ErrUnauthenticated):
		return unauthorized(c, msgInvalidToken)
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("route", c.Route().Path),
	}
	if user, ok := currentUser(c); ok {
		fields = append(fields, zap.Uint("user_id", user.ID))
	}
	handler.logger.Error("request failed", fields...)
	return apiError(c, fiber.StatusInternalServerError, msgInternal)
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(contextUserKey).(models.User)
	return user, ok
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
