package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/services"
)

func (handler *Handler) UpsertProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	profile, err := handler.profileService.Upsert(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newProfileView(profile))
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	profile, err := handler.profileService.Get(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newProfileView(profile))
}
