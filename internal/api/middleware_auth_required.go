package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authService.ResolveBearer(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
