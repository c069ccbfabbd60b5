package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/services"
)

type registerRequest struct {
	Email     string  `json:"email" form:"email"`
	Password  string  `json:"password" form:"password"`
	FirstName string  `json:"first_name" form:"first_name"`
	LastName  string  `json:"last_name" form:"last_name"`
	Phone     *string `json:"phone" form:"phone"`
}

// loginRequest also accepts the OAuth2 password form, which names the email "username".
type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(services.RegistrationInput{
		Email:     request.Email,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newUserView(user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email := request.Email
	if strings.TrimSpace(email) == "" {
		email = request.Username
	}

	token, _, err := handler.authService.Login(email, request.Password)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(tokenView{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt.UTC(),
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthorized(c, msgNotAuthenticated)
	}
	return c.JSON(newUserView(user))
}
