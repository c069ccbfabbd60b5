package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/services"
)

type appointmentRequest struct {
	AppointmentDate string  `json:"appointment_date"`
	AppointmentType string  `json:"appointment_type"`
	Notes           *string `json:"notes"`
}

func (request appointmentRequest) input() services.AppointmentInput {
	return services.AppointmentInput{
		AppointmentDate: request.AppointmentDate,
		AppointmentType: request.AppointmentType,
		Notes:           request.Notes,
	}
}

func (handler *Handler) BookAppointment(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var request appointmentRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	appointment, err := handler.appointmentService.Book(user.ID, request.input())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newAppointmentView(appointment))
}

func (handler *Handler) ListAppointments(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	appointments, err := handler.appointmentService.List(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newAppointmentViews(appointments))
}

func (handler *Handler) GetAppointment(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.respondServiceError(c, services.ErrAppointmentNotFound)
	}

	appointment, err := handler.appointmentService.Get(user.ID, appointmentID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newAppointmentView(appointment))
}

func (handler *Handler) UpdateAppointment(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.respondServiceError(c, services.ErrAppointmentNotFound)
	}

	var request appointmentRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	appointment, err := handler.appointmentService.Update(user.ID, appointmentID, request.input())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newAppointmentView(appointment))
}

func (handler *Handler) CancelAppointment(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.respondServiceError(c, services.ErrAppointmentNotFound)
	}

	if err := handler.appointmentService.Cancel(user.ID, appointmentID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Appointment cancelled successfully"})
}
