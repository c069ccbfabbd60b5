package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	auth := app.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	patients := app.Group("/patients", handler.AuthRequired)
	patients.Post("/profile", handler.UpsertProfile)
	patients.Get("/profile", handler.GetProfile)
	patients.Post("/radiographs/upload", handler.UploadRadiograph)
	patients.Get("/radiographs", handler.ListRadiographs)
	patients.Get("/radiographs/:id", handler.DownloadRadiograph)

	appointments := app.Group("/appointments", handler.AuthRequired)
	appointments.Post("/", handler.BookAppointment)
	appointments.Get("/", handler.ListAppointments)
	appointments.Get("/:id", handler.GetAppointment)
	appointments.Put("/:id", handler.UpdateAppointment)
	appointments.Delete("/:id", handler.CancelAppointment)
}
