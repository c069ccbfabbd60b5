package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// multipartOverhead leaves room for form boundaries and fields around the file.
const multipartOverhead = 1024 * 1024

type AppConfig struct {
	AppName        string
	MaxUploadBytes int
	CORSOrigins    string
	FrontendDir    string
	AccessLog      bool
}

func NewApp(handler *Handler, config AppConfig) *fiber.App {
	appName := config.AppName
	if appName == "" {
		appName = "intakedesk"
	}
	bodyLimit := fiber.DefaultBodyLimit
	if config.MaxUploadBytes > 0 {
		bodyLimit = config.MaxUploadBytes + multipartOverhead
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          errorHandler(handler.logger),
	})

	app.Use(recover.New())
	if config.AccessLog {
		app.Use(logger.New())
	}
	app.Use(corsMiddleware(config.CORSOrigins))

	if dir := strings.TrimSpace(config.FrontendDir); dir != "" {
		app.Static("/frontend", dir, fiber.Static{Index: "index.html"})
		app.Get("/", func(c *fiber.Ctx) error {
			return c.Redirect("/frontend/", fiber.StatusTemporaryRedirect)
		})
	}

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func corsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: false,
	})
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return apiError(c, fiberErr.Code, fiberErr.Message)
		}
		log.Error("unhandled request error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return apiError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
