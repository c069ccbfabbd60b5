package api

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/services"
)

func (handler *Handler) UploadRadiograph(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	content, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	radiograph, err := handler.radiographService.Upload(user.ID, services.UploadInput{
		Content:      content,
		ContentType:  fileHeader.Header.Get(fiber.HeaderContentType),
		OriginalName: fileHeader.Filename,
		Description:  uploadDescription(c),
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "File uploaded successfully",
		"id":       radiograph.ID,
		"filename": radiograph.Filename,
	})
}

// uploadDescription reads the optional description from the form, falling
// back to the query string.
func uploadDescription(c *fiber.Ctx) *string {
	description := strings.TrimSpace(c.FormValue("description"))
	if description == "" {
		description = strings.TrimSpace(c.Query("description"))
	}
	if description == "" {
		return nil
	}
	return &description
}

func (handler *Handler) ListRadiographs(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	radiographs, err := handler.radiographService.List(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newRadiographViews(radiographs))
}

func (handler *Handler) DownloadRadiograph(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	radiographID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.respondServiceError(c, services.ErrRadiographNotFound)
	}

	radiograph, reader, err := handler.radiographService.Open(user.ID, radiographID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	c.Attachment(radiograph.OriginalFilename)
	return c.SendStream(reader, int(radiograph.FileSize))
}
