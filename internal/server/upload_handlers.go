package server

import (
	"devswipe/internal/models"
	"devswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/upload
// @Summary Upload a file
// @Description Images, PDF, plain text and zip archives. Returns the public URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to store"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} models.ErrorResponse
// @Router /upload [post]
func (s *Server) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	res, err := s.uploadService.Upload(c.UserContext(), service.UploadInput{
		UserID:   callerID(c),
		Filename: file.Filename,
		Size:     file.Size,
		Reader:   src,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
