package upload

import (
	"log"

	"github.com/rizkyab/partkatalog/internal/response"
	"github.com/rizkyab/partkatalog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts one multipart file under the "file" field and
// returns the public path it is served at.
func UploadHandler(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Err(c, fiber.StatusBadRequest, response.CodeNoFile)
	}

	path, err := utils.UploadFile(file)
	if err != nil {
		log.Printf("POST /api/upload error: %v", err)
		return response.Err(c, fiber.StatusInternalServerError, response.CodeUploadFailed)
	}

	return c.JSON(fiber.Map{"path": path})
}
