package part

import (
	"errors"
	"log"

	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sanitizer = bluemonday.StrictPolicy()

func ListPartsHandler(c *fiber.Ctx) error {
	var parts []models.Part
	if err := database.DB.Order("code").Find(&parts).Error; err != nil {
		log.Printf("GET /api/parts error: %v", err)
		return response.DBError(c)
	}
	return c.JSON(parts)
}

type partBody struct {
	ID         string   `json:"id"`
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price"`
	Additional string   `json:"additional"`
}

// CreatePartHandler upserts: re-posting a known part id updates it in place,
// which is how the editor bulk-imports part lists.
func CreatePartHandler(c *fiber.Ctx) error {
	var body partBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.ID == "" || body.Code == "" || body.Name == "" || body.Price == nil {
		return response.BadRequest(c)
	}

	p := models.Part{
		ID:         body.ID,
		Code:       body.Code,
		Name:       body.Name,
		Price:      *body.Price,
		Additional: sanitizer.Sanitize(body.Additional),
	}
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "name", "price", "additional"}),
	}).Create(&p).Error; err != nil {
		log.Printf("POST /api/parts error: %v", err)
		return response.DBError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func UpdatePartHandler(c *fiber.Ctx) error {
	id := c.Params("id")

	var body partBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Code == "" || body.Name == "" || body.Price == nil {
		return response.BadRequest(c)
	}

	var p models.Part
	if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}

	p.Code = body.Code
	p.Name = body.Name
	p.Price = *body.Price
	p.Additional = sanitizer.Sanitize(body.Additional)

	if err := database.DB.Save(&p).Error; err != nil {
		log.Printf("PUT /api/parts/%s error: %v", id, err)
		return response.DBError(c)
	}

	return c.JSON(p)
}

func DeletePartHandler(c *fiber.Ctx) error {
	id := c.Params("id")

	res := database.DB.Delete(&models.Part{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("DELETE /api/parts/%s error: %v", id, res.Error)
		return response.DBError(c)
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c)
	}

	return response.OK(c)
}
