package estimate

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/rizkyab/partkatalog/internal/auth"
	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var sanitizer = bluemonday.StrictPolicy()

func canSeeAll(role string) bool {
	return role == models.RoleAdmin || role == models.RoleSuperadmin
}

// CreateEstimateHandler persists an estimate snapshot. The total is always
// recomputed from the lines; a client-supplied total is ignored.
func CreateEstimateHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	var body struct {
		Title string                `json:"title"`
		Items []models.EstimateItem `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Title == "" || len(body.Items) == 0 {
		return response.BadRequest(c)
	}

	var total float64
	for _, item := range body.Items {
		if item.Qty < 1 || item.Price < 0 {
			return response.BadRequest(c)
		}
		total += item.Price * float64(item.Qty)
	}

	raw, err := json.Marshal(body.Items)
	if err != nil {
		return response.BadRequest(c)
	}

	est := models.Estimate{
		Title:     sanitizer.Sanitize(body.Title),
		Items:     raw,
		Total:     total,
		CreatedBy: claims.UserID,
	}
	if err := database.DB.Create(&est).Error; err != nil {
		log.Printf("POST /api/estimates error: %v", err)
		return response.DBError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(est)
}

func ListEstimatesHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	q := database.DB.Order("id")
	if !canSeeAll(claims.Role) {
		q = q.Where("created_by = ?", claims.UserID)
	}

	var estimates []models.Estimate
	if err := q.Find(&estimates).Error; err != nil {
		log.Printf("GET /api/estimates error: %v", err)
		return response.DBError(c)
	}
	return c.JSON(estimates)
}

func GetEstimateHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c)
	}

	var est models.Estimate
	if err := database.DB.First(&est, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}
	if !canSeeAll(claims.Role) && est.CreatedBy != claims.UserID {
		return response.NotFound(c)
	}

	return c.JSON(est)
}

func DeleteEstimateHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c)
	}

	var est models.Estimate
	if err := database.DB.First(&est, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}
	if !canSeeAll(claims.Role) && est.CreatedBy != claims.UserID {
		return response.NotFound(c)
	}

	if err := database.DB.Delete(&est).Error; err != nil {
		log.Printf("DELETE /api/estimates/%d error: %v", id, err)
		return response.DBError(c)
	}

	return response.OK(c)
}
