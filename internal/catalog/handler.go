package catalog

import (
	"errors"
	"log"

	"github.com/rizkyab/partkatalog/internal/config"
	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sanitizer = bluemonday.StrictPolicy()

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) ListIllustrationsHandler(c *fiber.Ctx) error {
	var ills []models.Illustration
	if err := database.DB.Find(&ills).Error; err != nil {
		log.Printf("GET /api/illustrations error: %v", err)
		return response.DBError(c)
	}

	items := make([]Summary, 0, len(ills))
	for i := range ills {
		items = append(items, summarize(&ills[i]))
	}
	return c.JSON(items)
}

func (h *Handler) GetIllustrationHandler(c *fiber.Ctx) error {
	iid, err := c.ParamsInt("iid")
	if err != nil {
		return response.BadRequest(c)
	}

	var ill models.Illustration
	if err := database.DB.Where("iid = ?", iid).First(&ill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}

	detail, err := loadDetail(database.DB, &ill)
	if err != nil {
		log.Printf("GET /api/illustrations/iid/%d error: %v", iid, err)
		return response.DBError(c)
	}
	return c.JSON(detail)
}

// CatalogHandler returns every sheet with its full parts/hotspots graph in
// one response; the viewer client renders from this alone.
func (h *Handler) CatalogHandler(c *fiber.Ctx) error {
	var ills []models.Illustration
	if err := database.DB.Find(&ills).Error; err != nil {
		log.Printf("GET /api/catalog error: %v", err)
		return response.DBError(c)
	}

	details := make([]*Detail, 0, len(ills))
	for i := range ills {
		detail, err := loadDetail(database.DB, &ills[i])
		if err != nil {
			log.Printf("GET /api/catalog error: %v", err)
			return response.DBError(c)
		}
		details = append(details, detail)
	}
	return c.JSON(fiber.Map{"illustrations": details})
}

type illustrationBody struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Model      string  `json:"model"`
	Posisi     string  `json:"posisi"`
	NamaPosisi string  `json:"nama_posisi"`
	NoPosisi   string  `json:"no_posisi"`
	Image      string  `json:"image"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

func (h *Handler) CreateIllustrationHandler(c *fiber.Ctx) error {
	var body illustrationBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.ID == "" || body.Name == "" || body.Image == "" ||
		body.Width <= 0 || body.Height <= 0 || body.Posisi == "" {
		return response.BadRequest(c)
	}
	if !h.cfg.JenisValid(body.ID) {
		return response.Err(c, fiber.StatusBadRequest, response.CodeInvalidJenis)
	}
	if !h.cfg.PosisiValid(body.Posisi) {
		return response.Err(c, fiber.StatusBadRequest, response.CodeInvalidPosisi)
	}

	ill := models.Illustration{
		Jenis:      body.ID,
		Name:       body.Name,
		Model:      body.Model,
		Posisi:     body.Posisi,
		NamaPosisi: body.NamaPosisi,
		NoPosisi:   body.NoPosisi,
		Image:      body.Image,
		Width:      body.Width,
		Height:     body.Height,
	}
	if err := database.DB.Create(&ill).Error; err != nil {
		log.Printf("POST /api/illustrations error: %v", err)
		return response.DBError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(summarize(&ill))
}

func (h *Handler) UpdateIllustrationHandler(c *fiber.Ctx) error {
	iid, err := c.ParamsInt("iid")
	if err != nil {
		return response.BadRequest(c)
	}

	var body illustrationBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Name == "" || body.Image == "" ||
		body.Width <= 0 || body.Height <= 0 || body.Posisi == "" {
		return response.BadRequest(c)
	}
	if body.ID != "" && !h.cfg.JenisValid(body.ID) {
		return response.Err(c, fiber.StatusBadRequest, response.CodeInvalidJenis)
	}
	if !h.cfg.PosisiValid(body.Posisi) {
		return response.Err(c, fiber.StatusBadRequest, response.CodeInvalidPosisi)
	}

	var ill models.Illustration
	if err := database.DB.Where("iid = ?", iid).First(&ill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}

	if body.ID != "" {
		ill.Jenis = body.ID
	}
	ill.Name = body.Name
	ill.Model = body.Model
	ill.Posisi = body.Posisi
	ill.NamaPosisi = body.NamaPosisi
	ill.NoPosisi = body.NoPosisi
	ill.Image = body.Image
	ill.Width = body.Width
	ill.Height = body.Height

	if err := database.DB.Save(&ill).Error; err != nil {
		log.Printf("PUT /api/illustrations/iid/%d error: %v", iid, err)
		return response.DBError(c)
	}

	return c.JSON(summarize(&ill))
}

func (h *Handler) DeleteIllustrationHandler(c *fiber.Ctx) error {
	iid, err := c.ParamsInt("iid")
	if err != nil {
		return response.BadRequest(c)
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var ill models.Illustration
		if err := tx.Where("iid = ?", iid).First(&ill).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		if err := deleteHotspots(tx, ill.IID); err != nil {
			return err
		}
		if err := tx.Where("illustration_iid = ?", ill.IID).
			Delete(&models.IllustrationPart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ill).Error
	})
	if errors.Is(txErr, errNotFound) {
		return response.NotFound(c)
	}
	if txErr != nil {
		log.Printf("DELETE /api/illustrations/iid/%d error: %v", iid, txErr)
		return response.DBError(c)
	}

	return response.OK(c)
}

// ReplaceStructureHandler swaps the whole parts+hotspots graph of a sheet in
// one transaction; a failed batch leaves the previous graph intact.
func (h *Handler) ReplaceStructureHandler(c *fiber.Ctx) error {
	iid, err := c.ParamsInt("iid")
	if err != nil {
		return response.BadRequest(c)
	}

	var body struct {
		Parts    *structureParts     `json:"parts"`
		Hotspots *[]structureHotspot `json:"hotspots"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Parts == nil || body.Hotspots == nil {
		return response.BadRequest(c)
	}

	parts := *body.Parts
	for i := range parts {
		parts[i].Additional = sanitizer.Sanitize(parts[i].Additional)
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		return replaceStructure(tx, uint(iid), parts, *body.Hotspots)
	})
	if errors.Is(txErr, errNotFound) {
		return response.NotFound(c)
	}
	if txErr != nil {
		log.Printf("PUT /api/illustrations/iid/%d/structure error: %v", iid, txErr)
		return response.DBError(c)
	}

	return response.OK(c)
}

func (h *Handler) AddPartHandler(c *fiber.Ctx) error {
	iid, err := c.ParamsInt("iid")
	if err != nil {
		return response.BadRequest(c)
	}

	var body struct {
		PartID string   `json:"partId"`
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Price  *float64 `json:"price"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.PartID == "" || body.Code == "" || body.Name == "" || body.Price == nil {
		return response.BadRequest(c)
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var ill models.Illustration
		if err := tx.Where("iid = ?", iid).First(&ill).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		part := models.Part{ID: body.PartID, Code: body.Code, Name: body.Name, Price: *body.Price}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "name"}),
		}).Create(&part).Error; err != nil {
			return err
		}

		link := models.IllustrationPart{IllustrationIID: ill.IID, PartID: body.PartID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	})
	if errors.Is(txErr, errNotFound) {
		return response.NotFound(c)
	}
	if txErr != nil {
		log.Printf("POST /api/illustrations/iid/%d/parts error: %v", iid, txErr)
		return response.DBError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    body.PartID,
		"code":  body.Code,
		"name":  body.Name,
		"price": *body.Price,
	})
}

func (h *Handler) RemovePartHandler(c *fiber.Ctx) error {
	iid, err := c.ParamsInt("iid")
	if err != nil {
		return response.BadRequest(c)
	}
	pid := c.Params("pid")

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var ill models.Illustration
		if err := tx.Where("iid = ?", iid).First(&ill).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}
		return unlinkPart(tx, ill.IID, pid)
	})
	if errors.Is(txErr, errNotFound) {
		return response.NotFound(c)
	}
	if txErr != nil {
		log.Printf("DELETE /api/illustrations/iid/%d/parts/%s error: %v", iid, pid, txErr)
		return response.DBError(c)
	}

	return response.OK(c)
}
