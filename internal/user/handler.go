package user

import (
	"errors"
	"log"

	"github.com/rizkyab/partkatalog/internal/auth"
	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/response"
	"github.com/rizkyab/partkatalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListUsersHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	q := database.DB.Order("id")
	if hidden := hiddenRoles(claims.Role); len(hidden) > 0 {
		q = q.Where("role NOT IN ?", hidden)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		log.Printf("GET /api/users error: %v", err)
		return response.DBError(c)
	}

	return c.JSON(users)
}

func CreateUserHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	var body struct {
		Username string  `json:"username"`
		Password string  `json:"password"`
		Role     string  `json:"role"`
		Posisi   *string `json:"posisi"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Username == "" || body.Password == "" {
		return response.BadRequest(c)
	}

	role := body.Role
	if role == "" {
		role = models.RoleUser
	}
	if !canAssign(claims.Role, role) {
		return response.Forbidden(c)
	}

	var existing models.User
	if err := database.DB.Where("username = ?", body.Username).First(&existing).Error; err == nil {
		return response.Conflict(c)
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		log.Printf("POST /api/users hash error: %v", err)
		return response.DBError(c)
	}

	u := models.User{
		Username:     body.Username,
		PasswordHash: hash,
		Role:         role,
		Posisi:       body.Posisi,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Printf("POST /api/users error: %v", err)
		return response.DBError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
		"posisi":   u.Posisi,
	})
}

func UpdateUserHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c)
	}

	var body struct {
		Username *string `json:"username"`
		Role     *string `json:"role"`
		Password *string `json:"password"`
		Posisi   *string `json:"posisi"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Username == nil && body.Role == nil && body.Password == nil && body.Posisi == nil {
		return response.BadRequest(c)
	}

	var target models.User
	if err := database.DB.First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}

	if !canManage(claims.Role, target.Role) {
		return response.Forbidden(c)
	}
	if body.Role != nil && !canAssign(claims.Role, *body.Role) {
		return response.Forbidden(c)
	}

	updates := map[string]interface{}{}
	if body.Username != nil && *body.Username != "" {
		updates["username"] = *body.Username
	}
	if body.Role != nil {
		updates["role"] = *body.Role
	}
	if body.Posisi != nil {
		updates["posisi"] = *body.Posisi
	}

	var newHash string
	if body.Password != nil && *body.Password != "" {
		if newHash, err = utils.HashPassword(*body.Password); err != nil {
			log.Printf("PUT /api/users/%d hash error: %v", id, err)
			return response.DBError(c)
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if newHash != "" {
			// Credential rotation invalidates every session issued so far.
			return auth.ForceLogoutOnPasswordChange(tx, uint(id), newHash)
		}
		return nil
	})
	if err != nil {
		log.Printf("PUT /api/users/%d error: %v", id, err)
		return response.DBError(c)
	}

	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		return response.DBError(c)
	}
	return c.JSON(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
		"posisi":   u.Posisi,
	})
}

func DeleteUserHandler(c *fiber.Ctx) error {
	claims := auth.SessionFromCtx(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c)
	}
	if claims.UserID == uint(id) {
		return response.Err(c, fiber.StatusBadRequest, response.CodeCannotDeleteSelf)
	}

	var target models.User
	if err := database.DB.First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c)
		}
		return response.DBError(c)
	}

	if !canManage(claims.Role, target.Role) {
		return response.Forbidden(c)
	}

	if err := database.DB.Delete(&target).Error; err != nil {
		log.Printf("DELETE /api/users/%d error: %v", id, err)
		return response.DBError(c)
	}

	return response.OK(c)
}
