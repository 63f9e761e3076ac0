package user

import (
	"fmt"
	"os"

	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/utils"
)

// SeedDefaultAccounts creates the bootstrap admin and superadmin accounts
// when they do not exist yet, so a fresh deployment is reachable.
func SeedDefaultAccounts() error {
	accounts := []struct {
		userEnv, passEnv, defUser, defPass, role string
	}{
		{"ADMIN_USER", "ADMIN_PASSWORD", "admin", "admin123", models.RoleAdmin},
		{"SUPERADMIN_USER", "SUPERADMIN_PASSWORD", "superadmin", "superadmin123", models.RoleSuperadmin},
	}

	for _, a := range accounts {
		username := os.Getenv(a.userEnv)
		if username == "" {
			username = a.defUser
		}
		password := os.Getenv(a.passEnv)
		if password == "" {
			password = a.defPass
		}

		var existing models.User
		if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
			continue
		}

		hash, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %v", username, err)
		}
		u := models.User{Username: username, PasswordHash: hash, Role: a.role}
		if err := database.DB.Create(&u).Error; err != nil {
			return fmt.Errorf("failed to seed account %s: %v", username, err)
		}
	}

	return nil
}
