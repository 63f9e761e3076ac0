package models

import (
	"time"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
	RolePartshop   = "partshop"
)

// User is the credential store record. LastActivityAt, LogoutAllAt and
// PasswordRev together drive session invalidation: a token is honored only
// while its issue time is after LogoutAllAt and its embedded revision equals
// PasswordRev.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash   string     `gorm:"size:255" json:"-"`
	Role           string     `gorm:"size:20;default:'user'" json:"role"`
	Posisi         *string    `gorm:"size:50" json:"posisi"`
	ExpiredAt      *time.Time `json:"expired_at,omitempty"`
	LastActivityAt *time.Time `json:"-"`
	LogoutAllAt    *time.Time `json:"-"`
	PasswordRev    int        `gorm:"not null;default:0" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`
}
