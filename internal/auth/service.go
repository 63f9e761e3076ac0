package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rizkyab/partkatalog/internal/config"
	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExpired        = errors.New("user account expired")
	ErrActiveElsewhere    = errors.New("user active on another device")
	ErrSessionRevoked     = errors.New("session revoked")
)

// Service is the session authority: it issues session tokens on login and
// decides on every request whether a presented token is still honored.
type Service struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Login validates credentials and the single-device policy, stamps the
// activity timestamp and returns the user together with a signed session
// token.
func (s *Service) Login(username, password string) (*models.User, string, error) {
	var u models.User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	now := time.Now()
	if u.ExpiredAt != nil && u.ExpiredAt.Before(now) {
		return nil, "", ErrUserExpired
	}

	if lastActive := effectiveActivity(&u); lastActive != nil {
		diff := now.Sub(*lastActive)
		if diff >= 0 && diff < DeviceLockWindow {
			return nil, "", ErrActiveElsewhere
		}
	}

	if !utils.CheckPasswordHash(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", u.ID).
		Update("last_activity_at", now).Error; err != nil {
		return nil, "", err
	}

	token, err := s.signSession(&u, now)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// effectiveActivity returns the activity timestamp the device-lock check
// should honor. A logout-all watermark at or after the last activity
// neutralizes it: an administrative forced logout always wins over a stale
// activity stamp.
func effectiveActivity(u *models.User) *time.Time {
	if u.LastActivityAt == nil {
		return nil
	}
	if u.LogoutAllAt != nil && !u.LogoutAllAt.Before(*u.LastActivityAt) {
		return nil
	}
	return u.LastActivityAt
}

func (s *Service) signSession(u *models.User, now time.Time) (string, error) {
	claims := SessionClaims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		Posisi:   u.Posisi,
		Rev:      u.PasswordRev,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseSession verifies the signature and TTL of a session token.
func (s *Service) ParseSession(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// CheckRevocation re-reads the two invalidation signals from the credential
// store. A token issued at or before the logout-all watermark, or carrying a
// stale password revision, is no longer honored. Every validation pays this
// read so that password changes from another session take effect on the very
// next request.
func (s *Service) CheckRevocation(claims *SessionClaims) error {
	var u models.User
	if err := database.DB.Select("logout_all_at", "password_rev").
		First(&u, claims.UserID).Error; err != nil {
		return err
	}
	if u.LogoutAllAt != nil && claims.IssuedAt != nil &&
		!claims.IssuedAt.Time.After(*u.LogoutAllAt) {
		return ErrSessionRevoked
	}
	if u.PasswordRev != claims.Rev {
		return ErrSessionRevoked
	}
	return nil
}

// TouchActivity refreshes the device-lock timestamp. Failures only weaken
// future device-lock checks, never the current request, so they are logged
// and dropped.
func TouchActivity(userID uint) {
	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("last_activity_at", time.Now()).Error; err != nil {
		log.Printf("failed to refresh activity for user %d: %v", userID, err)
	}
}

func ClearActivity(userID uint) error {
	return database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("last_activity_at", nil).Error
}

// ForceLogoutOnPasswordChange persists the new hash and advances the
// invalidation signals in one statement: every session issued before this
// instant fails its next validation and a fresh login is required.
func ForceLogoutOnPasswordChange(db *gorm.DB, userID uint, newHash string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":    newHash,
			"logout_all_at":    time.Now(),
			"last_activity_at": nil,
			"password_rev":     gorm.Expr("password_rev + 1"),
		}).Error
}
