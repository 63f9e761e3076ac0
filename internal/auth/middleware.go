package auth

import (
	"errors"
	"log"

	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/response"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session_claims"

// RequireAuth validates the session cookie on every request: signature and
// TTL from the token itself, watermark and password revision from the store.
// On success the decoded claims are attached to the request context and the
// activity stamp is refreshed in the background.
func (s *Service) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return response.Unauthorized(c)
		}

		claims, err := s.ParseSession(token)
		if err != nil {
			return response.Unauthorized(c)
		}

		if err := s.CheckRevocation(claims); err != nil {
			if !errors.Is(err, ErrSessionRevoked) {
				log.Printf("session re-check failed for user %d: %v", claims.UserID, err)
			}
			s.clearSessionCookie(c)
			return response.Unauthorized(c)
		}

		go TouchActivity(claims.UserID)

		c.Locals(sessionLocalsKey, claims)
		return c.Next()
	}
}

// RequireAdmin gates administrative endpoints; it must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := SessionFromCtx(c)
		if claims == nil {
			return response.Unauthorized(c)
		}
		if claims.Role != models.RoleAdmin && claims.Role != models.RoleSuperadmin {
			return response.Forbidden(c)
		}
		return c.Next()
	}
}

// SessionFromCtx returns the claims attached by RequireAuth, or nil.
func SessionFromCtx(c *fiber.Ctx) *SessionClaims {
	claims, _ := c.Locals(sessionLocalsKey).(*SessionClaims)
	return claims
}
