package auth

import (
	"errors"
	"log"
	"time"

	"github.com/rizkyab/partkatalog/internal/response"

	"github.com/gofiber/fiber/v2"
)

func (s *Service) LoginHandler(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c)
	}
	if body.Username == "" || body.Password == "" {
		return response.BadRequest(c)
	}

	u, token, err := s.Login(body.Username, body.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return response.Err(c, fiber.StatusUnauthorized, response.CodeInvalidCredentials)
	case errors.Is(err, ErrUserExpired):
		// 401 rather than 403: the frontend switches on the body code.
		return response.Err(c, fiber.StatusUnauthorized, response.CodeUserExpired)
	case errors.Is(err, ErrActiveElsewhere):
		return response.Err(c, fiber.StatusForbidden, response.CodeUserActiveElsewhere)
	case err != nil:
		log.Printf("POST /api/login error: %v", err)
		return response.DBError(c)
	}

	s.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"role":     u.Role,
		"posisi":   u.Posisi,
	})
}

// MeHandler echoes the decoded token claims attached by RequireAuth.
func (s *Service) MeHandler(c *fiber.Ctx) error {
	claims := SessionFromCtx(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	return c.JSON(claims)
}

// LogoutHandler clears the activity stamp and the cookie. An invalid or
// missing token is tolerated: logout always succeeds.
func (s *Service) LogoutHandler(c *fiber.Ctx) error {
	if token := c.Cookies(SessionCookieName); token != "" {
		if claims, err := s.ParseSession(token); err == nil {
			if err := ClearActivity(claims.UserID); err != nil {
				log.Printf("logout: failed to clear activity for user %d: %v", claims.UserID, err)
			}
		}
	}

	s.clearSessionCookie(c)
	return response.OK(c)
}

func (s *Service) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Service) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.cfg.Production(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
