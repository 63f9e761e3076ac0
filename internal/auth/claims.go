package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "session"

	// SessionTTL is the absolute lifetime of a session cookie.
	SessionTTL = 7 * 24 * time.Hour

	// DeviceLockWindow is the interval after a login (or any authenticated
	// request) during which a second login for the same account is refused.
	DeviceLockWindow = 15 * time.Minute
)

// SessionClaims is the payload of a session token. Role, Posisi and Rev are
// copied from the user row at issue time so that most requests need no user
// lookup; Rev and the issue time are still re-checked against the store on
// every request (see Service.CheckRevocation).
type SessionClaims struct {
	UserID   uint    `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Posisi   *string `json:"posisi"`
	Rev      int     `json:"rev"`
	jwt.RegisteredClaims
}
