package gate

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	CookieName       = "session_token"
	SecureCookieName = "__Secure-session_token"

	SessionTTL = 24 * time.Hour
)

// SessionClaims is the whole session payload: the gate never loads the user
// row, it trusts the signed role/status claims.
type SessionClaims struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

func SessionCookieName(secure bool) string {
	if secure {
		return SecureCookieName
	}
	return CookieName
}

// SignSessionToken issues the HS256 session token set at login.
func SignSessionToken(secret string, userID uuid.UUID, role, status string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role:   role,
		Status: status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SetSessionCookie writes the session cookie, switching to the __Secure-
// prefixed name over TLS.
func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName(c.Secure()),
		Value:    token,
		Expires:  time.Now().Add(SessionTTL),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearSessionCookie expires both cookie variants.
func ClearSessionCookie(c *fiber.Ctx) {
	for _, name := range []string{CookieName, SecureCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   c.Secure(),
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
	}
}
