package gate

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sinchonkinder_backend/internals/constants"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
)

// Protected path prefixes. Everything else passes untouched.
const (
	adminPrefix   = "/admin"
	parentsPrefix = "/parents"
	loginPath     = "/member/login"
)

type Options struct {
	Secret string
}

// AccessGate decides allow/redirect for every request hitting a protected
// prefix. It is stateless: the session token is decoded fresh per request and
// a malformed or expired token is treated exactly like no token at all.
func AccessGate(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, authed := parseSession(c, opt.Secret)
		if authed {
			c.Locals(helperAuth.LocalsUserID, claims.Subject)
			c.Locals(helperAuth.LocalsRole, claims.Role)
			c.Locals(helperAuth.LocalsStatus, claims.Status)
		}

		path := c.Path()
		switch {
		case strings.HasPrefix(path, adminPrefix):
			if !authed {
				return redirectToLogin(c)
			}
			if claims.Role != constants.RoleAdmin {
				return c.Redirect("/", fiber.StatusFound)
			}
		case strings.HasPrefix(path, parentsPrefix):
			if !authed {
				return redirectToLogin(c)
			}
			if claims.Status != constants.StatusActive {
				status := claims.Status
				if status == "" {
					status = constants.StatusPending
				}
				return c.Redirect(loginPath+"?status="+url.QueryEscape(status), fiber.StatusFound)
			}
		}

		return c.Next()
	}
}

func redirectToLogin(c *fiber.Ctx) error {
	redirect := strings.TrimSpace(c.Query("redirect"))
	if redirect == "" {
		redirect = c.Path()
	}
	return c.Redirect(loginPath+"?redirect="+url.QueryEscape(redirect), fiber.StatusFound)
}

func parseSession(c *fiber.Ctx, secret string) (*SessionClaims, bool) {
	raw := sessionTokenFromRequest(c)
	if raw == "" || secret == "" {
		return nil, false
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, false
	}
	return claims, true
}

func sessionTokenFromRequest(c *fiber.Ctx) string {
	if raw := strings.TrimSpace(c.Cookies(SessionCookieName(c.Secure()))); raw != "" {
		return raw
	}
	// The non-prefixed cookie can still arrive on a TLS request that came in
	// through a plain-HTTP proxy hop.
	if raw := strings.TrimSpace(c.Cookies(CookieName)); raw != "" {
		return raw
	}
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
