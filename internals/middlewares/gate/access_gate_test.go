package gate

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinchonkinder_backend/internals/constants"
)

const testSecret = "test-secret"

func newGatedApp() *fiber.App {
	app := fiber.New()
	app.Use(AccessGate(Options{Secret: testSecret}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("home") })
	app.Get("/news", func(c *fiber.Ctx) error { return c.SendString("news") })
	app.Get("/admin/news", func(c *fiber.Ctx) error { return c.SendString("admin") })
	app.Get("/parents", func(c *fiber.Ctx) error { return c.SendString("parents") })
	return app
}

func signTestToken(t *testing.T, role, status string) string {
	t.Helper()
	token, err := SignSessionToken(testSecret, uuid.New(), role, status)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGatePublicPathsUntouched(t *testing.T) {
	app := newGatedApp()

	for _, path := range []string{"/", "/news"} {
		resp := doRequest(t, app, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestGateAdminWithoutTokenRedirectsToLogin(t *testing.T) {
	app := newGatedApp()

	resp := doRequest(t, app, "/admin/news", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/member/login?redirect=%2Fadmin%2Fnews", resp.Header.Get("Location"))
}

func TestGateAdminRedirectKeepsExistingRedirectParam(t *testing.T) {
	app := newGatedApp()

	resp := doRequest(t, app, "/admin/news?redirect=%2Fadmin%2Fmembers", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/member/login?redirect=%2Fadmin%2Fmembers", resp.Header.Get("Location"))
}

func TestGateParentRoleCannotEnterAdmin(t *testing.T) {
	app := newGatedApp()
	token := signTestToken(t, constants.RoleParent, constants.StatusActive)

	resp := doRequest(t, app, "/admin/news", token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestGateAdminRoleAllowed(t *testing.T) {
	app := newGatedApp()
	token := signTestToken(t, constants.RoleAdmin, constants.StatusActive)

	resp := doRequest(t, app, "/admin/news", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateParentsWithoutTokenRedirectsToLogin(t *testing.T) {
	app := newGatedApp()

	resp := doRequest(t, app, "/parents", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/member/login?redirect=%2Fparents", resp.Header.Get("Location"))
}

func TestGatePendingParentRedirectsWithStatus(t *testing.T) {
	app := newGatedApp()
	token := signTestToken(t, constants.RoleParent, constants.StatusPending)

	resp := doRequest(t, app, "/parents", token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/member/login?status=pending", resp.Header.Get("Location"))
}

func TestGateActiveParentAllowed(t *testing.T) {
	app := newGatedApp()
	token := signTestToken(t, constants.RoleParent, constants.StatusActive)

	resp := doRequest(t, app, "/parents", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateMalformedTokenTreatedAsAnonymous(t *testing.T) {
	app := newGatedApp()

	resp := doRequest(t, app, "/parents", "not-a-jwt")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/member/login?redirect=%2Fparents", resp.Header.Get("Location"))
}

func TestGateExpiredTokenTreatedAsAnonymous(t *testing.T) {
	app := newGatedApp()

	claims := SessionClaims{
		Role:   constants.RoleAdmin,
		Status: constants.StatusActive,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin/news", token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/member/login?redirect=%2Fadmin%2Fnews", resp.Header.Get("Location"))
}

func TestGateWrongSecretRejected(t *testing.T) {
	app := newGatedApp()

	token, err := SignSessionToken("other-secret", uuid.New(), constants.RoleAdmin, constants.StatusActive)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin/news", token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestGateBearerHeaderFallback(t *testing.T) {
	app := newGatedApp()
	token := signTestToken(t, constants.RoleAdmin, constants.StatusActive)

	req := httptest.NewRequest(http.MethodGet, "/admin/news", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
