package controller

import (
	"database/sql/driver"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinchonkinder_backend/internals/constants"
	helperAuth "sinchonkinder_backend/internals/helpers/auth"
	"sinchonkinder_backend/internals/testdb"
)

func newNewsApp(h *NewsPostController) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocalsUserID, uuid.NewString())
		c.Locals(helperAuth.LocalsRole, constants.RoleAdmin)
		c.Locals(helperAuth.LocalsStatus, constants.StatusActive)
		return c.Next()
	})
	app.Post("/admin/news", h.Create)
	return app
}

func slugCountRule(counts ...int64) *testdb.Rule {
	rule := &testdb.Rule{Contains: "count(*)"}
	for _, n := range counts {
		rule.Seq = append(rule.Seq, testdb.Result{
			Columns: []string{"count"},
			Rows:    [][]driver.Value{{n}},
		})
	}
	return rule
}

func postNewsJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/news", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateSurfacesAttachmentInsertFailure(t *testing.T) {
	db, _, err := testdb.Open(
		&testdb.Rule{Contains: `"news_attachments"`, Err: errors.New("insert rejected")},
		slugCountRule(0),
	)
	require.NoError(t, err)

	app := newNewsApp(NewNewsPostController(db))
	resp := postNewsJSON(t, app, `{
		"title": "Spring Notice",
		"category": "announcements",
		"content": "등원 안내입니다.",
		"attachments": [{"file_url": "https://cdn.example.com/notice.pdf"}]
	}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "게시글 저장 중 문제가 발생했습니다")
	assert.Contains(t, string(raw), `"success":false`)
}

func TestCreateHonorsExplicitSlug(t *testing.T) {
	db, rec, err := testdb.Open(slugCountRule(0))
	require.NoError(t, err)

	app := newNewsApp(NewNewsPostController(db))
	resp := postNewsJSON(t, app, `{
		"title": "유치원 운영위원회 안내",
		"slug": "Committee Notice 2026",
		"category": "announcements",
		"content": "운영위원회 일정 안내입니다."
	}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var inserted []driver.Value
	for _, s := range rec.Statements() {
		if strings.Contains(s.Query, `INSERT INTO "news_posts"`) {
			inserted = s.Args
		}
	}
	require.NotEmpty(t, inserted)
	assert.Contains(t, inserted, driver.Value("committee-notice-2026"))
}

func TestCreateDerivesSlugFromTitleWhenSlugAbsent(t *testing.T) {
	db, rec, err := testdb.Open(slugCountRule(0))
	require.NoError(t, err)

	app := newNewsApp(NewNewsPostController(db))
	resp := postNewsJSON(t, app, `{
		"title": "Open House 2026",
		"category": "events",
		"content": "행사 안내입니다."
	}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var inserted []driver.Value
	for _, s := range rec.Statements() {
		if strings.Contains(s.Query, `INSERT INTO "news_posts"`) {
			inserted = s.Args
		}
	}
	require.NotEmpty(t, inserted)
	assert.Contains(t, inserted, driver.Value("open-house-2026"))
}
