package controller

import (
	"database/sql/driver"
	"errors"
	"fmt"
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

func newClassPostApp(h *ClassPostController) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocalsUserID, uuid.NewString())
		c.Locals(helperAuth.LocalsRole, constants.RoleAdmin)
		c.Locals(helperAuth.LocalsStatus, constants.StatusActive)
		return c.Next()
	})
	app.Post("/admin/class-posts", h.Create)
	return app
}

func postClassPostJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/class-posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateSurfacesAttachmentInsertFailure(t *testing.T) {
	classroomID := uuid.New()
	db, _, err := testdb.Open(
		&testdb.Rule{Contains: `"class_post_attachments"`, Err: errors.New("insert rejected")},
		&testdb.Rule{Contains: `FROM "classrooms"`, Result: &testdb.Result{
			Columns: []string{"classroom_id"},
			Rows:    [][]driver.Value{{classroomID.String()}},
		}},
	)
	require.NoError(t, err)

	app := newClassPostApp(NewClassPostController(db))
	resp := postClassPostJSON(t, app, fmt.Sprintf(`{
		"classroom_id": %q,
		"title": "주간 활동 안내",
		"content": "이번 주 활동 내용입니다.",
		"attachments": [{"file_url": "https://cdn.example.com/week.pdf"}]
	}`, classroomID))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "게시글 저장 중 문제가 발생했습니다")
	assert.Contains(t, string(raw), `"success":false`)
}

func TestCreateRejectsMalformedClassroomID(t *testing.T) {
	db, rec, err := testdb.Open()
	require.NoError(t, err)

	app := newClassPostApp(NewClassPostController(db))
	resp := postClassPostJSON(t, app, `{
		"classroom_id": "not-a-uuid",
		"title": "주간 활동 안내",
		"content": "이번 주 활동 내용입니다."
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, rec.Statements())
}
