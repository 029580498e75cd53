package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, target string) Params {
	t.Helper()
	app := fiber.New()
	var got Params
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "publish_at", "desc", DefaultOpts)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParseFiberDefaults(t *testing.T) {
	p := parseWith(t, "/items")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
	assert.Equal(t, "publish_at", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
}

func TestParseFiberCapsPerPage(t *testing.T) {
	p := parseWith(t, "/items?per_page=9999")
	assert.Equal(t, DefaultOpts.MaxPerPage, p.PerPage)
}

func TestParseFiberRejectsBadPage(t *testing.T) {
	p := parseWith(t, "/items?page=-3")
	assert.Equal(t, 1, p.Page)
}

func TestSafeOrderClauseWhitelistsColumns(t *testing.T) {
	allowed := map[string]string{
		"publish_at": "p.news_post_publish_at",
		"title":      "p.news_post_title",
	}

	p := Params{SortBy: "title", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "publish_at")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY p.news_post_title ASC", clause)

	// unknown key falls back to the default, never passes through
	p = Params{SortBy: "news_post_id; DROP TABLE users"}
	clause, err = p.SafeOrderClause(allowed, "publish_at")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY p.news_post_publish_at DESC", clause)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(101, Params{Page: 2, PerPage: 25})
	assert.Equal(t, int64(101), meta.Total)
	assert.Equal(t, 5, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 3, *meta.NextPage)

	meta = BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
