package helper

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinchonkinder_backend/internals/testdb"
)

func TestSlugifyBasic(t *testing.T) {
	assert.Equal(t, "spring-picnic-2026", Slugify("Spring Picnic 2026", 0))
}

func TestSlugifyCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "a-b-c", Slugify("a -- b___c", 0))
}

func TestSlugifyStripsDiacritics(t *testing.T) {
	assert.Equal(t, "cafe-menu", Slugify("Café Menü", 0))
}

// titles with no ASCII alphanumerics must still produce a usable slug
func TestSlugifyKoreanTitleFallback(t *testing.T) {
	got := Slugify("봄 소풍 안내", 0)
	assert.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, "post-"), got)
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify(strings.Repeat("abc ", 100), 20)
	assert.LessOrEqual(t, len(got), 20)
	assert.NotEmpty(t, got)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestEnsureUniqueSlugCIKeepsFreeSlug(t *testing.T) {
	db, _, err := testdb.Open(&testdb.Rule{Contains: "count(*)", Result: &testdb.Result{
		Columns: []string{"count"},
		Rows:    [][]driver.Value{{int64(0)}},
	}})
	require.NoError(t, err)

	got, err := EnsureUniqueSlugCI(context.Background(), db, "news_posts", "news_post_slug", "notice", 160)
	require.NoError(t, err)
	assert.Equal(t, "notice", got)
}

// timestamp-fallback slugs minted in the same millisecond share a base; the
// collision check must hand out a suffixed variant instead of the duplicate
func TestEnsureUniqueSlugCISuffixesOnCollision(t *testing.T) {
	db, _, err := testdb.Open(&testdb.Rule{Contains: "count(*)", Seq: []testdb.Result{
		{Columns: []string{"count"}, Rows: [][]driver.Value{{int64(1)}}},
		{Columns: []string{"count"}, Rows: [][]driver.Value{{int64(0)}}},
	}})
	require.NoError(t, err)

	got, err := EnsureUniqueSlugCI(context.Background(), db, "news_posts", "news_post_slug", "post-1756500000000", 160)
	require.NoError(t, err)
	assert.Equal(t, "post-1756500000000-2", got)
}

func TestTrimForSuffixLeavesRoomForSuffix(t *testing.T) {
	base := strings.Repeat("a", 30)
	got := trimForSuffix(base, "-25", 20)
	assert.LessOrEqual(t, len(got)+len("-25"), 20)
	assert.NotEmpty(t, got)
}
