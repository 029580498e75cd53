package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeContentJSONArray(t *testing.T) {
	got := NormalizeContent(`["첫 번째 문단","두 번째 문단"]`)
	assert.Equal(t, []string{"첫 번째 문단", "두 번째 문단"}, got)
}

func TestNormalizeContentBareString(t *testing.T) {
	got := NormalizeContent("그냥 문자열")
	assert.Equal(t, []string{"그냥 문자열"}, got)
}

func TestNormalizeContentJSONEncodedString(t *testing.T) {
	got := NormalizeContent(`"인용된 문자열"`)
	assert.Equal(t, []string{"인용된 문자열"}, got)
}

func TestNormalizeContentDropsEmptyEntries(t *testing.T) {
	got := NormalizeContent([]any{"유지", "", "  ", "남김"})
	assert.Equal(t, []string{"유지", "남김"}, got)
}

func TestNormalizeContentNilAndEmpty(t *testing.T) {
	assert.Empty(t, NormalizeContent(nil))
	assert.Empty(t, NormalizeContent(""))
	assert.Empty(t, NormalizeContent([]string{}))
}

func TestNormalizeContentBytes(t *testing.T) {
	got := NormalizeContent([]byte(`["바이트 배열"]`))
	assert.Equal(t, []string{"바이트 배열"}, got)
}

// running the output back through must not change it
func TestNormalizeContentIdempotent(t *testing.T) {
	first := NormalizeContent(`["하나","둘"]`)
	second := NormalizeContent(first)
	assert.Equal(t, first, second)
}

func TestFallbackContentPlaceholder(t *testing.T) {
	assert.Equal(t, []string{PlaceholderParagraph}, FallbackContent(nil))
	assert.Equal(t, []string{PlaceholderParagraph}, FallbackContent([]string{}))
	assert.Equal(t, []string{"본문"}, FallbackContent([]string{"본문"}))
}

func TestNormalizeAttachmentsDropsMissingFileURL(t *testing.T) {
	raw := `[
		{"id":"a1","label":"안내문","file_url":"https://cdn.example.com/a.pdf"},
		{"id":"a2","label":"빈 항목","file_url":""},
		{"id":"a3","file_url":"https://cdn.example.com/c.pdf"}
	]`
	got := NormalizeAttachments(raw)
	assert.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a3", got[1].ID)
}

func TestNormalizeAttachmentsPreservesOrder(t *testing.T) {
	raw := `[
		{"id":"z","file_url":"https://cdn.example.com/z.pdf"},
		{"id":"a","file_url":"https://cdn.example.com/a.pdf"}
	]`
	got := NormalizeAttachments(raw)
	assert.Equal(t, "z", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestNormalizeAttachmentsSynthesizesID(t *testing.T) {
	raw := `[{"file_url":"https://cdn.example.com/x.pdf"}]`
	got := NormalizeAttachments(raw)
	assert.Len(t, got, 1)
	_, err := uuid.Parse(got[0].ID)
	assert.NoError(t, err)
}

func TestNormalizeAttachmentsCamelCaseKey(t *testing.T) {
	raw := `[{"id":"c1","fileUrl":"https://cdn.example.com/c.pdf"}]`
	got := NormalizeAttachments(raw)
	assert.Len(t, got, 1)
	assert.Equal(t, "https://cdn.example.com/c.pdf", got[0].FileURL)
}

func TestNormalizeAttachmentsGarbage(t *testing.T) {
	assert.Empty(t, NormalizeAttachments(nil))
	assert.Empty(t, NormalizeAttachments("not json"))
	assert.Empty(t, NormalizeAttachments(123))
}

func TestMarkdownToParagraphsSplitsOnBlankLines(t *testing.T) {
	got := MarkdownToParagraphs("첫 문단입니다.\n\n두 번째 문단입니다.")
	assert.Equal(t, []string{"첫 문단입니다.", "두 번째 문단입니다."}, got)
}

func TestMarkdownToParagraphsStripsImages(t *testing.T) {
	got := MarkdownToParagraphs("사진 안내 ![사진](https://cdn.example.com/p.jpg) 입니다.")
	assert.Len(t, got, 1)
	assert.NotContains(t, got[0], "https://cdn.example.com/p.jpg")
	assert.NotContains(t, got[0], "![")
}

func TestMarkdownToParagraphsLinkKeepsTarget(t *testing.T) {
	got := MarkdownToParagraphs("[안내 페이지](https://example.com/page) 참고")
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "https://example.com/page")
	assert.NotContains(t, got[0], "[")
}

func TestMarkdownToParagraphsStripsEmphasis(t *testing.T) {
	got := MarkdownToParagraphs("**중요** 안내 `코드` _강조_")
	assert.Len(t, got, 1)
	assert.NotContains(t, got[0], "*")
	assert.NotContains(t, got[0], "`")
	assert.NotContains(t, got[0], "_")
}

func TestMarkdownToParagraphsSingleParagraphFallback(t *testing.T) {
	got := MarkdownToParagraphs("줄바꿈 없는 본문 하나")
	assert.Equal(t, []string{"줄바꿈 없는 본문 하나"}, got)
}

func TestMarkdownToParagraphsEmpty(t *testing.T) {
	assert.Empty(t, MarkdownToParagraphs(""))
	assert.Empty(t, MarkdownToParagraphs("   \n\n  "))
}
