package helper

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// PlaceholderParagraph is rendered when a post ends up with no body at all.
const PlaceholderParagraph = "등록된 내용이 없습니다."

// AttachmentLite is the read model for aggregated attachment rows.
type AttachmentLite struct {
	ID      string  `json:"id"`
	Label   *string `json:"label,omitempty"`
	FileURL string  `json:"file_url"`
}

// NormalizeContent flattens the stored content column into an ordered list of
// non-empty paragraph strings. The column historically holds either a JSON
// array, a JSON-encoded string, or a bare string; all three shapes are
// accepted on read even though writers now always persist a JSON array.
func NormalizeContent(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return filterEmpty(v)
	case []any:
		return filterEmpty(stringifyAll(v))
	case []byte:
		return NormalizeContent(string(v))
	case string:
		if v == "" {
			return []string{}
		}
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return filterEmpty([]string{v})
		}
		if list, ok := parsed.([]any); ok {
			return filterEmpty(stringifyAll(list))
		}
		// scalar JSON (quoted string, number) → single element
		return filterEmpty([]string{fmt.Sprintf("%v", parsed)})
	default:
		return []string{}
	}
}

// FallbackContent guards against an empty-content post being rendered with no
// body: an empty list becomes a single placeholder paragraph.
func FallbackContent(content []string) []string {
	if len(content) == 0 {
		return []string{PlaceholderParagraph}
	}
	return content
}

// NormalizeAttachments decodes an aggregated attachment column (json_agg
// output or an already-decoded list) into the read model. Entries without a
// file URL are dropped; entries without an id get a fresh one — attachment
// identity is only ever used as a render key, mutations address by post id.
func NormalizeAttachments(raw any) []AttachmentLite {
	switch v := raw.(type) {
	case nil:
		return []AttachmentLite{}
	case []byte:
		return NormalizeAttachments(string(v))
	case string:
		if v == "" {
			return []AttachmentLite{}
		}
		var parsed []map[string]any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return []AttachmentLite{}
		}
		return mapAttachmentEntries(parsed)
	case []map[string]any:
		return mapAttachmentEntries(v)
	case []any:
		entries := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
		return mapAttachmentEntries(entries)
	default:
		return []AttachmentLite{}
	}
}

func mapAttachmentEntries(entries []map[string]any) []AttachmentLite {
	out := make([]AttachmentLite, 0, len(entries))
	for _, entry := range entries {
		fileURL := stringField(entry, "file_url")
		if fileURL == "" {
			fileURL = stringField(entry, "fileUrl")
		}
		if fileURL == "" {
			continue
		}

		id := stringField(entry, "id")
		if id == "" {
			id = uuid.NewString()
		}

		var label *string
		if raw, ok := entry["label"]; ok && raw != nil {
			if s := fmt.Sprintf("%v", raw); s != "" {
				label = &s
			}
		}

		out = append(out, AttachmentLite{ID: id, Label: label, FileURL: fileURL})
	}
	return out
}

var (
	reImageMarkup = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLinkMarkup  = regexp.MustCompile(`\[[^\]]*\]\(([^)]*)\)`)
	reMarkupChars = regexp.MustCompile("[`*_#>~-]")
	reBlankLines  = regexp.MustCompile(`\n{2,}`)
	reInlineSpace = regexp.MustCompile(`[\t\f\v]`)
)

// MarkdownToParagraphs converts authored markdown-ish text into the canonical
// paragraph list: image markup removed, links reduced to their target,
// emphasis characters stripped, paragraphs split on blank lines.
func MarkdownToParagraphs(markdown string) []string {
	normalized := strings.TrimSpace(
		reInlineSpace.ReplaceAllString(strings.ReplaceAll(markdown, "\r\n", "\n"), " "),
	)

	cleaned := reMarkupChars.ReplaceAllString(
		reLinkMarkup.ReplaceAllString(
			reImageMarkup.ReplaceAllString(normalized, ""),
			"$1",
		),
		"",
	)

	paragraphs := filterEmpty(reBlankLines.Split(cleaned, -1))
	if len(paragraphs) > 0 {
		return paragraphs
	}
	if trimmed := strings.TrimSpace(cleaned); trimmed != "" {
		return []string{trimmed}
	}
	return []string{}
}

func stringifyAll(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out
}

func filterEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringField(m map[string]any, key string) string {
	if raw, ok := m[key]; ok && raw != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", raw))
	}
	return ""
}
