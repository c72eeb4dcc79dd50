package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Note is a markdown document with an optional YAML frontmatter header.
type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a leading
// fence is returned as a body with empty metadata.
func Parse(content string) (Note, error) {
	if !strings.HasPrefix(content, fence) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return Note{}, fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return Note{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return Note{Meta: meta, Body: rest[idx+len("\n"+fence):]}, nil
}

func (n Note) Render() (string, error) {
	buf := bytes.Buffer{}
	if len(n.Meta) > 0 {
		raw, err := yaml.Marshal(n.Meta)
		if err != nil {
			return "", fmt.Errorf("marshal frontmatter: %w", err)
		}
		buf.WriteString(fence)
		buf.Write(raw)
		buf.WriteString(fence)
		if !strings.HasPrefix(n.Body, "\n") {
			buf.WriteString("\n")
		}
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}

// ReplaceBlock swaps the text between the start and end markers for generated,
// appending a fresh block when the markers are absent.
func ReplaceBlock(body, start, end, generated string) string {
	block := start + "\n" + generated + "\n" + end
	i := strings.Index(body, start)
	j := strings.Index(body, end)
	if i >= 0 && j > i {
		return body[:i] + block + body[j+len(end):]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
