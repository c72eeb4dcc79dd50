package markdown_test

import (
	"strings"
	"testing"

	"audiomark/internal/platform/markdown"
)

func TestParseAndRenderRoundTrip(t *testing.T) {
	t.Parallel()
	note := markdown.Note{Meta: map[string]any{"subject": "Lecture 3"}, Body: "hello\n"}
	rendered, err := note.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nsubject: Lecture 3\n---\n") {
		t.Fatalf("unexpected frontmatter: %q", rendered)
	}
	parsed, err := markdown.Parse(rendered)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Meta["subject"] != "Lecture 3" || parsed.Body != "\nhello\n" {
		t.Fatalf("unexpected parse result: %+v", parsed)
	}
}

func TestParseWithoutFrontmatterAndBrokenFence(t *testing.T) {
	t.Parallel()
	parsed, err := markdown.Parse("plain body")
	if err != nil {
		t.Fatalf("parse plain: %v", err)
	}
	if parsed.Body != "plain body" || len(parsed.Meta) != 0 {
		t.Fatalf("unexpected plain parse: %+v", parsed)
	}
	if _, err := markdown.Parse("---\nsubject: x\nno closing"); err == nil {
		t.Fatalf("expected missing fence error")
	}
}

func TestReplaceBlockKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	body := markdown.ReplaceBlock("my notes", start, end, "00:00:01")
	if body != "my notes\n\n<!-- s -->\n00:00:01\n<!-- e -->\n" {
		t.Fatalf("unexpected appended block: %q", body)
	}
	body = markdown.ReplaceBlock(body+"tail\n", start, end, "00:00:02")
	if strings.Contains(body, "00:00:01") || !strings.Contains(body, "00:00:02") {
		t.Fatalf("block was not replaced: %q", body)
	}
	if !strings.HasPrefix(body, "my notes") || !strings.HasSuffix(body, "tail\n") {
		t.Fatalf("surrounding text lost: %q", body)
	}
	if got := markdown.ReplaceBlock("  ", start, end, "x"); got != "<!-- s -->\nx\n<!-- e -->\n" {
		t.Fatalf("unexpected empty-body block: %q", got)
	}
}
