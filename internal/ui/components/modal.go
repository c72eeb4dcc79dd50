package components

import (
	"strings"

	"audiomark/internal/ui/theme"
)

// Option is one key the modal answers to.
type Option struct {
	Key   string
	Label string
}

// RenderModal draws a bordered dialog with a title, body text and key options.
func RenderModal(title, body string, options []Option, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(title) + "\n\n")
	sb.WriteString(body + "\n")
	if len(options) > 0 {
		parts := make([]string, 0, len(options))
		for _, o := range options {
			parts = append(parts, theme.Title.Render(o.Key)+" "+theme.Muted.Render(o.Label))
		}
		sb.WriteString("\n" + strings.Join(parts, "   "))
	}
	if width < 30 {
		width = 60
	}
	return theme.Modal.Width(width).Render(sb.String())
}
