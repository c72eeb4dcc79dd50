package domain

import (
	"strings"

	"audiomark/internal/platform/timecode"
)

// Note is what gets handed to a share target.
type Note struct {
	DocumentRef string
	Subject     string
	Body        string
	MIME        string
	Count       int
}

func BuildNote(s Session, label, fallbackSubject string) Note {
	subject := strings.TrimSpace(s.DisplayName)
	if subject == "" {
		subject = fallbackSubject
	}
	return Note{
		DocumentRef: s.DocumentRef,
		Subject:     subject,
		Body:        RenderBody(label, s.Bookmarks),
		MIME:        NoteMIME,
		Count:       len(s.Bookmarks),
	}
}

// RenderBody writes the label line, a blank line, then one HH:MM:SS line per
// bookmark in stored order.
func RenderBody(label string, bookmarks []int) string {
	var b strings.Builder
	b.WriteString(label)
	b.WriteString("\n\n")
	for _, ms := range bookmarks {
		b.WriteString(timecode.Format(ms))
		b.WriteByte('\n')
	}
	return b.String()
}
