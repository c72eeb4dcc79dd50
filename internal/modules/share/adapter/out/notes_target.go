package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audiomark/internal/modules/share/domain"
	shareout "audiomark/internal/modules/share/port/out"
	"audiomark/internal/platform/clock"
	apperrors "audiomark/internal/platform/errors"
	"audiomark/internal/platform/markdown"
	"audiomark/internal/platform/slug"
)

const (
	bookmarksStart = "<!-- audiomark:bookmarks:start -->"
	bookmarksEnd   = "<!-- audiomark:bookmarks:end -->"
)

// NotesTarget keeps one markdown note per document. Each export rewrites the
// managed bookmark block and leaves the rest of the note alone.
type NotesTarget struct {
	dir   string
	clock clock.Clock
}

func NewNotesTarget(dir string, clk clock.Clock) shareout.Target {
	return &NotesTarget{dir: dir, clock: clk}
}

func (t *NotesTarget) Name() string { return domain.TargetNotes }

func (t *NotesTarget) Available(_ context.Context) error {
	if strings.TrimSpace(t.dir) == "" {
		return fmt.Errorf("%w: notes dir is not configured", apperrors.ErrTargetUnavailable)
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTargetUnavailable, err)
	}
	return nil
}

func (t *NotesTarget) Path(subject string) string {
	return filepath.Join(t.dir, slug.Make(subject)+".md")
}

func (t *NotesTarget) Share(_ context.Context, note domain.Note) (domain.Receipt, error) {
	path := t.Path(note.Subject)
	doc := markdown.Note{Meta: map[string]any{}}
	if raw, err := os.ReadFile(path); err == nil {
		doc, err = markdown.Parse(string(raw))
		if err != nil {
			return domain.Receipt{}, fmt.Errorf("parse note %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return domain.Receipt{}, fmt.Errorf("read note: %w", err)
	}
	doc.Meta["title"] = note.Subject
	if note.DocumentRef != "" {
		doc.Meta["document"] = note.DocumentRef
	}
	doc.Meta["bookmarks"] = note.Count
	doc.Meta["updated"] = t.clock.Now().UTC().Format(time.RFC3339)
	doc.Body = markdown.ReplaceBlock(doc.Body, bookmarksStart, bookmarksEnd, strings.TrimRight(note.Body, "\n"))

	rendered, err := doc.Render()
	if err != nil {
		return domain.Receipt{}, err
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return domain.Receipt{}, fmt.Errorf("create notes dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return domain.Receipt{}, fmt.Errorf("write note: %w", err)
	}
	return domain.Receipt{Location: path}, nil
}
