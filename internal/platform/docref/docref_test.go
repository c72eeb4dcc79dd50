package docref_test

import (
	"errors"
	"path/filepath"
	"testing"

	"audiomark/internal/platform/docref"
	apperrors "audiomark/internal/platform/errors"
)

func TestCanonicalMakesPlainPathsFileURIs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	plain := filepath.Join(dir, "lecture.mp3")
	fromPath, err := docref.Canonical(plain)
	if err != nil {
		t.Fatalf("canonical path: %v", err)
	}
	fromURI, err := docref.Canonical("file://" + filepath.ToSlash(plain))
	if err != nil {
		t.Fatalf("canonical uri: %v", err)
	}
	if fromPath != fromURI {
		t.Fatalf("expected equal refs, got %q and %q", fromPath, fromURI)
	}
	back, ok := docref.FilePath(fromPath)
	if !ok || back != plain {
		t.Fatalf("expected %s, got %s (%v)", plain, back, ok)
	}
	if docref.Folder(fromPath) != dir {
		t.Fatalf("unexpected folder %s", docref.Folder(fromPath))
	}
}

func TestCanonicalKeepsOtherSchemes(t *testing.T) {
	t.Parallel()
	ref, err := docref.Canonical("content://media/external/audio/42")
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	if ref != "content://media/external/audio/42" {
		t.Fatalf("unexpected ref %q", ref)
	}
	if _, ok := docref.FilePath(ref); ok {
		t.Fatalf("content ref must not map to a file")
	}
	if docref.LastSegment(ref) != "42" {
		t.Fatalf("unexpected segment %q", docref.LastSegment(ref))
	}
}

func TestCanonicalRejectsEmpty(t *testing.T) {
	t.Parallel()
	if _, err := docref.Canonical("  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
