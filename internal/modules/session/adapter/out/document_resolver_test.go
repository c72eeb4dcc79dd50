package out_test

import (
	"context"
	"errors"
	"testing"

	sessionadapter "audiomark/internal/modules/session/adapter/out"
	apperrors "audiomark/internal/platform/errors"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()
	resolver := sessionadapter.NewURIDocumentResolver()
	cases := map[string]string{
		"file:///music/Lecture%203.mp3":    "Lecture 3",
		"file:///music/archive.tar.gz":     "archive.tar",
		"file:///music/.hidden":            ".hidden",
		"file:///music/noext":              "noext",
		"content://media/audio/track.m4a":  "track",
		"https://example.com/pod/ep1.mp3/": "ep1",
	}
	for ref, want := range cases {
		got, err := resolver.DisplayName(context.Background(), ref)
		if err != nil {
			t.Fatalf("DisplayName(%q): %v", ref, err)
		}
		if got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", ref, got, want)
		}
	}
	if _, err := resolver.DisplayName(context.Background(), "https://example.com"); !errors.Is(err, apperrors.ErrDocumentUnresolvable) {
		t.Fatalf("expected unresolvable, got %v", err)
	}
}
