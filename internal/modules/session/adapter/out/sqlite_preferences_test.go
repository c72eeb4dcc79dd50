package out_test

import (
	"context"
	"path/filepath"
	"testing"

	sessionadapter "audiomark/internal/modules/session/adapter/out"
)

func TestSQLitePreferencesCommitIsAtomicAndOrdered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	prefs, err := sessionadapter.NewSQLitePreferences(filepath.Join(t.TempDir(), "audiomark.db"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	defer prefs.Close()

	editor := prefs.Edit().PutString("document_ref", "file:///a.mp3").PutInt("playback_position_ms", 1500)
	if _, ok, _ := prefs.GetString(ctx, "document_ref"); ok {
		t.Fatalf("uncommitted writes must not be visible")
	}
	if err := editor.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	ref, ok, err := prefs.GetString(ctx, "document_ref")
	if err != nil || !ok || ref != "file:///a.mp3" {
		t.Fatalf("unexpected ref %q %v %v", ref, ok, err)
	}
	pos, ok, err := prefs.GetInt(ctx, "playback_position_ms")
	if err != nil || !ok || pos != 1500 {
		t.Fatalf("unexpected position %d %v %v", pos, ok, err)
	}

	if err := prefs.Edit().PutString("last_folder", "/music").Remove("last_folder").Remove("document_ref").Commit(ctx); err != nil {
		t.Fatalf("commit removals: %v", err)
	}
	if _, ok, _ := prefs.GetString(ctx, "last_folder"); ok {
		t.Fatalf("remove after put in the same batch must win")
	}
	if _, ok, _ := prefs.GetString(ctx, "document_ref"); ok {
		t.Fatalf("document_ref should be removed")
	}
	if _, ok, _ := prefs.GetInt(ctx, "missing"); ok {
		t.Fatalf("missing key reported present")
	}
}

func TestSQLitePreferencesGetIntRejectsText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	prefs, err := sessionadapter.NewSQLitePreferences(filepath.Join(t.TempDir(), "audiomark.db"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	defer prefs.Close()
	if err := prefs.Edit().PutString("playback_position_ms", "soon").Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, _, err := prefs.GetInt(ctx, "playback_position_ms"); err == nil {
		t.Fatalf("expected parse error")
	}
}
