package out_test

import (
	"context"
	"errors"
	"os"
	"testing"

	shareadapter "audiomark/internal/modules/share/adapter/out"
	"audiomark/internal/modules/share/domain"
)

type fakeLauncher struct {
	opened []string
	err    error
}

func (f *fakeLauncher) Open(_ context.Context, target string) error {
	f.opened = append(f.opened, target)
	return f.err
}

func TestTempFileChooserOpensWrittenNote(t *testing.T) {
	t.Parallel()
	launcher := &fakeLauncher{}
	chooser := shareadapter.NewTempFileChooser(t.TempDir(), launcher)
	receipt, err := chooser.Choose(context.Background(), domain.Note{Subject: "Lecture 3", Body: "#Edit-times\n\n00:00:01\n"})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if len(launcher.opened) != 1 || launcher.opened[0] != receipt.Location {
		t.Fatalf("unexpected launches %v", launcher.opened)
	}
	raw, err := os.ReadFile(receipt.Location)
	if err != nil {
		t.Fatalf("read chooser file: %v", err)
	}
	if string(raw) != "Lecture 3\n\n#Edit-times\n\n00:00:01\n" {
		t.Fatalf("unexpected chooser file %q", raw)
	}
}

func TestTempFileChooserCleansUpOnLaunchFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	chooser := shareadapter.NewTempFileChooser(dir, &fakeLauncher{err: errors.New("no handler")})
	if _, err := chooser.Choose(context.Background(), domain.Note{Subject: "a", Body: "b"}); err == nil {
		t.Fatalf("expected launch failure")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp file removed, found %d entries", len(entries))
	}
}
