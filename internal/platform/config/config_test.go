package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"audiomark/internal/platform/config"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != filepath.Join(home, "audiomark.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.Session.SortOnInsert || !cfg.Session.BlockReexport {
		t.Fatalf("unexpected session policy defaults: %+v", cfg.Session)
	}
	if cfg.Session.Label != "#Edit-times" || cfg.Session.FallbackSubject != "Audio Bookmarks" {
		t.Fatalf("unexpected export defaults: %+v", cfg.Session)
	}
	if cfg.PollInterval().Milliseconds() != 100 {
		t.Fatalf("expected 100ms poll interval, got %s", cfg.PollInterval())
	}
	if len(cfg.Playback.Speeds) != 5 {
		t.Fatalf("expected five speeds, got %v", cfg.Playback.Speeds)
	}
}

func TestLoadOverlaysTOML(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	raw := `
log_level = "debug"
notes_dir = "keep"

[session]
sort_on_insert = true
block_reexport = false

[playback]
speeds = [1.0, 1.5]

[share]
default_target = "mail"

[share.mail]
host = "smtp.example.com"
from = "me@example.com"
to = "notes@example.com"
`
	if err := os.WriteFile(filepath.Join(home, config.FileName), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Session.SortOnInsert || cfg.Session.BlockReexport {
		t.Fatalf("session policy not applied: %+v", cfg.Session)
	}
	if cfg.LogLevel != "debug" || cfg.Share.DefaultTarget != "mail" {
		t.Fatalf("scalars not applied: %+v", cfg)
	}
	if cfg.NotesDir != filepath.Join(home, "keep") {
		t.Fatalf("relative notes dir should resolve under home, got %s", cfg.NotesDir)
	}
	if !cfg.Share.Mail.Configured() || cfg.Share.Mail.Port != 587 {
		t.Fatalf("mail config not merged: %+v", cfg.Share.Mail)
	}
	if len(cfg.Playback.Speeds) != 2 || cfg.Playback.PollIntervalMS != 100 {
		t.Fatalf("playback config not merged: %+v", cfg.Playback)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, config.FileName), []byte("[playback]\nspeeds = [0.0]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(home); err == nil {
		t.Fatalf("expected invalid speed to fail")
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected empty home to fail")
	}
}
