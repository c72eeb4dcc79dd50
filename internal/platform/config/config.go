package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	FileName  = "config.toml"
	appFolder = "audiomark"
)

type Config struct {
	Home       string `toml:"-"`
	DBPath     string `toml:"-"`
	LogPath    string `toml:"-"`
	NotesDir   string `toml:"notes_dir"`
	PluginsDir string `toml:"-"`
	LogLevel   string `toml:"log_level"`

	Session  SessionConfig  `toml:"session"`
	Playback PlaybackConfig `toml:"playback"`
	Share    ShareConfig    `toml:"share"`
}

type SessionConfig struct {
	// SortOnInsert keeps bookmarks ascending instead of in recording order.
	SortOnInsert bool `toml:"sort_on_insert"`
	// BlockReexport refuses an export when every bookmark was already shared.
	BlockReexport   bool   `toml:"block_reexport"`
	Label           string `toml:"label"`
	FallbackSubject string `toml:"fallback_subject"`
}

type PlaybackConfig struct {
	PollIntervalMS int       `toml:"poll_interval_ms"`
	SeekStepMS     int       `toml:"seek_step_ms"`
	Speeds         []float64 `toml:"speeds"`
	PlayerCommand  []string  `toml:"player_command"`
	ProbeCommand   string    `toml:"probe_command"`
}

type ShareConfig struct {
	DefaultTarget string     `toml:"default_target"`
	CallTimeoutMS int        `toml:"call_timeout_ms"`
	Mail          MailConfig `toml:"mail"`
}

type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	To       string `toml:"to"`
}

func (m MailConfig) Configured() bool {
	return m.Host != "" && m.From != "" && m.To != ""
}

// DefaultHome returns $XDG_CONFIG_HOME/audiomark or the platform equivalent.
func DefaultHome() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appFolder), nil
}

// New returns the built-in defaults rooted at home.
func New(home string) (Config, error) {
	if strings.TrimSpace(home) == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	return Config{
		Home:       home,
		DBPath:     filepath.Join(home, "audiomark.db"),
		LogPath:    filepath.Join(home, "audiomark.log"),
		NotesDir:   filepath.Join(home, "notes"),
		PluginsDir: filepath.Join(home, "plugins"),
		LogLevel:   "info",
		Session: SessionConfig{
			SortOnInsert:    false,
			BlockReexport:   true,
			Label:           "#Edit-times",
			FallbackSubject: "Audio Bookmarks",
		},
		Playback: PlaybackConfig{
			PollIntervalMS: 100,
			SeekStepMS:     5000,
			Speeds:         []float64{1.0, 1.25, 1.5, 1.75, 2.0},
			ProbeCommand:   "ffprobe",
		},
		Share: ShareConfig{
			DefaultTarget: "notes",
			CallTimeoutMS: 5000,
			Mail:          MailConfig{Port: 587},
		},
	}, nil
}

// Load overlays home/config.toml and AUDIOMARK_* environment variables on the
// defaults. A missing file is not an error.
func Load(home string) (Config, error) {
	cfg, err := New(home)
	if err != nil {
		return Config{}, err
	}
	path := filepath.Join(home, FileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyEnv()
	if !filepath.IsAbs(cfg.NotesDir) {
		cfg.NotesDir = filepath.Join(home, cfg.NotesDir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AUDIOMARK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("AUDIOMARK_SHARE_TARGET"); v != "" {
		c.Share.DefaultTarget = v
	}
	if v := os.Getenv("AUDIOMARK_MAIL_PASSWORD"); v != "" {
		c.Share.Mail.Password = v
	}
}

func (c Config) Validate() error {
	if c.Playback.PollIntervalMS <= 0 {
		return fmt.Errorf("playback.poll_interval_ms must be positive")
	}
	if c.Playback.SeekStepMS <= 0 {
		return fmt.Errorf("playback.seek_step_ms must be positive")
	}
	if len(c.Playback.Speeds) == 0 {
		return fmt.Errorf("playback.speeds must not be empty")
	}
	for _, s := range c.Playback.Speeds {
		if s <= 0 || s > 4 {
			return fmt.Errorf("playback speed %.2f out of range", s)
		}
	}
	if strings.TrimSpace(c.Share.DefaultTarget) == "" {
		return fmt.Errorf("share.default_target is required")
	}
	if c.Share.CallTimeoutMS <= 0 {
		return fmt.Errorf("share.call_timeout_ms must be positive")
	}
	return nil
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Playback.PollIntervalMS) * time.Millisecond
}

func (c Config) CallTimeout() time.Duration {
	return time.Duration(c.Share.CallTimeoutMS) * time.Millisecond
}
