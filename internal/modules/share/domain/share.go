package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	TargetNotes   = "notes"
	TargetMail    = "mail"
	TargetChooser = "chooser"
	PluginPrefix  = "plugin:"
)

type Route string

const (
	RoutePreferred Route = "preferred"
	RouteChooser   Route = "chooser"
)

var (
	ErrPluginDisabled   = errors.New("plugin is disabled")
	ErrChecksumMismatch = errors.New("plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("plugin timeout")
)

type Note struct {
	DocumentRef string
	Subject     string
	Body        string
	MIME        string
	Count       int
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.Subject) == "" {
		return fmt.Errorf("note subject is required")
	}
	if n.Body == "" {
		return fmt.Errorf("note body is required")
	}
	return nil
}

// Record is one successful export.
type Record struct {
	ID          string
	DocumentRef string
	Subject     string
	Count       int
	Route       Route
	Target      string
	ExportedAt  time.Time
}

type TargetKind string

const (
	KindBuiltin TargetKind = "builtin"
	KindPlugin  TargetKind = "plugin"
)

// PluginName returns the plugin part of a "plugin:<name>" target.
func PluginName(target string) (string, bool) {
	if !strings.HasPrefix(target, PluginPrefix) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(target, PluginPrefix))
	return name, name != ""
}

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest declares an out-of-process share target.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
	Label   string `json:"label,omitempty"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	return nil
}

func (m Manifest) TargetName() string {
	return PluginPrefix + m.Name
}

type Metadata struct {
	Name    string
	Version string
	Formats []string
}

type Receipt struct {
	Location string
}
