package out

import (
	"context"
	"strings"
	"testing"
)

func TestOpenCommandPerPlatform(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"linux":   "xdg-open /tmp/a.txt",
		"darwin":  "open /tmp/a.txt",
		"windows": "rundll32 url.dll,FileProtocolHandler /tmp/a.txt",
	}
	for goos, want := range cases {
		argv, err := openCommand(goos, "/tmp/a.txt")
		if err != nil {
			t.Fatalf("%s: %v", goos, err)
		}
		if got := strings.Join(argv, " "); got != want {
			t.Fatalf("%s: got %q, want %q", goos, got, want)
		}
	}
}

func TestDesktopLauncherRejectsUnknownPlatform(t *testing.T) {
	t.Parallel()
	err := DesktopLauncher{goos: "plan9"}.Open(context.Background(), "/tmp/a.txt")
	if err == nil || !strings.Contains(err.Error(), "plan9") {
		t.Fatalf("expected unsupported platform error, got %v", err)
	}
}
