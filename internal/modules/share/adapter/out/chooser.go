package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"audiomark/internal/modules/share/domain"
	shareout "audiomark/internal/modules/share/port/out"
	"audiomark/internal/platform/slug"
)

// TempFileChooser writes the note to a text file and hands it to the desktop's
// default handler, which lets the user pick where it goes.
type TempFileChooser struct {
	dir      string
	launcher shareout.Launcher
}

func NewTempFileChooser(dir string, launcher shareout.Launcher) shareout.Chooser {
	return &TempFileChooser{dir: dir, launcher: launcher}
}

func (c *TempFileChooser) Choose(ctx context.Context, note domain.Note) (domain.Receipt, error) {
	if c.launcher == nil {
		return domain.Receipt{}, fmt.Errorf("no launcher configured")
	}
	f, err := os.CreateTemp(c.dir, slug.Make(note.Subject)+"-*.txt")
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("create chooser file: %w", err)
	}
	path := f.Name()
	if _, err := f.WriteString(note.Subject + "\n\n" + note.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return domain.Receipt{}, fmt.Errorf("write chooser file: %w", err)
	}
	if err := f.Close(); err != nil {
		return domain.Receipt{}, fmt.Errorf("close chooser file: %w", err)
	}
	if err := c.launcher.Open(ctx, path); err != nil {
		_ = os.Remove(path)
		return domain.Receipt{}, err
	}
	return domain.Receipt{Location: path}, nil
}

// DesktopLauncher opens a file with the platform's default handler and does
// not wait for the handler to exit.
type DesktopLauncher struct {
	goos string
}

func NewDesktopLauncher() shareout.Launcher {
	return DesktopLauncher{goos: runtime.GOOS}
}

func (l DesktopLauncher) Open(_ context.Context, path string) error {
	argv, err := openCommand(l.goos, path)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", argv[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, path string) ([]string, error) {
	switch goos {
	case "darwin":
		return []string{"open", path}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open", path}, nil
	}
	return nil, fmt.Errorf("no default file handler on %s", goos)
}
