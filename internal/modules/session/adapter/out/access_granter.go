package out

import (
	"context"
	"fmt"
	"os"

	sessionout "audiomark/internal/modules/session/port/out"
	"audiomark/internal/platform/docref"
)

// FileAccessGranter checks that a local document can be read. Non-file
// references carry no local permission and are accepted as-is.
type FileAccessGranter struct{}

func NewFileAccessGranter() sessionout.AccessGranter {
	return FileAccessGranter{}
}

func (FileAccessGranter) Grant(_ context.Context, ref string) error {
	path, ok := docref.FilePath(ref)
	if !ok {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("grant read access: %w", err)
	}
	return f.Close()
}
