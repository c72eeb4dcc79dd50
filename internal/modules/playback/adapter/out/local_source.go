package out

import (
	"context"
	"fmt"
	"os"

	playbackout "audiomark/internal/modules/playback/port/out"
	"audiomark/internal/platform/docref"
	apperrors "audiomark/internal/platform/errors"
)

type LocalSourceLocator struct{}

func NewLocalSourceLocator() playbackout.SourceLocator {
	return LocalSourceLocator{}
}

// Locate accepts file references and plain paths only.
func (LocalSourceLocator) Locate(_ context.Context, ref string) (string, error) {
	canonical, err := docref.Canonical(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrPlaybackSourceUnavailable, err)
	}
	path, ok := docref.FilePath(canonical)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a local file", apperrors.ErrPlaybackSourceUnavailable, ref)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrPlaybackSourceUnavailable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", apperrors.ErrPlaybackSourceUnavailable, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrPlaybackSourceUnavailable, err)
	}
	_ = f.Close()
	return path, nil
}
