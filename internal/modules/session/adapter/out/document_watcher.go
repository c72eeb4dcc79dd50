package out

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"audiomark/internal/modules/session/domain"
	sessionout "audiomark/internal/modules/session/port/out"
	"audiomark/internal/platform/docref"
	apperrors "audiomark/internal/platform/errors"
)

type FSDocumentWatcher struct {
	logger hclog.Logger
}

func NewFSDocumentWatcher(logger hclog.Logger) sessionout.DocumentWatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FSDocumentWatcher{logger: logger.Named("watcher")}
}

// Watch reports removal or rename of the document until ctx is done. The
// parent directory is watched because editors and downloaders replace files.
func (w *FSDocumentWatcher) Watch(ctx context.Context, ref string) (<-chan domain.DocumentEvent, error) {
	path, ok := docref.FilePath(ref)
	if !ok {
		return nil, fmt.Errorf("%w: only local documents can be watched", apperrors.ErrInvalidInput)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	events := make(chan domain.DocumentEvent, 1)
	go func() {
		defer close(events)
		defer fsw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				kind := ""
				switch {
				case ev.Has(fsnotify.Remove):
					kind = domain.EventRemoved
				case ev.Has(fsnotify.Rename):
					kind = domain.EventRenamed
				default:
					continue
				}
				select {
				case events <- domain.DocumentEvent{Ref: ref, Kind: kind}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", "path", path, "error", err)
			}
		}
	}()
	return events, nil
}
