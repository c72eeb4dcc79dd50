package usecase

import (
	"context"
	"sync"

	"audiomark/internal/modules/session/domain"
	sessiondto "audiomark/internal/modules/session/dto"
	sessionin "audiomark/internal/modules/session/port/in"
	"audiomark/internal/modules/session/service"
	"audiomark/internal/platform/timecode"
)

// Interactor serialises every call; the TUI issues commands from goroutines.
type Interactor struct {
	mu  sync.Mutex
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OpenDocument(ctx context.Context, input sessiondto.OpenInput) (sessiondto.OpenOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	result, err := i.svc.Open(ctx, input.Ref)
	if err != nil {
		return sessiondto.OpenOutput{}, err
	}
	return toOpenOutput(result), nil
}

func (i *Interactor) ResolvePendingSwitch(ctx context.Context, input sessiondto.ResolveInput) (sessiondto.ResolveOutput, error) {
	choice, err := domain.ParseChoice(input.Choice)
	if err != nil {
		return sessiondto.ResolveOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	result, err := i.svc.Resolve(ctx, choice)
	if err != nil {
		return sessiondto.ResolveOutput{}, err
	}
	out := sessiondto.ResolveOutput{
		Choice:    string(result.Choice),
		Open:      toOpenOutput(result.Open),
		ExportErr: result.ExportErr,
	}
	if result.Export != nil {
		exported := toExportOutput(*result.Export)
		out.Export = &exported
	}
	return out, nil
}

func (i *Interactor) RecordBookmark(ctx context.Context, positionMs int) (sessiondto.RecordOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	idx, err := i.svc.Record(ctx, positionMs)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	return i.recordOutput(idx), nil
}

func (i *Interactor) RecordCurrent(ctx context.Context) (sessiondto.RecordOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	idx, err := i.svc.RecordCurrent(ctx)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	return i.recordOutput(idx), nil
}

func (i *Interactor) recordOutput(idx int) sessiondto.RecordOutput {
	current := i.svc.Current()
	return sessiondto.RecordOutput{Bookmark: bookmarkOutput(current, idx), Count: len(current.Bookmarks)}
}

func (i *Interactor) HasUnsaved(_ context.Context) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.HasUnsaved()
}

func (i *Interactor) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	result, err := i.svc.Export(ctx)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return toExportOutput(result), nil
}

func (i *Interactor) Preview(_ context.Context) (sessiondto.NoteOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	note, err := i.svc.Note()
	if err != nil {
		return sessiondto.NoteOutput{}, err
	}
	return toNoteOutput(note), nil
}

func (i *Interactor) DiscardSession(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.Discard(ctx)
}

func (i *Interactor) Restore(ctx context.Context, input sessiondto.RestoreInput) (sessiondto.RestoreOutput, error) {
	mode := domain.RestoreMode(input.Mode)
	if mode == "" {
		mode = domain.RestoreFull
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	result, err := i.svc.Restore(ctx, mode)
	if err != nil {
		return sessiondto.RestoreOutput{}, err
	}
	return sessiondto.RestoreOutput{
		Restored:            result.Restored,
		DocumentRef:         result.Session.DocumentRef,
		DisplayName:         result.Session.DisplayName,
		Count:               len(result.Session.Bookmarks),
		PositionMs:          result.Session.LastPositionMs,
		PlaybackUnavailable: result.PlaybackUnavailable,
	}, nil
}

func (i *Interactor) Persist(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.Persist(ctx)
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	current := i.svc.Current()
	out := sessiondto.StatusOutput{
		DocumentRef:      current.DocumentRef,
		DisplayName:      current.DisplayName,
		Bookmarks:        make([]sessiondto.BookmarkOutput, 0, len(current.Bookmarks)),
		Unsaved:          current.HasUnsaved(),
		PlaybackAttached: i.svc.Attached(),
		PositionMs:       i.svc.Position(ctx),
		ShareTarget:      i.svc.ShareTarget(ctx),
		LastFolder:       i.svc.LastFolder(ctx),
	}
	for idx := range current.Bookmarks {
		out.Bookmarks = append(out.Bookmarks, bookmarkOutput(current, idx))
	}
	if pending := i.svc.Pending(); pending != nil {
		out.Pending = &sessiondto.PendingOutput{Ref: pending.Ref, Name: pending.Name}
	}
	return out, nil
}

func (i *Interactor) SetShareTarget(ctx context.Context, name string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.SetShareTarget(ctx, name)
}

func (i *Interactor) ShareTarget(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.ShareTarget(ctx), nil
}

func (i *Interactor) WatchDocument(ctx context.Context) (<-chan sessiondto.DocumentEvent, error) {
	i.mu.Lock()
	events, err := i.svc.Watch(ctx)
	i.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make(chan sessiondto.DocumentEvent)
	go func() {
		defer close(out)
		for ev := range events {
			select {
			case out <- sessiondto.DocumentEvent{Ref: ev.Ref, Kind: ev.Kind}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func toOpenOutput(result service.OpenResult) sessiondto.OpenOutput {
	out := sessiondto.OpenOutput{
		Outcome:             string(result.Outcome),
		DocumentRef:         result.Session.DocumentRef,
		DisplayName:         result.Session.DisplayName,
		PlaybackUnavailable: result.PlaybackUnavailable,
	}
	if result.Pending != nil {
		out.Pending = &sessiondto.PendingOutput{Ref: result.Pending.Ref, Name: result.Pending.Name}
	}
	return out
}

func toNoteOutput(note domain.Note) sessiondto.NoteOutput {
	return sessiondto.NoteOutput{Subject: note.Subject, Body: note.Body, MIME: note.MIME, Count: note.Count}
}

func toExportOutput(result service.ExportResult) sessiondto.ExportOutput {
	return sessiondto.ExportOutput{Note: toNoteOutput(result.Note), Route: result.Route, Target: result.Target}
}

func bookmarkOutput(s domain.Session, idx int) sessiondto.BookmarkOutput {
	return sessiondto.BookmarkOutput{
		Index:      idx,
		PositionMs: s.Bookmarks[idx],
		Time:       timecode.Format(s.Bookmarks[idx]),
		Exported:   s.Exported[idx],
	}
}
