package in

import (
	"context"

	sessiondto "audiomark/internal/modules/session/dto"
	sessionin "audiomark/internal/modules/session/port/in"
	"audiomark/internal/platform/timecode"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Restore(ctx context.Context, mode string) (sessiondto.RestoreOutput, error) {
	return h.usecase.Restore(ctx, sessiondto.RestoreInput{Mode: mode})
}

// Open opens ref and, when the switch is deferred, resolves it with
// onUnsaved straight away. An empty onUnsaved leaves the switch pending.
func (h CLIHandler) Open(ctx context.Context, ref, onUnsaved string) (sessiondto.OpenOutput, *sessiondto.ResolveOutput, error) {
	out, err := h.usecase.OpenDocument(ctx, sessiondto.OpenInput{Ref: ref})
	if err != nil || out.Pending == nil || onUnsaved == "" {
		return out, nil, err
	}
	resolved, err := h.usecase.ResolvePendingSwitch(ctx, sessiondto.ResolveInput{Choice: onUnsaved})
	if err != nil {
		return out, nil, err
	}
	return resolved.Open, &resolved, nil
}

// Mark records a bookmark at an explicit time (ms, MM:SS or HH:MM:SS), or at
// the playhead when at is empty.
func (h CLIHandler) Mark(ctx context.Context, at string) (sessiondto.RecordOutput, error) {
	if at == "" {
		return h.usecase.RecordCurrent(ctx)
	}
	ms, err := timecode.Parse(at)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	return h.usecase.RecordBookmark(ctx, ms)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Preview(ctx context.Context) (sessiondto.NoteOutput, error) {
	return h.usecase.Preview(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) error {
	return h.usecase.DiscardSession(ctx)
}

func (h CLIHandler) Persist(ctx context.Context) error {
	return h.usecase.Persist(ctx)
}

func (h CLIHandler) ShareTarget(ctx context.Context) (string, error) {
	return h.usecase.ShareTarget(ctx)
}

func (h CLIHandler) SetShareTarget(ctx context.Context, name string) error {
	return h.usecase.SetShareTarget(ctx, name)
}
