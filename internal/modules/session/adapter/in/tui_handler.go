package in

import (
	"context"

	sessiondto "audiomark/internal/modules/session/dto"
	sessionin "audiomark/internal/modules/session/port/in"
)

type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

// Restore takes "full" on a plain start and "metadata" when a document is
// about to be opened.
func (h TUIHandler) Restore(ctx context.Context, mode string) (sessiondto.RestoreOutput, error) {
	return h.usecase.Restore(ctx, sessiondto.RestoreInput{Mode: mode})
}

func (h TUIHandler) Open(ctx context.Context, ref string) (sessiondto.OpenOutput, error) {
	return h.usecase.OpenDocument(ctx, sessiondto.OpenInput{Ref: ref})
}

func (h TUIHandler) Resolve(ctx context.Context, choice string) (sessiondto.ResolveOutput, error) {
	return h.usecase.ResolvePendingSwitch(ctx, sessiondto.ResolveInput{Choice: choice})
}

func (h TUIHandler) Mark(ctx context.Context) (sessiondto.RecordOutput, error) {
	return h.usecase.RecordCurrent(ctx)
}

func (h TUIHandler) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx)
}

func (h TUIHandler) Preview(ctx context.Context) (sessiondto.NoteOutput, error) {
	return h.usecase.Preview(ctx)
}

func (h TUIHandler) Discard(ctx context.Context) error {
	return h.usecase.DiscardSession(ctx)
}

func (h TUIHandler) Persist(ctx context.Context) error {
	return h.usecase.Persist(ctx)
}

func (h TUIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h TUIHandler) CycleShareTarget(ctx context.Context, names []string) (string, error) {
	current, err := h.usecase.ShareTarget(ctx)
	if err != nil {
		return "", err
	}
	next := nextName(names, current)
	if next == "" {
		return current, nil
	}
	if err := h.usecase.SetShareTarget(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (h TUIHandler) Watch(ctx context.Context) (<-chan sessiondto.DocumentEvent, error) {
	return h.usecase.WatchDocument(ctx)
}

func nextName(names []string, current string) string {
	if len(names) == 0 {
		return ""
	}
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
