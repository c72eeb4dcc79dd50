package in

import (
	"context"

	"audiomark/internal/modules/session/dto"
)

type Usecase interface {
	OpenDocument(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error)
	ResolvePendingSwitch(ctx context.Context, input dto.ResolveInput) (dto.ResolveOutput, error)
	RecordBookmark(ctx context.Context, positionMs int) (dto.RecordOutput, error)
	RecordCurrent(ctx context.Context) (dto.RecordOutput, error)
	HasUnsaved(ctx context.Context) bool
	Export(ctx context.Context) (dto.ExportOutput, error)
	Preview(ctx context.Context) (dto.NoteOutput, error)
	DiscardSession(ctx context.Context) error
	Restore(ctx context.Context, input dto.RestoreInput) (dto.RestoreOutput, error)
	Persist(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	SetShareTarget(ctx context.Context, name string) error
	ShareTarget(ctx context.Context) (string, error)
	WatchDocument(ctx context.Context) (<-chan dto.DocumentEvent, error)
}
