package in

import (
	"context"

	"audiomark/internal/modules/playback/dto"
)

type Usecase interface {
	Load(ctx context.Context, input dto.LoadInput) (dto.StatusOutput, error)
	Unload(ctx context.Context) error
	Play(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Toggle(ctx context.Context) (dto.StatusOutput, error)
	SeekTo(ctx context.Context, positionMs int) (dto.StatusOutput, error)
	SeekBy(ctx context.Context, deltaMs int) (dto.StatusOutput, error)
	CycleSpeed(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	// OnComplete registers fn to run when playback reaches the end.
	OnComplete(fn func(dto.StatusOutput))
}
