package in

import (
	"context"

	"audiomark/internal/modules/playback/dto"
	playbackin "audiomark/internal/modules/playback/port/in"
)

type TUIHandler struct {
	usecase playbackin.Usecase
}

func NewTUIHandler(usecase playbackin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Toggle(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Toggle(ctx)
}

func (h TUIHandler) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h TUIHandler) SeekBy(ctx context.Context, deltaMs int) (dto.StatusOutput, error) {
	return h.usecase.SeekBy(ctx, deltaMs)
}

func (h TUIHandler) CycleSpeed(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.CycleSpeed(ctx)
}

func (h TUIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h TUIHandler) OnComplete(fn func(dto.StatusOutput)) {
	h.usecase.OnComplete(fn)
}
