package out

import (
	"context"

	playbackdto "audiomark/internal/modules/playback/dto"
	playbackin "audiomark/internal/modules/playback/port/in"
	sessionout "audiomark/internal/modules/session/port/out"
)

type PlaybackAdapter struct {
	playback playbackin.Usecase
}

func NewPlaybackAdapter(playback playbackin.Usecase) sessionout.Player {
	return &PlaybackAdapter{playback: playback}
}

func (a *PlaybackAdapter) Attach(ctx context.Context, ref string) (int, error) {
	status, err := a.playback.Load(ctx, playbackdto.LoadInput{Ref: ref})
	if err != nil {
		return 0, err
	}
	return status.DurationMs, nil
}

func (a *PlaybackAdapter) Detach(ctx context.Context) error {
	return a.playback.Unload(ctx)
}

func (a *PlaybackAdapter) Seek(ctx context.Context, positionMs int) error {
	_, err := a.playback.SeekTo(ctx, positionMs)
	return err
}

func (a *PlaybackAdapter) Position(ctx context.Context) (int, error) {
	status, err := a.playback.Status(ctx)
	if err != nil {
		return 0, err
	}
	return status.PositionMs, nil
}
