package usecase

import (
	"context"
	"sync"

	"audiomark/internal/modules/playback/domain"
	"audiomark/internal/modules/playback/dto"
	playbackin "audiomark/internal/modules/playback/port/in"
	"audiomark/internal/modules/playback/service"
)

type Interactor struct {
	mu         sync.Mutex
	svc        *service.PlaybackService
	onComplete func(dto.StatusOutput)
}

func NewInteractor(svc *service.PlaybackService) playbackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) OnComplete(fn func(dto.StatusOutput)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onComplete = fn
}

// run executes op under the lock and delivers a pending completion after the
// lock is released so the callback may call back into the interactor.
func (i *Interactor) run(op func() (domain.Snapshot, error)) (dto.StatusOutput, error) {
	i.mu.Lock()
	snap, err := op()
	done, fired := i.svc.TakeCompletion()
	fn := i.onComplete
	i.mu.Unlock()
	if fired && fn != nil {
		fn(toStatus(done))
	}
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatus(snap), nil
}

func (i *Interactor) Load(ctx context.Context, input dto.LoadInput) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.Load(ctx, input.Ref, input.StartMs) })
}

func (i *Interactor) Unload(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.svc.Unload()
	return nil
}

func (i *Interactor) Play(ctx context.Context) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.Play(ctx) })
}

func (i *Interactor) Pause(_ context.Context) (dto.StatusOutput, error) {
	return i.run(i.svc.Pause)
}

func (i *Interactor) Toggle(ctx context.Context) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.Toggle(ctx) })
}

func (i *Interactor) SeekTo(ctx context.Context, positionMs int) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.SeekTo(ctx, positionMs) })
}

func (i *Interactor) SeekBy(ctx context.Context, deltaMs int) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.SeekBy(ctx, deltaMs) })
}

func (i *Interactor) CycleSpeed(ctx context.Context) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.CycleSpeed(ctx) })
}

func (i *Interactor) Status(_ context.Context) (dto.StatusOutput, error) {
	return i.run(func() (domain.Snapshot, error) { return i.svc.Status(), nil })
}

func toStatus(s domain.Snapshot) dto.StatusOutput {
	return dto.StatusOutput{
		Ref:        s.Ref,
		Path:       s.Path,
		Loaded:     s.Loaded,
		Playing:    s.Playing,
		Completed:  s.Completed,
		PositionMs: s.PositionMs,
		DurationMs: s.DurationMs,
		Rate:       s.Rate,
	}
}
