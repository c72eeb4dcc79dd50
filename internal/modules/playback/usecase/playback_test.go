package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"audiomark/internal/modules/playback/dto"
	playbackin "audiomark/internal/modules/playback/port/in"
	"audiomark/internal/modules/playback/service"
	"audiomark/internal/modules/playback/usecase"
	"audiomark/internal/platform/clock"
	apperrors "audiomark/internal/platform/errors"
)

type fakeLocator struct {
	missing bool
}

func (f fakeLocator) Locate(_ context.Context, ref string) (string, error) {
	if f.missing {
		return "", apperrors.ErrPlaybackSourceUnavailable
	}
	return "/music/" + ref, nil
}

type fakeProber struct {
	durationMs int
	err        error
}

func (f fakeProber) Probe(context.Context, string) (int, error) { return f.durationMs, f.err }

type recordingOutput struct {
	starts []int
	rates  []float64
	stops  int
}

func (r *recordingOutput) Start(_ context.Context, _ string, offsetMs int, rate float64) error {
	r.starts = append(r.starts, offsetMs)
	r.rates = append(r.rates, rate)
	return nil
}

func (r *recordingOutput) Stop() error {
	r.stops++
	return nil
}

func newPlayback(t *testing.T, durationMs int) (*clock.Manual, *recordingOutput, playbackin.Usecase) {
	t.Helper()
	clk := &clock.Manual{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	out := &recordingOutput{}
	svc := service.NewPlaybackService(clk, fakeLocator{}, fakeProber{durationMs: durationMs}, out, nil, nil)
	return clk, out, usecase.NewInteractor(svc)
}

func TestPlaybackTransportFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk, out, uc := newPlayback(t, 60000)

	st, err := uc.Load(ctx, dto.LoadInput{Ref: "a.mp3"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.DurationMs != 60000 || st.Playing || st.Rate != 1.0 {
		t.Fatalf("unexpected loaded status %+v", st)
	}
	if st, err = uc.Toggle(ctx); err != nil || !st.Playing {
		t.Fatalf("toggle play: %+v %v", st, err)
	}
	clk.Advance(10 * time.Second)
	if st, _ = uc.SeekBy(ctx, -5000); st.PositionMs != 5000 {
		t.Fatalf("expected 5000 after seek back, got %d", st.PositionMs)
	}
	if st, _ = uc.CycleSpeed(ctx); st.Rate != 1.25 {
		t.Fatalf("expected 1.25, got %.2f", st.Rate)
	}
	clk.Advance(4 * time.Second)
	if st, _ = uc.Status(ctx); st.PositionMs != 10000 {
		t.Fatalf("expected 10000 at 1.25x, got %d", st.PositionMs)
	}
	if st, _ = uc.Toggle(ctx); st.Playing {
		t.Fatalf("expected pause")
	}
	if len(out.starts) != 3 || out.starts[1] != 5000 || out.rates[2] != 1.25 {
		t.Fatalf("unexpected output restarts %v %v", out.starts, out.rates)
	}
	if out.stops != 1 {
		t.Fatalf("expected one stop on pause, got %d", out.stops)
	}
}

func TestPlaybackCompletionFiresOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk, _, uc := newPlayback(t, 3000)
	fired := 0
	uc.OnComplete(func(st dto.StatusOutput) {
		fired++
		if !st.Completed || st.PositionMs != 3000 {
			t.Errorf("unexpected completion status %+v", st)
		}
	})
	if _, err := uc.Load(ctx, dto.LoadInput{Ref: "short.mp3"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := uc.Toggle(ctx); err != nil {
		t.Fatalf("play: %v", err)
	}
	clk.Advance(5 * time.Second)
	st, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Playing || !st.Completed {
		t.Fatalf("expected stopped at end, got %+v", st)
	}
	if _, err := uc.Status(ctx); err != nil {
		t.Fatalf("status: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected one completion, got %d", fired)
	}
	if st, _ = uc.Toggle(ctx); !st.Playing || st.PositionMs != 0 {
		t.Fatalf("replay after completion must restart at 0, got %+v", st)
	}
}

func TestPlaybackRequiresLoadedSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &clock.Manual{At: time.Now()}
	svc := service.NewPlaybackService(clk, fakeLocator{missing: true}, fakeProber{err: errors.New("no ffprobe")}, nil, nil, nil)
	uc := usecase.NewInteractor(svc)
	if _, err := uc.Load(ctx, dto.LoadInput{Ref: "gone.mp3"}); !errors.Is(err, apperrors.ErrPlaybackSourceUnavailable) {
		t.Fatalf("expected source unavailable, got %v", err)
	}
	if _, err := uc.Toggle(ctx); !errors.Is(err, apperrors.ErrNoActiveDocument) {
		t.Fatalf("expected no active document, got %v", err)
	}
	st, err := uc.Status(ctx)
	if err != nil || st.Loaded {
		t.Fatalf("expected empty status, got %+v %v", st, err)
	}
}

func TestUnknownDurationIsUnbounded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &clock.Manual{At: time.Now()}
	svc := service.NewPlaybackService(clk, fakeLocator{}, fakeProber{err: errors.New("no ffprobe")}, nil, nil, nil)
	uc := usecase.NewInteractor(svc)
	if _, err := uc.Load(ctx, dto.LoadInput{Ref: "stream.mp3", StartMs: 2000}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := uc.Toggle(ctx); err != nil {
		t.Fatalf("play: %v", err)
	}
	clk.Advance(time.Hour)
	st, _ := uc.Status(ctx)
	if st.DurationMs != 0 || !st.Playing || st.PositionMs != 2000+3600000 {
		t.Fatalf("unexpected unbounded status %+v", st)
	}
}
