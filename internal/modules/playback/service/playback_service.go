package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"audiomark/internal/modules/playback/domain"
	playbackout "audiomark/internal/modules/playback/port/out"
	"audiomark/internal/platform/clock"
	apperrors "audiomark/internal/platform/errors"
)

type PlaybackService struct {
	clock   clock.Clock
	locator playbackout.SourceLocator
	prober  playbackout.DurationProber
	output  playbackout.AudioOutput
	speeds  []float64
	logger  hclog.Logger

	ref       string
	path      string
	transport *domain.Transport
	completed bool
	// fired is set once per completion and consumed by TakeCompletion.
	fired bool
}

func NewPlaybackService(
	clk clock.Clock,
	locator playbackout.SourceLocator,
	prober playbackout.DurationProber,
	output playbackout.AudioOutput,
	speeds []float64,
	logger hclog.Logger,
) *PlaybackService {
	if len(speeds) == 0 {
		speeds = domain.DefaultSpeeds
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PlaybackService{
		clock:   clk,
		locator: locator,
		prober:  prober,
		output:  output,
		speeds:  speeds,
		logger:  logger.Named("playback"),
	}
}

func (s *PlaybackService) Load(ctx context.Context, ref string, startMs int) (domain.Snapshot, error) {
	path, err := s.locator.Locate(ctx, ref)
	if err != nil {
		return domain.Snapshot{}, err
	}
	duration := 0
	if s.prober != nil {
		d, err := s.prober.Probe(ctx, path)
		if err != nil {
			s.logger.Warn("duration unknown", "path", path, "error", err)
		} else {
			duration = d
		}
	}
	s.Unload()
	transport := domain.NewTransport(duration, startMs)
	s.ref, s.path, s.transport = ref, path, &transport
	s.logger.Info("loaded", "ref", ref, "duration_ms", duration, "start_ms", startMs)
	return s.snapshot(), nil
}

func (s *PlaybackService) Unload() {
	if s.transport == nil {
		return
	}
	s.stopOutput()
	s.ref, s.path, s.transport = "", "", nil
	s.completed, s.fired = false, false
}

func (s *PlaybackService) Play(ctx context.Context) (domain.Snapshot, error) {
	if err := s.requireLoaded(); err != nil {
		return domain.Snapshot{}, err
	}
	now := s.clock.Now()
	if s.transport.Playing() {
		return s.settle(), nil
	}
	s.transport.Play(now)
	s.completed = false
	s.startOutput(ctx, now)
	return s.settle(), nil
}

func (s *PlaybackService) Pause() (domain.Snapshot, error) {
	if err := s.requireLoaded(); err != nil {
		return domain.Snapshot{}, err
	}
	snap := s.settle()
	if s.transport.Playing() {
		s.transport.Pause(s.clock.Now())
		s.stopOutput()
		snap = s.snapshot()
	}
	return snap, nil
}

func (s *PlaybackService) Toggle(ctx context.Context) (domain.Snapshot, error) {
	if err := s.requireLoaded(); err != nil {
		return domain.Snapshot{}, err
	}
	if s.settle().Playing {
		return s.Pause()
	}
	return s.Play(ctx)
}

func (s *PlaybackService) SeekTo(ctx context.Context, positionMs int) (domain.Snapshot, error) {
	if err := s.requireLoaded(); err != nil {
		return domain.Snapshot{}, err
	}
	now := s.clock.Now()
	s.transport.SeekTo(now, positionMs)
	s.completed = false
	if s.transport.Playing() {
		s.startOutput(ctx, now)
	}
	return s.settle(), nil
}

func (s *PlaybackService) SeekBy(ctx context.Context, deltaMs int) (domain.Snapshot, error) {
	if err := s.requireLoaded(); err != nil {
		return domain.Snapshot{}, err
	}
	return s.SeekTo(ctx, s.transport.Position(s.clock.Now())+deltaMs)
}

func (s *PlaybackService) CycleSpeed(ctx context.Context) (domain.Snapshot, error) {
	if err := s.requireLoaded(); err != nil {
		return domain.Snapshot{}, err
	}
	now := s.clock.Now()
	next := domain.NextSpeed(s.speeds, s.transport.Rate())
	s.transport.SetRate(now, next)
	if s.transport.Playing() {
		s.startOutput(ctx, now)
	}
	s.logger.Debug("speed changed", "rate", next)
	return s.settle(), nil
}

func (s *PlaybackService) Status() domain.Snapshot {
	if s.transport == nil {
		return domain.Snapshot{}
	}
	return s.settle()
}

// TakeCompletion reports a completion that has not been delivered yet.
func (s *PlaybackService) TakeCompletion() (domain.Snapshot, bool) {
	if !s.fired {
		return domain.Snapshot{}, false
	}
	s.fired = false
	return s.snapshot(), true
}

func (s *PlaybackService) settle() domain.Snapshot {
	now := s.clock.Now()
	if s.transport.Playing() && s.transport.AtEnd(now) {
		s.transport.Pause(now)
		s.stopOutput()
		s.completed = true
		s.fired = true
		s.logger.Info("completed", "ref", s.ref)
	}
	return s.snapshot()
}

func (s *PlaybackService) snapshot() domain.Snapshot {
	if s.transport == nil {
		return domain.Snapshot{}
	}
	return domain.Snapshot{
		Ref:        s.ref,
		Path:       s.path,
		Loaded:     true,
		Playing:    s.transport.Playing(),
		Completed:  s.completed,
		PositionMs: s.transport.Position(s.clock.Now()),
		DurationMs: s.transport.DurationMs,
		Rate:       s.transport.Rate(),
	}
}

func (s *PlaybackService) requireLoaded() error {
	if s.transport == nil {
		return fmt.Errorf("%w: playback not loaded", apperrors.ErrNoActiveDocument)
	}
	return nil
}

func (s *PlaybackService) startOutput(ctx context.Context, now time.Time) {
	if s.output == nil {
		return
	}
	if err := s.output.Start(ctx, s.path, s.transport.Position(now), s.transport.Rate()); err != nil {
		s.logger.Warn("audio output failed", "error", err)
	}
}

func (s *PlaybackService) stopOutput() {
	if s.output == nil {
		return
	}
	if err := s.output.Stop(); err != nil {
		s.logger.Warn("stop audio output", "error", err)
	}
}
