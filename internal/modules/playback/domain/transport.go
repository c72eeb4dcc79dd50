package domain

import (
	"math"
	"time"
)

var DefaultSpeeds = []float64{1.0, 1.25, 1.5, 1.75, 2.0}

// Transport is a virtual playhead. While playing, the position advances by
// elapsed wall time multiplied by the rate and is clamped to [0, duration].
// A zero duration is unbounded.
type Transport struct {
	DurationMs int

	anchorMs int
	anchorAt time.Time
	playing  bool
	rate     float64
}

func NewTransport(durationMs, startMs int) Transport {
	t := Transport{DurationMs: durationMs, rate: 1.0}
	t.anchorMs = t.clamp(startMs)
	return t
}

func (t Transport) Playing() bool { return t.playing }

func (t Transport) Rate() float64 {
	if t.rate <= 0 {
		return 1.0
	}
	return t.rate
}

func (t Transport) Position(now time.Time) int {
	if !t.playing {
		return t.anchorMs
	}
	elapsed := now.Sub(t.anchorAt)
	if elapsed < 0 {
		elapsed = 0
	}
	advanced := int(math.Round(float64(elapsed.Milliseconds()) * t.Rate()))
	return t.clamp(t.anchorMs + advanced)
}

// AtEnd reports whether a bounded transport has reached its duration.
func (t Transport) AtEnd(now time.Time) bool {
	return t.DurationMs > 0 && t.Position(now) >= t.DurationMs
}

func (t *Transport) Play(now time.Time) {
	if t.playing {
		return
	}
	if t.AtEnd(now) {
		t.anchorMs = 0
	}
	t.anchorAt = now
	t.playing = true
}

func (t *Transport) Pause(now time.Time) {
	if !t.playing {
		return
	}
	t.anchorMs = t.Position(now)
	t.playing = false
}

func (t *Transport) SeekTo(now time.Time, ms int) {
	t.anchorMs = t.clamp(ms)
	t.anchorAt = now
}

func (t *Transport) SetRate(now time.Time, rate float64) {
	t.anchorMs = t.Position(now)
	t.anchorAt = now
	t.rate = rate
}

func (t Transport) clamp(ms int) int {
	if ms < 0 {
		return 0
	}
	if t.DurationMs > 0 && ms > t.DurationMs {
		return t.DurationMs
	}
	return ms
}

// NextSpeed returns the speed after current in speeds, wrapping around.
func NextSpeed(speeds []float64, current float64) float64 {
	if len(speeds) == 0 {
		speeds = DefaultSpeeds
	}
	for i, s := range speeds {
		if math.Abs(s-current) < 1e-9 {
			return speeds[(i+1)%len(speeds)]
		}
	}
	return speeds[0]
}
