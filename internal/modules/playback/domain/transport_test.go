package domain_test

import (
	"testing"
	"time"

	"audiomark/internal/modules/playback/domain"
)

func TestTransportAdvancesWithRate(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr := domain.NewTransport(60000, 1000)
	if tr.Position(start.Add(time.Hour)) != 1000 {
		t.Fatalf("paused transport must not advance")
	}
	tr.Play(start)
	if got := tr.Position(start.Add(2 * time.Second)); got != 3000 {
		t.Fatalf("expected 3000, got %d", got)
	}
	tr.SetRate(start.Add(2*time.Second), 1.5)
	if got := tr.Position(start.Add(4 * time.Second)); got != 6000 {
		t.Fatalf("expected 6000 after rate change, got %d", got)
	}
	tr.Pause(start.Add(4 * time.Second))
	if got := tr.Position(start.Add(10 * time.Second)); got != 6000 {
		t.Fatalf("expected pause to hold 6000, got %d", got)
	}
}

func TestTransportClampsToDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr := domain.NewTransport(5000, 0)
	tr.Play(start)
	now := start.Add(9 * time.Second)
	if got := tr.Position(now); got != 5000 {
		t.Fatalf("expected clamp at 5000, got %d", got)
	}
	if !tr.AtEnd(now) {
		t.Fatalf("expected transport at end")
	}
	tr.SeekTo(now, -300)
	if got := tr.Position(now); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
}

func TestUnboundedTransport(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr := domain.NewTransport(0, 0)
	tr.Play(start)
	if tr.AtEnd(start.Add(24 * time.Hour)) {
		t.Fatalf("unknown duration must never end")
	}
}

func TestNextSpeedCycles(t *testing.T) {
	t.Parallel()
	speeds := []float64{1.0, 1.25, 1.5, 1.75, 2.0}
	got := []float64{}
	current := 1.0
	for range speeds {
		current = domain.NextSpeed(speeds, current)
		got = append(got, current)
	}
	want := []float64{1.25, 1.5, 1.75, 2.0, 1.0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: expected %.2f, got %.2f", i, want[i], got[i])
		}
	}
	if domain.NextSpeed(speeds, 3.0) != 1.0 {
		t.Fatalf("unknown current speed must reset to first")
	}
}
