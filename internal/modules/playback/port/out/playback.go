package out

import "context"

type SourceLocator interface {
	// Locate returns the readable local file behind ref.
	Locate(ctx context.Context, ref string) (string, error)
}

type DurationProber interface {
	// Probe returns the media length in milliseconds.
	Probe(ctx context.Context, path string) (int, error)
}

type AudioOutput interface {
	Start(ctx context.Context, path string, offsetMs int, rate float64) error
	Stop() error
}
