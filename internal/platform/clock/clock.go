package clock

import "time"

// Clock abstracts time to keep transports and usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Manual is a settable clock for tests and offline tooling.
type Manual struct {
	At time.Time
}

func (m *Manual) Now() time.Time {
	return m.At
}

func (m *Manual) Advance(d time.Duration) {
	m.At = m.At.Add(d)
}
