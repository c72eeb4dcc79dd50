package usecase_test

import (
	"context"
	"errors"
	"sync"

	"audiomark/internal/modules/session/domain"
	sessionout "audiomark/internal/modules/session/port/out"
	apperrors "audiomark/internal/platform/errors"
)

type memoryPrefs struct {
	mu      sync.Mutex
	values  map[string]string
	commits int
	failGet bool
}

func newMemoryPrefs() *memoryPrefs {
	return &memoryPrefs{values: map[string]string{}}
}

func (m *memoryPrefs) GetString(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errors.New("disk unreadable")
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryPrefs) GetInt(ctx context.Context, key string) (int, bool, error) {
	raw, ok, err := m.GetString(ctx, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	n := 0
	for _, r := range raw {
		n = n*10 + int(r-'0')
	}
	return n, true, nil
}

func (m *memoryPrefs) Edit() sessionout.Editor {
	return &memoryEditor{prefs: m}
}

func (m *memoryPrefs) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

type memoryEditor struct {
	prefs *memoryPrefs
	ops   []func(map[string]string)
}

func (e *memoryEditor) PutString(key, value string) sessionout.Editor {
	e.ops = append(e.ops, func(m map[string]string) { m[key] = value })
	return e
}

func (e *memoryEditor) PutInt(key string, value int) sessionout.Editor {
	return e.PutString(key, itoa(value))
}

func (e *memoryEditor) Remove(key string) sessionout.Editor {
	e.ops = append(e.ops, func(m map[string]string) { delete(m, key) })
	return e
}

func (e *memoryEditor) Commit(context.Context) error {
	e.prefs.mu.Lock()
	defer e.prefs.mu.Unlock()
	for _, op := range e.ops {
		op(e.prefs.values)
	}
	e.prefs.commits++
	e.ops = nil
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	buf := []byte{}
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	if neg {
		buf = append([]byte{'-'}, buf...)
	}
	return string(buf)
}

type fakePlayer struct {
	durationMs  int
	positionMs  int
	unavailable map[string]bool
	attached    string
	seeks       []int
	detaches    int
}

func (f *fakePlayer) Attach(_ context.Context, ref string) (int, error) {
	if f.unavailable[ref] {
		return 0, apperrors.ErrPlaybackSourceUnavailable
	}
	f.attached = ref
	f.positionMs = 0
	return f.durationMs, nil
}

func (f *fakePlayer) Detach(context.Context) error {
	f.attached = ""
	f.detaches++
	return nil
}

func (f *fakePlayer) Seek(_ context.Context, positionMs int) error {
	f.seeks = append(f.seeks, positionMs)
	f.positionMs = positionMs
	return nil
}

func (f *fakePlayer) Position(context.Context) (int, error) {
	return f.positionMs, nil
}

type fakeSink struct {
	preferredErr error
	chooserErr   error
	notes        []domain.Note
	preferred    []string
}

func (f *fakeSink) Handoff(_ context.Context, note domain.Note, preferred string) (sessionout.Handoff, error) {
	f.preferred = append(f.preferred, preferred)
	if f.preferredErr == nil {
		f.notes = append(f.notes, note)
		return sessionout.Handoff{Route: "preferred", Target: preferred}, nil
	}
	if f.chooserErr == nil {
		f.notes = append(f.notes, note)
		return sessionout.Handoff{Route: "chooser", Target: "chooser"}, nil
	}
	return sessionout.Handoff{}, apperrors.ErrNoShareTargetAvailable
}
