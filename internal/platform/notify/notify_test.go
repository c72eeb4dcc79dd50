package notify_test

import (
	"testing"

	"audiomark/internal/platform/notify"
)

func TestDisabledNotifierIsNop(t *testing.T) {
	t.Parallel()
	n := notify.New(false, nil)
	if _, ok := n.(notify.Nop); !ok {
		t.Fatalf("expected Nop notifier, got %T", n)
	}
	if err := n.Notify("audiomark", "exported"); err != nil {
		t.Fatalf("nop notify: %v", err)
	}
}
