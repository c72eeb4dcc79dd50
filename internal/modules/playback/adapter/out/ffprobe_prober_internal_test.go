package out

import "testing"

func TestParseProbe(t *testing.T) {
	t.Parallel()
	ms, err := parseProbe([]byte(`{"format":{"filename":"a.mp3","duration":"125.250000"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ms != 125250 {
		t.Fatalf("expected 125250, got %d", ms)
	}
	if _, err := parseProbe([]byte(`{"format":{}}`)); err == nil {
		t.Fatalf("expected missing duration to fail")
	}
	if _, err := parseProbe([]byte(`not json`)); err == nil {
		t.Fatalf("expected bad json to fail")
	}
}
