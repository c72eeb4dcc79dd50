// Package timecode converts between millisecond offsets and HH:MM:SS.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "audiomark/internal/platform/errors"
)

const maxSeconds = math.MaxInt / 1000

// Format truncates ms to whole seconds. Negative values format as zero.
func Format(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Parse accepts plain milliseconds, MM:SS or HH:MM:SS. The leading field is
// unbounded so "75:00" is seventy-five minutes.
func Parse(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty time", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(raw, ":") {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return 0, fmt.Errorf("%w: invalid milliseconds %q", apperrors.ErrInvalidInput, raw)
		}
		return ms, nil
	}
	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: invalid time %q", apperrors.ErrInvalidInput, raw)
	}
	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: invalid time %q", apperrors.ErrInvalidInput, raw)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: field out of range in %q", apperrors.ErrInvalidInput, raw)
		}
		if total > (maxSeconds-n)/60 {
			return 0, fmt.Errorf("%w: time too large %q", apperrors.ErrInvalidInput, raw)
		}
		total = total*60 + n
	}
	return total * 1000, nil
}
