package out

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"

	playbackout "audiomark/internal/modules/playback/port/out"
)

type FFProbeProber struct {
	command string
}

func NewFFProbeProber(command string) playbackout.DurationProber {
	if command == "" {
		command = "ffprobe"
	}
	return &FFProbeProber{command: command}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (p *FFProbeProber) Probe(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, p.command, "-v", "error", "-print_format", "json", "-show_format", path)
	raw, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("run %s: %w", p.command, err)
	}
	return parseProbe(raw)
}

func parseProbe(raw []byte) (int, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, fmt.Errorf("decode probe output: %w", err)
	}
	if out.Format.Duration == "" {
		return 0, fmt.Errorf("probe output has no duration")
	}
	seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("invalid duration %q", out.Format.Duration)
	}
	return int(math.Round(seconds * 1000)), nil
}
