package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"

	playbackout "audiomark/internal/modules/playback/port/out"
)

// ExecAudioOutput drives an ffplay-compatible player process. The process is
// restarted for every play, seek or speed change and killed on pause.
type ExecAudioOutput struct {
	command []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewExecAudioOutput(command []string) playbackout.AudioOutput {
	if len(command) == 0 {
		return SilentOutput{}
	}
	return &ExecAudioOutput{command: append([]string(nil), command...)}
}

func playerArgs(command []string, path string, offsetMs int, rate float64) []string {
	args := append([]string(nil), command[1:]...)
	args = append(args, "-ss", strconv.FormatFloat(float64(offsetMs)/1000, 'f', 3, 64))
	if rate != 1.0 {
		args = append(args, "-af", "atempo="+strconv.FormatFloat(rate, 'f', 2, 64))
	}
	return append(args, path)
}

func (o *ExecAudioOutput) Start(_ context.Context, path string, offsetMs int, rate float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.killLocked()
	cmd := exec.Command(o.command[0], playerArgs(o.command, path, offsetMs, rate)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	o.cmd = cmd
	go func() { _ = cmd.Wait() }()
	return nil
}

func (o *ExecAudioOutput) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.killLocked()
}

func (o *ExecAudioOutput) killLocked() error {
	if o.cmd == nil || o.cmd.Process == nil {
		return nil
	}
	cmd := o.cmd
	o.cmd = nil
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop player: %w", err)
	}
	return nil
}

// SilentOutput tracks the transport without producing sound.
type SilentOutput struct{}

func (SilentOutput) Start(context.Context, string, int, float64) error { return nil }
func (SilentOutput) Stop() error                                       { return nil }
