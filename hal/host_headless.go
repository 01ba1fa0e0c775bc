package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	HostConfig
	Enabled bool
	Hz      int
	Ticks   uint64

	// Progress shows a progress bar on a terminal stderr when Ticks is set.
	Progress bool
}

// RunHeadless runs the renderer without opening a window. newApp's step runs
// once per tick until ctx is done, Ticks steps have run, or the step fails.
// A step returning ErrQuit ends the run without error.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(cfg.HostConfig)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var bar *progressbar.ProgressBar
	if cfg.Progress && cfg.Ticks > 0 && term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(int64(cfg.Ticks), "rendering")
		defer bar.Close()
	}

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if bar != nil {
				_ = bar.Add(1)
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
