package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/abedrayen/Portfolio/iconcloud/texture"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz     int
	Ticks  uint64
	Width  int
	Height int

	// Snapshot, if set, receives the last rendered frame.
	Snapshot func(img *image.RGBA) error

	Log log.FieldLogger
}

// RunHeadless drives the app from a ticker without opening a window.
//
// Time advances by one tick per step, so runs are reproducible regardless of
// host speed. The app is drawn once, onto a software canvas, when the run
// ends. The run ends after cfg.Ticks steps (0 means never), when ctx is done,
// or when Step returns ErrQuit.
func RunHeadless(ctx context.Context, newApp NewAppFunc, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size: %dx%d", cfg.Width, cfg.Height)
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Log, newTickClock(d), texture.ImageUploader{})
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	runErr := loop(ctx, t.C, h, app, cfg.Ticks)
	if errors.Is(runErr, ErrQuit) {
		runErr = nil
	}

	canvas := NewCanvas(cfg.Width, cfg.Height)
	app.Draw(canvas)
	if cfg.Snapshot != nil {
		if serr := cfg.Snapshot(canvas.Image()); serr != nil && runErr == nil {
			runErr = serr
		}
	}
	h.logger.WithFields(log.Fields{
		"ticks":   h.clock.Ticks(),
		"elapsed": h.clock.Elapsed(),
	}).Info("headless run finished")
	return runErr
}

func loop(ctx context.Context, tick <-chan time.Time, h *hostHAL, app App, limit uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			h.clock.step(1)
			if err := app.Step(); err != nil {
				return err
			}
			if limit > 0 && h.clock.Ticks() >= limit {
				return nil
			}
		}
	}
}
