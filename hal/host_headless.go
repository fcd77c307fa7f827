//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// virtualStep is the clock resolution of virtual-time runs.
const virtualStep = time.Millisecond

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Virtual drives the timers from a simulated clock as fast as the host
	// allows. It needs a Duration.
	Virtual bool
	// Duration stops the run after this much (virtual or wall) time. Zero
	// runs until ctx is done.
	Duration time.Duration
	Script   *Script
	// Report logs the visible display every Report. The final display is
	// always logged.
	Report time.Duration
}

// RunHeadless runs the firmware against the simulated board without a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (Runner, error), cfg HeadlessConfig) error {
	if cfg.Virtual {
		return runVirtual(ctx, newApp, cfg, os.Stdout)
	}
	return runRealtime(ctx, newApp, cfg, os.Stdout)
}

func runVirtual(ctx context.Context, newApp func(HAL) (Runner, error), cfg HeadlessConfig, w io.Writer) error {
	if cfg.Duration <= 0 {
		return errors.New("headless: virtual time needs a duration")
	}
	clock := NewVirtualTimer()
	h := NewSim(clock, w)
	r, err := newApp(h)
	if err != nil {
		return err
	}
	defer r.Close()

	player := newScriptPlayer(cfg.Script)
	nextReport := cfg.Report
	reported := time.Duration(-1)
	for clock.Now() < cfg.Duration {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, st := range player.due(clock.Now()) {
			if err := st.apply(h); err != nil {
				return fmt.Errorf("script: %w", err)
			}
		}
		clock.Advance(virtualStep)
		if err := r.Step(); err != nil {
			return err
		}
		if cfg.Report > 0 && clock.Now() >= nextReport {
			h.report(clock.Now())
			reported = clock.Now()
			nextReport += cfg.Report
		}
	}
	if reported != clock.Now() {
		h.report(clock.Now())
	}
	return nil
}

func runRealtime(ctx context.Context, newApp func(HAL) (Runner, error), cfg HeadlessConfig, w io.Writer) error {
	h := NewSim(newHostTimer(), w)
	r, err := newApp(h)
	if err != nil {
		return err
	}
	defer r.Close()

	runCtx := ctx
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return r.Run(gctx)
	})
	if cfg.Script != nil {
		g.Go(func() error {
			return playScript(gctx, h, newScriptPlayer(cfg.Script), start)
		})
	}
	if cfg.Report > 0 {
		g.Go(func() error {
			t := time.NewTicker(cfg.Report)
			defer t.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-t.C:
					h.report(time.Since(start))
				}
			}
		})
	}

	err = g.Wait()
	h.report(time.Since(start))
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil
	}
	return err
}

func playScript(ctx context.Context, h *Sim, p *scriptPlayer, start time.Time) error {
	for {
		at, ok := p.until()
		if !ok {
			return nil
		}
		t := time.NewTimer(at - time.Since(start))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
		for _, st := range p.due(time.Since(start)) {
			if err := st.apply(h); err != nil {
				return fmt.Errorf("script: %w", err)
			}
		}
	}
}

func (h *Sim) report(at time.Duration) {
	h.logger.WriteLineString(fmt.Sprintf("display: %s  [%s] %s", h.panel.Text(), at.Truncate(time.Millisecond), h.status()))
}
