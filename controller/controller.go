// Package controller runs the display main loop: it samples the buttons,
// keeps time, and refreshes one digit of the display per refresh tick.
package controller

import (
	"context"
	"fmt"
	"time"

	"segclock/hal"
	"segclock/sevenseg"
)

const (
	// TickPeriod is the interval between elapsed-time increments.
	TickPeriod = time.Second
	// RefreshPeriod is the interval between digit refreshes.
	RefreshPeriod = 2 * time.Millisecond
)

// FrameWriter puts one multiplexed frame on the display.
type FrameWriter interface {
	WriteFrame(f sevenseg.Frame) error
}

// Controller owns the loop state. Only the elapsed counter and the refresh
// flag are touched from timer handlers.
type Controller struct {
	input *InputSampler
	out   FrameWriter
	log   hal.Logger

	time    TimeKeeper
	refresh *RefreshFlag

	mode sevenseg.Mode
	slot int
}

// New returns a controller in TIME mode at slot 0 with the clock at 00:00.
func New(input *InputSampler, out FrameWriter, log hal.Logger) (*Controller, error) {
	if input == nil || out == nil {
		return nil, fmt.Errorf("controller: missing input or output")
	}
	return &Controller{
		input:   input,
		out:     out,
		log:     log,
		refresh: NewRefreshFlag(),
		mode:    sevenseg.ModeTime,
	}, nil
}

// Attach installs the 1 s tick and 2 ms refresh handlers on t. The returned
// func detaches both.
func (c *Controller) Attach(t hal.Timer) (detach func()) {
	stopTick := t.Attach(TickPeriod, c.time.Tick)
	stopRefresh := t.Attach(RefreshPeriod, c.refresh.Set)
	return func() {
		stopRefresh()
		stopTick()
	}
}

// Step runs one loop iteration.
func (c *Controller) Step() error {
	s, err := c.input.Sample()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	if s.ResetEdge {
		c.time.Reset()
		c.logf("input: reset")
	}
	if s.Mode != c.mode {
		c.mode = s.Mode
		c.logf("input: mode %s", s.Mode)
	}

	if !c.refresh.Take() {
		return nil
	}

	var f sevenseg.Frame
	switch c.mode {
	case sevenseg.ModeVoltage:
		mv, err := c.input.Millivolts()
		if err != nil {
			return fmt.Errorf("controller: %w", err)
		}
		f = sevenseg.VoltageFrame(c.slot, mv)
	default:
		f = sevenseg.TimeFrame(c.slot, c.time.Read())
	}
	if err := c.out.WriteFrame(f); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	c.slot = (c.slot + 1) % sevenseg.Digits
	return nil
}

// Run calls Step until ctx is done, sleeping on the refresh flag in between.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.refresh.Wake():
		}
	}
}

// Mode returns the mode used for the most recent iteration.
func (c *Controller) Mode() sevenseg.Mode { return c.mode }

// Slot returns the digit slot the next refresh will render.
func (c *Controller) Slot() int { return c.slot }

// Elapsed returns the elapsed seconds.
func (c *Controller) Elapsed() uint32 { return c.time.Read() }

// TimeKeeper exposes the elapsed counter.
func (c *Controller) TimeKeeper() *TimeKeeper { return &c.time }

// Refresh exposes the refresh flag.
func (c *Controller) Refresh() *RefreshFlag { return c.refresh }

func (c *Controller) logf(format string, args ...any) {
	if c.log == nil {
		return
	}
	c.log.WriteLineString(fmt.Sprintf(format, args...))
}
