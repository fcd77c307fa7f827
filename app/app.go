// Package app wires the display controller to a board.
package app

import (
	"context"
	"fmt"

	"segclock/controller"
	"segclock/hal"
	"segclock/internal/buildinfo"
	"segclock/shiftreg"
)

// System is the firmware bound to one HAL.
type System struct {
	h      hal.HAL
	c      *controller.Controller
	detach func()
}

// New locates the board lines, builds the controller and starts its timer
// handlers.
func New(h hal.HAL) (*System, error) {
	pin := func(name string) (hal.GPIOPin, error) {
		return hal.FindPin(h.GPIO(), name)
	}
	latch, err := pin(hal.PinLatch)
	if err != nil {
		return nil, err
	}
	clock, err := pin(hal.PinClock)
	if err != nil {
		return nil, err
	}
	data, err := pin(hal.PinData)
	if err != nil {
		return nil, err
	}
	reset, err := pin(hal.PinReset)
	if err != nil {
		return nil, err
	}
	mode, err := pin(hal.PinMode)
	if err != nil {
		return nil, err
	}
	pot, err := hal.FindChannel(h.Analog(), hal.ChannelA0)
	if err != nil {
		return nil, err
	}

	drv, err := shiftreg.New(latch, clock, data)
	if err != nil {
		return nil, err
	}
	in, err := controller.NewInputSampler(reset, mode, pot)
	if err != nil {
		return nil, err
	}
	c, err := controller.New(in, drv, h.Logger())
	if err != nil {
		return nil, err
	}

	s := &System{h: h, c: c}
	s.logf("segclock %s: mode %s", buildinfo.Short(), c.Mode())
	s.detach = c.Attach(h.Timer())
	return s, nil
}

// NewRunner is New for the host front ends.
func NewRunner(h hal.HAL) (hal.Runner, error) {
	return New(h)
}

// Run starts the firmware and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	defer func() {
		if v := recover(); v != nil {
			logPanic(h.Logger(), v)
			select {}
		}
	}()

	s, err := New(h)
	if err != nil {
		logError(h.Logger(), err)
		select {}
	}
	if err := s.Run(context.Background()); err != nil {
		logError(h.Logger(), err)
	}
	select {}
}

// Step runs one main loop iteration.
func (s *System) Step() error { return s.c.Step() }

// Run runs the main loop until ctx is done or an iteration fails.
func (s *System) Run(ctx context.Context) error { return s.c.Run(ctx) }

// Close detaches the timer handlers.
func (s *System) Close() error {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	return nil
}

// Controller exposes the running controller.
func (s *System) Controller() *controller.Controller { return s.c }

func (s *System) logf(format string, args ...any) {
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
