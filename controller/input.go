package controller

import (
	"fmt"

	"segclock/hal"
	"segclock/sevenseg"
)

// Sample is the outcome of one input poll.
type Sample struct {
	// ResetEdge is set on the poll where the reset button goes from
	// released to pressed.
	ResetEdge bool
	// Mode follows the mode button level: held means voltage.
	Mode sevenseg.Mode
}

// InputSampler polls the two buttons and the analog channel. Both buttons
// are wired to ground with pull-ups, so a low level means pressed. Nothing
// is debounced.
type InputSampler struct {
	reset  hal.GPIOPin
	mode   hal.GPIOPin
	analog hal.AnalogPin

	resetWasReleased bool
}

// NewInputSampler configures the buttons as pulled-up inputs.
func NewInputSampler(reset, mode hal.GPIOPin, analog hal.AnalogPin) (*InputSampler, error) {
	if reset == nil || mode == nil || analog == nil {
		return nil, fmt.Errorf("input: missing pin")
	}
	for _, p := range []hal.GPIOPin{reset, mode} {
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
	}
	return &InputSampler{
		reset:            reset,
		mode:             mode,
		analog:           analog,
		resetWasReleased: true,
	}, nil
}

// Sample reads both buttons once.
func (s *InputSampler) Sample() (Sample, error) {
	resetLevel, err := s.reset.Read()
	if err != nil {
		return Sample{}, fmt.Errorf("input: reset: %w", err)
	}
	modeLevel, err := s.mode.Read()
	if err != nil {
		return Sample{}, fmt.Errorf("input: mode: %w", err)
	}

	var out Sample
	pressed := !resetLevel
	out.ResetEdge = pressed && s.resetWasReleased
	s.resetWasReleased = !pressed

	if !modeLevel {
		out.Mode = sevenseg.ModeVoltage
	}
	return out, nil
}

// Millivolts samples the analog channel.
func (s *InputSampler) Millivolts() (int, error) {
	f, err := s.analog.Read()
	if err != nil {
		return 0, fmt.Errorf("input: analog: %w", err)
	}
	return sevenseg.Millivolts(f), nil
}
