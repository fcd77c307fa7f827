// Package shiftreg drives a chain of two 74HC595 shift registers: one byte of
// segment lines and one byte of digit enables.
package shiftreg

import (
	"errors"
	"fmt"

	"segclock/hal"
	"segclock/sevenseg"
)

// Driver bit-bangs frames onto the chain.
type Driver struct {
	latch hal.GPIOPin
	clock hal.GPIOPin
	data  hal.GPIOPin
}

// New configures the three lines as outputs. Line levels are left untouched
// so the register outputs keep whatever they showed at power-up until the
// first Write.
func New(latch, clock, data hal.GPIOPin) (*Driver, error) {
	if latch == nil || clock == nil || data == nil {
		return nil, errors.New("shiftreg: missing pin")
	}
	for _, p := range []hal.GPIOPin{latch, clock, data} {
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			return nil, fmt.Errorf("shiftreg: %w", err)
		}
	}
	return &Driver{latch: latch, clock: clock, data: data}, nil
}

// Write shifts segments then digits, most significant bit first, with the
// latch held low, and raises the latch to show both bytes at once.
//
// On error the latch is left low, so the outputs keep the last complete frame.
func (d *Driver) Write(segments, digits byte) error {
	if err := d.latch.Write(false); err != nil {
		return fmt.Errorf("shiftreg: latch: %w", err)
	}
	if err := d.shiftByte(segments); err != nil {
		return err
	}
	if err := d.shiftByte(digits); err != nil {
		return err
	}
	if err := d.latch.Write(true); err != nil {
		return fmt.Errorf("shiftreg: latch: %w", err)
	}
	return nil
}

// WriteFrame writes f.
func (d *Driver) WriteFrame(f sevenseg.Frame) error {
	return d.Write(f.Segments, f.Select)
}

func (d *Driver) shiftByte(v byte) error {
	for i := 7; i >= 0; i-- {
		if err := d.data.Write(v&(1<<uint(i)) != 0); err != nil {
			return fmt.Errorf("shiftreg: data: %w", err)
		}
		if err := d.clock.Write(false); err != nil {
			return fmt.Errorf("shiftreg: clock: %w", err)
		}
		if err := d.clock.Write(true); err != nil {
			return fmt.Errorf("shiftreg: clock: %w", err)
		}
	}
	return nil
}
