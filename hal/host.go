//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Sim simulates the board: the firmware's output lines feed a 74HC595 chain
// whose latched frames light a Panel, and the front ends press the buttons
// and turn the pot.
type Sim struct {
	logger *hostLogger
	chain  *ShiftChain
	panel  *Panel
	reset  *buttonPin
	mode   *buttonPin
	pot    *potChannel
	gpio   GPIO
	analog Analog
	timer  Timer
}

// New returns a host HAL implementation running on wall-clock timers.
func New() HAL {
	return NewSim(newHostTimer(), os.Stdout)
}

// NewSim returns a simulated board paced by t that logs to w.
func NewSim(t Timer, w io.Writer) *Sim {
	panel := NewPanel()
	chain := NewShiftChain(panel.Latch)
	latch, clock, data := chain.Pins()
	h := &Sim{
		logger: &hostLogger{w: w},
		chain:  chain,
		panel:  panel,
		reset:  newButtonPin(PinReset),
		mode:   newButtonPin(PinMode),
		pot:    newPotChannel(ChannelA0, 0),
		timer:  t,
	}
	h.gpio = newVirtualGPIO([]GPIOPin{latch, clock, data, h.reset, h.mode})
	h.analog = newVirtualAnalog(h.pot)
	return h
}

func (h *Sim) Logger() Logger { return h.logger }
func (h *Sim) GPIO() GPIO     { return h.gpio }
func (h *Sim) Analog() Analog { return h.analog }
func (h *Sim) Timer() Timer   { return h.timer }

// Panel returns the simulated display.
func (h *Sim) Panel() *Panel { return h.panel }

// Press closes the named button: "reset", "mode", S1 or S3.
func (h *Sim) Press(name string) error {
	b, err := h.button(name)
	if err != nil {
		return err
	}
	b.Press()
	return nil
}

// Release opens the named button.
func (h *Sim) Release(name string) error {
	b, err := h.button(name)
	if err != nil {
		return err
	}
	b.Release()
	return nil
}

// SetPot moves the potentiometer to v, a fraction of full scale.
func (h *Sim) SetPot(v float64) { h.pot.Set(v) }

// button returns the switch a front end refers to as name: "reset" or
// "mode", or the pin names S1 and S3.
func (h *Sim) button(name string) (*buttonPin, error) {
	switch name {
	case "reset", PinReset:
		return h.reset, nil
	case "mode", PinMode:
		return h.mode, nil
	}
	return nil, fmt.Errorf("gpio: pin %s: %w", name, ErrNoPin)
}

func setButton(b *buttonPin, down bool) {
	if down {
		b.Press()
	} else {
		b.Release()
	}
}

// status is a one-line summary of the simulated inputs.
func (h *Sim) status() string {
	held := func(b *buttonPin) string {
		if b.Pressed() {
			return "down"
		}
		return "up"
	}
	pot, _ := h.pot.Read()
	return fmt.Sprintf("S1 %s  S3 %s  A0 %.3f", held(h.reset), held(h.mode), pot)
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
