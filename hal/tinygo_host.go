//go:build tinygo && !baremetal

package hal

import (
	"time"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	panel  *Panel
	gpio   GPIO
	analog Analog
	timer  *tinyGoTimer
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: the shift chain is simulated and the visible display is
// logged once a second.
func New() HAL {
	l := &tinyGoHostLogger{}
	panel := NewPanel()
	chain := NewShiftChain(panel.Latch)
	latch, clock, data := chain.Pins()
	reset, mode := newButtonPin(PinReset), newButtonPin(PinMode)
	h := &tinyGoHostHAL{
		logger: l,
		panel:  panel,
		gpio:   newVirtualGPIO([]GPIOPin{latch, clock, data, reset, mode}),
		analog: newVirtualAnalog(newPotChannel(ChannelA0, 0)),
		timer:  newTinyGoTimer(),
	}
	h.timer.Attach(time.Second, func() {
		l.WriteLineString("display: " + panel.Text())
	})
	return h
}

func (h *tinyGoHostHAL) Logger() Logger { return h.logger }
func (h *tinyGoHostHAL) GPIO() GPIO     { return h.gpio }
func (h *tinyGoHostHAL) Analog() Analog { return h.analog }
func (h *tinyGoHostHAL) Timer() Timer   { return h.timer }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
