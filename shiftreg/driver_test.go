package shiftreg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segclock/hal"
	"segclock/sevenseg"
)

type event struct {
	pin   string
	level bool
}

type trace struct {
	events []event
}

type tracePin struct {
	name    string
	t       *trace
	mode    hal.GPIOMode
	failOn  int
	written int
}

func (p *tracePin) Name() string       { return p.name }
func (p *tracePin) Caps() hal.GPIOCaps { return hal.GPIOCapOutput }

func (p *tracePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	p.mode = mode
	return nil
}

func (p *tracePin) Read() (bool, error) { return false, nil }

func (p *tracePin) Write(level bool) error {
	p.written++
	if p.failOn > 0 && p.written >= p.failOn {
		return errors.New("bus fault")
	}
	p.t.events = append(p.t.events, event{pin: p.name, level: level})
	return nil
}

func newTraced(t *testing.T) (*Driver, *trace, map[string]*tracePin) {
	t.Helper()
	tr := &trace{}
	pins := map[string]*tracePin{
		hal.PinLatch: {name: hal.PinLatch, t: tr},
		hal.PinClock: {name: hal.PinClock, t: tr},
		hal.PinData:  {name: hal.PinData, t: tr},
	}
	d, err := New(pins[hal.PinLatch], pins[hal.PinClock], pins[hal.PinData])
	require.NoError(t, err)
	for _, p := range pins {
		require.Equal(t, hal.GPIOModeOutput, p.mode)
	}
	return d, tr, pins
}

func TestWriteProtocol(t *testing.T) {
	d, tr, _ := newTraced(t)

	const seg, sel = 0xA4, 0xF2
	require.NoError(t, d.Write(seg, sel))

	// latch low, 16 x (data, clock low, clock high), latch high
	require.Len(t, tr.events, 1+16*3+1)
	assert.Equal(t, event{hal.PinLatch, false}, tr.events[0])
	assert.Equal(t, event{hal.PinLatch, true}, tr.events[len(tr.events)-1])

	want := uint16(seg)<<8 | uint16(sel)
	var got uint16
	for i := 0; i < 16; i++ {
		ev := tr.events[1+i*3 : 1+i*3+3]
		assert.Equal(t, hal.PinData, ev[0].pin)
		assert.Equal(t, event{hal.PinClock, false}, ev[1])
		assert.Equal(t, event{hal.PinClock, true}, ev[2])
		got <<= 1
		if ev[0].level {
			got |= 1
		}
	}
	assert.Equal(t, want, got, "segment byte first, MSB first")

	for _, ev := range tr.events[1 : len(tr.events)-1] {
		assert.NotEqual(t, hal.PinLatch, ev.pin, "latch must stay low while shifting")
	}
}

func TestWriteIntoSimulatedChain(t *testing.T) {
	var latched [][2]byte
	chain := hal.NewShiftChain(func(hi, lo byte) {
		latched = append(latched, [2]byte{hi, lo})
	})
	d, err := New(chain.Pins())
	require.NoError(t, err)

	for slot := 0; slot < sevenseg.Digits; slot++ {
		f := sevenseg.TimeFrame(slot, 125)
		require.NoError(t, d.WriteFrame(f))
		require.Len(t, latched, slot+1)
		assert.Equal(t, [2]byte{f.Segments, f.Select}, latched[slot], fmt.Sprintf("slot %d", slot))
	}
	assert.Equal(t, uint64(4), chain.Latches())
}

func TestWriteErrorLeavesLatchLow(t *testing.T) {
	d, tr, pins := newTraced(t)
	pins[hal.PinClock].failOn = 5

	err := d.Write(0x00, 0xFF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shiftreg: clock")

	for _, ev := range tr.events {
		if ev.pin == hal.PinLatch {
			assert.False(t, ev.level)
		}
	}
}

func TestNewRejectsMissingPin(t *testing.T) {
	_, err := New(nil, nil, nil)
	require.Error(t, err)
}
