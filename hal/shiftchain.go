package hal

import "sync"

// ShiftChain simulates two cascaded 74HC595 shift registers. Bits enter on the
// rising edge of the shift clock and reach the outputs on the rising edge of
// the latch, so after 16 clocks the first byte shifted in is the high byte.
type ShiftChain struct {
	mu      sync.Mutex
	data    bool
	clock   bool
	latch   bool
	shift   uint16
	out     uint16
	latches uint64

	onLatch func(hi, lo byte)
}

// NewShiftChain returns a chain with all lines low. onLatch, if set, receives
// each committed 16-bit value split into bytes.
func NewShiftChain(onLatch func(hi, lo byte)) *ShiftChain {
	return &ShiftChain{onLatch: onLatch}
}

// Pins returns the three input lines of the chain as output pins for the
// firmware to drive.
func (c *ShiftChain) Pins() (latch, clock, data GPIOPin) {
	return newOutputPin(PinLatch, c.setLatch),
		newOutputPin(PinClock, c.setClock),
		newOutputPin(PinData, c.setData)
}

// Output returns the latched register value.
func (c *ShiftChain) Output() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out
}

// Latches returns how many times the outputs have been updated.
func (c *ShiftChain) Latches() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latches
}

func (c *ShiftChain) setData(level bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = level
}

func (c *ShiftChain) setClock(level bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rising := level && !c.clock
	c.clock = level
	if !rising {
		return
	}
	c.shift <<= 1
	if c.data {
		c.shift |= 1
	}
}

func (c *ShiftChain) setLatch(level bool) {
	c.mu.Lock()
	rising := level && !c.latch
	c.latch = level
	if !rising {
		c.mu.Unlock()
		return
	}
	c.out = c.shift
	c.latches++
	out := c.out
	c.mu.Unlock()

	if c.onLatch != nil {
		c.onLatch(byte(out>>8), byte(out))
	}
}
