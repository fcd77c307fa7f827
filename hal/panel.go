package hal

import (
	"sync"

	"segclock/sevenseg"
)

const blankPattern = 0xFF

// Panel simulates the multiplexed display. It keeps the last pattern latched
// for each digit, which is what the eye sees once the digits are scanned fast
// enough.
type Panel struct {
	mu       sync.Mutex
	patterns [sevenseg.Digits]byte
	frames   uint64
	stray    uint64
}

// NewPanel returns a panel with every digit dark.
func NewPanel() *Panel {
	p := &Panel{}
	for i := range p.patterns {
		p.patterns[i] = blankPattern
	}
	return p
}

// Latch shows segments on the digit enabled by sel. Masks that do not
// enable exactly one digit are counted and otherwise ignored.
func (p *Panel) Latch(segments, sel byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	slot, ok := sevenseg.SlotOf(sel)
	if !ok {
		p.stray++
		return
	}
	p.patterns[slot] = segments
	p.frames++
}

// Snapshot returns the patterns currently visible, left to right.
func (p *Panel) Snapshot() [sevenseg.Digits]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.patterns
}

// Text returns the visible digits, e.g. "01.25".
func (p *Panel) Text() string {
	return sevenseg.Text(p.Snapshot())
}

// Frames returns how many digit updates have been shown.
func (p *Panel) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Stray returns how many latched frames selected no digit.
func (p *Panel) Stray() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stray
}
