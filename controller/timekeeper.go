package controller

import (
	"sync/atomic"

	"segclock/sevenseg"
)

// TimeKeeper counts elapsed seconds, rolling over after 99:59.
//
// Tick is called from timer context; Reset and Read from the main loop.
type TimeKeeper struct {
	seconds atomic.Uint32
}

// Tick advances the count by one second.
func (k *TimeKeeper) Tick() {
	for {
		old := k.seconds.Load()
		next := old + 1
		if next >= sevenseg.WrapSeconds {
			next = 0
		}
		if k.seconds.CompareAndSwap(old, next) {
			return
		}
	}
}

// Reset sets the count to zero.
func (k *TimeKeeper) Reset() {
	k.seconds.Store(0)
}

// Read returns the elapsed seconds, always in [0, 5999].
func (k *TimeKeeper) Read() uint32 {
	return k.seconds.Load()
}
