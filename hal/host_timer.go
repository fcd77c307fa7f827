//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostTimer runs each handler on its own goroutine paced by a time.Ticker.
// Ticks that arrive while a handler is still running are dropped, like a
// timer interrupt that is already pending.
type hostTimer struct{}

func newHostTimer() *hostTimer {
	return &hostTimer{}
}

func (t *hostTimer) Attach(period time.Duration, handler func()) (detach func()) {
	if period <= 0 || handler == nil {
		return func() {}
	}
	done := make(chan struct{})

	go func() {
		tk := time.NewTicker(period)
		defer tk.Stop()
		for {
			select {
			case <-done:
				return
			case <-tk.C:
				handler()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
