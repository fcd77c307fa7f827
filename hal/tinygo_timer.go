//go:build tinygo

package hal

import "time"

// tinyGoTimer paces each handler with its own goroutine and time.Ticker.
type tinyGoTimer struct{}

func newTinyGoTimer() *tinyGoTimer {
	return &tinyGoTimer{}
}

func (t *tinyGoTimer) Attach(period time.Duration, handler func()) (detach func()) {
	if period <= 0 || handler == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				handler()
			}
		}
	}()
	stopped := false
	return func() {
		if !stopped {
			stopped = true
			close(done)
		}
	}
}
