package hal

import (
	"sync"
	"time"
)

// VirtualTimer is a Timer driven by an explicit clock. Handlers run on the
// goroutine that calls Advance, in due-time order, which makes runs
// reproducible.
type VirtualTimer struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	subs   []*virtualSub
}

type virtualSub struct {
	id      int
	period  time.Duration
	due     time.Duration
	handler func()
}

// NewVirtualTimer returns a timer at time zero.
func NewVirtualTimer() *VirtualTimer {
	return &VirtualTimer{}
}

// Attach registers handler to run every period, first at now+period.
func (t *VirtualTimer) Attach(period time.Duration, handler func()) (detach func()) {
	if period <= 0 || handler == nil {
		return func() {}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, &virtualSub{id: id, period: period, due: t.now + period, handler: handler})
	return func() { t.detach(id) }
}

func (t *VirtualTimer) detach(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, s := range t.subs {
		if s.id == id {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			return
		}
	}
}

// Now returns the virtual time elapsed since creation.
func (t *VirtualTimer) Now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

// Advance moves the clock forward by d, firing every handler that falls due.
// Handlers due at the same instant fire in attach order.
func (t *VirtualTimer) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	t.mu.Lock()
	end := t.now + d
	t.mu.Unlock()

	for {
		t.mu.Lock()
		next := t.nextDue(end)
		if next == nil {
			t.now = end
			t.mu.Unlock()
			return
		}
		t.now = next.due
		next.due += next.period
		h := next.handler
		t.mu.Unlock()

		h()
	}
}

func (t *VirtualTimer) nextDue(end time.Duration) *virtualSub {
	var next *virtualSub
	for _, s := range t.subs {
		if s.due > end {
			continue
		}
		if next == nil || s.due < next.due || (s.due == next.due && s.id < next.id) {
			next = s
		}
	}
	return next
}
