package controller

import "sync/atomic"

// RefreshFlag is the single bit shared between the refresh timer and the
// main loop.
type RefreshFlag struct {
	pending atomic.Bool
	wake    chan struct{}
}

// NewRefreshFlag returns a cleared flag.
func NewRefreshFlag() *RefreshFlag {
	return &RefreshFlag{wake: make(chan struct{}, 1)}
}

// Set marks a refresh as pending. It never blocks.
func (f *RefreshFlag) Set() {
	f.pending.Store(true)
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Take clears the flag and reports whether it was set.
func (f *RefreshFlag) Take() bool {
	return f.pending.Swap(false)
}

// Pending reports whether a refresh is pending without clearing it.
func (f *RefreshFlag) Pending() bool {
	return f.pending.Load()
}

// Wake receives after Set has been called. A receive does not guarantee the
// flag is still set; callers must Take it.
func (f *RefreshFlag) Wake() <-chan struct{} {
	return f.wake
}
