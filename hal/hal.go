package hal

import (
	"context"
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoPin          = errors.New("no such pin")
)

// Board pin names. Every backend exposes its lines under these names.
const (
	PinLatch  = "LATCH"  // 74HC595 storage register clock
	PinClock  = "SFTCLK" // 74HC595 shift register clock
	PinData   = "SDI"    // serial data into the chain
	PinReset  = "S1"     // reset button, active low
	PinMode   = "S3"     // mode-hold button, active low
	ChannelA0 = "A0"     // potentiometer
)

// Timer runs handlers periodically outside the main loop, the way a hardware
// timer interrupt would.
//
// Handlers must be short and must not block.
type Timer interface {
	Attach(period time.Duration, handler func()) (detach func())
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	Analog() Analog
	Timer() Timer
}

// Runner is the firmware as driven by a host front end.
type Runner interface {
	// Step runs one iteration of the main loop.
	Step() error
	// Run loops until ctx is done.
	Run(ctx context.Context) error
	// Close detaches the timer handlers.
	Close() error
}
