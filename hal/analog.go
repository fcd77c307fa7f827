package hal

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Analog provides access to analog input channels.
type Analog interface {
	ChannelCount() int
	Channel(id int) AnalogPin
}

// AnalogPin is a single analog input. Read blocks for one conversion and
// returns the sample normalised to [0, 1] of the reference voltage.
type AnalogPin interface {
	Name() string
	Read() (float64, error)
}

// FindChannel returns the analog channel called name.
func FindChannel(a Analog, name string) (AnalogPin, error) {
	if a == nil {
		return nil, fmt.Errorf("analog: channel %s: %w", name, ErrNoPin)
	}
	for i := 0; i < a.ChannelCount(); i++ {
		ch := a.Channel(i)
		if ch != nil && ch.Name() == name {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("analog: channel %s: %w", name, ErrNoPin)
}

type nullAnalog struct{}

func (nullAnalog) ChannelCount() int        { return 0 }
func (nullAnalog) Channel(id int) AnalogPin { return nil }

type virtualAnalog struct {
	channels []AnalogPin
}

func newVirtualAnalog(channels ...AnalogPin) Analog {
	if len(channels) == 0 {
		return nullAnalog{}
	}
	return &virtualAnalog{channels: channels}
}

func (a *virtualAnalog) ChannelCount() int { return len(a.channels) }

func (a *virtualAnalog) Channel(id int) AnalogPin {
	if id < 0 || id >= len(a.channels) {
		return nil
	}
	return a.channels[id]
}

// potChannel is a simulated potentiometer wiper. The stored value is not
// clamped so over-range inputs can be simulated.
type potChannel struct {
	name string
	bits atomic.Uint64
}

func newPotChannel(name string, initial float64) *potChannel {
	p := &potChannel{name: name}
	p.Set(initial)
	return p
}

func (p *potChannel) Name() string { return p.name }

func (p *potChannel) Read() (float64, error) {
	return math.Float64frombits(p.bits.Load()), nil
}

// Set moves the wiper.
func (p *potChannel) Set(v float64) {
	p.bits.Store(math.Float64bits(v))
}

// Add moves the wiper by delta, staying within [0, 1].
func (p *potChannel) Add(delta float64) float64 {
	for {
		old := p.bits.Load()
		v := math.Float64frombits(old) + delta
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		if p.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}
