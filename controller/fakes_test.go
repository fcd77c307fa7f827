package controller

import (
	"errors"
	"fmt"

	"segclock/hal"
	"segclock/sevenseg"
)

// button is a pulled-up switch to ground.
type button struct {
	name    string
	pull    hal.GPIOPull
	pressed bool
	fail    bool
}

func (b *button) Name() string       { return b.name }
func (b *button) Caps() hal.GPIOCaps { return hal.GPIOCapInput | hal.GPIOCapPullUp }

func (b *button) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	if mode != hal.GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: output unsupported", b.name)
	}
	b.pull = pull
	return nil
}

func (b *button) Read() (bool, error) {
	if b.fail {
		return false, errors.New("read fault")
	}
	if b.pressed {
		return false, nil
	}
	return b.pull == hal.GPIOPullUp, nil
}

func (b *button) Write(bool) error { return errors.New("input only") }

type pot struct {
	value float64
	reads int
}

func (p *pot) Name() string { return hal.ChannelA0 }

func (p *pot) Read() (float64, error) {
	p.reads++
	return p.value, nil
}

type frameLog struct {
	frames []sevenseg.Frame
	err    error
}

func (l *frameLog) WriteFrame(f sevenseg.Frame) error {
	if l.err != nil {
		return l.err
	}
	l.frames = append(l.frames, f)
	return nil
}

type lineLog struct {
	lines []string
}

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type rig struct {
	reset *button
	mode  *button
	pot   *pot
	out   *frameLog
	log   *lineLog
	c     *Controller
}

func newRig() (*rig, error) {
	r := &rig{
		reset: &button{name: hal.PinReset},
		mode:  &button{name: hal.PinMode},
		pot:   &pot{},
		out:   &frameLog{},
		log:   &lineLog{},
	}
	in, err := NewInputSampler(r.reset, r.mode, r.pot)
	if err != nil {
		return nil, err
	}
	r.c, err = New(in, r.out, r.log)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// refresh marks a refresh pending and runs one iteration.
func (r *rig) refresh() error {
	r.c.Refresh().Set()
	return r.c.Step()
}
