package hal

import (
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to general-purpose IO pins.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// FindPin returns the pin called name.
func FindPin(g GPIO, name string) (GPIOPin, error) {
	if g == nil {
		return nil, fmt.Errorf("gpio: pin %s: %w", name, ErrNoPin)
	}
	for i := 0; i < g.PinCount(); i++ {
		p := g.Pin(i)
		if p != nil && p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("gpio: pin %s: %w", name, ErrNoPin)
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int      { return 0 }
func (nullGPIO) Pin(id int) GPIOPin { return nil }

type virtualGPIO struct {
	pins []GPIOPin
}

func newVirtualGPIO(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &virtualGPIO{pins: pins}
}

func (g *virtualGPIO) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *virtualGPIO) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// outputPin is a virtual output line. Every level change is reported to
// onWrite while the pin lock is held, so observers see writes in order.
type outputPin struct {
	mu         sync.Mutex
	name       string
	configured bool
	level      bool
	onWrite    func(level bool)
}

func newOutputPin(name string, onWrite func(level bool)) *outputPin {
	return &outputPin{name: name, onWrite: onWrite}
}

func (p *outputPin) Name() string   { return p.name }
func (p *outputPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *outputPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.configured = true
	return nil
}

func (p *outputPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *outputPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	if p.onWrite != nil {
		p.onWrite(level)
	}
	return nil
}

// buttonPin is a momentary switch to ground. With the pull-up enabled the
// line idles high and reads low while pressed. Without a pull the line
// floats, which reads as low here.
type buttonPin struct {
	mu      sync.Mutex
	name    string
	mode    GPIOMode
	pull    GPIOPull
	set     bool
	pressed bool
}

func newButtonPin(name string) *buttonPin {
	return &buttonPin{name: name}
}

func (p *buttonPin) Name() string   { return p.name }
func (p *buttonPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *buttonPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.pull = pull
	p.set = true
	return nil
}

func (p *buttonPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.set {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if p.pressed {
		return false, nil
	}
	return p.pull == GPIOPullUp, nil
}

func (p *buttonPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// Press closes the switch.
func (p *buttonPin) Press() { p.setPressed(true) }

// Release opens the switch.
func (p *buttonPin) Release() { p.setPressed(false) }

// Pressed reports whether the switch is closed.
func (p *buttonPin) Pressed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pressed
}

func (p *buttonPin) setPressed(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pressed = v
}
