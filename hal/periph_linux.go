//go:build linux && !tinygo

package hal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphConfig maps the board lines onto a Linux single-board computer.
// GPIO names are anything gpioreg understands, e.g. "GPIO17" or "P1_11".
type PeriphConfig struct {
	Latch string
	Clock string
	Data  string
	Reset string
	Mode  string

	// IIOPath is the sysfs file holding the raw pot reading, IIOMax its
	// full-scale value.
	IIOPath string
	IIOMax  int
}

// DefaultPeriphConfig is the wiring used on a Raspberry Pi with an MCP3008
// style IIO ADC.
func DefaultPeriphConfig() PeriphConfig {
	return PeriphConfig{
		Latch:   "GPIO17",
		Clock:   "GPIO27",
		Data:    "GPIO22",
		Reset:   "GPIO5",
		Mode:    "GPIO6",
		IIOPath: "/sys/bus/iio/devices/iio:device0/in_voltage0_raw",
		IIOMax:  1023,
	}
}

type periphHAL struct {
	logger *hostLogger
	gpio   GPIO
	analog Analog
	timer  Timer
}

// NewPeriph returns a HAL driving real lines through periph.io.
func NewPeriph(cfg PeriphConfig) (HAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: %w", err)
	}
	return newPeriph(cfg, gpioreg.ByName)
}

func newPeriph(cfg PeriphConfig, byName func(string) gpio.PinIO) (*periphHAL, error) {
	lines := []struct {
		name string
		gpio string
		caps GPIOCaps
	}{
		{PinLatch, cfg.Latch, GPIOCapOutput},
		{PinClock, cfg.Clock, GPIOCapOutput},
		{PinData, cfg.Data, GPIOCapOutput},
		{PinReset, cfg.Reset, GPIOCapInput | GPIOCapPullUp},
		{PinMode, cfg.Mode, GPIOCapInput | GPIOCapPullUp},
	}
	pins := make([]GPIOPin, 0, len(lines))
	for _, l := range lines {
		p := byName(l.gpio)
		if p == nil {
			return nil, fmt.Errorf("periph: pin %s: %s: %w", l.name, l.gpio, ErrNoPin)
		}
		pins = append(pins, &periphPin{name: l.name, pin: p, caps: l.caps})
	}
	if cfg.IIOMax <= 0 {
		return nil, fmt.Errorf("periph: invalid IIO full scale %d", cfg.IIOMax)
	}
	return &periphHAL{
		logger: &hostLogger{w: os.Stdout},
		gpio:   newVirtualGPIO(pins),
		analog: newVirtualAnalog(&iioChannel{name: ChannelA0, path: cfg.IIOPath, max: cfg.IIOMax}),
		timer:  newHostTimer(),
	}, nil
}

func (h *periphHAL) Logger() Logger { return h.logger }
func (h *periphHAL) GPIO() GPIO     { return h.gpio }
func (h *periphHAL) Analog() Analog { return h.analog }
func (h *periphHAL) Timer() Timer   { return h.timer }

// periphPin exposes a periph.io line under a board pin name. Output lines
// are switched to output mode by their first Write.
type periphPin struct {
	name string
	pin  gpio.PinIO
	caps GPIOCaps
	mode GPIOMode
	set  bool
}

func (p *periphPin) Name() string   { return p.name }
func (p *periphPin) Caps() GPIOCaps { return p.caps }

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	if mode == GPIOModeInput {
		gp := gpio.Float
		switch pull {
		case GPIOPullUp:
			gp = gpio.PullUp
		case GPIOPullDown:
			gp = gpio.PullDown
		}
		if err := p.pin.In(gp, gpio.NoEdge); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.name, err)
		}
	}
	p.mode = mode
	p.set = true
	return nil
}

func (p *periphPin) Read() (bool, error) {
	if !p.set {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.pin.Read() == gpio.High, nil
}

func (p *periphPin) Write(level bool) error {
	if !p.set || p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	if err := p.pin.Out(gpio.Level(level)); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.name, err)
	}
	return nil
}

// iioChannel reads an ADC through the Linux IIO sysfs interface.
type iioChannel struct {
	name string
	path string
	max  int
}

func (c *iioChannel) Name() string { return c.name }

func (c *iioChannel) Read() (float64, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return 0, fmt.Errorf("analog: channel %s: %w", c.name, err)
	}
	raw, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("analog: channel %s: %w", c.name, err)
	}
	return float64(raw) / float64(c.max), nil
}
