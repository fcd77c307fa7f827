//go:build linux && !tinygo

package hal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func testPeriph(t *testing.T, cfg PeriphConfig) (*periphHAL, map[string]*gpiotest.Pin) {
	t.Helper()
	lines := map[string]*gpiotest.Pin{}
	for _, n := range []string{cfg.Latch, cfg.Clock, cfg.Data, cfg.Reset, cfg.Mode} {
		lines[n] = &gpiotest.Pin{N: n}
	}
	h, err := newPeriph(cfg, func(name string) gpio.PinIO {
		if p, ok := lines[name]; ok {
			return p
		}
		return nil
	})
	if err != nil {
		t.Fatalf("newPeriph: %v", err)
	}
	return h, lines
}

func TestPeriphPinsByBoardName(t *testing.T) {
	cfg := DefaultPeriphConfig()
	h, lines := testPeriph(t, cfg)

	latch, err := FindPin(h.GPIO(), PinLatch)
	if err != nil {
		t.Fatalf("FindPin: %v", err)
	}
	if err := latch.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := latch.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if lines[cfg.Latch].Read() != gpio.High {
		t.Fatal("expected latch line high")
	}

	reset, err := FindPin(h.GPIO(), PinReset)
	if err != nil {
		t.Fatalf("FindPin: %v", err)
	}
	if err := reset.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if lines[cfg.Reset].Pull() != gpio.PullUp {
		t.Fatalf("pull = %v", lines[cfg.Reset].Pull())
	}
	if err := reset.Write(true); err == nil {
		t.Fatal("expected write to input to fail")
	}
}

func TestPeriphMissingLine(t *testing.T) {
	_, err := newPeriph(DefaultPeriphConfig(), func(string) gpio.PinIO { return nil })
	if !errors.Is(err, ErrNoPin) {
		t.Fatalf("err = %v, want ErrNoPin", err)
	}
}

func TestIIOChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	if err := os.WriteFile(path, []byte("512\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ch := &iioChannel{name: ChannelA0, path: path, max: 1024}
	v, err := ch.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0.5 {
		t.Fatalf("Read = %v, want 0.5", v)
	}

	os.WriteFile(path, []byte("junk"), 0o644)
	if _, err := ch.Read(); err == nil {
		t.Fatal("expected parse error")
	}
}
