//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	analog Analog
	timer  *tinyGoTimer
}

// New returns a Raspberry Pi Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Shift chain: LATCH GP2, SFTCLK GP3, SDI GP4.
// Buttons to ground: S1 GP6, S3 GP7. Pot wiper on ADC0 (GP26).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	machine.InitADC()
	adc := machine.ADC{Pin: machine.ADC0}
	adc.Configure(machine.ADCConfig{})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		gpio: newVirtualGPIO([]GPIOPin{
			newMachinePin(PinLatch, machine.GP2, GPIOCapOutput),
			newMachinePin(PinClock, machine.GP3, GPIOCapOutput),
			newMachinePin(PinData, machine.GP4, GPIOCapOutput),
			newMachinePin(PinReset, machine.GP6, GPIOCapInput|GPIOCapPullUp),
			newMachinePin(PinMode, machine.GP7, GPIOCapInput|GPIOCapPullUp),
		}),
		analog: newVirtualAnalog(&adcChannel{name: ChannelA0, adc: adc}),
		timer:  newTinyGoTimer(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO     { return h.gpio }
func (h *tinyGoHAL) Analog() Analog { return h.analog }
func (h *tinyGoHAL) Timer() Timer   { return h.timer }
