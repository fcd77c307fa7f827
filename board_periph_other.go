//go:build !linux && !tinygo

package main

import (
	"errors"

	"segclock/hal"
)

func newPeriphHAL(appConfig) (hal.HAL, error) {
	return nil, errors.New("periph board requires linux")
}
