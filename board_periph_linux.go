//go:build linux && !tinygo

package main

import "segclock/hal"

func newPeriphHAL(cfg appConfig) (hal.HAL, error) {
	pc := hal.DefaultPeriphConfig()
	pc.IIOPath = cfg.IIOPath
	pc.IIOMax = cfg.IIOMax
	return hal.NewPeriph(pc)
}
