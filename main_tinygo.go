//go:build tinygo

package main

import (
	"segclock/app"
	"segclock/hal"
)

func main() {
	app.Run(hal.New())
}
