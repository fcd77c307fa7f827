package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"segclock/hal"
)

func logPanic(l hal.Logger, v any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf("segclock panic: %v", v))
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line == "" {
			continue
		}
		l.WriteLineString(line)
	}
}

func logError(l hal.Logger, err error) {
	if l == nil {
		return
	}
	l.WriteLineString("segclock error: " + err.Error())
}
