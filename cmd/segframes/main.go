//go:build !tinygo

// Command segframes prints the four multiplexed frames the firmware shifts
// out for a given clock value or voltage, for comparing against a logic
// analyzer capture.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"segclock/sevenseg"
)

func main() {
	var (
		seconds = flag.Int("time", -1, "Elapsed seconds to render in TIME mode (0-5999).")
		mv      = flag.Int("mv", -1, "Millivolts to render in VOLTAGE mode (0-9999).")
		pot     = flag.Float64("pot", -1, "Pot fraction of 3.3 V to render in VOLTAGE mode.")
	)
	flag.Parse()

	if err := run(os.Stdout, *seconds, *mv, *pot); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(w io.Writer, seconds, mv int, pot float64) error {
	var frame func(slot int) sevenseg.Frame
	switch {
	case seconds >= 0:
		if seconds >= sevenseg.WrapSeconds {
			return fmt.Errorf("time %d out of range [0,%d]", seconds, sevenseg.WrapSeconds-1)
		}
		frame = func(slot int) sevenseg.Frame { return sevenseg.TimeFrame(slot, uint32(seconds)) }
	case pot >= 0:
		mv = sevenseg.Millivolts(pot)
		fallthrough
	case mv >= 0:
		if mv > sevenseg.MaxMillivolts {
			return fmt.Errorf("mv %d out of range [0,%d]", mv, sevenseg.MaxMillivolts)
		}
		frame = func(slot int) sevenseg.Frame { return sevenseg.VoltageFrame(slot, mv) }
	default:
		return errors.New("one of -time, -mv or -pot is required")
	}

	var patterns [sevenseg.Digits]byte
	for slot := 0; slot < sevenseg.Digits; slot++ {
		f := frame(slot)
		patterns[slot] = f.Segments
		fmt.Fprintf(w, "slot %d: %s  bits %08b %08b\n", slot, f, f.Segments, f.Select)
	}
	fmt.Fprintf(w, "display: %s\n", sevenseg.Text(patterns))
	return nil
}
