package sevenseg

import "fmt"

// Mode selects what the display shows.
type Mode uint8

const (
	ModeTime Mode = iota
	ModeVoltage
)

func (m Mode) String() string {
	switch m {
	case ModeTime:
		return "TIME"
	case ModeVoltage:
		return "VOLTAGE"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

const (
	// WrapSeconds is where the elapsed counter rolls over (99:59 + 1s).
	WrapSeconds = 6000

	// ReferenceMillivolts is the full-scale analog input.
	ReferenceMillivolts = 3300

	// MaxMillivolts is the largest value that fits X.XXX.
	MaxMillivolts = 9999
)

// Millivolts converts a normalised analog sample to millivolts, truncating
// toward zero and saturating to [0, MaxMillivolts].
func Millivolts(fraction float64) int {
	mv := fraction * ReferenceMillivolts
	switch {
	case mv != mv, mv <= 0:
		return 0
	case mv >= MaxMillivolts:
		return MaxMillivolts
	}
	return int(mv)
}

// TimeFrame renders slot of an elapsed time as MM.SS, with the decimal point
// after the minutes acting as the colon.
func TimeFrame(slot int, elapsed uint32) Frame {
	minutes := int(elapsed / 60)
	seconds := int(elapsed % 60)

	var seg byte
	switch slot {
	case 0:
		seg = Encode(minutes/10, false)
	case 1:
		seg = Encode(minutes%10, true)
	case 2:
		seg = Encode(seconds/10, false)
	case 3:
		seg = Encode(seconds%10, false)
	}
	return Frame{Segments: seg, Select: Select(slot)}
}

// VoltageFrame renders slot of a millivolt reading as X.XXX.
func VoltageFrame(slot int, millivolts int) Frame {
	inte := millivolts / 1000
	frac := millivolts % 1000

	var seg byte
	switch slot {
	case 0:
		seg = Encode(inte, true)
	case 1:
		seg = Encode(frac/100, false)
	case 2:
		seg = Encode((frac%100)/10, false)
	case 3:
		seg = Encode(frac%10, false)
	}
	return Frame{Segments: seg, Select: Select(slot)}
}

// Text renders the patterns of a whole display as a string such as "01.25".
// Positions that do not hold a digit show as a space.
func Text(patterns [Digits]byte) string {
	b := make([]byte, 0, Digits*2)
	for _, p := range patterns {
		d, dp, ok := Decode(p)
		if ok {
			b = append(b, byte('0'+d))
		} else {
			b = append(b, ' ')
		}
		if dp {
			b = append(b, '.')
		}
	}
	return string(b)
}
