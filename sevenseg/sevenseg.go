// Package sevenseg encodes decimal digits for a 4-digit common-anode 7-segment
// display driven through a pair of 74HC595 shift registers.
//
// All patterns are active-low: a cleared bit lights the segment or enables the
// digit.
package sevenseg

import "fmt"

// Segment bits within a pattern.
const (
	SegA byte = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
)

// Digits is the number of digit positions on the display.
const Digits = 4

// SegMap holds the patterns for digits 0-9 with the decimal point off.
var SegMap = [10]byte{
	0xC0, 0xF9, 0xA4, 0xB0, 0x99,
	0x92, 0x82, 0xF8, 0x80, 0x90,
}

// SegSlct holds the digit enable masks for positions 0-3, left to right.
var SegSlct = [Digits]byte{0xF1, 0xF2, 0xF4, 0xF8}

// Frame is one multiplexing step: a segment pattern and the digit it goes to.
type Frame struct {
	Segments byte
	Select   byte
}

func (f Frame) String() string {
	return fmt.Sprintf("seg=0x%02X sel=0x%02X", f.Segments, f.Select)
}

// Encode returns the pattern for digit, with the decimal point lit if dp is set.
// It panics if digit is not in 0-9.
func Encode(digit int, dp bool) byte {
	if digit < 0 || digit >= len(SegMap) {
		panic(fmt.Sprintf("sevenseg: digit %d out of range", digit))
	}
	p := SegMap[digit]
	if dp {
		p &^= SegDP
	}
	return p
}

// Select returns the enable mask for slot. It panics if slot is not in 0-3.
func Select(slot int) byte {
	if slot < 0 || slot >= Digits {
		panic(fmt.Sprintf("sevenseg: slot %d out of range", slot))
	}
	return SegSlct[slot]
}

// Decode is the inverse of Encode. ok is false for patterns that are not a
// digit, such as a blank position.
func Decode(pattern byte) (digit int, dp bool, ok bool) {
	dp = pattern&SegDP == 0
	base := pattern | SegDP
	for i, p := range SegMap {
		if p == base {
			return i, dp, true
		}
	}
	return 0, dp, false
}

// SlotOf is the inverse of Select.
func SlotOf(sel byte) (slot int, ok bool) {
	for i, s := range SegSlct {
		if s == sel {
			return i, true
		}
	}
	return 0, false
}

// Lit reports whether segment seg is on in pattern.
func Lit(pattern, seg byte) bool {
	return pattern&seg == 0
}
