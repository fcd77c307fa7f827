//go:build !tinygo

package hal

import (
	"image/color"

	"segclock/sevenseg"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panelWidth  = 320
	panelHeight = 160

	digitWidth  = 48
	digitHeight = 88
	digitGap    = 24
	segThick    = 8
	digitTop    = 20
	digitLeft   = 22
)

var (
	colorBG     = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	colorSegOn  = color.RGBA{R: 0xff, G: 0x30, B: 0x20, A: 0xff}
	colorSegOff = color.RGBA{R: 0x30, G: 0x14, B: 0x10, A: 0xff}
	colorText   = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorDim    = color.RGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff}
)

// fbDisplay adapts a hostFramebuffer to drivers.Displayer so tinyfont can
// draw on it.
type fbDisplay struct {
	fb *hostFramebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.fillRect(int(x), int(y), int(x)+1, int(y)+1, rgb565(c))
}

func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fb.fillRect(int(x), int(y), int(x)+int(width), int(y)+int(height), rgb565(c))
	return nil
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

type segRect struct {
	seg        byte
	x, y, w, h int16
}

// segmentRects lays out one digit with its top-left corner at (x, y).
func segmentRects(x, y int16) []segRect {
	const (
		w  = digitWidth
		t  = segThick
		vh = (digitHeight - 3*segThick) / 2
	)
	return []segRect{
		{sevenseg.SegA, x + t, y, w - 2*t, t},
		{sevenseg.SegB, x + w - t, y + t, t, vh},
		{sevenseg.SegC, x + w - t, y + 2*t + vh, t, vh},
		{sevenseg.SegD, x + t, y + 2*t + 2*vh, w - 2*t, t},
		{sevenseg.SegE, x, y + 2*t + vh, t, vh},
		{sevenseg.SegF, x, y + t, t, vh},
		{sevenseg.SegG, x + t, y + t + vh, w - 2*t, t},
		{sevenseg.SegDP, x + w + t/2, y + 2*t + 2*vh, t, t},
	}
}

func digitOrigin(slot int) (x, y int16) {
	return int16(digitLeft + slot*(digitWidth+digitGap)), digitTop
}

// rectDisplayer is a Displayer with a fast rectangle fill.
type rectDisplayer interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// drawPanel paints the visible patterns and two lines of status text in the
// top panelHeight rows of d.
func drawPanel(d rectDisplayer, patterns [sevenseg.Digits]byte, status, help string) {
	w, _ := d.Size()
	const h = panelHeight
	d.FillRectangle(0, 0, w, h, colorBG)
	for slot, p := range patterns {
		x, y := digitOrigin(slot)
		for _, r := range segmentRects(x, y) {
			c := colorSegOff
			if sevenseg.Lit(p, r.seg) {
				c = colorSegOn
			}
			d.FillRectangle(r.x, r.y, r.w, r.h, c)
		}
	}
	tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 8, h-22, status, colorText)
	tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 8, h-8, help, colorDim)
	d.Display()
}
