//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	consoleRows       = 6
	consoleFontHeight = 12
	consoleFontOffset = 9
	consoleHeight     = consoleRows * consoleFontHeight
)

// scrollDisplay is an off-screen text area with a hardware-style scroll
// register: row y on screen shows buffer row (y+scroll) mod height.
type scrollDisplay struct {
	fbDisplay
	scroll int16
}

var _ tinyterm.Displayer = (*scrollDisplay)(nil)

func (d *scrollDisplay) SetScroll(line int16) {
	h := int16(d.fb.height)
	d.scroll = ((line % h) + h) % h
}

// logConsole shows the most recent log lines on a tinyterm terminal.
type logConsole struct {
	mu   sync.Mutex
	disp *scrollDisplay
	term *tinyterm.Terminal
}

func newLogConsole(width int) *logConsole {
	fb := newHostFramebuffer(width, consoleHeight)
	fb.clear(color.RGBA{A: 0xff})
	disp := &scrollDisplay{fbDisplay: fbDisplay{fb: fb}}
	term := tinyterm.NewTerminal(disp)
	term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: consoleFontHeight,
		FontOffset: consoleFontOffset,
	})
	return &logConsole{disp: disp, term: term}
}

// Write feeds log output to the terminal. Lines end in "\n".
func (c *logConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.term.Write(p)
	c.term.Display()
	return n, err
}

// drawTo copies the console into dst starting at row top, oldest line
// first.
func (c *logConsole) drawTo(dst *hostFramebuffer, top int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.disp.fb
	s := int(c.disp.scroll)
	dst.copyRows(top, src, s, src.height-s)
	dst.copyRows(top+src.height-s, src, 0, s)
}
