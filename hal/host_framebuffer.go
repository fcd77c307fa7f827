//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

// hostFramebuffer is an RGB565 little-endian pixel buffer.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) clear(c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *hostFramebuffer) fillRect(x0, y0, x1, y1 int, pixel uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()

	x0, x1 = clampInt(x0, 0, f.width), clampInt(x1, 0, f.width)
	y0, y1 = clampInt(y0, 0, f.height), clampInt(y1, 0, f.height)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for py := y0; py < y1; py++ {
		row := py * f.stride
		for px := x0; px < x1; px++ {
			f.buf[row+px*2] = lo
			f.buf[row+px*2+1] = hi
		}
	}
}

func (f *hostFramebuffer) pixel(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// copyRows copies n full rows starting at srcY in src to dstY in f. Both
// buffers must be the same width.
func (f *hostFramebuffer) copyRows(dstY int, src *hostFramebuffer, srcY, n int) {
	src.mu.Lock()
	defer src.mu.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()
	if src.stride != f.stride || n <= 0 {
		return
	}
	if srcY < 0 || srcY+n > src.height || dstY < 0 || dstY+n > f.height {
		return
	}
	copy(f.buf[dstY*f.stride:(dstY+n)*f.stride], src.buf[srcY*src.stride:(srcY+n)*src.stride])
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rgb565 packs c, dropping alpha and the low bits of each channel.
func rgb565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// rgbaFrom565 widens an RGB565 pixel back to an opaque color, scaling each
// channel to the full 0..255 range.
func rgbaFrom565(p uint16) color.RGBA {
	r := uint32(p>>11) & 0x1F
	g := uint32(p>>5) & 0x3F
	b := uint32(p) & 0x1F
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xff,
	}
}
