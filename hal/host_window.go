//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"sync"

	"segclock/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowPotStep = 0.005

// RunWindow opens a desktop window showing the simulated display with the
// log console below it. R is the reset button, V the mode button, and the
// arrow keys turn the pot. It blocks until the window closes.
func RunWindow(newApp func(HAL) (Runner, error)) error {
	console := newLogConsole(panelWidth)
	h := NewSim(newHostTimer(), io.MultiWriter(os.Stdout, console))
	r, err := newApp(h)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	g := &hostGame{
		h:       h,
		console: console,
		fb:      newHostFramebuffer(panelWidth, panelHeight+consoleHeight),
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			g.fail(err)
		}
	}()

	ebiten.SetWindowTitle("segclock (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(panelWidth*2, (panelHeight+consoleHeight)*2)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	cancel()
	wg.Wait()
	if err == nil {
		err = g.failure()
	}
	return err
}

type hostGame struct {
	h       *Sim
	console *logConsole
	fb      *hostFramebuffer
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte

	mu  sync.Mutex
	err error
}

func (g *hostGame) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = err
	}
}

func (g *hostGame) failure() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *hostGame) Update() error {
	if err := g.failure(); err != nil {
		return err
	}
	setButton(g.h.reset, ebiten.IsKeyPressed(ebiten.KeyR))
	setButton(g.h.mode, ebiten.IsKeyPressed(ebiten.KeyV))
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.h.pot.Add(windowPotStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.h.pot.Add(-windowPotStep)
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	drawPanel(&fbDisplay{fb: fb}, g.h.panel.Snapshot(), g.h.status(), "R reset  V hold volts  arrows pot")
	g.console.drawTo(fb, panelHeight)

	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		c := rgbaFrom565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = c.A
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.width, g.fb.height
}
