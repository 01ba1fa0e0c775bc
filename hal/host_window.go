//go:build cgo

package hal

import (
	"errors"

	"scanline/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	HostConfig
	Title string
	TPS   int
	Scale int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// newApp's step runs once per tick. It blocks until the window closes or the step returns ErrQuit.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "scanline"
	}

	h := newHost(cfg.HostConfig)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil || len(g.scratch) != len(fb.buf) {
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	// Present a copy; the live buffer belongs to the next tick.
	fb.snapshotInto(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
