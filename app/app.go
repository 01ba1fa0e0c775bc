// Package app wires the scene driver to a HAL: one rendered frame per tick,
// keyboard commands, scene reloads and screenshots.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scanline/hal"
	"scanline/hud"
	"scanline/pipeline"
	"scanline/scene"
	"scanline/snapshot"
)

// Config controls the per-tick renderer.
type Config struct {
	// Scene is drawn until a reload replaces it. Nil means scene.Default.
	Scene *scene.Scene

	// ScenePath is the file Scene came from; it enables reloads.
	ScenePath string
	// Watch reloads ScenePath whenever it changes on disk.
	Watch bool

	Workers int

	// Budget bounds the rasterization time of one frame. A frame over budget is
	// dropped and the previous one stays on screen. Zero disables the budget.
	Budget time.Duration

	HUD bool

	// ShotPath is the screenshot file name. A fmt verb, if present, receives
	// the screenshot counter.
	ShotPath  string
	ShotScale int
}

const defaultShotPath = "scanline-%03d.png"

var (
	hudFG = pipeline.RGB(0xE0, 0xE0, 0xE0)
	hudBG = pipeline.RGB(0x20, 0x20, 0x20)
)

type renderer struct {
	ctx context.Context
	cfg Config
	log *slog.Logger

	fb     hal.Framebuffer
	target *pipeline.RGBATarget
	keys   <-chan hal.KeyEvent
	drv    scene.Driver

	reload chan *scene.Scene

	hud     bool
	frame   uint64
	dropped uint64
	shots   int
	last    scene.Stats
}

// New returns the per-tick step for h. The step renders one frame, handles
// pending key events and scene reloads, and presents the framebuffer. It
// returns hal.ErrQuit once ctx is done or Escape is pressed.
func New(ctx context.Context, h hal.HAL, cfg Config) func() error {
	r := newRenderer(ctx, h, cfg)
	if r.fb == nil {
		return func() error { return errors.New("app: no framebuffer") }
	}
	return r.safeStep
}

func newRenderer(ctx context.Context, h hal.HAL, cfg Config) *renderer {
	log := h.Logger()
	if log == nil {
		log = slog.Default()
	}
	if cfg.Scene == nil {
		cfg.Scene = scene.Default()
	}
	if cfg.ShotPath == "" {
		cfg.ShotPath = defaultShotPath
	}

	r := &renderer{
		ctx:    ctx,
		cfg:    cfg,
		log:    log,
		reload: make(chan *scene.Scene, 1),
		hud:    cfg.HUD,
		drv: scene.Driver{
			Scene:   cfg.Scene,
			Workers: cfg.Workers,
			Logger:  log,
		},
	}
	if d := h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil && fb.Format() == hal.PixelFormatRGBA8888 {
			r.fb = fb
			r.target = &pipeline.RGBATarget{
				Buf:    fb.Buffer(),
				Stride: fb.StrideBytes(),
				W:      fb.Width(),
				H:      fb.Height(),
			}
		}
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			r.keys = kbd.Events()
		}
	}

	if cfg.Watch && cfg.ScenePath != "" {
		if err := scene.Watch(ctx, cfg.ScenePath, log, r.offer); err != nil {
			log.Warn("scene watch disabled", slog.String("path", cfg.ScenePath), slog.Any("err", err))
		}
	}
	log.Info("renderer ready",
		slog.String("scene", cfg.Scene.Name),
		slog.Int("width", r.width()),
		slog.Int("height", r.height()),
		slog.Int("workers", cfg.Workers),
		slog.Duration("budget", cfg.Budget),
	)
	return r
}

// offer queues s for the next tick, replacing any scene still pending.
func (r *renderer) offer(s *scene.Scene) {
	for {
		select {
		case r.reload <- s:
			return
		default:
		}
		select {
		case <-r.reload:
		default:
		}
	}
}

func (r *renderer) step() error {
	if err := r.ctx.Err(); err != nil {
		return hal.ErrQuit
	}

	select {
	case s := <-r.reload:
		r.setScene(s)
	default:
	}

	if err := r.drainKeys(); err != nil {
		return err
	}

	ctx := r.ctx
	if r.cfg.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Budget)
		defer cancel()
	}

	r.frame++
	st, err := r.drv.Render(ctx, r.target)
	switch {
	case errors.Is(err, scene.ErrFrameDropped):
		r.dropped++
		r.log.Warn("frame dropped",
			slog.Uint64("frame", r.frame),
			slog.Uint64("dropped", r.dropped),
			slog.Duration("elapsed", st.Elapsed),
		)
		if r.ctx.Err() != nil {
			return hal.ErrQuit
		}
		return r.fb.Present()
	case err != nil:
		return err
	}
	r.last = st

	if r.hud {
		hud.Draw(r.target, r.hudLines(), hudFG, hudBG)
	}

	if r.log.Enabled(r.ctx, slog.LevelDebug) {
		c, _ := r.target.Pixel(10, 10)
		r.log.Debug("probe",
			slog.Uint64("frame", r.frame),
			slog.Int("x", 10), slog.Int("y", 10),
			slog.Any("rgba", [4]uint8{c.R, c.G, c.B, c.A}),
		)
	}
	return r.fb.Present()
}

func (r *renderer) drainKeys() error {
	if r.keys == nil {
		return nil
	}
	for {
		select {
		case ev := <-r.keys:
			if err := r.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (r *renderer) handleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyF1:
		r.toggleHUD()
		return nil
	}

	switch ev.Rune {
	case 'h', 'H':
		r.toggleHUD()
	case 's', 'S':
		r.screenshot()
	case 'r', 'R':
		r.reloadNow()
	case 'q', 'Q':
		return hal.ErrQuit
	}
	return nil
}

func (r *renderer) toggleHUD() {
	r.hud = !r.hud
	r.log.Debug("hud toggled", slog.Bool("on", r.hud))
}

func (r *renderer) screenshot() {
	r.shots++
	path := r.cfg.ShotPath
	if strings.Contains(path, "%") {
		path = fmt.Sprintf(path, r.shots)
	}
	if err := snapshot.Save(path, r.fb.Snapshot(), r.cfg.ShotScale); err != nil {
		r.log.Error("screenshot failed", slog.Any("err", err))
		return
	}
	r.log.Info("screenshot saved", slog.String("path", path))
}

func (r *renderer) reloadNow() {
	if r.cfg.ScenePath == "" {
		r.log.Warn("reload: no scene file")
		return
	}
	s, err := scene.LoadFile(r.cfg.ScenePath)
	if err != nil {
		r.log.Warn("reload failed", slog.String("path", r.cfg.ScenePath), slog.Any("err", err))
		return
	}
	r.setScene(s)
}

func (r *renderer) setScene(s *scene.Scene) {
	if s == nil {
		return
	}
	r.drv.Scene = s
	tris, skipped := s.Triangles()
	r.log.Info("scene loaded",
		slog.String("scene", s.Name),
		slog.Int("triangles", len(tris)),
		slog.Int("skipped", skipped),
	)
}

func (r *renderer) hudLines() []string {
	name := ""
	if r.drv.Scene != nil {
		name = r.drv.Scene.Name
	}
	return []string{
		fmt.Sprintf("%s %d tris", name, r.last.Triangles),
		fmt.Sprintf("frags=%d %.2fms", r.last.Fragments, float64(r.last.Elapsed.Microseconds())/1000),
		fmt.Sprintf("frame %d dropped %d", r.frame, r.dropped),
	}
}

func (r *renderer) width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width()
}

func (r *renderer) height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height()
}
