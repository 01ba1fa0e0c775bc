package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scanline/pipeline"
)

// ErrFrameDropped is returned when a frame could not be rasterized before its
// context ended. The target is left untouched.
var ErrFrameDropped = errors.New("scene: frame dropped")

// Stats describes one rendered frame.
type Stats struct {
	Triangles int
	Skipped   int // primitives that are not rasterized
	Fragments int
	Written   int // fragments that landed inside the target
	Elapsed   time.Duration
}

// Driver renders a scene into a target once per tick. It keeps no state
// between frames; swapping Scene between calls is allowed.
type Driver struct {
	Scene *Scene

	// Workers bounds the number of triangles rasterized concurrently.
	// Zero or one rasterizes serially.
	Workers int

	Logger *slog.Logger
}

// Render clears t and draws the scene into it.
//
// Triangles are rasterized first, possibly in parallel, and then composited in
// draw order. If ctx ends before rasterization finishes the frame is dropped:
// t is not cleared or written and the error wraps ErrFrameDropped.
func (d *Driver) Render(ctx context.Context, t pipeline.Target) (Stats, error) {
	start := time.Now()
	var st Stats
	tris, skipped := d.Scene.Triangles()
	st.Triangles = len(tris)
	st.Skipped = skipped

	frags, err := pipeline.RasterizeAll(ctx, tris, d.Workers)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		st.Elapsed = time.Since(start)
		return st, fmt.Errorf("%w: %w", ErrFrameDropped, err)
	}

	bg := pipeline.Black
	if d.Scene != nil {
		bg = d.Scene.Clear
	}
	t.Clear(bg)
	for _, f := range frags {
		st.Fragments += len(f)
		st.Written += pipeline.Composite(f, t)
	}
	st.Elapsed = time.Since(start)

	d.logger().Debug("frame rendered",
		slog.Int("triangles", st.Triangles),
		slog.Int("skipped", st.Skipped),
		slog.Int("fragments", st.Fragments),
		slog.Int("written", st.Written),
		slog.Duration("elapsed", st.Elapsed),
	)
	return st, nil
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
