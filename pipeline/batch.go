package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RasterizeAll rasterizes independent triangles, using up to workers goroutines.
//
// Each triangle's fragments land in the slot with the same index, so callers can
// composite the result in draw order and get the same image as a serial pass.
// The context is checked before each triangle starts; a triangle that has begun
// always runs to completion.
func RasterizeAll(ctx context.Context, tris []Triangle2, workers int) ([][]Fragment, error) {
	out := make([][]Fragment, len(tris))
	if workers <= 1 || len(tris) < 2 {
		for i, t := range tris {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = Rasterize(t)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range tris {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Rasterize(tris[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
