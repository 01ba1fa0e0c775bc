package pipeline

import (
	"fmt"
	"image"
	"sort"
)

// Fragment is a candidate pixel produced by Rasterize, carrying the attributes
// interpolated at that pixel.
type Fragment struct {
	Pos  image.Point
	Meta VertexMetadata
}

type corner struct {
	p    image.Point
	meta VertexMetadata
}

// Rasterize scan-converts a triangle into fragments.
//
// Vertices are snapped to the nearest pixel and stably sorted by y, so vertices
// on the same row keep their input order. A triangle whose snapped vertices all
// share one row has no area and yields no fragments. Triangles with a horizontal
// edge are walked as a single span; any other triangle is split at the middle
// vertex's row into an upper (flat-bottom) and a lower (flat-top) span, and the
// upper span's fragments come first. The split row belongs to both spans.
//
// The result is deterministic for identical input.
func Rasterize(t Triangle2) []Fragment {
	var c [3]corner
	for i := range c {
		c[i] = corner{p: snap(t.V[i]), meta: t.Meta[i]}
	}
	sort.SliceStable(c[:], func(i, j int) bool { return c[i].p.Y < c[j].p.Y })
	low, mid, high := c[0], c[1], c[2]

	switch {
	case low.p.Y == high.p.Y:
		return nil
	case low.p.Y == mid.p.Y:
		return spanDown(nil, high, low, mid)
	case mid.p.Y == high.p.Y:
		return spanUp(nil, low, mid, high)
	}

	// The split point lies on the long edge, so the middle vertex does not
	// contribute to its attributes.
	s := float64(mid.p.Y-low.p.Y) / float64(high.p.Y-low.p.Y)
	split := corner{
		p:    Lerp2i(low.p, high.p, s),
		meta: Interpolate([3]float64{1 - s, 0, s}, [3]VertexMetadata{low.meta, mid.meta, high.meta}),
	}

	out := spanUp(nil, low, mid, split)
	return spanDown(out, high, mid, split)
}

// spanUp walks a flat-bottom triangle whose tip points up (smallest y), from the
// tip row down to the base row.
func spanUp(out []Fragment, tip, a, b corner) []Fragment {
	l, r := leftRight(a, b)
	left := float64(tip.p.X)
	right := left
	dl := slope(tip.p, l.p)
	dr := slope(tip.p, r.p)

	meta := [3]VertexMetadata{tip.meta, l.meta, r.meta}
	for y := tip.p.Y; y <= l.p.Y; y++ {
		out = emitRow(out, y, left, right, tip.p, l.p, r.p, meta)
		left += dl
		right += dr
	}
	return out
}

// spanDown walks a flat-top triangle whose tip points down (largest y), from the
// base row down to the tip row.
func spanDown(out []Fragment, tip, a, b corner) []Fragment {
	l, r := leftRight(a, b)
	left := float64(l.p.X)
	right := float64(r.p.X)
	dl := slope(l.p, tip.p)
	dr := slope(r.p, tip.p)

	meta := [3]VertexMetadata{tip.meta, l.meta, r.meta}
	for y := l.p.Y; y <= tip.p.Y; y++ {
		out = emitRow(out, y, left, right, tip.p, l.p, r.p, meta)
		left += dl
		right += dr
	}
	return out
}

func leftRight(a, b corner) (l, r corner) {
	if a.p.X < b.p.X {
		return a, b
	}
	return b, a
}

// slope returns dx/dy of the edge from -> to. Callers only pass edges spanning
// distinct rows; a zero-height edge here means the classification in Rasterize
// is broken.
func slope(from, to image.Point) float64 {
	dy := to.Y - from.Y
	if dy == 0 {
		panic(fmt.Sprintf("pipeline: zero-height edge %v-%v in span", from, to))
	}
	return float64(to.X-from.X) / float64(dy)
}

func emitRow(out []Fragment, y int, left, right float64, tip, l, r image.Point, meta [3]VertexMetadata) []Fragment {
	v1, v2, v3 := pointToVec(tip), pointToVec(l), pointToVec(r)
	x0 := roundInt(left)
	x1 := roundInt(right)
	for x := x0; x <= x1; x++ {
		p := image.Pt(x, y)
		w := Barycentric(pointToVec(p), v1, v2, v3)
		out = append(out, Fragment{Pos: p, Meta: Interpolate(w, meta)})
	}
	return out
}
