package pipeline

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceTriangle() Triangle2 {
	return Tri2(
		V2(100, 250), V2(300, 300), V2(300, 100),
		Colored(1, 0.5, 0, 1), Colored(0, 1, 0.5, 1), Colored(0.5, 0, 1, 1),
	)
}

func bbox(t Triangle2) image.Rectangle {
	r := image.Rectangle{Min: snap(t.V[0]), Max: snap(t.V[0])}
	for _, v := range t.V[1:] {
		p := snap(v)
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

func TestRasterizeZeroHeight(t *testing.T) {
	tri := Tri2(V2(100, 100), V2(200, 100), V2(300, 100), VertexMetadata{}, VertexMetadata{}, VertexMetadata{})
	assert.Empty(t, Rasterize(tri))

	// Rows only need to match after snapping.
	tri = Tri2(V2(0, 9.6), V2(5, 10.4), V2(9, 10), VertexMetadata{}, VertexMetadata{}, VertexMetadata{})
	assert.Empty(t, Rasterize(tri))
}

func TestRasterizeReferenceTriangle(t *testing.T) {
	frags := Rasterize(referenceTriangle())
	require.NotEmpty(t, frags)
	for _, f := range frags {
		if f.Pos.X < 100 || f.Pos.X > 300 || f.Pos.Y < 100 || f.Pos.Y > 300 {
			t.Fatalf("fragment %v outside [100,300]x[100,300]", f.Pos)
		}
		require.NotNil(t, f.Meta.Color, "fragment %v lost its color", f.Pos)
	}
}

func TestRasterizeStaysInBoundingBox(t *testing.T) {
	tris := []Triangle2{
		referenceTriangle(),
		Tri2(V2(0.4, 0.4), V2(17.2, 3.9), V2(6.6, 21.5), VertexMetadata{}, VertexMetadata{}, VertexMetadata{}),
		Tri2(V2(-20, 5), V2(40, -13), V2(11, 60), VertexMetadata{}, VertexMetadata{}, VertexMetadata{}),
		Tri2(V2(3, 3), V2(3, 40), V2(90, 22), VertexMetadata{}, VertexMetadata{}, VertexMetadata{}),
		Tri2(V2(50, 0), V2(0, 30), V2(100, 30), VertexMetadata{}, VertexMetadata{}, VertexMetadata{}),
	}
	for i, tri := range tris {
		box := bbox(tri)
		frags := Rasterize(tri)
		require.NotEmpty(t, frags, "triangle %d", i)
		for _, f := range frags {
			in := f.Pos.X >= box.Min.X && f.Pos.X <= box.Max.X && f.Pos.Y >= box.Min.Y && f.Pos.Y <= box.Max.Y
			if !in {
				t.Fatalf("triangle %d: fragment %v outside %v", i, f.Pos, box)
			}
		}
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	tri := Tri2(V2(12.3, 4.5), V2(80.1, 33.3), V2(40.7, 71.9), Colored(1, 0, 0, 1), Colored(0, 1, 0, 1), Colored(0, 0, 1, 1))
	a := Rasterize(tri)
	b := Rasterize(tri)
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].Pos, b[i].Pos)
		require.Equal(t, *a[i].Meta.Color, *b[i].Meta.Color)
	}
}

func TestRasterizeFlatBottom(t *testing.T) {
	tri := Tri2(V2(10, 0), V2(0, 10), V2(20, 10), VertexMetadata{}, VertexMetadata{}, VertexMetadata{})
	frags := Rasterize(tri)
	// Row k spans [10-k, 10+k].
	require.Len(t, frags, 121)
	assert.Equal(t, image.Pt(10, 0), frags[0].Pos)
	assert.Equal(t, image.Pt(20, 10), frags[len(frags)-1].Pos)
}

func TestRasterizeFlatTop(t *testing.T) {
	tri := Tri2(V2(0, 0), V2(20, 0), V2(10, 10), VertexMetadata{}, VertexMetadata{}, VertexMetadata{})
	frags := Rasterize(tri)
	require.Len(t, frags, 121)
	assert.Equal(t, image.Pt(0, 0), frags[0].Pos)
	assert.Equal(t, image.Pt(10, 10), frags[len(frags)-1].Pos)
}

func TestRasterizeRowsAscend(t *testing.T) {
	for _, tri := range []Triangle2{
		referenceTriangle(),
		Tri2(V2(0, 0), V2(20, 0), V2(10, 10), VertexMetadata{}, VertexMetadata{}, VertexMetadata{}),
	} {
		frags := Rasterize(tri)
		for i := 1; i < len(frags); i++ {
			if frags[i].Pos.Y < frags[i-1].Pos.Y {
				t.Fatalf("row went back from %d to %d at fragment %d", frags[i-1].Pos.Y, frags[i].Pos.Y, i)
			}
		}
	}
}

func TestRasterizeSingleColumn(t *testing.T) {
	tri := Tri2(V2(5, 0), V2(5, 10), V2(5.4, 10), Colored(1, 0, 0, 1), Colored(0, 1, 0, 1), Colored(0, 0, 1, 1))
	frags := Rasterize(tri)
	require.Len(t, frags, 11)
	for i, f := range frags {
		assert.Equal(t, image.Pt(5, i), f.Pos)
		require.NotNil(t, f.Meta.Color)
		for _, c := range f.Meta.Color {
			assert.False(t, math.IsNaN(c), "NaN channel at %v", f.Pos)
		}
	}
}

func TestRasterizeTieBreakKeepsInputOrder(t *testing.T) {
	red := Colored(1, 0, 0, 1)
	green := Colored(0, 1, 0, 1)
	tip := Colored(0, 0, 1, 1)

	// Two coincident top vertices: the second one in input order ends up as
	// the left edge and owns the shared pixel.
	frags := Rasterize(Tri2(V2(0, 0), V2(0, 0), V2(0, 10), red, green, tip))
	require.NotEmpty(t, frags)
	require.Equal(t, image.Pt(0, 0), frags[0].Pos)
	assert.InDeltaSlice(t, green.Color[:], frags[0].Meta.Color[:], 1e-12)

	frags = Rasterize(Tri2(V2(0, 0), V2(0, 0), V2(0, 10), green, red, tip))
	require.NotEmpty(t, frags)
	assert.InDeltaSlice(t, red.Color[:], frags[0].Meta.Color[:], 1e-12)
}

func TestRasterizeSplitIgnoresMiddleVertex(t *testing.T) {
	frags := Rasterize(referenceTriangle())

	// Split point is (300,250), 3/4 of the way from (300,100) to (300,300).
	var split *Fragment
	for i := range frags {
		if frags[i].Pos == image.Pt(300, 250) {
			split = &frags[i]
			break
		}
	}
	require.NotNil(t, split)
	want := []float64{0.25*0.5 + 0.75*0, 0.25*0 + 0.75*1, 0.25*1 + 0.75*0.5, 1}
	assert.InDeltaSlice(t, want, split.Meta.Color[:], 1e-9)
}

func TestRasterizeVertexKeepsAttributes(t *testing.T) {
	tri := Tri2(V2(10, 0), V2(0, 10), V2(20, 10), Colored(1, 0, 0, 1), Colored(0, 1, 0, 1), Colored(0, 0, 1, 1))
	frags := Rasterize(tri)
	byPos := make(map[image.Point]VertexMetadata, len(frags))
	for _, f := range frags {
		byPos[f.Pos] = f.Meta
	}
	for i, v := range tri.V {
		m, ok := byPos[snap(v)]
		require.True(t, ok, "vertex %d not rasterized", i)
		assert.InDeltaSlice(t, tri.Meta[i].Color[:], m.Color[:], 1e-12)
	}
}

func TestSlopePanicsOnFlatEdge(t *testing.T) {
	assert.Panics(t, func() { slope(image.Pt(0, 3), image.Pt(9, 3)) })
	assert.InDelta(t, -2.0, slope(image.Pt(4, 0), image.Pt(0, 2)), 1e-12)
}
