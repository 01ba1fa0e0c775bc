package pipeline

// ResolveColor picks the final color of a fragment: its interpolated color
// attribute if present, DebugColor otherwise.
func ResolveColor(m VertexMetadata) Color {
	if m.Color == nil {
		return DebugColor
	}
	return ColorFromVector(*m.Color)
}

// Composite writes fragments into t in order and returns the number of pixels
// written. Fragments outside the target are dropped. Later fragments overwrite
// earlier ones at the same pixel.
func Composite(frags []Fragment, t Target) int {
	if t == nil {
		return 0
	}
	w, h := t.Size()
	n := 0
	for _, f := range frags {
		if f.Pos.X < 0 || f.Pos.Y < 0 || f.Pos.X >= w || f.Pos.Y >= h {
			continue
		}
		t.SetPixel(f.Pos.X, f.Pos.Y, ResolveColor(f.Meta))
		n++
	}
	return n
}

// DrawTriangle rasterizes tri and composites it into t.
func DrawTriangle(t Target, tri Triangle2) (fragments, written int) {
	frags := Rasterize(tri)
	return len(frags), Composite(frags, t)
}
