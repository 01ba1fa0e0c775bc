package pipeline

// Barycentric returns the weights (w1, w2, w3) of p relative to the triangle
// v1, v2, v3 using the signed-area ratio form. w3 is derived as 1-w1-w2 so the
// weights always sum to one.
//
// A zero-area triangle has no barycentric frame. In that case p is projected
// onto the longest edge and weighted linearly between its two endpoints; if all
// three vertices coincide the first vertex takes the full weight.
func Barycentric(p, v1, v2, v3 Vector2) [3]float64 {
	den := (v2.Y()-v3.Y())*(v1.X()-v3.X()) + (v3.X()-v2.X())*(v1.Y()-v3.Y())
	if den == 0 {
		return segmentWeights(p, [3]Vector2{v1, v2, v3})
	}
	w1 := ((v2.Y()-v3.Y())*(p.X()-v3.X()) + (v3.X()-v2.X())*(p.Y()-v3.Y())) / den
	w2 := ((v3.Y()-v1.Y())*(p.X()-v3.X()) + (v1.X()-v3.X())*(p.Y()-v3.Y())) / den
	return [3]float64{w1, w2, 1 - w1 - w2}
}

func segmentWeights(p Vector2, v [3]Vector2) [3]float64 {
	bi, bj, best := 0, 1, -1.0
	for _, e := range [3][2]int{{0, 1}, {1, 2}, {2, 0}} {
		d := v[e[1]].Sub(v[e[0]])
		if l := d.Dot(d); l > best {
			bi, bj, best = e[0], e[1], l
		}
	}
	var w [3]float64
	if best == 0 {
		w[0] = 1
		return w
	}
	t := p.Sub(v[bi]).Dot(v[bj].Sub(v[bi])) / best
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	w[bi] = 1 - t
	w[bj] = t
	return w
}

type blendable[V any] interface {
	Add(V) V
	Mul(float64) V
}

// Interpolate blends the metadata of three vertices with the given weights.
//
// Each attribute is interpolated only if all three records carry it; otherwise
// it is absent in the result.
func Interpolate(w [3]float64, m [3]VertexMetadata) VertexMetadata {
	return VertexMetadata{
		WorldPos: blend3(w, m[0].WorldPos, m[1].WorldPos, m[2].WorldPos),
		TexCoord: blend3(w, m[0].TexCoord, m[1].TexCoord, m[2].TexCoord),
		Normal:   blend3(w, m[0].Normal, m[1].Normal, m[2].Normal),
		Color:    blend3(w, m[0].Color, m[1].Color, m[2].Color),
	}
}

func blend3[V blendable[V]](w [3]float64, a, b, c *V) *V {
	if a == nil || b == nil || c == nil {
		return nil
	}
	out := (*a).Mul(w[0]).Add((*b).Mul(w[1])).Add((*c).Mul(w[2]))
	return &out
}
