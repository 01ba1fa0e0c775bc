package pipeline

import (
	"errors"
	"fmt"
)

// ErrArity is returned when a primitive is built from the wrong number of
// vertices or metadata records.
var ErrArity = errors.New("pipeline: wrong vertex count")

// Shape identifies a primitive variant.
type Shape uint8

const (
	ShapeTriangle Shape = iota + 1
	ShapeLine
	ShapePolygon
)

func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeLine:
		return "line"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// Primitive2D is a 2D primitive. The set of implementations is closed.
type Primitive2D interface {
	Shape() Shape
	Vertices() []Vector2
	primitive2D()
}

// Primitive3D is a 3D primitive. The set of implementations is closed.
type Primitive3D interface {
	Shape() Shape
	Vertices() []Vector3
	primitive3D()
}

// Triangle2 is a screen-space triangle. Meta[i] belongs to V[i].
type Triangle2 struct {
	V    [3]Vector2
	Meta [3]VertexMetadata
}

// Triangle3 is a triangle in 3D space. Meta[i] belongs to V[i].
type Triangle3 struct {
	V    [3]Vector3
	Meta [3]VertexMetadata
}

// Line2 is a 2D segment.
type Line2 struct {
	V [2]Vector2
}

// Line3 is a 3D segment.
type Line3 struct {
	V [2]Vector3
}

// Polygon2 is a 2D polygon with one metadata record per vertex.
type Polygon2 struct {
	v    []Vector2
	meta []VertexMetadata
}

// Polygon3 is a 3D polygon with one metadata record per vertex.
type Polygon3 struct {
	v    []Vector3
	meta []VertexMetadata
}

// Tri2 builds a 2D triangle from three positions and their metadata.
func Tri2(a, b, c Vector2, ma, mb, mc VertexMetadata) Triangle2 {
	return Triangle2{V: [3]Vector2{a, b, c}, Meta: [3]VertexMetadata{ma, mb, mc}}
}

// NewTriangle2 builds a 2D triangle from slices. Both slices must have length 3.
func NewTriangle2(v []Vector2, meta []VertexMetadata) (Triangle2, error) {
	if err := checkArity("triangle", len(v), len(meta), 3); err != nil {
		return Triangle2{}, err
	}
	return Tri2(v[0], v[1], v[2], meta[0], meta[1], meta[2]), nil
}

// NewTriangle3 builds a 3D triangle from slices. Both slices must have length 3.
func NewTriangle3(v []Vector3, meta []VertexMetadata) (Triangle3, error) {
	if err := checkArity("triangle", len(v), len(meta), 3); err != nil {
		return Triangle3{}, err
	}
	var t Triangle3
	copy(t.V[:], v)
	copy(t.Meta[:], meta)
	return t, nil
}

// NewLine2 builds a 2D segment. v must have length 2.
func NewLine2(v []Vector2) (Line2, error) {
	if len(v) != 2 {
		return Line2{}, fmt.Errorf("line: got %d vertices, want 2: %w", len(v), ErrArity)
	}
	return Line2{V: [2]Vector2{v[0], v[1]}}, nil
}

// NewLine3 builds a 3D segment. v must have length 2.
func NewLine3(v []Vector3) (Line3, error) {
	if len(v) != 2 {
		return Line3{}, fmt.Errorf("line: got %d vertices, want 2: %w", len(v), ErrArity)
	}
	return Line3{V: [2]Vector3{v[0], v[1]}}, nil
}

// NewPolygon2 builds a 2D polygon. It needs at least 3 vertices and exactly one
// metadata record per vertex. The slices are copied.
func NewPolygon2(v []Vector2, meta []VertexMetadata) (Polygon2, error) {
	if err := checkPolygon(len(v), len(meta)); err != nil {
		return Polygon2{}, err
	}
	return Polygon2{
		v:    append([]Vector2(nil), v...),
		meta: append([]VertexMetadata(nil), meta...),
	}, nil
}

// NewPolygon3 builds a 3D polygon. It needs at least 3 vertices and exactly one
// metadata record per vertex. The slices are copied.
func NewPolygon3(v []Vector3, meta []VertexMetadata) (Polygon3, error) {
	if err := checkPolygon(len(v), len(meta)); err != nil {
		return Polygon3{}, err
	}
	return Polygon3{
		v:    append([]Vector3(nil), v...),
		meta: append([]VertexMetadata(nil), meta...),
	}, nil
}

func checkArity(what string, nv, nm, want int) error {
	if nv != want {
		return fmt.Errorf("%s: got %d vertices, want %d: %w", what, nv, want, ErrArity)
	}
	if nm != want {
		return fmt.Errorf("%s: got %d metadata records, want %d: %w", what, nm, want, ErrArity)
	}
	return nil
}

func checkPolygon(nv, nm int) error {
	if nv < 3 {
		return fmt.Errorf("polygon: got %d vertices, want at least 3: %w", nv, ErrArity)
	}
	if nm != nv {
		return fmt.Errorf("polygon: got %d metadata records for %d vertices: %w", nm, nv, ErrArity)
	}
	return nil
}

func (Triangle2) Shape() Shape { return ShapeTriangle }
func (Triangle3) Shape() Shape { return ShapeTriangle }
func (Line2) Shape() Shape     { return ShapeLine }
func (Line3) Shape() Shape     { return ShapeLine }
func (Polygon2) Shape() Shape  { return ShapePolygon }
func (Polygon3) Shape() Shape  { return ShapePolygon }

func (t Triangle2) Vertices() []Vector2 { return t.V[:] }
func (t Triangle3) Vertices() []Vector3 { return t.V[:] }
func (l Line2) Vertices() []Vector2     { return l.V[:] }
func (l Line3) Vertices() []Vector3     { return l.V[:] }

func (p Polygon2) Vertices() []Vector2 { return append([]Vector2(nil), p.v...) }
func (p Polygon3) Vertices() []Vector3 { return append([]Vector3(nil), p.v...) }

// Metadata returns a copy of the per-vertex metadata.
func (p Polygon2) Metadata() []VertexMetadata { return append([]VertexMetadata(nil), p.meta...) }

// Metadata returns a copy of the per-vertex metadata.
func (p Polygon3) Metadata() []VertexMetadata { return append([]VertexMetadata(nil), p.meta...) }

func (Triangle2) primitive2D() {}
func (Line2) primitive2D()     {}
func (Polygon2) primitive2D()  {}
func (Triangle3) primitive3D() {}
func (Line3) primitive3D()     {}
func (Polygon3) primitive3D()  {}
