package pipeline

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTriangleArity(t *testing.T) {
	three := []VertexMetadata{{}, {}, {}}
	_, err := NewTriangle2([]Vector2{V2(0, 0), V2(1, 0)}, three)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArity))

	_, err = NewTriangle2([]Vector2{V2(0, 0), V2(1, 0), V2(0, 1)}, three[:2])
	assert.ErrorIs(t, err, ErrArity)

	_, err = NewTriangle3([]Vector3{V3(0, 0, 0)}, three)
	assert.ErrorIs(t, err, ErrArity)

	tri, err := NewTriangle2([]Vector2{V2(0, 0), V2(1, 0), V2(0, 1)}, []VertexMetadata{Colored(1, 0, 0, 1), {}, {}})
	require.NoError(t, err)
	assert.Equal(t, []Vector2{V2(0, 0), V2(1, 0), V2(0, 1)}, tri.Vertices())
	assert.NotNil(t, tri.Meta[0].Color)
	assert.Equal(t, ShapeTriangle, tri.Shape())
}

func TestNewLineArity(t *testing.T) {
	_, err := NewLine2([]Vector2{V2(0, 0)})
	assert.ErrorIs(t, err, ErrArity)
	_, err = NewLine3([]Vector3{V3(0, 0, 0), V3(1, 1, 1), V3(2, 2, 2)})
	assert.ErrorIs(t, err, ErrArity)

	l, err := NewLine3([]Vector3{V3(0, 0, 0), V3(1, 1, 1)})
	require.NoError(t, err)
	assert.Len(t, l.Vertices(), 2)
	assert.Equal(t, "line", l.Shape().String())
}

func TestNewPolygon(t *testing.T) {
	_, err := NewPolygon2([]Vector2{V2(0, 0), V2(1, 0)}, []VertexMetadata{{}, {}})
	assert.ErrorIs(t, err, ErrArity)
	_, err = NewPolygon3([]Vector3{V3(0, 0, 0), V3(1, 0, 0), V3(1, 1, 0), V3(0, 1, 0)}, []VertexMetadata{{}, {}, {}})
	assert.ErrorIs(t, err, ErrArity)

	v := []Vector2{V2(0, 0), V2(4, 0), V2(4, 4), V2(0, 4)}
	p, err := NewPolygon2(v, make([]VertexMetadata, len(v)))
	require.NoError(t, err)
	v[0] = V2(9, 9)
	got := p.Vertices()
	assert.Equal(t, V2(0, 0), got[0])
	assert.Len(t, got, 4)
	assert.Len(t, p.Metadata(), 4)
}

func TestPrimitiveSets(t *testing.T) {
	flat := []Primitive2D{Triangle2{}, Line2{}, Polygon2{}}
	space := []Primitive3D{Triangle3{}, Line3{}, Polygon3{}}
	want := []Shape{ShapeTriangle, ShapeLine, ShapePolygon}
	for i := range want {
		assert.Equal(t, want[i], flat[i].Shape())
		assert.Equal(t, want[i], space[i].Shape())
	}
}

func TestLerp(t *testing.T) {
	a, b := V2(1, 2), V2(5, -2)
	assert.Equal(t, a, Lerp2(a, b, 0))
	assert.Equal(t, b, Lerp2(a, b, 1))
	assert.Equal(t, V2(3, 0), Lerp2(a, b, 0.5))

	// 1.5 rounds away from zero.
	assert.Equal(t, image.Pt(2, 0), Lerp2i(image.Pt(0, 0), image.Pt(3, 0), 0.5))
	assert.Equal(t, image.Pt(-2, 7), Lerp2i(image.Pt(0, 7), image.Pt(-3, 7), 0.5))
}
