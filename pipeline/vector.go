package pipeline

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector2 is a 2D point or texture coordinate.
type Vector2 = mgl64.Vec2

// Vector3 is a 3D point or normal.
type Vector3 = mgl64.Vec3

// Vector4 is an RGBA color with channels in 0..1.
type Vector4 = mgl64.Vec4

func V2(x, y float64) Vector2       { return Vector2{x, y} }
func V3(x, y, z float64) Vector3    { return Vector3{x, y, z} }
func V4(x, y, z, w float64) Vector4 { return Vector4{x, y, z, w} }

// Lerp2 interpolates linearly between a and b. t=0 yields a, t=1 yields b.
func Lerp2(a, b Vector2, t float64) Vector2 {
	return a.Add(b.Sub(a).Mul(t))
}

// Lerp2i interpolates between two pixel positions and rounds the result to the
// nearest pixel.
func Lerp2i(a, b image.Point, t float64) image.Point {
	p := Lerp2(pointToVec(a), pointToVec(b), t)
	return snap(p)
}

// snap rounds a position to the nearest pixel (halfway cases away from zero).
func snap(v Vector2) image.Point {
	return image.Pt(roundInt(v.X()), roundInt(v.Y()))
}

func roundInt(v float64) int { return int(math.Round(v)) }

func pointToVec(p image.Point) Vector2 {
	return Vector2{float64(p.X), float64(p.Y)}
}
