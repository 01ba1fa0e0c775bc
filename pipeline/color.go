package pipeline

import (
	"image/color"
	"math"
)

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

var (
	// Black is the opaque clear color.
	Black = RGB(0, 0, 0)

	// DebugColor marks fragments that carry no color attribute.
	DebugColor = RGB(0xFF, 0x7F, 0x00)
)

// ColorFromVector converts a 0..1 RGBA vector to 8-bit channels with
// round(c*255). Channels outside 0..1 are clamped.
func ColorFromVector(v Vector4) Color {
	return Color{R: unit8(v[0]), G: unit8(v[1]), B: unit8(v[2]), A: unit8(v[3])}
}

// Std returns c as a standard library color.
func (c Color) Std() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func unit8(f float64) uint8 {
	if !(f > 0) { // also catches NaN
		return 0
	}
	if f >= 1 {
		return 0xFF
	}
	return uint8(math.Round(f * 255))
}
