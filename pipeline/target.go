package pipeline

import "image"

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RGBATarget renders into an RGBA8 buffer: row-major, top-left origin, four
// bytes per pixel in R, G, B, A order.
//
// Callers provide the backing buffer and its layout (stride).
type RGBATarget struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// ImageTarget wraps img so the pipeline writes straight into its pixels.
// img.Rect must start at the origin.
func ImageTarget(img *image.RGBA) *RGBATarget {
	b := img.Bounds()
	return &RGBATarget{Buf: img.Pix, Stride: img.Stride, W: b.Dx(), H: b.Dy()}
}

func (t *RGBATarget) Size() (w, h int) { return t.W, t.H }

func (t *RGBATarget) Clear(c Color) {
	if !t.valid() {
		return
	}
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*4
			if off < 0 || off+3 >= len(t.Buf) {
				continue
			}
			t.put(off, c)
		}
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if !t.valid() {
		return
	}
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	t.put(off, c)
}

// Pixel returns the color at (x, y) and false if the position is out of bounds.
func (t *RGBATarget) Pixel(x, y int) (Color, bool) {
	if !t.valid() {
		return Color{}, false
	}
	off, ok := t.offset(x, y)
	if !ok {
		return Color{}, false
	}
	return Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}, true
}

func (t *RGBATarget) valid() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGBATarget) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0, false
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return 0, false
	}
	return off, true
}

func (t *RGBATarget) put(off int, c Color) {
	t.Buf[off+0] = c.R
	t.Buf[off+1] = c.G
	t.Buf[off+2] = c.B
	t.Buf[off+3] = c.A
}
