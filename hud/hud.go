// Package hud draws small status text over a rendered frame.
package hud

import (
	"image/color"

	"scanline/pipeline"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font is the overlay font.
var Font tinyfont.Fonter = &tinyfont.TomThumb

const (
	lineHeight = 7
	margin     = 2
)

// displayer lets tinyfont draw into a pipeline target.
type displayer struct {
	t pipeline.Target
}

var _ drivers.Displayer = displayer{}

func (d displayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), pipeline.RGBA(c.R, c.G, c.B, c.A))
}

func (d displayer) Display() error { return nil }

// Write draws s with its baseline at (x, y).
func Write(t pipeline.Target, x, y int, s string, c pipeline.Color) {
	if t == nil {
		return
	}
	tinyfont.WriteLine(displayer{t: t}, Font, int16(x), int16(y), s, c.Std())
}

// Draw writes lines in the bottom-left corner of t on a solid backing box.
func Draw(t pipeline.Target, lines []string, fg, bg pipeline.Color) {
	if t == nil || len(lines) == 0 {
		return
	}
	_, h := t.Size()

	var width uint32
	for _, s := range lines {
		if _, w := tinyfont.LineWidth(Font, s); w > width {
			width = w
		}
	}
	boxH := len(lines)*lineHeight + 2*margin
	top := h - boxH
	fill(t, 0, top, int(width)+2*margin, boxH, bg)

	for i, s := range lines {
		Write(t, margin, top+margin+(i+1)*lineHeight-1, s, fg)
	}
}

func fill(t pipeline.Target, x, y, w, h int, c pipeline.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			t.SetPixel(xx, yy, c)
		}
	}
}
