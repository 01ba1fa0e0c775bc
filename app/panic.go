package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"scanline/hud"
	"scanline/pipeline"
)

const (
	panicLineHeight = 7
	panicCharWidth  = 4
)

// safeStep runs one tick. A panic is logged, painted over the frame and
// returned as an error so the host loop stops.
func (r *renderer) safeStep() (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		stack := debug.Stack()
		r.log.Error("render panic", slog.Any("panic", v), slog.String("stack", string(stack)))
		r.paintPanic(v, stack)
		err = fmt.Errorf("app: panic: %v", v)
	}()
	return r.step()
}

func (r *renderer) paintPanic(v any, stack []byte) {
	if r.target == nil {
		return
	}
	r.target.Clear(pipeline.RGB(255, 255, 255))

	lines := []string{"Scanline Panic:", fmt.Sprintf("frame: %d", r.frame), fmt.Sprintf("panic: %v", v), "stack:"}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	cols := r.target.W / panicCharWidth
	if cols <= 0 {
		cols = 1
	}
	fg := pipeline.Black
	y := panicLineHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > r.target.H {
				_ = r.fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			hud.Write(r.target, 0, y-1, chunk, fg)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = r.fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
