package hal

import (
	"errors"
	"image"
	"log/slog"
)

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrQuit is returned by an app step to end the run loop cleanly.
	ErrQuit = errors.New("quit")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, bytes in R, G, B, A order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// Buffer exposes the live pixels to the tick handler that owns the frame.
// Presentation and export must go through Snapshot, which returns a copy.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Snapshot() *image.RGBA
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeyF1
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown and
// Rune set.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL provides the only contact point between the renderer and the outside world.
type HAL interface {
	Logger() *slog.Logger
	Display() Display
	Input() Input
}
