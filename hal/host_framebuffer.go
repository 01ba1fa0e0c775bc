package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 4
	fb := &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
	fb.ClearRGB(0, 0, 0)
	return fb
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i] = r
		f.buf[i+1] = g
		f.buf[i+2] = b
		f.buf[i+3] = 0xFF
	}
}

// Snapshot returns a copy of the current frame.
func (f *hostFramebuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.snapshotInto(img.Pix)
	return img
}

func (f *hostFramebuffer) snapshotInto(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}
