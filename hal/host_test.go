package hal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFramebufferStartsBlack(t *testing.T) {
	h := New(HostConfig{Width: 4, Height: 3})
	fb := h.Display().Framebuffer()
	if fb.Width() != 4 || fb.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", fb.Width(), fb.Height())
	}
	if fb.Format() != PixelFormatRGBA8888 {
		t.Fatalf("format = %d", fb.Format())
	}
	if fb.StrideBytes() != 16 || len(fb.Buffer()) != 48 {
		t.Fatalf("stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}
	buf := fb.Buffer()
	for i := 0; i < len(buf); i += 4 {
		if buf[i] != 0 || buf[i+1] != 0 || buf[i+2] != 0 || buf[i+3] != 0xFF {
			t.Fatalf("pixel %d = %v, want opaque black", i/4, buf[i:i+4])
		}
	}
}

func TestFramebufferDefaultSize(t *testing.T) {
	fb := New(HostConfig{}).Display().Framebuffer()
	if fb.Width() != DefaultWidth || fb.Height() != DefaultHeight {
		t.Fatalf("size = %dx%d", fb.Width(), fb.Height())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	fb := New(HostConfig{Width: 2, Height: 2}).Display().Framebuffer()
	fb.Buffer()[0] = 200

	snap := fb.Snapshot()
	if snap.Pix[0] != 200 {
		t.Fatalf("snapshot R = %d, want 200", snap.Pix[0])
	}
	if b := snap.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("snapshot bounds = %v", b)
	}

	fb.Buffer()[0] = 7
	if snap.Pix[0] != 200 {
		t.Fatal("snapshot aliases the live buffer")
	}
	snap.Pix[1] = 99
	if fb.Buffer()[1] == 99 {
		t.Fatal("writing the snapshot changed the live buffer")
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	var got HAL
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		got = h
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{HostConfig: HostConfig{Width: 8, Height: 8}, Hz: 1000, Ticks: 3})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps = %d, want 3", steps)
	}
	if got == nil || got.Display().Framebuffer().Width() != 8 {
		t.Fatal("app did not receive the configured HAL")
	}
}

func TestRunHeadlessQuit(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error {
			steps++
			if steps == 2 {
				return ErrQuit
			}
			return nil
		}
	}, HeadlessConfig{Hz: 1000})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 2 {
		t.Fatalf("steps = %d, want 2", steps)
	}
}

func TestRunHeadlessStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestRunHeadlessCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
