// Command mkframe renders a scene file once and writes the frame to an image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"

	"scanline/pipeline"
	"scanline/scene"
	"scanline/snapshot"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "Scene file (.yaml, .yml or .toml). Empty renders the reference triangle.")
		outPath   = flag.String("out", "", "Output image (.png, .jpg, .bmp, .tiff).")
		scale     = flag.Int("scale", 1, "Integer upscale factor.")
		width     = flag.Int("width", 0, "Frame width (0 = scene preference or 600).")
		height    = flag.Int("height", 0, "Frame height (0 = scene preference or 600).")
		workers   = flag.Int("workers", runtime.GOMAXPROCS(0), "Triangles rasterized in parallel.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mkframe -out frame.png [-scene scene.yaml] [-scale 1] [-width 600 -height 600] [-workers N]")
	}

	s := scene.Default()
	if *scenePath != "" {
		var err error
		if s, err = scene.LoadFile(*scenePath); err != nil {
			fatalf("load: %v", err)
		}
	}

	img, st, err := render(s, *width, *height, *workers)
	if err != nil {
		fatalf("render: %v", err)
	}
	if err := snapshot.Save(*outPath, img, *scale); err != nil {
		fatalf("save: %v", err)
	}
	fmt.Printf("%s: %d triangles, %d fragments (%d on screen) in %s\n",
		*outPath, st.Triangles, st.Fragments, st.Written, st.Elapsed)
}

func render(s *scene.Scene, w, h, workers int) (*image.RGBA, scene.Stats, error) {
	if w <= 0 {
		w = s.Width
	}
	if h <= 0 {
		h = s.Height
	}
	if w <= 0 {
		w = 600
	}
	if h <= 0 {
		h = 600
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := scene.Driver{Scene: s, Workers: workers}
	st, err := d.Render(context.Background(), pipeline.ImageTarget(img))
	return img, st, err
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
