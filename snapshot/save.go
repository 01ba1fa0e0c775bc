// Package snapshot writes rendered frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for a file extension with no encoder.
var ErrUnknownFormat = errors.New("snapshot: unknown image format")

// MaxScale bounds the upscale factor.
const MaxScale = 16

func tiffEncoder(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// EncoderFor picks an encoder from the extension of path.
func EncoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".tif", ".tiff":
		return tiffEncoder, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Scale upscales img by an integer factor with nearest-neighbour sampling so
// pixel edges stay sharp. Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	if factor > MaxScale {
		factor = MaxScale
	}
	b := img.Bounds()
	return transform.Resize(img, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor)
}

// Save writes img to path, upscaled by scale.
func Save(path string, img image.Image, scale int) error {
	if img == nil {
		return errors.New("snapshot: nil image")
	}
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, Scale(img, scale), enc); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}
