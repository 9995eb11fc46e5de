package fs

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// ErrUnsupportedImage is returned for files outside the preview extension set.
var ErrUnsupportedImage = errors.New("unsupported image format")

var imageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// IsSupportedImage reports whether path has a previewable extension.
func IsSupportedImage(path string) bool {
	_, ok := imageExtensions[Extension(path)]
	return ok
}

// DecodeImage reads and decodes a png/jpg/jpeg file.
func DecodeImage(path string) (image.Image, error) {
	if !IsSupportedImage(path) {
		return nil, fmt.Errorf("decode %s: %w", path, ErrUnsupportedImage)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// FitImage scales img down so neither side exceeds maxDim, keeping the aspect ratio.
// Images that already fit, and maxDim <= 0, are returned unchanged.
func FitImage(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}

	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if w == 0 || h == 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scaledW, scaledH := maxDim, maxDim
	if w >= h {
		scaledH = h * maxDim / w
	} else {
		scaledW = w * maxDim / h
	}
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
