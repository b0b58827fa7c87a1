package halftone

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Downsample scales an image down by an integer factor before rendering:
// a 4000×3000 source at factor 4 becomes the 1000×750 working image.
// Factors below 2 and any degenerate result fall back to a plain conversion
// of the original: the pipeline is never told a downsample was skipped.
func Downsample(img image.Image, factor int) *image.RGBA {
	if factor < 2 {
		return toRGBA(img)
	}
	b := img.Bounds()
	w := b.Dx() / factor
	h := b.Dy() / factor
	if w < 1 || h < 1 {
		return toRGBA(img)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// toRGBA converts any image to a tightly packed RGBA bitmap with its origin
// at (0, 0). An image that already has that layout is returned as-is.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
			return rgba
		}
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}
