package halftone

import (
	"fmt"
	"image"
)

// softwareBackend runs the reference pixel stage on raster memory. It keeps
// the same pass structure as the GPU backend: error diffusion is a quantize
// pass over every pixel followed by a diffuse pass over every pixel, so the
// own-pixel-only error semantics are identical. The error plane is float32,
// so unlike the GPU backend's 8-bit biased encoding it loses no precision.
//
// All work happens on the calling goroutine; the pipeline has no internal
// threading and callers serialize render calls.
type softwareBackend struct {
	dest *image.NRGBA
	errs []float32 // 3 channels per pixel, reused across renders
}

func newSoftwareBackend() *softwareBackend {
	return &softwareBackend{}
}

func (b *softwareBackend) Name() string { return "software" }

// Render computes the full output into a fresh buffer and only installs it
// as the destination when every pixel has been produced, so a failed call
// leaves the previous output untouched.
func (b *softwareBackend) Render(src *image.RGBA, params Params, lut *LookupTable, _ uint64) error {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid render size %dx%d", w, h)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if params.Type == ErrorDiffusion {
		b.renderErrorDiffusion(src, out, w, h, params, lut)
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := srcColorAt(src, bounds.Min.X+x, bounds.Min.Y+y)
				putColor(out, x, y, shadePixel(c, x, y, w, h, params, lut))
			}
		}
	}
	b.dest = out
	return nil
}

// renderErrorDiffusion runs the two passes. The error plane is zeroed at the
// start of every call: no error ever accumulates across renders.
func (b *softwareBackend) renderErrorDiffusion(src *image.RGBA, out *image.NRGBA, w, h int, params Params, lut *LookupTable) {
	needed := w * h * 3
	if cap(b.errs) < needed {
		b.errs = make([]float32, needed)
	}
	errs := b.errs[:needed]
	clear(errs)

	bounds := src.Bounds()

	// Quantize pass: store each pixel's own quantization error.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := preprocess(srcColorAt(src, bounds.Min.X+x, bounds.Min.Y+y), params)
			_, e := quantizePass(c, params, lut)
			off := (y*w + x) * 3
			errs[off+0] = float32(e.R)
			errs[off+1] = float32(e.G)
			errs[off+2] = float32(e.B)
		}
	}

	// Diffuse pass: recompute the preprocessed color, fold the stored error
	// back in, and re-quantize.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := preprocess(srcColorAt(src, bounds.Min.X+x, bounds.Min.Y+y), params)
			off := (y*w + x) * 3
			e := Color{float64(errs[off+0]), float64(errs[off+1]), float64(errs[off+2]), 0}
			putColor(out, x, y, diffusePass(c, e, params, lut))
		}
	}
}

// Readback returns the destination. The returned image is the live surface;
// callers copy it if they render again before using it.
func (b *softwareBackend) Readback() (*image.NRGBA, error) {
	if b.dest == nil {
		return nil, fmt.Errorf("no rendered output to read back")
	}
	return b.dest, nil
}

func (b *softwareBackend) Dispose() {
	b.dest = nil
	b.errs = nil
}

// srcColorAt reads a premultiplied RGBA pixel as a straight-alpha Color.
func srcColorAt(src *image.RGBA, x, y int) Color {
	i := src.PixOffset(x, y)
	r, g, b, a := src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]
	if a == 0 {
		return Color{}
	}
	fa := float64(a) / 255
	return Color{
		R: float64(r) / 255 / fa,
		G: float64(g) / 255 / fa,
		B: float64(b) / 255 / fa,
		A: fa,
	}
}

// putColor writes a straight-alpha Color into an NRGBA image.
func putColor(dst *image.NRGBA, x, y int, c Color) {
	i := dst.PixOffset(x, y)
	dst.Pix[i+0] = byte(clamp01(c.R)*255 + 0.5)
	dst.Pix[i+1] = byte(clamp01(c.G)*255 + 0.5)
	dst.Pix[i+2] = byte(clamp01(c.B)*255 + 0.5)
	dst.Pix[i+3] = byte(clamp01(c.A)*255 + 0.5)
}
