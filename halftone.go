package halftone

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at texture upload time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite and ColorBlack are the two tones of the fallback palette.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Luminance returns the Rec. 601 weighted brightness of the color.
// All grayscale and threshold decisions in the pipeline use this weighting.
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// DitherType selects which per-pixel dithering algorithm the pipeline runs.
type DitherType uint8

const (
	// Bayer tiles a fixed threshold matrix across the image. Single pass.
	Bayer DitherType = iota
	// ErrorDiffusion stores each pixel's own quantization error in a scratch
	// plane during a first pass and folds it back in during a second pass.
	// This is a parallel approximation: a pixel only ever sees its own error,
	// never a neighbor's.
	ErrorDiffusion
	// Ordered thresholds each pixel against a coordinate-hashed pseudo-random
	// value. Single pass.
	Ordered
)

// String returns the name of the dither type.
func (d DitherType) String() string {
	switch d {
	case Bayer:
		return "bayer"
	case ErrorDiffusion:
		return "error-diffusion"
	case Ordered:
		return "ordered"
	default:
		return "unknown"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep is the standard Hermite ramp: 0 below edge0, 1 above edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// clampColor clamps each RGB channel into [0, 1]. Alpha is left alone.
func clampColor(c Color) Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), c.A}
}
