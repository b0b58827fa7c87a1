package halftone

// Params is the full configuration for one render call. It is a value type:
// the pipeline never retains or mutates a caller's Params. Zero values are
// meaningful where noted; call Normalize (or let Render do it) to clamp
// everything into range.
type Params struct {
	// DitherAmount blends between pure quantization (0) and a pure
	// hard-threshold result (1).
	DitherAmount float64
	// Type selects the dithering algorithm.
	Type DitherType
	// BayerSize is the threshold matrix size: 2, 4, or 8. Only meaningful
	// when Type is Bayer. Zero defaults to 4.
	BayerSize int
	// Contrast, Highlights, and Midtones are tone adjustments in [-1, 1].
	Contrast   float64
	Highlights float64
	Midtones   float64
	// Brightness is a luminance threshold control in [0, 1]. The default 0.5
	// means "no threshold effect". Zero is treated as the default so that an
	// empty Params renders neutrally.
	Brightness float64
	// UsePalette routes the dithered color through the palette lookup table.
	UsePalette bool
	// Palette selects which palette to use when UsePalette is set.
	Palette PaletteSelection
	// DownsampleFactor divides the working resolution before rendering.
	// Values below 1 mean no downsampling. The pipeline itself never
	// downsamples; see Downsample.
	DownsampleFactor int
}

// Normalize returns a copy of p with every field clamped into its documented
// range and zero values replaced by their defaults.
func (p Params) Normalize() Params {
	p.DitherAmount = clamp01(p.DitherAmount)
	if p.Type > Ordered {
		p.Type = Bayer
	}
	switch p.BayerSize {
	case 2, 4, 8:
	default:
		p.BayerSize = 4
	}
	p.Contrast = clampSigned(p.Contrast)
	p.Highlights = clampSigned(p.Highlights)
	p.Midtones = clampSigned(p.Midtones)
	if p.Brightness == 0 {
		p.Brightness = 0.5
	}
	p.Brightness = clamp01(p.Brightness)
	if p.DownsampleFactor < 1 {
		p.DownsampleFactor = 1
	}
	return p
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
