package halftone

import "math"

// The reference pixel stage. These functions define the pipeline's numeric
// semantics; the Kage shader in shader.go mirrors them and the software
// backend runs them directly. Everything here is a pure function of its
// arguments: the only cross-pixel state in the whole pipeline is the error
// scratch plane written by quantizePass and read by diffusePass, and a pixel
// only ever reads back its own coordinate.

// preprocess applies the tone adjustments shared by every dither mode:
// contrast, highlight scaling, midtone gamma, and the optional brightness
// threshold blend. Input and output channels are in [0, 1].
func preprocess(c Color, p Params) Color {
	// Contrast: symmetric gain around mid-gray. Negative values use the
	// reciprocal curve so -x undoes +x.
	f := 1 + p.Contrast
	if p.Contrast < 0 {
		f = 1 / (1 - p.Contrast)
	}
	c = clampColor(Color{
		(c.R-0.5)*f + 0.5,
		(c.G-0.5)*f + 0.5,
		(c.B-0.5)*f + 0.5,
		c.A,
	})

	// Highlights: scale bright pixels toward 0.5x (suppress) or 2x (boost),
	// masked by a smooth ramp over the upper half of the luminance range.
	l := c.Luminance()
	hm := smoothstep(0.5, 1.0, l)
	hf := lerp(1, 0.5, p.Highlights)
	if p.Highlights < 0 {
		hf = lerp(1, 2, -p.Highlights)
	}
	c = Color{
		lerp(c.R, clamp01(c.R*hf), hm),
		lerp(c.G, clamp01(c.G*hf), hm),
		lerp(c.B, clamp01(c.B*hf), hm),
		c.A,
	}

	// Midtones: gamma-like power curve, masked by closeness to mid-gray.
	l = c.Luminance()
	mm := smoothstep(0, 0.5, 1-2*math.Abs(l-0.5))
	mf := lerp(1, 1.5, p.Midtones)
	if p.Midtones < 0 {
		mf = lerp(1, 0.5, -p.Midtones)
	}
	c = Color{
		lerp(c.R, math.Pow(c.R, mf), mm),
		lerp(c.G, math.Pow(c.G, mf), mm),
		lerp(c.B, math.Pow(c.B, mf), mm),
		c.A,
	}

	// Brightness threshold: a 50/50 blend with a hard black/white split.
	// 0.5 is the neutral setting and skips the blend entirely.
	if p.Brightness != 0.5 {
		l = c.Luminance()
		split := ColorBlack
		if l > 1-p.Brightness {
			split = ColorWhite
		}
		c = Color{
			lerp(c.R, split.R, 0.5),
			lerp(c.G, split.G, 0.5),
			lerp(c.B, split.B, 0.5),
			c.A,
		}
	}
	return c
}

// quantLevels maps the dither amount to a quantization level count:
// 16 levels at amount 0 down to 2 levels at amount 1.
func quantLevels(amount float64) float64 {
	return lerp(16, 2, amount)
}

// quantize reduces each channel to one of `levels` discrete steps.
func quantize(c Color, levels float64) Color {
	return Color{
		clamp01(math.Floor(c.R*levels) / levels),
		clamp01(math.Floor(c.G*levels) / levels),
		clamp01(math.Floor(c.B*levels) / levels),
		c.A,
	}
}

// hashThreshold is the fixed coordinate hash used by Ordered dithering.
// u and v are normalized [0, 1) pixel-center coordinates.
func hashThreshold(u, v float64) float64 {
	s := math.Sin(u*12.9898+v*78.233) * 43758.5453
	return s - math.Floor(s)
}

// hardSplit returns pure white when the color's luminance exceeds the
// threshold, pure black otherwise. Alpha is preserved.
func hardSplit(c Color, threshold float64) Color {
	if c.Luminance() > threshold {
		return Color{1, 1, 1, c.A}
	}
	return Color{0, 0, 0, c.A}
}

// bayerPixel runs the Bayer mode on one preprocessed color: blend between
// the level-quantized color and a hard matrix-threshold split.
func bayerPixel(c Color, x, y int, p Params) Color {
	t := bayerThreshold(p.BayerSize, x, y)
	q := quantize(c, quantLevels(p.DitherAmount))
	h := hardSplit(c, t)
	return mixColor(q, h, p.DitherAmount)
}

// orderedPixel runs the Ordered mode on one preprocessed color: blend
// between the untouched color and a hard hash-threshold split.
func orderedPixel(c Color, u, v float64, p Params) Color {
	h := hardSplit(c, hashThreshold(u, v))
	return mixColor(c, h, p.DitherAmount)
}

// quantizePass is error diffusion's first pass for one pixel: quantize the
// preprocessed color (through the palette when enabled) and return both the
// result and the signed quantization error to be stored at this pixel's own
// coordinate in the scratch plane.
func quantizePass(c Color, p Params, lut *LookupTable) (quantized, err Color) {
	if p.UsePalette && lut != nil {
		quantized = lut.Sample(c.Luminance())
		quantized.A = c.A
	} else {
		quantized = quantize(c, quantLevels(p.DitherAmount))
	}
	err = Color{c.R - quantized.R, c.G - quantized.G, c.B - quantized.B, 0}
	return quantized, err
}

// diffusePass is error diffusion's second pass for one pixel: add the error
// this same pixel stored during the first pass back onto the freshly
// preprocessed color, then re-quantize.
func diffusePass(c, err Color, p Params, lut *LookupTable) Color {
	c = clampColor(Color{c.R + err.R, c.G + err.G, c.B + err.B, c.A})
	if p.UsePalette && lut != nil {
		out := lut.Sample(c.Luminance())
		out.A = c.A
		return out
	}
	return quantize(c, quantLevels(p.DitherAmount))
}

// shadePixel runs the full single-pass stage (preprocess, mode dispatch,
// palette lookup) for Bayer and Ordered. x, y are pixel coordinates and
// w, h the surface dimensions.
func shadePixel(c Color, x, y, w, h int, p Params, lut *LookupTable) Color {
	c = preprocess(c, p)
	var out Color
	if p.Type == Ordered {
		u := (float64(x) + 0.5) / float64(w)
		v := (float64(y) + 0.5) / float64(h)
		out = orderedPixel(c, u, v, p)
	} else {
		out = bayerPixel(c, x, y, p)
	}
	if p.UsePalette && lut != nil {
		pal := lut.Sample(out.Luminance())
		pal.A = out.A
		return pal
	}
	return out
}

func mixColor(a, b Color, t float64) Color {
	return Color{
		lerp(a.R, b.R, t),
		lerp(a.G, b.G, t),
		lerp(a.B, b.B, t),
		a.A,
	}
}
