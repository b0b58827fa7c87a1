package halftone

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// The GPU pixel stage. One Kage shader implements every mode; the Mode and
// PassIndex uniforms select the path per draw. The shader mirrors the
// reference functions in pixel.go: any change here must be made there too.
//
// Image slots (all bound every draw, all sized to the render target):
//
//	imageSrc0: source image
//	imageSrc1: palette lookup texture (256 bands scaled across the width)
//	imageSrc2: error scratch plane (pass 1 of error diffusion only; the
//	            source image is re-bound here on other draws because a slot
//	            may not alias the render target)
const stageShaderSrc = `//kage:unit pixels
package main

var Amount float
var Mode float // 0 bayer, 1 error diffusion, 2 ordered
var BayerSize float
var BayerMatrix [64]float
var Contrast float
var Highlights float
var Midtones float
var Brightness float
var UsePalette float
var PassIndex float // -1 single pass, 0 quantize pass, 1 diffuse pass
var TexWidth float

func luminance(c vec3) float {
	return dot(c, vec3(0.299, 0.587, 0.114))
}

func preprocess(c vec3) vec3 {
	f := 1.0 + Contrast
	if Contrast < 0.0 {
		f = 1.0 / (1.0 - Contrast)
	}
	c = clamp((c-0.5)*f+0.5, 0.0, 1.0)

	l := luminance(c)
	hm := smoothstep(0.5, 1.0, l)
	hf := mix(1.0, 0.5, Highlights)
	if Highlights < 0.0 {
		hf = mix(1.0, 2.0, -Highlights)
	}
	c = mix(c, clamp(c*hf, 0.0, 1.0), hm)

	l = luminance(c)
	mm := smoothstep(0.0, 0.5, 1.0-2.0*abs(l-0.5))
	mf := mix(1.0, 1.5, Midtones)
	if Midtones < 0.0 {
		mf = mix(1.0, 0.5, -Midtones)
	}
	c = mix(c, pow(c, vec3(mf)), mm)

	if Brightness != 0.5 {
		l = luminance(c)
		split := vec3(0.0)
		if l > 1.0-Brightness {
			split = vec3(1.0)
		}
		c = mix(c, split, 0.5)
	}
	return c
}

func quantize(c vec3, levels float) vec3 {
	return clamp(floor(c*levels)/levels, 0.0, 1.0)
}

func paletteAt(lum float) vec3 {
	u := (floor(clamp(lum, 0.0, 1.0)*255.0+0.5) + 0.5) / 256.0 * TexWidth
	o := imageSrc1Origin()
	p := imageSrc1At(o + vec2(u, 0.5))
	if p.a > 0.0 {
		p.rgb /= p.a
	}
	return p.rgb
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	pos := src - imageSrc0Origin()
	c := imageSrc0At(src)
	if c.a > 0.0 {
		c.rgb /= c.a
	}
	col := preprocess(c.rgb)
	levels := mix(16.0, 2.0, Amount)

	if Mode == 1.0 {
		if PassIndex == 0.0 {
			// Quantize pass: emit this pixel's own signed quantization
			// error, biased into [0, 1] for storage.
			q := quantize(col, levels)
			if UsePalette == 1.0 {
				q = paletteAt(luminance(col))
			}
			e := (col-q)*0.5 + 0.5
			return vec4(e, 1.0)
		}
		// Diffuse pass: fold the stored error back in and re-quantize.
		e := imageSrc2At(src).rgb*2.0 - 1.0
		col = clamp(col+e, 0.0, 1.0)
		q := quantize(col, levels)
		if UsePalette == 1.0 {
			q = paletteAt(luminance(col))
		}
		return vec4(q*c.a, c.a)
	}

	out := col
	if Mode == 0.0 {
		n := BayerSize
		ix := mod(floor(pos.x), n)
		iy := mod(floor(pos.y), n)
		t := BayerMatrix[int(iy*n+ix)]
		hard := vec3(0.0)
		if luminance(col) > t {
			hard = vec3(1.0)
		}
		out = mix(quantize(col, levels), hard, Amount)
	} else {
		uv := pos / imageSrc0Size()
		t := fract(sin(dot(uv, vec2(12.9898, 78.233))) * 43758.5453)
		hard := vec3(0.0)
		if luminance(col) > t {
			hard = vec3(1.0)
		}
		out = mix(col, hard, Amount)
	}
	if UsePalette == 1.0 {
		out = paletteAt(luminance(out))
	}
	return vec4(out*c.a, c.a)
}
`

// compileStageShader builds the pixel-stage shader. A failure here is a
// CompileOrLinkFailure: the pipeline must not be used until it is rebuilt.
// Unlike ad-hoc effect shaders, the error is returned, not panicked: the
// pipeline's public boundary never throws.
func compileStageShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader([]byte(stageShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("compile pixel stage shader: %w", err)
	}
	return s, nil
}

// stageUniforms marshals Params into the shader's uniform map. The map and
// the matrix buffer are persistent so steady-state renders do not allocate.
type stageUniforms struct {
	values    map[string]any
	matrixF32 [64]float32
}

func newStageUniforms() *stageUniforms {
	u := &stageUniforms{values: make(map[string]any, 11)}
	u.values["BayerMatrix"] = u.matrixF32[:]
	return u
}

// bind writes all scalar parameters for the given pass. passIndex is -1 for
// single-pass modes, 0 and 1 for the two error-diffusion passes.
func (u *stageUniforms) bind(p Params, passIndex int, texWidth int) map[string]any {
	bayerMatrix64(p.BayerSize, &u.matrixF32)
	u.values["Amount"] = float32(p.DitherAmount)
	u.values["Mode"] = float32(p.Type)
	u.values["BayerSize"] = float32(p.BayerSize)
	u.values["Contrast"] = float32(p.Contrast)
	u.values["Highlights"] = float32(p.Highlights)
	u.values["Midtones"] = float32(p.Midtones)
	u.values["Brightness"] = float32(p.Brightness)
	u.values["UsePalette"] = boolUniform(p.UsePalette)
	u.values["PassIndex"] = float32(passIndex)
	u.values["TexWidth"] = float32(texWidth)
	return u.values
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
