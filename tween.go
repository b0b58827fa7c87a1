package halftone

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ParamsTween animates up to 4 float64 fields of a Params value
// simultaneously, for interactive previews that glide between settings
// rather than snapping. Create one via the convenience constructors and
// call Update(dt) each frame, then re-render with the updated Params.
//
// There is no global animation manager: callers drive Update themselves.
type ParamsTween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *ParamsTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenAmount animates params.DitherAmount to the target value over the
// given duration using the easing function.
func TweenAmount(params *Params, to float64, duration float32, fn ease.TweenFunc) *ParamsTween {
	g := &ParamsTween{count: 1}
	g.tweens[0] = gween.New(float32(params.DitherAmount), float32(to), duration, fn)
	g.fields[0] = &params.DitherAmount
	return g
}

// TweenTone animates the three tone adjustments (contrast, highlights,
// midtones) to the target values over the given duration.
func TweenTone(params *Params, contrast, highlights, midtones float64, duration float32, fn ease.TweenFunc) *ParamsTween {
	g := &ParamsTween{count: 3}
	g.tweens[0] = gween.New(float32(params.Contrast), float32(contrast), duration, fn)
	g.tweens[1] = gween.New(float32(params.Highlights), float32(highlights), duration, fn)
	g.tweens[2] = gween.New(float32(params.Midtones), float32(midtones), duration, fn)
	g.fields[0] = &params.Contrast
	g.fields[1] = &params.Highlights
	g.fields[2] = &params.Midtones
	return g
}

// TweenBrightness animates params.Brightness to the target value over the
// given duration using the easing function.
func TweenBrightness(params *Params, to float64, duration float32, fn ease.TweenFunc) *ParamsTween {
	g := &ParamsTween{count: 1}
	g.tweens[0] = gween.New(float32(params.Brightness), float32(to), duration, fn)
	g.fields[0] = &params.Brightness
	return g
}
