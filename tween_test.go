package halftone

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

// Tween values pass through float32, so comparisons use a wider
// tolerance than assertNear.
func assertNearF32(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestTweenAmountReachesTarget(t *testing.T) {
	p := Params{DitherAmount: 0}
	tw := TweenAmount(&p, 1, 1, ease.Linear)
	for i := 0; i < 4; i++ {
		if tw.Done {
			t.Fatalf("tween finished early at step %d", i)
		}
		tw.Update(0.25)
	}
	if !tw.Done {
		t.Error("tween should be done after the full duration")
	}
	assertNearF32(t, "DitherAmount", p.DitherAmount, 1)

	// Updates past completion are no-ops.
	tw.Update(10)
	assertNearF32(t, "DitherAmount after overshoot", p.DitherAmount, 1)
}

func TestTweenAmountLinearMidpoint(t *testing.T) {
	p := Params{DitherAmount: 0.2}
	tw := TweenAmount(&p, 0.8, 2, ease.Linear)
	tw.Update(1)
	assertNearF32(t, "midpoint", p.DitherAmount, 0.5)
}

func TestTweenToneAnimatesAllThreeFields(t *testing.T) {
	p := Params{Contrast: -0.5, Highlights: 0, Midtones: 1}
	tw := TweenTone(&p, 0.5, -1, 0, 1, ease.Linear)
	tw.Update(0.5)
	assertNearF32(t, "Contrast midway", p.Contrast, 0)
	assertNearF32(t, "Highlights midway", p.Highlights, -0.5)
	assertNearF32(t, "Midtones midway", p.Midtones, 0.5)
	tw.Update(0.5)
	if !tw.Done {
		t.Error("tween should be done")
	}
	assertNearF32(t, "Contrast final", p.Contrast, 0.5)
	assertNearF32(t, "Highlights final", p.Highlights, -1)
	assertNearF32(t, "Midtones final", p.Midtones, 0)
}

func TestTweenBrightnessReachesTarget(t *testing.T) {
	p := Params{Brightness: 0.5}
	tw := TweenBrightness(&p, 0.9, 0.5, ease.InOutQuad)
	for i := 0; i < 10 && !tw.Done; i++ {
		tw.Update(0.1)
	}
	if !tw.Done {
		t.Fatal("tween never finished")
	}
	assertNearF32(t, "Brightness", p.Brightness, 0.9)
}
