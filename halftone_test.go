package halftone

import (
	"math"
	"testing"
)

// assertNear fails the test when got is not within 1e-9 of want.
func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestLuminanceWeights(t *testing.T) {
	assertNear(t, "luminance(white)", ColorWhite.Luminance(), 1)
	assertNear(t, "luminance(black)", ColorBlack.Luminance(), 0)
	assertNear(t, "luminance(red)", Color{1, 0, 0, 1}.Luminance(), 0.299)
	assertNear(t, "luminance(green)", Color{0, 1, 0, 1}.Luminance(), 0.587)
	assertNear(t, "luminance(blue)", Color{0, 0, 1, 1}.Luminance(), 0.114)
}

func TestLuminanceGrayIsChannelValue(t *testing.T) {
	// The weights sum to 1, so gray luminance equals the channel value.
	g := 128.0 / 255.0
	assertNear(t, "luminance(mid gray)", Color{g, g, g, 1}.Luminance(), g)
}

func TestDitherTypeString(t *testing.T) {
	cases := []struct {
		d    DitherType
		want string
	}{
		{Bayer, "bayer"},
		{ErrorDiffusion, "error-diffusion"},
		{Ordered, "ordered"},
		{DitherType(9), "unknown"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("DitherType(%d).String() = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	assertNear(t, "smoothstep below", smoothstep(0.5, 1, 0.2), 0)
	assertNear(t, "smoothstep above", smoothstep(0.5, 1, 1.2), 1)
	assertNear(t, "smoothstep middle", smoothstep(0, 1, 0.5), 0.5)
}

func TestClampColor(t *testing.T) {
	c := clampColor(Color{-0.5, 1.5, 0.25, 0.5})
	if c != (Color{0, 1, 0.25, 0.5}) {
		t.Errorf("clampColor = %+v", c)
	}
}
