package halftone

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsampleFactorFour(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4000, 3000))
	got := Downsample(src, 4)
	if got.Bounds().Dx() != 1000 || got.Bounds().Dy() != 750 {
		t.Errorf("bounds = %v, want 1000x750", got.Bounds())
	}
}

func TestDownsampleFactorOneIsPassthrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	if got := Downsample(src, 1); got != src {
		t.Error("factor 1 should return the original RGBA image")
	}
	if got := Downsample(src, 0); got != src {
		t.Error("factor 0 should return the original RGBA image")
	}
}

func TestDownsampleDegenerateFallsBack(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	got := Downsample(src, 10)
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want original 3x2", got.Bounds())
	}
}

func TestDownsampleAveragesUniformColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{100, 150, 200, 255})
		}
	}
	got := Downsample(src, 2)
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", got.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := got.RGBAAt(x, y)
			if c.R != 100 || c.G != 150 || c.B != 200 || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %+v, want uniform color preserved", x, y, c)
			}
		}
	}
}

func TestToRGBAConvertsOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 18, 26))
	src.SetRGBA(10, 20, color.RGBA{255, 0, 0, 255})
	got := toRGBA(src)
	if got == src {
		t.Fatal("offset image should be copied")
	}
	if got.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Errorf("bounds = %v, want zero-origin 8x6", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c.R != 255 {
		t.Errorf("pixel content lost in conversion: %+v", c)
	}
}

func TestToRGBAConvertsOtherFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 1, color.NRGBA{0, 255, 0, 255})
	got := toRGBA(src)
	if c := got.RGBAAt(1, 1); c.G != 255 {
		t.Errorf("pixel (1,1) = %+v, want green", c)
	}
}
