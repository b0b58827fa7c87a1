package halftone

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// textureSet owns every GPU resource of one pipeline instance: the source
// texture, the palette lookup texture, the error scratch plane, and the
// destination surface. DrawRectShader requires all bound images to share the
// render target's size, so everything here is kept at the current render
// dimensions; the palette's 256 bands are scaled across the full width the
// same way PaletteFilter-style lookup textures are.
type textureSet struct {
	source  *ebiten.Image
	palette *ebiten.Image
	scratch *ebiten.Image
	dest    *ebiten.Image
	w, h    int

	pixBuf []byte // staging buffer, grows to the largest upload seen

	palGen   uint64 // generation of the last uploaded palette
	palValid bool
}

// newTextureImage creates an unmanaged offscreen image, converting the
// panics ebiten raises for impossible dimensions into errors so resource
// creation failures stay inside the bool render contract.
func newTextureImage(w, h int) (img *ebiten.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("create %dx%d texture: %v", w, h, r)
		}
	}()
	img = ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
	return img, nil
}

// ensureSize (re)creates the source, palette, and scratch textures at the
// given dimensions. The destination surface is deliberately not touched
// here: it is resized last, once every other resource is known good, so a
// failed render leaves the previous output intact.
func (t *textureSet) ensureSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid render size %dx%d", w, h)
	}
	if t.w == w && t.h == h && t.source != nil {
		return nil
	}
	var src, pal, scr *ebiten.Image
	var err error
	if src, err = newTextureImage(w, h); err != nil {
		return err
	}
	if pal, err = newTextureImage(w, h); err != nil {
		src.Deallocate()
		return err
	}
	if scr, err = newTextureImage(w, h); err != nil {
		src.Deallocate()
		pal.Deallocate()
		return err
	}
	t.disposeWorking()
	t.source, t.palette, t.scratch = src, pal, scr
	t.w, t.h = w, h
	t.palValid = false
	return nil
}

// uploadSource replaces the source texture contents wholesale. src must be
// exactly w×h; pixels are uploaded premultiplied as ebiten expects.
func (t *textureSet) uploadSource(src *image.RGBA) {
	t.source.WritePixels(src.Pix)
}

// uploadPalette rasterizes the lookup table into the palette texture, with
// the 256 bands scaled across the texture width and repeated on every row.
// The upload is skipped when the palette generation and texture size are
// unchanged since the previous render.
func (t *textureSet) uploadPalette(lut *LookupTable, gen uint64) {
	if t.palValid && t.palGen == gen {
		return
	}
	needed := t.w * t.h * 4
	if cap(t.pixBuf) < needed {
		t.pixBuf = make([]byte, needed)
	}
	buf := t.pixBuf[:needed]
	// First row: 256 entries scaled across w pixels.
	for x := 0; x < t.w; x++ {
		idx := int((float64(x) + 0.5) * 256.0 / float64(t.w))
		if idx > 255 {
			idx = 255
		}
		c := lut.Table[idx]
		off := x * 4
		buf[off+0] = byte(clamp01(c.R*c.A)*255 + 0.5)
		buf[off+1] = byte(clamp01(c.G*c.A)*255 + 0.5)
		buf[off+2] = byte(clamp01(c.B*c.A)*255 + 0.5)
		buf[off+3] = byte(clamp01(c.A)*255 + 0.5)
	}
	// Remaining rows are copies of the first.
	rowBytes := t.w * 4
	for row := 1; row < t.h; row++ {
		copy(buf[row*rowBytes:(row+1)*rowBytes], buf[:rowBytes])
	}
	t.palette.WritePixels(buf)
	t.palGen = gen
	t.palValid = true
}

// resetScratch reinitializes the error plane to the zero-error encoding.
// Every scratch texel is overwritten by the quantize pass before the diffuse
// pass reads it; this reset keeps repeated renders deterministic regardless.
func (t *textureSet) resetScratch() {
	t.scratch.Fill(colorRGBA{128, 128, 128, 255})
}

// ensureDest resizes the destination surface. Called only after every other
// resource for the render has been prepared successfully.
func (t *textureSet) ensureDest(w, h int) error {
	if t.dest != nil {
		b := t.dest.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return nil
		}
		t.dest.Deallocate()
		t.dest = nil
	}
	d, err := newTextureImage(w, h)
	if err != nil {
		return err
	}
	t.dest = d
	return nil
}

// readback copies the destination surface into a straight-alpha NRGBA image.
func (t *textureSet) readback() (*image.NRGBA, error) {
	if t.dest == nil {
		return nil, fmt.Errorf("no rendered output to read back")
	}
	b := t.dest.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	t.dest.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img, nil
}

// disposeWorking releases the per-size working textures, keeping the
// destination (whose contents persist until the next successful render).
func (t *textureSet) disposeWorking() {
	for _, img := range []*ebiten.Image{t.source, t.palette, t.scratch} {
		if img != nil {
			img.Deallocate()
		}
	}
	t.source, t.palette, t.scratch = nil, nil, nil
}

// dispose releases everything.
func (t *textureSet) dispose() {
	t.disposeWorking()
	if t.dest != nil {
		t.dest.Deallocate()
		t.dest = nil
	}
	t.w, t.h = 0, 0
	t.palValid = false
}

// colorRGBA implements color.Color for ebiten.Image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}
