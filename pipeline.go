package halftone

import (
	"fmt"
	"image"
)

// Options configures pipeline construction. The zero value asks for the
// best available backend and no user palette store.
type Options struct {
	// PreferSoftware skips the GPU probe and always uses the software
	// backend. Useful for headless tools and tests.
	PreferSoftware bool
	// Store supplies named user palettes for PaletteSelection.User. May be
	// nil.
	Store *PaletteStore
}

// Pipeline is the pass orchestrator: it owns one backend and its resources,
// resolves palettes, and turns Params into draw passes. A pipeline instance
// is not safe for concurrent use: callers serialize render calls. A render
// call cannot be canceled once issued and a newer call never preempts an
// older one.
type Pipeline struct {
	backend  Backend
	palettes *PaletteService
	neutral  *LookupTable // bound when UsePalette is off; keeps the memo cold
	lastErr  error
}

// NewPipeline builds a pipeline, probing for a GPU backend and falling back
// to software. Construction only fails if no backend can be built, which
// the software fallback makes effectively impossible; the error return
// exists for the CompileOrLinkFailure contract should the fallback ever be
// removed.
func NewPipeline(opts Options) (*Pipeline, error) {
	b := newBackend(opts.PreferSoftware)
	if b == nil {
		return nil, fmt.Errorf("no rendering backend available")
	}
	return &Pipeline{
		backend:  b,
		palettes: NewPaletteService(opts.Store),
		neutral:  rasterize(fallbackPalette()),
	}, nil
}

// Render executes one full render call: upload the image, resolve the
// palette, bind parameters, and dispatch one pass (Bayer, Ordered) or two
// (ErrorDiffusion). It reports success; it never panics across this
// boundary. On failure the previous output is untouched and the pipeline
// remains usable for a retry.
//
// When params.DownsampleFactor exceeds 1 the image is downsampled first;
// a downsample failure silently falls back to the original image.
func (p *Pipeline) Render(img image.Image, params Params) bool {
	if p.backend == nil {
		p.lastErr = fmt.Errorf("render on disposed pipeline")
		return false
	}
	if img == nil {
		p.lastErr = fmt.Errorf("render: nil image")
		return false
	}
	params = params.Normalize()

	src := Downsample(img, params.DownsampleFactor)
	if src.Bounds().Empty() {
		p.lastErr = fmt.Errorf("render: empty image")
		return false
	}

	// The palette texture is bound on every draw, so an unused palette
	// still needs a concrete table: the neutral one, which bypasses the
	// service memo so toggling UsePalette doesn't thrash it.
	lut, gen := p.neutral, uint64(0)
	if params.UsePalette {
		lut = p.palettes.Lookup(params.Palette)
		gen = p.palettes.Generation()
	}

	if err := p.backend.Render(src, params, lut, gen); err != nil {
		p.lastErr = err
		return false
	}
	p.lastErr = nil
	return true
}

// Err returns the failure recorded by the most recent Render, or nil if it
// succeeded. Render itself only reports a bool, per the no-throw contract;
// Err exists for diagnostics.
func (p *Pipeline) Err() error {
	return p.lastErr
}

// Output reads the destination surface back as a straight-alpha image. On
// the GPU backend this waits for command completion. The returned image may
// alias backend memory; copy it before the next Render if it must persist.
func (p *Pipeline) Output() (*image.NRGBA, error) {
	if p.backend == nil {
		return nil, fmt.Errorf("output of disposed pipeline")
	}
	return p.backend.Readback()
}

// BackendName reports which backend the capability probe selected.
func (p *Pipeline) BackendName() string {
	if p.backend == nil {
		return "disposed"
	}
	return p.backend.Name()
}

// Dispose releases all backend resources. The pipeline is unusable after.
func (p *Pipeline) Dispose() {
	if p.backend != nil {
		p.backend.Dispose()
		p.backend = nil
	}
}
