package halftone

import "image"

// Backend executes the pixel stage on one rendering substrate. The pipeline
// and callers are backend-agnostic: the GPU backend runs the Kage shader,
// the software backend runs the reference functions in pixel.go, and both
// honor the same pass structure and numeric semantics (algorithmic
// equivalence, not bit-identical output).
type Backend interface {
	// Name identifies the backend ("gpu" or "software").
	Name() string
	// Render executes one full render call into the backend's destination
	// surface. src is read-only for the duration of the call. A non-nil
	// error means the previous destination contents are untouched.
	Render(src *image.RGBA, params Params, lut *LookupTable, lutGen uint64) error
	// Readback returns the destination surface as a straight-alpha image.
	Readback() (*image.NRGBA, error)
	// Dispose releases backend resources. The backend is unusable afterward.
	Dispose()
}

// newBackend is the capability-probing factory: it prefers the GPU backend
// and falls back to software when shader compilation is unavailable or
// fails. preferSoftware skips the probe entirely.
func newBackend(preferSoftware bool) Backend {
	if !preferSoftware {
		if b := probeGPU(); b != nil {
			return b
		}
	}
	return newSoftwareBackend()
}

// probeGPU attempts to build the GPU backend, absorbing both compile errors
// and the panics a missing graphics environment can raise.
func probeGPU() (b Backend) {
	defer func() {
		if recover() != nil {
			b = nil
		}
	}()
	gpu, err := newGPUBackend()
	if err != nil {
		return nil
	}
	return gpu
}
