package halftone

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// gpuBackend runs the pixel stage as a Kage shader on Ebitengine images.
// Bayer and Ordered are one full-surface draw; error diffusion is exactly
// two: the quantize pass renders each pixel's own error into the scratch
// plane, then the diffuse pass renders the final color into the destination,
// reading the scratch at the same coordinate. No CPU-side synchronization is
// needed between the draws: the second is submitted after the first and
// command-queue order guarantees it observes the scratch writes.
type gpuBackend struct {
	shader   *ebiten.Shader
	textures textureSet
	uniforms *stageUniforms
	drawOp   ebiten.DrawRectShaderOptions
}

// newGPUBackend compiles the pixel stage shader. A compile failure is fatal
// to construction (CompileOrLinkFailure): no half-built backend is returned.
func newGPUBackend() (*gpuBackend, error) {
	shader, err := compileStageShader()
	if err != nil {
		return nil, err
	}
	return &gpuBackend{
		shader:   shader,
		uniforms: newStageUniforms(),
	}, nil
}

func (b *gpuBackend) Name() string { return "gpu" }

// Render implements one render call. Resource preparation happens strictly
// before the destination surface is touched, so any failure leaves the
// previously rendered output intact. A draw panic (lost context, device
// removal) is converted to an error rather than crossing the boundary.
func (b *gpuBackend) Render(src *image.RGBA, params Params, lut *LookupTable, lutGen uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gpu render: %v", r)
		}
	}()

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if err := b.textures.ensureSize(w, h); err != nil {
		return err
	}
	b.textures.uploadSource(src)
	b.textures.uploadPalette(lut, lutGen)
	if params.Type == ErrorDiffusion {
		b.textures.resetScratch()
	}
	if err := b.textures.ensureDest(w, h); err != nil {
		return err
	}

	t := &b.textures
	if params.Type == ErrorDiffusion {
		// Quantize pass targets the scratch plane. The scratch slot is
		// re-bound to the source because a shader input may not alias the
		// render target; the pass never samples that slot.
		b.draw(t.scratch, [3]*ebiten.Image{t.source, t.palette, t.source}, params, 0)
		b.draw(t.dest, [3]*ebiten.Image{t.source, t.palette, t.scratch}, params, 1)
		return nil
	}
	b.draw(t.dest, [3]*ebiten.Image{t.source, t.palette, t.source}, params, -1)
	return nil
}

// draw issues one full-surface shader pass.
func (b *gpuBackend) draw(target *ebiten.Image, images [3]*ebiten.Image, params Params, passIndex int) {
	b.drawOp.Images[0] = images[0]
	b.drawOp.Images[1] = images[1]
	b.drawOp.Images[2] = images[2]
	b.drawOp.Uniforms = b.uniforms.bind(params, passIndex, b.textures.w)
	b.drawOp.Blend = ebiten.BlendCopy
	target.DrawRectShader(b.textures.w, b.textures.h, b.shader, &b.drawOp)
}

// Readback waits on command completion (ReadPixels flushes the queue) and
// returns the destination surface.
func (b *gpuBackend) Readback() (*image.NRGBA, error) {
	return b.textures.readback()
}

// Dispose releases all GPU resources.
func (b *gpuBackend) Dispose() {
	b.textures.dispose()
}
