// Package halftone is a reduced-tone image renderer for [Ebitengine].
//
// Halftone converts a full-color bitmap into a stylized, tone-reduced image
// using one of three dithering algorithms (Bayer threshold matrices,
// randomized ordered dithering, or a two-pass parallel approximation of
// error diffusion), with optional tone preprocessing and palette-constrained
// output through a 256-entry luminance lookup table.
//
// # Quick start
//
// Build a [Pipeline], render, read the result back:
//
//	pipe, err := halftone.NewPipeline(halftone.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	ok := pipe.Render(img, halftone.Params{
//		Type:         halftone.Bayer,
//		BayerSize:    4,
//		DitherAmount: 0.8,
//	})
//	if !ok {
//		log.Fatal(pipe.Err())
//	}
//	out, _ := pipe.Output()
//
// The pipeline prefers a GPU backend (the pixel stage runs as a Kage shader
// on Ebitengine images) and falls back to a pure-Go software backend with
// identical pass semantics; set [Options.PreferSoftware] for headless tools.
// Both backends are algorithmically equivalent, not bit-identical.
//
// # Passes
//
// Bayer and Ordered are single full-surface passes. Error diffusion is two:
// a quantize pass stores each pixel's own quantization error in a scratch
// plane, and a diffuse pass folds that error back into the same pixel and
// re-quantizes. A pixel never reads a neighbor's error: this is a
// deliberate, fully parallel approximation of sequential error diffusion.
//
// # Palettes
//
// Palettes are ordered lists of 2–16 colors assigned to ascending luminance
// bands by list position. Select one per render via [PaletteSelection]:
// a built-in catalog entry (optionally subset), a custom color list, or a
// named palette from a [PaletteStore]. Invalid selections silently recover
// to black and white.
//
// [Ebitengine]: https://ebitengine.org
package halftone
