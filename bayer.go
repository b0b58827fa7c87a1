package halftone

// Bayer ordered-dither threshold matrices. The raw tables hold the classic
// integer dither ranks; thresholds are normalized with a half-step bias,
// (rank + 0.5) / n², so that a mid-gray input splits evenly across the tile
// instead of rounding the center rank all one way.

var bayer2x2 = [4]float64{
	0, 2,
	3, 1,
}

var bayer4x4 = [16]float64{
	0, 8, 2, 10,
	12, 4, 14, 6,
	3, 11, 1, 9,
	15, 7, 13, 5,
}

var bayer8x8 = [64]float64{
	0, 32, 8, 40, 2, 34, 10, 42,
	48, 16, 56, 24, 50, 18, 58, 26,
	12, 44, 4, 36, 14, 46, 6, 38,
	60, 28, 52, 20, 62, 30, 54, 22,
	3, 35, 11, 43, 1, 33, 9, 41,
	51, 19, 59, 27, 49, 17, 57, 25,
	15, 47, 7, 39, 13, 45, 5, 37,
	63, 31, 55, 23, 61, 29, 53, 21,
}

// bayerThreshold returns the normalized threshold in (0, 1) for pixel (x, y)
// under a size×size matrix. The lookup is periodic in both axes with period
// size. Sizes other than 2, 4, and 8 fall back to 4.
func bayerThreshold(size, x, y int) float64 {
	// mod for negative coordinates too.
	mx := ((x % size) + size) % size
	my := ((y % size) + size) % size
	switch size {
	case 2:
		return (bayer2x2[my*2+mx] + 0.5) / 4
	case 8:
		return (bayer8x8[my*8+mx] + 0.5) / 64
	default:
		return (bayer4x4[my*4+mx] + 0.5) / 16
	}
}

// bayerMatrix64 writes the normalized size×size matrix into the first
// size*size elements of a 64-element buffer, row-major. The GPU backend
// uploads this buffer as a single uniform regardless of matrix size.
func bayerMatrix64(size int, out *[64]float32) {
	n := size * size
	for i := 0; i < n; i++ {
		var v float64
		switch size {
		case 2:
			v = (bayer2x2[i] + 0.5) / 4
		case 8:
			v = (bayer8x8[i] + 0.5) / 64
		default:
			v = (bayer4x4[i] + 0.5) / 16
		}
		out[i] = float32(v)
	}
	for i := n; i < 64; i++ {
		out[i] = 0
	}
}
