package halftone

import "testing"

func TestBayerThresholdPeriodic(t *testing.T) {
	for _, size := range []int{2, 4, 8} {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				base := bayerThreshold(size, x, y)
				if got := bayerThreshold(size, x+size, y); got != base {
					t.Errorf("size %d: threshold(%d+%d, %d) = %v, want %v", size, x, size, y, got, base)
				}
				if got := bayerThreshold(size, x, y+size); got != base {
					t.Errorf("size %d: threshold(%d, %d+%d) = %v, want %v", size, x, y, size, got, base)
				}
				if got := bayerThreshold(size, x+3*size, y+7*size); got != base {
					t.Errorf("size %d: far tile threshold(%d, %d) = %v, want %v", size, x, y, got, base)
				}
			}
		}
	}
}

func TestBayerThresholdNegativeCoords(t *testing.T) {
	for _, size := range []int{2, 4, 8} {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				base := bayerThreshold(size, x, y)
				if got := bayerThreshold(size, x-size, y-size); got != base {
					t.Errorf("size %d: threshold(%d, %d) with negative tile = %v, want %v", size, x, y, got, base)
				}
			}
		}
	}
}

func TestBayerThresholds2x2(t *testing.T) {
	// Half-step biased {0,2;3,1}/4.
	assertNear(t, "t(0,0)", bayerThreshold(2, 0, 0), 0.125)
	assertNear(t, "t(1,0)", bayerThreshold(2, 1, 0), 0.625)
	assertNear(t, "t(0,1)", bayerThreshold(2, 0, 1), 0.875)
	assertNear(t, "t(1,1)", bayerThreshold(2, 1, 1), 0.375)
}

func TestBayerThresholdsDistinctAndBounded(t *testing.T) {
	for _, size := range []int{2, 4, 8} {
		seen := make(map[float64]bool)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := bayerThreshold(size, x, y)
				if v <= 0 || v >= 1 {
					t.Errorf("size %d: threshold(%d,%d) = %v out of (0,1)", size, x, y, v)
				}
				if seen[v] {
					t.Errorf("size %d: duplicate threshold %v", size, v)
				}
				seen[v] = true
			}
		}
		if len(seen) != size*size {
			t.Errorf("size %d: %d distinct thresholds, want %d", size, len(seen), size*size)
		}
	}
}

func TestBayerMatrix64MatchesLookup(t *testing.T) {
	var buf [64]float32
	for _, size := range []int{2, 4, 8} {
		bayerMatrix64(size, &buf)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				want := float32(bayerThreshold(size, x, y))
				if got := buf[y*size+x]; got != want {
					t.Errorf("size %d: buf[%d] = %v, want %v", size, y*size+x, got, want)
				}
			}
		}
		for i := size * size; i < 64; i++ {
			if buf[i] != 0 {
				t.Errorf("size %d: buf[%d] = %v, want 0 padding", size, i, buf[i])
			}
		}
	}
}
