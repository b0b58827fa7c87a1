package halftone

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of colors. Order is significant: color i is
// assigned the i-th ascending luminance band of the lookup table, regardless
// of the color's actual brightness.
type Palette []Color

// Palettes carry between 2 and 16 colors. Selections outside that range are
// recovered locally, never surfaced as errors.
const (
	MinPaletteColors = 2
	MaxPaletteColors = 16
)

// PaletteSelection declaratively picks a palette for a render call. Exactly
// one of the three forms is consulted, in this precedence order: Custom,
// User, Builtin. An unresolvable selection falls back to black and white.
type PaletteSelection struct {
	// Custom is used verbatim when non-empty (no subsetting).
	Custom Palette
	// User names a palette in the pipeline's PaletteStore.
	User string
	// Builtin names an entry of the built-in catalog.
	Builtin string
	// ColorCount subsets a built-in palette to this many colors by picking
	// evenly spaced indices. Zero means the full built-in list.
	ColorCount int
}

// fallbackPalette is the recovery palette for invalid selections.
func fallbackPalette() Palette {
	return Palette{ColorBlack, ColorWhite}
}

// --- Built-in catalog ---

// mustHex parses a #rrggbb string. Catalog entries are compile-time
// constants, so a parse failure is a programming error.
func mustHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("halftone: bad builtin palette color " + s + ": " + err.Error())
	}
	return Color{c.R, c.G, c.B, 1}
}

var builtinPalettes = map[string]Palette{
	"bw": {ColorBlack, ColorWhite},
	"grayscale": {
		mustHex("#000000"), mustHex("#111111"), mustHex("#222222"), mustHex("#333333"),
		mustHex("#444444"), mustHex("#555555"), mustHex("#666666"), mustHex("#777777"),
		mustHex("#888888"), mustHex("#999999"), mustHex("#aaaaaa"), mustHex("#bbbbbb"),
		mustHex("#cccccc"), mustHex("#dddddd"), mustHex("#eeeeee"), mustHex("#ffffff"),
	},
	"gameboy": {
		mustHex("#0f380f"), mustHex("#306230"), mustHex("#8bac0f"), mustHex("#9bbc0f"),
	},
	"cga": {
		mustHex("#000000"), mustHex("#55ffff"), mustHex("#ff55ff"), mustHex("#ffffff"),
	},
	"sepia": {
		mustHex("#2b1d0e"), mustHex("#5e452a"), mustHex("#8f6b48"), mustHex("#bd9a6b"),
		mustHex("#e3c698"), mustHex("#f5e5c0"),
	},
	"fire": {
		mustHex("#000000"), mustHex("#5f0f00"), mustHex("#b62203"), mustHex("#ef6c00"),
		mustHex("#ffc107"), mustHex("#ffff8d"), mustHex("#ffffff"),
	},
}

// BuiltinIDs returns the sorted names of the built-in palette catalog.
func BuiltinIDs() []string {
	ids := make([]string, 0, len(builtinPalettes))
	for id := range builtinPalettes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuiltinPalette returns a copy of the named built-in palette, or nil if the
// name is unknown.
func BuiltinPalette(id string) Palette {
	p, ok := builtinPalettes[id]
	if !ok {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// SortByLuminance returns a copy of the palette ordered from darkest to
// brightest. Resolution never applies this implicitly; band assignment
// follows list order, and callers opt in when they want perceptual ordering.
func SortByLuminance(p Palette) Palette {
	out := make(Palette, len(p))
	copy(out, p)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Luminance() < out[j].Luminance()
	})
	return out
}

// ParseHex parses a #rrggbb color string into a Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{c.R, c.G, c.B, 1}, nil
}

// Hex formats the color as a #rrggbb string.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// --- Lookup table ---

// LookupTable is the rasterized form of a palette: a dense 256-entry
// luminance-to-color map. Entry i covers luminance i/255; palette colors
// occupy contiguous equal-width ascending bands by ordinal position.
type LookupTable struct {
	Colors Palette
	Table  [256]Color
}

// rasterize builds the 256-entry table: position i maps to source color
// floor(i/255 * colorCount), clamped to the last index.
func rasterize(colors Palette) *LookupTable {
	lut := &LookupTable{Colors: colors}
	n := len(colors)
	for i := 0; i < 256; i++ {
		idx := i * n / 255
		if idx > n-1 {
			idx = n - 1
		}
		lut.Table[i] = colors[idx]
	}
	return lut
}

// Sample returns the palette color for the given luminance. Lookup snaps to
// the nearest table entry; values outside [0, 1] clamp to the end bands.
func (t *LookupTable) Sample(lum float64) Color {
	i := int(clamp01(lum)*255 + 0.5)
	if i > 255 {
		i = 255
	}
	return t.Table[i]
}

// --- Palette service ---

// PaletteService resolves palette selections and memoizes the most recently
// rasterized palette so unchanged palettes are not re-rasterized (and, on the
// GPU backend, not re-uploaded) between renders.
type PaletteService struct {
	store *PaletteStore

	last       Palette
	lastLUT    *LookupTable
	generation uint64
}

// NewPaletteService creates a palette service. store may be nil, in which
// case named user selections fall back to black and white.
func NewPaletteService(store *PaletteStore) *PaletteService {
	return &PaletteService{store: store}
}

// Resolve turns a selection into a concrete ordered color list. Invalid
// selections (empty custom list, unknown names, too few colors) recover to
// the black/white fallback; Resolve never fails.
func (s *PaletteService) Resolve(sel PaletteSelection) Palette {
	if len(sel.Custom) > 0 {
		if len(sel.Custom) < MinPaletteColors {
			return fallbackPalette()
		}
		return clipPalette(sel.Custom)
	}
	if sel.User != "" {
		if s.store == nil {
			return fallbackPalette()
		}
		p, ok := s.store.Get(sel.User)
		if !ok || len(p) < MinPaletteColors {
			return fallbackPalette()
		}
		return clipPalette(p)
	}
	full, ok := builtinPalettes[sel.Builtin]
	if !ok {
		return fallbackPalette()
	}
	count := sel.ColorCount
	if count <= 0 || count >= len(full) {
		return clipPalette(full)
	}
	if count < MinPaletteColors {
		count = MinPaletteColors
	}
	// Even fractional steps across the built-in list.
	out := make(Palette, count)
	for i := 0; i < count; i++ {
		idx := i * len(full) / count
		if idx > len(full)-1 {
			idx = len(full) - 1
		}
		out[i] = full[idx]
	}
	return out
}

// Lookup resolves the selection and returns its rasterized lookup table.
// The table is rebuilt only when the resolved color list differs from the
// previous call's (structural equality); otherwise the memoized table is
// returned unchanged.
func (s *PaletteService) Lookup(sel PaletteSelection) *LookupTable {
	colors := s.Resolve(sel)
	if s.lastLUT != nil && palettesEqual(colors, s.last) {
		return s.lastLUT
	}
	s.last = colors
	s.lastLUT = rasterize(colors)
	s.generation++
	return s.lastLUT
}

// Generation increments every time the memoized lookup table is rebuilt.
// Backends use it to skip redundant palette texture uploads.
func (s *PaletteService) Generation() uint64 {
	return s.generation
}

// clipPalette caps a palette at MaxPaletteColors entries and copies it so
// the service never aliases caller-owned memory.
func clipPalette(p Palette) Palette {
	n := len(p)
	if n > MaxPaletteColors {
		n = MaxPaletteColors
	}
	out := make(Palette, n)
	copy(out, p[:n])
	return out
}

func palettesEqual(a, b Palette) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
