package halftone

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"
)

// UserPalette is a named palette persisted between sessions. The pipeline
// itself never touches the store during a render; selections are resolved to
// plain color lists up front.
type UserPalette struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Colors []string `json:"colors"` // #rrggbb strings
}

// PaletteStore holds named user palettes and reads/writes them as a single
// JSON file. It is a caller-side collaborator: the store is consulted at
// selection-resolution time only.
type PaletteStore struct {
	path    string
	entries map[string]Palette
	order   []string
}

// NewPaletteStore creates an empty store that persists to the given path.
func NewPaletteStore(path string) *PaletteStore {
	return &PaletteStore{
		path:    path,
		entries: make(map[string]Palette),
	}
}

// Load reads the store file. A missing file is not an error: the store just
// starts empty. Parsing is tolerant: malformed entries and unparseable
// colors are skipped rather than failing the whole file.
func (s *PaletteStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read palette store %s: %w", s.path, err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("read palette store %s: not valid JSON", s.path)
	}
	s.entries = make(map[string]Palette)
	s.order = s.order[:0]
	gjson.GetBytes(data, "palettes").ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name").String()
		if name == "" {
			name = entry.Get("id").String()
		}
		if name == "" {
			return true
		}
		var colors Palette
		entry.Get("colors").ForEach(func(_, hex gjson.Result) bool {
			c, err := ParseHex(hex.String())
			if err == nil {
				colors = append(colors, c)
			}
			return true
		})
		if len(colors) >= MinPaletteColors {
			s.put(name, colors)
		}
		return true
	})
	return nil
}

// Save writes all palettes back to the store file.
func (s *PaletteStore) Save() error {
	type fileFormat struct {
		Palettes []UserPalette `json:"palettes"`
	}
	var ff fileFormat
	for _, name := range s.order {
		p := s.entries[name]
		up := UserPalette{ID: name, Name: name, Colors: make([]string, len(p))}
		for i, c := range p {
			up.Colors[i] = c.Hex()
		}
		ff.Palettes = append(ff.Palettes, up)
	}
	data, err := json.MarshalIndent(&ff, "", "  ")
	if err != nil {
		return fmt.Errorf("encode palette store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write palette store %s: %w", s.path, err)
	}
	return nil
}

// Get returns the named palette and whether it exists.
func (s *PaletteStore) Get(name string) (Palette, bool) {
	p, ok := s.entries[name]
	return p, ok
}

// Put adds or replaces a named palette. Lists shorter than MinPaletteColors
// are rejected.
func (s *PaletteStore) Put(name string, colors Palette) bool {
	if name == "" || len(colors) < MinPaletteColors {
		return false
	}
	cp := make(Palette, len(colors))
	copy(cp, colors)
	s.put(name, cp)
	return true
}

// Remove deletes a named palette if present.
func (s *PaletteStore) Remove(name string) {
	if _, ok := s.entries[name]; !ok {
		return
	}
	delete(s.entries, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Names returns the stored palette names in sorted order.
func (s *PaletteStore) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)
	return names
}

func (s *PaletteStore) put(name string, colors Palette) {
	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	s.entries[name] = colors
}
