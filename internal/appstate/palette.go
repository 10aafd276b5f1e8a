package appstate

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"golang.org/x/image/colornames"

	"github.com/example/simplepaint/internal/surface"
	"github.com/example/simplepaint/internal/theme"
)

// PaletteColor is a named swatch in the toolbar palette.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Maroon", color.RGBA{128, 0, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Navy", color.RGBA{0, 0, 128, 255}},
		{"Olive", color.RGBA{128, 128, 0, 255}},
		{"Teal", color.RGBA{0, 128, 128, 255}},
		{"Purple", color.RGBA{128, 0, 128, 255}},
		{"Silver", color.RGBA{192, 192, 192, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
		{"Default Blue", color.RGBA{0, 99, 177, 255}},
	}
)

// PaletteColors returns the palette entries in toolbar order.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// EnsurePaletteColor makes sure col is present in the palette and returns its
// index. Unnamed colors are labelled with their hex value.
func EnsurePaletteColor(col color.RGBA, name string) int {
	col.A = 255
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing.Color == col {
			return idx
		}
	}
	if name == "" {
		name = theme.Hex(col)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

// PaletteIndex returns the index of c in the palette, or -1.
func PaletteIndex(c surface.Color) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for i, p := range palette {
		if surface.FromColor(p.Color) == c {
			return i
		}
	}
	return -1
}

func paletteAt(idx int) (PaletteColor, bool) {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if idx < 0 || idx >= len(palette) {
		return PaletteColor{}, false
	}
	return palette[idx], true
}

// ParseColor resolves a palette name, an SVG color name or a #RRGGBB value.
// Alpha is ignored since the canvas has none.
func ParseColor(s string) (surface.Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return surface.Color{}, fmt.Errorf("color cannot be empty")
	}
	for _, entry := range PaletteColors() {
		if strings.EqualFold(entry.Name, spec) {
			return surface.FromColor(entry.Color), nil
		}
	}
	if c, ok := colornames.Map[spec]; ok {
		return surface.FromColor(c), nil
	}
	if strings.HasPrefix(spec, "#") {
		c, err := theme.ParseColor(spec)
		if err != nil {
			return surface.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return surface.Color{R: c.R, G: c.G, B: c.B}, nil
	}
	return surface.Color{}, fmt.Errorf("invalid color %q", s)
}
