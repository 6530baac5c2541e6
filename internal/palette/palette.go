// Package palette provides the two colour palettes used to present the CHIP-8 display.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Default is the name of the palette used when none is selected.
const Default = "nokia"

// Palette holds the colour of unset and set pixels.
type Palette struct {
	Name       string
	Background color.RGBA
	Foreground color.RGBA
}

// Color returns the colour for a pixel state.
func (p Palette) Color(set bool) color.RGBA {
	if set {
		return p.Foreground
	}
	return p.Background
}

var palettes = map[string]Palette{
	"original": newPalette("original", 0x000000, 0xFFFFFF),
	"nokia":    newPalette("nokia", 0x43523D, 0xC7F0D8),
	"lcd":      newPalette("lcd", 0xF9FFB3, 0x3D8026),
	"hotdog":   newPalette("hotdog", 0x000000, 0xFF0000),
	"gray":     newPalette("gray", 0xAAAAAA, 0x000000),
	"cga0":     newPalette("cga0", 0x000000, 0x00FF00),
	"cga1":     newPalette("cga1", 0x000000, 0xFF00FF),
	"borland":  newPalette("borland", 0x0000FF, 0xFFFF00),
	"octo":     newPalette("octo", 0xAA4400, 0xFFAA00),
}

// ByName returns the palette with the given case insensitive name.
func ByName(name string) (Palette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette '%s', valid palettes: %s",
			name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the sorted names of all palettes.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newPalette(name string, background, foreground uint32) Palette {
	return Palette{
		Name:       name,
		Background: rgb(background),
		Foreground: rgb(foreground),
	}
}

func rgb(value uint32) color.RGBA {
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}
}
