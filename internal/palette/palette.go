// Package palette holds the swatches offered by the editor and reads them
// from YAML or RIFF PAL files.
package palette

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelframe/assets"
	"github.com/example/pixelframe/internal/document"
)

// ErrUnknownFormat is returned by Load for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown palette format")

// Entry is one named swatch.
type Entry struct {
	Name  string
	Color uint32
}

// Palette is an ordered list of swatches.
type Palette struct {
	Name    string
	Entries []Entry
}

// Default returns the built-in 16 color palette.
func Default() Palette {
	return Palette{
		Name: "default",
		Entries: []Entry{
			{"Black", 0xFF000000},
			{"White", 0xFFFFFFFF},
			{"Charcoal", 0xFF404040},
			{"Silver", 0xFFC0C0C0},
			{"Red", 0xFF0000FF},
			{"Lime", 0xFF00FF00},
			{"Blue", 0xFFFF0000},
			{"Yellow", 0xFF00FFFF},
			{"Magenta", 0xFFFF00FF},
			{"Cyan", 0xFFFFFF00},
			{"Navy", 0xFF804000},
			{"Azure", 0xFFFFA500},
			{"Cobalt", 0xFF8B4513},
			{"Purple", 0xFF800080},
			{"Olive", 0xFF008080},
			{"Orange", 0xFF1E90FF},
		},
	}
}

// Len returns the number of swatches.
func (p Palette) Len() int { return len(p.Entries) }

// At returns the swatch at i, clamped to the palette. An empty palette
// yields a transparent entry.
func (p Palette) At(i int) Entry {
	if len(p.Entries) == 0 {
		return Entry{Name: "transparent"}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.Entries) {
		i = len(p.Entries) - 1
	}
	return p.Entries[i]
}

// Index returns the position of c, or -1.
func (p Palette) Index(c uint32) int {
	for i, e := range p.Entries {
		if e.Color == c {
			return i
		}
	}
	return -1
}

// Nearest returns the index of the swatch closest to c by squared RGBA
// distance, or -1 for an empty palette.
func (p Palette) Nearest(c uint32) int {
	best, bestDist := -1, -1
	r, g, b, a := document.Unpack(c)
	for i, e := range p.Entries {
		er, eg, eb, ea := document.Unpack(e.Color)
		d := sq(int(r)-int(er)) + sq(int(g)-int(eg)) + sq(int(b)-int(eb)) + sq(int(a)-int(ea))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sq(v int) int { return v * v }

// Load reads a palette file, choosing the decoder from the extension:
// .yaml/.yml or .pal (RIFF).
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var p Palette
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = DecodeYAML(f)
	case ".pal":
		p, err = ReadRIFF(f)
	default:
		return Palette{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return Palette{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// Resolve finds a palette by file path or embedded name. An empty name or
// "default" gives the built-in palette.
func Resolve(name string) (Palette, error) {
	if name == "" || name == "default" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}
	f, err := assets.Palette(name)
	if err != nil {
		return Palette{}, err
	}
	defer f.Close()
	p, err := DecodeYAML(f)
	if err != nil {
		return Palette{}, fmt.Errorf("%s: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
