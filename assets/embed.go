package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Embedded editor themes and palettes for Pixelframe.
//
//go:embed themes/*.theme palettes/*.yaml
var embedded embed.FS

var (
	indexOnce sync.Once
	indexErr  error

	themeNames   []string
	paletteNames []string
)

func loadIndex() {
	themeNames, indexErr = listDir("themes", ".theme")
	if indexErr != nil {
		return
	}
	paletteNames, indexErr = listDir("palettes", ".yaml")
}

func listDir(dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(embedded, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}

func ensureIndex() error {
	indexOnce.Do(loadIndex)
	return indexErr
}

// Theme opens the embedded theme with the given name, without extension.
func Theme(name string) (fs.File, error) {
	name = strings.TrimSuffix(name, ".theme")
	f, err := embedded.Open(path.Join("themes", name+".theme"))
	if err != nil {
		return nil, fmt.Errorf("theme %q not embedded", name)
	}
	return f, nil
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	if err := ensureIndex(); err != nil {
		return nil
	}
	return append([]string(nil), themeNames...)
}

// Palette opens the embedded YAML palette with the given name.
func Palette(name string) (fs.File, error) {
	name = strings.TrimSuffix(name, ".yaml")
	f, err := embedded.Open(path.Join("palettes", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("palette %q not embedded", name)
	}
	return f, nil
}

// PaletteNames lists the embedded palettes.
func PaletteNames() []string {
	if err := ensureIndex(); err != nil {
		return nil
	}
	return append([]string(nil), paletteNames...)
}
