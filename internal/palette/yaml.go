package palette

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlPalette struct {
	Name   string      `yaml:"name"`
	Colors []yamlEntry `yaml:"colors"`
}

type yamlEntry struct {
	Name  string `yaml:"name,omitempty"`
	Color string `yaml:"color"`
}

// DecodeYAML reads a palette of the form
//
//	name: pico
//	colors:
//	  - name: ink
//	    color: "#1D2B53"
func DecodeYAML(r io.Reader) (Palette, error) {
	var yp yamlPalette
	if err := yaml.NewDecoder(r).Decode(&yp); err != nil {
		return Palette{}, fmt.Errorf("decode yaml: %w", err)
	}
	p := Palette{Name: yp.Name}
	for i, e := range yp.Colors {
		c, err := ParseColor(e.Color)
		if err != nil {
			return Palette{}, fmt.Errorf("color %d: %w", i, err)
		}
		name := e.Name
		if name == "" {
			name = FormatColor(c)
		}
		p.Entries = append(p.Entries, Entry{Name: name, Color: c})
	}
	return p, nil
}

// MarshalYAML encodes p in the format read by DecodeYAML.
func (p Palette) MarshalYAML() (interface{}, error) {
	yp := yamlPalette{Name: p.Name}
	for _, e := range p.Entries {
		yp.Colors = append(yp.Colors, yamlEntry{Name: e.Name, Color: FormatColor(e.Color)})
	}
	return yp, nil
}

// EncodeYAML writes p to w.
func EncodeYAML(w io.Writer, p Palette) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
