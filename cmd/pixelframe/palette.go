package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/example/pixelframe/assets"
	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/palette"
)

// paletteCmd lists the colors of a palette or converts it to YAML or RIFF.
type paletteCmd struct {
	*root
	fs *flag.FlagSet

	format string
	output string
	list   bool
	name   string
	stdout io.Writer
}

func (p *paletteCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaletteCmd(args []string, r *root) (*paletteCmd, error) {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	p := &paletteCmd{root: r.subcommand("palette"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.format, "format", "text", "output format: text, yaml or pal")
	fs.StringVar(&p.output, "output", "", "write to a file instead of stdout")
	fs.BoolVar(&p.list, "list", false, "list the embedded palette names")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
		p.name = p.config.Palette
	case 1:
		p.name = fs.Arg(0)
	default:
		return nil, &UsageError{of: p}
	}
	switch p.format {
	case "text", "yaml", "pal":
	default:
		return nil, fmt.Errorf("unknown palette format %q", p.format)
	}
	if p.format == "pal" && p.output == "" {
		return nil, fmt.Errorf("-format pal is binary and needs -output")
	}
	return p, nil
}

func (p *paletteCmd) Run() error {
	if p.list {
		fmt.Fprintln(p.stdout, "default")
		for _, name := range assets.PaletteNames() {
			fmt.Fprintln(p.stdout, name)
		}
		return nil
	}
	pal, err := palette.Resolve(p.name)
	if err != nil {
		return err
	}
	w := p.stdout
	if p.output != "" {
		f, err := os.Create(p.output)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("error closing %q: %v", p.output, err)
			}
		}()
		w = f
	}
	switch p.format {
	case "yaml":
		return palette.EncodeYAML(w, pal)
	case "pal":
		return palette.WriteRIFF(w, pal)
	}
	return writePaletteText(w, pal)
}

func writePaletteText(w io.Writer, pal palette.Palette) error {
	if pal.Len() == 0 {
		_, err := fmt.Fprintln(w, "no colors available")
		return err
	}
	fmt.Fprintf(w, "palette %s (%d colors):\n", pal.Name, pal.Len())
	for idx, entry := range pal.Entries {
		r, g, b, _ := document.Unpack(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
		if _, err := fmt.Fprintf(w, "%2d: %-12s %-9s %s\n", idx, entry.Name, palette.FormatColor(entry.Color), block); err != nil {
			return err
		}
	}
	return nil
}
