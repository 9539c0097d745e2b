package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/config"
	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/palette"
	"github.com/example/pixelframe/internal/present"
)

// editCmd opens the editor window with one tab per input file, or a blank
// document when none are given.
type editCmd struct {
	*root
	fs *flag.FlagSet

	canvas        config.Canvas
	fill          string
	zoom          int
	fps           float64
	noLoop        bool
	grid          bool
	onion         bool
	tool          string
	size          int
	color         string
	paletteName   string
	exportDir     string
	scale         int
	fromClipboard bool
	files         []string

	// Resolved by parseEditCmd.
	brush   canvas.ToolState
	palette palette.Palette
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	cfg := e.config
	fs.Usage = usageFunc(e)
	fs.IntVar(&e.canvas.Width, "width", cfg.Canvas.Width, "width of new documents in pixels")
	fs.IntVar(&e.canvas.Height, "height", cfg.Canvas.Height, "height of new documents in pixels")
	fs.IntVar(&e.canvas.Frames, "frames", cfg.Canvas.Frames, "frame count of new documents")
	fs.StringVar(&e.fill, "fill", palette.FormatColor(cfg.Canvas.Fill), "fill color of new documents")
	fs.IntVar(&e.zoom, "zoom", cfg.View.Zoom, "initial zoom (1, 2, 4, 8, 16 or 32)")
	fs.Float64Var(&e.fps, "fps", cfg.Playback.FPS, "playback frames per second")
	fs.BoolVar(&e.noLoop, "once", !cfg.Playback.Loop, "stop playback on the last frame")
	fs.BoolVar(&e.grid, "grid", cfg.View.Grid, "show the pixel grid")
	fs.BoolVar(&e.onion, "onion", cfg.View.OnionSkin, "show the previous frame as an onion skin")
	fs.StringVar(&e.tool, "tool", cfg.Brush.Tool, "initial tool")
	fs.IntVar(&e.size, "size", cfg.Brush.Size, "initial brush size")
	fs.StringVar(&e.color, "color", palette.FormatColor(cfg.Brush.Color), "initial brush color")
	fs.StringVar(&e.paletteName, "palette", cfg.Palette, "palette file or embedded palette name")
	fs.StringVar(&e.exportDir, "export-dir", cfg.ExportDir, "directory Ctrl+E writes to")
	fs.IntVar(&e.scale, "scale", 1, "pixel scale of exported images")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "open the clipboard image in a tab")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	e.files = fs.Args()

	kind, err := canvas.ParseToolKind(e.tool)
	if err != nil {
		return nil, err
	}
	c, err := palette.ParseColor(e.color)
	if err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}
	e.brush = canvas.ToolState{Kind: kind, Radius: e.size, Color: c}.Normalized()
	if e.canvas.Fill, err = palette.ParseColor(e.fill); err != nil {
		return nil, fmt.Errorf("-fill: %w", err)
	}
	if e.palette, err = palette.Resolve(e.paletteName); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	if e.exportDir == "" {
		e.exportDir = "."
	}
	return e, nil
}

// options builds the window options, loading every input file.
func (e *editCmd) options() ([]present.Option, error) {
	opts := []present.Option{
		present.WithTheme(e.activeTheme),
		present.WithPalette(e.palette),
		present.WithTool(e.brush),
		present.WithView(e.zoom, e.grid, e.onion),
		present.WithPlayback(e.fps, !e.noLoop),
		present.WithExport(e.exportDir, e.scale),
		present.WithNotifier(e.notifier),
		present.WithDocumentFactory(func() *document.Document { return newDocument(e.canvas) }),
	}
	for _, path := range e.files {
		doc, err := loadDocument(path)
		if err != nil {
			return nil, err
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		opts = append(opts, present.WithTab(doc, title, ""))
	}
	if e.fromClipboard {
		doc, err := loadClipboardDocument()
		if err != nil {
			return nil, err
		}
		opts = append(opts, present.WithTab(doc, "clipboard", ""))
	}
	if len(e.files) == 0 && !e.fromClipboard {
		opts = append(opts, present.WithTab(newDocument(e.canvas), "", ""))
	}
	return opts, nil
}

func (e *editCmd) Run() error {
	opts, err := e.options()
	if err != nil {
		return err
	}
	present.New(opts...).Run()
	return nil
}
