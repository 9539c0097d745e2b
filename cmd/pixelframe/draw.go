package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/clipboard"
	"github.com/example/pixelframe/internal/config"
	"github.com/example/pixelframe/internal/export"
	"github.com/example/pixelframe/internal/palette"
	"github.com/example/pixelframe/internal/session"
)

var writeClipboardImage = clipboard.WriteImage

// drawOp is one step of a draw script, e.g. "brush 3 4" or "flip h".
type drawOp struct {
	name string
	nums []int
	word string
}

// drawArity lists the integer arguments each operation takes. Operations
// taking a word instead have arity -1.
var drawArity = map[string]int{
	"brush":   2,
	"erase":   2,
	"size":    1,
	"color":   -1,
	"frame":   1,
	"add":     0,
	"dup":     0,
	"delete":  0,
	"reverse": 0,
	"resize":  2,
	"frames":  1,
	"flip":    -1,
	"clear":   0,
}

// drawCmd edits a document without opening a window and exports the
// result.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	canvas        config.Canvas
	fill          string
	input         string
	fromClipboard bool
	output        string
	toClipboard   bool
	colorSpec     string
	size          int
	fps           float64
	once          bool
	scale         int
	ops           []drawOp

	tool canvas.ToolState
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r.subcommand("draw"), fs: fs}
	cfg := d.config
	fs.Usage = usageFunc(d)
	fs.IntVar(&d.canvas.Width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&d.canvas.Height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.IntVar(&d.canvas.Frames, "frames", cfg.Canvas.Frames, "initial frame count")
	fs.StringVar(&d.fill, "fill", palette.FormatColor(cfg.Canvas.Fill), "initial fill color")
	fs.StringVar(&d.input, "input", "", "start from a PNG instead of a blank canvas")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "start from the clipboard image")
	fs.StringVar(&d.output, "output", "", "output path: .gif animation, .png sprite sheet, or a directory of frames")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the selected frame to the clipboard")
	fs.StringVar(&d.colorSpec, "color", palette.FormatColor(cfg.Brush.Color), "brush color name or hex value")
	fs.IntVar(&d.size, "size", cfg.Brush.Size, "brush size in pixels")
	fs.Float64Var(&d.fps, "fps", cfg.Playback.FPS, "GIF frames per second")
	fs.BoolVar(&d.once, "once", !cfg.Playback.Loop, "GIF plays once instead of looping")
	fs.IntVar(&d.scale, "scale", 1, "pixel scale of the output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.output == "" && !d.toClipboard {
		return nil, fmt.Errorf("an output path or -to-clipboard is required")
	}
	if d.input != "" && d.fromClipboard {
		return nil, fmt.Errorf("-input and -from-clipboard cannot be combined")
	}
	var err error
	if d.canvas.Fill, err = palette.ParseColor(d.fill); err != nil {
		return nil, fmt.Errorf("-fill: %w", err)
	}
	c, err := palette.ParseColor(d.colorSpec)
	if err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}
	d.tool = canvas.ToolState{Kind: canvas.ToolBrush, Radius: d.size, Color: c}.Normalized()
	if d.ops, err = parseDrawOps(fs.Args()); err != nil {
		return nil, err
	}
	return d, nil
}

func parseDrawOps(args []string) ([]drawOp, error) {
	var ops []drawOp
	for i := 0; i < len(args); {
		name := strings.ToLower(args[i])
		n, ok := drawArity[name]
		if !ok {
			return nil, fmt.Errorf("unknown operation %q", args[i])
		}
		i++
		op := drawOp{name: name}
		if n < 0 {
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires an argument", name)
			}
			op.word = args[i]
			i++
		} else {
			if i+n > len(args) {
				return nil, fmt.Errorf("%s requires %d integer arguments", name, n)
			}
			for _, raw := range args[i : i+n] {
				v, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("%s: invalid integer %q", name, raw)
				}
				op.nums = append(op.nums, v)
			}
			i += n
		}
		if err := op.validate(); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (op drawOp) validate() error {
	switch op.name {
	case "color":
		_, err := palette.ParseColor(op.word)
		return err
	case "flip":
		if w := strings.ToLower(op.word); w != "h" && w != "v" {
			return fmt.Errorf("flip takes h or v, got %q", op.word)
		}
	case "frame":
		if op.nums[0] < 1 {
			return fmt.Errorf("frame numbers start at 1")
		}
	}
	return nil
}

func (d *drawCmd) Run() error {
	doc := newDocument(d.canvas)
	var err error
	switch {
	case d.input != "":
		doc, err = loadDocument(d.input)
	case d.fromClipboard:
		doc, err = loadClipboardDocument()
	}
	if err != nil {
		return err
	}
	s := session.New(doc, image.Rectangle{}, session.WithTool(d.tool))
	defer s.Close()
	for _, op := range d.ops {
		if err := d.apply(s, op); err != nil {
			return fmt.Errorf("%s: %w", op.name, err)
		}
	}

	if d.output != "" {
		opts := export.Options{Scale: d.scale, FPS: d.fps, Loop: !d.once}
		paths, err := export.Write(context.Background(), s.Document(), d.output, opts)
		if err != nil {
			return err
		}
		saved := d.output
		if abs, err := filepath.Abs(d.output); err == nil {
			saved = abs
		}
		fmt.Fprintf(os.Stderr, "exported %s (%d file(s))\n", saved, len(paths))
		preview, err := s.CurrentImage()
		if err != nil {
			return err
		}
		d.root.notifyExport(paths, preview)
	}
	if d.toClipboard {
		img, err := s.CurrentImage()
		if err != nil {
			return err
		}
		if err := writeClipboardImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := fmt.Sprintf("frame %d", s.Frame()+1)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) apply(s *session.Session, op drawOp) error {
	switch op.name {
	case "brush", "erase":
		tool := s.Tool
		if op.name == "erase" {
			tool.Kind = canvas.ToolEraser
		}
		_, err := canvas.Apply(s.Document(), s.Frame(), tool, op.nums[0], op.nums[1])
		return err
	case "size":
		s.Tool.Radius = op.nums[0]
		s.Tool = s.Tool.Normalized()
	case "color":
		c, err := palette.ParseColor(op.word)
		if err != nil {
			return err
		}
		s.Tool.Color = c
	case "frame":
		if op.nums[0] > s.Document().FrameCount() {
			return fmt.Errorf("frame %d of %d", op.nums[0], s.Document().FrameCount())
		}
		s.SelectFrame(op.nums[0] - 1)
	case "add":
		s.AddFrame()
	case "dup":
		_, err := s.DuplicateFrame()
		return err
	case "delete":
		if !s.RemoveFrame() {
			return errors.New("cannot remove the last frame")
		}
	case "reverse":
		s.ReverseFrames()
	case "resize":
		s.Resize(op.nums[0], op.nums[1])
	case "frames":
		s.SetFrameCount(op.nums[0])
	case "flip":
		if strings.ToLower(op.word) == "h" {
			return s.FlipHorizontal()
		}
		return s.FlipVertical()
	case "clear":
		return s.ClearFrame()
	}
	return nil
}
