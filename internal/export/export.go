// Package export renders documents to PNG sequences, sprite sheets and
// animated GIFs. Frames are copied out of the document before any encoding
// starts, so the live document can keep changing while files are written.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/example/pixelframe/internal/document"
)

// Format selects the output kind.
type Format int

const (
	FormatSequence Format = iota
	FormatSheet
	FormatGIF
)

func (f Format) String() string {
	switch f {
	case FormatSheet:
		return "sheet"
	case FormatGIF:
		return "gif"
	}
	return "png"
}

// ErrEmptyPath is returned when no output path is given.
var ErrEmptyPath = errors.New("export path is empty")

// Options controls export output.
type Options struct {
	// Scale enlarges every pixel to Scale x Scale. Values below 1 mean 1.
	Scale int
	// Prefix names sequence files as <Prefix>_0001.png. Default "frame".
	Prefix string
	// Workers bounds concurrent PNG encoders. Zero uses GOMAXPROCS.
	Workers int
	FPS     float64
	Loop    bool
}

func (o Options) scale() int {
	if o.Scale < 1 {
		return 1
	}
	return o.Scale
}

// FormatFor picks a format from the output path: ".gif" writes an animated
// GIF, ".png" a sprite sheet and anything else a directory of frames.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return FormatGIF
	case ".png":
		return FormatSheet
	}
	return FormatSequence
}

// Snapshot copies every frame of doc, scaled by scale.
func Snapshot(doc *document.Document, scale int) ([]*image.NRGBA, error) {
	frames := make([]*image.NRGBA, doc.FrameCount())
	for i := range frames {
		img, err := doc.Image(i)
		if err != nil {
			return nil, err
		}
		frames[i] = scaleImage(img, scale)
	}
	return frames, nil
}

func scaleImage(img *image.NRGBA, scale int) *image.NRGBA {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// Write exports doc to path using the format chosen by FormatFor. It
// returns the files written.
func Write(ctx context.Context, doc *document.Document, path string, opts Options) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	frames, err := Snapshot(doc, opts.scale())
	if err != nil {
		return nil, err
	}
	return WriteFrames(ctx, frames, path, opts)
}

// WriteFrames exports already snapshotted frames to path. Frames are not
// scaled again.
func WriteFrames(ctx context.Context, frames []*image.NRGBA, path string, opts Options) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	switch FormatFor(path) {
	case FormatGIF:
		return []string{path}, writeFile(path, func(w io.Writer) error {
			return EncodeGIF(w, frames, opts.FPS, opts.Loop)
		})
	case FormatSheet:
		return []string{path}, writeFile(path, func(w io.Writer) error {
			return png.Encode(w, SpriteSheet(frames))
		})
	}
	return WriteSequence(ctx, frames, path, opts)
}

// WriteSequence writes one PNG per frame into dir, encoding concurrently.
func WriteSequence(ctx context.Context, frames []*image.NRGBA, dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	paths := make([]string, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, img := range frames {
		i, img := i, img
		paths[i] = filepath.Join(dir, fmt.Sprintf("%s_%04d.png", prefix, i+1))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(paths[i], func(w io.Writer) error { return png.Encode(w, img) })
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// SpriteSheet lays frames out left to right in a single image.
func SpriteSheet(frames []*image.NRGBA) *image.NRGBA {
	if len(frames) == 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	fb := frames[0].Bounds()
	sheet := image.NewNRGBA(image.Rect(0, 0, fb.Dx()*len(frames), fb.Dy()))
	for i, f := range frames {
		r := image.Rect(i*fb.Dx(), 0, (i+1)*fb.Dx(), fb.Dy())
		xdraw.Draw(sheet, r, f, f.Bounds().Min, xdraw.Src)
	}
	return sheet
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		if cerr := f.Close(); cerr != nil {
			return fmt.Errorf("%s: %w (closing: %v)", path, err, cerr)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: closing file: %w", path, err)
	}
	return nil
}
