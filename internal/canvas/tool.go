package canvas

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/example/pixelframe/internal/document"
)

// ErrToolUnimplemented is returned for tool kinds that do not yet write
// pixels.
var ErrToolUnimplemented = errors.New("tool not implemented")

// ToolKind identifies an editing tool.
type ToolKind int

const (
	ToolBrush ToolKind = iota
	ToolEraser
	ToolEyedropper
	ToolFill
	ToolLine
	ToolRect
	ToolRectFilled
)

// ToolKinds lists every tool in display order.
var ToolKinds = []ToolKind{ToolBrush, ToolEraser, ToolEyedropper, ToolFill, ToolLine, ToolRect, ToolRectFilled}

var toolNames = map[ToolKind]string{
	ToolBrush:      "brush",
	ToolEraser:     "eraser",
	ToolEyedropper: "eyedropper",
	ToolFill:       "fill",
	ToolLine:       "line",
	ToolRect:       "rect",
	ToolRectFilled: "rect-filled",
}

func (k ToolKind) String() string {
	if name, ok := toolNames[k]; ok {
		return name
	}
	return fmt.Sprintf("tool(%d)", int(k))
}

// ParseToolKind resolves a tool name as printed by ToolKind.String.
func ParseToolKind(s string) (ToolKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range toolNames {
		if name == s {
			return k, nil
		}
	}
	if s == "rectfilled" || s == "rect_filled" {
		return ToolRectFilled, nil
	}
	return ToolBrush, fmt.Errorf("unknown tool %q", s)
}

const (
	MinRadius     = 1
	MaxRadius     = 32
	DefaultRadius = 1
	// DefaultColor is opaque black.
	DefaultColor uint32 = 0xFF000000
)

// ToolState is the active tool with its parameters.
type ToolState struct {
	Kind   ToolKind
	Radius int
	Color  uint32
}

// DefaultToolState returns a one pixel black brush.
func DefaultToolState() ToolState {
	return ToolState{Kind: ToolBrush, Radius: DefaultRadius, Color: DefaultColor}
}

// Normalized returns t with Radius clamped to [MinRadius, MaxRadius].
func (t ToolState) Normalized() ToolState {
	t.Radius = clampInt(t.Radius, MinRadius, MaxRadius)
	return t
}

// Rasterizer writes a tool footprint into a frame buffer.
type Rasterizer interface {
	// Rasterize stamps the footprint centred on (x, y) into px, a row-major
	// buffer of width x height pixels, and returns the number of pixels
	// written.
	Rasterize(px []uint32, width, height, x, y int) int
}

// Rasterizer returns the pixel writer for the tool kind, or
// ErrToolUnimplemented when the kind has none.
func (k ToolKind) Rasterizer(t ToolState) (Rasterizer, error) {
	t = t.Normalized()
	switch k {
	case ToolBrush:
		return squareStamp{inset: t.Radius - 1, value: t.Color}, nil
	case ToolEraser:
		return squareStamp{inset: t.Radius - 1, value: document.Transparent}, nil
	}
	return nil, fmt.Errorf("%s: %w", k, ErrToolUnimplemented)
}

// squareStamp overwrites a (2*inset+1) square with value.
type squareStamp struct {
	inset int
	value uint32
}

func (s squareStamp) Rasterize(px []uint32, width, height, x, y int) int {
	inset := max(0, s.inset)
	x0 := max(0, x-inset)
	y0 := max(0, y-inset)
	x1 := min(width-1, x+inset)
	y1 := min(height-1, y+inset)
	n := 0
	for yy := y0; yy <= y1; yy++ {
		row := px[yy*width : (yy+1)*width]
		for xx := x0; xx <= x1; xx++ {
			row[xx] = s.value
			n++
		}
	}
	return n
}

// Apply rasterizes tool at (x, y) into the frame at index of doc. It reports
// the number of pixels written.
func Apply(doc *document.Document, index int, tool ToolState, x, y int) (int, error) {
	f, err := doc.Frame(index)
	if err != nil {
		return 0, err
	}
	r, err := tool.Kind.Rasterizer(tool)
	if err != nil {
		return 0, err
	}
	return r.Rasterize(f.Pixels, doc.Width(), doc.Height(), x, y), nil
}

// ApplyLine rasterizes tool at every pixel of the Bresenham line from
// (x0, y0) to (x1, y1), skipping the start point which the previous stamp
// already covered.
func ApplyLine(doc *document.Document, index int, tool ToolState, x0, y0, x1, y1 int) (int, error) {
	f, err := doc.Frame(index)
	if err != nil {
		return 0, err
	}
	r, err := tool.Kind.Rasterizer(tool)
	if err != nil {
		return 0, err
	}
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	e := dx - dy
	n := 0
	for x0 != x1 || y0 != y1 {
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
		n += r.Rasterize(f.Pixels, doc.Width(), doc.Height(), x0, y0)
	}
	return n, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Footprint returns the pixel rectangle tool would cover at (x, y) before
// clipping. It is used for hover feedback.
func Footprint(tool ToolState, x, y int) image.Rectangle {
	inset := tool.Normalized().Radius - 1
	return image.Rect(x-inset, y-inset, x+inset+1, y+inset+1)
}
