package canvas

import (
	"errors"
	"testing"

	"github.com/example/pixelframe/internal/document"
)

func countChanged(px []uint32, base uint32) int {
	n := 0
	for _, p := range px {
		if p != base {
			n++
		}
	}
	return n
}

func TestBrushRadiusOnePaintsOnePixel(t *testing.T) {
	doc := document.New(16, 16, 1, 0x00000000)
	tool := ToolState{Kind: ToolBrush, Radius: 1, Color: 0xFFFF0000}
	n, err := Apply(doc, 0, tool, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pixel written, got %d", n)
	}
	f, _ := doc.Frame(0)
	if f.Pixels[0] != 0xFFFF0000 {
		t.Fatalf("expected pixel 0 painted, got %08X", f.Pixels[0])
	}
	if c := countChanged(f.Pixels, 0); c != 1 {
		t.Fatalf("expected only one changed pixel, got %d", c)
	}
}

func TestBrushRadiusThreeSquare(t *testing.T) {
	doc := document.New(10, 10, 1, 0)
	tool := ToolState{Kind: ToolBrush, Radius: 3, Color: 0xFF00FF00}
	if _, err := Apply(doc, 0, tool, 5, 5); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got, _ := doc.Pixel(0, x, y)
			inBlock := x >= 3 && x <= 7 && y >= 3 && y <= 7
			if inBlock && got != 0xFF00FF00 {
				t.Fatalf("(%d,%d) expected painted", x, y)
			}
			if !inBlock && got != 0 {
				t.Fatalf("(%d,%d) expected untouched, got %08X", x, y, got)
			}
		}
	}
}

func TestBrushClipsAtEdges(t *testing.T) {
	doc := document.New(4, 4, 1, 0)
	tool := ToolState{Kind: ToolBrush, Radius: 2, Color: 1}
	n, err := Apply(doc, 0, tool, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	// inset 1 around (0,3): x in [0,1], y in [2,3].
	if n != 4 {
		t.Fatalf("expected 4 clipped pixels, got %d", n)
	}
	f, _ := doc.Frame(0)
	if c := countChanged(f.Pixels, 0); c != 4 {
		t.Fatalf("expected 4 changed, got %d", c)
	}
}

func TestBrushIsIdempotent(t *testing.T) {
	doc := document.New(6, 6, 1, 0)
	tool := ToolState{Kind: ToolBrush, Radius: 2, Color: 0x80FFFFFF}
	_, _ = Apply(doc, 0, tool, 2, 2)
	f, _ := doc.Frame(0)
	first := append([]uint32(nil), f.Pixels...)
	_, _ = Apply(doc, 0, tool, 2, 2)
	for i := range first {
		if first[i] != f.Pixels[i] {
			t.Fatalf("pixel %d changed on repaint", i)
		}
	}
}

func TestApplyLineSkipsStart(t *testing.T) {
	doc := document.New(8, 8, 1, 0)
	tool := ToolState{Kind: ToolBrush, Radius: 1, Color: 0xFF00FF00}
	n, err := ApplyLine(doc, 0, tool, 1, 1, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("expected 4 pixels written, got %d", n)
	}
	if got, _ := doc.Pixel(0, 1, 1); got != 0 {
		t.Fatalf("start point should be left to the previous stamp, got %08X", got)
	}
	for _, p := range [][2]int{{2, 1}, {3, 2}, {4, 2}, {5, 3}} {
		if got, _ := doc.Pixel(0, p[0], p[1]); got != tool.Color {
			t.Fatalf("expected %v painted, got %08X", p, got)
		}
	}
	if n, err := ApplyLine(doc, 0, tool, 2, 2, 2, 2); err != nil || n != 0 {
		t.Fatalf("zero length line wrote %d (%v)", n, err)
	}
	if _, err := ApplyLine(doc, 0, ToolState{Kind: ToolLine, Radius: 1}, 0, 0, 3, 0); !errors.Is(err, ErrToolUnimplemented) {
		t.Fatalf("expected ErrToolUnimplemented, got %v", err)
	}
}

func TestEraserWritesTransparent(t *testing.T) {
	doc := document.New(3, 3, 1, 0xFFFFFFFF)
	tool := ToolState{Kind: ToolEraser, Radius: 1, Color: 0xFF0000FF}
	if _, err := Apply(doc, 0, tool, 1, 1); err != nil {
		t.Fatal(err)
	}
	if got, _ := doc.Pixel(0, 1, 1); got != document.Transparent {
		t.Fatalf("expected transparent, got %08X", got)
	}
}

func TestRadiusClamped(t *testing.T) {
	if got := (ToolState{Radius: 0}).Normalized().Radius; got != MinRadius {
		t.Fatalf("expected %d, got %d", MinRadius, got)
	}
	if got := (ToolState{Radius: 99}).Normalized().Radius; got != MaxRadius {
		t.Fatalf("expected %d, got %d", MaxRadius, got)
	}
	doc := document.New(2, 2, 1, 0)
	n, err := Apply(doc, 0, ToolState{Kind: ToolBrush, Radius: -5, Color: 1}, 1, 1)
	if err != nil || n != 1 {
		t.Fatalf("expected single pixel for clamped radius, got %d, %v", n, err)
	}
}

func TestUnimplementedTools(t *testing.T) {
	doc := document.New(2, 2, 1, 0)
	for _, k := range []ToolKind{ToolEyedropper, ToolFill, ToolLine, ToolRect, ToolRectFilled} {
		_, err := Apply(doc, 0, ToolState{Kind: k, Radius: 1, Color: 1}, 0, 0)
		if !errors.Is(err, ErrToolUnimplemented) {
			t.Errorf("%s: expected ErrToolUnimplemented, got %v", k, err)
		}
	}
	f, _ := doc.Frame(0)
	if c := countChanged(f.Pixels, 0); c != 0 {
		t.Fatalf("unimplemented tools must not write, got %d changes", c)
	}
}

func TestApplyBadFrame(t *testing.T) {
	doc := document.New(2, 2, 1, 0)
	if _, err := Apply(doc, 3, DefaultToolState(), 0, 0); !errors.Is(err, document.ErrFrameOutOfRange) {
		t.Fatalf("expected ErrFrameOutOfRange, got %v", err)
	}
}

func TestParseToolKind(t *testing.T) {
	for _, k := range ToolKinds {
		got, err := ParseToolKind(k.String())
		if err != nil || got != k {
			t.Errorf("%s: got %v, %v", k, got, err)
		}
	}
	if _, err := ParseToolKind("lasso"); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
}
