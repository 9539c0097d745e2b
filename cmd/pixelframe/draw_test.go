package main

import (
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixelframe/internal/document"
)

func TestDrawExportsAnimation(t *testing.T) {
	out := filepath.Join(t.TempDir(), "anim.gif")
	cmd, err := parseDrawCmd([]string{
		"-width", "4", "-height", "4", "-output", out, "-scale", "2",
		"brush", "0", "0",
		"add", "color", "red", "brush", "3", "3",
		"dup", "flip", "h",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("frames = %d, want 3", len(g.Image))
	}
	if b := g.Image[0].Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("frame bounds %v, want 8x8", b)
	}
	if g.LoopCount != 0 {
		t.Fatalf("loop count = %d, want 0 (forever)", g.LoopCount)
	}
	if c := document.FromColor(g.Image[2].At(0, 7)); c != 0xFF0000FF {
		t.Fatalf("flipped copy pixel %08x", c)
	}
}

func TestDrawEditsInputPNG(t *testing.T) {
	dir := t.TempDir()
	doc := document.New(2, 2, 1, 0xFF00FF00)
	img, err := doc.Image(0)
	if err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "sheet.png")
	cmd, err := parseDrawCmd([]string{"-input", in, "-output", out, "erase", "1", "1", "resize", "3", "2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	loaded, err := loadDocument(out)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Width() != 3 || loaded.Height() != 2 {
		t.Fatalf("sheet size %dx%d", loaded.Width(), loaded.Height())
	}
	for _, tc := range []struct {
		x, y int
		want uint32
	}{{0, 0, 0xFF00FF00}, {1, 1, document.Transparent}, {2, 0, document.Transparent}} {
		if c, _ := loaded.Pixel(0, tc.x, tc.y); c != tc.want {
			t.Fatalf("pixel (%d,%d) = %08x, want %08x", tc.x, tc.y, c, tc.want)
		}
	}
}

func TestDrawWritesSequence(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames")
	cmd, err := parseDrawCmd([]string{"-frames", "3", "-output", out, "delete"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("wrote %d files, want 2", len(entries))
	}
}
