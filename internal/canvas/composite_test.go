package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/render"
)

func TestComposeScalesFrame(t *testing.T) {
	doc := document.New(4, 4, 1, 0xFF0000FF)
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	view := ViewTransform{Zoom: 4}
	ov := DefaultOverlay()
	ov.Border = nil
	if err := Compose(dst, dst.Bounds(), doc, 0, view, ov); err != nil {
		t.Fatal(err)
	}
	// Canvas spans [12,28) on both axes.
	if got := dst.RGBAAt(13, 13); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("expected red inside canvas, got %v", got)
	}
	if got := dst.RGBAAt(2, 2); got != (color.RGBA{96, 96, 96, 255}) {
		t.Fatalf("expected background outside canvas, got %v", got)
	}
}

func TestComposeShowsCheckerboardThroughTransparency(t *testing.T) {
	doc := document.New(2, 2, 1, document.Transparent)
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	ov := DefaultOverlay()
	ov.Border = nil
	if err := Compose(dst, dst.Bounds(), doc, 0, ViewTransform{Zoom: 8}, ov); err != nil {
		t.Fatal(err)
	}
	// Canvas spans [2,18); checker squares are 16 wide so the whole canvas is light.
	if got := dst.RGBAAt(5, 5); got != (color.RGBA{220, 220, 220, 255}) {
		t.Fatalf("expected light checker, got %v", got)
	}
}

func TestComposeOnionSkinBlendsPreviousFrame(t *testing.T) {
	doc := document.New(1, 1, 2, document.Transparent)
	_ = doc.SetPixel(0, 0, 0, 0xFFFFFFFF)
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	ov := Overlay{
		OnionSkin:    true,
		Background:   color.Black,
		CheckerLight: color.Black,
		CheckerDark:  color.Black,
	}
	if err := Compose(dst, dst.Bounds(), doc, 1, ViewTransform{Zoom: 4}, ov); err != nil {
		t.Fatal(err)
	}
	got := dst.RGBAAt(1, 1)
	if got.R == 0 || got.R == 255 {
		t.Fatalf("expected partially blended onion pixel, got %v", got)
	}

	ov.OnionSkin = false
	if err := Compose(dst, dst.Bounds(), doc, 1, ViewTransform{Zoom: 4}, ov); err != nil {
		t.Fatal(err)
	}
	if got := dst.RGBAAt(1, 1); got.R != 0 {
		t.Fatalf("expected no onion without the flag, got %v", got)
	}
}

func TestComposeGridAndHover(t *testing.T) {
	doc := document.New(2, 2, 1, 0xFFFFFFFF)
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	ov := Overlay{
		Grid:       true,
		GridColor:  color.RGBA{0, 0, 0, 255},
		HoverOK:    true,
		Hover:      image.Pt(1, 1),
		Tool:       DefaultToolState(),
		HoverColor: color.RGBA{0, 255, 0, 255},
	}
	if err := Compose(dst, dst.Bounds(), doc, 0, ViewTransform{Zoom: 8}, ov); err != nil {
		t.Fatal(err)
	}
	// Grid line at x=8 between the two columns.
	if got := dst.RGBAAt(8, 3); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected grid line, got %v", got)
	}
	if got := dst.RGBAAt(3, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected white pixel, got %v", got)
	}
	// Hover outline wraps pixel (1,1) which spans [8,16).
	if got := dst.RGBAAt(15, 12); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("expected hover outline, got %v", got)
	}
}

func TestComposeDrawsShadow(t *testing.T) {
	doc := document.New(2, 2, 1, 0xFFFFFFFF)
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	ov := Overlay{
		Background:  color.White,
		ShadowColor: color.Black,
		Shadow:      render.NewShadow(render.ShadowOptions{Radius: 2, Offset: image.Pt(3, 3), Opacity: 1}),
	}
	if err := Compose(dst, dst.Bounds(), doc, 0, ViewTransform{Zoom: 4}, ov); err != nil {
		t.Fatal(err)
	}
	// Canvas spans [16,24); the shadow peeks out below and right of it.
	if got := dst.RGBAAt(25, 25); got.R == 255 {
		t.Fatalf("expected shadow below the canvas, got %v", got)
	}
}

func TestComposeBadFrame(t *testing.T) {
	doc := document.New(2, 2, 1, 0)
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	err := Compose(dst, dst.Bounds(), doc, 5, NewViewTransform(), DefaultOverlay())
	if !errors.Is(err, document.ErrFrameOutOfRange) {
		t.Fatalf("expected ErrFrameOutOfRange, got %v", err)
	}
}
