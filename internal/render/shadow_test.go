package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowBounds(t *testing.T) {
	s := NewShadow(ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5})
	got := s.Bounds(image.Rect(10, 10, 20, 20))
	want := image.Rect(14, 12, 32, 30)
	if !got.Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", got, want)
	}
}

func TestShadowDrawsOffsetAlpha(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	s := NewShadow(ShadowOptions{Radius: 2, Offset: image.Pt(3, 3), Opacity: 1})
	subject := image.Rect(10, 10, 20, 20)
	s.Draw(dst, subject, color.Black)

	if got := dst.RGBAAt(15+3, 15+3).A; got == 0 {
		t.Fatalf("expected shadow alpha under the offset subject")
	}
	// Blur spreads alpha past the hard edge of the offset rectangle.
	if got := dst.RGBAAt(subject.Max.X+3, 15).A; got == 0 {
		t.Fatalf("expected blurred alpha beyond the subject edge")
	}
	if got := dst.RGBAAt(1, 1).A; got != 0 {
		t.Fatalf("expected untouched corner, got alpha %d", got)
	}
}

func TestShadowZeroOpacityIsNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			dst.SetRGBA(x, y, fill)
		}
	}
	NewShadow(ShadowOptions{Radius: 3, Offset: image.Pt(1, 1), Opacity: 0}).Draw(dst, image.Rect(2, 2, 5, 5), color.Black)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestShadowMaskCachedBySize(t *testing.T) {
	s := NewShadow(DefaultShadowOptions())
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	s.Draw(dst, image.Rect(0, 0, 10, 10), color.Black)
	first := s.mask
	s.Draw(dst, image.Rect(20, 20, 30, 30), color.Black)
	if s.mask != first {
		t.Fatalf("expected mask reuse for equal sizes")
	}
	s.Draw(dst, image.Rect(0, 0, 12, 10), color.Black)
	if s.mask == first {
		t.Fatalf("expected mask rebuild after size change")
	}
}
