package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the canvas.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow that reads on light and dark
// backgrounds.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 4),
		Opacity: 0.45,
	}
}

// Shadow draws the blurred silhouette of a rectangle. The blurred mask is
// cached and rebuilt only when the rectangle size changes.
type Shadow struct {
	opts ShadowOptions
	size image.Point
	mask *image.Alpha
}

// NewShadow creates a Shadow using opts.
func NewShadow(opts ShadowOptions) *Shadow {
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	if opts.Opacity > 1 {
		opts.Opacity = 1
	}
	return &Shadow{opts: opts}
}

// Bounds returns the area Draw touches for a subject rectangle.
func (s *Shadow) Bounds(subject image.Rectangle) image.Rectangle {
	return subject.Inset(-s.opts.Radius).Add(s.opts.Offset)
}

// Draw composites the shadow of subject onto dst using col, which should be
// opaque; the configured opacity is applied on top.
func (s *Shadow) Draw(dst draw.Image, subject image.Rectangle, col color.Color) {
	if s == nil || subject.Empty() || s.opts.Opacity <= 0 {
		return
	}
	if s.mask == nil || s.size != subject.Size() {
		s.mask = s.buildMask(subject.Size())
		s.size = subject.Size()
	}
	r := s.Bounds(subject)
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, s.mask, image.Point{}, draw.Over)
}

func (s *Shadow) buildMask(size image.Point) *image.Alpha {
	radius := s.opts.Radius
	bounds := image.Rect(0, 0, size.X+2*radius, size.Y+2*radius)
	gray := image.NewGray(bounds)
	level := uint8(s.opts.Opacity*255 + 0.5)
	inner := image.Rect(radius, radius, radius+size.X, radius+size.Y)
	draw.Draw(gray, inner, image.NewUniform(color.Gray{Y: level}), image.Point{}, draw.Src)
	blurred := blurGray(gray, radius)
	mask := image.NewAlpha(bounds)
	copy(mask.Pix, blurred.Pix)
	return mask
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0 := max(0, x-radius)
			x1 := min(w-1, x+radius)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(0, y-radius)
			y1 := min(h-1, y+radius)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}
