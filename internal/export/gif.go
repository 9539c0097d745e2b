package export

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
)

// alphaCutoff is the alpha below which a pixel is written as transparent;
// GIF has one bit of transparency.
const alphaCutoff = 0x80

// EncodeGIF writes frames as an animated GIF at fps. When the frames use at
// most 255 distinct opaque colors they are stored exactly; otherwise they
// are dithered to the web-safe palette.
func EncodeGIF(w io.Writer, frames []*image.NRGBA, fps float64, loop bool) error {
	if len(frames) == 0 {
		return fmt.Errorf("gif: no frames")
	}
	if fps <= 0 {
		fps = 12
	}
	delay := int(math.Round(100 / fps))
	if delay < 1 {
		delay = 1
	}
	pal, exact := framePalette(frames)
	anim := &gif.GIF{LoopCount: 0}
	if !loop {
		anim.LoopCount = -1
	}
	for _, f := range frames {
		anim.Image = append(anim.Image, quantize(f, pal, exact))
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}
	return gif.EncodeAll(w, anim)
}

// framePalette returns a palette with transparent at index 0 followed by
// the opaque colors used by frames, or the web-safe palette when they do
// not fit.
func framePalette(frames []*image.NRGBA) (color.Palette, bool) {
	seen := map[color.NRGBA]bool{}
	pal := color.Palette{color.NRGBA{}}
	for _, f := range frames {
		b := f.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := f.NRGBAAt(x, y)
				if c.A < alphaCutoff {
					continue
				}
				c.A = 0xFF
				if seen[c] {
					continue
				}
				seen[c] = true
				pal = append(pal, c)
				if len(pal) > 256 {
					return append(color.Palette{color.NRGBA{}}, palette.WebSafe...), false
				}
			}
		}
	}
	return pal, true
}

func quantize(src *image.NRGBA, pal color.Palette, exact bool) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, pal)
	if !exact {
		opaque := image.NewNRGBA(b)
		xdraw.Draw(opaque, b, src, b.Min, xdraw.Src)
		for i := 3; i < len(opaque.Pix); i += 4 {
			opaque.Pix[i] = 0xFF
		}
		xdraw.FloydSteinberg.Draw(dst, b, opaque, b.Min)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			if c.A < alphaCutoff {
				dst.SetColorIndex(x, y, 0)
				continue
			}
			if exact {
				c.A = 0xFF
				dst.SetColorIndex(x, y, uint8(pal.Index(c)))
			}
		}
	}
	return dst
}
