package document

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Transparent is the packed value of a fully transparent pixel.
const Transparent uint32 = 0x00000000

// Pack combines straight (non-premultiplied) channels into the packed pixel
// format: red in the low byte, alpha in the high byte.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24
}

// Unpack splits a packed pixel into its channels.
func Unpack(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// NRGBA converts a packed pixel to a color.NRGBA.
func NRGBA(c uint32) color.NRGBA {
	r, g, b, a := Unpack(c)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor packs any color.Color.
func FromColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B, n.A)
}

// Image returns a copy of the frame at index as an image. The copy does not
// alias document memory.
func (d *Document) Image(index int) (*image.NRGBA, error) {
	f, err := d.Frame(index)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	writePixels(img, f.Pixels, d.width, d.height)
	return img, nil
}

// DrawImage copies src onto the frame at index with its bounds anchored at
// the canvas origin. Parts of src beyond the canvas are dropped.
func (d *Document) DrawImage(index int, src image.Image) error {
	f, err := d.Frame(index)
	if err != nil {
		return err
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	writePixels(img, f.Pixels, d.width, d.height)
	sb := src.Bounds()
	dst := image.Rect(0, 0, sb.Dx(), sb.Dy()).Intersect(img.Bounds())
	if dst.Empty() {
		return nil
	}
	xdraw.Draw(img, dst, src, sb.Min, xdraw.Src)
	readPixels(f.Pixels, img, d.width, d.height)
	return nil
}

func writePixels(img *image.NRGBA, px []uint32, w, h int) {
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			c := px[y*w+x]
			row[x*4+0] = uint8(c)
			row[x*4+1] = uint8(c >> 8)
			row[x*4+2] = uint8(c >> 16)
			row[x*4+3] = uint8(c >> 24)
		}
	}
}

func readPixels(px []uint32, img *image.NRGBA, w, h int) {
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			px[y*w+x] = Pack(row[x*4], row[x*4+1], row[x*4+2], row[x*4+3])
		}
	}
}
