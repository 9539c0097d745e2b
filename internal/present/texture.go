package present

import (
	"image"
	"image/draw"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/pixelframe/internal/session"
)

// windowTexture is a shiny texture with the staging buffer used to fill
// it. Each session owns one.
type windowTexture struct {
	buf screen.Buffer
	tex screen.Texture
}

var _ session.Texture = (*windowTexture)(nil)

func textureFactory(s screen.Screen) session.TextureFactory {
	return func(size image.Point) (session.Texture, error) {
		buf, err := s.NewBuffer(size)
		if err != nil {
			return nil, err
		}
		tex, err := s.NewTexture(size)
		if err != nil {
			buf.Release()
			return nil, err
		}
		return &windowTexture{buf: buf, tex: tex}, nil
	}
}

func (t *windowTexture) Size() image.Point { return t.tex.Size() }

// Upload copies src, whose bounds may be offset, to the texture origin.
func (t *windowTexture) Upload(src *image.RGBA) error {
	draw.Draw(t.buf.RGBA(), t.buf.Bounds(), src, src.Bounds().Min, draw.Src)
	t.tex.Upload(image.Point{}, t.buf, t.buf.Bounds())
	return nil
}

func (t *windowTexture) Release() {
	t.tex.Release()
	t.buf.Release()
}
