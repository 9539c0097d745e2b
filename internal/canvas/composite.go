package canvas

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/render"
)

// gridMinZoom is the smallest zoom at which the pixel grid is drawn.
const gridMinZoom = 4

// onionAlpha is the opacity of the previous frame under onion skinning.
const onionAlpha = 0x50

// Overlay holds the presentation settings for Compose.
type Overlay struct {
	Grid      bool
	OnionSkin bool

	Hover   image.Point
	HoverOK bool
	Tool    ToolState

	Background   color.Color
	CheckerLight color.Color
	CheckerDark  color.Color
	GridColor    color.Color
	HoverColor   color.Color
	Border       color.Color
	ShadowColor  color.Color

	// Shadow, when set, draws a drop shadow under the canvas.
	Shadow *render.Shadow
}

// DefaultOverlay returns the neutral colors used when no theme is loaded.
func DefaultOverlay() Overlay {
	return Overlay{
		Background:   color.RGBA{96, 96, 96, 255},
		CheckerLight: color.RGBA{220, 220, 220, 255},
		CheckerDark:  color.RGBA{192, 192, 192, 255},
		GridColor:    color.RGBA{0, 0, 0, 48},
		HoverColor:   color.RGBA{255, 255, 255, 160},
		Border:       color.RGBA{0, 0, 0, 255},
		ShadowColor:  color.Black,
	}
}

// Compose renders the frame at index into dst inside vp: background, canvas
// shadow, checkerboard, optional onion skin, the scaled frame, grid and hover
// outline. dst is never read back by the document.
func Compose(dst *image.RGBA, vp image.Rectangle, doc *document.Document, index int, view ViewTransform, ov Overlay) error {
	img, err := doc.Image(index)
	if err != nil {
		return err
	}
	clip := vp.Intersect(dst.Bounds())
	if clip.Empty() {
		return nil
	}
	out := dst.SubImage(clip).(*image.RGBA)
	draw.Draw(out, clip, image.NewUniform(orDefault(ov.Background, color.Gray{Y: 96})), image.Point{}, draw.Src)

	w, h := doc.Width(), doc.Height()
	rect := view.CanvasRect(vp, w, h)
	if ov.Shadow != nil {
		ov.Shadow.Draw(out, rect, orDefault(ov.ShadowColor, color.Black))
	}
	vis := rect.Intersect(clip)
	if vis.Empty() {
		return nil
	}
	drawCheckerboard(out, vis, rect.Min, max(4, view.Zoom*2),
		orDefault(ov.CheckerLight, color.White), orDefault(ov.CheckerDark, color.Gray{Y: 192}))

	if ov.OnionSkin && index > 0 {
		if prev, err := doc.Image(index - 1); err == nil {
			xdraw.NearestNeighbor.Scale(out, rect, prev, prev.Bounds(), xdraw.Over, &xdraw.Options{
				DstMask: image.NewUniform(color.Alpha{A: onionAlpha}),
			})
		}
	}
	xdraw.NearestNeighbor.Scale(out, rect, img, img.Bounds(), xdraw.Over, nil)

	if ov.Grid && view.Zoom >= gridMinZoom {
		drawGrid(out, rect, vis, view.Zoom, orDefault(ov.GridColor, color.RGBA{0, 0, 0, 48}))
	}
	if ov.HoverOK {
		fp := Footprint(ov.Tool, ov.Hover.X, ov.Hover.Y).Intersect(image.Rect(0, 0, w, h))
		r := image.Rect(
			rect.Min.X+fp.Min.X*view.Zoom, rect.Min.Y+fp.Min.Y*view.Zoom,
			rect.Min.X+fp.Max.X*view.Zoom, rect.Min.Y+fp.Max.Y*view.Zoom,
		)
		drawOutline(out, r.Intersect(clip), orDefault(ov.HoverColor, color.White))
	}
	if ov.Border != nil {
		drawOutline(out, rect.Inset(-1).Intersect(clip), ov.Border)
	}
	return nil
}

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

// drawCheckerboard fills rect of dst with squares of size anchored at origin.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, origin image.Point, size int, light, dark color.Color) {
	l := color.RGBAModel.Convert(light).(color.RGBA)
	d := color.RGBAModel.Convert(dark).(color.RGBA)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x-origin.X)/size+(y-origin.Y)/size)%2 == 0 {
				dst.SetRGBA(x, y, l)
			} else {
				dst.SetRGBA(x, y, d)
			}
		}
	}
}

func drawGrid(dst *image.RGBA, rect, vis image.Rectangle, zoom int, col color.Color) {
	src := image.NewUniform(col)
	for x := rect.Min.X; x <= rect.Max.X; x += zoom {
		line := image.Rect(x, rect.Min.Y, x+1, rect.Max.Y).Intersect(vis)
		draw.Draw(dst, line, src, image.Point{}, draw.Over)
	}
	for y := rect.Min.Y; y <= rect.Max.Y; y += zoom {
		line := image.Rect(rect.Min.X, y, rect.Max.X, y+1).Intersect(vis)
		draw.Draw(dst, line, src, image.Point{}, draw.Over)
	}
}

func drawOutline(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Over)
	}
}
