package canvas

import (
	"image"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ZoomLevels lists the allowed display scale factors in ascending order.
var ZoomLevels = []int{1, 2, 4, 8, 16, 32}

// DefaultZoom is the zoom applied to a freshly opened canvas.
const DefaultZoom = 4

// ViewTransform positions a canvas inside a viewport. Pan is in screen pixels.
type ViewTransform struct {
	Zoom int
	PanX float64
	PanY float64
}

// NewViewTransform returns a transform at DefaultZoom with no pan.
func NewViewTransform() ViewTransform {
	return ViewTransform{Zoom: DefaultZoom}
}

func zoomIndex(z int) int {
	for i, l := range ZoomLevels {
		if l == z {
			return i
		}
	}
	return -1
}

// SetZoom selects z if it is one of ZoomLevels. Any other value is rejected
// and the current zoom is kept.
func (v *ViewTransform) SetZoom(z int) bool {
	if zoomIndex(z) < 0 {
		return false
	}
	v.Zoom = z
	return true
}

// StepZoom moves steps entries along ZoomLevels, stopping at either end.
func (v *ViewTransform) StepZoom(steps int) {
	idx := zoomIndex(v.Zoom)
	if idx < 0 {
		idx = zoomIndex(DefaultZoom)
	}
	idx += steps
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ZoomLevels) {
		idx = len(ZoomLevels) - 1
	}
	v.Zoom = ZoomLevels[idx]
}

// origin returns the screen position of the canvas top-left corner, rounded
// down to a whole screen pixel so drawing and hit testing share one grid.
func (v ViewTransform) origin(vp image.Rectangle, width, height int) (float64, float64) {
	z := float64(v.Zoom)
	ox := float64(vp.Min.X) + (float64(vp.Dx())-float64(width)*z)/2 + v.PanX
	oy := float64(vp.Min.Y) + (float64(vp.Dy())-float64(height)*z)/2 + v.PanY
	return math.Floor(ox), math.Floor(oy)
}

// PixelToScreen returns the screen position of the top-left corner of pixel
// (px, py) on a width x height canvas centred in vp.
func (v ViewTransform) PixelToScreen(vp image.Rectangle, width, height, px, py int) (float64, float64) {
	ox, oy := v.origin(vp, width, height)
	z := float64(v.Zoom)
	return ox + float64(px)*z, oy + float64(py)*z
}

// ScreenToPixel maps a screen position to a pixel address. The returned
// address is clamped to the canvas; inside reports whether the position lies
// on the canvas before clamping.
func (v ViewTransform) ScreenToPixel(vp image.Rectangle, width, height int, sx, sy float64) (px, py int, inside bool) {
	ox, oy := v.origin(vp, width, height)
	z := float64(v.Zoom)
	fx := math.Floor((sx - ox) / z)
	fy := math.Floor((sy - oy) / z)
	inside = fx >= 0 && fy >= 0 && fx < float64(width) && fy < float64(height)
	px = clampInt(int(fx), 0, width-1)
	py = clampInt(int(fy), 0, height-1)
	return px, py, inside
}

// CanvasRect returns the on-screen rectangle covered by the canvas.
func (v ViewTransform) CanvasRect(vp image.Rectangle, width, height int) image.Rectangle {
	ox, oy := v.origin(vp, width, height)
	x0, y0 := int(ox), int(oy)
	return image.Rect(x0, y0, x0+width*v.Zoom, y0+height*v.Zoom)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// panTween eases the pan offset towards a target.
type panTween struct {
	x, y         *gween.Tween
	doneX, doneY bool
}

func newPanTween(from ViewTransform, toX, toY float64, duration float32, fn ease.TweenFunc) *panTween {
	return &panTween{
		x: gween.New(float32(from.PanX), float32(toX), duration, fn),
		y: gween.New(float32(from.PanY), float32(toY), duration, fn),
	}
}

// update advances the tween by dt seconds and reports completion.
func (t *panTween) update(v *ViewTransform, dt float32) bool {
	if !t.doneX {
		val, done := t.x.Update(dt)
		v.PanX = float64(val)
		t.doneX = done
	}
	if !t.doneY {
		val, done := t.y.Update(dt)
		v.PanY = float64(val)
		t.doneY = done
	}
	return t.doneX && t.doneY
}
