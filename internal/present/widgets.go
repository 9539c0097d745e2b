package present

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.Invalidate()
	}
}

// Invalidate drops the cached renderings, e.g. after a theme change.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

// label is the shared rectangle, caption and callback of the text buttons.
type label struct {
	text     string
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func()
}

func (l *label) Rect() image.Rectangle { return l.rect }

func (l *label) SetRect(r image.Rectangle) { l.rect = r }

func (l *label) Activate() {
	if l.onSelect != nil {
		l.onSelect()
	}
}

func (l *label) fill(state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return l.theme.ButtonBackgroundHover
	case StatePressed:
		return l.theme.ButtonBackgroundPress
	}
	return l.theme.ButtonBackground
}

// ToolButton selects a canvas tool from the toolbar.
type ToolButton struct {
	label
	kind canvas.ToolKind
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, tb.rect, image.NewUniform(tb.fill(state)), image.Point{}, draw.Src)
	drawText(dst, tb.text, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+16), tb.theme.ButtonText)
}

// TabButton draws a session title in the header bar.
type TabButton struct {
	label
	dirty bool
}

func (tb *TabButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := tb.theme.TabBackground, tb.theme.TabText
	switch state {
	case StateHover:
		bg = tb.theme.TabHover
	case StatePressed:
		bg, fg = tb.theme.TabActive, tb.theme.TabTextActive
	}
	draw.Draw(dst, tb.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	text := tb.text
	if tb.dirty {
		text += "*"
	}
	drawText(dst, text, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+16), fg)
}

// Shortcut is a clickable hint in the status and timeline bars.
type Shortcut struct {
	label
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, image.NewUniform(s.fill(state)), image.Point{}, draw.Src)
	drawRect(dst, s.rect, s.theme.ButtonBorder, 1)
	drawText(dst, s.text, image.Pt(s.rect.Min.X+2, s.rect.Min.Y+14), s.theme.ButtonText)
}

func newShortcut(th *theme.Theme, text string, fn func()) *Shortcut {
	return &Shortcut{label{text: text, theme: th, onSelect: fn}}
}

// place lays shortcuts out left to right from x on the text baseline y and
// returns the x after the last one.
func place(buttons []*Shortcut, x, y int) int {
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for _, sc := range buttons {
		w := meas.MeasureString(sc.text).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		x = sc.rect.Max.X + 8
	}
	return x
}

func drawText(dst *image.RGBA, s string, dot image.Point, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13,
		Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(s)
}

func textWidth(s string) int {
	return (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(s).Ceil()
}

// drawRect strokes the inside edge of rect with thick pixels.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	if rect.Empty() || thick <= 0 {
		return
	}
	u := image.NewUniform(col)
	t := min(thick, rect.Dx(), rect.Dy())
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y+t, rect.Min.X+t, rect.Max.Y-t), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(rect.Max.X-t, rect.Min.Y+t, rect.Max.X, rect.Max.Y-t), u, image.Point{}, draw.Over)
}
