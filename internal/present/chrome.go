package present

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/palette"
)

const tabWidth = 96

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// drawChrome paints everything around the canvas viewport and records the
// widget rectangles used for hit testing.
func (ed *editor) drawChrome(dst *image.RGBA) {
	ed.drawTabs(dst)
	ed.drawToolbar(dst)
	ed.drawTimeline(dst)
	ed.drawStatus(dst)
}

func (ed *editor) drawTabs(dst *image.RGBA) {
	th := ed.theme
	draw.Draw(dst, ed.layout.tabs, image.NewUniform(th.TabBackground), image.Point{}, draw.Src)
	drawText(dst, appTitle, image.Pt(4, 16), th.Foreground)

	ed.tabButtons = ed.tabButtons[:0]
	x := ed.layout.toolbarWidth
	for i, s := range ed.tabs {
		tb := &TabButton{label: label{text: s.Title, theme: th}, dirty: s.Dirty()}
		tb.SetRect(image.Rect(x, 0, x+tabWidth, tabHeight))
		state := StateDefault
		if i == ed.current {
			state = StatePressed
		} else if i == ed.hover.tab {
			state = StateHover
		}
		tb.Draw(dst, state)
		ed.tabButtons = append(ed.tabButtons, tb)
		x += tabWidth
	}
}

func (ed *editor) drawToolbar(dst *image.RGBA) {
	th := ed.theme
	s := ed.cur()
	l := ed.layout
	draw.Draw(dst, l.toolbar, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)

	for i, cb := range ed.toolButtons {
		cb.SetRect(l.toolRect(i))
		state := StateDefault
		if cb.Button.(*ToolButton).kind == s.Tool.Kind {
			state = StatePressed
		} else if i == ed.hover.tool {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, e := range ed.palette.Entries {
		rect := l.swatchRect(i)
		drawSwatch(dst, rect, e.Color)
		if i == ed.hover.swatch {
			draw.Draw(dst, rect, image.NewUniform(color.RGBA{255, 255, 255, 80}), image.Point{}, draw.Over)
		}
		if i == s.PaletteIndex {
			drawRect(dst, rect.Inset(-1), color.White, 1)
			drawRect(dst, rect, color.Black, 1)
		}
	}

	fill := document.NRGBA(s.Tool.Color)
	for i, r := range sizeOptions {
		rect := l.sizeRect(i, ed.palette.Len())
		c := th.ButtonBackground
		if r == s.Tool.Radius {
			c = th.ButtonBackgroundPress
		} else if i == ed.hover.size {
			c = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
		drawText(dst, fmt.Sprintf("%d", r), image.Pt(rect.Min.X+4, rect.Min.Y+12), th.ButtonText)
		side := min(2*r-1, sizeRowHeight-4)
		cx := (rect.Min.X + 30 + rect.Max.X) / 2
		cy := (rect.Min.Y + rect.Max.Y) / 2
		draw.Draw(dst, image.Rect(cx-side/2, cy-side/2, cx-side/2+side, cy-side/2+side), image.NewUniform(fill), image.Point{}, draw.Over)
	}
}

// drawSwatch fills rect with c over a two-tone backing so translucent
// colors read as such.
func drawSwatch(dst *image.RGBA, rect image.Rectangle, c uint32) {
	half := rect.Min.X + rect.Dx()/2
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, half, rect.Max.Y), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(half, rect.Min.Y, rect.Max.X, rect.Max.Y), image.NewUniform(color.Gray{Y: 160}), image.Point{}, draw.Src)
	draw.Draw(dst, rect, image.NewUniform(document.NRGBA(c)), image.Point{}, draw.Over)
}

func (ed *editor) drawTimeline(dst *image.RGBA) {
	th := ed.theme
	s := ed.cur()
	l := ed.layout
	draw.Draw(dst, l.timeline, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)

	play := "Play"
	if s.Engine().Playback().Playing {
		play = "Stop"
	}
	ed.timelineButtons = []*Shortcut{
		newShortcut(th, "+Frame", func() { ed.trigger("frame.new") }),
		newShortcut(th, "-Frame", func() { ed.trigger("frame.delete") }),
		newShortcut(th, play, func() { ed.trigger("play") }),
	}
	x := place(ed.timelineButtons, 6, l.timeline.Min.Y+18)
	for i, sc := range ed.timelineButtons {
		state := StateDefault
		if i == ed.hover.timeline {
			state = StateHover
		}
		sc.Draw(dst, state)
	}

	ed.frameRects = ed.frameRects[:0]
	for i := 0; i < s.Document().FrameCount(); i++ {
		rect := image.Rect(x, l.timeline.Min.Y+4, x+frameCellWidth-2, l.timeline.Max.Y-4)
		if rect.Max.X > l.timeline.Max.X {
			break
		}
		c := th.ButtonBackground
		if i == s.Frame() {
			c = th.ButtonBackgroundPress
		} else if i == ed.hover.frame {
			c = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
		drawRect(dst, rect, th.ButtonBorder, 1)
		n := fmt.Sprintf("%d", i+1)
		drawText(dst, n, image.Pt(rect.Min.X+(rect.Dx()-textWidth(n))/2, rect.Min.Y+14), th.ButtonText)
		ed.frameRects = append(ed.frameRects, rect)
		x += frameCellWidth
	}
}

func (ed *editor) drawStatus(dst *image.RGBA) {
	th := ed.theme
	l := ed.layout
	draw.Draw(dst, l.status, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)

	ed.statusButtons = []*Shortcut{
		newShortcut(th, "^E:export", func() { ed.trigger("export") }),
		newShortcut(th, "^C:copy", func() { ed.trigger("copy") }),
		newShortcut(th, "^V:paste", func() { ed.trigger("paste") }),
		newShortcut(th, fmt.Sprintf("+/-:zoom (%dx)", ed.cur().Engine().View().Zoom), func() { ed.trigger("zoom.in") }),
		newShortcut(th, "H:grid", func() { ed.trigger("grid") }),
		newShortcut(th, "O:onion", func() { ed.trigger("onion") }),
		newShortcut(th, "^Q:quit", func() { ed.trigger("quit") }),
	}
	if ed.cur().CanUndo() {
		ed.statusButtons = append(ed.statusButtons, newShortcut(th, "^Z:undo", func() { ed.trigger("undo") }))
	}
	if ed.cur().CanRedo() {
		ed.statusButtons = append(ed.statusButtons, newShortcut(th, "^Y:redo", func() { ed.trigger("redo") }))
	}
	end := place(ed.statusButtons, l.toolbarWidth+4, l.status.Min.Y+16)
	for i, sc := range ed.statusButtons {
		state := StateDefault
		if i == ed.hover.shortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
	}

	info := ed.statusText()
	x := l.status.Max.X - textWidth(info) - 6
	if x >= end {
		drawText(dst, info, image.Pt(x, l.status.Min.Y+16), th.StatusText)
	}
}

// statusText summarises the tool, document and hover position.
func (ed *editor) statusText() string {
	s := ed.cur()
	doc := s.Document()
	pb := s.Engine().Playback()
	text := fmt.Sprintf("%s r%d %s  %dx%d  frame %d/%d  %.0f fps",
		s.Tool.Kind, s.Tool.Radius, palette.FormatColor(s.Tool.Color),
		doc.Width(), doc.Height(), s.Frame()+1, doc.FrameCount(), pb.FPS)
	if !pb.Loop {
		text += " once"
	}
	if last := s.Last(); last.HoverOK {
		text += fmt.Sprintf("  (%d,%d)", last.Hover.X, last.Hover.Y)
	}
	return text
}

// drawMessage draws the transient message centred over the canvas. under
// is the composed canvas so the toast can be blended over it; the returned
// rectangle is the area that must be uploaded after the canvas.
func (ed *editor) drawMessage(dst, under *image.RGBA) image.Rectangle {
	if ed.message.text == "" {
		return image.Rectangle{}
	}
	vp := ed.layout.canvas
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ed.theme.Foreground), Face: messageFace}
	w := d.MeasureString(ed.message.text).Ceil()
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := vp.Min.X + (vp.Dx()-w)/2
	py := vp.Min.Y + (vp.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8).Intersect(vp)
	if rect.Empty() {
		return rect
	}
	if under != nil {
		draw.Draw(dst, rect, under, rect.Min, draw.Src)
	}
	draw.Draw(dst, rect, image.NewUniform(ed.theme.MessageBackground), image.Point{}, draw.Over)
	drawRect(dst, rect, ed.theme.ButtonBorder, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(ed.message.text)
	return rect
}
