package present

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	tabHeight        = 24
	timelineHeight   = 28
	statusHeight     = 24
	toolButtonHeight = 24
	swatchSize       = 16
	swatchStep       = 18
	sizeRowHeight    = 16
	frameCellWidth   = 28
	minToolbarWidth  = 48
)

// sizeOptions are the brush radii offered in the toolbar.
var sizeOptions = []int{1, 2, 3, 4, 6, 8, 12, 16}

var toolLabels = []string{"B:Brush", "E:Erase", "I:Pick", "G:Fill", "L:Line", "R:Rect", "F:Box"}

const appTitle = "Pixelframe"

// measureToolbar returns a toolbar width wide enough for the program title
// and every tool label.
func measureToolbar() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(appTitle).Ceil() + 8
	for _, lbl := range toolLabels {
		w = max(w, d.MeasureString(lbl).Ceil()+8)
	}
	return max(w, minToolbarWidth)
}

// layout splits the window into the fixed chrome regions and the canvas
// viewport.
type layout struct {
	width, height int
	toolbarWidth  int

	tabs     image.Rectangle
	toolbar  image.Rectangle
	canvas   image.Rectangle
	timeline image.Rectangle
	status   image.Rectangle
}

func newLayout(width, height, toolbarWidth int) layout {
	l := layout{width: width, height: height, toolbarWidth: toolbarWidth}
	bottom := height - statusHeight - timelineHeight
	l.tabs = image.Rect(0, 0, width, tabHeight)
	l.toolbar = image.Rect(0, tabHeight, toolbarWidth, max(tabHeight, bottom))
	l.canvas = image.Rect(toolbarWidth, tabHeight, max(toolbarWidth, width), max(tabHeight, bottom))
	l.timeline = image.Rect(0, max(tabHeight, bottom), width, max(tabHeight, height-statusHeight))
	l.status = image.Rect(0, max(tabHeight, height-statusHeight), width, height)
	return l
}

// windowSize returns a window size that shows a width x height document at
// zoom with the chrome around it.
func windowSize(toolbarWidth, width, height, zoom int) image.Point {
	w := toolbarWidth + width*zoom + 64
	h := tabHeight + height*zoom + 64 + timelineHeight + statusHeight
	return image.Pt(max(w, 480), max(h, 400))
}

// swatchColumns is how many palette swatches fit across the toolbar.
func (l layout) swatchColumns() int {
	return max(1, (l.toolbarWidth-4)/swatchStep)
}

func (l layout) toolRect(i int) image.Rectangle {
	y := l.toolbar.Min.Y + i*toolButtonHeight
	return image.Rect(0, y, l.toolbarWidth, y+toolButtonHeight)
}

func (l layout) swatchOrigin() image.Point {
	return image.Pt(4, l.toolRect(len(toolLabels)).Min.Y+4)
}

func (l layout) swatchRect(i int) image.Rectangle {
	cols := l.swatchColumns()
	o := l.swatchOrigin()
	x := o.X + (i%cols)*swatchStep
	y := o.Y + (i/cols)*swatchStep
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

func (l layout) sizeRect(i, swatches int) image.Rectangle {
	rows := (swatches + l.swatchColumns() - 1) / l.swatchColumns()
	y := l.swatchOrigin().Y + rows*swatchStep + 4 + i*sizeRowHeight
	return image.Rect(0, y, l.toolbarWidth, y+sizeRowHeight)
}

// toolbarHit resolves a point in the toolbar to a tool, swatch or size
// row. Unused results are -1.
func (l layout) toolbarHit(p image.Point, swatches int) (tool, swatch, size int) {
	tool, swatch, size = -1, -1, -1
	if !p.In(l.toolbar) {
		return
	}
	for i := range toolLabels {
		if p.In(l.toolRect(i)) {
			tool = i
			return
		}
	}
	for i := 0; i < swatches; i++ {
		if p.In(l.swatchRect(i)) {
			swatch = i
			return
		}
	}
	for i := range sizeOptions {
		if p.In(l.sizeRect(i, swatches)) {
			size = i
			return
		}
	}
	return
}
