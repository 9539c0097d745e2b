package canvas

import (
	"image"

	"github.com/tanema/gween/ease"

	"github.com/example/pixelframe/internal/document"
)

// PointerState is the interaction state of the pointer over the canvas.
type PointerState int

const (
	PointerIdle PointerState = iota
	PointerHovering
	PointerPainting
	PointerPanning
)

func (s PointerState) String() string {
	switch s {
	case PointerHovering:
		return "hovering"
	case PointerPainting:
		return "painting"
	case PointerPanning:
		return "panning"
	}
	return "idle"
}

// Buttons is a set of held pointer buttons.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonMiddle
	ButtonSecondary
)

// Has reports whether every button in b2 is held.
func (b Buttons) Has(b2 Buttons) bool { return b&b2 == b2 }

// Sample is a pointer position in screen coordinates.
type Sample struct {
	X, Y float64
}

// Input is the pointer and clock state gathered for one tick.
type Input struct {
	X, Y    float64
	Buttons Buttons
	// Moves are the positions the pointer passed through with the primary
	// button held since the previous tick, oldest first. A stroke is drawn
	// through each of them before X, Y.
	Moves []Sample
	// Scroll counts wheel steps; positive zooms in.
	Scroll int
	// Elapsed is the wall clock time since the previous tick in seconds.
	Elapsed float64
}

// TickResult describes what a tick changed.
type TickResult struct {
	View ViewTransform
	// Mutated is the index of the frame written this tick, or -1.
	Mutated int
	// Frame is the selected frame after playback.
	Frame   int
	State   PointerState
	Hover   image.Point
	HoverOK bool
	// Err is set when the active tool could not be applied.
	Err error
}

// Engine turns pointer input into document mutations for one open canvas.
type Engine struct {
	doc      *document.Document
	view     ViewTransform
	viewport image.Rectangle
	playback Playback
	frame    int

	state    PointerState
	lastX    float64
	lastY    float64
	stamped  bool
	lastPix  image.Point
	lastTool ToolState
	// held is set while a primary press that began off the canvas is down.
	held     bool
	recenter *panTween
}

// NewEngine creates an engine editing doc inside viewport.
func NewEngine(doc *document.Document, viewport image.Rectangle) *Engine {
	return &Engine{
		doc:      doc,
		view:     NewViewTransform(),
		viewport: viewport,
		playback: NewPlayback(),
	}
}

// Document returns the edited document.
func (e *Engine) Document() *document.Document { return e.doc }

// View returns the current view transform.
func (e *Engine) View() ViewTransform { return e.view }

// SetView replaces the view transform. An unlisted zoom keeps the old zoom.
func (e *Engine) SetView(v ViewTransform) {
	e.view.SetZoom(v.Zoom)
	e.view.PanX = v.PanX
	e.view.PanY = v.PanY
	e.recenter = nil
}

// Viewport returns the screen rectangle the canvas is centred in.
func (e *Engine) Viewport() image.Rectangle { return e.viewport }

// SetViewport updates the screen rectangle, e.g. after a window resize.
func (e *Engine) SetViewport(r image.Rectangle) { e.viewport = r }

// Playback exposes the playback settings for modification.
func (e *Engine) Playback() *Playback { return &e.playback }

// State returns the pointer state.
func (e *Engine) State() PointerState { return e.state }

// Frame returns the selected frame index.
func (e *Engine) Frame() int { return e.frame }

// SetFrame selects a frame, clamped to the document.
func (e *Engine) SetFrame(i int) {
	e.frame = clampInt(i, 0, e.doc.FrameCount()-1)
	e.stamped = false
}

// Recenter eases the pan back to zero over duration seconds.
func (e *Engine) Recenter(duration float32) {
	if duration <= 0 {
		e.view.PanX, e.view.PanY = 0, 0
		e.recenter = nil
		return
	}
	e.recenter = newPanTween(e.view, 0, 0, duration, ease.OutCubic)
}

// Tick processes one step of input. Pointer mutations are applied first,
// then zoom, pan easing and playback.
func (e *Engine) Tick(in Input, tool ToolState) TickResult {
	res := TickResult{Mutated: -1}
	e.frame = clampInt(e.frame, 0, e.doc.FrameCount()-1)
	if !in.Buttons.Has(ButtonPrimary) {
		e.held = false
	}
	w, h := e.doc.Width(), e.doc.Height()
	px, py, inside := e.view.ScreenToPixel(e.viewport, w, h, in.X, in.Y)

	switch {
	case e.state == PointerPanning:
		if in.Buttons.Has(ButtonMiddle) {
			e.view.PanX += in.X - e.lastX
			e.view.PanY += in.Y - e.lastY
		} else {
			e.state = hoverOrIdle(inside)
		}
	case !inside:
		e.state = PointerIdle
		e.stamped = false
		e.held = in.Buttons.Has(ButtonPrimary)
	case in.Buttons.Has(ButtonMiddle):
		e.state = PointerPanning
		e.stamped = false
		e.recenter = nil
	case in.Buttons.Has(ButtonPrimary) && !e.held:
		tool = tool.Normalized()
		for _, m := range in.Moves {
			mx, my, ok := e.view.ScreenToPixel(e.viewport, w, h, m.X, m.Y)
			if !ok {
				// The stroke left the canvas between ticks.
				e.held = true
				e.stamped = false
				break
			}
			e.stroke(&res, image.Pt(mx, my), tool)
		}
		if e.held {
			e.state = PointerHovering
			break
		}
		e.stroke(&res, image.Pt(px, py), tool)
	default:
		e.state = PointerHovering
		e.stamped = false
	}
	e.lastX, e.lastY = in.X, in.Y

	if in.Scroll != 0 {
		e.view.StepZoom(in.Scroll)
	}
	if e.recenter != nil && e.recenter.update(&e.view, float32(in.Elapsed)) {
		e.recenter = nil
	}
	e.frame = e.playback.Advance(in.Elapsed, e.frame, e.doc.FrameCount())

	res.View = e.view
	res.Frame = e.frame
	res.State = e.state
	res.Hover = image.Pt(px, py)
	res.HoverOK = inside && e.state != PointerPanning
	return res
}

// stroke paints at pt. While a stroke is in progress with the same tool it
// joins the previous pixel to pt with a line so fast drags leave no gaps.
func (e *Engine) stroke(res *TickResult, pt image.Point, tool ToolState) {
	continuing := e.state == PointerPainting && e.stamped && tool == e.lastTool
	if continuing && pt == e.lastPix {
		return
	}
	var err error
	if continuing {
		_, err = ApplyLine(e.doc, e.frame, tool, e.lastPix.X, e.lastPix.Y, pt.X, pt.Y)
	} else {
		_, err = Apply(e.doc, e.frame, tool, pt.X, pt.Y)
	}
	if err != nil {
		res.Err = err
	} else {
		res.Mutated = e.frame
	}
	e.stamped = true
	e.lastPix = pt
	e.lastTool = tool
	e.state = PointerPainting
}

func hoverOrIdle(inside bool) PointerState {
	if inside {
		return PointerHovering
	}
	return PointerIdle
}
