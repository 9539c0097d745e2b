package present

import (
	"image"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixelframe/internal/canvas"
)

// maxTrail bounds the move samples kept between two ticks.
const maxTrail = 256

// pointer accumulates mouse events between ticks. Buttons pressed over the
// chrome are held back from the engine until they are released.
type pointer struct {
	x, y    float64
	buttons canvas.Buttons
	// pressed holds buttons pressed over the viewport since the last tick,
	// so a press released before the tick still reaches the engine.
	pressed canvas.Buttons
	blocked canvas.Buttons
	scroll  int
	// trail records positions passed with the primary button held.
	trail []canvas.Sample
}

func buttonBit(b mouse.Button) canvas.Buttons {
	switch b {
	case mouse.ButtonLeft:
		return canvas.ButtonPrimary
	case mouse.ButtonMiddle:
		return canvas.ButtonMiddle
	case mouse.ButtonRight:
		return canvas.ButtonSecondary
	}
	return 0
}

func (p *pointer) update(e mouse.Event, vp image.Rectangle) {
	p.x, p.y = float64(e.X), float64(e.Y)
	over := image.Pt(int(e.X), int(e.Y)).In(vp)
	if e.Button.IsWheel() {
		if !over || (e.Direction != mouse.DirStep && e.Direction != mouse.DirPress) {
			return
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			p.scroll++
		case mouse.ButtonWheelDown:
			p.scroll--
		}
		return
	}
	bit := buttonBit(e.Button)
	held := p.buttons.Has(canvas.ButtonPrimary)
	switch e.Direction {
	case mouse.DirPress:
		if over {
			p.buttons |= bit
			p.pressed |= bit
		} else {
			p.blocked |= bit
		}
	case mouse.DirRelease:
		p.buttons &^= bit
		p.blocked &^= bit
	}
	if (held || p.buttons.Has(canvas.ButtonPrimary)) && len(p.trail) < maxTrail {
		p.trail = append(p.trail, canvas.Sample{X: p.x, Y: p.y})
	}
}

// input drains the accumulated state into one engine tick. A primary click
// that was released before the tick is reported as held, ending where the
// button came up. Outside the viewport only an active pan keeps its button.
func (p *pointer) input(vp image.Rectangle, state canvas.PointerState, elapsed float64) canvas.Input {
	in := canvas.Input{X: p.x, Y: p.y, Buttons: p.buttons | p.pressed, Scroll: p.scroll, Elapsed: elapsed}
	if len(p.trail) > 0 {
		in.Moves = p.trail
		if !p.buttons.Has(canvas.ButtonPrimary) {
			last := p.trail[len(p.trail)-1]
			in.X, in.Y = last.X, last.Y
		}
	}
	p.trail = nil
	p.pressed = 0
	if !image.Pt(int(in.X), int(in.Y)).In(vp) {
		if state == canvas.PointerPanning {
			in.Buttons &= canvas.ButtonMiddle
		} else {
			in.Buttons = 0
		}
	}
	p.scroll = 0
	return in
}
