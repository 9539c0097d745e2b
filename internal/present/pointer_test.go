package present

import (
	"image"
	"testing"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixelframe/internal/canvas"
)

var testViewport = image.Rect(100, 100, 300, 300)

func TestPressOverChromeIsBlocked(t *testing.T) {
	var p pointer
	p.update(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, testViewport)
	p.update(mouse.Event{X: 150, Y: 150}, testViewport)
	if in := p.input(testViewport, canvas.PointerIdle, 0); in.Buttons != 0 {
		t.Fatalf("blocked press leaked into canvas: %v", in.Buttons)
	}
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, testViewport)
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, testViewport)
	if in := p.input(testViewport, canvas.PointerHovering, 0); !in.Buttons.Has(canvas.ButtonPrimary) {
		t.Fatalf("expected primary button, got %v", in.Buttons)
	}
}

func TestWheelCountsOnlyOverViewport(t *testing.T) {
	var p pointer
	p.update(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, testViewport)
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, testViewport)
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}, testViewport)
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonWheelDown, Direction: mouse.DirStep}, testViewport)
	if in := p.input(testViewport, canvas.PointerHovering, 0); in.Scroll != 1 {
		t.Fatalf("scroll = %d, want 1", in.Scroll)
	}
	if in := p.input(testViewport, canvas.PointerHovering, 0); in.Scroll != 0 {
		t.Fatalf("scroll not drained: %d", in.Scroll)
	}
}

func TestPanKeepsMiddleOutsideViewport(t *testing.T) {
	var p pointer
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonMiddle, Direction: mouse.DirPress}, testViewport)
	p.update(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, testViewport)
	p.update(mouse.Event{X: 400, Y: 150}, testViewport)
	in := p.input(testViewport, canvas.PointerPanning, 0.1)
	if in.Buttons != canvas.ButtonMiddle {
		t.Fatalf("panning outside buttons = %v, want middle only", in.Buttons)
	}
	if in.X != 400 || in.Elapsed != 0.1 {
		t.Fatalf("unexpected input %+v", in)
	}
	if in := p.input(testViewport, canvas.PointerIdle, 0); in.Buttons != 0 {
		t.Fatalf("idle outside buttons = %v", in.Buttons)
	}
}
