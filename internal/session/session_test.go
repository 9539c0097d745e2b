package session

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/document"
)

type fakeTexture struct {
	size     image.Point
	uploads  int
	released bool
}

func (f *fakeTexture) Size() image.Point { return f.size }

func (f *fakeTexture) Upload(src *image.RGBA) error {
	f.uploads++
	return nil
}

func (f *fakeTexture) Release() { f.released = true }

type textureLog struct {
	made []*fakeTexture
}

func (l *textureLog) factory(size image.Point) (Texture, error) {
	t := &fakeTexture{size: size}
	l.made = append(l.made, t)
	return t, nil
}

func newSession(frames int, opts ...Option) *Session {
	doc := document.New(16, 16, frames, document.Transparent)
	return New(doc, image.Rect(0, 0, 160, 160), opts...)
}

func TestTickMarksDirty(t *testing.T) {
	s := newSession(1)
	s.Tick(canvas.Input{X: 60, Y: 60})
	if s.Dirty() {
		t.Fatalf("hover must not dirty the session")
	}
	res := s.Tick(canvas.Input{X: 60, Y: 60, Buttons: canvas.ButtonPrimary})
	if res.Mutated != 0 || !s.Dirty() {
		t.Fatalf("expected dirty after paint, mutated=%d", res.Mutated)
	}
	s.MarkClean()
	if s.Dirty() {
		t.Fatalf("expected clean")
	}
}

func TestAddFrameSelectsInserted(t *testing.T) {
	s := newSession(3)
	s.SelectFrame(1)
	if i := s.AddFrame(); i != 2 {
		t.Fatalf("expected insert at 2, got %d", i)
	}
	if s.Frame() != 2 || s.Document().FrameCount() != 4 {
		t.Fatalf("unexpected state frame=%d count=%d", s.Frame(), s.Document().FrameCount())
	}
}

func TestRemoveFrameClampsSelection(t *testing.T) {
	s := newSession(3)
	s.SelectFrame(2)
	if !s.RemoveFrame() {
		t.Fatalf("expected removal")
	}
	if s.Frame() != 1 {
		t.Fatalf("expected selection 1, got %d", s.Frame())
	}
	s.SelectFrame(0)
	s.RemoveFrame()
	if s.RemoveFrame() {
		t.Fatalf("last frame must not be removed")
	}
	if s.Frame() != 0 || s.Document().FrameCount() != 1 {
		t.Fatalf("unexpected state frame=%d count=%d", s.Frame(), s.Document().FrameCount())
	}
}

func TestFrameNavigationWraps(t *testing.T) {
	s := newSession(3)
	s.PrevFrame()
	if s.Frame() != 2 {
		t.Fatalf("expected wrap to 2, got %d", s.Frame())
	}
	s.NextFrame()
	if s.Frame() != 0 {
		t.Fatalf("expected wrap to 0, got %d", s.Frame())
	}
}

func TestSetFrameCountClampsSelection(t *testing.T) {
	s := newSession(5)
	s.SelectFrame(4)
	s.SetFrameCount(2)
	if s.Frame() != 1 {
		t.Fatalf("expected selection 1, got %d", s.Frame())
	}
	if !s.Dirty() {
		t.Fatalf("expected dirty")
	}
}

func TestResizeNoopKeepsClean(t *testing.T) {
	s := newSession(1)
	s.Resize(16, 16)
	if s.Dirty() {
		t.Fatalf("same size resize must not dirty")
	}
	s.Resize(8, 4)
	if s.Document().Width() != 8 || s.Document().Height() != 4 || !s.Dirty() {
		t.Fatalf("resize not applied")
	}
}

func TestUndoAndSaveUnavailable(t *testing.T) {
	s := newSession(1)
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("undo must not be offered")
	}
	if !errors.Is(s.Undo(), ErrUndoUnavailable) || !errors.Is(s.Redo(), ErrUndoUnavailable) {
		t.Fatalf("expected ErrUndoUnavailable")
	}
	if !errors.Is(s.Save(), ErrSaveUnsupported) {
		t.Fatalf("expected ErrSaveUnsupported")
	}
}

func TestPasteDrawsIntoSelectedFrame(t *testing.T) {
	s := newSession(2)
	s.SelectFrame(1)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := s.Paste(img); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Document().Pixel(1, 1, 1); got != document.Pack(10, 20, 30, 255) {
		t.Fatalf("unexpected pixel %08X", got)
	}
	if got, _ := s.Document().Pixel(0, 1, 1); got != document.Transparent {
		t.Fatalf("frame 0 must be untouched")
	}
}

func TestPresentTextureLifecycle(t *testing.T) {
	var log textureLog
	s := newSession(1, WithTextureFactory(log.factory))
	tex, err := s.Present(canvas.DefaultOverlay())
	if err != nil {
		t.Fatal(err)
	}
	if tex == nil || len(log.made) != 1 {
		t.Fatalf("expected one texture, got %d", len(log.made))
	}
	if _, err := s.Present(canvas.DefaultOverlay()); err != nil {
		t.Fatal(err)
	}
	if len(log.made) != 1 || log.made[0].uploads != 2 {
		t.Fatalf("expected texture reuse, made=%d uploads=%d", len(log.made), log.made[0].uploads)
	}

	s.SetViewport(image.Rect(0, 0, 200, 120))
	if _, err := s.Present(canvas.DefaultOverlay()); err != nil {
		t.Fatal(err)
	}
	if len(log.made) != 2 || !log.made[0].released {
		t.Fatalf("expected texture recreated on resize")
	}
	if log.made[1].size != image.Pt(200, 120) {
		t.Fatalf("unexpected texture size %v", log.made[1].size)
	}

	s.Close()
	if !log.made[1].released {
		t.Fatalf("expected texture released on close")
	}
}

func TestOverlayCarriesSessionFlags(t *testing.T) {
	s := newSession(1)
	s.Grid = false
	s.OnionSkin = true
	s.SetColor(3, 0xFF00FF00)
	s.Tick(canvas.Input{X: 60, Y: 60})
	ov := s.Overlay(canvas.DefaultOverlay())
	if ov.Grid || !ov.OnionSkin {
		t.Fatalf("flags not applied: %+v", ov)
	}
	if ov.Tool.Color != 0xFF00FF00 || s.PaletteIndex != 3 {
		t.Fatalf("tool color not applied")
	}
	if !ov.HoverOK {
		t.Fatalf("expected hover from last tick")
	}
}
