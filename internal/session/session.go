// Package session ties a document to its engine, tool settings and
// presentation texture. The editor window keeps one Session per tab.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/document"
)

var (
	// ErrUndoUnavailable is returned by Undo and Redo; no history is kept.
	ErrUndoUnavailable = errors.New("undo is not available")
	// ErrSaveUnsupported is returned by Save; there is no project format.
	ErrSaveUnsupported = errors.New("saving projects is not supported, use export")
)

// Texture is a GPU or window-system surface the composed canvas is
// uploaded to. Sessions own their texture and release it on Close.
type Texture interface {
	Size() image.Point
	Upload(src *image.RGBA) error
	Release()
}

// TextureFactory creates a texture of the given size.
type TextureFactory func(size image.Point) (Texture, error)

// Session is one open document with its editing state.
type Session struct {
	Title string
	// Path is the export target last used for this session.
	Path string

	Tool         canvas.ToolState
	PaletteIndex int
	Grid         bool
	OnionSkin    bool

	engine *canvas.Engine
	dirty  bool
	last   canvas.TickResult

	newTexture TextureFactory
	texture    Texture
	buf        *image.RGBA
}

// Option configures a Session during creation.
type Option func(*Session)

// WithTitle sets the tab title.
func WithTitle(title string) Option { return func(s *Session) { s.Title = title } }

// WithPath sets the export path.
func WithPath(path string) Option { return func(s *Session) { s.Path = path } }

// WithTool sets the initial tool state.
func WithTool(t canvas.ToolState) Option { return func(s *Session) { s.Tool = t } }

// WithTextureFactory sets how presentation textures are created.
func WithTextureFactory(fn TextureFactory) Option {
	return func(s *Session) { s.newTexture = fn }
}

// New creates a session editing doc inside viewport.
func New(doc *document.Document, viewport image.Rectangle, opts ...Option) *Session {
	s := &Session{
		Tool:   canvas.DefaultToolState(),
		Grid:   true,
		engine: canvas.NewEngine(doc, viewport),
		last:   canvas.TickResult{Mutated: -1},
	}
	for _, o := range opts {
		o(s)
	}
	s.Tool = s.Tool.Normalized()
	return s
}

// Engine returns the interaction engine.
func (s *Session) Engine() *canvas.Engine { return s.engine }

// Document returns the edited document.
func (s *Session) Document() *document.Document { return s.engine.Document() }

// Dirty reports whether the document changed since the last export.
func (s *Session) Dirty() bool { return s.dirty }

// MarkClean clears the dirty flag, e.g. after a successful export.
func (s *Session) MarkClean() { s.dirty = false }

// Last returns the result of the most recent tick.
func (s *Session) Last() canvas.TickResult { return s.last }

// Tick feeds one step of input to the engine using the session tool.
func (s *Session) Tick(in canvas.Input) canvas.TickResult {
	res := s.engine.Tick(in, s.Tool)
	if res.Mutated >= 0 {
		s.dirty = true
	}
	s.last = res
	return res
}

// Frame returns the selected frame index.
func (s *Session) Frame() int { return s.engine.Frame() }

// SelectFrame selects frame i, clamped to the document.
func (s *Session) SelectFrame(i int) { s.engine.SetFrame(i) }

// NextFrame selects the following frame, wrapping at the end.
func (s *Session) NextFrame() {
	n := s.Document().FrameCount()
	s.engine.SetFrame((s.Frame() + 1) % n)
}

// PrevFrame selects the preceding frame, wrapping at the start.
func (s *Session) PrevFrame() {
	n := s.Document().FrameCount()
	s.engine.SetFrame((s.Frame() - 1 + n) % n)
}

// AddFrame inserts a transparent frame after the selection and selects it.
func (s *Session) AddFrame() int {
	i := s.Document().InsertFrameAfter(s.Frame(), document.Transparent)
	s.engine.SetFrame(i)
	s.dirty = true
	return i
}

// DuplicateFrame copies the selected frame after itself and selects the copy.
func (s *Session) DuplicateFrame() (int, error) {
	i, err := s.Document().DuplicateFrame(s.Frame())
	if err != nil {
		return -1, err
	}
	s.engine.SetFrame(i)
	s.dirty = true
	return i, nil
}

// RemoveFrame deletes the selected frame. The last remaining frame is kept.
func (s *Session) RemoveFrame() bool {
	cur := s.Frame()
	if !s.Document().RemoveFrame(cur) {
		return false
	}
	s.engine.SetFrame(min(cur, s.Document().FrameCount()-1))
	s.dirty = true
	return true
}

// ReverseFrames reverses frame order, keeping the same index selected.
func (s *Session) ReverseFrames() {
	s.Document().ReverseFrames()
	s.dirty = true
}

// FlipHorizontal mirrors the selected frame left to right.
func (s *Session) FlipHorizontal() error {
	return s.editFrame(s.Document().FlipHorizontal)
}

// FlipVertical mirrors the selected frame top to bottom.
func (s *Session) FlipVertical() error {
	return s.editFrame(s.Document().FlipVertical)
}

// ClearFrame fills the selected frame with transparent pixels.
func (s *Session) ClearFrame() error {
	return s.editFrame(func(i int) error { return s.Document().Clear(i, document.Transparent) })
}

// Paste draws img into the selected frame at the origin.
func (s *Session) Paste(img image.Image) error {
	return s.editFrame(func(i int) error { return s.Document().DrawImage(i, img) })
}

func (s *Session) editFrame(fn func(int) error) error {
	if err := fn(s.Frame()); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// CurrentImage returns a copy of the selected frame.
func (s *Session) CurrentImage() (*image.NRGBA, error) {
	return s.Document().Image(s.Frame())
}

// Resize changes the canvas size. New pixels are transparent.
func (s *Session) Resize(width, height int) {
	d := s.Document()
	if d.Width() == width && d.Height() == height {
		return
	}
	d.ResizeCanvas(width, height, document.Transparent)
	s.dirty = true
}

// SetFrameCount grows or shrinks the frame list and clamps the selection.
func (s *Session) SetFrameCount(n int) {
	d := s.Document()
	if n == d.FrameCount() {
		return
	}
	d.SetFrameCount(n, document.Transparent)
	s.engine.SetFrame(s.Frame())
	s.dirty = true
}

// SetViewport moves the canvas area, e.g. after a window resize.
func (s *Session) SetViewport(r image.Rectangle) { s.engine.SetViewport(r) }

// SetColor selects a palette entry as the brush color.
func (s *Session) SetColor(index int, c uint32) {
	s.PaletteIndex = index
	s.Tool.Color = c
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool { return false }

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool { return false }

// Undo reverts the last edit.
func (s *Session) Undo() error { return ErrUndoUnavailable }

// Redo reapplies the last undone edit.
func (s *Session) Redo() error { return ErrUndoUnavailable }

// Save writes the project file.
func (s *Session) Save() error { return ErrSaveUnsupported }

// Overlay returns ov with the session flags and last hover applied.
func (s *Session) Overlay(ov canvas.Overlay) canvas.Overlay {
	ov.Grid = s.Grid
	ov.OnionSkin = s.OnionSkin
	ov.Tool = s.Tool
	ov.Hover = s.last.Hover
	ov.HoverOK = s.last.HoverOK
	return ov
}

// Present composes the selected frame and uploads it to the session
// texture, creating or recreating the texture when the viewport size
// changes. The returned texture covers the engine viewport.
func (s *Session) Present(ov canvas.Overlay) (Texture, error) {
	vp := s.engine.Viewport()
	if vp.Empty() {
		return nil, nil
	}
	if s.buf == nil || s.buf.Bounds() != vp {
		s.buf = image.NewRGBA(vp)
	}
	if err := canvas.Compose(s.buf, vp, s.Document(), s.Frame(), s.engine.View(), s.Overlay(ov)); err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	if s.newTexture == nil {
		return nil, nil
	}
	if s.texture != nil && s.texture.Size() != vp.Size() {
		s.texture.Release()
		s.texture = nil
	}
	if s.texture == nil {
		t, err := s.newTexture(vp.Size())
		if err != nil {
			return nil, fmt.Errorf("new texture: %w", err)
		}
		s.texture = t
	}
	if err := s.texture.Upload(s.buf); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return s.texture, nil
}

// Buffer returns the last composed image, or nil before the first Present.
func (s *Session) Buffer() *image.RGBA { return s.buf }

// Close releases the presentation texture. The session must not be
// presented again afterwards.
func (s *Session) Close() {
	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
	s.buf = nil
}
