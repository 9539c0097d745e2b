package document

import (
	"errors"
	"fmt"
)

// ErrFrameOutOfRange is returned when a frame index does not address an
// existing frame.
var ErrFrameOutOfRange = errors.New("frame index out of range")

// Frame is one still image of the animation. Pixels holds width*height packed
// RGBA values in row-major order.
type Frame struct {
	Pixels []uint32
}

// Document owns the canvas shape and every frame buffer.
type Document struct {
	width  int
	height int
	frames []*Frame
}

// New creates a document with frameCount frames of width x height pixels,
// every pixel set to fill. Non-positive arguments are raised to 1.
func New(width, height, frameCount int, fill uint32) *Document {
	width = atLeastOne(width)
	height = atLeastOne(height)
	frameCount = atLeastOne(frameCount)
	d := &Document{width: width, height: height, frames: make([]*Frame, 0, frameCount)}
	for i := 0; i < frameCount; i++ {
		d.frames = append(d.frames, newFrame(width, height, fill))
	}
	return d
}

func newFrame(width, height int, fill uint32) *Frame {
	f := &Frame{Pixels: make([]uint32, width*height)}
	f.fill(fill)
	return f
}

func (f *Frame) fill(c uint32) {
	for i := range f.Pixels {
		f.Pixels[i] = c
	}
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Width returns the canvas width in pixels.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height in pixels.
func (d *Document) Height() int { return d.height }

// FrameCount returns the number of frames, always at least one.
func (d *Document) FrameCount() int { return len(d.frames) }

// Frame returns the frame at index.
func (d *Document) Frame(index int) (*Frame, error) {
	if index < 0 || index >= len(d.frames) {
		return nil, fmt.Errorf("frame %d of %d: %w", index, len(d.frames), ErrFrameOutOfRange)
	}
	return d.frames[index], nil
}

// ResizeCanvas changes the canvas shape of every frame. The top-left overlap
// of the old and new shapes is preserved and everything else is set to fill.
func (d *Document) ResizeCanvas(width, height int, fill uint32) {
	width = atLeastOne(width)
	height = atLeastOne(height)
	if width == d.width && height == d.height {
		return
	}
	copyW := min(d.width, width)
	copyH := min(d.height, height)
	resized := make([]*Frame, len(d.frames))
	for i, old := range d.frames {
		f := newFrame(width, height, fill)
		for y := 0; y < copyH; y++ {
			copy(f.Pixels[y*width:y*width+copyW], old.Pixels[y*d.width:y*d.width+copyW])
		}
		resized[i] = f
	}
	d.frames = resized
	d.width = width
	d.height = height
}

// SetFrameCount grows or truncates the frame sequence. New frames are
// appended after the existing ones and filled with fill.
func (d *Document) SetFrameCount(count int, fill uint32) {
	count = atLeastOne(count)
	if count <= len(d.frames) {
		for i := count; i < len(d.frames); i++ {
			d.frames[i] = nil
		}
		d.frames = d.frames[:count]
		return
	}
	for len(d.frames) < count {
		d.frames = append(d.frames, newFrame(d.width, d.height, fill))
	}
}

// InsertFrameAfter inserts a filled frame directly after index and returns
// the index of the new frame. An index of -1 inserts at the front; other out
// of range values are clamped.
func (d *Document) InsertFrameAfter(index int, fill uint32) int {
	return d.insertAfter(index, newFrame(d.width, d.height, fill))
}

// DuplicateFrame inserts a copy of the frame at index directly after it.
func (d *Document) DuplicateFrame(index int) (int, error) {
	src, err := d.Frame(index)
	if err != nil {
		return -1, err
	}
	dup := &Frame{Pixels: make([]uint32, len(src.Pixels))}
	copy(dup.Pixels, src.Pixels)
	return d.insertAfter(index, dup), nil
}

func (d *Document) insertAfter(index int, f *Frame) int {
	if index < -1 {
		index = -1
	}
	if index > len(d.frames)-1 {
		index = len(d.frames) - 1
	}
	pos := index + 1
	d.frames = append(d.frames, nil)
	copy(d.frames[pos+1:], d.frames[pos:])
	d.frames[pos] = f
	return pos
}

// RemoveFrame deletes the frame at index. The last remaining frame is never
// removed; false is returned when nothing changed.
func (d *Document) RemoveFrame(index int) bool {
	if len(d.frames) <= 1 || index < 0 || index >= len(d.frames) {
		return false
	}
	copy(d.frames[index:], d.frames[index+1:])
	d.frames[len(d.frames)-1] = nil
	d.frames = d.frames[:len(d.frames)-1]
	return true
}

// ReverseFrames reverses the playback order of all frames.
func (d *Document) ReverseFrames() {
	for i, j := 0, len(d.frames)-1; i < j; i, j = i+1, j-1 {
		d.frames[i], d.frames[j] = d.frames[j], d.frames[i]
	}
}

// Clear fills the frame at index with c.
func (d *Document) Clear(index int, c uint32) error {
	f, err := d.Frame(index)
	if err != nil {
		return err
	}
	f.fill(c)
	return nil
}

// FlipHorizontal mirrors the frame at index left to right.
func (d *Document) FlipHorizontal(index int) error {
	f, err := d.Frame(index)
	if err != nil {
		return err
	}
	for y := 0; y < d.height; y++ {
		row := f.Pixels[y*d.width : (y+1)*d.width]
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
	return nil
}

// FlipVertical mirrors the frame at index top to bottom.
func (d *Document) FlipVertical(index int) error {
	f, err := d.Frame(index)
	if err != nil {
		return err
	}
	tmp := make([]uint32, d.width)
	for top, bottom := 0, d.height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := f.Pixels[top*d.width : (top+1)*d.width]
		b := f.Pixels[bottom*d.width : (bottom+1)*d.width]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
	return nil
}

// Pixel returns the packed color at (x, y) of the frame at index. Points
// outside the canvas read as 0.
func (d *Document) Pixel(index, x, y int) (uint32, error) {
	f, err := d.Frame(index)
	if err != nil {
		return 0, err
	}
	if !d.contains(x, y) {
		return 0, nil
	}
	return f.Pixels[y*d.width+x], nil
}

// SetPixel writes c at (x, y) of the frame at index. Points outside the
// canvas are ignored.
func (d *Document) SetPixel(index, x, y int, c uint32) error {
	f, err := d.Frame(index)
	if err != nil {
		return err
	}
	if !d.contains(x, y) {
		return nil
	}
	f.Pixels[y*d.width+x] = c
	return nil
}

func (d *Document) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}
