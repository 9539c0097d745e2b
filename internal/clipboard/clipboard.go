// Package clipboard moves frames and palette colors through the system
// clipboard. Images travel as PNG, colors as their hex text form.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/example/pixelframe/internal/palette"
)

type format int

const (
	formatText format = iota
	formatPNG
)

func (f format) String() string {
	if f == formatPNG {
		return "image"
	}
	return "text"
}

// backend is the platform transport for raw clipboard payloads.
type backend interface {
	write(f format, data []byte) error
	read(f format) ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend

	// ErrEmpty reports that the clipboard holds nothing in the requested form.
	ErrEmpty = errors.New("clipboard is empty")
)

func ensureInit() error {
	initOnce.Do(func() {
		active, initErr = newBackend()
	})
	return initErr
}

func read(f format) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.read(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", f, ErrEmpty)
	}
	return data, nil
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return active.write(formatPNG, buf.Bytes())
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	data, err := read(formatPNG)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.write(formatText, []byte(text))
}

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	data, err := read(formatText)
	if err != nil {
		return "", err
	}
	// Some X11 owners terminate STRING replies with a null byte.
	return strings.TrimRight(string(data), "\x00"), nil
}

// WriteColor publishes a packed color as hex text.
func WriteColor(c uint32) error {
	return WriteText(palette.FormatColor(c))
}

// ReadColor parses the clipboard text as a color.
func ReadColor() (uint32, error) {
	text, err := ReadText()
	if err != nil {
		return 0, err
	}
	return palette.ParseColor(strings.TrimSpace(text))
}
