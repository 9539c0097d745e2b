package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/example/pixelframe/internal/clipboard"
	"github.com/example/pixelframe/internal/config"
	"github.com/example/pixelframe/internal/document"
)

var readClipboardImage = clipboard.ReadImage

// newDocument creates a blank document sized by the [canvas] config.
func newDocument(c config.Canvas) *document.Document {
	return document.New(c.Width, c.Height, c.Frames, c.Fill)
}

// documentFromImage creates a single frame document holding img.
func documentFromImage(img image.Image) (*document.Document, error) {
	b := img.Bounds()
	doc := document.New(b.Dx(), b.Dy(), 1, document.Transparent)
	if err := doc.DrawImage(0, img); err != nil {
		return nil, err
	}
	return doc, nil
}

// loadDocument reads a PNG into a single frame document.
func loadDocument(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(f)
	if cerr := f.Close(); cerr != nil {
		log.Printf("error closing %q: %v", path, cerr)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return documentFromImage(img)
}

// loadClipboardDocument reads the clipboard image into a single frame
// document.
func loadClipboardDocument() (*document.Document, error) {
	img, err := readClipboardImage()
	if err != nil {
		return nil, fmt.Errorf("read clipboard image: %w", err)
	}
	return documentFromImage(img)
}
