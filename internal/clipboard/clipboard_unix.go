//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

type cgoBackend struct{}

func newBackend() (backend, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return cgoBackend{}, nil
}

func (cgoBackend) fmt(f format) clipboard.Format {
	if f == formatPNG {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func (b cgoBackend) write(f format, data []byte) error {
	clipboard.Write(b.fmt(f), data)
	return nil
}

func (b cgoBackend) read(f format) ([]byte, error) {
	return clipboard.Read(b.fmt(f)), nil
}
