package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/riff"

	"github.com/example/pixelframe/internal/document"
)

// Microsoft RIFF palette layout: a "PAL " form holding one "data" chunk of
// LOGPALETTE, i.e. version 0x0300, entry count, then R G B flags per entry.

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

const palVersion = 0x0300

// ReadRIFF reads the first palette of a RIFF PAL stream. PAL entries carry
// no alpha, so every swatch is opaque.
func ReadRIFF(r io.Reader) (Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return Palette{}, fmt.Errorf("open riff stream: %w", err)
	}
	if formType != palType {
		return Palette{}, fmt.Errorf("unsupported riff form %q", string(formType[:]))
	}
	for {
		id, _, data, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return Palette{}, fmt.Errorf("riff stream has no data chunk")
		}
		if err != nil {
			return Palette{}, fmt.Errorf("read chunk: %w", err)
		}
		if id != dataType {
			continue
		}
		return readLogPalette(data)
	}
}

func readLogPalette(r io.Reader) (Palette, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Palette{}, fmt.Errorf("read palette header: %w", err)
	}
	if v := binary.LittleEndian.Uint16(hdr[0:2]); v != palVersion {
		return Palette{}, fmt.Errorf("unsupported palette version %#04x", v)
	}
	count := int(binary.LittleEndian.Uint16(hdr[2:4]))
	p := Palette{Entries: make([]Entry, 0, count)}
	var e [4]byte
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, e[:]); err != nil {
			return Palette{}, fmt.Errorf("read color %d/%d: %w", i, count, err)
		}
		c := document.Pack(e[0], e[1], e[2], 0xFF)
		p.Entries = append(p.Entries, Entry{Name: FormatColor(c), Color: c})
	}
	return p, nil
}

// WriteRIFF writes p as a RIFF PAL stream. Alpha and names are dropped.
func WriteRIFF(w io.Writer, p Palette) error {
	n := len(p.Entries)
	if n > 0xFFFF {
		return fmt.Errorf("palette has %d entries, at most 65535 fit", n)
	}
	chunk := 4 + 4*n
	buf := make([]byte, 0, 12+8+chunk)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunk))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunk))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(n))
	for _, e := range p.Entries {
		r, g, b, _ := document.Unpack(e.Color)
		buf = append(buf, r, g, b, 0)
	}
	_, err := w.Write(buf)
	return err
}
