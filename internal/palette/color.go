package palette

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/pixelframe/internal/document"
)

// ParseColor reads a packed color from a CSS/SVG color name, "#RRGGBB",
// "#RRGGBBAA", "#RGB", the word "transparent", or a packed "0xAABBGGRR"
// literal.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty color")
	}
	lower := strings.ToLower(s)
	if lower == "transparent" || lower == "none" {
		return document.Transparent, nil
	}
	if c, ok := colornames.Map[strings.ReplaceAll(lower, " ", "")]; ok {
		return document.Pack(c.R, c.G, c.B, c.A), nil
	}
	switch {
	case strings.HasPrefix(lower, "0x"):
		v, err := strconv.ParseUint(lower[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid packed color %q: %w", s, err)
		}
		return uint32(v), nil
	case strings.HasPrefix(lower, "#"):
		return parseHex(lower[1:])
	}
	return 0, fmt.Errorf("invalid color %q", s)
}

func parseHex(h string) (uint32, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return 0, fmt.Errorf("invalid hex color #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color #%s: %w", h, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xFF
	}
	return document.Pack(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// FormatColor writes c as "#RRGGBB", or "#RRGGBBAA" when not opaque.
func FormatColor(c uint32) string {
	r, g, b, a := document.Unpack(c)
	if a == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}
