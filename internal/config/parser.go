package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/pixelframe/internal/palette"
	"github.com/example/pixelframe/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case currentSection == "view":
			err = setViewField(&cfg.View, key, value)
		case currentSection == "playback":
			err = setPlaybackField(&cfg.Playback, key, value)
		case currentSection == "brush":
			err = setBrushField(&cfg.Brush, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	case "export_dir":
		cfg.ExportDir = value
	case "palette":
		cfg.Palette = value
	}
	return nil
}

func setCanvasField(c *Canvas, key, value string) error {
	switch key {
	case "width":
		return parsePositive(key, value, &c.Width)
	case "height":
		return parsePositive(key, value, &c.Height)
	case "frames":
		return parsePositive(key, value, &c.Frames)
	case "fill":
		return parseColor(key, value, &c.Fill)
	}
	return nil
}

func setViewField(v *View, key, value string) error {
	switch key {
	case "zoom":
		return parsePositive(key, value, &v.Zoom)
	case "grid":
		return parseBool(key, value, &v.Grid)
	case "onion_skin":
		return parseBool(key, value, &v.OnionSkin)
	}
	return nil
}

func setPlaybackField(p *Playback, key, value string) error {
	switch key {
	case "fps":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid fps %q", value)
		}
		p.FPS = f
	case "loop":
		return parseBool(key, value, &p.Loop)
	}
	return nil
}

func setBrushField(b *Brush, key, value string) error {
	switch key {
	case "tool":
		b.Tool = value
	case "size":
		return parsePositive(key, value, &b.Size)
	case "color":
		return parseColor(key, value, &b.Color)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	switch key {
	case "export":
		return parseBool(key, value, &n.Export)
	case "copy":
		return parseBool(key, value, &n.Copy)
	}
	return nil
}

func parseBool(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	*dst = b
	return nil
}

func parsePositive(key, value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < 1 {
		return fmt.Errorf("key %s must be at least 1, got %d", key, n)
	}
	*dst = n
	return nil
}

func parseColor(key, value string, dst *uint32) error {
	c, err := palette.ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	*dst = c
	return nil
}
