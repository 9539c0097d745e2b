package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/pixelframe/internal/palette"
	"github.com/example/pixelframe/internal/theme"
)

// Canvas holds the size of new documents.
type Canvas struct {
	Width  int
	Height int
	Frames int
	Fill   uint32
}

// View holds the initial view settings of new tabs.
type View struct {
	Zoom      int
	Grid      bool
	OnionSkin bool
}

// Playback holds animation preview settings.
type Playback struct {
	FPS  float64
	Loop bool
}

// Brush holds the initial tool settings.
type Brush struct {
	Tool  string
	Size  int
	Color uint32
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	ExportDir string
	// Palette is a palette file path or the name of an embedded palette.
	Palette string

	Canvas   Canvas
	View     View
	Playback Playback
	Brush    Brush
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Canvas: Canvas{
			Width:  16,
			Height: 16,
			Frames: 1,
		},
		View: View{
			Zoom: 4,
			Grid: true,
		},
		Playback: Playback{
			FPS:  12,
			Loop: true,
		},
		Brush: Brush{
			Tool:  "brush",
			Size:  1,
			Color: 0xFF000000,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	if c.Palette != "" {
		fmt.Fprintf(&sb, "palette = %s\n", c.Palette)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "frames = %d\n", c.Canvas.Frames)
	fmt.Fprintf(&sb, "fill = %s\n", palette.FormatColor(c.Canvas.Fill))
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "zoom = %d\n", c.View.Zoom)
	fmt.Fprintf(&sb, "grid = %v\n", c.View.Grid)
	fmt.Fprintf(&sb, "onion_skin = %v\n", c.View.OnionSkin)
	sb.WriteString("\n")

	sb.WriteString("[playback]\n")
	fmt.Fprintf(&sb, "fps = %s\n", strconv.FormatFloat(c.Playback.FPS, 'g', -1, 64))
	fmt.Fprintf(&sb, "loop = %v\n", c.Playback.Loop)
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "tool = %s\n", c.Brush.Tool)
	fmt.Fprintf(&sb, "size = %d\n", c.Brush.Size)
	fmt.Fprintf(&sb, "color = %s\n", palette.FormatColor(c.Brush.Color))
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
