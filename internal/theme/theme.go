package theme

import (
	"image/color"
)

// Theme defines the colors of the editor window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Behind the canvas
	Foreground color.RGBA // Main text color

	// Toolbar, status bar & tabs
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA
	TabBackground     color.RGBA // Inactive tab background
	TabActive         color.RGBA // Active tab background
	TabHover          color.RGBA
	TabText           color.RGBA
	TabTextActive     color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	Grid         color.RGBA
	Hover        color.RGBA
	CanvasBorder color.RGBA
	Shadow       color.RGBA

	MessageBackground color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{96, 96, 96, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		StatusBackground:      color.RGBA{220, 220, 220, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
		TabBackground:         color.RGBA{220, 220, 220, 255},
		TabActive:             color.RGBA{200, 200, 200, 255},
		TabHover:              color.RGBA{210, 210, 210, 255},
		TabText:               color.RGBA{0, 0, 0, 255},
		TabTextActive:         color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		Grid:                  color.RGBA{0, 0, 0, 48},
		Hover:                 color.RGBA{160, 160, 160, 160},
		CanvasBorder:          color.RGBA{0, 0, 0, 255},
		Shadow:                color.RGBA{0, 0, 0, 255},
		MessageBackground:     color.RGBA{230, 230, 230, 230},
	}
}
