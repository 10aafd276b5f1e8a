package theme

import (
	"image/color"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Paint view behind the canvas
	Foreground color.RGBA // Main text color

	// Toolbar & status bar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CanvasShadow  color.RGBA
	Grip          color.RGBA
	ResizeOutline color.RGBA

	// Prompts and messages
	PromptBackground color.RGBA
	PromptText       color.RGBA
	PromptBorder     color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 230, 240, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{240, 240, 240, 255},
		StatusBackground:      color.RGBA{240, 240, 240, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{225, 225, 225, 255},
		ButtonBackgroundHover: color.RGBA{200, 215, 235, 255},
		ButtonBackgroundPress: color.RGBA{170, 195, 225, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextHover:       color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{120, 120, 120, 255},
		CanvasShadow:          color.RGBA{0, 0, 0, 90},
		Grip:                  color.RGBA{80, 80, 80, 255},
		ResizeOutline:         color.RGBA{0, 0, 0, 255},
		PromptBackground:      color.RGBA{255, 255, 255, 235},
		PromptText:            color.RGBA{0, 0, 0, 255},
		PromptBorder:          color.RGBA{0, 0, 0, 255},
	}
}
