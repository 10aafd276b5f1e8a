package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/simplepaint/internal/appstate"
	"github.com/example/simplepaint/internal/config"
	"github.com/example/simplepaint/internal/display"
	"github.com/example/simplepaint/internal/document"
)

// parseSize reads a WIDTHxHEIGHT canvas size.
func parseSize(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid width in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid height in %q", s)
	}
	if x < 1 || y < 1 {
		return image.Point{}, fmt.Errorf("size %q must be positive", s)
	}
	return image.Pt(x, y), nil
}

func formatSize(p image.Point) string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}

// documentOptions turns the configured pen settings into document options.
// An unparseable pen color is reported rather than silently replaced.
func documentOptions(cfg *config.Config, size image.Point) ([]document.Option, error) {
	opts := []document.Option{
		document.WithCanvasSize(size),
		document.WithHistoryLimit(cfg.HistoryLimit),
	}
	if cfg.PenColor != "" {
		c, err := appstate.ParseColor(cfg.PenColor)
		if err != nil {
			return nil, fmt.Errorf("config pen_color: %w", err)
		}
		opts = append(opts, document.WithPenColor(c))
	}
	if cfg.PenWidth > 0 {
		opts = append(opts, document.WithPenWidth(cfg.PenWidth))
	}
	if cfg.EraserWidth > 0 {
		opts = append(opts, document.WithEraserWidth(cfg.EraserWidth))
	}
	return opts, nil
}

// canvasCapacity is the surface size to allocate: the virtual screen, never
// smaller than the requested canvas.
func canvasCapacity(monitors []display.Monitor, size image.Point) image.Point {
	vb := display.VirtualBounds(monitors).Size()
	return image.Pt(max(size.X, vb.X), max(size.Y, vb.Y))
}
