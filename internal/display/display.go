// Package display reports the monitor layout the canvas is sized against.
package display

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

type platformBackend interface {
	ListMonitors() ([]Monitor, error)
}

var backend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// DefaultDPI is assumed when a monitor does not report its physical size.
const DefaultDPI = 96.0

// Monitor describes one output in the virtual screen.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
	// Physical size in millimetres, zero when unknown.
	WidthMM  int
	HeightMM int
}

// DPI derives the horizontal pixel density from the reported physical width.
func (m Monitor) DPI() float64 {
	if m.WidthMM <= 0 || m.Rect.Dx() <= 0 {
		return DefaultDPI
	}
	dpi := float64(m.Rect.Dx()) * 25.4 / float64(m.WidthMM)
	if dpi < 48 || dpi > 600 {
		// Projectors and some virtual outputs report nonsense sizes.
		return DefaultDPI
	}
	return math.Round(dpi)
}

// Scale is the factor between logical and physical pixels for m.
func (m Monitor) Scale() float64 {
	return m.DPI() / DefaultDPI
}

// ListMonitors queries the platform for connected monitors.
func ListMonitors() ([]Monitor, error) {
	return backend.ListMonitors()
}

// VirtualBounds returns the rectangle spanning every monitor.
func VirtualBounds(monitors []Monitor) image.Rectangle {
	var r image.Rectangle
	for _, m := range monitors {
		r = r.Union(m.Rect)
	}
	return r
}

// Primary returns the primary monitor, or the first one if none is flagged.
func Primary(monitors []Monitor) (Monitor, error) {
	return FindMonitor(monitors, "primary")
}

// FindMonitor resolves a selector: empty, "primary", an index (optionally
// prefixed with #) or part of the output name.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	sel = strings.TrimPrefix(sel, "#")
	if idx, err := strconv.Atoi(sel); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, m := range monitors {
		if strings.Contains(strings.ToLower(m.Name), sel) {
			return m, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// MaxCanvasSize returns the largest canvas a window can show: the virtual
// screen size, never smaller than fallback. When the layout cannot be read
// fallback is returned together with the error.
func MaxCanvasSize(fallback image.Point) (image.Point, error) {
	monitors, err := ListMonitors()
	if err != nil {
		return fallback, err
	}
	return maxCanvasSize(monitors, fallback), nil
}

func maxCanvasSize(monitors []Monitor, fallback image.Point) image.Point {
	sz := VirtualBounds(monitors).Size()
	if sz.X < fallback.X {
		sz.X = fallback.X
	}
	if sz.Y < fallback.Y {
		sz.Y = fallback.Y
	}
	return sz
}
