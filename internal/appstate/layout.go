package appstate

import (
	"image"

	"golang.org/x/image/font"

	"github.com/example/simplepaint/internal/render"
)

// Metrics at render.BaseDPI. They are scaled to the display DPI.
const (
	titleHeight  = 24
	statusHeight = 24
	toolbarWidth = 80
	toolHeight   = 24
	swatchSize   = 16
	swatchGap    = 2
	widthHeight  = 18
	canvasMargin = 8
	gripSize     = 8
	sectionGap   = 6
	hintGap      = 6
)

// layout holds the window geometry for one frame. It is computed on the
// event goroutine and handed to the paint goroutine by value.
type layout struct {
	window   image.Point
	dpi      float64
	title    image.Rectangle
	toolbar  image.Rectangle
	status   image.Rectangle
	tools    []image.Rectangle
	swatches []image.Rectangle
	widths   []image.Rectangle
	hints    []image.Rectangle
	// statusText is where the coordinate and size text go, left of the hints.
	statusText image.Rectangle
	view       render.View
	gripSize   int
}

func (l layout) px(v int) int { return render.Scale(v, l.dpi) }

func newLayout(window image.Point, dpi float64, zoom, tools, swatches, widths int, face font.Face, hintLabels []string) layout {
	l := layout{window: window, dpi: dpi}
	th, sh, tw := l.px(titleHeight), l.px(statusHeight), l.px(toolbarWidth)
	l.title = image.Rect(0, 0, window.X, th)
	l.status = image.Rect(0, window.Y-sh, window.X, window.Y)
	l.toolbar = image.Rect(0, th, tw, window.Y-sh)

	pad := l.px(4)
	y := l.toolbar.Min.Y + pad
	for i := 0; i < tools; i++ {
		r := image.Rect(pad, y, tw-pad, y+l.px(toolHeight))
		l.tools = append(l.tools, r)
		y = r.Max.Y + l.px(swatchGap)
	}

	y += l.px(sectionGap)
	ss, gap := l.px(swatchSize), l.px(swatchGap)
	x := pad
	for i := 0; i < swatches; i++ {
		if x+ss > tw-pad && x > pad {
			x = pad
			y += ss + gap
		}
		l.swatches = append(l.swatches, image.Rect(x, y, x+ss, y+ss))
		x += ss + gap
	}
	if swatches > 0 {
		y += ss + gap
	}

	y += l.px(sectionGap)
	for i := 0; i < widths; i++ {
		r := image.Rect(pad, y, tw-pad, y+l.px(widthHeight))
		l.widths = append(l.widths, r)
		y = r.Max.Y
	}

	// Hints are right aligned in the status bar.
	hpad := l.px(hintGap)
	x = window.X - hpad
	l.hints = make([]image.Rectangle, len(hintLabels))
	for i := len(hintLabels) - 1; i >= 0; i-- {
		w := font.MeasureString(face, hintLabels[i]).Ceil() + 2*pad
		l.hints[i] = image.Rect(x-w, l.status.Min.Y+pad/2, x, l.status.Max.Y-pad/2)
		x -= w + hpad
	}
	l.statusText = image.Rect(pad, l.status.Min.Y, max(x, pad), l.status.Max.Y)

	l.view = render.View{
		Origin: image.Pt(l.toolbar.Max.X+l.px(canvasMargin), l.title.Max.Y+l.px(canvasMargin)),
		Zoom:   zoom,
	}
	l.gripSize = l.px(gripSize)
	return l
}

// canvasRect is the window rectangle of a canvas with the given size.
func (l layout) canvasRect(size image.Point) image.Rectangle {
	return l.view.Rect(size)
}

// gripRect is the resize handle of a canvas with the given size.
func (l layout) gripRect(size image.Point) image.Rectangle {
	return render.GripRect(l.canvasRect(size), l.gripSize)
}

// windowSize is the window needed to show a canvas of size without scrolling.
func windowSize(size image.Point, dpi float64) image.Point {
	s := func(v int) int { return render.Scale(v, dpi) }
	w := s(toolbarWidth) + 2*s(canvasMargin) + s(gripSize) + size.X
	h := s(titleHeight) + s(statusHeight) + 2*s(canvasMargin) + s(gripSize) + size.Y
	return image.Pt(w, h)
}

// resizeTarget converts the pointer position during a grip drag into the
// requested canvas size.
func (l layout) resizeTarget(p image.Point) image.Point {
	c := l.view.ToCanvas(p)
	return image.Pt(max(c.X, 1), max(c.Y, 1))
}

// indexAt returns the index of the rectangle containing p, or -1.
func indexAt(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
