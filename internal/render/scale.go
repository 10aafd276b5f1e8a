package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// BaseDPI is the DPI at which UI metrics are specified.
const BaseDPI = 96

// Scale converts px specified at BaseDPI to device pixels at dpi.
func Scale(px int, dpi float64) int {
	if dpi <= 0 {
		return px
	}
	v := int(math.Round(float64(px) * dpi / BaseDPI))
	if px > 0 && v < 1 {
		v = 1
	}
	return v
}

// View places the canvas in the window at Origin, magnified by Zoom.
type View struct {
	Origin image.Point
	Zoom   int
}

func (v View) zoom() int {
	if v.Zoom < 1 {
		return 1
	}
	return v.Zoom
}

// Rect is the window rectangle covered by a canvas of size.
func (v View) Rect(size image.Point) image.Rectangle {
	z := v.zoom()
	return image.Rectangle{Max: size.Mul(z)}.Add(v.Origin)
}

// ToCanvas maps a window point to canvas coordinates. Points left of or
// above the origin map to negative coordinates.
func (v View) ToCanvas(p image.Point) image.Point {
	z := v.zoom()
	d := p.Sub(v.Origin)
	return image.Pt(floorDiv(d.X, z), floorDiv(d.Y, z))
}

// ToWindow maps a canvas coordinate to the window.
func (v View) ToWindow(p image.Point) image.Point {
	return p.Mul(v.zoom()).Add(v.Origin)
}

// Blit draws src into dst at the view's origin and magnification.
func (v View) Blit(dst draw.Image, src image.Image) image.Rectangle {
	sb := src.Bounds()
	r := v.Rect(sb.Size())
	if v.zoom() == 1 {
		draw.Draw(dst, r, src, sb.Min, draw.Src)
		return r
	}
	xdraw.NearestNeighbor.Scale(dst, r, src, sb, draw.Src, nil)
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
