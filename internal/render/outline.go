package render

import (
	"image"
	"image/color"
	"image/draw"
)

// FillRect paints r with c, clipped to dst.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// Rect draws the outline of r, thick pixels wide, inside r.
func Rect(dst draw.Image, r image.Rectangle, c color.Color, thick int) {
	if thick < 1 {
		thick = 1
	}
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), c)
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// DashedRect outlines r with alternating dashes of c1 and c2, dash pixels
// long. It marks the pending canvas size during a resize drag.
func DashedRect(dst draw.Image, r image.Rectangle, dash int, c1, c2 color.Color) {
	if dash < 1 {
		dash = 1
	}
	pick := func(i int) color.Color {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	b := dst.Bounds()
	set := func(x, y int, c color.Color) {
		if image.Pt(x, y).In(b) {
			dst.Set(x, y, c)
		}
	}
	right, bottom := r.Max.X-1, r.Max.Y-1
	for i, x := 0, r.Min.X; x <= right; i, x = i+1, x+1 {
		set(x, r.Min.Y, pick(i))
		set(x, bottom, pick(i))
	}
	for i, y := 0, r.Min.Y; y <= bottom; i, y = i+1, y+1 {
		set(r.Min.X, y, pick(i))
		set(right, y, pick(i))
	}
}

// Line draws a straight segment with a square brush of thick pixels.
func Line(dst draw.Image, x0, y0, x1, y1 int, c color.Color, thick int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	half := thick / 2
	err := dx + dy
	for {
		FillRect(dst, image.Rect(x0-half, y0-half, x0-half+max(thick, 1), y0-half+max(thick, 1)), c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// GripRect is the resize handle square at the lower-right corner of canvas.
func GripRect(canvas image.Rectangle, size int) image.Rectangle {
	return image.Rect(canvas.Max.X, canvas.Max.Y, canvas.Max.X+size, canvas.Max.Y+size)
}

// Grip draws the resize handle as three diagonal ridges.
func Grip(dst draw.Image, r image.Rectangle, c color.Color) {
	n := r.Dx()
	for k := 1; k <= 3; k++ {
		off := n * k / 4
		Line(dst, r.Max.X-1-off, r.Max.Y-1, r.Max.X-1, r.Max.Y-1-off, c, 1)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
