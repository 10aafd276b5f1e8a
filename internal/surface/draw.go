package surface

import "image"

// brushSpan returns the offsets covered by a square brush of the given width.
// Width 1 covers only the center pixel.
func brushSpan(width int) (lo, hi int) {
	if width < 1 {
		width = 1
	}
	return -(width - 1) / 2, width / 2
}

// Stamp paints a width x width square centred on (x, y), clipped to the
// current canvas.
func (s *Surface) Stamp(x, y, width int, c Color) {
	lo, hi := brushSpan(width)
	r := image.Rect(x+lo, y+lo, x+hi+1, y+hi+1).Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	for py := r.Min.Y; py < r.Max.Y; py++ {
		off := py*s.stride + r.Min.X*BytesPerPixel
		for px := r.Min.X; px < r.Max.X; px++ {
			encode(s.pix, off, c)
			off += BytesPerPixel
		}
	}
}

// DrawLine draws a connected line from (x0, y0) to (x1, y1) inclusive with a
// square brush. Pixels outside the current canvas are skipped.
func (s *Surface) DrawLine(x0, y0, x1, y1 int, c Color, width int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		s.Stamp(x0, y0, width, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FloodFill replaces the 4-connected region of pixels matching the color at
// (x, y) with c. The fill never leaves the current canvas. It returns the
// number of pixels painted.
func (s *Surface) FloodFill(x, y int, c Color) int {
	if !(image.Point{x, y}).In(s.Bounds()) {
		return 0
	}
	target := s.At(x, y)
	if target == c {
		return 0
	}
	w, h := s.size.X, s.size.Y
	match := func(px, py int) bool {
		return Decode(s.pix, py*s.stride+px*BytesPerPixel) == target
	}
	filled := 0
	stack := []image.Point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !match(p.X, p.Y) {
			continue
		}
		left := p.X
		for left > 0 && match(left-1, p.Y) {
			left--
		}
		right := p.X
		for right < w-1 && match(right+1, p.Y) {
			right++
		}
		for px := left; px <= right; px++ {
			encode(s.pix, p.Y*s.stride+px*BytesPerPixel, c)
			filled++
		}
		for _, ny := range [2]int{p.Y - 1, p.Y + 1} {
			if ny < 0 || ny >= h {
				continue
			}
			inRun := false
			for px := left; px <= right; px++ {
				if match(px, ny) {
					if !inRun {
						stack = append(stack, image.Point{px, ny})
						inRun = true
					}
				} else {
					inRun = false
				}
			}
		}
	}
	return filled
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
