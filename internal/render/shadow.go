// Package render holds the presentation helpers used by the window shell:
// the canvas drop shadow, outlines and the DPI-scaled canvas blit.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn behind the canvas.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	Color   color.RGBA
}

// DefaultShadowOptions returns a soft shadow offset to the lower right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  4,
		Offset:  image.Pt(3, 3),
		Opacity: 0.45,
		Color:   color.RGBA{A: 255},
	}
}

// Shadow renders the blurred shadow of rect and caches it per size.
type Shadow struct {
	opts ShadowOptions
	size image.Point
	mask *image.Gray
}

// NewShadow creates a Shadow renderer with opts.
func NewShadow(opts ShadowOptions) *Shadow {
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	if opts.Opacity > 1 {
		opts.Opacity = 1
	}
	return &Shadow{opts: opts}
}

// Bounds is the area of dst touched when drawing the shadow of rect.
func (s *Shadow) Bounds(rect image.Rectangle) image.Rectangle {
	return rect.Inset(-s.opts.Radius).Add(s.opts.Offset)
}

// Draw composites the shadow of rect onto dst. The caller draws the canvas on
// top afterwards.
func (s *Shadow) Draw(dst draw.Image, rect image.Rectangle) {
	if rect.Empty() || s.opts.Opacity <= 0 {
		return
	}
	if s.mask == nil || s.size != rect.Size() {
		s.mask = shadowMask(rect.Size(), s.opts.Radius)
		s.size = rect.Size()
	}
	c := s.opts.Color
	c.A = uint8(float64(c.A)*s.opts.Opacity + 0.5)
	if c.A == 0 {
		return
	}
	c.R = uint8(uint16(c.R) * uint16(c.A) / 255)
	c.G = uint8(uint16(c.G) * uint16(c.A) / 255)
	c.B = uint8(uint16(c.B) * uint16(c.A) / 255)
	draw.DrawMask(dst, s.Bounds(rect), image.NewUniform(c), image.Point{}, s.mask, image.Point{}, draw.Over)
}

func shadowMask(size image.Point, radius int) *image.Gray {
	padded := image.Rect(0, 0, size.X+2*radius, size.Y+2*radius)
	mask := image.NewGray(padded)
	inner := image.Rectangle{Max: size}.Add(image.Pt(radius, radius))
	draw.Draw(mask, inner, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	return blurGray(mask, radius)
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, w+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	prefix = make([]int, h+1)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
