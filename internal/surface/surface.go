package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the size of one stored pixel (B, G, R).
const BytesPerPixel = 3

// maxBufferBytes caps the backing buffer so a bogus display size cannot
// request an absurd allocation.
const maxBufferBytes = 1 << 31

// ErrAllocation reports that the backing pixel buffer could not be created.
var ErrAllocation = errors.New("pixel surface allocation failed")

// Color is an opaque 24-bit RGB value.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// Background is the color of canvas area that was never painted.
var Background = White

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 255}.RGBA()
}

// Hex formats the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// FromColor converts any color to an opaque Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Decode reads the pixel stored at off in pix.
func Decode(pix []byte, off int) Color {
	return Color{R: pix[off+2], G: pix[off+1], B: pix[off]}
}

func encode(pix []byte, off int, c Color) {
	pix[off] = c.B
	pix[off+1] = c.G
	pix[off+2] = c.R
}

// Surface is a fixed capacity 24-bit raster. The visible canvas is the
// top-left Size() sub-rectangle of the MaxSize() buffer; pixels outside the
// canvas are kept so growing the canvas again shows them.
type Surface struct {
	max    image.Point
	size   image.Point
	stride int
	pix    []byte
}

// Stride returns the row length in bytes, padded to a 4-byte boundary.
func Stride(width int) int {
	return (BytesPerPixel*width + 3) &^ 3
}

// New allocates a white surface with capacity max. The initial canvas covers
// the whole buffer.
func New(max image.Point) (*Surface, error) {
	if max.X <= 0 || max.Y <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, max.X, max.Y)
	}
	stride := Stride(max.X)
	if int64(stride)*int64(max.Y) > maxBufferBytes {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d bytes", ErrAllocation, max.X, max.Y, maxBufferBytes)
	}
	s := &Surface{
		max:    max,
		size:   max,
		stride: stride,
		pix:    make([]byte, stride*max.Y),
	}
	for i := range s.pix {
		s.pix[i] = 0xff
	}
	return s, nil
}

func (s *Surface) MaxSize() image.Point { return s.max }

func (s *Surface) Size() image.Point { return s.size }

func (s *Surface) Stride() int { return s.stride }

// Bounds returns the visible canvas rectangle.
func (s *Surface) Bounds() image.Rectangle { return image.Rectangle{Max: s.size} }

// Pix exposes the backing buffer. Callers must not retain it across Resize.
func (s *Surface) Pix() []byte { return s.pix }

// Resize changes the visible canvas size without touching pixel data. The
// size is clamped into [1, MaxSize].
func (s *Surface) Resize(size image.Point) image.Point {
	s.size = s.Clamp(size)
	return s.size
}

// Clamp limits size to the range a canvas may take on this surface.
func (s *Surface) Clamp(size image.Point) image.Point {
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	if size.X > s.max.X {
		size.X = s.max.X
	}
	if size.Y > s.max.Y {
		size.Y = s.max.Y
	}
	return size
}

// Offset returns the byte offset of pixel (x, y).
func (s *Surface) Offset(x, y int) int {
	if x < 0 || y < 0 || x >= s.max.X || y >= s.max.Y {
		panic(fmt.Sprintf("surface: pixel (%d,%d) outside %v", x, y, s.max))
	}
	return y*s.stride + x*BytesPerPixel
}

func (s *Surface) At(x, y int) Color {
	return Decode(s.pix, s.Offset(x, y))
}

// Set writes c at (x, y). Writes outside the current canvas but inside the
// buffer are kept.
func (s *Surface) Set(x, y int, c Color) {
	encode(s.pix, s.Offset(x, y), c)
}

func (s *Surface) ColorAtOffset(off int) Color {
	return Decode(s.pix, off)
}

func (s *Surface) SetAtOffset(off int, c Color) {
	encode(s.pix, off, c)
}

// FillRect paints r, clipped to the buffer, with c.
func (s *Surface) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(image.Rectangle{Max: s.max})
	if r.Empty() {
		return
	}
	row := make([]byte, r.Dx()*BytesPerPixel)
	for i := 0; i < len(row); i += BytesPerPixel {
		encode(row, i, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*s.stride + r.Min.X*BytesPerPixel
		copy(s.pix[off:off+len(row)], row)
	}
}

// Clear fills the whole buffer, hidden area included, with the background.
func (s *Surface) Clear() {
	s.FillRect(image.Rectangle{Max: s.max}, Background)
}

// Blit copies the canvas region starting at src into r of dst. Only pixels
// inside the current canvas are copied.
func (s *Surface) Blit(dst *image.RGBA, r image.Rectangle, src image.Point) {
	r = r.Intersect(dst.Bounds())
	srcRect := image.Rectangle{Min: src, Max: src.Add(r.Size())}.Intersect(s.Bounds())
	if srcRect.Empty() {
		return
	}
	r = image.Rectangle{Min: r.Min.Add(srcRect.Min.Sub(src)), Max: r.Min.Add(srcRect.Max.Sub(src))}
	for y := 0; y < r.Dy(); y++ {
		so := (srcRect.Min.Y+y)*s.stride + srcRect.Min.X*BytesPerPixel
		do := dst.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < r.Dx(); x++ {
			dst.Pix[do] = s.pix[so+2]
			dst.Pix[do+1] = s.pix[so+1]
			dst.Pix[do+2] = s.pix[so]
			dst.Pix[do+3] = 0xff
			so += BytesPerPixel
			do += 4
		}
	}
}

// Image returns a read-only view of the current canvas.
func (s *Surface) Image() image.Image {
	return canvasImage{s: s, size: s.size}
}

type canvasImage struct {
	s    *Surface
	size image.Point
}

func (c canvasImage) ColorModel() color.Model { return color.RGBAModel }

func (c canvasImage) Bounds() image.Rectangle { return image.Rectangle{Max: c.size} }

func (c canvasImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= c.size.X || y >= c.size.Y {
		return color.RGBA{}
	}
	p := c.s.At(x, y)
	return color.RGBA{p.R, p.G, p.B, 255}
}

// Opaque reports that every pixel is fully opaque.
func (c canvasImage) Opaque() bool { return true }

// ToRGBA copies the current canvas into a new RGBA image.
func (s *Surface) ToRGBA() *image.RGBA {
	img := image.NewRGBA(s.Bounds())
	s.Blit(img, img.Bounds(), image.Point{})
	return img
}
