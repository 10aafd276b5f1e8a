package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/simplepaint/internal/document"
	"github.com/example/simplepaint/internal/render"
	"github.com/example/simplepaint/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// label draws text vertically centred in r, left padded by pad.
type label struct {
	text string
	face font.Face
	pad  int
}

func (l label) draw(dst *image.RGBA, r image.Rectangle, col color.Color) {
	m := l.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	y := r.Min.Y + (r.Dy()-ascent-descent)/2 + ascent
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: l.face, Dot: fixed.P(r.Min.X+l.pad, y)}
	d.DrawString(l.text)
}

func buttonColors(th *theme.Theme, state ButtonState) (bg, fg color.RGBA) {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover, th.ButtonTextHover
	case StatePressed:
		return th.ButtonBackgroundPress, th.ButtonTextPress
	}
	return th.ButtonBackground, th.ButtonText
}

// ToolButton selects a painting tool.
type ToolButton struct {
	label
	tool     document.Tool
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func(document.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(tb.theme, state)
	render.FillRect(dst, tb.rect, bg)
	render.Rect(dst, tb.rect, tb.theme.ButtonBorder, 1)
	tb.label.draw(dst, tb.rect, fg)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

// WidthButton selects a stroke width and previews it with a line in the pen
// color. The preview color changes often so it is not cached.
type WidthButton struct {
	label
	width    int
	color    color.Color
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func(int)
}

func (wb *WidthButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(wb.theme, state)
	render.FillRect(dst, wb.rect, bg)
	wb.label.draw(dst, wb.rect, fg)
	y := (wb.rect.Min.Y + wb.rect.Max.Y) / 2
	x0 := wb.rect.Min.X + wb.rect.Dx()/2
	render.Line(dst, x0, y, wb.rect.Max.X-wb.pad-1, y, wb.color, wb.width)
}

func (wb *WidthButton) Rect() image.Rectangle { return wb.rect }

func (wb *WidthButton) SetRect(r image.Rectangle) { wb.rect = r }

func (wb *WidthButton) Activate() {
	if wb.onSelect != nil {
		wb.onSelect(wb.width)
	}
}

// Shortcut is a clickable key hint in the status bar.
type Shortcut struct {
	label
	action string
	theme  *theme.Theme
	rect   image.Rectangle
	run    func(string)
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(s.theme, state)
	render.FillRect(dst, s.rect, bg)
	render.Rect(dst, s.rect, s.theme.ButtonBorder, 1)
	s.label.draw(dst, s.rect, fg)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.run != nil {
		s.run(s.action)
	}
}
