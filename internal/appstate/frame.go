package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/simplepaint/internal/document"
	"github.com/example/simplepaint/internal/render"
	"github.com/example/simplepaint/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var parseGoRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// faces are the fonts used by the chrome, sized for the display DPI.
type faces struct {
	ui      font.Face
	message font.Face
}

func newFaces(dpi float64) (*faces, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	ui, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 9, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	msg, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return &faces{ui: ui, message: msg}, nil
}

// paintState is an immutable copy of everything a frame shows.
type paintState struct {
	layout layout
	theme  *theme.Theme
	faces  *faces

	canvas   *image.RGBA
	title    string
	coords   string
	sizeText string

	tool     document.Tool
	penColor color.RGBA
	width    int
	colorIdx int

	hoverTool   int
	hoverSwatch int
	hoverWidth  int
	hoverHint   int

	resizing bool
	prompt   prompt
	help     bool

	message      string
	messageUntil time.Time
}

// chrome holds the widgets owned by the paint goroutine.
type chrome struct {
	tools  []*CacheButton
	shadow *render.Shadow
	th     *theme.Theme
}

func newChrome(th *theme.Theme, face font.Face) *chrome {
	c := &chrome{th: th}
	for _, t := range document.Tools() {
		c.tools = append(c.tools, &CacheButton{Button: &ToolButton{
			label: label{text: toolLabel(t), face: face, pad: 4},
			tool:  t,
			theme: th,
		}})
	}
	opts := render.DefaultShadowOptions()
	opts.Color = th.CanvasShadow
	opts.Opacity = float64(th.CanvasShadow.A) / 255
	opts.Color.A = 255
	c.shadow = render.NewShadow(opts)
	return c
}

func toolLabel(t document.Tool) string {
	switch t {
	case document.ToolPen:
		return "P:Pen"
	case document.ToolEraser:
		return "E:Eraser"
	case document.ToolFill:
		return "F:Fill"
	case document.ToolColorPicker:
		return "K:Picker"
	}
	return t.String()
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, ch *chrome) {
	b, err := s.NewBuffer(st.layout.window)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	drawScene(ctx, b.RGBA(), st, ch)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawScene renders st into dst. It stops early when ctx is cancelled.
func drawScene(ctx context.Context, dst *image.RGBA, st paintState, ch *chrome) {
	th := st.theme
	l := st.layout
	render.FillRect(dst, dst.Bounds(), th.Background)

	canvasRect := l.canvasRect(st.canvas.Bounds().Size())
	ch.shadow.Draw(dst, canvasRect)
	l.view.Blit(dst, st.canvas)
	if st.resizing {
		render.DashedRect(dst, canvasRect.Inset(-1), l.px(4), th.ResizeOutline, th.Background)
	}
	render.Grip(dst, l.gripRect(st.canvas.Bounds().Size()), th.Grip)
	if ctx.Err() != nil {
		return
	}

	render.FillRect(dst, l.title, th.ToolbarBackground)
	label{text: st.title, face: st.faces.ui, pad: l.px(6)}.draw(dst, l.title, th.Foreground)

	drawToolbar(dst, st, ch)
	if ctx.Err() != nil {
		return
	}
	drawStatus(dst, st)

	switch {
	case st.prompt.active():
		drawOverlay(dst, st, []string{st.prompt.text()})
	case st.help:
		drawOverlay(dst, st, helpText)
	case st.message != "" && time.Now().Before(st.messageUntil):
		drawOverlay(dst, st, []string{st.message})
	}
}

func drawToolbar(dst *image.RGBA, st paintState, ch *chrome) {
	th := st.theme
	l := st.layout
	render.FillRect(dst, l.toolbar, th.ToolbarBackground)

	for i, cb := range ch.tools {
		if i >= len(l.tools) {
			break
		}
		cb.SetRect(l.tools[i])
		state := StateDefault
		if cb.Button.(*ToolButton).tool == st.tool {
			state = StatePressed
		} else if i == st.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, p := range PaletteColors() {
		if i >= len(l.swatches) {
			break
		}
		r := l.swatches[i]
		render.FillRect(dst, r, p.Color)
		render.Rect(dst, r, th.ButtonBorder, 1)
		if i == st.hoverSwatch {
			render.Rect(dst, r.Inset(-1), th.ButtonBackgroundHover, 1)
		}
		if i == st.colorIdx {
			render.Rect(dst, r.Inset(-2), th.Foreground, 2)
		}
	}

	for i, width := range document.Widths() {
		if i >= len(l.widths) {
			break
		}
		wb := &WidthButton{
			label: label{text: fmt.Sprintf("%d", width), face: st.faces.ui, pad: l.px(4)},
			width: width,
			color: st.penColor,
			theme: th,
			rect:  l.widths[i],
		}
		state := StateDefault
		if width == st.width {
			state = StatePressed
		} else if i == st.hoverWidth {
			state = StateHover
		}
		wb.Draw(dst, state)
	}
}

func drawStatus(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	render.FillRect(dst, l.status, th.StatusBackground)

	text := st.sizeText
	if st.coords != "" {
		text = st.coords + "    " + text
	}
	label{text: text, face: st.faces.ui, pad: 0}.draw(dst, l.statusText, th.StatusText)

	for i, h := range statusHints {
		if i >= len(l.hints) {
			break
		}
		sc := &Shortcut{
			label:  label{text: h.label, face: st.faces.ui, pad: l.px(4)},
			action: h.action,
			theme:  th,
			rect:   l.hints[i],
		}
		state := StateDefault
		if i == st.hoverHint {
			state = StateHover
		}
		sc.Draw(dst, state)
	}
}

// drawOverlay draws lines of text in a bordered box in the middle of the
// window.
func drawOverlay(dst *image.RGBA, st paintState, lines []string) {
	th := st.theme
	face := st.faces.message
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	lineH := ascent + descent + st.layout.px(4)

	wmax := 0
	for _, s := range lines {
		wmax = max(wmax, font.MeasureString(face, s).Ceil())
	}
	pad := st.layout.px(10)
	size := st.layout.window
	boxW, boxH := wmax+2*pad, lineH*len(lines)+2*pad
	x0, y0 := (size.X-boxW)/2, (size.Y-boxH)/2
	box := image.Rect(x0, y0, x0+boxW, y0+boxH)

	draw.Draw(dst, box, image.NewUniform(th.PromptBackground), image.Point{}, draw.Over)
	render.Rect(dst, box, th.PromptBorder, st.layout.px(2))
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PromptText), Face: face}
	for i, s := range lines {
		d.Dot = fixed.P(x0+pad, y0+pad+i*lineH+ascent)
		d.DrawString(s)
	}
}
