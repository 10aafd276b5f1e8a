package appstate

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/simplepaint/internal/clipboard"
	"github.com/example/simplepaint/internal/document"
	"github.com/example/simplepaint/internal/surface"
)

const (
	messageDuration = 2 * time.Second
	maxZoom         = 8
	resizeStep      = 10
)

var (
	writeImage = clipboard.WriteImage
	writeText  = clipboard.WriteText
)

// controller turns window events into document calls. It runs on the event
// goroutine only.
type controller struct {
	a    *AppState
	doc  *document.Document
	keys keymap

	prompt       prompt
	help         bool
	message      string
	messageUntil time.Time

	zoom    int
	pointer image.Point

	hoverTool   int
	hoverSwatch int
	hoverWidth  int
	hoverHint   int

	quit    bool
	repaint func()
	now     func() time.Time
}

func newController(a *AppState) *controller {
	return &controller{
		a:           a,
		doc:         a.doc,
		keys:        defaultKeymap(),
		zoom:        1,
		hoverTool:   -1,
		hoverSwatch: -1,
		hoverWidth:  -1,
		hoverHint:   -1,
		now:         time.Now,
	}
}

func (c *controller) flash(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
	if c.repaint != nil {
		time.AfterFunc(messageDuration, c.repaint)
	}
}

func (c *controller) messageVisible() bool {
	return c.message != "" && c.now().Before(c.messageUntil)
}

func (c *controller) key(e key.Event) {
	if e.Direction == key.DirRelease {
		return
	}
	if c.prompt.active() {
		if res := c.prompt.handleKey(e); res.done {
			c.answer(res)
		}
		return
	}
	if c.help {
		c.help = false
		if e.Code == key.CodeEscape {
			return
		}
	}
	action, ok := c.keys.lookup(e)
	if !ok {
		return
	}
	c.run(action)
}

func (c *controller) mouse(e mouse.Event, l layout) {
	p := image.Pt(int(e.X), int(e.Y))
	c.pointer = p
	if e.Direction == mouse.DirPress {
		c.messageUntil = time.Time{}
		if c.prompt.active() || c.help {
			c.help = false
			return
		}
	}
	if c.prompt.active() {
		return
	}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft || c.doc.Dragging() || c.doc.Resizing() {
			return
		}
		c.press(p, l)
	case mouse.DirNone:
		c.hoverTool = indexAt(l.tools, p)
		c.hoverSwatch = indexAt(l.swatches, p)
		c.hoverWidth = indexAt(l.widths, p)
		c.hoverHint = indexAt(l.hints, p)
		if c.doc.Resizing() {
			c.doc.ResizeTo(l.resizeTarget(p))
			return
		}
		c.doc.PointerMove(l.view.ToCanvas(p))
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return
		}
		if c.doc.Resizing() {
			c.doc.EndResize(l.resizeTarget(p))
			return
		}
		c.doc.PointerUp(l.view.ToCanvas(p))
	}
}

func (c *controller) press(p image.Point, l layout) {
	if i := indexAt(l.tools, p); i >= 0 {
		c.doc.SelectTool(document.Tools()[i])
		return
	}
	if i := indexAt(l.swatches, p); i >= 0 {
		if pc, ok := paletteAt(i); ok {
			c.doc.SetPenColor(surface.FromColor(pc.Color))
		}
		return
	}
	if i := indexAt(l.widths, p); i >= 0 {
		c.setWidth(document.Widths()[i])
		return
	}
	if i := indexAt(l.hints, p); i >= 0 && i < len(statusHints) {
		c.run(statusHints[i].action)
		return
	}
	if p.In(l.gripRect(c.doc.Size())) {
		c.doc.BeginResize()
		return
	}
	c.doc.PointerDown(l.view.ToCanvas(p))
}

// captureLost ends whatever the pointer was doing as if it had been released.
func (c *controller) captureLost() {
	if c.doc.Resizing() {
		c.doc.EndResize(c.doc.Size())
	}
	c.doc.CaptureLost()
}

func (c *controller) run(action string) {
	switch action {
	case actUndo:
		c.doc.Undo()
	case actRedo:
		c.doc.Redo()
	case actCancel:
		if c.doc.Resizing() {
			c.doc.AbortResize()
			return
		}
		c.doc.Cancel()
	case actSave:
		c.requestSave("")
	case actSaveAs:
		c.prompt = pathPrompt(c.defaultPath(), "")
	case actNew:
		c.confirm(actNew)
	case actQuit:
		c.confirm(actQuit)
	case actNewWindow:
		c.openWindow()
	case actCopy:
		c.copyCanvas()
	case actCopyColor:
		hex := c.doc.PenColor().Hex()
		if err := writeText(hex); err != nil {
			log.Printf("copy color: %v", err)
			c.flash("copy failed")
			return
		}
		c.flash(fmt.Sprintf("copied %s", hex))
	case actPen:
		c.doc.SelectTool(document.ToolPen)
	case actEraser:
		c.doc.SelectTool(document.ToolEraser)
	case actFill:
		c.doc.SelectTool(document.ToolFill)
	case actPicker:
		c.doc.SelectTool(document.ToolColorPicker)
	case actZoomIn:
		c.zoom = min(c.zoom*2, maxZoom)
	case actZoomOut:
		c.zoom = max(c.zoom/2, 1)
	case actWider:
		c.resizeBy(image.Pt(resizeStep, 0))
	case actNarrower:
		c.resizeBy(image.Pt(-resizeStep, 0))
	case actTaller:
		c.resizeBy(image.Pt(0, resizeStep))
	case actShorter:
		c.resizeBy(image.Pt(0, -resizeStep))
	case actShowHelp:
		c.help = !c.help
	default:
		if s, ok := strings.CutPrefix(action, actWidth); ok {
			if w, err := strconv.Atoi(s); err == nil {
				c.setWidth(w)
			}
		}
	}
}

func (c *controller) setWidth(w int) {
	if err := c.doc.SetToolWidth(w); err != nil {
		log.Printf("width: %v", err)
	}
}

func (c *controller) resizeBy(delta image.Point) {
	size := c.doc.Size().Add(delta)
	if size.X < 1 || size.Y < 1 {
		return
	}
	if _, err := c.doc.SetCanvasSize(size); err != nil {
		log.Printf("resize: %v", err)
	}
}

func (c *controller) copyCanvas() {
	img := c.doc.Surface().ToRGBA()
	if err := writeImage(img); err != nil {
		log.Printf("copy: %v", err)
		c.flash("copy failed")
		return
	}
	c.flash("canvas copied to clipboard")
	log.Print(c.message)
	if c.a.notifier != nil {
		c.a.notifier.Copy(c.doc.SizeText(), img)
	}
}

func (c *controller) openWindow() {
	if c.a.newWindow == nil {
		return
	}
	if err := c.a.newWindow(); err != nil {
		log.Printf("new window: %v", err)
		c.flash("could not open a new window")
	}
}

// defaultPath is where a save without an explicit path goes.
func (c *controller) defaultPath() string {
	if p := c.doc.Path(); p != "" {
		return p
	}
	if c.a.output != "" {
		return c.a.output
	}
	return filepath.Join(c.a.saveDir, c.doc.Name()+".bmp")
}

// requestSave saves to the known path or asks for one. then is resumed after
// a successful save.
func (c *controller) requestSave(then string) {
	if c.doc.Path() == "" && c.a.output == "" {
		c.prompt = pathPrompt(c.defaultPath(), then)
		return
	}
	if err := c.saveTo(c.defaultPath()); err == nil && then != "" {
		c.resume(then)
	}
}

func (c *controller) saveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("save: %v", err)
			c.flash(err.Error())
			return err
		}
	}
	if err := c.doc.Save(path); err != nil {
		log.Printf("%v", err)
		c.flash(err.Error())
		return err
	}
	c.flash(fmt.Sprintf("saved %s", path))
	log.Print(c.message)
	if c.a.notifier != nil {
		c.a.notifier.Save(path)
	}
	return nil
}

// confirm runs then right away when nothing would be lost, otherwise asks
// about the unsaved changes first.
func (c *controller) confirm(then string) {
	if c.doc.Dragging() || c.doc.Resizing() {
		return
	}
	if !c.doc.Dirty() {
		c.resume(then)
		return
	}
	c.prompt = unsavedPrompt(c.doc.Name(), then)
}

func (c *controller) answer(res promptResult) {
	p := c.prompt
	c.prompt = prompt{}
	switch p.kind {
	case promptUnsaved:
		if res.choice == document.ChoiceSave && !c.doc.Saved() && c.a.output == "" {
			// Never written anywhere: ask where instead of picking a file.
			c.prompt = pathPrompt(c.defaultPath(), p.then)
			return
		}
		ok, err := c.doc.ResolveUnsaved(res.choice, func() error {
			return c.saveTo(c.defaultPath())
		})
		if ok {
			c.resume(p.then)
			return
		}
		if err != nil && !errors.Is(err, document.ErrSaveCancelled) {
			log.Printf("unsaved changes kept: %v", err)
		}
	case promptPath:
		if res.choice != document.ChoiceSave {
			return
		}
		if err := c.saveTo(res.path); err == nil && p.then != "" {
			c.resume(p.then)
		}
	}
}

func (c *controller) resume(action string) {
	switch action {
	case actNew:
		c.doc.Reset()
		c.zoom = 1
	case actQuit:
		c.quit = true
	}
}

// paintState captures the current state for the paint goroutine.
func (c *controller) paintState(l layout, f *faces) paintState {
	d := c.doc
	width := d.PenWidth()
	if d.Tool() == document.ToolEraser {
		width = d.EraserWidth()
	}
	pen := d.PenColor()
	st := paintState{
		layout:      l,
		theme:       c.a.theme,
		faces:       f,
		canvas:      d.Surface().ToRGBA(),
		title:       d.Title(),
		coords:      d.CoordinateText(l.view.ToCanvas(c.pointer)),
		sizeText:    d.SizeText(),
		tool:        d.Tool(),
		width:       width,
		colorIdx:    PaletteIndex(pen),
		hoverTool:   c.hoverTool,
		hoverSwatch: c.hoverSwatch,
		hoverWidth:  c.hoverWidth,
		hoverHint:   c.hoverHint,
		resizing:    d.Resizing(),
		prompt:      c.prompt,
		help:        c.help,
	}
	st.penColor.R, st.penColor.G, st.penColor.B, st.penColor.A = pen.R, pen.G, pen.B, 255
	if c.messageVisible() {
		st.message = c.message
		st.messageUntil = c.messageUntil
	}
	return st
}

// layout computes the geometry for a window of size.
func (c *controller) layout(size image.Point, face font.Face) layout {
	labels := make([]string, len(statusHints))
	for i, h := range statusHints {
		labels[i] = h.label
	}
	return newLayout(size, c.a.dpi, c.zoom, len(document.Tools()), len(PaletteColors()), len(document.Widths()), face, labels)
}
