// Package appstate is the window shell of the paint program. It turns shiny
// window events into calls on a document.Document and draws the canvas with
// its toolbar, status bar and inline prompts.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/simplepaint/internal/document"
	"github.com/example/simplepaint/internal/notify"
	"github.com/example/simplepaint/internal/render"
	"github.com/example/simplepaint/internal/theme"
)

// AppState holds application configuration for the UI.
type AppState struct {
	doc       *document.Document
	output    string
	saveDir   string
	theme     *theme.Theme
	dpi       float64
	notifier  *notify.Notifier
	newWindow func() error

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithOutput sets the file used by save before any path was chosen.
func WithOutput(out string) Option { return func(a *AppState) { a.output = out } }

// WithSaveDir sets the directory proposed by the save prompt.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.saveDir = dir } }

// WithTheme sets the UI colors.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.theme = th } }

// WithDPI sets the display DPI used to scale the chrome.
func WithDPI(dpi float64) Option { return func(a *AppState) { a.dpi = dpi } }

// WithNotifier enables desktop notifications for saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithNewWindow registers the handler behind the new window shortcut.
func WithNewWindow(fn func() error) Option { return func(a *AppState) { a.newWindow = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState editing doc.
func New(doc *document.Document, opts ...Option) *AppState {
	a := &AppState{doc: doc, dpi: render.BaseDPI}
	for _, o := range opts {
		o(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.dpi <= 0 {
		a.dpi = render.BaseDPI
	}
	return a
}

// Document returns the document shown by the window.
func (a *AppState) Document() *document.Document { return a.doc }

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	fc, err := newFaces(a.dpi)
	if err != nil {
		log.Fatalf("%v", err)
	}
	c := newController(a)

	winSize := windowSize(a.doc.Size(), a.dpi)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: winSize.X, Height: winSize.Y, Title: a.doc.Title()})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	c.repaint = func() { w.Send(paint.Event{}) }
	a.doc.SetOnChange(func(*document.Document) { w.Send(paint.Event{}) })
	defer a.doc.SetOnChange(nil)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		ch := newChrome(a.theme, fc.ui)
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st, ch)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	lay := c.layout(winSize, fc.ui)
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				if a.doc.Dirty() {
					log.Printf("window closed with unsaved changes to %s", a.doc.Name())
				}
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				c.captureLost()
			}
		case size.Event:
			lay = c.layout(image.Pt(e.WidthPx, e.HeightPx), fc.ui)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := c.paintState(lay, fc)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			c.mouse(e, lay)
			w.Send(paint.Event{})
		case key.Event:
			c.key(e)
			if c.quit {
				stopPaint()
				return
			}
			lay = c.layout(lay.window, fc.ui)
			w.Send(paint.Event{})
		case error:
			log.Printf("window: %v", e)
		}
	}
}
