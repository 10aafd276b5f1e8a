// Package document owns one editable canvas: its pixel surface, the active
// tool, the pointer gesture in flight and the undo/redo history.
package document

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/example/simplepaint/internal/bitmap"
	"github.com/example/simplepaint/internal/history"
	"github.com/example/simplepaint/internal/surface"
)

// AppName is appended to window titles.
const AppName = "Simple Paint"

// DefaultName is the file name of a document that was never saved.
const DefaultName = "Untitled"

// DefaultPenColor is the initial pen color.
var DefaultPenColor = surface.Color{R: 0, G: 99, B: 177}

// ErrSaveCancelled is returned when an unsaved-changes prompt is cancelled.
var ErrSaveCancelled = errors.New("cancelled")

// State is the gesture state of the pointer.
type State int

const (
	StateIdle State = iota
	StateDragging
)

// Document is not safe for concurrent use. The window shell drives it from a
// single event goroutine.
type Document struct {
	surf *surface.Surface
	hist *history.Stack

	tool        Tool
	prevTool    Tool
	penColor    surface.Color
	penWidth    int
	eraserWidth int

	state   State
	pressed bool
	last    image.Point
	stroke  *surface.Snapshot

	resizing bool
	resize   *surface.Snapshot

	dirty bool
	path  string
	saved bool

	onChange func(*Document)
}

// Option configures a Document during creation.
type Option func(*Document) error

// WithCanvasSize sets the initial canvas size. It is clamped to the surface.
func WithCanvasSize(size image.Point) Option {
	return func(d *Document) error {
		d.surf.Resize(size)
		return nil
	}
}

func WithPenColor(c surface.Color) Option {
	return func(d *Document) error { d.penColor = c; return nil }
}

func WithPenWidth(w int) Option {
	return func(d *Document) error { return d.SetPenWidth(w) }
}

func WithEraserWidth(w int) Option {
	return func(d *Document) error { return d.SetEraserWidth(w) }
}

// WithHistoryLimit bounds the undo depth. Zero means unbounded.
func WithHistoryLimit(n int) Option {
	return func(d *Document) error {
		d.hist = history.NewStack(n)
		return nil
	}
}

// WithOnChange registers a callback run after every state change the shell
// may want to reflect (history, dirty flag, size, tool, color).
func WithOnChange(fn func(*Document)) Option {
	return func(d *Document) error { d.onChange = fn; return nil }
}

// New allocates the surface with capacity max and applies opts. Allocation
// failure is reported as surface.ErrAllocation.
func New(max image.Point, opts ...Option) (*Document, error) {
	s, err := surface.New(max)
	if err != nil {
		return nil, err
	}
	d := &Document{
		surf:        s,
		hist:        history.NewStack(0),
		tool:        ToolPen,
		prevTool:    ToolPen,
		penColor:    DefaultPenColor,
		penWidth:    DefaultWidth,
		eraserWidth: DefaultWidth,
	}
	for _, o := range opts {
		if err := o(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// SetOnChange replaces the change callback.
func (d *Document) SetOnChange(fn func(*Document)) { d.onChange = fn }

func (d *Document) changed() {
	if d.onChange != nil {
		d.onChange(d)
	}
}

// Surface exposes the pixel surface for presentation.
func (d *Document) Surface() *surface.Surface { return d.surf }

func (d *Document) Size() image.Point { return d.surf.Size() }

func (d *Document) MaxSize() image.Point { return d.surf.MaxSize() }

func (d *Document) Tool() Tool { return d.tool }

func (d *Document) PenColor() surface.Color { return d.penColor }

func (d *Document) PenWidth() int { return d.penWidth }

func (d *Document) EraserWidth() int { return d.eraserWidth }

func (d *Document) State() State { return d.state }

func (d *Document) Dragging() bool { return d.state == StateDragging }

func (d *Document) Resizing() bool { return d.resizing }

func (d *Document) CanUndo() bool { return d.hist.CanUndo() }

func (d *Document) CanRedo() bool { return d.hist.CanRedo() }

// History exposes the patch stacks, mostly for inspection.
func (d *Document) History() *history.Stack { return d.hist }

// Dirty reports unsaved changes.
func (d *Document) Dirty() bool { return d.dirty }

// Path is the file the document was last saved to.
func (d *Document) Path() string { return d.path }

// Saved reports whether the document was ever written to disk.
func (d *Document) Saved() bool { return d.saved }

// Name is the display name: the saved file name without extension.
func (d *Document) Name() string {
	if d.path == "" {
		return DefaultName
	}
	base := filepath.Base(d.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Title formats the window title.
func (d *Document) Title() string {
	name := d.Name()
	if d.dirty {
		name = "*" + name
	}
	return name + " - " + AppName
}

// SizeText describes the canvas size for the status bar.
func (d *Document) SizeText() string {
	sz := d.surf.Size()
	return fmt.Sprintf("Canvas Size: %d × %d px", sz.X, sz.Y)
}

// CoordinateText describes a pointer position for the status bar. It is empty
// when p is outside the canvas. Coordinates are shown 1-based.
func (d *Document) CoordinateText(p image.Point) string {
	if !p.In(d.surf.Bounds()) {
		return ""
	}
	return fmt.Sprintf("Mouse Coordinate: %d × %d px", p.X+1, p.Y+1)
}

// SelectTool switches tools. Choosing the color picker remembers the tool it
// replaced so it can be restored after a pick. Ignored mid-gesture.
func (d *Document) SelectTool(t Tool) {
	if d.state == StateDragging {
		return
	}
	if t == ToolColorPicker {
		if d.tool != ToolColorPicker {
			d.prevTool = d.tool
		}
	} else {
		d.prevTool = t
	}
	d.tool = t
	d.pressed = false
	d.changed()
}

// SetPenColor changes the color used by the pen and the fill tool.
func (d *Document) SetPenColor(c surface.Color) {
	d.penColor = c
	d.changed()
}

func (d *Document) SetPenWidth(w int) error {
	if err := validWidth(w); err != nil {
		return err
	}
	d.penWidth = w
	d.changed()
	return nil
}

func (d *Document) SetEraserWidth(w int) error {
	if err := validWidth(w); err != nil {
		return err
	}
	d.eraserWidth = w
	d.changed()
	return nil
}

// SetToolWidth sets the width of the pen or eraser, whichever is active.
// Other tools use the pen width.
func (d *Document) SetToolWidth(w int) error {
	if d.tool == ToolEraser {
		return d.SetEraserWidth(w)
	}
	return d.SetPenWidth(w)
}

// Undo reverts the most recent edit. It does nothing while a gesture or a
// resize is in progress or when there is nothing to undo.
func (d *Document) Undo() bool {
	if d.busy() || !d.hist.Undo(d.surf) {
		return false
	}
	d.dirty = true
	d.changed()
	return true
}

// Redo re-applies the most recently undone edit.
func (d *Document) Redo() bool {
	if d.busy() || !d.hist.Redo(d.surf) {
		return false
	}
	d.dirty = true
	d.changed()
	return true
}

func (d *Document) busy() bool {
	return d.state == StateDragging || d.resizing
}

func (d *Document) record(p history.Patch) {
	d.hist.Record(p)
	d.dirty = true
}

// Reset clears the canvas to background and forgets all history. A stroke in
// flight is dropped and an interactive resize is aborted, returning the canvas
// to its size before the resize began; otherwise the canvas size is kept. The
// whole backing buffer is cleared, so pixels hidden by an earlier shrink do
// not come back when the canvas grows again.
func (d *Document) Reset() {
	d.releaseStroke()
	if d.resizing {
		d.surf.Resize(d.resize.Size())
		d.releaseResize()
		d.resizing = false
	}
	d.state = StateIdle
	d.pressed = false
	d.surf.Clear()
	d.hist.Clear()
	d.dirty = false
	d.changed()
}

// Save writes the canvas to path as a 24-bit bitmap. On failure the document
// is left untouched and the OS error is returned.
func (d *Document) Save(path string) error {
	if err := bitmap.Save(path, d.surf.Image()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.path = path
	d.saved = true
	d.dirty = false
	d.changed()
	return nil
}

// Choice is an answer to an unsaved-changes prompt.
type Choice int

const (
	ChoiceSave Choice = iota
	ChoiceDiscard
	ChoiceCancel
)

// ResolveUnsaved applies the user's answer to an unsaved-changes prompt. It
// reports whether the triggering action may proceed. With ChoiceSave, save is
// called and the action proceeds only when it succeeded.
func (d *Document) ResolveUnsaved(choice Choice, save func() error) (bool, error) {
	switch choice {
	case ChoiceDiscard:
		return true, nil
	case ChoiceSave:
		if save == nil {
			return false, errors.New("no save handler")
		}
		if err := save(); err != nil {
			return false, err
		}
		return !d.dirty, nil
	default:
		return false, ErrSaveCancelled
	}
}

// ConfirmDiscard asks before dropping unsaved changes. ask is only called when
// the document is dirty.
func (d *Document) ConfirmDiscard(ask func(name string) Choice, save func() error) (bool, error) {
	if !d.dirty {
		return true, nil
	}
	return d.ResolveUnsaved(ask(d.Name()), save)
}

// NewDocument resets the canvas after confirming that unsaved changes may be
// dropped. Cancelling leaves everything as it was.
func (d *Document) NewDocument(ask func(name string) Choice, save func() error) (bool, error) {
	ok, err := d.ConfirmDiscard(ask, save)
	if !ok {
		return false, err
	}
	d.Reset()
	return true, nil
}
