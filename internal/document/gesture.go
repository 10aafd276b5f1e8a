package document

import (
	"image"

	"github.com/example/simplepaint/internal/history"
	"github.com/example/simplepaint/internal/surface"
)

// PointerDown starts a gesture at p. Pen, eraser and fill snapshot the canvas
// and act immediately; the picker only arms itself and samples on release.
// Presses outside the canvas are ignored.
func (d *Document) PointerDown(p image.Point) {
	if d.state == StateDragging || d.resizing {
		return
	}
	if !p.In(d.surf.Bounds()) {
		return
	}
	d.pressed = true
	d.last = p
	if !d.tool.Drags() {
		return
	}
	d.stroke = d.surf.Snapshot()
	d.state = StateDragging
	switch d.tool {
	case ToolPen:
		d.surf.Stamp(p.X, p.Y, d.penWidth, d.penColor)
	case ToolEraser:
		d.surf.Stamp(p.X, p.Y, d.eraserWidth, surface.Background)
	case ToolFill:
		d.surf.FloodFill(p.X, p.Y, d.penColor)
	}
	d.changed()
}

// PointerMove extends a pen or eraser stroke to p. Points outside the canvas
// still connect the line; drawing is clipped to the canvas.
func (d *Document) PointerMove(p image.Point) {
	if d.state != StateDragging {
		return
	}
	switch d.tool {
	case ToolPen:
		d.surf.DrawLine(d.last.X, d.last.Y, p.X, p.Y, d.penColor, d.penWidth)
	case ToolEraser:
		d.surf.DrawLine(d.last.X, d.last.Y, p.X, p.Y, surface.Background, d.eraserWidth)
	default:
		return
	}
	d.last = p
	d.changed()
}

// PointerUp ends the gesture at p and records it. For the picker, p is
// sampled into the pen color and the previous tool is restored.
func (d *Document) PointerUp(p image.Point) {
	if d.state == StateDragging {
		d.finish()
		return
	}
	if !d.pressed {
		return
	}
	d.pressed = false
	if d.tool != ToolColorPicker || !p.In(d.surf.Bounds()) {
		return
	}
	d.penColor = d.surf.At(p.X, p.Y)
	d.tool = d.prevTool
	d.changed()
}

// CaptureLost finalizes a gesture interrupted by the window system exactly
// like a pointer release. A pending pick is dropped.
func (d *Document) CaptureLost() {
	d.pressed = false
	if d.state == StateDragging {
		d.finish()
	}
}

// Cancel abandons the gesture in flight and restores the canvas to how it
// was when the gesture started. Nothing is recorded. It reports whether there
// was anything to cancel.
func (d *Document) Cancel() bool {
	d.pressed = false
	if d.state != StateDragging {
		return false
	}
	d.stroke.Restore()
	d.releaseStroke()
	d.state = StateIdle
	d.changed()
	return true
}

// finish records the difference between the gesture snapshot and the canvas.
// Every finished gesture is an edit: one that left every pixel unchanged
// still pushes an empty patch and clears redo.
func (d *Document) finish() {
	defer d.releaseStroke()
	d.state = StateIdle
	d.pressed = false
	size := d.stroke.Size()
	entries := history.Diff(d.stroke.Pix(), d.surf.Pix(), d.surf.Stride(), size)
	d.record(history.Patch{Size: size, Entries: entries})
	d.changed()
}

func (d *Document) releaseStroke() {
	d.stroke.Release()
	d.stroke = nil
}
