package document

import (
	"fmt"
	"image"

	"github.com/example/simplepaint/internal/history"
	"github.com/example/simplepaint/internal/surface"
)

// BeginResize starts an interactive canvas resize. It is ignored while a
// stroke is in progress.
func (d *Document) BeginResize() bool {
	if d.state == StateDragging || d.resizing {
		return false
	}
	d.resize = d.surf.Snapshot()
	d.resizing = true
	return true
}

// ResizeTo changes the visible canvas size during an interactive resize.
// Pixels are left alone until EndResize.
func (d *Document) ResizeTo(size image.Point) image.Point {
	if !d.resizing {
		return d.surf.Size()
	}
	got := d.surf.Resize(size)
	d.changed()
	return got
}

// EndResize commits the resize to size. When the canvas shrank, painted
// pixels that fell outside it are recorded so the resize can be undone, and
// the live copies are cleared to background.
func (d *Document) EndResize(size image.Point) image.Point {
	if !d.resizing {
		return d.surf.Size()
	}
	snap := d.resize
	defer d.releaseResize()
	d.resizing = false

	oldSize := snap.Size()
	newSize := d.surf.Resize(size)
	if newSize == oldSize {
		d.changed()
		return newSize
	}
	entries := history.DiffNonBackground(snap.Pix(), d.surf.Stride(), oldSize, newSize, surface.Background)
	if newSize.X < oldSize.X {
		d.surf.FillRect(image.Rect(newSize.X, 0, oldSize.X, oldSize.Y), surface.Background)
	}
	if newSize.Y < oldSize.Y {
		d.surf.FillRect(image.Rect(0, newSize.Y, oldSize.X, oldSize.Y), surface.Background)
	}
	d.record(history.Patch{Size: oldSize, Entries: entries})
	d.changed()
	return newSize
}

// AbortResize returns the canvas to the size it had before BeginResize.
func (d *Document) AbortResize() {
	if !d.resizing {
		return
	}
	d.surf.Resize(d.resize.Size())
	d.releaseResize()
	d.resizing = false
	d.changed()
}

// SetCanvasSize resizes the canvas in one step, recorded like an interactive
// resize.
func (d *Document) SetCanvasSize(size image.Point) (image.Point, error) {
	if size.X < 1 || size.Y < 1 {
		return d.surf.Size(), fmt.Errorf("invalid canvas size %dx%d", size.X, size.Y)
	}
	if !d.BeginResize() {
		return d.surf.Size(), fmt.Errorf("canvas busy")
	}
	return d.EndResize(size), nil
}

func (d *Document) releaseResize() {
	d.resize.Release()
	d.resize = nil
}
