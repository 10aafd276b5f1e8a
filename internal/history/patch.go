// Package history records canvas edits as sparse pixel patches and replays
// them for undo and redo.
package history

import (
	"image"

	"github.com/example/simplepaint/internal/surface"
)

// Entry is one pixel override: the byte offset in the surface buffer and the
// color to write there.
type Entry struct {
	Offset int
	Color  surface.Color
}

// Patch restores the pixels changed by one edit. Size is the canvas size the
// patch applies against.
type Patch struct {
	Size    image.Point
	Entries []Entry
}

// Len returns the number of pixels in the patch.
func (p Patch) Len() int { return len(p.Entries) }

// Diff compares two buffers laid out with the same stride over the size
// rectangle. It returns, in row-major order, the before color of every pixel
// whose value differs.
func Diff(before, after []byte, stride int, size image.Point) []Entry {
	var entries []Entry
	for y := 0; y < size.Y; y++ {
		off := y * stride
		for x := 0; x < size.X; x++ {
			if before[off] != after[off] || before[off+1] != after[off+1] || before[off+2] != after[off+2] {
				entries = append(entries, Entry{Offset: off, Color: surface.Decode(before, off)})
			}
			off += surface.BytesPerPixel
		}
	}
	return entries
}

// DiffNonBackground collects the pixels of before that lie inside oldSize but
// outside newSize and are not bg. The east strip and the south strip are
// visited as one region in row-major order so the shared corner is recorded
// once.
func DiffNonBackground(before []byte, stride int, oldSize, newSize image.Point, bg surface.Color) []Entry {
	var entries []Entry
	for y := 0; y < oldSize.Y; y++ {
		x0 := 0
		if y < newSize.Y {
			x0 = newSize.X
		}
		off := y*stride + x0*surface.BytesPerPixel
		for x := x0; x < oldSize.X; x++ {
			if c := surface.Decode(before, off); c != bg {
				entries = append(entries, Entry{Offset: off, Color: c})
			}
			off += surface.BytesPerPixel
		}
	}
	return entries
}

// ComputeInverse returns the patch that undoes applying p to s: the current
// color at each of p's offsets, sized to the current canvas.
func ComputeInverse(p Patch, s *surface.Surface) Patch {
	inv := Patch{Size: s.Size(), Entries: make([]Entry, len(p.Entries))}
	for i, e := range p.Entries {
		inv.Entries[i] = Entry{Offset: e.Offset, Color: s.ColorAtOffset(e.Offset)}
	}
	return inv
}

// Apply resizes s to p.Size when needed and writes every entry.
func Apply(p Patch, s *surface.Surface) {
	if p.Size != s.Size() {
		s.Resize(p.Size)
	}
	for _, e := range p.Entries {
		s.SetAtOffset(e.Offset, e.Color)
	}
}
