package surface

import "image"

// Snapshot holds a copy of the canvas rows of a surface taken at one moment.
// It owns its buffer until Release.
type Snapshot struct {
	s    *Surface
	size image.Point
	pix  []byte
}

// Snapshot copies every row that intersects the current canvas.
func (s *Surface) Snapshot() *Snapshot {
	n := s.size.Y * s.stride
	pix := make([]byte, n)
	copy(pix, s.pix[:n])
	return &Snapshot{s: s, size: s.size, pix: pix}
}

// Size is the canvas size at the time the snapshot was taken.
func (sn *Snapshot) Size() image.Point { return sn.size }

// Pix returns the copied rows. The stride matches the source surface.
func (sn *Snapshot) Pix() []byte { return sn.pix }

// At reads a pixel of the snapshot. (x, y) must lie inside Size().
func (sn *Snapshot) At(x, y int) Color {
	return Decode(sn.pix, y*sn.s.stride+x*BytesPerPixel)
}

// Restore writes the copied rows back into the surface.
func (sn *Snapshot) Restore() {
	if sn.pix == nil {
		return
	}
	copy(sn.s.pix, sn.pix)
}

// Release drops the copied buffer. A released snapshot restores nothing.
func (sn *Snapshot) Release() {
	if sn == nil {
		return
	}
	sn.pix = nil
}

// Released reports whether Release has been called.
func (sn *Snapshot) Released() bool { return sn == nil || sn.pix == nil }
