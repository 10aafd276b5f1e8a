package document

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/simplepaint/internal/surface"
)

func newDoc(t *testing.T, w, h int, opts ...Option) *Document {
	t.Helper()
	d, err := New(image.Pt(w, h), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func pixels(d *Document) []byte {
	return append([]byte(nil), d.Surface().Pix()...)
}

func drag(d *Document, pts ...image.Point) {
	d.PointerDown(pts[0])
	for _, p := range pts[1:] {
		d.PointerMove(p)
	}
	d.PointerUp(pts[len(pts)-1])
}

func TestVerticalLineUndoRedo(t *testing.T) {
	d := newDoc(t, 100, 100, WithPenColor(surface.Black), WithPenWidth(1))
	blank := pixels(d)
	drag(d, image.Pt(10, 10), image.Pt(10, 20))
	drawn := pixels(d)

	p, ok := d.History().PeekUndo()
	if !ok || p.Len() != 11 {
		t.Fatalf("expected an 11 pixel patch, got %d", p.Len())
	}
	for y := 10; y <= 20; y++ {
		if d.Surface().At(10, y) != surface.Black {
			t.Fatalf("pixel (10,%d) not drawn", y)
		}
	}

	if !d.Undo() {
		t.Fatalf("undo failed")
	}
	if !bytes.Equal(pixels(d), blank) {
		t.Fatalf("undo did not restore a white canvas")
	}
	if d.CanUndo() || !d.CanRedo() || d.History().RedoLen() != 1 || d.History().UndoLen() != 0 {
		t.Fatalf("after undo: canUndo=%v canRedo=%v", d.CanUndo(), d.CanRedo())
	}

	if !d.Redo() {
		t.Fatalf("redo failed")
	}
	if !bytes.Equal(pixels(d), drawn) {
		t.Fatalf("redo did not restore the line")
	}
	if !d.CanUndo() || d.CanRedo() {
		t.Fatalf("stacks did not swap back")
	}
}

func TestStrokePatchIsMinimal(t *testing.T) {
	d := newDoc(t, 40, 40, WithPenColor(surface.Black), WithPenWidth(2))
	before := d.Surface().Snapshot()
	defer before.Release()
	drag(d, image.Pt(5, 5), image.Pt(30, 12))

	changed := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if before.At(x, y) != d.Surface().At(x, y) {
				changed++
			}
		}
	}
	p, _ := d.History().PeekUndo()
	if p.Len() != changed {
		t.Fatalf("patch has %d entries, %d pixels changed", p.Len(), changed)
	}
}

func TestRoundTripAnyDepth(t *testing.T) {
	d := newDoc(t, 64, 64)
	var states [][]byte
	ops := []func(){
		func() { drag(d, image.Pt(1, 1), image.Pt(60, 50), image.Pt(3, 40)) },
		func() { d.SelectTool(ToolEraser); drag(d, image.Pt(30, 0), image.Pt(30, 63)) },
		func() { d.SelectTool(ToolFill); d.SetPenColor(surface.Color{G: 200}); drag(d, image.Pt(62, 2)) },
		func() { d.SelectTool(ToolPen); drag(d, image.Pt(10, 60), image.Pt(50, 5)) },
	}
	for _, op := range ops {
		states = append(states, pixels(d))
		op()
	}
	for depth := len(ops) - 1; depth >= 0; depth-- {
		current := pixels(d)
		d.Undo()
		if !bytes.Equal(pixels(d), states[depth]) {
			t.Fatalf("undo to depth %d mismatch", depth)
		}
		d.Redo()
		if !bytes.Equal(pixels(d), current) {
			t.Fatalf("redo from depth %d mismatch", depth)
		}
		d.Undo()
	}
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	d := newDoc(t, 10, 10)
	before := pixels(d)
	if d.Undo() || d.Redo() {
		t.Fatalf("expected no-ops")
	}
	if !bytes.Equal(before, pixels(d)) || d.History().UndoLen() != 0 || d.History().RedoLen() != 0 {
		t.Fatalf("no-op changed state")
	}
	if d.Dirty() {
		t.Fatalf("no-op marked the document dirty")
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	d := newDoc(t, 20, 20)
	drag(d, image.Pt(1, 1), image.Pt(18, 1))
	d.Undo()
	drag(d, image.Pt(1, 5), image.Pt(18, 5))
	if d.CanRedo() {
		t.Fatalf("redo should be empty after a new edit")
	}
	before := pixels(d)
	if d.Redo() || !bytes.Equal(before, pixels(d)) {
		t.Fatalf("redo should be a no-op")
	}
}

func TestUndoIgnoredWhileDragging(t *testing.T) {
	d := newDoc(t, 20, 20)
	drag(d, image.Pt(1, 1), image.Pt(18, 1))
	d.PointerDown(image.Pt(1, 10))
	d.PointerMove(image.Pt(15, 10))
	mid := pixels(d)
	if d.Undo() || d.Redo() {
		t.Fatalf("undo/redo must be ignored mid-gesture")
	}
	if !bytes.Equal(mid, pixels(d)) || d.History().UndoLen() != 1 {
		t.Fatalf("state changed mid-gesture")
	}
	d.PointerUp(image.Pt(15, 10))
	if d.History().UndoLen() != 2 {
		t.Fatalf("gesture not recorded")
	}
}

func TestCancelRestoresExactly(t *testing.T) {
	d := newDoc(t, 50, 50)
	drag(d, image.Pt(0, 0), image.Pt(49, 49))
	before := pixels(d)
	d.PointerDown(image.Pt(5, 40))
	d.PointerMove(image.Pt(20, 10))
	d.PointerMove(image.Pt(45, 45))
	d.PointerMove(image.Pt(5, 5))
	if !d.Cancel() {
		t.Fatalf("cancel reported nothing to cancel")
	}
	if !bytes.Equal(before, pixels(d)) {
		t.Fatalf("cancel did not restore the canvas")
	}
	if d.History().UndoLen() != 1 || d.Dragging() {
		t.Fatalf("cancel recorded a patch or left the gesture open")
	}
	if d.stroke != nil {
		t.Fatalf("snapshot not released")
	}
	if d.Cancel() {
		t.Fatalf("second cancel should do nothing")
	}
}

func TestCaptureLostFinalizesLikePointerUp(t *testing.T) {
	a := newDoc(t, 30, 30)
	b := newDoc(t, 30, 30)
	for _, d := range []*Document{a, b} {
		d.PointerDown(image.Pt(2, 2))
		d.PointerMove(image.Pt(25, 20))
	}
	a.PointerUp(image.Pt(25, 20))
	b.CaptureLost()
	if !bytes.Equal(pixels(a), pixels(b)) {
		t.Fatalf("surfaces differ")
	}
	pa, _ := a.History().PeekUndo()
	pb, _ := b.History().PeekUndo()
	if pa.Len() != pb.Len() || pa.Size != pb.Size {
		t.Fatalf("patches differ: %d vs %d", pa.Len(), pb.Len())
	}
	if b.Dragging() || b.stroke != nil {
		t.Fatalf("capture loss left the gesture open")
	}
}

func TestUnchangedGestureStillClearsRedo(t *testing.T) {
	d := newDoc(t, 10, 10)
	drag(d, image.Pt(4, 4))
	if !d.Undo() || !d.CanRedo() {
		t.Fatalf("undo of the dot should leave redo available")
	}
	d.SelectTool(ToolEraser)
	before := pixels(d)
	drag(d, image.Pt(4, 4))
	if !bytes.Equal(before, pixels(d)) {
		t.Fatalf("erasing white must not change pixels")
	}
	if d.CanRedo() {
		t.Fatalf("a finished gesture must clear redo")
	}
	p, ok := d.History().PeekUndo()
	if !ok || p.Len() != 0 || p.Size != image.Pt(10, 10) {
		t.Fatalf("expected an empty patch on undo, got %+v ok=%v", p, ok)
	}
	if !d.Undo() || !bytes.Equal(before, pixels(d)) {
		t.Fatalf("undoing an empty patch must leave the canvas alone")
	}
}

func TestEnclosedFillAndUndo(t *testing.T) {
	d := newDoc(t, 40, 40)
	s := d.Surface()
	outline := image.Rect(5, 5, 20, 20)
	for x := outline.Min.X; x < outline.Max.X; x++ {
		s.Set(x, outline.Min.Y, surface.Black)
		s.Set(x, outline.Max.Y-1, surface.Black)
	}
	for y := outline.Min.Y; y < outline.Max.Y; y++ {
		s.Set(outline.Min.X, y, surface.Black)
		s.Set(outline.Max.X-1, y, surface.Black)
	}
	before := pixels(d)
	blue := surface.Color{B: 255}
	d.SetPenColor(blue)
	d.SelectTool(ToolFill)
	drag(d, image.Pt(10, 10))

	interior := image.Rect(6, 6, 19, 19)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			got := s.At(x, y)
			switch {
			case image.Pt(x, y).In(interior):
				if got != blue {
					t.Fatalf("interior (%d,%d) = %v", x, y, got)
				}
			case image.Pt(x, y).In(outline):
				if got != surface.Black {
					t.Fatalf("outline (%d,%d) = %v", x, y, got)
				}
			default:
				if got != surface.White {
					t.Fatalf("outside (%d,%d) = %v", x, y, got)
				}
			}
		}
	}
	p, _ := d.History().PeekUndo()
	if p.Len() != interior.Dx()*interior.Dy() {
		t.Fatalf("fill patch has %d entries", p.Len())
	}
	d.Undo()
	if !bytes.Equal(before, pixels(d)) {
		t.Fatalf("one undo should restore the fill")
	}
}

func TestShrinkUndoRestoresHiddenSquare(t *testing.T) {
	d := newDoc(t, 200, 200)
	red := surface.Color{R: 255}
	square := image.Rect(150, 150, 161, 161)
	d.Surface().FillRect(square, red)

	if _, err := d.SetCanvasSize(image.Pt(100, 100)); err != nil {
		t.Fatalf("SetCanvasSize: %v", err)
	}
	if d.Size() != image.Pt(100, 100) {
		t.Fatalf("size %v", d.Size())
	}
	if d.Surface().At(155, 155) != surface.White {
		t.Fatalf("pixels outside the shrunk canvas should be cleared")
	}
	p, _ := d.History().PeekUndo()
	if p.Size != image.Pt(200, 200) || p.Len() != square.Dx()*square.Dy() {
		t.Fatalf("resize patch size=%v len=%d", p.Size, p.Len())
	}

	d.Undo()
	if d.Size() != image.Pt(200, 200) {
		t.Fatalf("undo size %v", d.Size())
	}
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			want := surface.White
			if image.Pt(x, y).In(square) {
				want = red
			}
			if got := d.Surface().At(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	d.Redo()
	if d.Size() != image.Pt(100, 100) || d.Surface().At(155, 155) != surface.White {
		t.Fatalf("redo did not shrink again")
	}
}

func TestGrowRecordsPatchAndRevealsRetainedPixels(t *testing.T) {
	d := newDoc(t, 50, 50, WithCanvasSize(image.Pt(20, 20)))
	d.Surface().Set(40, 40, surface.Black)
	d.BeginResize()
	d.ResizeTo(image.Pt(35, 35))
	d.EndResize(image.Pt(50, 50))
	if d.Surface().At(40, 40) != surface.Black {
		t.Fatalf("growing must reveal retained pixels")
	}
	p, ok := d.History().PeekUndo()
	if !ok || p.Size != image.Pt(20, 20) || p.Len() != 0 {
		t.Fatalf("grow patch %+v", p)
	}
	d.Undo()
	if d.Size() != image.Pt(20, 20) {
		t.Fatalf("undo grow size %v", d.Size())
	}
}

func TestResizeToSameSizeRecordsNothing(t *testing.T) {
	d := newDoc(t, 30, 30)
	d.BeginResize()
	d.ResizeTo(image.Pt(10, 10))
	d.EndResize(image.Pt(30, 30))
	if d.CanUndo() || d.resize != nil || d.Resizing() {
		t.Fatalf("unchanged resize recorded or leaked state")
	}
}

func TestResizeClampsToSurface(t *testing.T) {
	d := newDoc(t, 30, 30)
	got, err := d.SetCanvasSize(image.Pt(500, 0))
	if err == nil {
		t.Fatalf("expected an error for a zero height")
	}
	got, err = d.SetCanvasSize(image.Pt(500, 10))
	if err != nil || got != image.Pt(30, 10) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestPickerSamplesAndRestoresTool(t *testing.T) {
	d := newDoc(t, 20, 20)
	green := surface.Color{G: 180}
	d.Surface().Set(7, 7, green)
	d.SelectTool(ToolEraser)
	d.SelectTool(ToolColorPicker)
	d.PointerDown(image.Pt(7, 7))
	if d.Dragging() {
		t.Fatalf("picker must not start a drag")
	}
	d.PointerUp(image.Pt(7, 7))
	if d.PenColor() != green {
		t.Fatalf("pen color %v", d.PenColor())
	}
	if d.Tool() != ToolEraser {
		t.Fatalf("tool %v, want eraser", d.Tool())
	}
	if d.CanUndo() {
		t.Fatalf("picking must not record history")
	}
}

func TestPickerOutsideCanvasKeepsTool(t *testing.T) {
	d := newDoc(t, 20, 20, WithCanvasSize(image.Pt(10, 10)))
	d.SelectTool(ToolColorPicker)
	d.PointerDown(image.Pt(3, 3))
	d.PointerUp(image.Pt(15, 15))
	if d.Tool() != ToolColorPicker || d.PenColor() != DefaultPenColor {
		t.Fatalf("pick outside the canvas should do nothing")
	}
}

func TestEraserPaintsBackground(t *testing.T) {
	d := newDoc(t, 20, 20, WithPenWidth(4), WithEraserWidth(1))
	drag(d, image.Pt(2, 10), image.Pt(17, 10))
	d.SelectTool(ToolEraser)
	drag(d, image.Pt(10, 0), image.Pt(10, 19))
	if d.Surface().At(10, 10) != surface.White {
		t.Fatalf("eraser left %v", d.Surface().At(10, 10))
	}
	if d.Surface().At(9, 10) != DefaultPenColor {
		t.Fatalf("1px eraser touched a neighbour")
	}
}

func TestWidthValidation(t *testing.T) {
	d := newDoc(t, 10, 10)
	if err := d.SetPenWidth(3); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
	if _, err := New(image.Pt(10, 10), WithEraserWidth(16)); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth from option, got %v", err)
	}
	d.SelectTool(ToolEraser)
	if err := d.SetToolWidth(2); err != nil || d.EraserWidth() != 2 || d.PenWidth() != DefaultWidth {
		t.Fatalf("SetToolWidth on eraser: pen=%d eraser=%d err=%v", d.PenWidth(), d.EraserWidth(), err)
	}
}

func TestAllocationFailure(t *testing.T) {
	if _, err := New(image.Pt(0, 10)); !errors.Is(err, surface.ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
}

func TestTitleAndStatusText(t *testing.T) {
	d := newDoc(t, 30, 20)
	if d.Title() != "Untitled - Simple Paint" {
		t.Fatalf("title %q", d.Title())
	}
	drag(d, image.Pt(1, 1), image.Pt(5, 5))
	if !strings.HasPrefix(d.Title(), "*Untitled") {
		t.Fatalf("dirty title %q", d.Title())
	}
	if got := d.SizeText(); got != "Canvas Size: 30 × 20 px" {
		t.Fatalf("size text %q", got)
	}
	if got := d.CoordinateText(image.Pt(0, 4)); got != "Mouse Coordinate: 1 × 5 px" {
		t.Fatalf("coordinate text %q", got)
	}
	if d.CoordinateText(image.Pt(30, 0)) != "" {
		t.Fatalf("expected no coordinate outside the canvas")
	}
}

func TestSaveClearsDirty(t *testing.T) {
	d := newDoc(t, 8, 8)
	drag(d, image.Pt(1, 1), image.Pt(6, 6))
	path := filepath.Join(t.TempDir(), "sketch.bmp")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d.Dirty() || !d.Saved() || d.Name() != "sketch" {
		t.Fatalf("dirty=%v saved=%v name=%q", d.Dirty(), d.Saved(), d.Name())
	}
	if d.Title() != "sketch - Simple Paint" {
		t.Fatalf("title %q", d.Title())
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	d := newDoc(t, 8, 8)
	drag(d, image.Pt(1, 1), image.Pt(6, 6))
	before := pixels(d)
	err := d.Save(filepath.Join(t.TempDir(), "nope", "x.bmp"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !d.Dirty() || d.Saved() || !bytes.Equal(before, pixels(d)) || !d.CanUndo() {
		t.Fatalf("failed save changed document state")
	}
}

func TestNewDocumentCancelAborts(t *testing.T) {
	d := newDoc(t, 10, 10)
	drag(d, image.Pt(1, 1), image.Pt(8, 8))
	before := pixels(d)
	asked := ""
	ok, err := d.NewDocument(func(name string) Choice { asked = name; return ChoiceCancel }, nil)
	if ok || !errors.Is(err, ErrSaveCancelled) {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if asked != DefaultName {
		t.Fatalf("prompt named %q", asked)
	}
	if !bytes.Equal(before, pixels(d)) || !d.CanUndo() || !d.Dirty() {
		t.Fatalf("cancel partially reset the document")
	}
}

func TestNewDocumentDiscard(t *testing.T) {
	d := newDoc(t, 10, 10, WithCanvasSize(image.Pt(6, 6)))
	drag(d, image.Pt(1, 1), image.Pt(5, 5))
	ok, err := d.NewDocument(func(string) Choice { return ChoiceDiscard }, nil)
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if d.CanUndo() || d.CanRedo() || d.Dirty() || d.Surface().At(3, 3) != surface.White {
		t.Fatalf("document not reset")
	}
	if d.Size() != image.Pt(6, 6) {
		t.Fatalf("reset changed the canvas size to %v", d.Size())
	}
}

func TestNewDocumentSaveFailureAborts(t *testing.T) {
	d := newDoc(t, 10, 10)
	drag(d, image.Pt(1, 1), image.Pt(8, 8))
	boom := errors.New("disk full")
	ok, err := d.NewDocument(func(string) Choice { return ChoiceSave }, func() error { return boom })
	if ok || !errors.Is(err, boom) || !d.CanUndo() {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestCleanDocumentSkipsPrompt(t *testing.T) {
	d := newDoc(t, 10, 10)
	ok, err := d.ConfirmDiscard(func(string) Choice {
		t.Fatalf("prompt shown for a clean document")
		return ChoiceCancel
	}, nil)
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestOnChangeFires(t *testing.T) {
	calls := 0
	d := newDoc(t, 10, 10, WithOnChange(func(*Document) { calls++ }))
	drag(d, image.Pt(1, 1), image.Pt(5, 5))
	if calls == 0 {
		t.Fatalf("listener not called")
	}
	n := calls
	d.Undo()
	if calls != n+1 {
		t.Fatalf("undo should notify once, got %d", calls-n)
	}
}

func TestParseTool(t *testing.T) {
	for in, want := range map[string]Tool{"pen": ToolPen, " Eraser": ToolEraser, "fill": ToolFill, "color-picker": ToolColorPicker} {
		got, err := ParseTool(in)
		if err != nil || got != want {
			t.Fatalf("ParseTool(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTool("lasso"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGestureSnapshotReleasedOnEveryExit(t *testing.T) {
	d := newDoc(t, 20, 20)
	exits := map[string]func(){
		"pointer up":   func() { d.PointerUp(image.Pt(9, 9)) },
		"capture lost": d.CaptureLost,
		"cancel":       func() { d.Cancel() },
		"reset":        d.Reset,
	}
	for name, exit := range exits {
		d.PointerDown(image.Pt(2, 2))
		d.PointerMove(image.Pt(9, 9))
		sn := d.stroke
		if sn == nil || sn.Released() {
			t.Fatalf("%s: gesture should hold a live snapshot", name)
		}
		exit()
		if !sn.Released() || d.stroke != nil || d.Dragging() {
			t.Errorf("%s: snapshot not released", name)
		}
	}

	for name, end := range map[string]func(){
		"end":   func() { d.EndResize(image.Pt(10, 10)) },
		"abort": d.AbortResize,
	} {
		if !d.BeginResize() {
			t.Fatalf("%s: BeginResize refused", name)
		}
		sn := d.resize
		end()
		if !sn.Released() || d.resize != nil || d.Resizing() {
			t.Errorf("%s: resize snapshot not released", name)
		}
	}
}

func TestResetDuringResizeAbortsIt(t *testing.T) {
	d := newDoc(t, 100, 100)
	if !d.BeginResize() {
		t.Fatalf("BeginResize refused")
	}
	d.ResizeTo(image.Pt(50, 50))
	d.Reset()
	if d.Resizing() || d.resize != nil {
		t.Fatalf("Reset left the resize open")
	}
	if got := d.Size(); got != image.Pt(100, 100) {
		t.Fatalf("size after Reset = %v, want the pre-resize 100x100", got)
	}

	// EndResize without a resize in progress is a no-op.
	if got := d.EndResize(image.Pt(40, 40)); got != image.Pt(100, 100) {
		t.Fatalf("EndResize after Reset = %v", got)
	}
	drag(d, image.Pt(10, 10), image.Pt(20, 10))
	if !d.CanUndo() || d.Surface().At(15, 10) != DefaultPenColor {
		t.Fatalf("strokes must work again after Reset")
	}
	if !d.BeginResize() {
		t.Fatalf("BeginResize must work again after Reset")
	}
	d.AbortResize()
}

func TestResetClearsHiddenPixels(t *testing.T) {
	d := newDoc(t, 20, 20)
	if _, err := d.SetCanvasSize(image.Pt(10, 10)); err != nil {
		t.Fatalf("SetCanvasSize: %v", err)
	}
	d.Surface().Set(15, 15, surface.Black)
	d.Reset()
	if got := d.Size(); got != image.Pt(10, 10) {
		t.Fatalf("Reset changed the size to %v", got)
	}
	d.Surface().Resize(image.Pt(20, 20))
	if got := d.Surface().At(15, 15); got != surface.White {
		t.Fatalf("hidden pixel survived Reset: %v", got)
	}
}
