package bitmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/example/simplepaint/internal/surface"
)

func testCanvas(t *testing.T) *surface.Surface {
	t.Helper()
	s, err := surface.New(image.Pt(16, 16))
	if err != nil {
		t.Fatalf("surface.New: %v", err)
	}
	s.Resize(image.Pt(5, 3))
	s.Set(0, 0, surface.Color{R: 255})
	s.Set(4, 2, surface.Color{B: 255})
	return s
}

func TestEncodeHeaderAndLayout(t *testing.T) {
	s := testCanvas(t)
	var buf bytes.Buffer
	if err := Encode(&buf, s.Image()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data := buf.Bytes()
	if string(data[:2]) != "BM" {
		t.Fatalf("bad signature %q", data[:2])
	}
	le := binary.LittleEndian
	if got, want := int(le.Uint32(data[2:])), FileSize(5, 3); got != want || len(data) != want {
		t.Fatalf("file size header %d, len %d, want %d", got, len(data), want)
	}
	if got := le.Uint32(data[10:]); got != PixelOffset {
		t.Fatalf("pixel offset %d", got)
	}
	if le.Uint32(data[14:]) != infoHeaderSize || le.Uint32(data[18:]) != 5 || le.Uint32(data[22:]) != 3 {
		t.Fatalf("unexpected info header %v", data[14:30])
	}
	if le.Uint16(data[26:]) != 1 || le.Uint16(data[28:]) != 24 || le.Uint32(data[30:]) != 0 {
		t.Fatalf("planes/bpp/compression wrong")
	}
	// Rows are stored bottom-up, so the first row in the file is y=2.
	row := data[PixelOffset : PixelOffset+RowSize(5)]
	if !bytes.Equal(row[12:15], []byte{255, 0, 0}) {
		t.Fatalf("bottom row pixel (4,2) = %v, want BGR blue", row[12:15])
	}
	top := data[PixelOffset+2*RowSize(5):]
	if !bytes.Equal(top[0:3], []byte{0, 0, 255}) {
		t.Fatalf("top row pixel (0,0) = %v, want BGR red", top[0:3])
	}
}

func TestEncodeDecodesBack(t *testing.T) {
	s := testCanvas(t)
	var buf bytes.Buffer
	if err := Encode(&buf, s.Image()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Fatalf("decoded bounds %v", img.Bounds())
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Fatalf("decoded (0,0) = %v", img.At(0, 0))
	}
	if got := color.RGBAModel.Convert(img.At(2, 1)).(color.RGBA); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("decoded (2,1) = %v", got)
	}
}

func TestEncodeRejectsEmptyImage(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, image.NewRGBA(image.Rectangle{}))
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bmp")
	if err := Save(path, testCanvas(t).Image()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != int64(FileSize(5, 3)) {
		t.Fatalf("file size %d", info.Size())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the saved file, found %d entries", len(entries))
	}
}

func TestSaveFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.bmp")
	if err := Save(path, image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("partial output left behind: %v", entries)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.bmp")
	err := Save(path, testCanvas(t).Image())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
