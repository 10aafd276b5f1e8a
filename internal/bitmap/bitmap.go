// Package bitmap writes canvases as uncompressed 24-bit BMP files.
package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	// PixelOffset is where pixel data starts in files written by Encode.
	PixelOffset = fileHeaderSize + infoHeaderSize
)

// ErrEmptyImage is returned when asked to encode an image without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// RowSize returns the padded size in bytes of one 24-bit row.
func RowSize(width int) int {
	return (3*width + 3) &^ 3
}

// FileSize returns the total size of a 24-bit BMP of the given dimensions.
func FileSize(width, height int) int {
	return PixelOffset + RowSize(width)*height
}

// Encode writes img as a bottom-up 24-bit BMP. img must not implement a
// paletted, gray or translucent model; canvas views always encode as 24 bit.
func Encode(w io.Writer, img image.Image) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	return bmp.Encode(w, img)
}

// Save writes img to path. The file is written under a temporary name and
// renamed into place, so on any failure no partial file is left behind.
func Save(path string, img image.Image) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			if rerr := os.Remove(tmp); rerr != nil && !os.IsNotExist(rerr) {
				err = fmt.Errorf("%w (cleanup: %v)", err, rerr)
			}
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, img); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
