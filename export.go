package offscreen

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/go-theft-auto/offscreen/glapi"
)

// ReadFrame reads back the color buffer as 8-bit RGBA, top row first.
func (s *Surface) ReadFrame() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	s.drv.PixelStorei(glapi.PackAlignment, 1)
	s.drv.ReadPixels(0, 0, int32(s.width), int32(s.height), glapi.RGBA, glapi.UnsignedByte, img.Pix)

	// GL origin is bottom-left.
	flipRows(img.Pix, img.Stride, s.height)
	return img
}

// SaveFrame writes the current color buffer to path as a PNG, creating the
// parent directory if needed. Failures are returned as *ExportError.
func (s *Surface) SaveFrame(path string) error {
	img := s.ReadFrame()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ExportError{Path: path, Err: err}
		}
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	s.log.Debug("saved frame", "path", path)
	return nil
}

// WriteFrame encodes the current color buffer as a PNG to w.
func (s *Surface) WriteFrame(w io.Writer) error {
	return imgio.PNGEncoder()(w, s.ReadFrame())
}

// flipRows swaps row y with row rows-1-y in place.
func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for y := 0; y < rows/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bot := pix[(rows-1-y)*stride : (rows-y)*stride]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
