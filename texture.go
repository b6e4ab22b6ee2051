package offscreen

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	// Decoders available to texture files.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/go-theft-auto/offscreen/glapi"
)

// TextureOptions are passed through verbatim to TexParameteri.
type TextureOptions struct {
	FlipOnLoad bool
	MinFilter  int32
	MagFilter  int32
	WrapS      int32
	WrapT      int32
}

// DefaultTextureOptions flips on load and uses linear filtering with repeat
// wrapping.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		FlipOnLoad: true,
		MinFilter:  glapi.Linear,
		MagFilter:  glapi.Linear,
		WrapS:      glapi.Repeat,
		WrapT:      glapi.Repeat,
	}
}

// Texture is a 2D texture object created from an image.
type Texture struct {
	drv      glapi.Driver
	id       uint32
	width    int
	height   int
	channels int
}

// LoadTexture decodes the image at path and uploads it to texture unit unit.
// Decoding failures are returned as *TextureError.
func LoadTexture(drv glapi.Driver, path string, unit uint32, opts TextureOptions) (*Texture, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, &TextureError{Path: path, Err: err}
	}
	tex, err := NewTexture(drv, img, unit, opts)
	if err != nil {
		return nil, &TextureError{Path: path, Err: err}
	}
	return tex, nil
}

// NewTexture uploads img to texture unit unit. Images with an alpha channel
// are stored as RGBA, everything else as RGB.
func NewTexture(drv glapi.Driver, img image.Image, unit uint32, opts TextureOptions) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("empty image")
	}

	pix, channels := texturePixels(img)
	if opts.FlipOnLoad {
		flipRows(pix, b.Dx()*channels, b.Dy())
	}

	format := uint32(glapi.RGB)
	if channels == 4 {
		format = glapi.RGBA
	}

	t := &Texture{drv: drv, width: b.Dx(), height: b.Dy(), channels: channels}
	drv.GenTextures(1, &t.id)
	if t.id == 0 {
		return nil, errors.New("glGenTextures returned no texture")
	}
	drv.ActiveTexture(glapi.Texture0 + unit)
	drv.BindTexture(glapi.Texture2D, t.id)
	// RGB rows are not 4-byte aligned in general.
	drv.PixelStorei(glapi.UnpackAlignment, 1)
	drv.TexImage2D(glapi.Texture2D, 0, int32(format), int32(t.width), int32(t.height), format, glapi.UnsignedByte, pix)

	drv.TexParameteri(glapi.Texture2D, glapi.TextureMinFilter, opts.MinFilter)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureMagFilter, opts.MagFilter)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureWrapS, opts.WrapS)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureWrapT, opts.WrapT)
	if glapi.IsMipmapFilter(opts.MinFilter) {
		drv.GenerateMipmap(glapi.Texture2D)
	}
	return t, nil
}

// ID returns the texture handle (0 once deleted).
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Channels returns 3 for RGB textures and 4 for RGBA textures.
func (t *Texture) Channels() int { return t.channels }

// Delete releases the texture object.
func (t *Texture) Delete() {
	if t == nil || t.id == 0 {
		return
	}
	t.drv.DeleteTextures(1, &t.id)
	t.id = 0
}

// texturePixels converts img to tightly packed straight-alpha rows, top row
// first.
func texturePixels(img image.Image) ([]byte, int) {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	if hasAlpha(img) {
		return append([]byte(nil), nrgba.Pix...), 4
	}

	rgb := make([]byte, 0, b.Dx()*b.Dy()*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		rgb = append(rgb, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return rgb, 3
}

// hasAlpha reports whether img should keep an alpha channel: decoders return
// the non-premultiplied types for files that store one, and the remaining
// types are checked pixel by pixel.
func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return true
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	default:
		return true
	}
}
