package offscreen_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/glapi"
	"github.com/go-theft-auto/offscreen/internal/gltest"
)

// stripes is 3x2 with a red top row and a blue bottom row.
func stripes(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for x := 0; x < 3; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: alpha})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: alpha})
	}
	return img
}

func TestLoadOpaqueTextureAsRGB(t *testing.T) {
	drv := gltest.New(1, 1)
	opts := offscreen.DefaultTextureOptions()
	opts.FlipOnLoad = false

	// Opaque NRGBA is written as 8-bit RGB by image/png.
	tex, err := offscreen.LoadTexture(drv, writePNG(t, stripes(255)), 0, opts)
	require.NoError(t, err)
	defer tex.Delete()

	assert.Equal(t, 3, tex.Channels())
	w, h := tex.Size()
	assert.Equal(t, []int{3, 2}, []int{w, h})

	gt, ok := drv.Texture(tex.ID())
	require.True(t, ok)
	assert.Equal(t, uint32(glapi.RGB), gt.Format)
	assert.Len(t, gt.Data, 3*2*3)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, gt.At(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, gt.At(2, 1))
}

func TestLoadTranslucentTextureAsRGBA(t *testing.T) {
	drv := gltest.New(1, 1)
	tex, err := offscreen.LoadTexture(drv, writePNG(t, stripes(128)), 1, offscreen.DefaultTextureOptions())
	require.NoError(t, err)
	defer tex.Delete()

	assert.Equal(t, 4, tex.Channels())
	gt, ok := drv.Texture(tex.ID())
	require.True(t, ok)
	assert.Equal(t, uint32(glapi.RGBA), gt.Format)
	// Flipped on load: the bottom image row is uploaded first.
	assert.Equal(t, color.NRGBA{B: 255, A: 128}, gt.At(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, gt.At(0, 1))
	assert.Equal(t, tex.ID(), drv.BoundTexture(1))
}

func TestTextureParameters(t *testing.T) {
	drv := gltest.New(1, 1)
	opts := offscreen.TextureOptions{
		MinFilter: glapi.LinearMipmapLinear,
		MagFilter: glapi.Nearest,
		WrapS:     glapi.ClampToEdge,
		WrapT:     glapi.MirroredRepeat,
	}
	tex, err := offscreen.NewTexture(drv, stripes(255), 0, opts)
	require.NoError(t, err)
	defer tex.Delete()

	gt, _ := drv.Texture(tex.ID())
	assert.Equal(t, int32(glapi.LinearMipmapLinear), gt.Params[glapi.TextureMinFilter])
	assert.Equal(t, int32(glapi.Nearest), gt.Params[glapi.TextureMagFilter])
	assert.Equal(t, int32(glapi.ClampToEdge), gt.Params[glapi.TextureWrapS])
	assert.Equal(t, int32(glapi.MirroredRepeat), gt.Params[glapi.TextureWrapT])
	assert.True(t, gt.Mipmapped)

	plain, err := offscreen.NewTexture(drv, stripes(255), 0, offscreen.DefaultTextureOptions())
	require.NoError(t, err)
	defer plain.Delete()
	gp, _ := drv.Texture(plain.ID())
	assert.False(t, gp.Mipmapped)
}

func TestLoadTextureErrors(t *testing.T) {
	drv := gltest.New(1, 1)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a png"), 0o644))

	for _, path := range []string{garbage, filepath.Join(t.TempDir(), "missing.png")} {
		_, err := offscreen.NewSamplerUniform(drv, "uTex", path, 0, offscreen.DefaultTextureOptions())
		var texErr *offscreen.TextureError
		require.ErrorAs(t, err, &texErr)
		assert.Equal(t, path, texErr.Path)
		assert.NotErrorIs(t, err, offscreen.ErrInit)
	}
	assert.Zero(t, drv.Live())
}

func TestTextureDeleteIsIdempotent(t *testing.T) {
	drv := gltest.New(1, 1)
	tex, err := offscreen.NewTexture(drv, stripes(255), 0, offscreen.DefaultTextureOptions())
	require.NoError(t, err)
	tex.Delete()
	tex.Delete()
	assert.Zero(t, tex.ID())
	assert.Zero(t, drv.Live())
}
