package job_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/internal/config"
	"github.com/go-theft-auto/offscreen/internal/gltest"
	"github.com/go-theft-auto/offscreen/internal/job"
)

const vertexSrc = `#version 300 es
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
out vec2 vUV;
void main() { vUV = aUV; gl_Position = vec4(aPos, 0.0, 1.0); }
`

const fragmentSrc = `#version 300 es
precision mediump float;
uniform float uTime;
uniform vec4 uColor;
uniform sampler2D uTex;
in vec2 vUV;
out vec4 fragColor;
void main() { fragColor = texture(uTex, vUV) * uColor; }
`

// fixture writes shaders and a texture next to a job config.
func fixture(t *testing.T, frames int) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vp.vert"), []byte(vertexSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fp.frag"), []byte(fragmentSrc), 0o644))

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(filepath.Join(dir, "image.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfgPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
width: 8
height: 4
vertex: vp.vert
fragment: fp.frag
output: out/frame_%03d.png
uniforms:
  - {name: uTime, type: float, value: [0], step: 0.1}
  - {name: uColor, type: vec4, value: [1, 0, 0, 1]}
  - {name: uTex, type: sampler2D, path: image.png, unit: 0}
`), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Frames = frames
	return cfg
}

func newSurface(t *testing.T, cfg *config.Config) (*gltest.Driver, *offscreen.Surface) {
	t.Helper()
	drv := gltest.New(cfg.Width, cfg.Height)
	s, err := offscreen.NewSurface(drv, gltest.NewContext(cfg.Width, cfg.Height), cfg.Title)
	require.NoError(t, err)
	return drv, s
}

func TestRunExportsEveryFrame(t *testing.T) {
	cfg := fixture(t, 3)
	drv, s := newSurface(t, cfg)

	var times []float32
	drv.Shade = func(f gltest.Fragment, u gltest.Uniforms) color.NRGBA {
		if f.X == 0 && f.Y == 0 {
			v, _ := u.Float("uTime")
			times = append(times, v)
		}
		c, _ := u.Vec4("uColor")
		tex, ok := u.Sampler("uTex")
		if !ok {
			return color.NRGBA{}
		}
		tc := tex.Sample(f.U, f.V)
		return color.NRGBA{R: uint8(float32(tc.R) * c[0]), G: uint8(float32(tc.G) * c[1]), B: uint8(float32(tc.B) * c[2]), A: 255}
	}

	report, err := job.Run(context.Background(), s, cfg, job.Options{})
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Len(t, report.Saved, 3)

	require.Len(t, times, 3)
	assert.InDelta(t, 0.0, times[0], 1e-6)
	assert.InDelta(t, 0.1, times[1], 1e-6)
	assert.InDelta(t, 0.2, times[2], 1e-6)

	for _, path := range report.Saved {
		f, err := os.Open(path)
		require.NoError(t, err)
		img, err := png.Decode(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
		assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(3, 2)))
	}

	require.NoError(t, s.Destroy())
	assert.Zero(t, drv.Live(), drv.String())
}

func TestRunKeepsGoingAfterExportFailure(t *testing.T) {
	cfg := fixture(t, 3)
	// A regular file where the output directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Dir(), "out"), nil, 0o644))
	_, s := newSurface(t, cfg)
	defer s.Destroy()

	report, err := job.Run(context.Background(), s, cfg, job.Options{})
	require.NoError(t, err)
	require.Len(t, report.Failed, 3)
	assert.Empty(t, report.Saved)
	assert.Equal(t, 2, report.Failed[2].Frame)

	var exportErr *offscreen.ExportError
	assert.ErrorAs(t, report.Err(), &exportErr)
}

func TestRunShaderErrorAborts(t *testing.T) {
	cfg := fixture(t, 2)
	require.NoError(t, os.WriteFile(cfg.Resolve(cfg.Fragment), []byte("#error broken\n"), 0o644))
	drv, s := newSurface(t, cfg)
	defer s.Destroy()
	before := drv.Live()

	report, err := job.Run(context.Background(), s, cfg, job.Options{})
	assert.Nil(t, report)
	var shaderErr *offscreen.ShaderError
	require.ErrorAs(t, err, &shaderErr)
	assert.Equal(t, "fragment", shaderErr.Stage)
	assert.Equal(t, before, drv.Live())
}

func TestRunTextureErrorReleasesMaterial(t *testing.T) {
	cfg := fixture(t, 2)
	require.NoError(t, os.WriteFile(cfg.Resolve("image.png"), []byte("not an image"), 0o644))
	drv, s := newSurface(t, cfg)
	defer s.Destroy()
	before := drv.Live()

	_, err := job.Run(context.Background(), s, cfg, job.Options{})
	var texErr *offscreen.TextureError
	require.ErrorAs(t, err, &texErr)
	assert.False(t, errors.Is(err, offscreen.ErrInit))
	assert.Equal(t, before, drv.Live())
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := fixture(t, 5)
	_, s := newSurface(t, cfg)
	defer s.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	report, err := job.Run(ctx, s, cfg, job.Options{After: func(frame int) error {
		if frame == 1 {
			cancel()
		}
		return nil
	}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Saved, 2)
}
