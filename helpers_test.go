package offscreen_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/internal/gltest"
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
void main() { fragColor = texture(uTex, vUV) * uColor * (0.5 + 0.5 * sin(uTime)); }
`

func newSurface(t *testing.T, w, h int, opts ...offscreen.SurfaceOption) (*gltest.Driver, *gltest.Context, *offscreen.Surface) {
	t.Helper()
	drv := gltest.New(w, h)
	ctx := gltest.NewContext(w, h)
	s, err := offscreen.NewSurface(drv, ctx, "test", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Destroy() })
	return drv, ctx, s
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}
