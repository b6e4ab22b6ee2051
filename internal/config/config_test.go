package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/offscreen/glapi"
	"github.com/go-theft-auto/offscreen/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 60, cfg.Frames)
	assert.Equal(t, "output/frame_007.png", cfg.FramePath(7))
	require.Len(t, cfg.Uniforms, 3)
	assert.InDelta(t, 5.9, cfg.Uniforms[0].FloatAt(59), 1e-5)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "job.yaml", `
width: 64
height: 32
frames: 3
vertex: quad.vert
fragment: quad.frag
output: out/f%02d.png
uniforms:
  - name: uTime
    type: float
    value: [1]
    step: 0.5
    period: 2
  - name: uTex
    type: sampler2D
    path: img.png
    unit: 2
    texture:
      flip: false
      min_filter: linear_mipmap_linear
      wrap_s: clamp_to_edge
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
	assert.Equal(t, "offscreen", cfg.Title, "unset fields keep defaults")
	assert.Equal(t, filepath.Join(dir, "out/f02.png"), cfg.FramePath(2))
	assert.Equal(t, []string{
		filepath.Join(dir, "quad.vert"),
		filepath.Join(dir, "quad.frag"),
		filepath.Join(dir, "img.png"),
	}, cfg.Files())

	require.Len(t, cfg.Uniforms, 2)
	opts, err := cfg.Uniforms[1].TextureOptions()
	require.NoError(t, err)
	assert.False(t, opts.FlipOnLoad)
	assert.Equal(t, int32(glapi.LinearMipmapLinear), opts.MinFilter)
	assert.Equal(t, int32(glapi.Linear), opts.MagFilter)
	assert.Equal(t, int32(glapi.ClampToEdge), opts.WrapS)
	assert.Equal(t, int32(glapi.Repeat), opts.WrapT)
	assert.Equal(t, uint32(2), cfg.Uniforms[1].Unit)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "job.toml", `
width = 16
height = 16
clear_color = [0.0, 0.0, 0.0, 1.0]

[[uniforms]]
name = "uColor"
type = "vec4"
value = [1.0, 0.0, 0.0, 1.0]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.ClearColor)
	require.Len(t, cfg.Uniforms, 1)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, [4]float32(cfg.Uniforms[0].Vec4()))
}

func TestLoadWithoutUniformsKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "job.yml", "frames: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Frames)
	assert.Len(t, cfg.Uniforms, 3)
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := config.Load(writeFile(t, "job.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 0
	cfg.Output = "frame.png"
	cfg.Uniforms = append(cfg.Uniforms,
		config.Uniform{Name: "uTime", Type: "float"},
		config.Uniform{Name: "uBad", Type: "mat4"},
		config.Uniform{Name: "uTex2", Type: "sampler2D", Path: "a.png", Texture: config.Texture{MagFilter: "cubic"}},
	)

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"size 0x600", "no frame verb", `duplicate name "uTime"`, `unknown type "mat4"`, `unknown mag filter "cubic"`} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestFloatAtWrapsPeriod(t *testing.T) {
	u := config.Uniform{Name: "uTime", Type: "float", Value: []float32{0.5}, Step: 0.25, Period: 1}
	assert.True(t, u.Animated())
	assert.InDelta(t, 0.5, u.FloatAt(0), 1e-6)
	assert.InDelta(t, 0.75, u.FloatAt(1), 1e-6)
	assert.InDelta(t, 0.0, u.FloatAt(2), 1e-6)
	assert.InDelta(t, 0.25, u.FloatAt(3), 1e-6)

	back := config.Uniform{Name: "uPhase", Type: "float", Step: -0.25, Period: 1}
	assert.InDelta(t, 0.75, back.FloatAt(1), 1e-6)

	still := config.Uniform{Name: "uScale", Type: "float", Value: []float32{3}}
	assert.False(t, still.Animated())
	assert.Equal(t, float32(3), still.FloatAt(10))
}

func TestResolveAbsolutePath(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "job.yaml", "vertex: /abs/v.vert\n"))
	require.NoError(t, err)
	assert.Equal(t, "/abs/v.vert", cfg.Files()[0])
}
