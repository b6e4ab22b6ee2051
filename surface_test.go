package offscreen_test

import (
	"bytes"
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
	"github.com/go-theft-auto/offscreen/glapi"
	"github.com/go-theft-auto/offscreen/internal/gltest"
)

func TestNewSurfaceClearsAndBuildsQuad(t *testing.T) {
	drv, _, s := newSurface(t, 8, 6)

	w, h := s.Size()
	assert.Equal(t, []int{8, 6}, []int{w, h})
	assert.Equal(t, [4]int32{0, 0, 8, 6}, drv.ViewportRect())
	assert.Equal(t, offscreen.DefaultClearColor.NRGBA(), drv.PixelAt(3, 3))

	quad := s.Quad()
	require.NotNil(t, quad)
	assert.Equal(t, 4, quad.VertexCount())
	assert.Equal(t, 16, quad.Stride())

	data, ok := drv.Buffer(quad.VBO())
	require.True(t, ok)
	_, want, err := offscreen.NewMeshBuilder().
		AddFloat32("position", 2, []float32{-1, -1, 1, -1, -1, 1, 1, 1}).
		AddFloat32("uv", 2, []float32{0, 0, 1, 0, 0, 1, 1, 1}).
		Interleave()
	require.NoError(t, err)
	assert.Equal(t, want, data)
}

func TestNewSurfaceInvalidSize(t *testing.T) {
	drv := gltest.New(1, 1)
	ctx := gltest.NewContext(0, 10)
	s, err := offscreen.NewSurface(drv, ctx, "bad")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, offscreen.ErrInit)
	var initErr *offscreen.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "surface", initErr.Step)
	assert.True(t, ctx.Destroyed())
}

func TestDrawQuadWithMaterial(t *testing.T) {
	drv, _, s := newSurface(t, 4, 4)
	mat, err := offscreen.NewMaterialFromSource(drv, "flat", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer mat.Delete()

	require.NoError(t, s.DrawQuad(mat, offscreen.NewVec4Uniform("uColor", offscreen.Vec4{0, 1, 0, 1})))
	assert.False(t, mat.Enabled())

	draws := drv.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, uint32(glapi.TriangleStrip), draws[0].Mode)
	assert.Equal(t, int32(4), draws[0].Count)
	assert.Equal(t, mat.Program(), draws[0].Program)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, drv.PixelAt(0, 0))
}

func TestReadFrameTopRowFirst(t *testing.T) {
	drv, _, s := newSurface(t, 3, 4)
	mat, err := offscreen.NewMaterialFromSource(drv, "gradient", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer mat.Delete()

	// Intensity grows with window y, so the top of the image is brightest.
	drv.Shade = func(f gltest.Fragment, _ gltest.Uniforms) color.NRGBA {
		return color.NRGBA{R: uint8(f.Y * 80), G: uint8(f.X * 100), A: 255}
	}
	require.NoError(t, s.DrawQuad(mat))

	img := s.ReadFrame()
	assert.Equal(t, image.Rect(0, 0, 3, 4), img.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			want := color.NRGBA{R: uint8((3 - y) * 80), G: uint8(x * 100), A: 255}
			assert.Equal(t, want, img.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestSaveFrameSolidColor(t *testing.T) {
	drv, _, s := newSurface(t, 5, 3)
	drv.Fill(color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	path := filepath.Join(t.TempDir(), "nested", "dir", "frame_000.png")
	require.NoError(t, s.SaveFrame(path))

	img := readPNG(t, path)
	assert.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 128}, color.NRGBAModel.Convert(img.At(x, y)))
		}
	}
}

func TestSaveFrameErrorIsRecoverable(t *testing.T) {
	drv, _, s := newSurface(t, 2, 2)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := s.SaveFrame(filepath.Join(blocker, "frame.png"))
	var exportErr *offscreen.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.False(t, errors.Is(err, offscreen.ErrInit))

	// The surface keeps working.
	drv.Fill(color.NRGBA{A: 255})
	require.NoError(t, s.SaveFrame(filepath.Join(dir, "ok.png")))
}

func TestWriteFrame(t *testing.T) {
	drv, _, s := newSurface(t, 2, 2)
	drv.Fill(color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, s.WriteFrame(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(1, 1)))
}

func TestEndToEndTexturedQuad(t *testing.T) {
	drv, _, s := newSurface(t, 6, 4)
	mat, err := offscreen.NewMaterialFromSource(drv, "example", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer mat.Delete()

	opts := offscreen.DefaultTextureOptions()
	uTex, err := offscreen.NewSamplerUniform(drv, "uTex", writePNG(t, stripes(255)), 0, opts)
	require.NoError(t, err)
	defer uTex.Delete()
	uColor := offscreen.NewVec4Uniform("uColor", offscreen.Vec4{1, 1, 1, 1})
	uTime := offscreen.NewFloatUniform("uTime", 0)

	drv.Shade = func(f gltest.Fragment, u gltest.Uniforms) color.NRGBA {
		tex, ok := u.Sampler("uTex")
		if !ok {
			return color.NRGBA{}
		}
		return tex.Sample(f.U, f.V)
	}

	path := filepath.Join(t.TempDir(), "frame_000.png")
	for i := 0; i < 3; i++ {
		uTime.SetFloat(float32(i) * 0.1)
		require.NoError(t, s.DrawQuad(mat, uTime, uColor, uTex))
	}
	require.NoError(t, s.SaveFrame(path))

	draws := drv.Draws()
	require.Len(t, draws, 3)
	vao, ok := drv.VertexArray(draws[2].VAO)
	require.True(t, ok)
	require.Len(t, vao.Attribs, 2)
	for slot, offset := range []int{0, 8} {
		a := vao.Attribs[uint32(slot)]
		assert.True(t, a.Enabled, "slot %d", slot)
		assert.Equal(t, int32(2), a.Size, "slot %d", slot)
		assert.Equal(t, uint32(glapi.Float), a.Type, "slot %d", slot)
		assert.Equal(t, int32(16), a.Stride, "slot %d", slot)
		assert.Equal(t, offset, a.Offset, "slot %d", slot)
	}
	uvs, ok := drv.Buffer(vao.Attribs[1].Buffer)
	require.True(t, ok)
	_, want, err := offscreen.NewMeshBuilder().
		AddFloat32("position", 2, []float32{-1, -1, 1, -1, -1, 1, 1, 1}).
		AddFloat32("uv", 2, []float32{0, 0, 1, 0, 0, 1, 1, 1}).
		Interleave()
	require.NoError(t, err)
	assert.Equal(t, want, uvs)

	// With flip-on-load the texture appears upright in the exported image.
	img := readPNG(t, path)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(2, 0)))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, color.NRGBAModel.Convert(img.At(2, 3)))
}

func TestRenderTargetForWindowContext(t *testing.T) {
	drv := gltest.New(16, 16)
	ctx := gltest.NewContext(4, 2)
	ctx.Window = true
	s, err := offscreen.NewSurface(drv, ctx, "window", offscreen.WithClearColor(color.NRGBA{R: 255, A: 255}))
	require.NoError(t, err)

	var fbo int32
	drv.GetIntegerv(glapi.FramebufferBinding, &fbo)
	assert.NotZero(t, fbo)
	assert.Equal(t, [4]int32{0, 0, 4, 2}, drv.ViewportRect())

	img := s.ReadFrame()
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(3, 1))

	require.NoError(t, s.Destroy())
	assert.Zero(t, drv.Live(), drv.String())
	assert.True(t, ctx.Destroyed())
}

func TestForcedRenderTarget(t *testing.T) {
	drv, _, s := newSurface(t, 3, 3, offscreen.WithRenderTarget())
	var fbo int32
	drv.GetIntegerv(glapi.FramebufferBinding, &fbo)
	assert.NotZero(t, fbo)
	assert.Equal(t, offscreen.DefaultClearColor.NRGBA(), s.ReadFrame().NRGBAAt(0, 0))
}

func TestDestroyReleasesEverything(t *testing.T) {
	drv := gltest.New(2, 2)
	ctx := gltest.NewContext(2, 2)
	s, err := offscreen.NewSurface(drv, ctx, "destroy")
	require.NoError(t, err)
	assert.NotZero(t, drv.Live())

	require.NoError(t, s.Destroy())
	require.NoError(t, s.Destroy())
	assert.Zero(t, drv.Live(), drv.String())
	assert.True(t, ctx.Destroyed())

	mat, err := offscreen.NewMaterialFromSource(drv, "late", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer mat.Delete()
	assert.ErrorIs(t, s.DrawQuad(mat), offscreen.ErrDestroyed)
}

func TestDrawWithDeletedMaterial(t *testing.T) {
	drv, _, s := newSurface(t, 2, 2)
	mat, err := offscreen.NewMaterialFromSource(drv, "gone", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	mat.Delete()

	assert.ErrorIs(t, s.DrawQuad(mat), offscreen.ErrDestroyed)
	assert.Empty(t, drv.Draws())
}

func TestDrawRejectsAttributesPastBuffer(t *testing.T) {
	drv, _, s := newSurface(t, 2, 2)
	mat, err := offscreen.NewMaterialFromSource(drv, "flat", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	defer mat.Delete()

	mesh, err := offscreen.NewMeshBuilder().AddFloat32("position", 2, []float32{0, 0, 1, 1}).Build(drv)
	require.NoError(t, err)
	defer mesh.Delete()
	vao, ok := drv.VertexArray(mesh.VAO())
	require.True(t, ok)
	vao.Attribs[0].Stride = 64

	require.NoError(t, s.Draw(mesh, mat))
	assert.Empty(t, drv.Draws())
	assert.NotEqual(t, glapi.NoError, int(drv.GetError()))
}
