package offscreen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-theft-auto/offscreen/glapi"
)

// Context is a rendering context made current on the calling thread by a
// backend (see backend/egl and backend/glfw).
type Context interface {
	// Size returns the dimensions of the context's drawing surface.
	Size() (width, height int)
	// Pbuffer reports whether the default framebuffer is an off-screen pixel
	// buffer of exactly Size. When false the surface renders into a
	// framebuffer object instead.
	Pbuffer() bool
	// Destroy releases the context, its surface and the display connection,
	// in that order.
	Destroy() error
}

// quadVertices is a full-screen triangle strip, position.xy then uv.xy.
var (
	quadPositions = []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
	quadUVs = []float32{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	}
)

// Surface is a fixed-size off-screen render target with a prebuilt
// full-screen quad. Every draw renders into it.
type Surface struct {
	drv    glapi.Driver
	ctx    Context
	title  string
	width  int
	height int

	clearColor  Vec4
	forceTarget bool
	log         *slog.Logger

	target *renderTarget
	quad   *Mesh
}

// NewSurface prepares the current context for rendering: it sets the
// viewport, clears once and builds the full-screen quad. Failures are
// returned as *InitError. The surface takes ownership of ctx.
func NewSurface(drv glapi.Driver, ctx Context, title string, opts ...SurfaceOption) (*Surface, error) {
	w, h := ctx.Size()
	s := &Surface{
		drv:        drv,
		ctx:        ctx,
		title:      title,
		width:      w,
		height:     h,
		clearColor: DefaultClearColor,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if w <= 0 || h <= 0 {
		return nil, errors.Join(NewInitError("surface", fmt.Errorf("invalid size %dx%d", w, h)), ctx.Destroy())
	}

	if s.forceTarget || !ctx.Pbuffer() {
		rt, err := newRenderTarget(drv, w, h)
		if err != nil {
			return nil, errors.Join(NewInitError("render target", err), ctx.Destroy())
		}
		s.target = rt
		rt.Bind()
	}

	drv.Viewport(0, 0, int32(w), int32(h))
	s.Clear()

	quad, err := NewMeshBuilder().
		AddFloat32("position", 2, quadPositions).
		AddFloat32("uv", 2, quadUVs).
		SetPrimitive(glapi.TriangleStrip).
		Build(drv)
	if err != nil {
		s.target.Delete()
		return nil, errors.Join(NewInitError("full-screen quad", err), ctx.Destroy())
	}
	s.quad = quad

	s.log.Info("surface ready",
		"title", title,
		"width", w,
		"height", h,
		"render_target", s.target != nil,
	)
	return s, nil
}

// Title returns the surface title.
func (s *Surface) Title() string { return s.title }

// Size returns the surface dimensions.
func (s *Surface) Size() (width, height int) { return s.width, s.height }

// Driver returns the driver the surface renders with.
func (s *Surface) Driver() glapi.Driver { return s.drv }

// Logger returns the logger surface events are written to.
func (s *Surface) Logger() *slog.Logger { return s.log }

// Quad returns the full-screen quad mesh.
func (s *Surface) Quad() *Mesh { return s.quad }

// Clear fills the color buffer with the clear color.
func (s *Surface) Clear() {
	c := s.clearColor
	s.drv.ClearColor(c[0], c[1], c[2], c[3])
	s.drv.Clear(glapi.ColorBufferBit)
}

// DrawQuad draws the full-screen quad with mat.
func (s *Surface) DrawQuad(mat *Material, uniforms ...*Uniform) error {
	if s.quad == nil {
		return ErrDestroyed
	}
	return s.Draw(s.quad, mat, uniforms...)
}

// Draw enables mat, pushes the uniforms, draws mesh and disables mat again.
func (s *Surface) Draw(mesh *Mesh, mat *Material, uniforms ...*Uniform) error {
	if mat.Program() == 0 {
		return fmt.Errorf("draw %q: %w", mat.Name(), ErrDestroyed)
	}
	mat.Enable()
	defer mat.Disable()

	if err := mat.Apply(uniforms...); err != nil {
		return fmt.Errorf("draw %q: %w", mat.Name(), err)
	}
	return mesh.Draw()
}

// Destroy releases the quad, the render target and the context.
func (s *Surface) Destroy() error {
	if s.ctx == nil {
		return nil
	}
	s.quad.Delete()
	s.quad = nil
	if s.target != nil {
		s.target.Delete()
		s.target = nil
	}
	err := s.ctx.Destroy()
	s.ctx = nil
	return err
}
