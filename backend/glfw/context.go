// Package glfw acquires an OpenGL ES 3 context from a hidden GLFW window.
//
// It is the fallback when EGL pbuffers are unavailable. The window's default
// framebuffer is never shown, so Pbuffer reports false and the surface renders
// into its own framebuffer object instead.
package glfw

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/offscreen"
)

// Context owns a hidden window and its GLES context.
type Context struct {
	window        *glfw.Window
	width, height int
	log           *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for context events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// New creates a hidden width x height window with a GLES 3.0 context and makes
// it current. Must be called from the main thread.
func New(title string, width, height int, opts ...Option) (*Context, error) {
	c := &Context{width: width, height: height, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	if err := glfw.Init(); err != nil {
		return nil, offscreen.NewInitError("glfw init", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, offscreen.NewInitError("glfw create window", err)
	}
	window.MakeContextCurrent()
	c.window = window

	c.log.Info("glfw context ready", "title", title, "width", width, "height", height)
	return c, nil
}

func (c *Context) Size() (int, int) { return c.width, c.height }

// Pbuffer reports false: the default framebuffer belongs to a window.
func (c *Context) Pbuffer() bool { return false }

// Swap swaps the window buffers.
func (c *Context) Swap() error {
	if c.window == nil {
		return fmt.Errorf("glfw: swap on destroyed context")
	}
	c.window.SwapBuffers()
	return nil
}

// Destroy closes the window and terminates GLFW.
func (c *Context) Destroy() error {
	if c.window == nil {
		return nil
	}
	c.window.Destroy()
	c.window = nil
	glfw.Terminate()
	return nil
}
