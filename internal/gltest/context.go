package gltest

import "errors"

// Context is an offscreen.Context backed by a Driver's default framebuffer.
type Context struct {
	Width, Height int
	// Window makes Pbuffer report false, like a hidden window backend.
	Window bool
	// DestroyErr is returned by Destroy.
	DestroyErr error

	destroyed int
}

// NewContext returns a pbuffer context of the given size.
func NewContext(width, height int) *Context {
	return &Context{Width: width, Height: height}
}

func (c *Context) Size() (int, int) { return c.Width, c.Height }

func (c *Context) Pbuffer() bool { return !c.Window }

func (c *Context) Destroy() error {
	c.destroyed++
	if c.destroyed > 1 {
		return errors.New("gltest: context destroyed twice")
	}
	return c.DestroyErr
}

// Destroyed reports whether Destroy was called.
func (c *Context) Destroyed() bool { return c.destroyed > 0 }
