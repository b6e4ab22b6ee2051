//go:build !linux && !freebsd

package egl

import (
	"errors"
	"log/slog"

	"github.com/go-theft-auto/offscreen"
)

var errUnsupported = errors.New("EGL pbuffer contexts are only supported on linux and freebsd")

// Context is unavailable on this platform.
type Context struct {
	log *slog.Logger
}

// Load always fails on this platform.
func Load() error { return errUnsupported }

// New always fails on this platform.
func New(width, height int, opts ...Option) (*Context, error) {
	return nil, offscreen.NewInitError("egl load", errUnsupported)
}

func (c *Context) Size() (int, int) { return 0, 0 }
func (c *Context) Pbuffer() bool    { return true }
func (c *Context) Swap() error      { return errUnsupported }
func (c *Context) Destroy() error   { return nil }
