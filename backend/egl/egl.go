//go:build linux || freebsd

// Package egl acquires an off-screen EGL pbuffer context for OpenGL ES 3.
//
// libEGL is loaded at runtime with purego, so the package needs no EGL headers
// at build time.
package egl

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/go-theft-auto/offscreen"
)

const (
	eglFalse          = 0
	eglNone           = 0x3038
	eglRedSize        = 0x3024
	eglGreenSize      = 0x3023
	eglBlueSize       = 0x3022
	eglAlphaSize      = 0x3021
	eglSurfaceType    = 0x3033
	eglRenderableType = 0x3040
	eglPbufferBit     = 0x0001
	eglOpenGLES3Bit   = 0x0040
	eglWidth          = 0x3057
	eglHeight         = 0x3056
	eglOpenGLESAPI    = 0x30A0
	eglClientVersion  = 0x3098
)

var (
	loadOnce sync.Once
	loadErr  error

	eglGetDisplay           func(nativeDisplay uintptr) uintptr
	eglInitialize           func(dpy uintptr, major, minor *int32) uint32
	eglBindAPI              func(api uint32) uint32
	eglChooseConfig         func(dpy uintptr, attribs *int32, configs *uintptr, size int32, num *int32) uint32
	eglCreatePbufferSurface func(dpy, config uintptr, attribs *int32) uintptr
	eglCreateContext        func(dpy, config, share uintptr, attribs *int32) uintptr
	eglMakeCurrent          func(dpy, draw, read, ctx uintptr) uint32
	eglSwapBuffers          func(dpy, surface uintptr) uint32
	eglDestroyContext       func(dpy, ctx uintptr) uint32
	eglDestroySurface       func(dpy, surface uintptr) uint32
	eglTerminate            func(dpy uintptr) uint32
	eglGetError             func() int32
)

// libraries are tried in order.
var libraries = []string{"libEGL.so.1", "libEGL.so"}

// Load binds the EGL entry points. It is called by New and only does work
// once.
func Load() error {
	loadOnce.Do(func() {
		var lib uintptr
		var err error
		for _, name := range libraries {
			lib, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if err == nil {
				break
			}
		}
		if err != nil {
			loadErr = fmt.Errorf("purego dlopen libEGL: %w", err)
			return
		}

		purego.RegisterLibFunc(&eglGetDisplay, lib, "eglGetDisplay")
		purego.RegisterLibFunc(&eglInitialize, lib, "eglInitialize")
		purego.RegisterLibFunc(&eglBindAPI, lib, "eglBindAPI")
		purego.RegisterLibFunc(&eglChooseConfig, lib, "eglChooseConfig")
		purego.RegisterLibFunc(&eglCreatePbufferSurface, lib, "eglCreatePbufferSurface")
		purego.RegisterLibFunc(&eglCreateContext, lib, "eglCreateContext")
		purego.RegisterLibFunc(&eglMakeCurrent, lib, "eglMakeCurrent")
		purego.RegisterLibFunc(&eglSwapBuffers, lib, "eglSwapBuffers")
		purego.RegisterLibFunc(&eglDestroyContext, lib, "eglDestroyContext")
		purego.RegisterLibFunc(&eglDestroySurface, lib, "eglDestroySurface")
		purego.RegisterLibFunc(&eglTerminate, lib, "eglTerminate")
		purego.RegisterLibFunc(&eglGetError, lib, "eglGetError")
	})
	return loadErr
}

// Context is an EGL display, pbuffer surface and GLES 3 context, current on
// the thread that created it.
type Context struct {
	width, height int
	display       uintptr
	surface       uintptr
	context       uintptr
	log           *slog.Logger
}

// New creates a width x height pbuffer context and makes it current. The
// caller must have locked its goroutine to the OS thread. Every failure is an
// *offscreen.InitError; anything acquired before the failure is released.
func New(width, height int, opts ...Option) (*Context, error) {
	if err := Load(); err != nil {
		return nil, offscreen.NewInitError("egl load", err)
	}

	c := &Context{width: width, height: height, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	c.display = eglGetDisplay(0) // EGL_DEFAULT_DISPLAY
	if c.display == 0 {
		return nil, c.fail("get display")
	}
	var major, minor int32
	if eglInitialize(c.display, &major, &minor) == eglFalse {
		return nil, c.fail("initialize")
	}
	if eglBindAPI(eglOpenGLESAPI) == eglFalse {
		return nil, c.fail("bind api")
	}

	configAttribs := []int32{
		eglSurfaceType, eglPbufferBit,
		eglRenderableType, eglOpenGLES3Bit,
		eglRedSize, 8,
		eglGreenSize, 8,
		eglBlueSize, 8,
		eglAlphaSize, 8,
		eglNone,
	}
	var config uintptr
	var numConfigs int32
	if eglChooseConfig(c.display, &configAttribs[0], &config, 1, &numConfigs) == eglFalse || numConfigs == 0 {
		return nil, c.fail("choose config")
	}

	pbufferAttribs := []int32{eglWidth, int32(width), eglHeight, int32(height), eglNone}
	c.surface = eglCreatePbufferSurface(c.display, config, &pbufferAttribs[0])
	if c.surface == 0 {
		return nil, c.fail("create pbuffer surface")
	}

	contextAttribs := []int32{eglClientVersion, 3, eglNone}
	c.context = eglCreateContext(c.display, config, 0, &contextAttribs[0])
	if c.context == 0 {
		return nil, c.fail("create context")
	}
	if eglMakeCurrent(c.display, c.surface, c.surface, c.context) == eglFalse {
		return nil, c.fail("make current")
	}

	c.log.Info("egl context ready", "egl_version", fmt.Sprintf("%d.%d", major, minor), "width", width, "height", height)
	return c, nil
}

// fail releases what was acquired so far and reports the failed step.
func (c *Context) fail(step string) error {
	code := eglGetError()
	_ = c.Destroy()
	return offscreen.NewInitError("egl "+step, fmt.Errorf("EGL error 0x%04X", code))
}

// Size implements offscreen.Context.
func (c *Context) Size() (int, int) { return c.width, c.height }

// Pbuffer implements offscreen.Context.
func (c *Context) Pbuffer() bool { return true }

// Swap posts the surface. For a pbuffer this only flushes pending rendering.
func (c *Context) Swap() error {
	if eglSwapBuffers(c.display, c.surface) == eglFalse {
		return fmt.Errorf("eglSwapBuffers: EGL error 0x%04X", eglGetError())
	}
	return nil
}

// Destroy releases the context, the surface and the display connection.
func (c *Context) Destroy() error {
	if c.display == 0 {
		return nil
	}
	eglMakeCurrent(c.display, 0, 0, 0)
	if c.context != 0 {
		eglDestroyContext(c.display, c.context)
		c.context = 0
	}
	if c.surface != 0 {
		eglDestroySurface(c.display, c.surface)
		c.surface = 0
	}
	ok := eglTerminate(c.display)
	c.display = 0
	if ok == eglFalse {
		return fmt.Errorf("eglTerminate: EGL error 0x%04X", eglGetError())
	}
	return nil
}
