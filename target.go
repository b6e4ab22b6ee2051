package offscreen

import (
	"fmt"

	"github.com/go-theft-auto/offscreen/glapi"
)

// renderTarget is an off-screen framebuffer with one RGBA color texture.
// Surfaces use it when the context's default framebuffer is not a pbuffer of
// the requested size (e.g. a hidden window).
type renderTarget struct {
	drv     glapi.Driver
	fbo     uint32
	texture uint32
	width   int
	height  int
}

func newRenderTarget(drv glapi.Driver, width, height int) (*renderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render target size: %dx%d", width, height)
	}
	rt := &renderTarget{drv: drv, width: width, height: height}

	drv.GenTextures(1, &rt.texture)
	drv.BindTexture(glapi.Texture2D, rt.texture)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureMinFilter, glapi.Linear)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureMagFilter, glapi.Linear)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureWrapS, glapi.ClampToEdge)
	drv.TexParameteri(glapi.Texture2D, glapi.TextureWrapT, glapi.ClampToEdge)
	drv.TexImage2D(glapi.Texture2D, 0, glapi.RGBA, int32(width), int32(height), glapi.RGBA, glapi.UnsignedByte, nil)
	drv.BindTexture(glapi.Texture2D, 0)

	drv.GenFramebuffers(1, &rt.fbo)
	drv.BindFramebuffer(glapi.Framebuffer, rt.fbo)
	drv.FramebufferTexture2D(glapi.Framebuffer, glapi.ColorAttachment0, glapi.Texture2D, rt.texture, 0)

	if status := drv.CheckFramebufferStatus(glapi.Framebuffer); status != glapi.FramebufferComplete {
		rt.Delete()
		return nil, fmt.Errorf("framebuffer incomplete: status 0x%X", status)
	}
	return rt, nil
}

// Bind makes the target the drawing and read destination.
func (rt *renderTarget) Bind() {
	rt.drv.BindFramebuffer(glapi.Framebuffer, rt.fbo)
	rt.drv.Viewport(0, 0, int32(rt.width), int32(rt.height))
}

// Delete releases the framebuffer and its texture.
func (rt *renderTarget) Delete() {
	if rt == nil {
		return
	}
	if rt.fbo != 0 {
		rt.drv.BindFramebuffer(glapi.Framebuffer, 0)
		rt.drv.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
	if rt.texture != 0 {
		rt.drv.DeleteTextures(1, &rt.texture)
		rt.texture = 0
	}
}
