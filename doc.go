/*
Package offscreen renders OpenGL ES 3 shaders without a window and exports the
frames as PNG images.

# Overview

A Surface wraps a context acquired by a backend (backend/egl for a headless
pbuffer, backend/glfw for a hidden window) together with a full-screen quad.
A Material is a compiled shader program; Uniforms carry the float, vec4 and
sampler2D values pushed to it before each draw. Every GPU call goes through a
glapi.Driver, implemented by backend/gogl.

# Quick Start

	runtime.LockOSThread()

	ctx, _ := egl.New(800, 600)
	drv, _ := gogl.New(nil)
	surface, _ := offscreen.NewSurface(drv, ctx, "demo")
	defer surface.Destroy()

	mat, _ := offscreen.NewMaterial(drv, "demo", "shaders/vp.vert", "shaders/fp.frag")
	defer mat.Delete()

	uTime := offscreen.NewFloatUniform("uTime", 0)
	uTex, _ := offscreen.NewSamplerUniform(drv, "uTex", "shaders/image.png", 0, offscreen.DefaultTextureOptions())
	defer uTex.Delete()

	for i := 0; i < 60; i++ {
	    uTime.SetFloat(float32(i) * 0.1)
	    surface.DrawQuad(mat, uTime, uTex)
	    surface.SaveFrame(fmt.Sprintf("output/frame_%03d.png", i))
	}

# Meshes

MeshBuilder interleaves per-vertex attributes into one buffer. Attribute i is
bound to vertex slot i, so the order of AddAttribute calls must match the
layout locations in the vertex shader. All attributes of one builder must
have the same vertex count; a mismatch is a *VertexCountError.

# Errors

Context and surface acquisition failures match ErrInit and abort the run.
Shader, texture and export failures are returned as *ShaderError,
*TextureError and *ExportError; the caller decides whether to continue. A
uniform the program does not declare is silently skipped.

# Threading

A GL context is current on one OS thread. Lock the calling goroutine with
runtime.LockOSThread before creating the context and make every call from it.
*/
package offscreen
