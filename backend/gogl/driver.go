// Package gogl implements glapi.Driver on top of the go-gl OpenGL ES 3 bindings.
package gogl

import (
	"fmt"
	"log/slog"
	"strings"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/glapi"
)

// Driver forwards every call to the GLES entry points of the current context.
type Driver struct{}

var _ glapi.Driver = Driver{}

// New loads the GLES entry points and logs the driver strings to log, or to
// slog.Default when log is nil. A context must be current on the calling
// thread.
func New(log *slog.Logger) (Driver, error) {
	if err := gl.Init(); err != nil {
		return Driver{}, offscreen.NewInitError("gles init", err)
	}
	if log == nil {
		log = slog.Default()
	}
	d := Driver{}
	log.Info("gles initialized",
		"version", d.GetString(glapi.Version),
		"renderer", d.GetString(glapi.Renderer),
		"vendor", d.GetString(glapi.Vendor),
	)
	return d, nil
}

func (Driver) GetString(name uint32) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (Driver) GetError() uint32                      { return gl.GetError() }
func (Driver) GetIntegerv(pname uint32, data *int32) { gl.GetIntegerv(pname, data) }

func (Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (Driver) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (Driver) Clear(mask uint32)                  { gl.Clear(mask) }

func (Driver) GenBuffers(n int32, buffers *uint32)    { gl.GenBuffers(n, buffers) }
func (Driver) DeleteBuffers(n int32, buffers *uint32) { gl.DeleteBuffers(n, buffers) }
func (Driver) BindBuffer(target, buffer uint32)       { gl.BindBuffer(target, buffer) }

func (Driver) BufferData(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (Driver) GenVertexArrays(n int32, arrays *uint32)    { gl.GenVertexArrays(n, arrays) }
func (Driver) DeleteVertexArrays(n int32, arrays *uint32) { gl.DeleteVertexArrays(n, arrays) }
func (Driver) BindVertexArray(array uint32)               { gl.BindVertexArray(array) }
func (Driver) EnableVertexAttribArray(index uint32)       { gl.EnableVertexAttribArray(index) }

func (Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (Driver) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (Driver) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csource, nil)
}

func (Driver) CompileShader(shader uint32)                     { gl.CompileShader(shader) }
func (Driver) GetShaderiv(shader, pname uint32, params *int32) { gl.GetShaderiv(shader, pname, params) }

func (Driver) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

func (Driver) DeleteShader(shader uint32)                        { gl.DeleteShader(shader) }
func (Driver) CreateProgram() uint32                             { return gl.CreateProgram() }
func (Driver) AttachShader(program, shader uint32)               { gl.AttachShader(program, shader) }
func (Driver) LinkProgram(program uint32)                        { gl.LinkProgram(program) }
func (Driver) GetProgramiv(program, pname uint32, params *int32) { gl.GetProgramiv(program, pname, params) }

func (Driver) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

func (Driver) UseProgram(program uint32)    { gl.UseProgram(program) }
func (Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Driver) Uniform1f(location int32, v0 float32) { gl.Uniform1f(location, v0) }

func (Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	v := [4]float32{v0, v1, v2, v3}
	gl.Uniform4fv(location, 1, &v[0])
}

func (Driver) Uniform1i(location int32, v0 int32) { gl.Uniform1i(location, v0) }

func (Driver) GetUniformfv(program uint32, location int32, params *float32) {
	gl.GetUniformfv(program, location, params)
}

func (Driver) GetUniformiv(program uint32, location int32, params *int32) {
	gl.GetUniformiv(program, location, params)
}

func (Driver) GenTextures(n int32, textures *uint32)    { gl.GenTextures(n, textures) }
func (Driver) DeleteTextures(n int32, textures *uint32) { gl.DeleteTextures(n, textures) }
func (Driver) ActiveTexture(texture uint32)             { gl.ActiveTexture(texture) }
func (Driver) BindTexture(target, texture uint32)       { gl.BindTexture(target, texture) }

func (Driver) TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte) {
	if pixels == nil {
		gl.TexImage2D(target, level, internalformat, width, height, 0, format, xtype, nil)
		return
	}
	gl.TexImage2D(target, level, internalformat, width, height, 0, format, xtype, gl.Ptr(pixels))
}

func (Driver) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }
func (Driver) PixelStorei(pname uint32, param int32)           { gl.PixelStorei(pname, param) }
func (Driver) GenerateMipmap(target uint32)                    { gl.GenerateMipmap(target) }

func (Driver) GenFramebuffers(n int32, framebuffers *uint32)    { gl.GenFramebuffers(n, framebuffers) }
func (Driver) DeleteFramebuffers(n int32, framebuffers *uint32) { gl.DeleteFramebuffers(n, framebuffers) }
func (Driver) BindFramebuffer(target, framebuffer uint32)       { gl.BindFramebuffer(target, framebuffer) }

func (Driver) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (Driver) CheckFramebufferStatus(target uint32) uint32 { return gl.CheckFramebufferStatus(target) }

func (Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (Driver) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	if need := int(width) * int(height) * 4; len(pixels) < need {
		panic(fmt.Sprintf("gogl: ReadPixels buffer holds %d bytes, need %d", len(pixels), need))
	}
	gl.ReadPixels(x, y, width, height, format, xtype, gl.Ptr(pixels))
}
