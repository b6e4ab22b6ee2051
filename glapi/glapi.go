// Package glapi describes the subset of OpenGL ES 3.0 used by the offscreen
// renderer.
//
// Everything that touches the GPU goes through Driver, so the renderer can run
// against the real go-gl bindings (backend/gogl) or a software fake in tests.
// A Driver operates on whatever context is current on the calling OS thread.
package glapi

// Enumerations share their numeric values with the GLES 3.0 headers.
const (
	False = 0
	True  = 1

	NoError = 0

	ColorBufferBit = 0x00004000

	// Primitive modes.
	Points        = 0x0000
	Lines         = 0x0001
	Triangles     = 0x0004
	TriangleStrip = 0x0005
	TriangleFan   = 0x0006

	// Scalar types.
	UnsignedByte  = 0x1401
	UnsignedShort = 0x1403
	Int           = 0x1404
	Float         = 0x1406

	// Buffers.
	ArrayBuffer = 0x8892
	StaticDraw  = 0x88E4
	DynamicDraw = 0x88E8

	// Shaders and programs.
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84
	CurrentProgram = 0x8B8D

	// Textures.
	Texture2D            = 0x0DE1
	Texture0             = 0x84C0
	ActiveTexture        = 0x84E0
	TextureBinding2D     = 0x8069
	TextureMagFilter     = 0x2800
	TextureMinFilter     = 0x2801
	TextureWrapS         = 0x2802
	TextureWrapT         = 0x2803
	Nearest              = 0x2600
	Linear               = 0x2601
	NearestMipmapNearest = 0x2700
	LinearMipmapNearest  = 0x2701
	NearestMipmapLinear  = 0x2702
	LinearMipmapLinear   = 0x2703
	Repeat               = 0x2901
	ClampToEdge          = 0x812F
	MirroredRepeat       = 0x8370

	// Pixel formats and storage.
	RGB             = 0x1907
	RGBA            = 0x1908
	UnpackAlignment = 0x0CF5
	PackAlignment   = 0x0D05

	// Framebuffers.
	Framebuffer         = 0x8D40
	ColorAttachment0    = 0x8CE0
	FramebufferComplete = 0x8CD5
	FramebufferBinding  = 0x8CA6

	// GetString names.
	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// Driver is the GLES entry point set the renderer depends on.
//
// Slices replace the raw pointers of the C API; implementations must not
// retain them after the call returns.
type Driver interface {
	GetString(name uint32) string
	GetError() uint32
	GetIntegerv(pname uint32, data *int32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)

	// Buffer objects.
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)

	// Vertex array objects.
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes attribute index inside the buffer bound to
	// ArrayBuffer; offset is a byte offset into that buffer.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	// Shaders.
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Programs.
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniforms. GetUniformLocation returns -1 for names the program does not use.
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v0 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	GetUniformfv(program uint32, location int32, params *float32)
	GetUniformiv(program uint32, location int32, params *int32)

	// Textures.
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	ActiveTexture(texture uint32)
	BindTexture(target, texture uint32)
	// TexImage2D uploads a level; pixels may be nil to only allocate storage.
	TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)
	GenerateMipmap(target uint32)

	// Framebuffer objects.
	GenFramebuffers(n int32, framebuffers *uint32)
	DeleteFramebuffers(n int32, framebuffers *uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32

	DrawArrays(mode uint32, first, count int32)
	// ReadPixels copies a block of the bound framebuffer into pixels, bottom
	// row first.
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)
}

// ErrorString names a GetError code.
func ErrorString(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case 0x0500:
		return "GL_INVALID_ENUM"
	case 0x0501:
		return "GL_INVALID_VALUE"
	case 0x0502:
		return "GL_INVALID_OPERATION"
	case 0x0505:
		return "GL_OUT_OF_MEMORY"
	case 0x0506:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "GL_UNKNOWN_ERROR"
	}
}

// IsMipmapFilter reports whether a minification filter samples mip levels.
func IsMipmapFilter(filter int32) bool {
	switch filter {
	case NearestMipmapNearest, LinearMipmapNearest, NearestMipmapLinear, LinearMipmapLinear:
		return true
	}
	return false
}
