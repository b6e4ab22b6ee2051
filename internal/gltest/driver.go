// Package gltest provides a software implementation of glapi.Driver for tests.
//
// It keeps just enough state to observe what the renderer does: object
// lifetimes, buffer contents, vertex array layouts, uniform values, texture
// units and a color buffer. DrawArrays runs a Go fragment function over every
// pixel of the bound color buffer, which is what a full-screen quad does.
package gltest

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"
	"unsafe"

	"github.com/go-theft-auto/offscreen/glapi"
)

const (
	invalidEnum      = 0x0500
	invalidValue     = 0x0501
	invalidOperation = 0x0502
)

// Fragment is the pixel a ShadeFunc is asked to color. Y grows upwards, as in
// window coordinates.
type Fragment struct {
	X, Y int
	U, V float32
}

// ShadeFunc computes the color of one fragment.
type ShadeFunc func(f Fragment, u Uniforms) color.NRGBA

// AttribPointer is one vertex attribute slot of a vertex array.
type AttribPointer struct {
	Enabled    bool
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// VertexArray records the attribute slots set while it was bound.
type VertexArray struct {
	ID      uint32
	Attribs map[uint32]*AttribPointer
}

// Texture is a 2D texture. Data holds rows in upload order (bottom row first
// for render targets).
type Texture struct {
	ID        uint32
	Width     int
	Height    int
	Format    uint32
	Data      []byte
	Params    map[uint32]int32
	Mipmapped bool
}

// At returns the texel at (x, y).
func (t *Texture) At(x, y int) color.NRGBA {
	switch t.Format {
	case glapi.RGB:
		i := (y*t.Width + x) * 3
		return color.NRGBA{R: t.Data[i], G: t.Data[i+1], B: t.Data[i+2], A: 255}
	default:
		i := (y*t.Width + x) * 4
		return color.NRGBA{R: t.Data[i], G: t.Data[i+1], B: t.Data[i+2], A: t.Data[i+3]}
	}
}

// Sample returns the nearest texel to (u, v), repeating outside [0, 1).
func (t *Texture) Sample(u, v float32) color.NRGBA {
	x := wrap(int(u*float32(t.Width)), t.Width)
	y := wrap(int(v*float32(t.Height)), t.Height)
	return t.At(x, y)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

type shader struct {
	xtype    uint32
	source   string
	compiled bool
	log      string
}

// Program is a linked program and its uniform values.
type Program struct {
	ID       uint32
	Linked   bool
	Uniforms map[string]int32 // name to location
	Types    map[string]string
	shaders  []uint32
	floats   map[int32][]float32
	ints     map[int32]int32
	log      string
}

type framebuffer struct {
	texture uint32
}

// Draw is one recorded DrawArrays call.
type Draw struct {
	Mode     uint32
	First    int32
	Count    int32
	Program  uint32
	VAO      uint32
	Textures map[uint32]uint32 // unit to texture at draw time
}

// Driver is a software glapi.Driver.
type Driver struct {
	// Shade colors fragments on DrawArrays. When nil, the value of a vec4
	// uniform named "uColor" is used, or opaque white.
	Shade ShadeFunc
	// FailLink makes every LinkProgram fail.
	FailLink bool

	width, height int
	pixels        []byte // default framebuffer, bottom row first

	nextID       uint32
	buffers      map[uint32][]byte
	vaos         map[uint32]*VertexArray
	shaders      map[uint32]*shader
	programs     map[uint32]*Program
	textures     map[uint32]*Texture
	framebuffers map[uint32]*framebuffer

	arrayBuffer uint32
	vao         uint32
	program     uint32
	activeUnit  uint32
	units       map[uint32]uint32
	fbo         uint32
	clearColor  [4]float32
	viewport    [4]int32
	pixelStore  map[uint32]int32

	err   uint32
	draws []Draw
}

var _ glapi.Driver = (*Driver)(nil)

// New returns a driver whose default framebuffer is width x height.
func New(width, height int) *Driver {
	return &Driver{
		width:        width,
		height:       height,
		pixels:       make([]byte, width*height*4),
		buffers:      make(map[uint32][]byte),
		vaos:         make(map[uint32]*VertexArray),
		shaders:      make(map[uint32]*shader),
		programs:     make(map[uint32]*Program),
		textures:     make(map[uint32]*Texture),
		framebuffers: make(map[uint32]*framebuffer),
		units:        make(map[uint32]uint32),
		pixelStore:   map[uint32]int32{glapi.UnpackAlignment: 4, glapi.PackAlignment: 4},
	}
}

func (d *Driver) gen() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Driver) fail(code uint32) {
	if d.err == glapi.NoError {
		d.err = code
	}
}

// ---- inspection -----------------------------------------------------------

// Live returns the number of GPU objects that have not been deleted.
func (d *Driver) Live() int {
	return len(d.buffers) + len(d.vaos) + len(d.programs) + len(d.shaders) + len(d.textures) + len(d.framebuffers)
}

// Buffer returns the contents of a buffer object.
func (d *Driver) Buffer(id uint32) ([]byte, bool) {
	b, ok := d.buffers[id]
	return b, ok
}

// VertexArray returns a vertex array object.
func (d *Driver) VertexArray(id uint32) (*VertexArray, bool) {
	v, ok := d.vaos[id]
	return v, ok
}

// Texture returns a texture object.
func (d *Driver) Texture(id uint32) (*Texture, bool) {
	t, ok := d.textures[id]
	return t, ok
}

// Program returns a program object.
func (d *Driver) Program(id uint32) (*Program, bool) {
	p, ok := d.programs[id]
	return p, ok
}

// Draws returns the recorded draw calls.
func (d *Driver) Draws() []Draw { return d.draws }

// ViewportRect returns the last Viewport call as x, y, width, height.
func (d *Driver) ViewportRect() [4]int32 { return d.viewport }

// BoundTexture returns the texture bound to unit.
func (d *Driver) BoundTexture(unit uint32) uint32 { return d.units[unit] }

// Fill sets every pixel of the bound color buffer to c.
func (d *Driver) Fill(c color.NRGBA) {
	pix, w, h := d.colorBuffer()
	for i := 0; i < w*h; i++ {
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = c.R, c.G, c.B, c.A
	}
}

// PixelAt returns the color buffer pixel at window coordinates (x, y).
func (d *Driver) PixelAt(x, y int) color.NRGBA {
	pix, w, _ := d.colorBuffer()
	i := (y*w + x) * 4
	return color.NRGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
}

func (d *Driver) colorBuffer() ([]byte, int, int) {
	if d.fbo != 0 {
		if fb := d.framebuffers[d.fbo]; fb != nil {
			if t := d.textures[fb.texture]; t != nil {
				return t.Data, t.Width, t.Height
			}
		}
	}
	return d.pixels, d.width, d.height
}

// ---- state ----------------------------------------------------------------

func (d *Driver) GetString(name uint32) string {
	switch name {
	case glapi.Vendor:
		return "gltest"
	case glapi.Renderer:
		return "gltest software"
	case glapi.Version:
		return "OpenGL ES 3.0 gltest"
	}
	d.fail(invalidEnum)
	return ""
}

func (d *Driver) GetError() uint32 {
	e := d.err
	d.err = glapi.NoError
	return e
}

func (d *Driver) GetIntegerv(pname uint32, data *int32) {
	switch pname {
	case glapi.CurrentProgram:
		*data = int32(d.program)
	case glapi.ActiveTexture:
		*data = int32(glapi.Texture0 + d.activeUnit)
	case glapi.TextureBinding2D:
		*data = int32(d.units[d.activeUnit])
	case glapi.FramebufferBinding:
		*data = int32(d.fbo)
	case glapi.UnpackAlignment, glapi.PackAlignment:
		*data = d.pixelStore[pname]
	default:
		d.fail(invalidEnum)
	}
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.viewport = [4]int32{x, y, width, height}
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Driver) Clear(mask uint32) {
	if mask&glapi.ColorBufferBit == 0 {
		return
	}
	c := d.clearColor
	d.Fill(color.NRGBA{R: unorm(c[0]), G: unorm(c[1]), B: unorm(c[2]), A: unorm(c[3])})
}

func unorm(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// ---- buffers and vertex arrays --------------------------------------------

func (d *Driver) GenBuffers(n int32, buffers *uint32) {
	out := unsafe.Slice(buffers, n)
	for i := range out {
		id := d.gen()
		d.buffers[id] = nil
		out[i] = id
	}
}

func (d *Driver) DeleteBuffers(n int32, buffers *uint32) {
	for _, id := range unsafe.Slice(buffers, n) {
		delete(d.buffers, id)
		if d.arrayBuffer == id {
			d.arrayBuffer = 0
		}
	}
}

func (d *Driver) BindBuffer(target, buffer uint32) {
	if target != glapi.ArrayBuffer {
		d.fail(invalidEnum)
		return
	}
	if _, ok := d.buffers[buffer]; buffer != 0 && !ok {
		d.fail(invalidOperation)
		return
	}
	d.arrayBuffer = buffer
}

func (d *Driver) BufferData(target uint32, data []byte, usage uint32) {
	if target != glapi.ArrayBuffer || d.arrayBuffer == 0 {
		d.fail(invalidOperation)
		return
	}
	d.buffers[d.arrayBuffer] = append([]byte(nil), data...)
}

func (d *Driver) GenVertexArrays(n int32, arrays *uint32) {
	out := unsafe.Slice(arrays, n)
	for i := range out {
		id := d.gen()
		d.vaos[id] = &VertexArray{ID: id, Attribs: make(map[uint32]*AttribPointer)}
		out[i] = id
	}
}

func (d *Driver) DeleteVertexArrays(n int32, arrays *uint32) {
	for _, id := range unsafe.Slice(arrays, n) {
		delete(d.vaos, id)
		if d.vao == id {
			d.vao = 0
		}
	}
}

func (d *Driver) BindVertexArray(array uint32) {
	if _, ok := d.vaos[array]; array != 0 && !ok {
		d.fail(invalidOperation)
		return
	}
	d.vao = array
}

func (d *Driver) attrib(index uint32) *AttribPointer {
	v := d.vaos[d.vao]
	if v == nil {
		d.fail(invalidOperation)
		return nil
	}
	a := v.Attribs[index]
	if a == nil {
		a = &AttribPointer{}
		v.Attribs[index] = a
	}
	return a
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	if a := d.attrib(index); a != nil {
		a.Enabled = true
	}
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	if size < 1 || size > 4 {
		d.fail(invalidValue)
		return
	}
	if d.arrayBuffer == 0 {
		d.fail(invalidOperation)
		return
	}
	if a := d.attrib(index); a != nil {
		a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, xtype, normalized, stride, offset
		a.Buffer = d.arrayBuffer
	}
}

// ---- shaders and programs -------------------------------------------------

var uniformDecl = regexp.MustCompile(`uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)

func (d *Driver) CreateShader(xtype uint32) uint32 {
	if xtype != glapi.VertexShader && xtype != glapi.FragmentShader {
		d.fail(invalidEnum)
		return 0
	}
	id := d.gen()
	d.shaders[id] = &shader{xtype: xtype}
	return id
}

func (d *Driver) ShaderSource(id uint32, source string) {
	if s := d.shaders[id]; s != nil {
		s.source = source
	}
}

// CompileShader fails for sources containing an #error directive; the rest
// of that line becomes the info log.
func (d *Driver) CompileShader(id uint32) {
	s := d.shaders[id]
	if s == nil {
		d.fail(invalidValue)
		return
	}
	s.compiled, s.log = true, ""
	for _, line := range strings.Split(s.source, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "#error"); ok {
			s.compiled = false
			s.log = "ERROR: 0:1: '#error' :" + rest
			return
		}
	}
}

func (d *Driver) GetShaderiv(id, pname uint32, params *int32) {
	s := d.shaders[id]
	if s == nil {
		d.fail(invalidValue)
		return
	}
	switch pname {
	case glapi.CompileStatus:
		*params = boolInt(s.compiled)
	case glapi.InfoLogLength:
		*params = int32(len(s.log))
	default:
		d.fail(invalidEnum)
	}
}

func (d *Driver) GetShaderInfoLog(id uint32) string {
	if s := d.shaders[id]; s != nil {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(id uint32) { delete(d.shaders, id) }

func (d *Driver) CreateProgram() uint32 {
	id := d.gen()
	d.programs[id] = &Program{
		ID:       id,
		Uniforms: make(map[string]int32),
		Types:    make(map[string]string),
		floats:   make(map[int32][]float32),
		ints:     make(map[int32]int32),
	}
	return id
}

func (d *Driver) AttachShader(program, id uint32) {
	p := d.programs[program]
	if p == nil || d.shaders[id] == nil {
		d.fail(invalidValue)
		return
	}
	p.shaders = append(p.shaders, id)
}

// LinkProgram assigns uniform locations in declaration order across the
// attached stages.
func (d *Driver) LinkProgram(program uint32) {
	p := d.programs[program]
	if p == nil {
		d.fail(invalidValue)
		return
	}
	p.Linked, p.log = false, ""
	if d.FailLink {
		p.log = "error: linking with uncompiled/unspecialized shader"
		return
	}
	stages := map[uint32]bool{}
	for _, sid := range p.shaders {
		s := d.shaders[sid]
		if s == nil || !s.compiled {
			p.log = "error: linking with uncompiled shader"
			return
		}
		stages[s.xtype] = true
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			if _, ok := p.Uniforms[m[2]]; !ok {
				p.Uniforms[m[2]] = int32(len(p.Uniforms))
				p.Types[m[2]] = m[1]
			}
		}
	}
	if !stages[glapi.VertexShader] || !stages[glapi.FragmentShader] {
		p.log = "error: program needs a vertex and a fragment shader"
		return
	}
	p.Linked = true
}

func (d *Driver) GetProgramiv(program, pname uint32, params *int32) {
	p := d.programs[program]
	if p == nil {
		d.fail(invalidValue)
		return
	}
	switch pname {
	case glapi.LinkStatus:
		*params = boolInt(p.Linked)
	case glapi.InfoLogLength:
		*params = int32(len(p.log))
	default:
		d.fail(invalidEnum)
	}
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	if p := d.programs[program]; p != nil {
		return p.log
	}
	return ""
}

func (d *Driver) UseProgram(program uint32) {
	if program != 0 {
		if p := d.programs[program]; p == nil || !p.Linked {
			d.fail(invalidOperation)
			return
		}
	}
	d.program = program
}

func (d *Driver) DeleteProgram(program uint32) {
	delete(d.programs, program)
	if d.program == program {
		d.program = 0
	}
}

// ---- uniforms -------------------------------------------------------------

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	p := d.programs[program]
	if p == nil || !p.Linked {
		d.fail(invalidOperation)
		return -1
	}
	loc, ok := p.Uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *Driver) current() *Program {
	p := d.programs[d.program]
	if p == nil {
		d.fail(invalidOperation)
	}
	return p
}

func (d *Driver) Uniform1f(location int32, v0 float32) {
	if p := d.current(); p != nil && location >= 0 {
		p.floats[location] = []float32{v0}
	}
}

func (d *Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	if p := d.current(); p != nil && location >= 0 {
		p.floats[location] = []float32{v0, v1, v2, v3}
	}
}

func (d *Driver) Uniform1i(location int32, v0 int32) {
	if p := d.current(); p != nil && location >= 0 {
		p.ints[location] = v0
	}
}

func (d *Driver) GetUniformfv(program uint32, location int32, params *float32) {
	p := d.programs[program]
	if p == nil {
		d.fail(invalidValue)
		return
	}
	vals := p.floats[location]
	copy(unsafe.Slice(params, len(vals)), vals)
}

func (d *Driver) GetUniformiv(program uint32, location int32, params *int32) {
	p := d.programs[program]
	if p == nil {
		d.fail(invalidValue)
		return
	}
	*params = p.ints[location]
}

// ---- textures -------------------------------------------------------------

func (d *Driver) GenTextures(n int32, textures *uint32) {
	out := unsafe.Slice(textures, n)
	for i := range out {
		id := d.gen()
		d.textures[id] = &Texture{ID: id, Params: make(map[uint32]int32)}
		out[i] = id
	}
}

func (d *Driver) DeleteTextures(n int32, textures *uint32) {
	for _, id := range unsafe.Slice(textures, n) {
		delete(d.textures, id)
		for unit, bound := range d.units {
			if bound == id {
				delete(d.units, unit)
			}
		}
	}
}

func (d *Driver) ActiveTexture(texture uint32) {
	if texture < glapi.Texture0 || texture >= glapi.Texture0+32 {
		d.fail(invalidEnum)
		return
	}
	d.activeUnit = texture - glapi.Texture0
}

func (d *Driver) BindTexture(target, texture uint32) {
	if target != glapi.Texture2D {
		d.fail(invalidEnum)
		return
	}
	if _, ok := d.textures[texture]; texture != 0 && !ok {
		d.fail(invalidOperation)
		return
	}
	d.units[d.activeUnit] = texture
}

func (d *Driver) bound() *Texture {
	t := d.textures[d.units[d.activeUnit]]
	if t == nil {
		d.fail(invalidOperation)
	}
	return t
}

func (d *Driver) TexImage2D(target uint32, level, internalformat, width, height int32, format, xtype uint32, pixels []byte) {
	t := d.bound()
	if t == nil || level != 0 {
		return
	}
	if xtype != glapi.UnsignedByte || (format != glapi.RGB && format != glapi.RGBA) || uint32(internalformat) != format {
		d.fail(invalidEnum)
		return
	}
	channels := 4
	if format == glapi.RGB {
		channels = 3
	}
	row := int(width) * channels
	if align := int(d.pixelStore[glapi.UnpackAlignment]); pixels != nil && row%align != 0 {
		// Packed rows would be misread; refuse like a strict driver would.
		d.fail(invalidOperation)
		return
	}
	t.Width, t.Height, t.Format = int(width), int(height), format
	t.Data = make([]byte, row*int(height))
	if pixels != nil {
		copy(t.Data, pixels)
	}
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	if t := d.bound(); t != nil {
		t.Params[pname] = param
	}
}

func (d *Driver) PixelStorei(pname uint32, param int32) {
	switch param {
	case 1, 2, 4, 8:
		d.pixelStore[pname] = param
	default:
		d.fail(invalidValue)
	}
}

func (d *Driver) GenerateMipmap(target uint32) {
	if t := d.bound(); t != nil {
		t.Mipmapped = true
	}
}

// ---- framebuffers ---------------------------------------------------------

func (d *Driver) GenFramebuffers(n int32, framebuffers *uint32) {
	out := unsafe.Slice(framebuffers, n)
	for i := range out {
		id := d.gen()
		d.framebuffers[id] = &framebuffer{}
		out[i] = id
	}
}

func (d *Driver) DeleteFramebuffers(n int32, framebuffers *uint32) {
	for _, id := range unsafe.Slice(framebuffers, n) {
		delete(d.framebuffers, id)
		if d.fbo == id {
			d.fbo = 0
		}
	}
}

func (d *Driver) BindFramebuffer(target, framebuffer uint32) {
	if _, ok := d.framebuffers[framebuffer]; framebuffer != 0 && !ok {
		d.fail(invalidOperation)
		return
	}
	d.fbo = framebuffer
}

func (d *Driver) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	fb := d.framebuffers[d.fbo]
	if fb == nil || attachment != glapi.ColorAttachment0 {
		d.fail(invalidOperation)
		return
	}
	fb.texture = texture
}

func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	if d.fbo == 0 {
		return glapi.FramebufferComplete
	}
	fb := d.framebuffers[d.fbo]
	if t := d.textures[fb.texture]; t != nil && t.Format == glapi.RGBA && len(t.Data) > 0 {
		return glapi.FramebufferComplete
	}
	return 0x8CD6 // GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT
}

// ---- drawing and readback -------------------------------------------------

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	p := d.programs[d.program]
	v := d.vaos[d.vao]
	if p == nil || v == nil {
		d.fail(invalidOperation)
		return
	}
	if first < 0 || count < 0 {
		d.fail(invalidValue)
		return
	}
	if !d.attribsInRange(v, first, count) {
		d.fail(invalidOperation)
		return
	}

	units := make(map[uint32]uint32, len(d.units))
	for k, id := range d.units {
		units[k] = id
	}
	d.draws = append(d.draws, Draw{Mode: mode, First: first, Count: count, Program: p.ID, VAO: v.ID, Textures: units})

	shade := d.Shade
	if shade == nil {
		shade = defaultShade
	}
	u := Uniforms{d: d, p: p}
	pix, w, h := d.colorBuffer()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := shade(Fragment{
				X: x,
				Y: y,
				U: (float32(x) + 0.5) / float32(w),
				V: (float32(y) + 0.5) / float32(h),
			}, u)
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// attribsInRange reports whether every enabled slot of v has a buffer large
// enough for vertices [first, first+count).
func (d *Driver) attribsInRange(v *VertexArray, first, count int32) bool {
	if count == 0 {
		return true
	}
	for _, a := range v.Attribs {
		if !a.Enabled {
			continue
		}
		buf, ok := d.buffers[a.Buffer]
		if !ok {
			return false
		}
		elem := 4
		switch a.Type {
		case glapi.UnsignedByte:
			elem = 1
		case glapi.UnsignedShort:
			elem = 2
		}
		row := int(a.Size) * elem
		stride := int(a.Stride)
		if stride == 0 {
			stride = row
		}
		if int(first+count-1)*stride+a.Offset+row > len(buf) {
			return false
		}
	}
	return true
}

func defaultShade(_ Fragment, u Uniforms) color.NRGBA {
	if c, ok := u.Vec4("uColor"); ok {
		return color.NRGBA{R: unorm(c[0]), G: unorm(c[1]), B: unorm(c[2]), A: unorm(c[3])}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

func (d *Driver) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	if format != glapi.RGBA || xtype != glapi.UnsignedByte {
		d.fail(invalidEnum)
		return
	}
	src, w, h := d.colorBuffer()
	if x < 0 || y < 0 || int(x+width) > w || int(y+height) > h || len(pixels) < int(width*height*4) {
		d.fail(invalidValue)
		return
	}
	row := int(width) * 4
	for r := 0; r < int(height); r++ {
		off := ((int(y)+r)*w + int(x)) * 4
		copy(pixels[r*row:(r+1)*row], src[off:off+row])
	}
}

// Uniforms reads the values set on the program being drawn.
type Uniforms struct {
	d *Driver
	p *Program
}

// Float returns a float uniform.
func (u Uniforms) Float(name string) (float32, bool) {
	loc, ok := u.p.Uniforms[name]
	if !ok || len(u.p.floats[loc]) != 1 {
		return 0, false
	}
	return u.p.floats[loc][0], true
}

// Vec4 returns a vec4 uniform.
func (u Uniforms) Vec4(name string) ([4]float32, bool) {
	loc, ok := u.p.Uniforms[name]
	if !ok || len(u.p.floats[loc]) != 4 {
		return [4]float32{}, false
	}
	v := u.p.floats[loc]
	return [4]float32{v[0], v[1], v[2], v[3]}, true
}

// Sampler returns the texture bound to the unit a sampler uniform names.
func (u Uniforms) Sampler(name string) (*Texture, bool) {
	loc, ok := u.p.Uniforms[name]
	if !ok {
		return nil, false
	}
	t := u.d.textures[u.d.units[uint32(u.p.ints[loc])]]
	return t, t != nil
}

func boolInt(b bool) int32 {
	if b {
		return glapi.True
	}
	return glapi.False
}

// String describes the live objects, for test failure messages.
func (d *Driver) String() string {
	return fmt.Sprintf("gltest.Driver{buffers:%d vaos:%d programs:%d shaders:%d textures:%d framebuffers:%d}",
		len(d.buffers), len(d.vaos), len(d.programs), len(d.shaders), len(d.textures), len(d.framebuffers))
}
