package offscreen

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-theft-auto/offscreen/glapi"
)

// MaxAttributeName is the longest attribute name kept by AddAttribute.
const MaxAttributeName = 31

// Attribute describes one caller-owned vertex attribute array.
type Attribute struct {
	Name        string
	Components  int
	Type        ScalarType
	Data        any // []float32, []uint8 or []uint16
	VertexCount int
}

// rowSize is the number of bytes one vertex contributes.
func (a Attribute) rowSize() int { return a.Components * a.Type.Size() }

// AttributeLayout is where an attribute landed inside the interleaved buffer.
type AttributeLayout struct {
	Name       string
	Slot       uint32
	Components int
	Type       ScalarType
	Offset     int
}

// Layout describes an interleaved vertex buffer.
type Layout struct {
	Stride      int
	VertexCount int
	Attributes  []AttributeLayout
}

// Size returns the byte length of the interleaved buffer.
func (l Layout) Size() int { return l.Stride * l.VertexCount }

// MeshBuilder collects named attribute arrays and interleaves them into one
// vertex buffer. Insertion order decides both the interleave order and the
// attribute slot each array is bound to.
//
// Build does not consume the builder; it can be built again, e.g. once per
// context.
type MeshBuilder struct {
	attrs     []Attribute
	primitive uint32
}

// NewMeshBuilder returns an empty builder drawing triangles.
func NewMeshBuilder() *MeshBuilder {
	return &MeshBuilder{primitive: glapi.Triangles}
}

// AddAttribute appends an attribute. Names longer than MaxAttributeName are
// truncated; everything else is checked when the builder is interleaved.
func (b *MeshBuilder) AddAttribute(name string, components int, typ ScalarType, data any, vertexCount int) *MeshBuilder {
	if len(name) > MaxAttributeName {
		name = name[:MaxAttributeName]
	}
	b.attrs = append(b.attrs, Attribute{
		Name:        name,
		Components:  components,
		Type:        typ,
		Data:        data,
		VertexCount: vertexCount,
	})
	return b
}

// AddFloat32 appends a float attribute, deriving the vertex count from data.
func (b *MeshBuilder) AddFloat32(name string, components int, data []float32) *MeshBuilder {
	return b.AddAttribute(name, components, Float32, data, vertexCount(len(data), components))
}

// AddUint8 appends an unsigned byte attribute.
func (b *MeshBuilder) AddUint8(name string, components int, data []uint8) *MeshBuilder {
	return b.AddAttribute(name, components, Uint8, data, vertexCount(len(data), components))
}

// AddUint16 appends an unsigned short attribute.
func (b *MeshBuilder) AddUint16(name string, components int, data []uint16) *MeshBuilder {
	return b.AddAttribute(name, components, Uint16, data, vertexCount(len(data), components))
}

func vertexCount(n, components int) int {
	if components <= 0 {
		return 0
	}
	return n / components
}

// SetPrimitive sets the mode used by Mesh.Draw.
func (b *MeshBuilder) SetPrimitive(mode uint32) *MeshBuilder {
	b.primitive = mode
	return b
}

// Attributes returns the registered attributes in slot order.
func (b *MeshBuilder) Attributes() []Attribute {
	return append([]Attribute(nil), b.attrs...)
}

// Layout computes the interleaved layout without touching attribute data.
func (b *MeshBuilder) Layout() (Layout, error) {
	if len(b.attrs) == 0 {
		return Layout{}, ErrNoAttributes
	}

	l := Layout{
		VertexCount: b.attrs[0].VertexCount,
		Attributes:  make([]AttributeLayout, 0, len(b.attrs)),
	}
	for i, a := range b.attrs {
		if a.Components < 1 || a.Components > 4 {
			return Layout{}, &AttributeError{Attribute: a.Name, Reason: fmt.Sprintf("component count %d not in 1..4", a.Components)}
		}
		if a.Type.Size() == 0 {
			return Layout{}, &AttributeError{Attribute: a.Name, Reason: "unsupported element type " + a.Type.String()}
		}
		if a.VertexCount < 0 {
			return Layout{}, &AttributeError{Attribute: a.Name, Reason: fmt.Sprintf("negative vertex count %d", a.VertexCount)}
		}
		if a.VertexCount != l.VertexCount {
			return Layout{}, &VertexCountError{Attribute: a.Name, Want: l.VertexCount, Got: a.VertexCount}
		}
		l.Attributes = append(l.Attributes, AttributeLayout{
			Name:       a.Name,
			Slot:       uint32(i),
			Components: a.Components,
			Type:       a.Type,
			Offset:     l.Stride,
		})
		l.Stride += a.rowSize()
	}
	return l, nil
}

// Interleave packs every attribute into one buffer:
// [attr0 of v0][attr1 of v0]...[attr0 of v1]...
func (b *MeshBuilder) Interleave() (Layout, []byte, error) {
	l, err := b.Layout()
	if err != nil {
		return Layout{}, nil, err
	}

	buf := make([]byte, l.Size())
	for i, a := range b.attrs {
		src, err := attributeBytes(a)
		if err != nil {
			return Layout{}, nil, err
		}
		size := a.rowSize()
		if len(src) < l.VertexCount*size {
			return Layout{}, nil, &AttributeError{
				Attribute: a.Name,
				Reason:    fmt.Sprintf("%d bytes of data, need %d for %d vertices", len(src), l.VertexCount*size, l.VertexCount),
			}
		}
		off := l.Attributes[i].Offset
		for v := 0; v < l.VertexCount; v++ {
			copy(buf[v*l.Stride+off:], src[v*size:(v+1)*size])
		}
	}
	return l, buf, nil
}

// attributeBytes encodes the attribute's source slice as native-endian bytes.
func attributeBytes(a Attribute) ([]byte, error) {
	mismatch := func(got string) error {
		return &AttributeError{Attribute: a.Name, Reason: fmt.Sprintf("data is %s, declared %s", got, a.Type)}
	}
	switch data := a.Data.(type) {
	case []float32:
		if a.Type != Float32 {
			return nil, mismatch("[]float32")
		}
		out := make([]byte, 0, len(data)*4)
		for _, f := range data {
			out = binary.NativeEndian.AppendUint32(out, math.Float32bits(f))
		}
		return out, nil
	case []uint8:
		if a.Type != Uint8 {
			return nil, mismatch("[]uint8")
		}
		return data, nil
	case []uint16:
		if a.Type != Uint16 {
			return nil, mismatch("[]uint16")
		}
		out := make([]byte, 0, len(data)*2)
		for _, u := range data {
			out = binary.NativeEndian.AppendUint16(out, u)
		}
		return out, nil
	default:
		return nil, &AttributeError{Attribute: a.Name, Reason: fmt.Sprintf("unsupported data %T", a.Data)}
	}
}

// Build interleaves the attributes, uploads them as a static vertex buffer and
// records one enabled attribute slot per attribute in a new vertex array.
func (b *MeshBuilder) Build(drv glapi.Driver) (*Mesh, error) {
	l, buf, err := b.Interleave()
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		drv:         drv,
		vertexCount: l.VertexCount,
		stride:      l.Stride,
		primitive:   b.primitive,
		layout:      l,
	}
	drv.GenVertexArrays(1, &m.vao)
	drv.GenBuffers(1, &m.vbo)
	if m.vao == 0 || m.vbo == 0 {
		m.Delete()
		return nil, fmt.Errorf("allocate vertex objects: %s", glapi.ErrorString(drv.GetError()))
	}

	drv.BindVertexArray(m.vao)
	drv.BindBuffer(glapi.ArrayBuffer, m.vbo)
	drv.BufferData(glapi.ArrayBuffer, buf, glapi.StaticDraw)

	for _, a := range l.Attributes {
		drv.EnableVertexAttribArray(a.Slot)
		drv.VertexAttribPointer(a.Slot, int32(a.Components), a.Type.GL(), false, int32(l.Stride), a.Offset)
	}

	drv.BindVertexArray(0)
	drv.BindBuffer(glapi.ArrayBuffer, 0)
	return m, nil
}

// Mesh is a GPU-resident interleaved vertex buffer and its vertex array.
type Mesh struct {
	drv         glapi.Driver
	vao, vbo    uint32
	vertexCount int
	stride      int
	primitive   uint32
	layout      Layout
}

// VertexCount returns the number of vertices drawn by Draw.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// Stride returns the bytes per vertex.
func (m *Mesh) Stride() int { return m.stride }

// VAO returns the vertex array handle (0 once deleted).
func (m *Mesh) VAO() uint32 { return m.vao }

// VBO returns the vertex buffer handle (0 once deleted).
func (m *Mesh) VBO() uint32 { return m.vbo }

// Layout returns the layout the buffer was built with.
func (m *Mesh) Layout() Layout { return m.layout }

// Draw issues one draw call covering every vertex.
func (m *Mesh) Draw() error {
	if m.vao == 0 {
		return ErrDestroyed
	}
	m.drv.BindVertexArray(m.vao)
	m.drv.DrawArrays(m.primitive, 0, int32(m.vertexCount))
	m.drv.BindVertexArray(0)
	return nil
}

// Delete releases the vertex buffer and vertex array. It is safe to call more
// than once.
func (m *Mesh) Delete() {
	if m == nil || m.drv == nil {
		return
	}
	if m.vbo != 0 {
		m.drv.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		m.drv.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
