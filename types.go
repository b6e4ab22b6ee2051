package offscreen

import (
	"fmt"
	"image/color"

	"github.com/go-theft-auto/offscreen/glapi"
)

// ScalarType is the element type of a vertex attribute.
type ScalarType uint32

const (
	Float32 ScalarType = glapi.Float
	Uint8   ScalarType = glapi.UnsignedByte
	Uint16  ScalarType = glapi.UnsignedShort
)

// Size returns the byte size of one element.
func (t ScalarType) Size() int {
	switch t {
	case Float32:
		return 4
	case Uint8:
		return 1
	case Uint16:
		return 2
	default:
		return 0
	}
}

// GL returns the GL enum passed to VertexAttribPointer.
func (t ScalarType) GL() uint32 { return uint32(t) }

func (t ScalarType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	default:
		return fmt.Sprintf("ScalarType(0x%X)", uint32(t))
	}
}

// Vec4 is a four component float vector, used for vec4 uniforms and colors.
type Vec4 [4]float32

// ColorVec4 converts c to a straight-alpha RGBA vector in [0, 1].
func ColorVec4(c color.Color) Vec4 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Vec4{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

// NRGBA converts v back to an 8-bit color, clamping each component.
func (v Vec4) NRGBA() color.NRGBA {
	return color.NRGBA{R: unorm8(v[0]), G: unorm8(v[1]), B: unorm8(v[2]), A: unorm8(v[3])}
}

// unorm8 maps [0, 1] to [0, 255] the way GL converts to a normalized byte.
func unorm8(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
