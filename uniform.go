package offscreen

import (
	"fmt"

	"github.com/go-theft-auto/offscreen/glapi"
)

// UniformType tags the value a Uniform carries.
type UniformType int

const (
	UniformFloat UniformType = iota
	UniformVec4
	UniformSampler2D
)

func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec4:
		return "vec4"
	case UniformSampler2D:
		return "sampler2D"
	default:
		return fmt.Sprintf("UniformType(%d)", int(t))
	}
}

// UniformValue is one of Float, Vec4 or Sampler2D.
type UniformValue interface {
	Type() UniformType
}

// Float is a float uniform value.
type Float float32

// Type implements UniformValue.
func (Float) Type() UniformType { return UniformFloat }

// Type implements UniformValue.
func (Vec4) Type() UniformType { return UniformVec4 }

// Sampler2D binds a texture to a texture unit.
type Sampler2D struct {
	Texture *Texture
	Unit    uint32
}

// Type implements UniformValue.
func (Sampler2D) Type() UniformType { return UniformSampler2D }

// Uniform is a named shader input. A sampler uniform owns its texture.
type Uniform struct {
	Name  string
	value UniformValue
}

// NewUniform returns a uniform holding v.
func NewUniform(name string, v UniformValue) *Uniform {
	return &Uniform{Name: name, value: v}
}

// NewFloatUniform returns a float uniform.
func NewFloatUniform(name string, v float32) *Uniform {
	return NewUniform(name, Float(v))
}

// NewVec4Uniform returns a vec4 uniform.
func NewVec4Uniform(name string, v Vec4) *Uniform {
	return NewUniform(name, v)
}

// NewSamplerUniform loads the image at path into a texture bound to unit.
// A failed decode is returned as *TextureError.
func NewSamplerUniform(drv glapi.Driver, name, path string, unit uint32, opts TextureOptions) (*Uniform, error) {
	tex, err := LoadTexture(drv, path, unit, opts)
	if err != nil {
		return nil, err
	}
	return NewUniform(name, Sampler2D{Texture: tex, Unit: unit}), nil
}

// Type returns the tag of the current value.
func (u *Uniform) Type() UniformType { return u.value.Type() }

// Value returns the current value.
func (u *Uniform) Value() UniformValue { return u.value }

// Set replaces the value. The new value must have the same type.
func (u *Uniform) Set(v UniformValue) error {
	if v.Type() != u.value.Type() {
		return fmt.Errorf("uniform %q: cannot set %s value on %s uniform", u.Name, v.Type(), u.value.Type())
	}
	if old, ok := u.value.(Sampler2D); ok && old.Texture != v.(Sampler2D).Texture {
		old.Texture.Delete()
	}
	u.value = v
	return nil
}

// SetFloat updates a float uniform in place. It panics on other types, like a
// failed type assertion would.
func (u *Uniform) SetFloat(v float32) {
	if _, ok := u.value.(Float); !ok {
		panic(fmt.Sprintf("uniform %q: SetFloat on %s uniform", u.Name, u.value.Type()))
	}
	u.value = Float(v)
}

// Float returns the value of a float uniform.
func (u *Uniform) Float() (float32, bool) {
	f, ok := u.value.(Float)
	return float32(f), ok
}

// Delete releases the texture of a sampler uniform.
func (u *Uniform) Delete() {
	if s, ok := u.value.(Sampler2D); ok {
		s.Texture.Delete()
	}
}
