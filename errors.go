package offscreen

import (
	"errors"
	"fmt"
)

var (
	// ErrInit marks a failure to acquire the rendering context or surface.
	// Nothing can be rendered after it; callers abort the run.
	ErrInit = errors.New("fatal initialization error")

	// ErrNoAttributes is returned when a mesh is built from an empty builder.
	ErrNoAttributes = errors.New("mesh builder has no attributes")

	// ErrMaterialNotEnabled is returned when uniforms are pushed to a material
	// whose program is not the current one.
	ErrMaterialNotEnabled = errors.New("material is not enabled")

	// ErrDestroyed is returned when a released resource is used again.
	ErrDestroyed = errors.New("resource already destroyed")
)

// InitError reports which acquisition step failed.
type InitError struct {
	Step string
	Err  error
}

func (e *InitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("init %s failed", e.Step)
	}
	return fmt.Sprintf("init %s: %v", e.Step, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Is makes every InitError match ErrInit.
func (e *InitError) Is(target error) bool { return target == ErrInit }

// NewInitError wraps err as a fatal initialization failure of step.
func NewInitError(step string, err error) error {
	return &InitError{Step: step, Err: err}
}

// ShaderError carries the driver's info log for a failed compile or link.
type ShaderError struct {
	Material string
	Stage    string // "vertex", "fragment" or "link"
	Log      string
}

func (e *ShaderError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("material %q: program linking failed: %s", e.Material, e.Log)
	}
	return fmt.Sprintf("material %q: %s shader compilation failed: %s", e.Material, e.Stage, e.Log)
}

// TextureError reports an image that could not be loaded into a texture.
type TextureError struct {
	Path string
	Err  error
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("texture %s: %v", e.Path, e.Err)
}

func (e *TextureError) Unwrap() error { return e.Err }

// ExportError reports a frame that could not be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("save frame %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// VertexCountError reports an attribute whose vertex count differs from the
// first attribute of the same builder.
type VertexCountError struct {
	Attribute string
	Want, Got int
}

func (e *VertexCountError) Error() string {
	return fmt.Sprintf("attribute %q has %d vertices, want %d", e.Attribute, e.Got, e.Want)
}

// AttributeError reports an attribute descriptor that cannot be interleaved.
type AttributeError struct {
	Attribute string
	Reason    string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %q: %s", e.Attribute, e.Reason)
}
