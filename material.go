package offscreen

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-theft-auto/offscreen/glapi"
)

// Material is a linked shader program plus a cache of its uniform locations.
type Material struct {
	drv       glapi.Driver
	name      string
	program   uint32
	enabled   bool
	locations map[string]int32
	log       *slog.Logger
}

// MaterialOption configures a Material.
type MaterialOption func(*Material)

// WithMaterialLogger sets the logger used for compile and link events.
func WithMaterialLogger(l *slog.Logger) MaterialOption {
	return func(m *Material) { m.log = l }
}

// NewMaterial reads and compiles the two shader stages and links them.
func NewMaterial(drv glapi.Driver, name, vertexPath, fragmentPath string, opts ...MaterialOption) (*Material, error) {
	vertexSrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("material %q: read vertex shader: %w", name, err)
	}
	fragmentSrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("material %q: read fragment shader: %w", name, err)
	}
	return NewMaterialFromSource(drv, name, string(vertexSrc), string(fragmentSrc), opts...)
}

// NewMaterialFromSource compiles and links a program from in-memory sources.
// Compile and link failures are returned as *ShaderError.
func NewMaterialFromSource(drv glapi.Driver, name, vertexSrc, fragmentSrc string, opts ...MaterialOption) (*Material, error) {
	m := &Material{
		drv:       drv,
		name:      name,
		locations: make(map[string]int32),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	program, err := createShaderProgram(drv, name, vertexSrc, fragmentSrc)
	if err != nil {
		m.log.Warn("material failed", "material", name, "err", err)
		return nil, err
	}
	m.program = program
	m.log.Debug("material compiled", "material", name, "program", program)
	return m, nil
}

// Name returns the material name.
func (m *Material) Name() string { return m.name }

// Program returns the program handle (0 once deleted).
func (m *Material) Program() uint32 { return m.program }

// Enabled reports whether the program is the current one.
func (m *Material) Enabled() bool { return m.enabled }

// Enable makes the program current.
func (m *Material) Enable() {
	m.drv.UseProgram(m.program)
	m.enabled = true
}

// Disable clears the current program.
func (m *Material) Disable() {
	m.drv.UseProgram(0)
	m.enabled = false
}

// SetUniform pushes u to the program. Names the program does not use are
// ignored.
func (m *Material) SetUniform(u *Uniform) error {
	if m.program == 0 {
		return ErrDestroyed
	}
	if !m.enabled {
		return ErrMaterialNotEnabled
	}

	loc := m.location(u.Name)
	if loc < 0 {
		return nil
	}

	switch v := u.Value().(type) {
	case Float:
		m.drv.Uniform1f(loc, float32(v))
	case Vec4:
		m.drv.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case Sampler2D:
		m.drv.ActiveTexture(glapi.Texture0 + v.Unit)
		m.drv.BindTexture(glapi.Texture2D, v.Texture.ID())
		m.drv.Uniform1i(loc, int32(v.Unit))
	default:
		return fmt.Errorf("uniform %q: unsupported value %T", u.Name, v)
	}
	return nil
}

// Apply pushes every uniform in order.
func (m *Material) Apply(uniforms ...*Uniform) error {
	for _, u := range uniforms {
		if err := m.SetUniform(u); err != nil {
			return err
		}
	}
	return nil
}

// location returns the cached uniform location, -1 when absent.
func (m *Material) location(name string) int32 {
	loc, ok := m.locations[name]
	if !ok {
		loc = m.drv.GetUniformLocation(m.program, name)
		m.locations[name] = loc
	}
	return loc
}

// Delete releases the program.
func (m *Material) Delete() {
	if m == nil || m.program == 0 {
		return
	}
	if m.enabled {
		m.Disable()
	}
	m.drv.DeleteProgram(m.program)
	m.program = 0
}

// createShaderProgram compiles and links a shader program. Shader objects are
// always released; the program is released when linking fails.
func createShaderProgram(drv glapi.Driver, material, vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(drv, material, glapi.VertexShader, vertexSrc)
	if err != nil {
		return 0, err
	}
	defer drv.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(drv, material, glapi.FragmentShader, fragmentSrc)
	if err != nil {
		return 0, err
	}
	defer drv.DeleteShader(fragmentShader)

	program := drv.CreateProgram()
	drv.AttachShader(program, vertexShader)
	drv.AttachShader(program, fragmentShader)
	drv.LinkProgram(program)

	var status int32
	drv.GetProgramiv(program, glapi.LinkStatus, &status)
	if status == glapi.False {
		log := drv.GetProgramInfoLog(program)
		drv.DeleteProgram(program)
		return 0, &ShaderError{Material: material, Stage: "link", Log: log}
	}
	return program, nil
}

func compileShader(drv glapi.Driver, material string, xtype uint32, source string) (uint32, error) {
	shader := drv.CreateShader(xtype)
	drv.ShaderSource(shader, source)
	drv.CompileShader(shader)

	var status int32
	drv.GetShaderiv(shader, glapi.CompileStatus, &status)
	if status == glapi.False {
		log := drv.GetShaderInfoLog(shader)
		drv.DeleteShader(shader)
		stage := "vertex"
		if xtype == glapi.FragmentShader {
			stage = "fragment"
		}
		return 0, &ShaderError{Material: material, Stage: stage, Log: log}
	}
	return shader, nil
}
