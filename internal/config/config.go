// Package config describes a render job: surface size, shaders, uniforms and
// the frame sequence to export. Jobs are read from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/glapi"
)

// Config is one render job.
type Config struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	// ClearColor is RGBA in [0,1].
	ClearColor [4]float32 `yaml:"clear_color" toml:"clear_color"`

	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`

	Frames int `yaml:"frames" toml:"frames"`
	// Output is a fmt pattern taking the frame index.
	Output string `yaml:"output" toml:"output"`

	Uniforms []Uniform `yaml:"uniforms" toml:"uniforms"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// Uniform is a uniform entry of a job.
type Uniform struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"` // float, vec4 or sampler2D

	// Value holds one component for float and four for vec4.
	Value []float32 `yaml:"value" toml:"value"`
	// Step advances a float by Step per frame.
	Step float32 `yaml:"step" toml:"step"`
	// Period wraps an animated float into [0, Period) when positive.
	Period float32 `yaml:"period" toml:"period"`

	Path    string  `yaml:"path" toml:"path"`
	Unit    uint32  `yaml:"unit" toml:"unit"`
	Texture Texture `yaml:"texture" toml:"texture"`
}

// Texture holds sampler parameters by name. Empty fields take the defaults.
type Texture struct {
	Flip      *bool  `yaml:"flip" toml:"flip"`
	MinFilter string `yaml:"min_filter" toml:"min_filter"`
	MagFilter string `yaml:"mag_filter" toml:"mag_filter"`
	WrapS     string `yaml:"wrap_s" toml:"wrap_s"`
	WrapT     string `yaml:"wrap_t" toml:"wrap_t"`
}

// Default returns the built-in job: an 800x600 surface, 60 frames of the
// example shaders with uTime advancing by 0.1, a white uColor and image.png on
// unit 0.
func Default() *Config {
	return &Config{
		Title:      "offscreen",
		Width:      800,
		Height:     600,
		ClearColor: [4]float32(offscreen.DefaultClearColor),
		Vertex:     "shaders/vp.vert",
		Fragment:   "shaders/fp.frag",
		Frames:     60,
		Output:     "output/frame_%03d.png",
		Uniforms: []Uniform{
			{Name: "uTime", Type: "float", Value: []float32{0}, Step: 0.1},
			{Name: "uColor", Type: "vec4", Value: []float32{1, 1, 1, 1}},
			{Name: "uTex", Type: "sampler2D", Path: "shaders/image.png", Unit: 0},
		},
	}
}

// Load reads a job from path. The format follows the extension: .yaml, .yml
// or .toml. Fields missing from the file keep their Default values, except
// uniforms, which are replaced as a whole.
func Load(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.Uniforms = nil
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unknown format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Uniforms == nil {
		cfg.Uniforms = Default().Uniforms
	}
	cfg.dir = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames %d must not be negative", c.Frames))
	}
	if c.Vertex == "" {
		errs = append(errs, errors.New("vertex shader path is empty"))
	}
	if c.Fragment == "" {
		errs = append(errs, errors.New("fragment shader path is empty"))
	}
	if !strings.Contains(c.Output, "%") {
		errs = append(errs, fmt.Errorf("output %q has no frame verb", c.Output))
	}

	seen := make(map[string]bool)
	for i, u := range c.Uniforms {
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("uniforms[%d]: name is empty", i))
		} else if seen[u.Name] {
			errs = append(errs, fmt.Errorf("uniforms[%d]: duplicate name %q", i, u.Name))
		}
		seen[u.Name] = true
		if err := u.validate(); err != nil {
			errs = append(errs, fmt.Errorf("uniforms[%d] %s: %w", i, u.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (u Uniform) validate() error {
	switch u.Type {
	case "float":
		if len(u.Value) > 1 {
			return fmt.Errorf("float takes one value, got %d", len(u.Value))
		}
	case "vec4":
		if len(u.Value) != 4 {
			return fmt.Errorf("vec4 takes four values, got %d", len(u.Value))
		}
	case "sampler2D":
		if u.Path == "" {
			return errors.New("sampler2D needs a path")
		}
		if _, err := u.TextureOptions(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown type %q", u.Type)
	}
	if u.Period < 0 {
		return fmt.Errorf("period %v must not be negative", u.Period)
	}
	return nil
}

// Dir returns the directory relative paths are resolved against.
func (c *Config) Dir() string { return c.dir }

// Resolve expands ~ and makes path relative to the config file.
func (c *Config) Resolve(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	if filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// FramePath returns the output path of frame i.
func (c *Config) FramePath(i int) string {
	return c.Resolve(fmt.Sprintf(c.Output, i))
}

// Files lists the shader and texture files the job reads.
func (c *Config) Files() []string {
	files := []string{c.Resolve(c.Vertex), c.Resolve(c.Fragment)}
	for _, u := range c.Uniforms {
		if u.Type == "sampler2D" {
			files = append(files, c.Resolve(u.Path))
		}
	}
	return files
}

// Animated reports whether the uniform changes between frames.
func (u Uniform) Animated() bool { return u.Type == "float" && u.Step != 0 }

// FloatAt returns the value of a float uniform at frame.
func (u Uniform) FloatAt(frame int) float32 {
	var v float32
	if len(u.Value) > 0 {
		v = u.Value[0]
	}
	v += float32(frame) * u.Step
	if u.Period > 0 {
		v = math32.Mod(v, u.Period)
		if v < 0 {
			v += u.Period
		}
	}
	return v
}

// Vec4 returns the value of a vec4 uniform.
func (u Uniform) Vec4() offscreen.Vec4 {
	var v offscreen.Vec4
	copy(v[:], u.Value)
	return v
}

// TextureOptions converts the named sampler parameters.
func (u Uniform) TextureOptions() (offscreen.TextureOptions, error) {
	opts := offscreen.DefaultTextureOptions()
	if u.Texture.Flip != nil {
		opts.FlipOnLoad = *u.Texture.Flip
	}
	var errs []error
	set := func(dst *int32, name string, table map[string]int32, what string) {
		if name == "" {
			return
		}
		v, ok := table[strings.ToLower(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown %s %q", what, name))
			return
		}
		*dst = v
	}
	set(&opts.MinFilter, u.Texture.MinFilter, minFilters, "min filter")
	set(&opts.MagFilter, u.Texture.MagFilter, magFilters, "mag filter")
	set(&opts.WrapS, u.Texture.WrapS, wrapModes, "wrap mode")
	set(&opts.WrapT, u.Texture.WrapT, wrapModes, "wrap mode")
	return opts, errors.Join(errs...)
}

var magFilters = map[string]int32{
	"nearest": glapi.Nearest,
	"linear":  glapi.Linear,
}

var minFilters = map[string]int32{
	"nearest":                glapi.Nearest,
	"linear":                 glapi.Linear,
	"nearest_mipmap_nearest": glapi.NearestMipmapNearest,
	"linear_mipmap_nearest":  glapi.LinearMipmapNearest,
	"nearest_mipmap_linear":  glapi.NearestMipmapLinear,
	"linear_mipmap_linear":   glapi.LinearMipmapLinear,
}

var wrapModes = map[string]int32{
	"repeat":          glapi.Repeat,
	"clamp_to_edge":   glapi.ClampToEdge,
	"mirrored_repeat": glapi.MirroredRepeat,
}
