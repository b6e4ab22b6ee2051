// Package job runs a configured frame sequence against a surface: it builds
// the material and uniforms, animates them per frame, draws the full-screen
// quad and exports every frame as a PNG.
package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/internal/config"
)

// Options control how a job reports progress.
type Options struct {
	// Logger defaults to the surface's logger.
	Logger *slog.Logger
	// Progress forces the progress bar even when Output is not a terminal.
	Progress bool
	// Output receives the progress bar. Defaults to os.Stderr.
	Output io.Writer
	// After is called once a frame is drawn, before it is exported.
	After func(frame int) error
}

// FrameError records a frame that could not be exported.
type FrameError struct {
	Frame int
	Path  string
	Err   error
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Err)
}

func (e FrameError) Unwrap() error { return e.Err }

// Report summarizes a run.
type Report struct {
	Frames  int
	Saved   []string
	Failed  []FrameError
	Elapsed time.Duration
}

// Err joins the frame failures, nil when every frame was saved.
func (r *Report) Err() error {
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Run renders cfg.Frames frames on s. Setup failures (shader or texture)
// abort the run and are returned. Export failures are logged and recorded in
// the report while the remaining frames are still rendered. Cancelling ctx
// stops the run between frames.
func Run(ctx context.Context, s *offscreen.Surface, cfg *config.Config, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = s.Logger()
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	drv := s.Driver()
	start := time.Now()

	mat, err := offscreen.NewMaterial(drv, cfg.Title, cfg.Resolve(cfg.Vertex), cfg.Resolve(cfg.Fragment),
		offscreen.WithMaterialLogger(log))
	if err != nil {
		return nil, err
	}
	defer mat.Delete()

	uniforms, err := buildUniforms(s, cfg, log)
	defer func() {
		for _, u := range uniforms {
			u.Delete()
		}
	}()
	if err != nil {
		return nil, err
	}

	bar := newProgress(out, cfg.Frames, opts.Progress)
	report := &Report{Frames: cfg.Frames}
	for frame := 0; frame < cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		for i, u := range cfg.Uniforms {
			if u.Animated() {
				uniforms[i].SetFloat(u.FloatAt(frame))
			}
		}

		s.Clear()
		if err := s.DrawQuad(mat, uniforms...); err != nil {
			return report, fmt.Errorf("frame %d: %w", frame, err)
		}
		if opts.After != nil {
			if err := opts.After(frame); err != nil {
				return report, fmt.Errorf("frame %d: %w", frame, err)
			}
		}

		path := cfg.FramePath(frame)
		if err := s.SaveFrame(path); err != nil {
			log.Warn("frame not saved", "frame", frame, "path", path, "err", err)
			report.Failed = append(report.Failed, FrameError{Frame: frame, Path: path, Err: err})
		} else {
			log.Debug("frame saved", "frame", frame, "path", path)
			report.Saved = append(report.Saved, path)
		}
		bar.step()
	}
	bar.finish()

	report.Elapsed = time.Since(start)
	log.Info("render finished",
		"frames", report.Frames,
		"saved", len(report.Saved),
		"failed", len(report.Failed),
		"elapsed", report.Elapsed.Round(time.Millisecond),
	)
	return report, nil
}

// buildUniforms creates one uniform per config entry, in order. On error the
// uniforms created so far are returned so the caller can release them.
func buildUniforms(s *offscreen.Surface, cfg *config.Config, log *slog.Logger) ([]*offscreen.Uniform, error) {
	uniforms := make([]*offscreen.Uniform, 0, len(cfg.Uniforms))
	for _, u := range cfg.Uniforms {
		switch u.Type {
		case "float":
			uniforms = append(uniforms, offscreen.NewFloatUniform(u.Name, u.FloatAt(0)))
		case "vec4":
			uniforms = append(uniforms, offscreen.NewVec4Uniform(u.Name, u.Vec4()))
		case "sampler2D":
			texOpts, err := u.TextureOptions()
			if err != nil {
				return uniforms, fmt.Errorf("uniform %s: %w", u.Name, err)
			}
			path := cfg.Resolve(u.Path)
			sampler, err := offscreen.NewSamplerUniform(s.Driver(), u.Name, path, u.Unit, texOpts)
			if err != nil {
				return uniforms, err
			}
			tex := sampler.Value().(offscreen.Sampler2D).Texture
			w, h := tex.Size()
			log.Info("texture loaded", "uniform", u.Name, "path", path, "width", w, "height", h, "channels", tex.Channels(), "unit", u.Unit)
			uniforms = append(uniforms, sampler)
		default:
			return uniforms, fmt.Errorf("uniform %s: unknown type %q", u.Name, u.Type)
		}
	}
	return uniforms, nil
}
