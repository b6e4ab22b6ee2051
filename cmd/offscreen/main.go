// Command offscreen renders a shader over a full-screen quad without a window
// and writes every frame as a PNG.
//
// Usage:
//
//	offscreen [-config job.yaml] [-backend egl|glfw] [-frames N] [-out pattern] [-watch] [-v]
//
// Without -config the built-in job is used: 60 frames of shaders/vp.vert and
// shaders/fp.frag at 800x600 into output/frame_NNN.png.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-theft-auto/offscreen"
	"github.com/go-theft-auto/offscreen/backend/egl"
	"github.com/go-theft-auto/offscreen/backend/glfw"
	"github.com/go-theft-auto/offscreen/backend/gogl"
	"github.com/go-theft-auto/offscreen/internal/config"
	"github.com/go-theft-auto/offscreen/internal/job"
)

func init() {
	// The GL context is bound to the thread that created it.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// swapper is implemented by both backend contexts.
type swapper interface {
	Swap() error
}

func run() error {
	var (
		configPath = flag.String("config", "", "job file (.yaml, .yml or .toml)")
		backend    = flag.String("backend", "egl", "context backend: egl or glfw")
		frames     = flag.Int("frames", -1, "override the number of frames")
		out        = flag.String("out", "", "override the output pattern, e.g. out/frame_%03d.png")
		watch      = flag.Bool("watch", false, "re-render when shaders or textures change")
		verbose    = flag.Bool("v", false, "debug logging")
		progress   = flag.Bool("progress", false, "show the progress bar even when stderr is not a terminal")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	load := func() (*config.Config, error) {
		cfg := config.Default()
		if *configPath != "" {
			var err error
			if cfg, err = config.Load(*configPath); err != nil {
				return nil, err
			}
		}
		if *frames >= 0 {
			cfg.Frames = *frames
		}
		if *out != "" {
			cfg.Output = *out
		}
		return cfg, cfg.Validate()
	}
	cfg, err := load()
	if err != nil {
		return err
	}

	ctx, err := newContext(*backend, cfg, log)
	if err != nil {
		return err
	}
	drv, err := gogl.New(log)
	if err != nil {
		return errors.Join(err, ctx.Destroy())
	}
	surface, err := offscreen.NewSurface(drv, ctx, cfg.Title,
		offscreen.WithClearVec4(cfg.ClearColor),
		offscreen.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := surface.Destroy(); err != nil {
			log.Warn("destroy surface", "err", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := job.Options{Logger: log, Progress: *progress}
	if sw, ok := ctx.(swapper); ok {
		opts.After = func(int) error { return sw.Swap() }
	}

	report, err := job.Run(sigCtx, surface, cfg, opts)
	if err != nil {
		return err
	}
	if !*watch {
		return report.Err()
	}

	files := cfg.Files()
	if *configPath != "" {
		files = append(files, *configPath)
	}
	err = job.Watch(sigCtx, files, job.DefaultDebounce, log, func() error {
		next, err := load()
		if err != nil {
			return err
		}
		if next.Width != cfg.Width || next.Height != cfg.Height {
			return fmt.Errorf("surface size changed from %dx%d to %dx%d, restart to apply", cfg.Width, cfg.Height, next.Width, next.Height)
		}
		cfg = next
		report, err := job.Run(sigCtx, surface, cfg, opts)
		if err != nil {
			return err
		}
		return report.Err()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newContext(backend string, cfg *config.Config, log *slog.Logger) (offscreen.Context, error) {
	switch backend {
	case "egl":
		return egl.New(cfg.Width, cfg.Height, egl.WithLogger(log))
	case "glfw":
		return glfw.New(cfg.Title, cfg.Width, cfg.Height, glfw.WithLogger(log))
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
