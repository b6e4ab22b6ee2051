package offscreen

import (
	"image/color"
	"log/slog"
)

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithClearColor sets the color the surface is cleared to.
func WithClearColor(c color.Color) SurfaceOption {
	return func(s *Surface) { s.clearColor = ColorVec4(c) }
}

// WithClearVec4 sets the clear color from float components.
func WithClearVec4(v Vec4) SurfaceOption {
	return func(s *Surface) { s.clearColor = v }
}

// WithRenderTarget renders into a framebuffer object even when the context
// provides a pbuffer.
func WithRenderTarget() SurfaceOption {
	return func(s *Surface) { s.forceTarget = true }
}

// WithLogger sets the logger used for surface events.
func WithLogger(l *slog.Logger) SurfaceOption {
	return func(s *Surface) { s.log = l }
}

// DefaultClearColor is the color a new surface is cleared to.
var DefaultClearColor = Vec4{0.2, 0.4, 0.6, 1.0}
