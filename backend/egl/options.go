package egl

import "log/slog"

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used for context events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}
