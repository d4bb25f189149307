package consolehandler

import (
	"io"
	"os"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/handler"
)

// Handler is a console sink. Records are queued by Output and written to
// the console writer when Process runs.
type Handler struct {
	*handler.Buffered
}

// Option configures a console Handler
type Option func(*config)

type config struct {
	writer   io.Writer
	buffered []handler.Option
}

// WithWriter redirects output away from os.Stderr
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithBuffering passes options through to the underlying buffered sink
func WithBuffering(opts ...handler.Option) Option {
	return func(c *config) {
		c.buffered = append(c.buffered, opts...)
	}
}

// New creates a console sink accepting records up to level
func New(level core.Level, opts ...Option) *Handler {
	cfg := config{writer: os.Stderr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{
		Buffered: handler.NewBuffered(level, handler.WriterDevice{W: cfg.writer}, cfg.buffered...),
	}
}
