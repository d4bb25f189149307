package debughandler

import (
	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/handler"
)

// Channel is a debugger output channel. When no debugger is attached,
// Present returns false and nothing is written.
type Channel interface {
	Present() bool
	Write(p []byte)
}

// Handler is a debugger-channel sink
type Handler struct {
	*handler.Buffered
}

// Option configures a debug Handler
type Option func(*config)

type config struct {
	channel  Channel
	buffered []handler.Option
}

// WithChannel replaces the platform debugger channel
func WithChannel(ch Channel) Option {
	return func(c *config) {
		if ch != nil {
			c.channel = ch
		}
	}
}

// WithBuffering passes options through to the underlying buffered sink
func WithBuffering(opts ...handler.Option) Option {
	return func(c *config) {
		c.buffered = append(c.buffered, opts...)
	}
}

// New creates a debugger-channel sink accepting records up to level
func New(level core.Level, opts ...Option) *Handler {
	cfg := config{channel: defaultChannel()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{
		Buffered: handler.NewBuffered(level, channelDevice{ch: cfg.channel}, cfg.buffered...),
	}
}

type channelDevice struct {
	ch Channel
}

func (d channelDevice) Write(p []byte) error {
	if d.ch.Present() {
		d.ch.Write(p)
	}
	return nil
}
