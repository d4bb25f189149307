package logger

import (
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/formatter"
	"github.com/philipp01105/drainlog/handler"
)

type namedSink struct {
	name string
	sink handler.Sink
}

// Builder provides a fluent API for building Manager instances
type Builder struct {
	level       core.Level
	options     formatter.OptionSet
	now         func() time.Time
	threadID    func() uint64
	maxLineSize int
	sinks       []namedSink
}

// NewBuilder creates a new manager builder
func NewBuilder() *Builder {
	return &Builder{
		level:       core.InfoLevel, // Default level
		now:         xclock.Now,
		threadID:    currentThreadID,
		maxLineSize: formatter.DefaultMaxLineSize,
	}
}

// WithLevel sets the global level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithOptions enables line prefix options
func (b *Builder) WithOptions(opts ...Option) *Builder {
	for _, o := range opts {
		b.options = b.options.With(o)
	}
	return b
}

// WithClock replaces the time source used for date and time prefixes
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithThreadID replaces the thread id source used for the thread prefix
func (b *Builder) WithThreadID(fn func() uint64) *Builder {
	if fn != nil {
		b.threadID = fn
	}
	return b
}

// WithMaxLineSize caps the length of a formatted line, prefix included
func (b *Builder) WithMaxLineSize(n int) *Builder {
	if n > 0 {
		b.maxLineSize = n
	}
	return b
}

// WithSink registers a sink under name at build time
func (b *Builder) WithSink(name string, s handler.Sink) *Builder {
	b.sinks = append(b.sinks, namedSink{name: name, sink: s})
	return b
}

// Build creates the Manager instance
func (b *Builder) Build() *Manager {
	m := &Manager{
		now:         b.now,
		threadID:    b.threadID,
		maxLineSize: b.maxLineSize,
		sinks:       make(map[string]handler.Sink),
	}
	m.level.Store(int32(b.level))
	m.options.Store(uint32(b.options))
	m.snapshot.Store(&[]handler.Sink{})
	for _, ns := range b.sinks {
		m.Append(ns.name, ns.sink)
	}
	return m
}

// Create returns a new Manager with the given global level and no sinks
func Create(level core.Level) *Manager {
	return NewBuilder().WithLevel(level).Build()
}
