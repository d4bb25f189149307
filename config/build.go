package config

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/formatter"
	"github.com/philipp01105/drainlog/handler"
	"github.com/philipp01105/drainlog/handler/consolehandler"
	"github.com/philipp01105/drainlog/handler/debughandler"
	"github.com/philipp01105/drainlog/handler/filehandler"
	"github.com/philipp01105/drainlog/handler/rollinghandler"
	"github.com/philipp01105/drainlog/logger"
)

// Build creates a Manager with every configured sink registered under its
// configuration name. Sinks already created are closed if a later one
// fails.
func (c *Config) Build() (*logger.Manager, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	level, _ := parseLevel(c.Level, core.InfoLevel)
	set, _ := c.optionSet()

	b := logger.NewBuilder().WithLevel(level)
	for o := formatter.Option(0); o.Valid(); o++ {
		if set.Has(o) {
			b.WithOptions(o)
		}
	}
	if c.MaxLineSize > 0 {
		b.WithMaxLineSize(c.MaxLineSize)
	}

	var built []handler.Sink
	for _, name := range c.SinkNames() {
		s, err := c.Sinks[name].build(name)
		if err != nil {
			return nil, multierr.Append(err, closeAll(built))
		}
		built = append(built, s)
		b.WithSink(name, s)
	}
	return b.Build(), nil
}

// Apply pushes the global level, the prefix options and each sink's level
// and immediate flag onto m. Sinks missing from m are skipped; sinks are
// never added or removed.
func (c *Config) Apply(m *logger.Manager) error {
	if err := c.Validate(); err != nil {
		return err
	}

	level, _ := parseLevel(c.Level, core.InfoLevel)
	set, _ := c.optionSet()

	m.SetLevel(level)
	for o := formatter.Option(0); o.Valid(); o++ {
		if set.Has(o) {
			m.EnableOption(o)
		} else {
			m.DisableOption(o)
		}
	}

	for _, name := range c.SinkNames() {
		s := m.Sink(name)
		if s == nil {
			continue
		}
		sc := c.Sinks[name]
		sinkLevel, _ := parseLevel(sc.Level, core.DebugLevel)
		s.SetLevel(sinkLevel)
		if im, ok := s.(interface{ SetImmediate(bool) }); ok {
			im.SetImmediate(sc.Immediate)
		}
	}
	return nil
}

func (s SinkConfig) bufferOptions() []handler.Option {
	return []handler.Option{
		handler.WithImmediate(s.Immediate),
		handler.WithBlockSize(s.BlockSize),
		handler.WithMaxPending(s.MaxPending),
	}
}

func (s SinkConfig) build(name string) (handler.Sink, error) {
	level, _ := parseLevel(s.Level, core.DebugLevel)
	buf := s.bufferOptions()

	switch strings.ToLower(s.Type) {
	case TypeConsole:
		return consolehandler.New(level, consolehandler.WithBuffering(buf...)), nil
	case TypeDebug:
		return debughandler.New(level, debughandler.WithBuffering(buf...)), nil
	case TypeFile:
		fileName := s.Name
		if fileName == "" {
			fileName = name
		}
		opts := []filehandler.Option{
			filehandler.WithMaxBackups(s.MaxBackups),
			filehandler.WithBuffering(buf...),
		}
		if s.Directory != "" {
			opts = append(opts, filehandler.WithDirectory(s.Directory))
		}
		return filehandler.New(level, fileName, opts...), nil
	case TypeRolling:
		opts := []rollinghandler.Option{
			rollinghandler.WithCompress(s.Compress),
			rollinghandler.WithLocalTime(s.LocalTime),
			rollinghandler.WithBuffering(buf...),
		}
		if s.MaxSizeMB > 0 {
			opts = append(opts, rollinghandler.WithMaxSize(s.MaxSizeMB))
		}
		if s.MaxBackups > 0 {
			opts = append(opts, rollinghandler.WithMaxBackups(s.MaxBackups))
		}
		if s.MaxAgeDays > 0 {
			opts = append(opts, rollinghandler.WithMaxAge(s.MaxAgeDays))
		}
		h, err := rollinghandler.New(level, s.Filename, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSink, name, err)
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: %q has type %q", ErrUnknownSinkType, name, s.Type)
	}
}

func closeAll(sinks []handler.Sink) error {
	var err error
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
