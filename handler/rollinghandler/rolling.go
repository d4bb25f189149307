package rollinghandler

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/handler"
)

const (
	// DefaultMaxSizeMB is the size at which the live file is rolled
	DefaultMaxSizeMB = 100
	// DefaultMaxBackups is the number of rolled files kept
	DefaultMaxBackups = 7
	// DefaultMaxAgeDays is how long rolled files are kept
	DefaultMaxAgeDays = 30

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

// Option configures a rolling Handler
type Option func(*config)

type config struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
	buffered   []handler.Option
}

// WithMaxSize sets the size in megabytes at which the file is rolled
func WithMaxSize(mb int) Option {
	return func(c *config) {
		c.maxSizeMB = mb
	}
}

// WithMaxBackups sets how many rolled files are kept; zero keeps all
func WithMaxBackups(n int) Option {
	return func(c *config) {
		c.maxBackups = n
	}
}

// WithMaxAge sets how many days rolled files are kept; zero keeps them forever
func WithMaxAge(days int) Option {
	return func(c *config) {
		c.maxAgeDays = days
	}
}

// WithCompress gzips rolled files
func WithCompress(on bool) Option {
	return func(c *config) {
		c.compress = on
	}
}

// WithLocalTime names rolled files using local time instead of UTC
func WithLocalTime(on bool) Option {
	return func(c *config) {
		c.localTime = on
	}
}

// WithBuffering passes options through to the underlying buffered sink
func WithBuffering(opts ...handler.Option) Option {
	return func(c *config) {
		c.buffered = append(c.buffered, opts...)
	}
}

// Handler is a size-rotated file sink
type Handler struct {
	*handler.Buffered
	out *lumberjack.Logger
}

// New creates a rolling file sink writing to filename. The parent directory
// is created up-front; the file itself is opened on first write.
func New(level core.Level, filename string, opts ...Option) (*Handler, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := config{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("rollinghandler: create directory: %w", err)
	}

	out := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    cfg.maxSizeMB,
		MaxBackups: cfg.maxBackups,
		MaxAge:     cfg.maxAgeDays,
		Compress:   cfg.compress,
		LocalTime:  cfg.localTime,
	}
	return &Handler{
		Buffered: handler.NewBuffered(level, rollingDevice{out: out}, cfg.buffered...),
		out:      out,
	}, nil
}

func validate(cfg *config) error {
	if cfg.maxSizeMB <= 0 || cfg.maxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.maxSizeMB, maxSizeMB)
	}
	if cfg.maxBackups < 0 || cfg.maxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, cfg.maxBackups, maxBackups)
	}
	if cfg.maxAgeDays < 0 || cfg.maxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, cfg.maxAgeDays, maxAgeDays)
	}
	return nil
}

// Filename returns the path of the live file
func (h *Handler) Filename() string {
	return h.out.Filename
}

// Rotate drains pending records into the current file, then rolls it
func (h *Handler) Rotate() error {
	h.Process()
	return h.Locked(h.out.Rotate)
}

type rollingDevice struct {
	out *lumberjack.Logger
}

func (d rollingDevice) Write(p []byte) error {
	_, err := d.out.Write(p)
	return err
}

func (d rollingDevice) Close() error {
	return d.out.Close()
}
