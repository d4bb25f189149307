package filehandler

import (
	"os"
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/philipp01105/drainlog/handler"
)

// DefaultDirectory is where log files go unless WithDirectory says otherwise
const DefaultDirectory = "./logs"

// Option configures a file Handler
type Option func(*config)

type config struct {
	directory  string
	now        func() time.Time
	location   *time.Location
	fileMode   os.FileMode
	dirMode    os.FileMode
	maxBackups int
	buffered   []handler.Option
}

func defaultConfig() config {
	return config{
		directory: DefaultDirectory,
		now:       xclock.Now,
		location:  time.Local,
		fileMode:  0644,
		dirMode:   0755,
	}
}

// WithDirectory sets the directory holding the live file and its archives
func WithDirectory(dir string) Option {
	return func(c *config) {
		if dir != "" {
			c.directory = dir
		}
	}
}

// WithClock replaces the time source used to detect day changes
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the time zone whose calendar days drive rotation
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithFileMode sets the permission bits of newly created log files
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}

// WithDirMode sets the permission bits used when creating the directory
func WithDirMode(mode os.FileMode) Option {
	return func(c *config) {
		c.dirMode = mode
	}
}

// WithMaxBackups keeps at most n archives, removing the oldest after each
// rotation. Zero keeps all.
func WithMaxBackups(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxBackups = n
		}
	}
}

// WithBuffering passes options through to the underlying buffered sink
func WithBuffering(opts ...handler.Option) Option {
	return func(c *config) {
		c.buffered = append(c.buffered, opts...)
	}
}
