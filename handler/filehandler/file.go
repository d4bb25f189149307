package filehandler

import (
	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/handler"
)

// Handler is a file sink rotated at each calendar day. The live file is
// {dir}/{name}.log; when the day changes it is renamed to
// {dir}/{name}-{YYYY-MM-DD}.log, dated with the day it was written.
type Handler struct {
	*handler.Buffered
	file *dailyFile
}

// New creates a file sink accepting records up to level. Nothing touches
// the file system until the first record is written.
func New(level core.Level, name string, opts ...Option) *Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := newDailyFile(name, cfg)
	return &Handler{
		Buffered: handler.NewBuffered(level, f, cfg.buffered...),
		file:     f,
	}
}

// Path returns the path of the live file
func (h *Handler) Path() string {
	return h.file.livePath()
}

// Directory returns the directory holding the live file and its archives
func (h *Handler) Directory() string {
	return h.file.dir
}
