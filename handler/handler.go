package handler

import (
	"io"

	"github.com/philipp01105/drainlog/core"
)

// Sink is a named destination registered with a logger.Manager.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Output accepts a finished log line. It must not block on I/O unless
	// the sink is in immediate mode. msg is only valid for the duration of
	// the call; the caller reuses it afterwards, so a sink that keeps the
	// bytes must copy them.
	Output(level core.Level, msg []byte)

	// Process drains whatever has been accumulated since the last call
	Process()

	// Level returns the most verbose level the sink accepts
	Level() core.Level

	// SetLevel changes the sink's threshold
	SetLevel(level core.Level)
}

// Device is the physical write primitive behind a Buffered sink.
// Write is only ever called with the sink's output lock held.
type Device interface {
	Write(p []byte) error
}

// BatchHooks is an optional interface for devices that want to bracket
// each drained batch, e.g. to rotate before and sync after.
type BatchHooks interface {
	OnBegin()
	OnEnd()
}

// DeviceFunc adapts a plain function to the Device interface
type DeviceFunc func(p []byte) error

// Write calls f(p)
func (f DeviceFunc) Write(p []byte) error {
	return f(p)
}

// WriterDevice adapts an io.Writer to the Device interface. It never closes
// the writer; sinks that own their writer wrap it themselves.
type WriterDevice struct {
	W io.Writer
}

// Write writes p in full or reports why it could not
func (d WriterDevice) Write(p []byte) error {
	_, err := d.W.Write(p)
	return err
}
