// Package handler provides the Sink interface and the double-buffered base
// that every built-in sink is assembled from.
//
// A Buffered sink decouples producers from I/O. Output copies the finished
// line into the active slot under a short append lock and returns. Process,
// driven by the owner (typically logger.Manager.Process or logger.Run),
// swaps the slots and writes the drained records to a Device, coalescing
// small records into blocks of DefaultBlockSize bytes.
//
// Devices are minimal: a Write([]byte) error method, plus optional
// BatchHooks to bracket a drain and io.Closer to release resources.
//
// Built-in sinks live in sub-packages:
//
//   - consolehandler writes to standard error.
//   - debughandler writes to an attached debugger.
//   - filehandler writes to a file rotated at each calendar day.
//   - rollinghandler writes to a size-rotated file backed by lumberjack.
//
// Every Buffered sink tracks accepted, filtered, dropped and written counts
// via the Stats type, which can be queried at runtime for monitoring.
package handler
