// Package debughandler provides a sink that writes to an attached debugger.
//
// On Windows the channel is OutputDebugStringW, gated by IsDebuggerPresent.
// Elsewhere a process is considered debugged when /proc/self/status reports
// a non-zero TracerPid, and lines go to standard error. With no debugger
// attached, drained records are discarded.
package debughandler
