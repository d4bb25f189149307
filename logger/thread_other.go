//go:build !linux && !windows

package logger

import "os"

// goroutines are not pinned to threads; the process id is the stable
// identifier available everywhere
func currentThreadID() uint64 {
	return uint64(os.Getpid())
}
