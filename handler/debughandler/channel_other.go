//go:build !windows

package debughandler

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
)

// readStatus is a variable so tests can fake /proc
var readStatus = func() ([]byte, error) {
	return os.ReadFile("/proc/self/status")
}

// tracerChannel treats an attached ptrace tracer as the debugger and writes
// to standard error. Platforms without /proc never report a tracer.
type tracerChannel struct{}

func defaultChannel() Channel {
	return tracerChannel{}
}

func (tracerChannel) Present() bool {
	status, err := readStatus()
	if err != nil {
		return false
	}
	return tracerPid(status) != 0
}

func (tracerChannel) Write(p []byte) {
	_, _ = os.Stderr.Write(p)
}

// tracerPid extracts TracerPid from a /proc/<pid>/status document
func tracerPid(status []byte) int {
	sc := bufio.NewScanner(bytes.NewReader(status))
	for sc.Scan() {
		line := sc.Bytes()
		rest, ok := bytes.CutPrefix(line, []byte("TracerPid:"))
		if !ok {
			continue
		}
		pid, err := strconv.Atoi(string(bytes.TrimSpace(rest)))
		if err != nil {
			return 0
		}
		return pid
	}
	return 0
}
