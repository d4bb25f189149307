package formatter

import (
	"sync"
)

// DefaultMaxLineSize is the largest line, prefix included, that a single
// format call produces. Longer output is truncated.
const DefaultMaxLineSize = 8 * 1024

// maxPooledSize keeps one oversized line from pinning memory in the pool
const maxPooledSize = 64 * 1024

// LineBuffer is a reusable scratch buffer for assembling one log line
type LineBuffer struct {
	B []byte
}

// linePool is a pool of LineBuffer to reduce allocations
var linePool = &sync.Pool{
	New: func() interface{} {
		return &LineBuffer{B: make([]byte, 0, 256)}
	},
}

// GetBuffer retrieves an empty LineBuffer from the pool
func GetBuffer() *LineBuffer {
	lb := linePool.Get().(*LineBuffer)
	lb.B = lb.B[:0]
	return lb
}

// PutBuffer returns a LineBuffer to the pool
func PutBuffer(lb *LineBuffer) {
	if lb == nil || cap(lb.B) > maxPooledSize {
		return
	}
	linePool.Put(lb)
}

// Truncate cuts b down to limit bytes. A non-positive limit disables the cap.
func Truncate(b []byte, limit int) []byte {
	if limit > 0 && len(b) > limit {
		return b[:limit]
	}
	return b
}
