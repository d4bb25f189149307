package handler

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/drainlog/core"
)

// Buffered is a double-buffered sink. Output appends a private copy of each
// record to the active slot; Process swaps the slots and writes the drained
// one to the Device in coalesced blocks.
//
// Two locks are involved. appendMu guards the slots and the active index and
// is held only for the append or the swap. outMu serializes everything that
// touches the Device, and Process holds it for the whole drain, so two
// overlapping Process calls never drain the same slot.
type Buffered struct {
	level     atomic.Int32
	immediate atomic.Bool
	closed    atomic.Bool

	dev        Device
	hooks      BatchHooks
	blockSize  int
	maxPending int
	onError    func(error)
	stats      *Stats

	appendMu sync.Mutex
	slots    [2][][]byte
	active   int
	pending  int

	outMu sync.Mutex
	block []byte
}

// NewBuffered creates a buffered sink writing to dev
func NewBuffered(level core.Level, dev Device, opts ...Option) *Buffered {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Buffered{
		dev:        dev,
		blockSize:  o.blockSize,
		maxPending: o.maxPending,
		onError:    o.onError,
		stats:      NewStats(),
	}
	b.hooks, _ = dev.(BatchHooks)
	b.level.Store(int32(level))
	b.immediate.Store(o.immediate)
	return b
}

// Level returns the sink threshold
func (b *Buffered) Level() core.Level {
	return core.Level(b.level.Load())
}

// SetLevel changes the sink threshold
func (b *Buffered) SetLevel(level core.Level) {
	b.level.Store(int32(level))
}

// Immediate reports whether Output writes synchronously
func (b *Buffered) Immediate() bool {
	return b.immediate.Load()
}

// SetImmediate switches between queued and synchronous output. Records
// already queued are still written by the next Process.
func (b *Buffered) SetImmediate(on bool) {
	b.immediate.Store(on)
}

// Stats returns a snapshot of the sink counters
func (b *Buffered) Stats() Snapshot {
	return b.stats.GetSnapshot()
}

// Output accepts one finished line. msg is copied before Output returns, so
// the caller may reuse it.
func (b *Buffered) Output(level core.Level, msg []byte) {
	if !core.Enabled(b.Level(), level) {
		b.stats.incFiltered()
		return
	}
	if b.closed.Load() {
		b.stats.incDropped()
		return
	}

	if b.immediate.Load() {
		b.outMu.Lock()
		if b.closed.Load() {
			b.outMu.Unlock()
			b.stats.incDropped()
			return
		}
		err := b.dev.Write(msg)
		b.outMu.Unlock()

		b.stats.incAccepted()
		b.stats.addDrained(1)
		b.stats.recordWrite(err)
		b.reportError(err)
		return
	}

	rec := make([]byte, len(msg))
	copy(rec, msg)

	b.appendMu.Lock()
	// Close may have finished its drains since the check above
	if b.closed.Load() || (b.maxPending > 0 && b.pending+len(rec) > b.maxPending) {
		b.appendMu.Unlock()
		b.stats.incDropped()
		return
	}
	b.slots[b.active] = append(b.slots[b.active], rec)
	b.pending += len(rec)
	b.appendMu.Unlock()

	b.stats.incAccepted()
}

// Process writes every record queued before the swap. It is a no-op when
// nothing is queued: no hooks run and the device is not touched.
func (b *Buffered) Process() {
	b.outMu.Lock()
	err := b.drainLocked()
	b.outMu.Unlock()

	b.reportError(err)
}

func (b *Buffered) drainLocked() error {
	b.appendMu.Lock()
	drained := b.active
	batch := b.slots[drained]
	if len(batch) == 0 {
		b.appendMu.Unlock()
		return nil
	}
	b.active = drained ^ 1
	b.pending = 0
	b.appendMu.Unlock()

	b.stats.incBatches()
	if b.hooks != nil {
		b.hooks.OnBegin()
	}

	var first error
	write := func(p []byte) {
		err := b.dev.Write(p)
		b.stats.recordWrite(err)
		if err != nil && first == nil {
			first = err
		}
	}

	if b.block == nil {
		b.block = make([]byte, 0, b.blockSize)
	}
	block := b.block[:0]
	for _, rec := range batch {
		if len(block) > 0 && len(block)+len(rec) >= b.blockSize {
			write(block)
			block = block[:0]
		}
		if len(rec) >= b.blockSize {
			write(rec)
			continue
		}
		block = append(block, rec...)
	}
	if len(block) > 0 {
		write(block)
	}
	b.block = block[:0]
	b.stats.addDrained(len(batch))

	// the drained slot is only touched by Process, which holds outMu
	for i := range batch {
		batch[i] = nil
	}
	b.slots[drained] = batch[:0]

	if b.hooks != nil {
		b.hooks.OnEnd()
	}
	return first
}

// Locked runs fn with the output lock held. Devices use it for maintenance
// that must not interleave with a drain, such as a forced rotation.
func (b *Buffered) Locked(fn func() error) error {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	return fn()
}

// Close drains the sink twice, then closes the device if it implements
// io.Closer. Output after Close is dropped. Close is idempotent.
func (b *Buffered) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	b.Process()
	b.Process()

	c, ok := b.dev.(io.Closer)
	if !ok {
		return nil
	}
	b.outMu.Lock()
	defer b.outMu.Unlock()
	return c.Close()
}

func (b *Buffered) reportError(err error) {
	if err != nil && b.onError != nil {
		b.onError(err)
	}
}

var _ Sink = (*Buffered)(nil)
