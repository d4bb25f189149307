package logger

import (
	"context"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/formatter"
	"github.com/philipp01105/drainlog/handler"
)

// Manager dispatches formatted lines to a set of named sinks. It owns the
// global level and the prefix options, and drives the sinks' Process.
//
// Printf and Emit never block on I/O and never take the registry lock: they
// fan out to an immutable snapshot of the registry that Append and Remove
// replace.
type Manager struct {
	level   atomic.Int32
	options atomic.Uint32
	closed  atomic.Bool

	now         func() time.Time
	threadID    func() uint64
	maxLineSize int

	mu       sync.Mutex // guards sinks and the snapshot rebuild
	sinks    map[string]handler.Sink
	snapshot atomic.Pointer[[]handler.Sink]

	processMu sync.Mutex
}

// Level returns the global level
func (m *Manager) Level() core.Level {
	return core.Level(m.level.Load())
}

// SetLevel changes the global level. Sinks keep their own thresholds.
func (m *Manager) SetLevel(level core.Level) {
	m.level.Store(int32(level))
}

// Append registers s under name, replacing any sink of that name. The
// replaced sink is neither drained nor closed. A nil sink is ignored.
func (m *Manager) Append(name string, s handler.Sink) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.sinks[name] = s
	m.rebuildLocked()
	m.mu.Unlock()
}

// Remove unregisters the sink of that name, reporting whether it existed
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sinks[name]; !ok {
		return false
	}
	delete(m.sinks, name)
	m.rebuildLocked()
	return true
}

// Sink returns the sink registered under name, or nil
func (m *Manager) Sink(name string) handler.Sink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sinks[name]
}

// Names returns the registered names in sorted order
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedNamesLocked()
}

func (m *Manager) sortedNamesLocked() []string {
	names := make([]string, 0, len(m.sinks))
	for name := range m.sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rebuildLocked publishes a fresh snapshot in name order
func (m *Manager) rebuildLocked() {
	names := m.sortedNamesLocked()
	snap := make([]handler.Sink, len(names))
	for i, name := range names {
		snap[i] = m.sinks[name]
	}
	m.snapshot.Store(&snap)
}

func (m *Manager) loadSinks() []handler.Sink {
	return *m.snapshot.Load()
}

// EnableOption turns a prefix option on. It reports false, changing
// nothing, for an unknown option.
func (m *Manager) EnableOption(o Option) bool {
	if !o.Valid() {
		return false
	}
	for {
		old := m.options.Load()
		next := uint32(formatter.OptionSet(old).With(o))
		if m.options.CompareAndSwap(old, next) {
			return true
		}
	}
}

// DisableOption turns a prefix option off. It reports false, changing
// nothing, for an unknown option.
func (m *Manager) DisableOption(o Option) bool {
	if !o.Valid() {
		return false
	}
	for {
		old := m.options.Load()
		next := uint32(formatter.OptionSet(old).Without(o))
		if m.options.CompareAndSwap(old, next) {
			return true
		}
	}
}

// IsEnabledOption reports whether o is on; false for unknown options
func (m *Manager) IsEnabledOption(o Option) bool {
	return formatter.OptionSet(m.options.Load()).Has(o)
}

func (m *Manager) accepts(level core.Level) bool {
	return core.Enabled(m.Level(), level) && !m.closed.Load()
}

func (m *Manager) appendPrefix(dst []byte, level core.Level) []byte {
	set := formatter.OptionSet(m.options.Load())
	if set == 0 {
		return dst
	}
	var now time.Time
	if set.NeedsClock() {
		now = m.now()
	}
	var tid uint64
	if set.Has(OptionThread) {
		tid = m.threadID()
	}
	return formatter.AppendPrefix(dst, set, now, tid, level)
}

// Printf formats one line and hands it to every registered sink. Records
// above the global level cost one comparison: nothing is formatted and the
// clock is not read. Lines longer than the maximum size are truncated.
func (m *Manager) Printf(level core.Level, format string, args ...core.Arg) {
	if !m.accepts(level) {
		return
	}
	sinks := m.loadSinks()
	if len(sinks) == 0 {
		return
	}

	lb := formatter.GetBuffer()
	lb.B = m.appendPrefix(lb.B, level)
	lb.B = formatter.Expand(lb.B, format, args, m.maxLineSize)
	for _, s := range sinks {
		s.Output(level, lb.B)
	}
	formatter.PutBuffer(lb)
}

// Emit is Printf for a body that is already rendered. It applies the same
// gate, prefix and size cap.
func (m *Manager) Emit(level core.Level, msg []byte) {
	if !m.accepts(level) {
		return
	}
	sinks := m.loadSinks()
	if len(sinks) == 0 {
		return
	}

	lb := formatter.GetBuffer()
	lb.B = m.appendPrefix(lb.B, level)
	lb.B = formatter.Truncate(append(lb.B, msg...), m.maxLineSize)
	for _, s := range sinks {
		s.Output(level, lb.B)
	}
	formatter.PutBuffer(lb)
}

// Process drains every registered sink. Concurrent calls are serialized.
func (m *Manager) Process() {
	m.processMu.Lock()
	defer m.processMu.Unlock()
	for _, s := range m.loadSinks() {
		s.Process()
	}
}

// Close drains every sink twice, then closes the sinks that implement
// io.Closer. Printf and Emit are no-ops afterwards. Close is idempotent.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.Process()
	m.Process()

	var err error
	for _, s := range m.loadSinks() {
		if c, ok := s.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

// DefaultFlushInterval is used by Run when no positive interval is given
const DefaultFlushInterval = time.Second

// Run calls Process every interval until ctx is done, then drains once
// more and returns nil.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Process()
			return nil
		case <-ticker.C:
			m.Process()
		}
	}
}
