package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/handler"
	"github.com/philipp01105/drainlog/handler/consolehandler"
)

// memorySink records every line it is given
type memorySink struct {
	mu        sync.Mutex
	level     core.Level
	lines     []string
	processed int
	closed    bool
	closeErr  error
}

func newMemorySink(level core.Level) *memorySink {
	return &memorySink{level: level}
}

func (s *memorySink) Output(level core.Level, msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if core.Enabled(s.level, level) {
		s.lines = append(s.lines, string(msg))
	}
}

func (s *memorySink) Process() {
	s.mu.Lock()
	s.processed++
	s.mu.Unlock()
}

func (s *memorySink) Level() core.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *memorySink) SetLevel(level core.Level) {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.closeErr
}

func (s *memorySink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	old := xclock.Default()
	t.Cleanup(func() { xclock.SetDefault(old) })
	xclock.SetDefault(xclock.NewFrozen(at))
}

func TestManager_NoticeWithTimeAndLevel(t *testing.T) {
	freezeClock(t, time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC))

	var buf bytes.Buffer
	m := Create(DebugLevel)
	m.Append("console", consolehandler.New(NoticeLevel, consolehandler.WithWriter(&buf)))
	m.EnableOption(OptionTime)
	m.EnableOption(OptionLevel)

	m.Printf(NoticeLevel, "test : %s\n", String("aaa"))
	m.Printf(InfoLevel, "filtered by the sink\n")
	assert.Empty(t, buf.String(), "nothing is written before Process")

	m.Process()
	assert.Equal(t, "13:04:05 [NOTICE   ] test : aaa\n", buf.String())

	// draining again writes nothing new
	m.Process()
	assert.Equal(t, "13:04:05 [NOTICE   ] test : aaa\n", buf.String())

	require.NoError(t, m.Close())
}

func TestManager_GlobalLevelGate(t *testing.T) {
	sink := newMemorySink(DebugLevel)
	m := NewBuilder().WithLevel(WarningLevel).WithSink("mem", sink).Build()

	m.Printf(InfoLevel, "info\n")
	m.Printf(WarningLevel, "warning\n")
	m.Printf(EmergencyLevel, "emergency\n")
	assert.Equal(t, []string{"warning\n", "emergency\n"}, sink.snapshot())

	m.SetLevel(DebugLevel)
	assert.Equal(t, DebugLevel, m.Level())
	m.Debugf("debug %d\n", Int(1))
	assert.Equal(t, "debug 1\n", sink.snapshot()[2])
}

func TestManager_GateSkipsClock(t *testing.T) {
	var reads atomic.Int32
	m := NewBuilder().
		WithLevel(ErrorLevel).
		WithOptions(OptionTime).
		WithClock(func() time.Time {
			reads.Add(1)
			return time.Time{}
		}).
		WithSink("mem", newMemorySink(DebugLevel)).
		Build()

	m.Printf(DebugLevel, "rejected\n")
	assert.Equal(t, int32(0), reads.Load())

	m.Printf(ErrorLevel, "accepted\n")
	assert.Equal(t, int32(1), reads.Load())
}

func TestManager_PrefixOrder(t *testing.T) {
	sink := newMemorySink(DebugLevel)
	m := NewBuilder().
		WithLevel(DebugLevel).
		WithClock(func() time.Time { return time.Date(2024, 2, 9, 7, 8, 9, 0, time.UTC) }).
		WithThreadID(func() uint64 { return 0xbeef }).
		WithOptions(OptionLevel, OptionThread, OptionTime, OptionDate, OptionDay).
		WithSink("mem", sink).
		Build()

	m.Printf(ErrorLevel, "boom\n")
	m.DisableOption(OptionDate)
	m.Printf(InfoLevel, "day only\n")

	assert.Equal(t, []string{
		"2024-02-09 07:08:09 0xbeef [ERROR    ] boom\n",
		"09 07:08:09 0xbeef [INFO     ] day only\n",
	}, sink.snapshot())
}

func TestManager_Options(t *testing.T) {
	m := Create(InfoLevel)

	assert.False(t, m.IsEnabledOption(OptionTime))
	assert.True(t, m.EnableOption(OptionTime))
	assert.True(t, m.IsEnabledOption(OptionTime))
	assert.True(t, m.DisableOption(OptionTime))
	assert.False(t, m.IsEnabledOption(OptionTime))

	assert.True(t, m.EnableOption(OptionLevel))
	bad := Option(42)
	assert.False(t, m.EnableOption(bad))
	assert.False(t, m.DisableOption(bad))
	assert.False(t, m.IsEnabledOption(bad))
	assert.True(t, m.IsEnabledOption(OptionLevel))
}

func TestManager_Registry(t *testing.T) {
	m := Create(InfoLevel)
	first := newMemorySink(DebugLevel)
	second := newMemorySink(DebugLevel)

	assert.Nil(t, m.Sink("mem"))
	m.Append("mem", first)
	m.Append("other", newMemorySink(DebugLevel))
	m.Append("nil", nil)
	assert.Equal(t, []string{"mem", "other"}, m.Names())
	assert.Same(t, first, m.Sink("mem"))

	// replacement keeps a single entry and leaves the old sink untouched
	m.Append("mem", second)
	assert.Same(t, second, m.Sink("mem"))
	m.Printf(InfoLevel, "to second\n")
	assert.Empty(t, first.snapshot())
	assert.Equal(t, []string{"to second\n"}, second.snapshot())
	require.NoError(t, m.Close())
	assert.False(t, first.closed)
	assert.True(t, second.closed)

	m2 := Create(InfoLevel)
	m2.Append("mem", first)
	assert.True(t, m2.Remove("mem"))
	assert.False(t, m2.Remove("mem"))
	assert.Nil(t, m2.Sink("mem"))
	assert.Empty(t, m2.Names())
}

func TestManager_NoSinks(t *testing.T) {
	var reads int
	m := NewBuilder().
		WithLevel(DebugLevel).
		WithOptions(OptionTime).
		WithClock(func() time.Time { reads++; return time.Time{} }).
		Build()

	m.Printf(InfoLevel, "nobody\n")
	m.Process()
	assert.Zero(t, reads)
}

func TestManager_Truncation(t *testing.T) {
	sink := newMemorySink(DebugLevel)
	m := NewBuilder().
		WithLevel(DebugLevel).
		WithMaxLineSize(16).
		WithOptions(OptionLevel).
		WithSink("mem", sink).
		Build()

	m.Printf(InfoLevel, "%s", String(strings.Repeat("x", 100)))
	m.Emit(InfoLevel, []byte(strings.Repeat("y", 100)))

	lines := sink.snapshot()
	require.Len(t, lines, 2)
	assert.Equal(t, "[INFO     ] xxxx", lines[0])
	assert.Equal(t, "[INFO     ] yyyy", lines[1])
}

func TestManager_DefaultMaxLineSize(t *testing.T) {
	sink := newMemorySink(DebugLevel)
	m := NewBuilder().WithLevel(DebugLevel).WithSink("mem", sink).Build()

	m.Printf(InfoLevel, "%s", String(strings.Repeat("z", 3*8192)))
	require.Len(t, sink.snapshot(), 1)
	assert.Len(t, sink.snapshot()[0], 8192)
}

func TestManager_PerSinkLevels(t *testing.T) {
	var console, file bytes.Buffer
	m := Create(DebugLevel)
	m.Append("console", consolehandler.New(NoticeLevel, consolehandler.WithWriter(&console)))
	m.Append("file", consolehandler.New(InfoLevel, consolehandler.WithWriter(&file)))

	m.Noticef("notice\n")
	m.Infof("info\n")
	m.Debugf("debug\n")
	m.Process()

	assert.Equal(t, "notice\n", console.String())
	assert.Equal(t, "notice\ninfo\n", file.String())
	require.NoError(t, m.Close())
}

func TestManager_LevelShorthands(t *testing.T) {
	sink := newMemorySink(DebugLevel)
	m := NewBuilder().WithLevel(DebugLevel).WithOptions(OptionLevel).WithSink("mem", sink).Build()

	m.Emergencyf("a\n")
	m.Alertf("b\n")
	m.Criticalf("c\n")
	m.Errorf("d\n")
	m.Warningf("e\n")
	m.Noticef("f\n")
	m.Infof("g\n")
	m.Debugf("h\n")

	assert.Equal(t, []string{
		"[EMERGENCY] a\n",
		"[ALERT    ] b\n",
		"[CRITICAL ] c\n",
		"[ERROR    ] d\n",
		"[WARNING  ] e\n",
		"[NOTICE   ] f\n",
		"[INFO     ] g\n",
		"[DEBUG    ] h\n",
	}, sink.snapshot())
}

func TestManager_CloseAggregatesErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := newMemorySink(DebugLevel)
	a.closeErr = errA
	b := newMemorySink(DebugLevel)
	b.closeErr = errB

	m := NewBuilder().WithSink("a", a).WithSink("b", b).Build()
	err := m.Close()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 2, a.processed)

	// closed managers drop everything and close only once
	m.Printf(InfoLevel, "late\n")
	assert.Empty(t, a.snapshot())
	assert.NoError(t, m.Close())
}

func TestManager_Run(t *testing.T) {
	var buf safeBuffer
	m := Create(DebugLevel)
	m.Append("console", consolehandler.New(DebugLevel, consolehandler.WithWriter(&buf)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, 5*time.Millisecond) }()

	m.Infof("flushed by the loop\n")
	assert.Eventually(t, func() bool {
		return buf.String() == "flushed by the loop\n"
	}, time.Second, 5*time.Millisecond)

	m.Infof("flushed on exit\n")
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "flushed by the loop\nflushed on exit\n", buf.String())
	require.NoError(t, m.Close())
}

func TestManager_ConcurrentPrintfAndProcess(t *testing.T) {
	const (
		producers = 8
		perWorker = 500
	)

	var buf safeBuffer
	m := Create(DebugLevel)
	m.Append("console", consolehandler.New(DebugLevel, consolehandler.WithWriter(&buf)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, time.Millisecond) }()

	var wg sync.WaitGroup
	for g := 0; g < producers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m.Infof("%d %d\n", Int(g), Int(i))
			}
		}(g)
	}

	// registry changes race with the producers
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("extra-%d", i%3)
		m.Append(name, newMemorySink(DebugLevel))
		m.Remove(name)
	}

	wg.Wait()
	cancel()
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, producers*perWorker)
	next := make([]int, producers)
	for _, line := range lines {
		var g, i int
		_, err := fmt.Sscanf(line, "%d %d", &g, &i)
		require.NoError(t, err)
		require.Equal(t, next[g], i)
		next[g]++
	}
	require.NoError(t, m.Close())
}

func TestCreate_IndependentInstances(t *testing.T) {
	a := Create(InfoLevel)
	b := Create(DebugLevel)
	assert.NotSame(t, a, b)
	a.SetLevel(ErrorLevel)
	assert.Equal(t, DebugLevel, b.Level())
}

func TestManager_SinkInterface(t *testing.T) {
	var _ handler.Sink = newMemorySink(InfoLevel)
}

// safeBuffer is a bytes.Buffer that may be read while a sink writes to it
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestManager_PooledLineReusedAcrossCalls(t *testing.T) {
	var retained [][]byte
	var buf safeBuffer
	m := NewBuilder().
		WithLevel(DebugLevel).
		WithSink("console", consolehandler.New(DebugLevel, consolehandler.WithWriter(&buf))).
		WithSink("retain", sinkFunc(func(_ Level, msg []byte) { retained = append(retained, msg) })).
		Build()

	m.Printf(InfoLevel, "first line\n")
	m.Printf(InfoLevel, "second\n")
	m.Process()

	// Buffered copies at Output; the line buffer itself is recycled
	assert.Equal(t, "first line\nsecond\n", buf.String())
	require.Len(t, retained, 2)
	assert.Equal(t, "second\n", string(retained[1]))
}

// sinkFunc keeps the raw msg slice it is handed
type sinkFunc func(level Level, msg []byte)

func (f sinkFunc) Output(level Level, msg []byte) { f(level, msg) }

func (f sinkFunc) Process() {}

func (f sinkFunc) Level() Level { return DebugLevel }

func (f sinkFunc) SetLevel(Level) {}
