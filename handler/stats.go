package handler

import (
	"sync/atomic"
)

// Stats tracks sink statistics
type Stats struct {
	// Accepted counts records that passed the level gate and were queued
	// or written
	Accepted uint64
	// Filtered counts records rejected by the level gate
	Filtered uint64
	// Dropped counts records refused after the gate (closed sink, pending cap)
	Dropped uint64
	// Drained counts records handed to the device
	Drained uint64
	// Writes counts physical Device.Write calls
	Writes uint64
	// WriteErrors counts failed Device.Write calls
	WriteErrors uint64
	// Batches counts non-empty Process drains
	Batches uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) incAccepted() { atomic.AddUint64(&s.Accepted, 1) }

func (s *Stats) incFiltered() { atomic.AddUint64(&s.Filtered, 1) }

func (s *Stats) incDropped() { atomic.AddUint64(&s.Dropped, 1) }

func (s *Stats) incBatches() { atomic.AddUint64(&s.Batches, 1) }

func (s *Stats) addDrained(n int) { atomic.AddUint64(&s.Drained, uint64(n)) }

func (s *Stats) recordWrite(err error) {
	atomic.AddUint64(&s.Writes, 1)
	if err != nil {
		atomic.AddUint64(&s.WriteErrors, 1)
	}
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.Accepted, 0)
	atomic.StoreUint64(&s.Filtered, 0)
	atomic.StoreUint64(&s.Dropped, 0)
	atomic.StoreUint64(&s.Drained, 0)
	atomic.StoreUint64(&s.Writes, 0)
	atomic.StoreUint64(&s.WriteErrors, 0)
	atomic.StoreUint64(&s.Batches, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Accepted    uint64
	Filtered    uint64
	Dropped     uint64
	Drained     uint64
	Writes      uint64
	WriteErrors uint64
	Batches     uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Accepted:    atomic.LoadUint64(&s.Accepted),
		Filtered:    atomic.LoadUint64(&s.Filtered),
		Dropped:     atomic.LoadUint64(&s.Dropped),
		Drained:     atomic.LoadUint64(&s.Drained),
		Writes:      atomic.LoadUint64(&s.Writes),
		WriteErrors: atomic.LoadUint64(&s.WriteErrors),
		Batches:     atomic.LoadUint64(&s.Batches),
	}
}
