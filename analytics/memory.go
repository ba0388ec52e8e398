package analytics

import (
	"context"
	"sync"

	"github.com/poiesic/realsearch/core"
)

// MemoryRecorder accumulates events in memory. Intended for tests and for
// exposing aggregate counters over a process lifetime.
// Note: Returns concrete type from its constructor to allow assertions.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Recorder = (*MemoryRecorder)(nil)

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends the event.
func (r *MemoryRecorder) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a snapshot copy of all recorded events.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]Event, len(r.events))
	copy(snapshot, r.events)
	return snapshot
}

// CountByStrategy returns how many events were recorded per strategy.
func (r *MemoryRecorder) CountByStrategy() map[core.Strategy]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[core.Strategy]int)
	for _, event := range r.events {
		counts[event.Strategy]++
	}
	return counts
}

// ErrorCount returns how many recorded events carried an error.
func (r *MemoryRecorder) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, event := range r.events {
		if event.HadError {
			count++
		}
	}
	return count
}

// Reset discards all recorded events.
func (r *MemoryRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
