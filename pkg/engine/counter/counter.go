// Package counter provides mutex-guarded counters for progress tracking
// and metrics accumulation across the execution engines.
package counter

import "sync"

// Counter is a thread-safe accumulator. The zero value is ready to use.
type Counter struct {
	mu sync.Mutex
	n  int64
}

// Inc increments the counter by one and returns the new value.
func (c *Counter) Inc() int64 {
	return c.Add(1)
}

// Add adds delta to the counter and returns the new value.
func (c *Counter) Add(delta int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += delta
	return c.n
}

// Value returns the current count.
func (c *Counter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}

// Set is a collection of named counters sharing one lock, useful for
// progress reporting where related counts must be read consistently.
type Set struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewSet creates an empty counter set.
func NewSet() *Set {
	return &Set{counters: make(map[string]int64)}
}

// Inc increments the named counter by one and returns the new value.
func (s *Set) Inc(name string) int64 {
	return s.Add(name, 1)
}

// Add adds delta to the named counter and returns the new value.
func (s *Set) Add(name string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name] += delta
	return s.counters[name]
}

// Get returns the current value of the named counter.
func (s *Set) Get(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[name]
}

// Snapshot returns a consistent copy of all counters.
func (s *Set) Snapshot() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]int64, len(s.counters))
	for name, value := range s.counters {
		snap[name] = value
	}
	return snap
}
