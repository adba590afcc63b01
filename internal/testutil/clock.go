package testutil

import (
	"sync"
	"time"
)

// Epoch is the default start time of a DeterministicClock.
var Epoch = time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC)

// DeterministicClock is a wall clock for tests that advances by a fixed
// step on every read.
//
// With a zero step every call to Now returns the start time. It can be
// reset so the same scenario runs twice with identical timestamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	reads int64
}

// NewDeterministicClock creates a clock starting at Epoch that never
// advances.
func NewDeterministicClock() *DeterministicClock {
	return NewSteppingClock(Epoch, 0)
}

// NewSteppingClock creates a clock whose first Now returns start and each
// later call returns the previous value plus step.
func NewSteppingClock(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{start: start, step: step}
}

// Now returns the next time of the clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.reads) * c.step)
	c.reads++
	return t
}

// Reads returns how many times Now was called.
func (c *DeterministicClock) Reads() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Reset rewinds the clock to its start time.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads = 0
}
