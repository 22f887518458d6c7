package loots

import (
	"sync"
	"time"
)

// Backoff holds the poll interval. Failures stretch it by a fixed
// increment up to a ceiling and a successful decode snaps it back.
type Backoff struct {
	mu        sync.Mutex
	def       time.Duration
	increment time.Duration
	max       time.Duration
	current   time.Duration
}

// NewBackoff creates a Backoff starting at def. A max below def is raised to def.
func NewBackoff(def, increment, max time.Duration) *Backoff {
	if max < def {
		max = def
	}
	return &Backoff{def: def, increment: increment, max: max, current: def}
}

// Reset restores the default interval
func (b *Backoff) Reset() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.def
	return b.current
}

// Increase adds one increment, never exceeding the maximum
func (b *Backoff) Increase() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current += b.increment
	if b.current > b.max {
		b.current = b.max
	}
	return b.current
}

// Interval returns the current wait between polls
func (b *Backoff) Interval() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
