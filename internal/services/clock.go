package services

import (
	"sync"
	"time"
)

// insertClock hands out strictly increasing creation times, truncated to the
// millisecond precision every backend keeps, so records sorted by created_at
// come back in insertion order even when created in the same instant.
type insertClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newInsertClock() *insertClock {
	return &insertClock{now: time.Now}
}

func (c *insertClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}
