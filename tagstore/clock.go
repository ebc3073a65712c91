package tagstore

import (
	"sync/atomic"
	"time"
)

// Clock issues tag stamps: wall-clock nanoseconds, forced strictly above the
// last stamp it issued. Two resets in the same clock tick still differ.
// Safe for concurrent use.
type Clock struct {
	last atomic.Uint64
	now  func() time.Time
}

// defaultClock is shared by every Store of the process.
var defaultClock = NewClock(time.Now)

func NewClock(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Next() uint64 {
	wall := uint64(c.now().UnixNano())
	for {
		last := c.last.Load()
		next := wall
		if next <= last {
			next = last + 1
		}
		if c.last.CompareAndSwap(last, next) {
			return next
		}
	}
}
