// Package ratelimit enforces the search admission ceilings: per-session and
// per-IP daily search counts, and the process-wide monthly upstream call
// quota. Counters are checked before any upstream activity.
package ratelimit

import (
	"sync"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
)

// Counter is a linearizable counter with windowed reset. Allow is an atomic
// check-then-add: either the whole batch fits under the limit and is
// recorded, or nothing is. The in-process implementation below assumes a
// single worker; a multi-process deployment would back this interface with
// an external atomic store instead.
type Counter interface {
	// Allow records n units if the window has capacity, returning whether
	// it did. The window resets when the current time crosses its boundary.
	Allow(n int) bool

	// Remaining returns how many units the current window still accepts.
	Remaining() int

	// Limit returns the configured ceiling.
	Limit() int

	// ResetAt returns when the current window rolls over.
	ResetAt() time.Time
}

// BoundaryFunc computes the reset boundary following a window start.
type BoundaryFunc func(windowStart time.Time) time.Time

// windowCounter implements Counter with a {count, windowStart} pair.
type windowCounter struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
	limit       int
	boundary    BoundaryFunc
	clock       timeutil.Clock
}

// NewWindowCounter creates a counter with a custom boundary function.
func NewWindowCounter(limit int, boundary BoundaryFunc, clock timeutil.Clock) Counter {
	return &windowCounter{
		limit:       limit,
		boundary:    boundary,
		windowStart: clock.Now(),
		clock:       clock,
	}
}

// NewDailyCounter creates a counter that resets at midnight UTC.
func NewDailyCounter(limit int, clock timeutil.Clock) Counter {
	return NewWindowCounter(limit, timeutil.NextDayUTC, clock)
}

// NewMonthlyCounter creates a counter that resets on the 1st at midnight UTC.
func NewMonthlyCounter(limit int, clock timeutil.Clock) Counter {
	return NewWindowCounter(limit, timeutil.NextMonthUTC, clock)
}

// rollover resets the window if now has crossed its boundary.
// Callers must hold the mutex.
func (c *windowCounter) rollover(now time.Time) {
	if !now.Before(c.boundary(c.windowStart)) {
		c.count = 0
		c.windowStart = now
	}
}

func (c *windowCounter) Allow(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollover(c.clock.Now())
	if c.count+n > c.limit {
		return false
	}
	c.count += n
	return true
}

func (c *windowCounter) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollover(c.clock.Now())
	if remaining := c.limit - c.count; remaining > 0 {
		return remaining
	}
	return 0
}

func (c *windowCounter) Limit() int {
	return c.limit
}

func (c *windowCounter) ResetAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollover(c.clock.Now())
	return c.boundary(c.windowStart)
}

// KeyedCounters manages one Counter per identity key, created lazily.
type KeyedCounters struct {
	mu       sync.Mutex
	counters map[string]Counter
	factory  func() Counter
}

// NewKeyedCounters creates a keyed counter set with the given factory.
func NewKeyedCounters(factory func() Counter) *KeyedCounters {
	return &KeyedCounters{
		counters: make(map[string]Counter),
		factory:  factory,
	}
}

// Get returns the counter for a key, creating it on first use.
func (k *KeyedCounters) Get(key string) Counter {
	k.mu.Lock()
	defer k.mu.Unlock()

	counter, ok := k.counters[key]
	if !ok {
		counter = k.factory()
		k.counters[key] = counter
	}
	return counter
}
