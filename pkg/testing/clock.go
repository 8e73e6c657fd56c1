package testing

import (
	"sync"
	"time"

	"github.com/go-motion/motion/pkg/animation"
)

// fakeEpoch is the instant a fresh FakeClock rests at. The value is arbitrary;
// scheduler tests only ever measure deltas from it.
var fakeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a manually advanced time source for deterministic scheduler
// tests. Install it with animation.SetClock, then interleave Advance (or
// AdvanceTicks) with TickOnce calls; see [Pump] for the common loop. All
// methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock resting at the fake epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: fakeEpoch}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceTicks moves the clock forward by n scheduler tick intervals, the
// cadence the background loop would observe on real time.
func (c *FakeClock) AdvanceTicks(n int) {
	c.Advance(time.Duration(n) * animation.DefaultTickInterval)
}

// Elapsed returns how far the clock has moved from the fake epoch. Negative
// if Set rewound it past the epoch.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(fakeEpoch)
}

// Set jumps the clock to an exact time, in either direction.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
