package animation

import (
	"sync/atomic"
	"time"
)

// Clock provides time for the scheduler. The default implementation uses
// system time. Tests inject a fake clock via SetClock so tick deltas are
// fully deterministic.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clockBox wraps the Clock interface so clockVal always stores a single
// concrete type; atomic.Value panics if the stored concrete type changes.
type clockBox struct{ c Clock }

// clockVal holds the package-level time source. Stored atomically because the
// tick loop reads it from its own goroutine while tests swap it out.
var clockVal atomic.Value // stores clockBox

func init() {
	clockVal.Store(clockBox{realClock{}})
}

// SetClock replaces the time source used by schedulers. It returns the
// previous clock so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	if c == nil {
		c = realClock{}
	}
	return clockVal.Swap(clockBox{c}).(clockBox).c
}

// Now returns the current time from the active clock.
func Now() time.Time {
	return clockVal.Load().(clockBox).c.Now()
}
