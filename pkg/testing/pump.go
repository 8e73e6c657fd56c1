package testing

import (
	"time"

	"github.com/go-motion/motion/pkg/animation"
)

// Pump advances fake time by total in increments of step, applying one
// scheduler tick per increment. It mirrors what the background loop would do
// over the same wall-clock span, but synchronously and with exact deltas.
// A final partial step covers any remainder of total not divisible by step.
func Pump(s *animation.Scheduler, clock *FakeClock, total, step time.Duration) {
	if step <= 0 {
		step = 8 * time.Millisecond
	}
	for total > 0 {
		d := step
		if d > total {
			d = total
		}
		clock.Advance(d)
		s.TickOnce(d.Seconds())
		total -= d
	}
}

// TicksToSettle ticks the scheduler at a fixed step until it reports idle and
// returns the number of ticks taken. It gives up after maxTicks and returns
// (maxTicks, false) so a diverging spring fails a test instead of hanging it.
func TicksToSettle(s *animation.Scheduler, clock *FakeClock, step time.Duration, maxTicks int) (int, bool) {
	for i := 1; i <= maxTicks; i++ {
		clock.Advance(step)
		s.TickOnce(step.Seconds())
		if !s.IsActive() {
			return i, true
		}
	}
	return maxTicks, false
}
