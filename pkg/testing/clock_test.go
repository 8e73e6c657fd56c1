package testing

import (
	"testing"
	"time"

	"github.com/go-motion/motion/pkg/animation"
)

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock()
	start := c.Now()
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("Advance moved clock by %v, want 250ms", got)
	}
}

func TestFakeClockSet(t *testing.T) {
	c := NewFakeClock()
	target := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	c.Set(target)
	if !c.Now().Equal(target) {
		t.Errorf("Set: Now() = %v, want %v", c.Now(), target)
	}
}

func TestFakeClockAdvanceTicks(t *testing.T) {
	c := NewFakeClock()
	c.AdvanceTicks(120)
	if got := c.Elapsed(); got != 120*animation.DefaultTickInterval {
		t.Errorf("120 ticks elapsed %v, want %v", got, 120*animation.DefaultTickInterval)
	}
}

func TestFakeClockElapsed(t *testing.T) {
	c := NewFakeClock()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("fresh clock elapsed %v, want 0", got)
	}
	c.Advance(3 * time.Second)
	if got := c.Elapsed(); got != 3*time.Second {
		t.Errorf("elapsed %v, want 3s", got)
	}
}
