// Package animation provides the motion scheduling engine: spring-driven
// values and keyframe timelines advanced by a background tick loop,
// independent of any particular UI tree.
//
// # Core Components
//
//   - [SpringConfig]: damped harmonic oscillator parameters with a pure,
//     substep-clamped integration step. Presets like [SpringSnappy] and
//     [SpringGentle] cover common motion.
//
//   - [AnimatedValue]: one spring-driven scalar. Retarget it with SetTarget
//     and read it during paint with Get; the scheduler ticks it until it
//     settles.
//
//   - [AnimatedTimeline]: ordered keyframe entries over a shared clock, with
//     per-entry progress and value queries.
//
//   - [Scheduler]: owns the keyed [Registry] of entries, runs the tick loop on
//     its own goroutine, and invokes a wake callback exactly once each time
//     the system transitions from idle to active.
//
//   - [SchedulerHandle]: a non-owning reference for UI-construction code.
//     Handle operations become safe no-ops once the scheduler is closed.
//
// # Basic Usage
//
//	sched := animation.NewScheduler()
//	sched.SetWakeCallback(platform.RequestFrame)
//	sched.StartBackground()
//	defer sched.Close()
//
//	h := sched.Handle()
//
//	// During UI build, every rebuild:
//	scale, _ := h.ValueFor("card/scale", 1.0, animation.SpringSnappy())
//
//	// On press:
//	scale.SetTarget(1.2)
//
//	// During paint:
//	s := scale.Get()
//
// The wake callback is the only signal crossing into host code: it carries no
// payload, may fire from the scheduler's goroutine, and means "motion resumed,
// start rendering frames again". Hosts poll [Scheduler.IsActive] to decide
// when to stop.
package animation

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-motion/motion/pkg/errors"
)

// DefaultTickInterval is the cadence of the background tick loop, roughly
// 120 Hz so springs stay ahead of a 60 Hz display.
const DefaultTickInterval = time.Second / 120

// Scheduler owns the animation registry and advances every registered entry
// at a fixed cadence on a dedicated background goroutine.
//
// The scheduler moves between two states. It is active while any registered
// value is unsettled or any timeline is playing with unelapsed entries, and
// idle otherwise. On each idle-to-active edge the wake callback fires exactly
// once; while active or idle no further calls occur. The background loop keeps
// running either way (ticking settled entries is cheap), so activation never
// has to restart a thread.
//
// All methods are safe for concurrent use. Public operations never block on
// the tick loop beyond a per-entry critical section.
type Scheduler struct {
	registry *Registry

	// wakeVal stores the wake callback as func(). Atomic so the tick loop and
	// activation paths read it without locking.
	wakeVal atomic.Value

	active    atomic.Bool
	closed    atomic.Bool
	tickCount atomic.Uint64

	interval time.Duration

	loopMu   sync.Mutex
	loopStop chan struct{}
	loopDone chan struct{}
}

// NewScheduler creates a scheduler with an empty registry. The tick loop does
// not run until StartBackground is called; until then TickOnce drives entries
// manually, which is how deterministic tests use it.
func NewScheduler() *Scheduler {
	s := &Scheduler{interval: DefaultTickInterval}
	s.registry = newRegistry(s)
	return s
}

// Handle returns a non-owning reference to the scheduler for use by
// UI-construction and platform code. Any number of handles may exist; they
// never extend the scheduler's lifetime, and every handle operation is a safe
// no-op after Close.
func (s *Scheduler) Handle() SchedulerHandle {
	return SchedulerHandle{s: s}
}

// SetWakeCallback registers the function invoked on each idle-to-active edge.
// Platform glue points this at whatever resumes the host render loop: posting
// a custom event, writing to a wake pipe, requesting a frame. The callback
// runs on whichever goroutine triggered the edge, often the tick loop, and
// the host is responsible for marshaling to its own thread.
func (s *Scheduler) SetWakeCallback(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	s.wakeVal.Store(fn)
}

func (s *Scheduler) wake() {
	if fn, ok := s.wakeVal.Load().(func()); ok && fn != nil {
		fn()
	}
}

// activate transitions the scheduler to active, firing the wake callback only
// on the idle-to-active edge. Called by entries when they gain pending motion.
func (s *Scheduler) activate() {
	if s.closed.Load() {
		return
	}
	if s.active.CompareAndSwap(false, true) {
		s.wake()
	}
}

// IsActive reports whether any registered entry has pending motion.
func (s *Scheduler) IsActive() bool {
	return s.active.Load()
}

// TickCount returns the number of ticks applied since creation.
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// TickOnce advances every registered entry by dt seconds and recomputes the
// active state. The background loop calls this at its cadence; tests call it
// directly for deterministic stepping.
//
// Entries are ticked in no particular order; they are logically independent.
// The only ordering guarantee per entry is that the next tick after a target
// update observes the update.
func (s *Scheduler) TickOnce(dt float64) {
	defer errors.Recover("animation.Scheduler.TickOnce")

	values, timelines := s.registry.snapshot()
	allSettled := true
	for _, v := range values {
		if !v.tick(dt) {
			allSettled = false
		}
	}
	dtMs := dt * 1000
	for _, tl := range timelines {
		if !tl.advance(dtMs) {
			allSettled = false
		}
	}
	s.tickCount.Add(1)

	if allSettled {
		s.active.Store(false)
	} else {
		// Self-heal: a SetTarget racing the tick above may have been observed
		// by the entry but not by a concurrent active->idle store. Re-assert
		// the edge so the host is woken within one tick period.
		s.activate()
	}
}

// StartBackground spawns the tick loop goroutine. Idempotent: a second call
// while the loop runs does nothing. No-op after Close.
func (s *Scheduler) StartBackground() {
	if s.closed.Load() {
		return
	}
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.loopStop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.loopStop = stop
	s.loopDone = done
	go s.runLoop(stop, done)
}

// StopBackground terminates the tick loop within one tick period and waits for
// it to exit. Safe to call from any goroutine, including the wake callback's.
// No animation state is lost: entries simply stop advancing and retain their
// last values, which is the documented behavior at application shutdown.
func (s *Scheduler) StopBackground() {
	s.loopMu.Lock()
	stop, done := s.loopStop, s.loopDone
	s.loopStop, s.loopDone = nil, nil
	s.loopMu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Close tears the scheduler down: the tick loop stops and all handles become
// safe no-ops. Registered entries keep their last values and may still be
// read, but nothing advances them and their target mutations no longer wake
// anyone. Close is idempotent.
func (s *Scheduler) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.active.Store(false)
	s.StopBackground()
}

// runLoop is the dedicated background tick loop. It measures real elapsed
// time between iterations through the package clock and sleeps with drift
// correction so the average cadence holds even when individual ticks are slow.
func (s *Scheduler) runLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	last := Now()
	next := last.Add(s.interval)
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		now := Now()
		dt := now.Sub(last).Seconds()
		last = now
		if dt > 0 {
			s.TickOnce(dt)
		}

		// Sleep until the next slot on the original cadence grid rather than
		// a fixed interval from now, so slow ticks don't accumulate drift.
		next = next.Add(s.interval)
		wait := time.Until(next)
		if wait < 0 {
			next = time.Now().Add(s.interval)
			wait = s.interval
		}
		timer.Reset(wait)
	}
}
