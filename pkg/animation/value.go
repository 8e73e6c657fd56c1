package animation

import (
	"math"
	"sync"
)

// AnimatedValue is a single spring-driven scalar.
//
// The value carries its own position, velocity, and target, and is advanced by
// the owning [Scheduler]'s tick loop. UI code mutates it through [AnimatedValue.SetTarget]
// and reads it during paint through [AnimatedValue.Get]; both are short
// critical sections guarded by a per-value lock, so readers never contend on
// anything wider than the one value they touch.
//
// Values obtained from a registry ([SchedulerHandle.ValueFor]) persist across
// UI rebuilds: looking the same key up again returns the same value, mid-flight
// state intact.
type AnimatedValue struct {
	mu       sync.Mutex
	current  float64
	velocity float64
	target   float64
	config   SpringConfig
	settled  bool

	// sched is set when the value is owned by a scheduler's registry.
	// A nil sched means the value is standalone and must be ticked manually.
	sched *Scheduler
}

// NewAnimatedValue returns a standalone value resting at initial.
//
// The value starts settled: current and target are both initial and velocity
// is zero. Most callers should register values with a scheduler via
// [SchedulerHandle.ValueFor] instead, which also validates cfg; this
// constructor trusts its input.
func NewAnimatedValue(initial float64, cfg SpringConfig) *AnimatedValue {
	return &AnimatedValue{
		current: initial,
		target:  initial,
		config:  cfg,
		settled: true,
	}
}

// attach binds the value to the scheduler that ticks it. Called once, under
// the registry's write lock, before the value is visible to any other thread.
func (v *AnimatedValue) attach(s *Scheduler) {
	v.sched = s
}

// SetTarget retargets the spring and marks it unsettled.
//
// Velocity is deliberately preserved: retargeting a value mid-flight redirects
// the motion without a visual snap, and the current position is untouched
// until the next tick. If the value belongs to a scheduler, setting a target
// on a settled value wakes the scheduler's host.
func (v *AnimatedValue) SetTarget(target float64) {
	v.mu.Lock()
	v.target = target
	v.settled = false
	sched := v.sched
	v.mu.Unlock()
	if sched != nil {
		sched.activate()
	}
}

// Get returns the current position. Safe to call from any thread.
func (v *AnimatedValue) Get() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Velocity returns the current velocity in value units per second.
func (v *AnimatedValue) Velocity() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.velocity
}

// Target returns the value the spring is moving toward.
func (v *AnimatedValue) Target() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.target
}

// Config returns the spring configuration the value was created with.
func (v *AnimatedValue) Config() SpringConfig {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.config
}

// IsSettled reports whether position and velocity are both within epsilon of
// rest at the target.
func (v *AnimatedValue) IsSettled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settled
}

// Set snaps the value to pos immediately, at rest, without animating.
func (v *AnimatedValue) Set(pos float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = pos
	v.target = pos
	v.velocity = 0
	v.settled = true
}

// tick advances the spring by dt seconds and reports whether the value is
// settled afterwards. Invoked only by the scheduler's tick loop (or tests).
func (v *AnimatedValue) tick(dt float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.settled {
		return true
	}
	v.current, v.velocity = v.config.Step(v.current, v.velocity, v.target, dt)
	if math.Abs(v.current-v.target) < settleEpsilon && math.Abs(v.velocity) < settleEpsilonVel {
		// Absorb the sub-epsilon remainder so a settled value reads exactly
		// as its target.
		v.current = v.target
		v.velocity = 0
		v.settled = true
	}
	return v.settled
}
