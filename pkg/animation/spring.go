package animation

import (
	"fmt"

	"github.com/go-motion/motion/pkg/errors"
)

// maxSubstep is the largest time slice a single integration step may cover,
// in seconds. Elapsed times beyond this are split into repeated substeps so
// that a host stall (debugger pause, window drag, long GC) cannot feed the
// integrator a delta large enough to destabilize it.
const maxSubstep = 1.0 / 30.0

// maxDelta caps the total time one Step call may consume, in seconds. Deltas
// beyond this come from broken host timers (a suspended machine, a non-finite
// measurement), and capping them keeps the substep loop bounded: without the
// cap an infinite dt would never drain.
const maxDelta = 4.0

// Settling thresholds, in value units and value units per second.
const (
	settleEpsilon    = 1e-3
	settleEpsilonVel = 1e-3
)

// SpringConfig describes a damped harmonic oscillator: the physical
// parameters that shape how an [AnimatedValue] approaches its target.
//
// Construct configs with [NewSpringConfig], which rejects degenerate
// parameters, or use one of the presets ([SpringDefault], [SpringGentle],
// [SpringWobbly], [SpringStiff], [SpringSnappy], [SpringSlow]).
type SpringConfig struct {
	// Stiffness is the spring constant. Higher values pull the value toward
	// the target harder. Must be > 0.
	Stiffness float64
	// Damping resists velocity. Higher values reduce oscillation. Must be >= 0;
	// zero damping oscillates forever and will never settle.
	Damping float64
	// Mass scales the inertia of the animated value. Must be > 0.
	Mass float64
}

// NewSpringConfig validates and returns a spring configuration.
//
// Degenerate parameters are rejected here rather than at step time: a
// non-positive stiffness or mass indicates a programming error in the caller,
// and catching it at construction keeps the tick loop free of runtime checks.
func NewSpringConfig(stiffness, damping, mass float64) (SpringConfig, error) {
	cfg := SpringConfig{Stiffness: stiffness, Damping: damping, Mass: mass}
	if err := cfg.Validate(); err != nil {
		return SpringConfig{}, err
	}
	return cfg, nil
}

// Validate reports whether the configuration is physically usable.
func (c SpringConfig) Validate() error {
	if c.Stiffness <= 0 || c.Stiffness != c.Stiffness {
		return errors.Config("animation.SpringConfig", fmt.Errorf("stiffness must be > 0, got %v", c.Stiffness))
	}
	if c.Damping < 0 || c.Damping != c.Damping {
		return errors.Config("animation.SpringConfig", fmt.Errorf("damping must be >= 0, got %v", c.Damping))
	}
	if c.Mass <= 0 || c.Mass != c.Mass {
		return errors.Config("animation.SpringConfig", fmt.Errorf("mass must be > 0, got %v", c.Mass))
	}
	return nil
}

// SpringDefault is the baseline spring used when no preset is chosen.
func SpringDefault() SpringConfig { return SpringConfig{Stiffness: 100, Damping: 10, Mass: 1} }

// SpringGentle settles softly with little overshoot. Suited to theme or
// color transitions where motion should be felt rather than seen.
func SpringGentle() SpringConfig { return SpringConfig{Stiffness: 120, Damping: 14, Mass: 1} }

// SpringWobbly overshoots visibly before settling.
func SpringWobbly() SpringConfig { return SpringConfig{Stiffness: 180, Damping: 12, Mass: 1} }

// SpringStiff tracks its target closely with minimal lag.
func SpringStiff() SpringConfig { return SpringConfig{Stiffness: 210, Damping: 20, Mass: 1} }

// SpringSnappy reaches its target fast with a short, crisp tail. The usual
// choice for press/hover scale feedback.
func SpringSnappy() SpringConfig { return SpringConfig{Stiffness: 400, Damping: 28, Mass: 1} }

// SpringSlow creeps toward its target without overshoot.
func SpringSlow() SpringConfig { return SpringConfig{Stiffness: 280, Damping: 60, Mass: 1} }

// Step advances the oscillator by dt seconds and returns the next position
// and velocity. It is a pure function of its inputs; no state is shared.
//
// Integration is semi-implicit (symplectic) Euler: acceleration is computed
// from the current position, velocity is updated first, and the new velocity
// moves the position. dt is clamped to [maxSubstep] and larger deltas are
// consumed in repeated substeps, so the result is stable regardless of host
// frame-time jitter. Non-positive and NaN deltas leave the state unchanged,
// and the total consumed delta is capped at [maxDelta] seconds, so no timing
// input (infinite included) can make the call run unbounded.
func (c SpringConfig) Step(current, velocity, target, dt float64) (float64, float64) {
	if dt > maxDelta {
		dt = maxDelta
	}
	for dt > 0 {
		h := dt
		if h > maxSubstep {
			h = maxSubstep
		}
		accel := (c.Stiffness*(target-current) - c.Damping*velocity) / c.Mass
		velocity += accel * h
		current += velocity * h
		dt -= h
	}
	return current, velocity
}
