package animation

import (
	"math"
	"testing"
)

const tickDt = 1.0 / 120

func settleValue(t *testing.T, v *AnimatedValue, maxTicks int) int {
	t.Helper()
	for i := 1; i <= maxTicks; i++ {
		if v.tick(tickDt) {
			return i
		}
	}
	t.Fatalf("value did not settle within %d ticks: current=%v velocity=%v",
		maxTicks, v.Get(), v.Velocity())
	return 0
}

func TestNewValueStartsSettled(t *testing.T) {
	v := NewAnimatedValue(5, SpringSnappy())
	if !v.IsSettled() {
		t.Error("fresh value should be settled")
	}
	if v.Get() != 5 || v.Target() != 5 {
		t.Errorf("fresh value should rest at initial: current=%v target=%v", v.Get(), v.Target())
	}
	if v.Velocity() != 0 {
		t.Errorf("fresh value should have zero velocity, got %v", v.Velocity())
	}
}

func TestSetTargetUnsettles(t *testing.T) {
	v := NewAnimatedValue(0, SpringSnappy())
	v.SetTarget(10)
	if v.IsSettled() {
		t.Error("SetTarget should clear settled")
	}
	if v.Target() != 10 {
		t.Errorf("target = %v, want 10", v.Target())
	}
}

func TestValueSettlesAtTarget(t *testing.T) {
	v := NewAnimatedValue(0, SpringSnappy())
	v.SetTarget(10)
	settleValue(t, v, 2000)
	if got := v.Get(); got != 10 {
		t.Errorf("settled value should read exactly its target, got %v", got)
	}
	if v.Velocity() != 0 {
		t.Errorf("settled velocity should be zero, got %v", v.Velocity())
	}
}

func TestNoRetargetSnap(t *testing.T) {
	v := NewAnimatedValue(0, SpringGentle())
	v.SetTarget(100)
	for n := 0; n < 10; n++ {
		v.tick(tickDt)
	}
	if v.Velocity() == 0 {
		t.Fatal("test needs the value mid-flight")
	}

	before := v.Get()
	beforeVel := v.Velocity()
	v.SetTarget(-50)

	// Retargeting changes the target only; position and velocity are exactly
	// what they were until the next tick.
	if got := v.Get(); got != before {
		t.Errorf("SetTarget changed current from %v to %v", before, got)
	}
	if got := v.Velocity(); got != beforeVel {
		t.Errorf("SetTarget changed velocity from %v to %v", beforeVel, got)
	}
}

func TestRetargetMidFlightConverges(t *testing.T) {
	v := NewAnimatedValue(0, SpringWobbly())
	v.SetTarget(40)
	for n := 0; n < 30; n++ {
		v.tick(tickDt)
	}
	v.SetTarget(-10)
	settleValue(t, v, 4000)
	if got := v.Get(); got != -10 {
		t.Errorf("value should settle at the last-set target, got %v", got)
	}
}

func TestSetSnapsImmediately(t *testing.T) {
	v := NewAnimatedValue(0, SpringSnappy())
	v.SetTarget(10)
	for n := 0; n < 5; n++ {
		v.tick(tickDt)
	}
	v.Set(3)
	if !v.IsSettled() || v.Get() != 3 || v.Velocity() != 0 {
		t.Errorf("Set should rest at the new position: current=%v velocity=%v settled=%v",
			v.Get(), v.Velocity(), v.IsSettled())
	}
}

func TestTickOnSettledValueIsStable(t *testing.T) {
	v := NewAnimatedValue(7, SpringDefault())
	for n := 0; n < 100; n++ {
		if !v.tick(tickDt) {
			t.Fatal("settled value should stay settled")
		}
	}
	if v.Get() != 7 {
		t.Errorf("settled value drifted to %v", v.Get())
	}
}

func TestSettleToleratesHugeTargets(t *testing.T) {
	v := NewAnimatedValue(0, SpringStiff())
	v.SetTarget(1e9)
	for n := 0; n < 6000; n++ {
		if v.tick(tickDt) {
			break
		}
	}
	if math.IsNaN(v.Get()) || math.IsInf(v.Get(), 0) {
		t.Errorf("huge targets must not break the integrator, got %v", v.Get())
	}
}
