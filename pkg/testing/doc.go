// Package testing provides deterministic helpers for testing animations.
//
// The scheduler normally measures real elapsed time between ticks. For tests,
// install a [FakeClock] with animation.SetClock and drive the scheduler with
// [Pump], which advances fake time and applies ticks in lockstep:
//
//	clock := motiontesting.NewFakeClock()
//	prev := animation.SetClock(clock)
//	defer animation.SetClock(prev)
//
//	sched := animation.NewScheduler()
//	v, _ := sched.Handle().ValueFor("x", 0, animation.SpringSnappy())
//	v.SetTarget(10)
//	motiontesting.Pump(sched, clock, time.Second, 8*time.Millisecond)
//
// No background goroutine is involved; every tick happens on the test's own
// goroutine with an exact delta.
package testing
