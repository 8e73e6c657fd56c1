package animation_test

import (
	"fmt"

	"github.com/go-motion/motion/pkg/animation"
)

// This example shows the full lifecycle: create a scheduler, register a
// spring-driven value under a stable key, retarget it, and tick until it
// settles.
func ExampleScheduler() {
	sched := animation.NewScheduler()
	defer sched.Close()

	h := sched.Handle()
	scale, _ := h.ValueFor("card/scale", 1.0, animation.SpringSnappy())

	// On press: animate toward 1.2. In a real app the background loop ticks;
	// here we step manually.
	scale.SetTarget(1.2)
	for sched.IsActive() {
		sched.TickOnce(1.0 / 120)
	}

	fmt.Printf("settled at %.1f\n", scale.Get())

	// Output:
	// settled at 1.2
}

// This example shows how platform glue bridges the scheduler into a host
// event loop: the wake callback fires once when motion starts.
func ExampleScheduler_wakeCallback() {
	sched := animation.NewScheduler()
	defer sched.Close()

	sched.SetWakeCallback(func() {
		fmt.Println("host: resume rendering")
	})

	v, _ := sched.Handle().ValueFor("x", 0, animation.SpringGentle())
	v.SetTarget(100) // idle -> active: wake fires
	v.SetTarget(200) // still active: no second wake

	// Output:
	// host: resume rendering
}

// This example shows a keyframe timeline with staggered entries, the pattern
// behind loading indicators.
func ExampleAnimatedTimeline() {
	sched := animation.NewScheduler()
	defer sched.Close()

	dots, _ := sched.Handle().TimelineFor("loader/dots")
	if !dots.HasEntries() {
		for i := 0; i < 3; i++ {
			dots.Add(uint32(i)*150, 300, 0.0, 1.0)
		}
		dots.Start()
	}

	// Advance 300ms: dot 0 is done, dot 1 is halfway, dot 2 just started.
	for n := 0; n < 3; n++ {
		sched.TickOnce(0.1)
	}
	for _, id := range dots.EntryIDs() {
		fmt.Printf("dot %d: %.1f\n", id, dots.ValueAt(id))
	}

	// Output:
	// dot 0: 1.0
	// dot 1: 0.5
	// dot 2: 0.0
}

// This example shows how a consumer such as a theme system rides one spring:
// animate a progress value from 0 to 100 and evaluate color tweens against it.
func ExampleTween() {
	sched := animation.NewScheduler()
	defer sched.Close()

	progress, _ := sched.Handle().ValueFor("theme/transition", 0, animation.SpringGentle())
	surface := animation.TweenColor(
		animation.RGB(250, 250, 250), // light surface
		animation.RGB(18, 18, 18),    // dark surface
	)

	progress.SetTarget(100)
	for sched.IsActive() {
		sched.TickOnce(1.0 / 120)
	}

	fmt.Printf("%08X\n", uint32(surface.FromValue(progress, 0, 100)))

	// Output:
	// FF121212
}

// This example shows call-site keyed lookups through the global scheduler,
// the most convenient surface for UI-construction code.
func ExampleUseValue() {
	sched := animation.NewScheduler()
	defer sched.Close()
	animation.SetGlobalScheduler(sched.Handle())

	// A component's build function runs once per rebuild; the call site inside
	// it is the same every time, so every rebuild finds the same entry.
	build := func() *animation.AnimatedValue {
		v, _ := animation.UseValue(0.0, animation.SpringSnappy())
		return v
	}

	opacity := build()
	opacity.SetTarget(1.0)
	again := build()
	fmt.Println(opacity == again)

	// Output:
	// true
}
