package animation

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// The functions in this file are the convenience surface UI code builds
// against: a process-wide scheduler handle plus keyed and auto-keyed lookup
// helpers. Component libraries that should not depend on a concrete scheduler
// take a SchedulerHandle parameter instead.

// globalHandle stores the application's SchedulerHandle once the platform
// layer has created the scheduler.
var globalHandle atomic.Value // stores SchedulerHandle

// SetGlobalScheduler publishes the application scheduler's handle. Called once
// by the platform layer after the scheduler exists; components then reach the
// scheduler through [UseValue], [UseValueFor] and friends without plumbing a
// handle through every constructor.
func SetGlobalScheduler(h SchedulerHandle) {
	globalHandle.Store(h)
}

// GlobalScheduler returns the published handle. The zero handle (not alive) is
// returned before SetGlobalScheduler has been called.
func GlobalScheduler() SchedulerHandle {
	if h, ok := globalHandle.Load().(SchedulerHandle); ok {
		return h
	}
	return SchedulerHandle{}
}

// UseValueFor creates or retrieves a keyed animated value on the global
// scheduler. The key must be stable across rebuilds; derive it from an
// explicit name plus loop index for values created in loops.
func UseValueFor(key string, initial float64, cfg SpringConfig) (*AnimatedValue, error) {
	return GlobalScheduler().ValueFor(key, initial, cfg)
}

// UseTimelineFor creates or retrieves a keyed timeline on the global scheduler.
func UseTimelineFor(key string) (*AnimatedTimeline, error) {
	return GlobalScheduler().TimelineFor(key)
}

// UseValue creates or retrieves an animated value keyed by the caller's source
// location. Each call site gets its own entry, stable across rebuilds as long
// as the source does not move. Not suitable inside loops, where every
// iteration shares the one call site; use [UseValueFor] with an explicit key
// there.
func UseValue(initial float64, cfg SpringConfig) (*AnimatedValue, error) {
	return UseValueFor(CallSiteKey(1), initial, cfg)
}

// UseTimeline creates or retrieves a timeline keyed by the caller's source
// location. The same loop caveat as [UseValue] applies.
func UseTimeline() (*AnimatedTimeline, error) {
	return UseTimelineFor(CallSiteKey(1))
}

// CallSiteKey returns a registry key derived from the caller's file and line.
// skip follows the runtime.Caller convention: 0 is the caller of CallSiteKey,
// 1 its caller, and so on. Helpers that wrap the Use functions pass their own
// depth so the key lands on their caller.
func CallSiteKey(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
