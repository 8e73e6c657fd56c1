package animation

import (
	"fmt"

	"github.com/go-motion/motion/pkg/errors"
)

// errSchedulerClosed is wrapped into lifecycle errors returned by handle
// operations after Close.
var errSchedulerClosed = fmt.Errorf("scheduler closed")

// SchedulerHandle is a non-owning reference to a [Scheduler].
//
// UI-construction code and platform glue hold handles rather than the
// scheduler itself: handles are plain values, any number may be copied around,
// and none of them keeps the scheduler running. Once the scheduler is closed,
// every handle operation degrades to a safe no-op (lookups return a lifecycle
// error, Wake does nothing), so components holding a stale handle briefly
// during shutdown can never crash.
type SchedulerHandle struct {
	s *Scheduler
}

// Alive reports whether the underlying scheduler is still open.
func (h SchedulerHandle) Alive() bool {
	return h.s != nil && !h.s.closed.Load()
}

// ValueFor returns the spring value registered under key, creating it from
// initial and cfg on first request. First registration wins; see
// [Registry.ValueFor]. Fails with a lifecycle error if the scheduler has been
// closed, and with a config error if cfg is invalid on the creation path.
func (h SchedulerHandle) ValueFor(key string, initial float64, cfg SpringConfig) (*AnimatedValue, error) {
	if !h.Alive() {
		return nil, errors.Lifecycle("animation.SchedulerHandle.ValueFor", errSchedulerClosed)
	}
	return h.s.registry.ValueFor(key, initial, cfg)
}

// TimelineFor returns the timeline registered under key, creating it empty on
// first request. Fails with a lifecycle error if the scheduler has been closed.
func (h SchedulerHandle) TimelineFor(key string) (*AnimatedTimeline, error) {
	if !h.Alive() {
		return nil, errors.Lifecycle("animation.SchedulerHandle.TimelineFor", errSchedulerClosed)
	}
	return h.s.registry.TimelineFor(key)
}

// Remove evicts the entry registered under key. No-op after Close.
func (h SchedulerHandle) Remove(key string) {
	if !h.Alive() {
		return
	}
	h.s.registry.Remove(key)
}

// IsActive reports whether the scheduler has pending motion. False after Close.
func (h SchedulerHandle) IsActive() bool {
	return h.Alive() && h.s.IsActive()
}

// Wake forces an idle-to-active check, firing the wake callback if the
// scheduler was idle. Used by hosts that need to kick the render loop for
// reasons outside the animation system. No-op after Close.
func (h SchedulerHandle) Wake() {
	if !h.Alive() {
		return
	}
	h.s.activate()
}
