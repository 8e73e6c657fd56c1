package animation

import (
	"fmt"
	"sync"

	"github.com/go-motion/motion/pkg/errors"
)

// Registry maps opaque string keys to animated entries, guaranteeing at most
// one entry per key for the registry's lifetime.
//
// The key is what lets animated state survive full UI rebuilds: trees are
// reconstructed from scratch every frame, so object identity is worthless, and
// a component instead presents the same key (explicit name, call-site
// location, loop index) on every rebuild and gets its previous entry back.
// Supplying stable keys is the UI layer's contract; the registry cannot
// verify it.
//
// The registry-wide lock is taken only to insert (at most once per key) and to
// snapshot for ticking. Reads and ticks of existing entries synchronize on the
// per-entry lock alone, keeping contention proportional to colliding keys, not
// to the total number of animations.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]any // *AnimatedValue or *AnimatedTimeline
	sched *Scheduler
}

func newRegistry(s *Scheduler) *Registry {
	return &Registry{
		byKey: make(map[string]any),
		sched: s,
	}
}

// ValueFor returns the animated value registered under key, creating it from
// initial and cfg on first request.
//
// First registration wins: once a key exists, later calls return the existing
// entry and ignore the newly supplied initial and cfg entirely. UI code
// re-registers every rebuild, and honoring a fresh initial value would
// rubber-band an in-flight spring back to its starting point on every frame.
//
// cfg is validated on the creation path only; a key already registered as a
// timeline fails with a key-conflict error rather than returning the wrong
// kind.
func (r *Registry) ValueFor(key string, initial float64, cfg SpringConfig) (*AnimatedValue, error) {
	r.mu.RLock()
	existing, ok := r.byKey[key]
	r.mu.RUnlock()
	if !ok {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		r.mu.Lock()
		existing, ok = r.byKey[key]
		if !ok {
			v := NewAnimatedValue(initial, cfg)
			v.attach(r.sched)
			r.byKey[key] = v
			r.mu.Unlock()
			return v, nil
		}
		r.mu.Unlock()
	}
	v, ok := existing.(*AnimatedValue)
	if !ok {
		return nil, errors.Key("animation.Registry.ValueFor",
			fmt.Errorf("key %q is registered as a timeline, not a value", key))
	}
	return v, nil
}

// TimelineFor returns the timeline registered under key, creating it empty on
// first request. Creation-once semantics match [Registry.ValueFor]: the entry
// persists until explicitly removed, and a key already registered as a value
// fails with a key-conflict error.
func (r *Registry) TimelineFor(key string) (*AnimatedTimeline, error) {
	r.mu.RLock()
	existing, ok := r.byKey[key]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		existing, ok = r.byKey[key]
		if !ok {
			tl := NewAnimatedTimeline()
			tl.attach(r.sched)
			r.byKey[key] = tl
			r.mu.Unlock()
			return tl, nil
		}
		r.mu.Unlock()
	}
	tl, ok := existing.(*AnimatedTimeline)
	if !ok {
		return nil, errors.Key("animation.Registry.TimelineFor",
			fmt.Errorf("key %q is registered as a value, not a timeline", key))
	}
	return tl, nil
}

// Remove evicts the entry registered under key, if any. Rebuilds never remove
// entries implicitly; this is the only way an entry leaves the registry.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	delete(r.byKey, key)
	r.mu.Unlock()
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}

// snapshot copies the current entries so the tick loop can iterate without
// holding the registry lock during per-entry work.
func (r *Registry) snapshot() (values []*AnimatedValue, timelines []*AnimatedTimeline) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.byKey {
		switch e := entry.(type) {
		case *AnimatedValue:
			values = append(values, e)
		case *AnimatedTimeline:
			timelines = append(timelines, e)
		}
	}
	return values, timelines
}
