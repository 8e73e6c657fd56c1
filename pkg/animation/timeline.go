package animation

import "sync"

// KeyframeEntry is one interpolation segment of an [AnimatedTimeline]: a value
// ramp from From to To over a window of the timeline's clock.
//
// Start and duration are unsigned milliseconds, so a negative time window is
// unrepresentable by construction. Configuration layers that accept signed
// input (such as the motion.yaml loader) must reject negatives before
// building entries.
type KeyframeEntry struct {
	// ID identifies the entry within its timeline. IDs are assigned
	// monotonically by Add and never reused.
	ID uint64
	// StartMs is the offset from timeline start at which the ramp begins.
	StartMs uint32
	// DurationMs is the length of the ramp. A zero duration snaps from From
	// to To at StartMs.
	DurationMs uint32
	// From and To are the segment's endpoint values.
	From, To float64
	// Easing shapes the ramp. Nil is treated as [Linear].
	Easing Easing
}

func (e KeyframeEntry) endMs() uint64 {
	return uint64(e.StartMs) + uint64(e.DurationMs)
}

// AnimatedTimeline is a named collection of keyframe entries advancing on a
// shared elapsed-time clock.
//
// Each entry is an independent track: dots of a loading indicator staggered by
// StartMs, or several properties of one element keyed off the same clock.
// Entries may be appended while the timeline is playing, which is how
// dynamically growing timelines are built.
//
// Timelines are created empty through [SchedulerHandle.TimelineFor] and
// persist across UI rebuilds under their registry key. All methods are safe
// for concurrent use; reads during paint take only this timeline's lock.
type AnimatedTimeline struct {
	mu        sync.Mutex
	entries   []KeyframeEntry
	nextID    uint64
	elapsedMs float64
	playing   bool

	sched *Scheduler
}

// NewAnimatedTimeline returns a standalone empty timeline. Prefer
// [SchedulerHandle.TimelineFor], which registers the timeline to be advanced
// by the scheduler's tick loop.
func NewAnimatedTimeline() *AnimatedTimeline {
	return &AnimatedTimeline{}
}

func (tl *AnimatedTimeline) attach(s *Scheduler) {
	tl.sched = s
}

// Add appends a linear entry and returns its id. Valid while playing; a new
// entry whose window lies ahead of the current elapsed time extends the
// running animation.
func (tl *AnimatedTimeline) Add(startMs, durationMs uint32, from, to float64) uint64 {
	return tl.AddEased(startMs, durationMs, from, to, Linear)
}

// AddEased appends an entry with an explicit easing function and returns its id.
func (tl *AnimatedTimeline) AddEased(startMs, durationMs uint32, from, to float64, easing Easing) uint64 {
	tl.mu.Lock()
	id := tl.nextID
	tl.nextID++
	tl.entries = append(tl.entries, KeyframeEntry{
		ID:         id,
		StartMs:    startMs,
		DurationMs: durationMs,
		From:       from,
		To:         to,
		Easing:     easing,
	})
	playing := tl.playing
	sched := tl.sched
	tl.mu.Unlock()
	if playing && sched != nil {
		sched.activate()
	}
	return id
}

// Start rewinds elapsed time to zero and begins playback. If the timeline is
// scheduler-owned, the scheduler transitions to active and wakes its host.
func (tl *AnimatedTimeline) Start() {
	tl.mu.Lock()
	tl.elapsedMs = 0
	tl.playing = true
	sched := tl.sched
	tl.mu.Unlock()
	if sched != nil {
		sched.activate()
	}
}

// Stop halts playback without resetting elapsed time. Entries hold their
// current interpolated values; Resume continues from the same point.
func (tl *AnimatedTimeline) Stop() {
	tl.mu.Lock()
	tl.playing = false
	tl.mu.Unlock()
}

// Resume continues playback from the current elapsed time.
func (tl *AnimatedTimeline) Resume() {
	tl.mu.Lock()
	if tl.playing || len(tl.entries) == 0 {
		tl.mu.Unlock()
		return
	}
	tl.playing = true
	sched := tl.sched
	tl.mu.Unlock()
	if sched != nil {
		sched.activate()
	}
}

// IsPlaying reports whether the timeline clock is advancing.
func (tl *AnimatedTimeline) IsPlaying() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.playing
}

// ElapsedMs returns whole milliseconds elapsed since Start.
func (tl *AnimatedTimeline) ElapsedMs() uint64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return uint64(tl.elapsedMs)
}

// HasEntries reports whether any entries have been added. A freshly created
// timeline has none; callers use this to configure a keyed timeline exactly
// once across rebuilds.
func (tl *AnimatedTimeline) HasEntries() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return len(tl.entries) > 0
}

// EntryIDs returns the ids of all entries in insertion order. The slice is
// recomputed on each call and owned by the caller.
func (tl *AnimatedTimeline) EntryIDs() []uint64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	ids := make([]uint64, len(tl.entries))
	for i, e := range tl.entries {
		ids[i] = e.ID
	}
	return ids
}

// Progress returns the entry's progress in [0, 1]: 0 before its window, 1
// after it. Unknown ids report 0.
func (tl *AnimatedTimeline) Progress(id uint64) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	e, ok := tl.entryLocked(id)
	if !ok {
		return 0
	}
	return tl.progressLocked(e)
}

// ValueAt returns the entry's interpolated value at the current elapsed time:
// From before the entry's window, To after it, and
// from + (to-from)*easing(progress) inside it. Unknown ids report 0.
func (tl *AnimatedTimeline) ValueAt(id uint64) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	e, ok := tl.entryLocked(id)
	if !ok {
		return 0
	}
	p := tl.progressLocked(e)
	easing := e.Easing
	if easing == nil {
		easing = Linear
	}
	return e.From + (e.To-e.From)*easing(p)
}

func (tl *AnimatedTimeline) entryLocked(id uint64) (KeyframeEntry, bool) {
	for _, e := range tl.entries {
		if e.ID == id {
			return e, true
		}
	}
	return KeyframeEntry{}, false
}

func (tl *AnimatedTimeline) progressLocked(e KeyframeEntry) float64 {
	start := float64(e.StartMs)
	if tl.elapsedMs < start {
		return 0
	}
	if e.DurationMs == 0 {
		return 1
	}
	p := (tl.elapsedMs - start) / float64(e.DurationMs)
	return clampUnit(p)
}

// advance moves the timeline clock forward by dtMs milliseconds while playing
// and reports whether the timeline is settled: stopped, or past the latest
// entry's end. Invoked only by the scheduler's tick loop (or tests).
func (tl *AnimatedTimeline) advance(dtMs float64) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.playing && dtMs > 0 {
		tl.elapsedMs += dtMs
	}
	return tl.settledLocked()
}

func (tl *AnimatedTimeline) settledLocked() bool {
	if !tl.playing {
		return true
	}
	var latest uint64
	for _, e := range tl.entries {
		if end := e.endMs(); end > latest {
			latest = end
		}
	}
	return tl.elapsedMs >= float64(latest)
}

// isSettled reports whether the timeline contributes no pending motion.
func (tl *AnimatedTimeline) isSettled() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.settledLocked()
}
