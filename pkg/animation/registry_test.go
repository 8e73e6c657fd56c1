package animation_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-motion/motion/pkg/animation"
	"github.com/go-motion/motion/pkg/errors"
)

func TestValueForCreatesOnce(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	a, err := h.ValueFor("k", 1.0, animation.SpringSnappy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := h.ValueFor("k", 1.0, animation.SpringSnappy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("same key should return the same underlying value")
	}
}

func TestFirstRegistrationWins(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	a, _ := h.ValueFor("k", 1.0, animation.SpringSnappy())

	// Re-registering with a different initial value and config is a no-op:
	// rebuilds present the same key every frame, and honoring the new initial
	// would rubber-band the spring back to its start each time.
	b, err := h.ValueFor("k", 99.0, animation.SpringSlow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != a {
		t.Fatal("re-registration should return the existing entry")
	}
	if got := b.Get(); got != 1.0 {
		t.Errorf("existing entry's value changed to %v", got)
	}
	if got := b.Config(); got != animation.SpringSnappy() {
		t.Errorf("existing entry's config changed to %+v", got)
	}
}

func TestValueForValidatesConfigOnCreate(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	_, err := h.ValueFor("bad", 0, animation.SpringConfig{Stiffness: -1, Damping: 1, Mass: 1})
	if err == nil {
		t.Fatal("expected a config error")
	}
	if !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", err)
	}

	// The failed registration must not have claimed the key.
	if _, err := h.ValueFor("bad", 0, animation.SpringSnappy()); err != nil {
		t.Errorf("key should be free after a rejected config: %v", err)
	}
}

func TestKeyKindMismatch(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	if _, err := h.ValueFor("k", 0, animation.SpringSnappy()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := h.TimelineFor("k")
	if err == nil {
		t.Fatal("requesting a timeline under a value's key must fail fast")
	}
	if !errors.IsKind(err, errors.KindKey) {
		t.Errorf("expected KindKey, got %v", err)
	}

	if _, err := h.TimelineFor("t"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.ValueFor("t", 0, animation.SpringSnappy()); err == nil {
		t.Fatal("requesting a value under a timeline's key must fail fast")
	}
}

func TestTimelineForCreatesEmpty(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	tl, err := h.TimelineFor("spinner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tl.HasEntries() {
		t.Error("first creation should return an empty timeline")
	}

	tl.Add(0, 2000, 0, 1)
	again, _ := h.TimelineFor("spinner")
	if !again.HasEntries() {
		t.Error("re-lookup should see the configured timeline")
	}
}

func TestRemoveEvictsKey(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	a, _ := h.ValueFor("k", 5, animation.SpringSnappy())
	h.Remove("k")
	b, _ := h.ValueFor("k", 7, animation.SpringSnappy())
	if a == b {
		t.Error("Remove should evict, so re-registration creates a fresh entry")
	}
	if got := b.Get(); got != 7 {
		t.Errorf("fresh entry should start at the new initial, got %v", got)
	}
}

func TestConcurrentRegistrationOneWinner(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	const goroutines = 32
	results := make([]*animation.AnimatedValue, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := h.ValueFor("shared", float64(i), animation.SpringSnappy())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = v
		}()
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("all racers must observe the same entry")
		}
	}
}

func TestDistinctKeysDistinctEntries(t *testing.T) {
	sched := animation.NewScheduler()
	defer sched.Close()
	h := sched.Handle()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("item_%d", i)
		v, err := h.ValueFor(key, float64(i), animation.SpringSnappy())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := v.Get(); got != float64(i) {
			t.Errorf("key %s starts at %v, want %v", key, got, float64(i))
		}
	}
}
