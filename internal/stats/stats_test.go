package stats

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixedClock(r *Renders) *time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return &now
}

func TestRendersTimingPercentiles(t *testing.T) {
	r := NewRenders(time.Hour)
	fixedClock(r)
	for _, ms := range []int{300, 100, 500, 200, 400} {
		r.Record(Event{Locale: "en", Duration: time.Duration(ms) * time.Millisecond})
	}

	want := Timing{Count: 5, MinMs: 100, MaxMs: 500, AvgMs: 300, P50Ms: 300, P95Ms: 480, P99Ms: 496}
	if diff := cmp.Diff(want, r.Snapshot().Full); diff != "" {
		t.Errorf("full timing mismatch (-want +got):\n%s", diff)
	}
}

func TestRendersSplitsGatedFullAndCached(t *testing.T) {
	r := NewRenders(time.Hour)
	fixedClock(r)
	r.Record(Event{Locale: "en", Duration: 2 * time.Millisecond})
	r.Record(Event{Locale: "zh", Gated: true, Duration: 500 * time.Microsecond})
	r.Record(Event{Locale: "zh", Gated: true, Cached: true, Duration: time.Second})
	r.Record(Event{Locale: "zh", Cached: true})

	snap := r.Snapshot()
	if snap.Served != 4 || snap.CacheHits != 2 || snap.HitRatio != 0.5 {
		t.Errorf("unexpected totals %+v", snap)
	}
	if snap.Full.Count != 1 || snap.Full.MaxMs != 2 {
		t.Errorf("unexpected full timing %+v", snap.Full)
	}
	if snap.Gated.Count != 1 || snap.Gated.MaxMs != 0.5 {
		t.Errorf("expected sub-millisecond gated render, got %+v", snap.Gated)
	}
	if diff := cmp.Diff(map[string]int{"en": 1, "zh": 3}, snap.Locales); diff != "" {
		t.Errorf("locale counts mismatch (-want +got):\n%s", diff)
	}
}

func TestRendersPrunesOutsideWindow(t *testing.T) {
	r := NewRenders(time.Minute)
	now := fixedClock(r)
	r.Record(Event{Duration: 100 * time.Millisecond})
	*now = now.Add(2 * time.Minute)

	if snap := r.Snapshot(); snap.Served != 0 || snap.Full.Count != 0 {
		t.Fatalf("expected empty window, got %+v", snap)
	}

	r.Record(Event{Duration: 200 * time.Millisecond})
	if snap := r.Snapshot(); snap.Served != 1 || snap.Full.MinMs != 200 {
		t.Fatalf("expected single fresh event, got %+v", snap)
	}
}

func TestRendersClampsNegativeDuration(t *testing.T) {
	r := NewRenders(time.Hour)
	r.Record(Event{Duration: -time.Second})
	if snap := r.Snapshot(); snap.Full.Count != 1 || snap.Full.MinMs != 0 {
		t.Fatalf("expected clamped duration, got %+v", snap.Full)
	}
}

func TestRendersEmptySnapshot(t *testing.T) {
	snap := NewRenders(0).Snapshot()
	want := Snapshot{Window: DefaultWindow.String(), Locales: map[string]int{}}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("empty snapshot mismatch (-want +got):\n%s", diff)
	}
}
