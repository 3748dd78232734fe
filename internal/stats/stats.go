// Package stats keeps a rolling window of post render events: how often a
// page came from the cache, which locales were served, and how long full and
// paywalled renders took.
package stats

import (
	"slices"
	"sync"
	"time"
)

// DefaultWindow is how far back a Renders tracker looks when none is given.
const DefaultWindow = time.Hour

// Event describes one served page. Duration is ignored for cache hits.
type Event struct {
	Locale   string
	Gated    bool
	Cached   bool
	Duration time.Duration
}

// Timing aggregates render durations in milliseconds.
type Timing struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	MaxMs float64 `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Snapshot summarizes the events inside the window.
type Snapshot struct {
	Window    string         `json:"window"`
	Served    int            `json:"served"`
	CacheHits int            `json:"cache_hits"`
	HitRatio  float64        `json:"hit_ratio"`
	Full      Timing         `json:"full"`
	Gated     Timing         `json:"gated"`
	Locales   map[string]int `json:"locales"`
}

type stamped struct {
	at time.Time
	Event
}

// Renders records page events. It is safe for concurrent use.
type Renders struct {
	mu     sync.Mutex
	events []stamped
	window time.Duration
	now    func() time.Time
}

func NewRenders(window time.Duration) *Renders {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Renders{window: window, now: time.Now}
}

func (r *Renders) Record(e Event) {
	if e.Cached || e.Duration < 0 {
		e.Duration = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.pruneLocked(now)
	r.events = append(r.events, stamped{at: now, Event: e})
}

func (r *Renders) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked(r.now())

	snap := Snapshot{
		Window:  r.window.String(),
		Served:  len(r.events),
		Locales: map[string]int{},
	}
	var full, gated []float64
	for _, e := range r.events {
		if e.Locale != "" {
			snap.Locales[e.Locale]++
		}
		switch {
		case e.Cached:
			snap.CacheHits++
		case e.Gated:
			gated = append(gated, ms(e.Duration))
		default:
			full = append(full, ms(e.Duration))
		}
	}
	if snap.Served > 0 {
		snap.HitRatio = float64(snap.CacheHits) / float64(snap.Served)
	}
	snap.Full = timing(full)
	snap.Gated = timing(gated)
	return snap
}

// pruneLocked drops events older than the window. Events are appended in
// time order, so the expired ones form a prefix.
func (r *Renders) pruneLocked(now time.Time) {
	cutoff := now.Add(-r.window)
	i := 0
	for i < len(r.events) && r.events[i].at.Before(cutoff) {
		i++
	}
	r.events = slices.Delete(r.events, 0, i)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func timing(values []float64) Timing {
	if len(values) == 0 {
		return Timing{}
	}
	slices.Sort(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Timing{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: sum / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

// percentile interpolates linearly between the two nearest ranks of a
// sorted, non-empty slice.
func percentile(sorted []float64, pct float64) float64 {
	pos := float64(len(sorted)-1) * pct / 100
	lower := int(pos)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*(pos-float64(lower))
}
