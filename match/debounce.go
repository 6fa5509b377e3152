package match

import "time"

// DefaultDebounceInterval is the quiet period before typed input
// triggers a filter or search run.
const DefaultDebounceInterval = 300 * time.Millisecond

// Debounce coalesces rapid input changes into a single execution using
// a generation counter. Each input arms a new generation; a timer fire
// that carries a stale generation is dropped, so at most one execution
// happens per quiet period and it always sees the latest query.
type Debounce struct {
	interval time.Duration
	gen      int
}

// NewDebounce creates a debouncer. A zero or negative interval falls
// back to the default.
func NewDebounce(interval time.Duration) *Debounce {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debounce{interval: interval}
}

// Interval returns the quiet period to schedule the timer with.
func (d *Debounce) Interval() time.Duration {
	return d.interval
}

// Arm registers an input change and returns the generation to attach to
// the delayed fire. Any previously armed generation becomes stale.
func (d *Debounce) Arm() int {
	d.gen++
	return d.gen
}

// Bypass invalidates any pending fire so an immediate execution (an
// explicit commit key) is not followed by a stale delayed one.
func (d *Debounce) Bypass() {
	d.gen++
}

// Latest reports whether gen is still the most recently armed
// generation.
func (d *Debounce) Latest(gen int) bool {
	return gen == d.gen
}
