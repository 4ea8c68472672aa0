// Package gesture turns per-frame finger counts into debounced,
// cooldown-gated trigger events.
package gesture

// StabilityTracker debounces a stream of per-tick finger counts. A count is
// considered stable once it has been observed unchanged for a configured
// number of consecutive ticks.
//
// The tracker is not safe for concurrent use; it is owned by the single
// tick loop that feeds it.
type StabilityTracker struct {
	threshold int
	lastCount int
	hasCount  bool
	run       int
}

// NewStabilityTracker creates a tracker requiring threshold consecutive
// observations of the same count. Thresholds below 1 are clamped to 1.
func NewStabilityTracker(threshold int) *StabilityTracker {
	if threshold < 1 {
		threshold = 1
	}
	return &StabilityTracker{threshold: threshold}
}

// Observe advances the tracker with the count seen this tick and reports
// whether that count is now stable. The first tick of a new count always
// has a run of 1, so a single observation is only stable when the
// threshold is 1.
func (t *StabilityTracker) Observe(count int) bool {
	if t.hasCount && count == t.lastCount {
		t.run++
	} else {
		t.lastCount = count
		t.hasCount = true
		t.run = 1
	}
	return t.run >= t.threshold
}

// Reset clears the tracker for a tick with no hand in frame.
func (t *StabilityTracker) Reset() {
	t.hasCount = false
	t.run = 0
}

// Count returns the most recently observed count and whether one exists.
func (t *StabilityTracker) Count() (int, bool) {
	return t.lastCount, t.hasCount
}

// Run returns the length of the current unchanged-count streak.
func (t *StabilityTracker) Run() int {
	return t.run
}
