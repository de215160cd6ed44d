// Package timer provides the tick-driven countdown primitives used by the
// simulation: cooldown timers gathered in a Bank, one-shot Deferred actions
// and fixed-count Sequences. Nothing here blocks; callers advance every
// primitive by the frame delta once per tick.
package timer

import "github.com/vovakirdan/penguin-march/internal/core"

// epsilon absorbs float accumulation error so 60 Hz steps reach exact
// thresholds such as 0.25 on the expected tick.
const epsilon = 1e-9

// Timer accumulates elapsed time and reports readiness once the threshold
// is reached.
type Timer struct {
	elapsed   float64
	threshold float64
}

// New creates a timer that starts at zero elapsed time.
func New(threshold float64) *Timer {
	return &Timer{threshold: threshold}
}

// NewReady creates a timer that can be consumed immediately.
func NewReady(threshold float64) *Timer {
	t := New(threshold)
	t.Prime()
	return t
}

// Advance adds dt to the elapsed time. Negative deltas are clamped to zero.
func (t *Timer) Advance(dt float64) {
	t.elapsed += core.NonNegative(dt)
}

// Ready reports whether elapsed >= threshold.
func (t *Timer) Ready() bool {
	return t.elapsed+epsilon >= t.threshold
}

// Consume resets the timer and returns true when it is ready; otherwise it
// returns false and leaves the timer untouched.
func (t *Timer) Consume() bool {
	if !t.Ready() {
		return false
	}
	t.elapsed = 0
	return true
}

// Reset sets elapsed back to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
}

// Prime makes the timer ready without waiting.
func (t *Timer) Prime() {
	if t.elapsed < t.threshold {
		t.elapsed = t.threshold
	}
}

// Elapsed returns the accumulated time since the last reset.
func (t *Timer) Elapsed() float64 { return t.elapsed }
