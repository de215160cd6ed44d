package timer

import "github.com/vovakirdan/penguin-march/internal/core"

// Deferred is a one-shot delayed action. Once armed it fires exactly once;
// arming again while armed or after firing is ignored until Reset.
type Deferred struct {
	delay   float64
	elapsed float64
	armed   bool
	fired   bool
}

// NewDeferred creates an unarmed deferred action.
func NewDeferred(delay float64) *Deferred {
	return &Deferred{delay: delay}
}

// Arm starts the countdown. It returns false when the action was already
// armed or has already fired.
func (d *Deferred) Arm() bool {
	if d.armed || d.fired {
		return false
	}
	d.armed = true
	d.elapsed = 0
	return true
}

// Advance moves the countdown forward and returns true on the single tick
// the action fires.
func (d *Deferred) Advance(dt float64) bool {
	if !d.armed || d.fired {
		return false
	}
	d.elapsed += core.NonNegative(dt)
	if d.elapsed+epsilon < d.delay {
		return false
	}
	d.fired = true
	d.armed = false
	return true
}

// Pending reports whether the action is armed and has not fired yet.
func (d *Deferred) Pending() bool { return d.armed }

// Fired reports whether the action has fired.
func (d *Deferred) Fired() bool { return d.fired }

// Remaining returns the time left before firing, or 0 when not pending.
func (d *Deferred) Remaining() float64 {
	if !d.armed {
		return 0
	}
	if r := d.delay - d.elapsed; r > 0 {
		return r
	}
	return 0
}

// Reset disarms the action so it can be armed again.
func (d *Deferred) Reset() {
	*d = Deferred{delay: d.delay}
}
