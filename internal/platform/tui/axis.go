package tui

import "github.com/vovakirdan/penguin-march/internal/core"

// Terminals report key presses but never releases, and a held key repeats
// only after the keyboard's initial delay. The axis therefore stays held
// for a while after each press: long after the first press to bridge the
// repeat delay, short after repeats so letting go stops quickly.
const (
	firstPressTicks = 32
	repeatTicks     = 8
)

// heldAxis synthesizes a held horizontal axis from discrete presses.
type heldAxis struct {
	dir  float64
	left int
}

// press registers a Left or Right press.
func (h *heldAxis) press(a core.Action) {
	var dir float64
	switch a {
	case core.ActionLeft:
		dir = -1
	case core.ActionRight:
		dir = 1
	default:
		return
	}
	if dir == h.dir && h.left > 0 {
		h.left = max(h.left, repeatTicks)
		return
	}
	h.dir, h.left = dir, firstPressTicks
}

// value returns the axis for the current tick.
func (h *heldAxis) value() float64 {
	if h.left <= 0 {
		return 0
	}
	return h.dir
}

// tick ages the hold by one simulation tick.
func (h *heldAxis) tick() {
	if h.left > 0 {
		h.left--
	}
	if h.left == 0 {
		h.dir = 0
	}
}

func (h *heldAxis) release() { *h = heldAxis{} }
