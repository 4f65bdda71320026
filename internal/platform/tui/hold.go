package tui

import "github.com/vovakirdan/gameroom/internal/core"

// HoldTracker turns a stream of key presses into held directions.
// A terminal has no key-up event: holding a key produces auto-repeat
// presses, so a direction counts as released once no press has arrived
// for window ticks.
type HoldTracker struct {
	window uint64
	left   uint64 // tick of the last left press, 0 when released
	right  uint64
}

// NewHoldTracker creates a tracker that releases a direction after window
// ticks without a repeat. A window of 0 is treated as 1.
func NewHoldTracker(window uint64) *HoldTracker {
	return &HoldTracker{window: max(window, 1)}
}

// Press records a key press at tick and reports whether it starts a new
// hold. Repeats of a held direction return false. Pressing a direction
// releases the opposite one without a stop action; the new Start overrides it.
func (h *HoldTracker) Press(a core.Action, tick uint64) bool {
	tick = max(tick, 1)
	switch a {
	case core.ActionLeftStart:
		fresh := h.left == 0
		h.left, h.right = tick, 0
		return fresh
	case core.ActionRightStart:
		fresh := h.right == 0
		h.right, h.left = tick, 0
		return fresh
	}
	return true
}

// Expire returns the stop actions for directions whose last press is more
// than window ticks before tick.
func (h *HoldTracker) Expire(tick uint64) []core.Action {
	var out []core.Action
	if h.left != 0 && tick-h.left > h.window {
		h.left = 0
		out = append(out, core.ActionLeftStop)
	}
	if h.right != 0 && tick-h.right > h.window {
		h.right = 0
		out = append(out, core.ActionRightStop)
	}
	return out
}

// Reset releases both directions without emitting stops.
func (h *HoldTracker) Reset() {
	h.left, h.right = 0, 0
}
