package tui

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
)

func TestHoldTrackerReleasesAfterWindow(t *testing.T) {
	h := NewHoldTracker(3)

	if !h.Press(core.ActionRightStart, 1) {
		t.Fatalf("first press should start a hold")
	}
	if h.Press(core.ActionRightStart, 2) {
		t.Errorf("repeat press should not start a new hold")
	}

	for tick := uint64(3); tick <= 5; tick++ {
		if got := h.Expire(tick); len(got) != 0 {
			t.Fatalf("Expire(%d) = %v, expected nothing inside the window", tick, got)
		}
	}
	if got := h.Expire(6); !reflect.DeepEqual(got, []core.Action{core.ActionRightStop}) {
		t.Errorf("Expire(6) = %v, expected [right-stop]", got)
	}
	if got := h.Expire(20); len(got) != 0 {
		t.Errorf("released direction expired twice: %v", got)
	}
}

func TestHoldTrackerOppositeDirection(t *testing.T) {
	h := NewHoldTracker(2)
	h.Press(core.ActionLeftStart, 1)
	if !h.Press(core.ActionRightStart, 2) {
		t.Fatalf("switching direction should start a hold")
	}

	// Left was replaced, so only right ever stops.
	if got := h.Expire(10); !reflect.DeepEqual(got, []core.Action{core.ActionRightStop}) {
		t.Errorf("Expire() = %v, expected [right-stop]", got)
	}
}

func TestHoldTrackerIgnoresOtherActions(t *testing.T) {
	h := NewHoldTracker(0)
	if !h.Press(core.ActionJump, 1) {
		t.Errorf("non-directional presses always count as fresh")
	}
	if got := h.Expire(100); len(got) != 0 {
		t.Errorf("Expire() = %v after a jump", got)
	}

	h.Press(core.ActionLeftStart, 5)
	h.Reset()
	if got := h.Expire(100); len(got) != 0 {
		t.Errorf("Reset should drop held directions, got %v", got)
	}
}
