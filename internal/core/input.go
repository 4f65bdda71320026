package core

import (
	"fmt"
	"strings"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows modes to work with high-level intents rather than raw input.
// Horizontal movement comes as start/stop pairs so a held key can be modeled
// on terminals that never report key release.
type Action int

const (
	ActionNone       Action = iota
	ActionLeftStart         // A, Left arrow pressed
	ActionLeftStop          // Left released (synthesized by the platform)
	ActionRightStart        // D, Right arrow pressed
	ActionRightStop         // Right released (synthesized by the platform)
	ActionJump              // Space - primary action (jump)
	ActionUp                // W, Up arrow - move up (grid), jump (platformer)
	ActionDown              // S, Down arrow - move down (grid)
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - restart game after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionLeftStart:  "left-start",
	ActionLeftStop:   "left-stop",
	ActionRightStart: "right-start",
	ActionRightStop:  "right-stop",
	ActionJump:       "jump",
	ActionUp:         "up",
	ActionDown:       "down",
	ActionConfirm:    "confirm",
	ActionBack:       "back",
	ActionRestart:    "restart",
	ActionQuit:       "quit",
	ActionPause:      "pause",
}

// String returns the canonical name for the action, e.g. "left-start".
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsGameplay reports whether the action is consumed by a game mode rather
// than by the hosting platform.
func (a Action) IsGameplay() bool {
	return a >= ActionLeftStart && a <= ActionDown
}

// ParseAction converts a canonical action name back into an Action.
// "left" and "right" are accepted as aliases for the start variants.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "left":
		return ActionLeftStart, nil
	case "right":
		return ActionRightStart, nil
	}
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}
