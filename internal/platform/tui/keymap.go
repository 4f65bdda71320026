package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/core"
)

// actionBinding ties a key binding to the action it produces.
type actionBinding struct {
	action  core.Action
	binding key.Binding
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Terminals only report presses, so horizontal keys map to the *Start
// actions; HoldTracker synthesizes the matching *Stop.
type KeyMapper struct {
	quit key.Binding
	game []actionBinding
	menu []menuBinding
}

type menuBinding struct {
	action  MenuAction
	binding key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	bind := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return &KeyMapper{
		quit: bind("q", "quit", "ctrl+c", "q"),
		game: []actionBinding{
			{core.ActionLeftStart, bind("←/a", "left", "a", "left", "h")},
			{core.ActionRightStart, bind("→/d", "right", "d", "right", "l")},
			{core.ActionUp, bind("↑/w", "up", "w", "up", "k")},
			{core.ActionDown, bind("↓/s", "down", "s", "down", "j")},
			{core.ActionJump, bind("space", "jump", " ")},
			{core.ActionConfirm, bind("enter", "confirm", "enter")},
			{core.ActionBack, bind("esc/b", "menu", "b", "esc")},
			{core.ActionPause, bind("p", "pause", "p")},
			{core.ActionRestart, bind("r", "restart", "r")},
		},
		menu: []menuBinding{
			{MenuActionUp, bind("↑/k", "up", "w", "up", "k")},
			{MenuActionDown, bind("↓/j", "down", "s", "down", "j")},
			{MenuActionSelect, bind("enter", "play", "enter", " ")},
			{MenuActionBack, bind("esc", "quit", "b", "esc")},
			{MenuActionScoreboard, bind("tab", "scores", "tab")},
			{MenuActionDifficulty, bind("←/→", "difficulty", "left", "right", "a", "d", "h", "l")},
		},
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// Help returns a one-line summary of the in-game bindings.
func (km *KeyMapper) Help() string {
	parts := make([]string, 0, len(km.game)+1)
	for _, b := range km.game {
		if b.action == core.ActionConfirm {
			continue
		}
		h := b.binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	h := km.quit.Help()
	parts = append(parts, h.Key+" "+h.Desc)
	return strings.Join(parts, " · ")
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionDifficulty
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if key.Matches(msg, km.quit) {
		return MenuActionQuit
	}
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
