package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// stubGame serves a fixed level without touching config files.
type stubGame struct {
	cfg engine.FreeFallConfig
}

func (g stubGame) ID() string       { return "stub" }
func (g stubGame) Title() string    { return "Stub" }
func (g stubGame) Controls() string { return "arrows" }

func (g stubGame) NewMode(core.RuntimeConfig) (engine.Mode, error) {
	return engine.NewFreeFall(g.cfg), nil
}

func level(platforms ...core.Rect) engine.FreeFallConfig {
	return engine.FreeFallConfig{
		Bounds:           core.NewRect(0, 0, 600, 400),
		Gravity:          0.6,
		JumpStrength:     -12,
		MoveSpeed:        5,
		LandingTolerance: 10,
		Player:           engine.Template{Kind: "player", Box: core.NewRect(50, 320, 30, 30)},
		Platforms:        platforms,
	}
}

var ground = core.NewRect(0, 350, 600, 50)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 10, Seed: 1}
}

func newTestModel(t *testing.T, g stubGame, store *storage.Store) Model {
	t.Helper()
	m, err := NewModel(g, store, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func pressKey(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runUntilHalt feeds tick messages until the model stops rescheduling.
func runUntilHalt(t *testing.T, m Model, limit int) Model {
	t.Helper()
	for i := 0; i < limit; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg{})
		if cmd == nil {
			return m
		}
	}
	t.Fatalf("model still ticking after %d ticks", limit)
	return m
}
