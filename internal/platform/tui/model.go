package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// TickMsg asks the model to run one simulation tick.
type TickMsg time.Time

// tickCmd schedules the next TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model that hosts one game. It owns the tick
// schedule and translates key presses into engine actions; everything
// else lives in the engine controller.
type Model struct {
	game   registry.Game
	ctrl   *engine.Controller
	canvas *Canvas
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	keys   *KeyMapper
	hold   *HoldTracker

	interval   time.Duration
	randomSeed bool // draw a fresh seed for every run
	started    time.Time
	high       int
	paused     bool
	quitting   bool
	backToMenu bool
	quitOnBack bool // standalone programs exit so the caller can show the menu
	recorded   bool // Whether the current run has been saved
}

// NewModel creates a new Bubble Tea model for the given game and starts its
// first run. A nil logger discards output.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg = cfg.WithDefaults()

	mode, err := game.NewMode(cfg)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %s: %w", game.ID(), err)
	}

	m := Model{
		game:       game,
		canvas:     NewCanvas(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		hold:       NewHoldTracker(uint64(cfg.TickRate / 2)),
		interval:   time.Second / time.Duration(cfg.TickRate),
		randomSeed: cfg.Seed == 0,
	}
	m.ctrl = engine.New(mode,
		engine.WithRenderer(m.canvas),
		engine.WithLogger(logger.With("game", game.ID())),
	)
	if store != nil {
		if high, err := store.HighScore(game.ID()); err == nil {
			m.high = high
		}
	}
	m.startRun()
	return m, nil
}

func (m *Model) startRun() {
	if m.randomSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.ctrl.SetSeed(m.config.Seed)
	m.ctrl.Start()
	m.hold.Reset()
	m.paused = false
	m.recorded = false
	m.started = time.Now()
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.ctrl.Stop()
		m.record()
		m.quitting = true
		return m, tea.Quit
	}

	running := m.ctrl.CurrentState() == engine.Running
	switch {
	case action == core.ActionRestart && !running:
		m.startRun()
		return m, tickCmd(m.interval)

	case action == core.ActionPause && running:
		m.paused = !m.paused
		return m, nil

	case action == core.ActionBack && (!running || m.paused):
		m.ctrl.Stop()
		m.record()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case action.IsGameplay() && running && !m.paused:
		m.hold.Press(action, m.ctrl.Ticks()+1)
		m.ctrl.Input(action)
	}

	return m, nil
}

// handleTick advances the simulation by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.ctrl.CurrentState() != engine.Running {
		return m, nil // halted; restart reschedules
	}
	if m.paused {
		return m, tickCmd(m.interval)
	}

	next := m.ctrl.Ticks() + 1
	for _, stop := range m.hold.Expire(next) {
		m.ctrl.Input(stop)
	}

	if m.ctrl.Tick() == engine.Halt {
		m.record()
		return m, nil
	}
	return m, tickCmd(m.interval)
}

// record saves the finished run once. Storage errors are logged and the
// game continues regardless.
func (m *Model) record() {
	if m.recorded || m.ctrl.CurrentState() != engine.Over {
		return
	}
	m.recorded = true

	score := m.ctrl.CurrentScore()
	if err := m.ctrl.Err(); err != nil {
		m.logger.Error("run failed", "run_id", m.ctrl.RunID(), "err", err)
	}
	m.high = max(m.high, score)
	if m.store == nil {
		return
	}

	err := m.store.RecordRun(storage.RunRecord{
		RunID:     m.ctrl.RunID(),
		GameID:    m.game.ID(),
		Score:     score,
		Ticks:     m.ctrl.Ticks(),
		EndReason: string(m.ctrl.EndReason()),
		Seed:      m.ctrl.Seed(),
		Duration:  time.Since(m.started),
	})
	if err != nil {
		m.logger.Warn("cannot record run", "run_id", m.ctrl.RunID(), "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.canvas.Draw(m.screen, m.hud())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

func (m Model) hud() HUD {
	return HUD{
		Title:    m.game.Title(),
		Controls: m.game.Controls(),
		Keys:     m.keys.Help(),
		High:     m.high,
		Paused:   m.paused,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.canvas.Draw(m.screen, m.hud())
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Controller exposes the engine controller, mainly for tests.
func (m Model) Controller() *engine.Controller {
	return m.ctrl
}

// Run starts the Bubble Tea program for the given game.
// It reports whether the player left through "back to menu".
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model, err := NewModel(game, store, cfg, logger)
	if err != nil {
		return false, err
	}
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
