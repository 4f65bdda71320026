package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// difficulties is the cycle order of the menu's difficulty selector.
// The empty preset keeps whatever the config file says.
var difficulties = []config.DifficultyPreset{
	"",
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const menuHelp = "↑/↓ game · ←/→ difficulty · enter play · tab scores · q quit"

// menuEntry is one game row in the picker.
type menuEntry struct {
	info  registry.GameInfo
	best  int
	plays int
}

// menuExit records how the menu was left.
type menuExit int

const (
	exitNone menuExit = iota
	exitQuit
	exitGame
	exitScoreboard
)

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	entries    []menuEntry
	cursor     int
	difficulty int // index into difficulties
	config     core.RuntimeConfig
	keys       *KeyMapper
	exit       menuExit
}

// NewMenuModel lists every registered game with its best score from store,
// which may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	m := MenuModel{config: cfg, keys: NewKeyMapper()}
	for _, g := range registry.List() {
		e := menuEntry{info: g}
		if s, ok := stats[g.ID]; ok {
			e.best, e.plays = s.HighScore, s.GamesCount
		}
		m.entries = append(m.entries, e)
	}
	for i, d := range difficulties {
		if string(d) == cfg.Difficulty {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey moves the cursor and difficulty, or leaves the menu with
// tea.Quit once a choice is made.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.exit = exitQuit
	case MenuActionScoreboard:
		m.exit = exitScoreboard
	case MenuActionSelect:
		if len(m.entries) == 0 {
			return m, nil
		}
		m.exit = exitGame
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = max(min(m.cursor+1, len(m.entries)-1), 0)
	case MenuActionDifficulty:
		step := 1
		if k := msg.String(); k == "left" || k == "a" || k == "h" {
			step = len(difficulties) - 1
		}
		m.difficulty = (m.difficulty + step) % len(difficulties)
		m.config.Difficulty = string(difficulties[m.difficulty])
	}

	if m.exit != exitNone {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.exit == exitQuit {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("  G A M E R O O M  ", width)),
		"",
		centerText("Select a game", width),
		"",
	}
	for i, e := range m.entries {
		best := "-"
		if e.plays > 0 {
			best = humanize.Comma(int64(e.best))
		}
		row := "  " + padRight(e.info.Title, 14) + "best " + padRight(best, 8)
		if i == m.cursor {
			row = "> " + row[2:]
			lines = append(lines, menuCursorStyle.Render(centerText(row, width)))
			continue
		}
		lines = append(lines, centerText(row, width))
	}

	if len(m.entries) > 0 {
		lines = append(lines, "", menuDimStyle.Render(centerText(m.entries[m.cursor].info.Controls, width)))
	}
	lines = append(lines,
		"",
		centerText("Difficulty: < "+difficultyLabel(difficulties[m.difficulty])+" >", width),
		"",
		menuDimStyle.Render(centerText(menuHelp, width)),
	)
	return strings.Join(lines, "\n") + "\n"
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func difficultyLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "default"
	}
	return string(p)
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.exit == exitQuit
}

// Config returns the current runtime config (may have been updated by resize
// or the difficulty selector).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText left-pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes how the menu was left. A menu that is still open
// reports Quit.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}
	switch m.exit {
	case exitScoreboard:
		result.WantsScoreboard = true
	case exitGame:
		result.GameID = m.entries[m.cursor].info.ID
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
