// Package snake implements the classic grid snake: steer the chain into
// food to grow, avoid the walls and your own tail.
package snake

import (
	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Entity kinds used by the renderer.
const (
	KindSnake = "snake"
	KindFood  = "food"
)

// Game is the snake game.
type Game struct{}

// New creates a new snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Controls returns the key summary.
func (g *Game) Controls() string { return "arrows/wasd steer" }

// NewMode loads the board configuration and builds a grid mode for it.
func (g *Game) NewMode(rc core.RuntimeConfig) (engine.Mode, error) {
	preset, err := config.ParsePreset(rc.Difficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadSnake(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.ApplySnakePreset(&cfg, preset)
	return engine.NewGrid(ModeConfig(cfg)), nil
}

// ModeConfig converts a snake configuration into engine terms.
func ModeConfig(cfg config.SnakeConfig) engine.GridConfig {
	gc := engine.GridConfig{
		Cols:           cfg.Grid.Cols,
		Rows:           cfg.Grid.Rows,
		CellSize:       cfg.Grid.CellSize,
		Dir:            point(cfg.Start.Dir),
		MoveEveryTicks: cfg.Speed.MoveEveryTicks,
		FoodPoints:     cfg.Food.Points,
		PlayerKind:     KindSnake,
		PlayerColor:    core.ColorGreen,
		FoodKind:       KindFood,
		FoodColor:      core.ColorRed,
	}
	for _, c := range cfg.Start.Body {
		gc.Start = append(gc.Start, point(c))
	}
	if cfg.Food.First != nil {
		first := point(*cfg.Food.First)
		gc.FirstFood = &first
	}
	return gc
}

func point(c config.Cell) core.Point {
	return core.Point{X: c.X, Y: c.Y}
}
