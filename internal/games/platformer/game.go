// Package platformer implements a single-screen platformer: jump between
// ledges, collect apples and avoid patrolling snakes.
package platformer

import (
	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Entity kinds used by the renderer.
const (
	KindPlayer = "raccoon"
	KindApple  = "apple"
	KindSnake  = "snake"
)

// Game is the platformer.
type Game struct{}

// New creates a new platformer.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("platformer", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "platformer" }

// Title returns the display name.
func (g *Game) Title() string { return "Neoguri" }

// Controls returns the key summary.
func (g *Game) Controls() string { return "←/→ move • space/↑ jump" }

// NewMode loads the level and builds a free-fall mode for it.
func (g *Game) NewMode(rc core.RuntimeConfig) (engine.Mode, error) {
	preset, err := config.ParsePreset(rc.Difficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadPlatformer(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.ApplyPlatformerPreset(&cfg, preset)
	return engine.NewFreeFall(ModeConfig(cfg)), nil
}

// ModeConfig converts a platformer configuration into engine terms.
func ModeConfig(cfg config.PlatformerConfig) engine.FreeFallConfig {
	mc := engine.FreeFallConfig{
		Bounds:            core.NewRect(0, 0, cfg.World.Width, cfg.World.Height),
		Gravity:           cfg.Physics.Gravity,
		JumpStrength:      cfg.Physics.JumpStrength,
		MoveSpeed:         cfg.Physics.MoveSpeed,
		LandingTolerance:  cfg.Physics.LandingTolerance,
		LandingInset:      cfg.Physics.LandingInset,
		PatrolMargin:      cfg.Enemies.PatrolMargin,
		RespawnDelayTicks: cfg.Items.RespawnDelayTicks,
		Player: engine.Template{
			Kind:  KindPlayer,
			Box:   rect(cfg.Player),
			Color: core.ColorBrightYellow,
		},
	}

	for _, p := range cfg.Platforms {
		mc.Platforms = append(mc.Platforms, rect(p))
	}
	for _, it := range cfg.Items.Positions {
		mc.Items = append(mc.Items, engine.Template{
			Kind:   KindApple,
			Box:    core.NewRect(it.X, it.Y, cfg.Items.Size, cfg.Items.Size),
			Points: cfg.Items.Points,
			Color:  core.ColorRed,
		})
	}
	for _, e := range cfg.Enemies.List {
		mc.Hazards = append(mc.Hazards, engine.Template{
			Kind:  KindSnake,
			Box:   rect(e.Box),
			Speed: e.Speed,
			Dir:   e.Dir,
			Color: core.ColorGreen,
		})
	}
	return mc
}

func rect(b config.Box) core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}
