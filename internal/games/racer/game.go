// Package racer implements a three-lane road racer: switch lanes to dodge
// oncoming traffic while the road keeps speeding up.
package racer

import (
	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Entity kinds used by the renderer.
const (
	KindPlayer  = "car"
	KindTraffic = "traffic"
)

// Game is the lane racer.
type Game struct{}

// New creates a new racer.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("racer", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "racer" }

// Title returns the display name.
func (g *Game) Title() string { return "Lane Racer" }

// Controls returns the key summary.
func (g *Game) Controls() string { return "←/→ change lane" }

// NewMode loads the road configuration and builds a lane mode for it.
func (g *Game) NewMode(rc core.RuntimeConfig) (engine.Mode, error) {
	preset, err := config.ParsePreset(rc.Difficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadRacer(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	config.ApplyRacerPreset(&cfg, preset)
	return engine.NewLane(ModeConfig(cfg)), nil
}

// ModeConfig converts a racer configuration into engine terms. Speed
// progression is driven by the configured difficulty.
func ModeConfig(cfg config.RacerConfig) engine.LaneConfig {
	return engine.LaneConfig{
		Bounds:    core.NewRect(0, 0, cfg.World.Width, cfg.World.Height),
		Lanes:     append([]float64(nil), cfg.Lanes...),
		StartLane: cfg.StartLane,
		Player: engine.Template{
			Kind:  KindPlayer,
			Box:   core.NewRect(cfg.Player.X, cfg.Player.Y, cfg.Player.W, cfg.Player.H),
			Color: cfg.PlayerColor,
		},
		BaseSpeed:       cfg.Physics.BaseSpeed,
		EnemyFactor:     cfg.Physics.EnemyFactor,
		ScoreEveryTicks: cfg.Physics.TicksPerPoint,
		ScrollWrap:      cfg.Physics.ScrollWrap,
		Progression:     config.NewDifficultyManager(cfg.Difficulty),
		Spawner: &engine.LaneSpawner{
			Chance:  cfg.Spawn.Chance,
			SpawnY:  cfg.Spawn.Y,
			Size:    core.V(cfg.Spawn.Width, cfg.Spawn.Height),
			MinGap:  cfg.Spawn.MinGap,
			Kind:    KindTraffic,
			Palette: append([]core.Color(nil), cfg.Spawn.Palette...),
		},
	}
}
