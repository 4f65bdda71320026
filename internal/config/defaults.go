package config

import (
	_ "embed"

	"github.com/vovakirdan/gameroom/internal/core"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultPlatformerConfig returns the default platformer level.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: WorldSize{Width: 600, Height: 400},
		Physics: PlatformerPhysics{
			Gravity:          0.6,
			JumpStrength:     -12,
			MoveSpeed:        5,
			LandingTolerance: 10,
			LandingInset:     5,
		},
		Player: Box{X: 50, Y: 300, W: 30, H: 30},
		Platforms: []Box{
			{X: 0, Y: 350, W: 600, H: 50}, // ground
			{X: 200, Y: 250, W: 100, H: 20},
			{X: 400, Y: 200, W: 100, H: 20},
			{X: 50, Y: 150, W: 100, H: 20},
		},
		Items: PlatformerItems{
			Points:            100,
			Size:              15,
			RespawnDelayTicks: 120,
			Positions: []Box{
				{X: 230, Y: 220},
				{X: 430, Y: 170},
				{X: 80, Y: 120},
				{X: 550, Y: 320},
			},
		},
		Enemies: PlatformerEnemies{
			PatrolMargin: 50,
			List: []Enemy{
				{Box: Box{X: 300, Y: 330, W: 25, H: 20}, Speed: 2, Dir: 1},
				{Box: Box{X: 450, Y: 180, W: 20, H: 20}, Speed: 1.5, Dir: -1},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: ProgressionNone},
			Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultRacerConfig returns the default lane racer.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		World:       WorldSize{Width: 300, Height: 500},
		Lanes:       []float64{30, 130, 230},
		StartLane:   1,
		Player:      Box{Y: 400, W: 40, H: 70},
		PlayerColor: core.ColorRed,
		Physics: RacerPhysics{
			BaseSpeed:     5,
			EnemyFactor:   0.8,
			ScrollWrap:    40,
			TicksPerPoint: 10,
		},
		Spawn: RacerSpawn{
			Chance: 0.02,
			Y:      -100,
			Width:  40,
			Height: 70,
			MinGap: 150,
			Palette: []core.Color{
				core.ColorBlue,
				core.ColorGreen,
				core.ColorYellow,
				core.ColorMagenta,
				core.ColorBrightMagenta,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionStep,
				Every: 50,
				Step:  0.5,
			},
			Scaling: ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultSnakeConfig returns the default snake board.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{Cols: 20, Rows: 20, CellSize: 20},
		Start: SnakeStart{
			Body: []Cell{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
			Dir:  Cell{X: 1, Y: 0},
		},
		Food: SnakeFood{
			Points: 10,
			First:  &Cell{X: 15, Y: 15},
		},
		Speed: SnakeSpeed{MoveEveryTicks: 6},
		Difficulty: DifficultyConfig{
			Enabled:     false,
			Progression: ProgressionConfig{Type: ProgressionNone},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	case "racer":
		return defaultRacerYAML
	case "snake":
		return defaultSnakeYAML
	default:
		return nil
	}
}
