// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/gameroom/internal/core"
)

// Box is a rectangle in world units.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Cell is a grid coordinate.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// WorldSize defines the play field extents in world units.
type WorldSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	World      WorldSize         `yaml:"world"`
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     Box               `yaml:"player"`
	Platforms  []Box             `yaml:"platforms"`
	Items      PlatformerItems   `yaml:"items"`
	Enemies    PlatformerEnemies `yaml:"enemies"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines gravity, jump and landing parameters.
type PlatformerPhysics struct {
	Gravity          float64 `yaml:"gravity"`
	JumpStrength     float64 `yaml:"jump_strength"` // negative is up
	MoveSpeed        float64 `yaml:"move_speed"`
	LandingTolerance float64 `yaml:"landing_tolerance"`
	LandingInset     float64 `yaml:"landing_inset"`
}

// PlatformerItems defines the collectibles of a level.
type PlatformerItems struct {
	Points            int     `yaml:"points"`
	Size              float64 `yaml:"size"`
	RespawnDelayTicks uint64  `yaml:"respawn_delay_ticks"`
	Positions         []Box   `yaml:"positions"` // only x and y are read
}

// PlatformerEnemies defines the patrolling hazards of a level.
type PlatformerEnemies struct {
	PatrolMargin float64 `yaml:"patrol_margin"`
	List         []Enemy `yaml:"list"`
}

// Enemy is a single patrolling hazard.
type Enemy struct {
	Box   Box     `yaml:",inline"`
	Speed float64 `yaml:"speed"`
	Dir   float64 `yaml:"dir"`
}

// RacerConfig contains all configuration for the lane racer.
type RacerConfig struct {
	World       WorldSize        `yaml:"world"`
	Lanes       []float64        `yaml:"lanes"`
	StartLane   int              `yaml:"start_lane"`
	Player      Box              `yaml:"player"` // x is taken from the start lane
	PlayerColor core.Color       `yaml:"player_color"`
	Physics     RacerPhysics     `yaml:"physics"`
	Spawn       RacerSpawn       `yaml:"spawn"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// RacerPhysics defines road and enemy speeds.
type RacerPhysics struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	EnemyFactor   float64 `yaml:"enemy_factor"`
	ScrollWrap    float64 `yaml:"scroll_wrap"`
	TicksPerPoint uint64  `yaml:"ticks_per_point"`
}

// RacerSpawn defines how enemy cars appear.
type RacerSpawn struct {
	Chance float64 `yaml:"chance"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MinGap float64 `yaml:"min_gap"`
	// Palette colors traffic; each car draws one entry at random.
	Palette []core.Color `yaml:"palette"`
}

// SnakeConfig contains all configuration for the grid snake.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Start      SnakeStart       `yaml:"start"`
	Food       SnakeFood        `yaml:"food"`
	Speed      SnakeSpeed       `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGrid defines the board size.
type SnakeGrid struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"`
}

// SnakeStart defines the initial chain, head first, and its direction.
type SnakeStart struct {
	Body []Cell `yaml:"body"`
	Dir  Cell   `yaml:"dir"`
}

// SnakeFood defines food value and optional fixed first placement.
type SnakeFood struct {
	Points int   `yaml:"points"`
	First  *Cell `yaml:"first,omitempty"`
}

// SnakeSpeed defines how often the snake moves.
type SnakeSpeed struct {
	MoveEveryTicks uint64 `yaml:"move_every_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionType selects what drives difficulty upward.
type ProgressionType string

const (
	ProgressionNone  ProgressionType = "none"
	ProgressionScore ProgressionType = "score" // level rises linearly with score up to max_at
	ProgressionTime  ProgressionType = "time"  // level rises linearly with ticks up to max_at
	ProgressionStep  ProgressionType = "step"  // speed gains step every `every` points
)

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  ProgressionType `yaml:"type"`
	MaxAt int             `yaml:"max_at"` // Score/ticks at which max difficulty is reached
	Every int             `yaml:"every"`  // step: score units per increment
	Step  float64         `yaml:"step"`   // step: speed added per increment
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (d DifficultyConfig) validate() error {
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return invalid("initial_level %g outside [0, 1]", d.InitialLevel)
	}
	switch p := d.Progression; p.Type {
	case "", ProgressionNone:
	case ProgressionScore, ProgressionTime:
		if p.MaxAt <= 0 {
			return invalid("%s progression needs a positive max_at", p.Type)
		}
	case ProgressionStep:
		if p.Every <= 0 {
			return invalid("step progression needs a positive every")
		}
	default:
		return invalid("unknown progression type %q", p.Type)
	}
	return nil
}

func (w WorldSize) validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return invalid("world size %gx%g must be positive", w.Width, w.Height)
	}
	return nil
}

// Validate checks that the platformer level is playable.
func (c PlatformerConfig) Validate() error {
	if err := c.World.validate(); err != nil {
		return err
	}
	if c.Physics.Gravity <= 0 {
		return invalid("gravity %g must be positive", c.Physics.Gravity)
	}
	if c.Physics.JumpStrength >= 0 {
		return invalid("jump_strength %g must be negative", c.Physics.JumpStrength)
	}
	if c.Player.W <= 0 || c.Player.H <= 0 {
		return invalid("player size %gx%g must be positive", c.Player.W, c.Player.H)
	}
	for i, p := range c.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return invalid("platform %d has non-positive size", i)
		}
	}
	if len(c.Items.Positions) > 0 && c.Items.Size <= 0 {
		return invalid("item size %g must be positive", c.Items.Size)
	}
	return c.Difficulty.validate()
}

// Validate checks that the racer road is drivable.
func (c RacerConfig) Validate() error {
	if err := c.World.validate(); err != nil {
		return err
	}
	if len(c.Lanes) == 0 {
		return invalid("racer needs at least one lane")
	}
	for i := 1; i < len(c.Lanes); i++ {
		if c.Lanes[i] <= c.Lanes[i-1] {
			return invalid("lanes must be strictly increasing, got %v", c.Lanes)
		}
	}
	if c.StartLane < 0 || c.StartLane >= len(c.Lanes) {
		return invalid("start_lane %d outside 0..%d", c.StartLane, len(c.Lanes)-1)
	}
	if c.Spawn.Chance < 0 || c.Spawn.Chance > 1 {
		return invalid("spawn chance %g outside [0, 1]", c.Spawn.Chance)
	}
	if c.Physics.BaseSpeed <= 0 {
		return invalid("base_speed %g must be positive", c.Physics.BaseSpeed)
	}
	if len(c.Spawn.Palette) == 0 {
		return invalid("spawn palette needs at least one color")
	}
	return c.Difficulty.validate()
}

// Validate checks that the snake fits on its board.
func (c SnakeConfig) Validate() error {
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		return invalid("grid %dx%d must be positive", c.Grid.Cols, c.Grid.Rows)
	}
	if len(c.Start.Body) == 0 {
		return invalid("snake needs at least one segment")
	}
	in := func(p Cell) bool {
		return p.X >= 0 && p.X < c.Grid.Cols && p.Y >= 0 && p.Y < c.Grid.Rows
	}
	for _, p := range c.Start.Body {
		if !in(p) {
			return invalid("start segment (%d, %d) outside the grid", p.X, p.Y)
		}
	}
	if len(c.Start.Body) >= c.Grid.Cols*c.Grid.Rows {
		return invalid("snake of length %d leaves no room for food", len(c.Start.Body))
	}
	d := c.Start.Dir
	if (d.X == 0) == (d.Y == 0) || d.X < -1 || d.X > 1 || d.Y < -1 || d.Y > 1 {
		return invalid("start direction (%d, %d) must be a unit step", d.X, d.Y)
	}
	if f := c.Food.First; f != nil {
		if !in(*f) {
			return invalid("first food (%d, %d) outside the grid", f.X, f.Y)
		}
		if slices.Contains(c.Start.Body, *f) {
			return invalid("first food (%d, %d) overlaps the snake", f.X, f.Y)
		}
	}
	return c.Difficulty.validate()
}
