package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	platformer, err := LoadPlatformer("")
	if err != nil {
		t.Fatalf("LoadPlatformer() error = %v", err)
	}
	if !reflect.DeepEqual(platformer, DefaultPlatformerConfig()) {
		t.Errorf("embedded platformer.yaml differs from DefaultPlatformerConfig()")
	}

	racer, err := LoadRacer("")
	if err != nil {
		t.Fatalf("LoadRacer() error = %v", err)
	}
	if !reflect.DeepEqual(racer, DefaultRacerConfig()) {
		t.Errorf("embedded racer.yaml differs from DefaultRacerConfig()")
	}

	snake, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() error = %v", err)
	}
	def := DefaultSnakeConfig()
	if !reflect.DeepEqual(snake.Grid, def.Grid) || !reflect.DeepEqual(snake.Start, def.Start) ||
		!reflect.DeepEqual(snake.Food, def.Food) || snake.Speed != def.Speed {
		t.Errorf("embedded snake.yaml differs from DefaultSnakeConfig()")
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultPlatformerConfig().Validate(); err != nil {
		t.Errorf("platformer: %v", err)
	}
	if err := DefaultRacerConfig().Validate(); err != nil {
		t.Errorf("racer: %v", err)
	}
	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("snake: %v", err)
	}
}

func TestCustomPathOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "racer.yaml")
	data := []byte("spawn:\n  chance: 0.5\n  palette: [cyan]\nlanes: [10, 60]\nstart_lane: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRacer(path)
	if err != nil {
		t.Fatalf("LoadRacer() error = %v", err)
	}
	if cfg.Spawn.Chance != 0.5 {
		t.Errorf("chance = %g, expected 0.5", cfg.Spawn.Chance)
	}
	if !reflect.DeepEqual(cfg.Spawn.Palette, []core.Color{core.ColorCyan}) {
		t.Errorf("palette = %v, expected [cyan]", cfg.Spawn.Palette)
	}
	if !reflect.DeepEqual(cfg.Lanes, []float64{10, 60}) {
		t.Errorf("lanes = %v, expected [10 60]", cfg.Lanes)
	}
	if cfg.Physics.BaseSpeed != 5 || cfg.Spawn.MinGap != 150 {
		t.Errorf("unnamed fields lost their defaults: %+v", cfg)
	}
}

func TestCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("missing custom file should be an error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("grid: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(broken); err == nil {
		t.Errorf("malformed yaml should be an error")
	}

	badColor := filepath.Join(dir, "color.yaml")
	if err := os.WriteFile(badColor, []byte("player_color: mauve\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRacer(badColor); err == nil {
		t.Errorf("unknown color name should be an error")
	}

	invalidGrid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalidGrid, []byte("grid:\n  cols: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSnake(invalidGrid)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadSnake() error = %v, expected ErrInvalid", err)
	}
}

func TestLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("speed:\n  move_every_ticks: 3\n")
	if err := os.WriteFile(filepath.Join("configs", "snake.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() error = %v", err)
	}
	if cfg.Speed.MoveEveryTicks != 3 {
		t.Errorf("move_every_ticks = %d, expected 3 from ./configs", cfg.Speed.MoveEveryTicks)
	}
}

func TestUserConfigWinsOverLocal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	userDir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "snake.yaml"), []byte("speed:\n  move_every_ticks: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "snake.yaml"), []byte("speed:\n  move_every_ticks: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() error = %v", err)
	}
	if cfg.Speed.MoveEveryTicks != 2 {
		t.Errorf("move_every_ticks = %d, expected the user config value 2", cfg.Speed.MoveEveryTicks)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RacerConfig)
		ok     bool
	}{
		{"default", func(*RacerConfig) {}, true},
		{"no lanes", func(c *RacerConfig) { c.Lanes = nil }, false},
		{"unsorted lanes", func(c *RacerConfig) { c.Lanes = []float64{130, 30} }, false},
		{"start lane too big", func(c *RacerConfig) { c.StartLane = 3 }, false},
		{"negative start lane", func(c *RacerConfig) { c.StartLane = -1 }, false},
		{"chance above one", func(c *RacerConfig) { c.Spawn.Chance = 1.5 }, false},
		{"zero world", func(c *RacerConfig) { c.World.Width = 0 }, false},
		{"zero speed", func(c *RacerConfig) { c.Physics.BaseSpeed = 0 }, false},
		{"empty palette", func(c *RacerConfig) { c.Spawn.Palette = nil }, false},
		{"unknown progression", func(c *RacerConfig) { c.Difficulty.Progression.Type = "exponential" }, false},
		{"step without every", func(c *RacerConfig) { c.Difficulty.Progression.Every = 0 }, false},
		{"initial level above one", func(c *RacerConfig) { c.Difficulty.InitialLevel = 1.5 }, false},
		{"score progression", func(c *RacerConfig) {
			c.Difficulty.Progression = ProgressionConfig{Type: ProgressionScore, MaxAt: 500}
		}, true},
		{"score without max_at", func(c *RacerConfig) {
			c.Difficulty.Progression = ProgressionConfig{Type: ProgressionScore}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRacerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, expected ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestValidateSnake(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
		ok     bool
	}{
		{"default", func(*SnakeConfig) {}, true},
		{"empty body", func(c *SnakeConfig) { c.Start.Body = nil }, false},
		{"body off grid", func(c *SnakeConfig) { c.Start.Body = []Cell{{X: 20, Y: 0}} }, false},
		{"diagonal dir", func(c *SnakeConfig) { c.Start.Dir = Cell{X: 1, Y: 1} }, false},
		{"zero dir", func(c *SnakeConfig) { c.Start.Dir = Cell{} }, false},
		{"food off grid", func(c *SnakeConfig) { c.Food.First = &Cell{X: -1, Y: 3} }, false},
		{"food on body", func(c *SnakeConfig) {
			head := c.Start.Body[0]
			c.Food.First = &head
		}, false},
		{"no room for food", func(c *SnakeConfig) {
			c.Grid = SnakeGrid{Cols: 1, Rows: 1}
			c.Start.Body = []Cell{{X: 0, Y: 0}}
			c.Food.First = nil
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, expected ok=%v", err, tt.ok)
			}
		})
	}
}

func TestValidatePlatformer(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	cfg.Physics.JumpStrength = 12
	if err := cfg.Validate(); err == nil {
		t.Errorf("positive jump strength should be invalid")
	}

	cfg = DefaultPlatformerConfig()
	cfg.Platforms = append(cfg.Platforms, Box{X: 1, Y: 1})
	if err := cfg.Validate(); err == nil {
		t.Errorf("zero-size platform should be invalid")
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if p, err := ParsePreset(s); err != nil || string(p) != s {
			t.Errorf("ParsePreset(%q) = %q, %v", s, p, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Errorf("ParsePreset(nightmare) should fail")
	}
}

func TestApplyPresets(t *testing.T) {
	p := DefaultPlatformerConfig()
	ApplyPlatformerPreset(&p, DifficultyHard)
	if p.Enemies.List[0].Speed != 3 {
		t.Errorf("hard enemy speed = %g, expected 3", p.Enemies.List[0].Speed)
	}
	if !p.Difficulty.Enabled || p.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset difficulty = %+v", p.Difficulty)
	}

	r := DefaultRacerConfig()
	ApplyRacerPreset(&r, DifficultyFixed)
	if r.Difficulty.Enabled {
		t.Errorf("fixed preset should disable progression")
	}

	r = DefaultRacerConfig()
	ApplyRacerPreset(&r, DifficultyEasy)
	if r.Spawn.Chance != 0.015 {
		t.Errorf("easy chance = %g, expected 0.015", r.Spawn.Chance)
	}

	s := DefaultSnakeConfig()
	ApplySnakePreset(&s, "")
	if !reflect.DeepEqual(s, DefaultSnakeConfig()) {
		t.Errorf("empty preset changed the config")
	}
	ApplySnakePreset(&s, DifficultyHard)
	if s.Speed.MoveEveryTicks != 4 {
		t.Errorf("hard move_every_ticks = %d, expected 4", s.Speed.MoveEveryTicks)
	}
}
