package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type validated interface {
	Validate() error
}

// load resolves a game's configuration.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml
// -> embedded default -> hard-coded default. Files are decoded over the
// hard-coded defaults, so partial files only override what they name.
// A custom path must exist and parse; the other locations are optional.
func load[T validated](gameID, customPath string, fallback func() T) (T, error) {
	filename := gameID + ".yaml"

	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			continue
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(GetDefaultYAML(gameID), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadPlatformer loads the platformer configuration.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	return load("platformer", customPath, DefaultPlatformerConfig)
}

// LoadRacer loads the lane racer configuration.
func LoadRacer(customPath string) (RacerConfig, error) {
	return load("racer", customPath, DefaultRacerConfig)
}

// LoadSnake loads the snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPlatformerPreset adjusts enemy speeds for a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	factor := 1.0
	switch preset {
	case DifficultyEasy:
		factor = 0.75
	case DifficultyHard:
		factor = 1.5
	}
	for i := range cfg.Enemies.List {
		cfg.Enemies.List[i].Speed *= factor
	}
}

// ApplyRacerPreset adjusts traffic density and speed progression.
func ApplyRacerPreset(cfg *RacerConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Spawn.Chance = 0.015
	case DifficultyHard:
		cfg.Spawn.Chance = 0.03
		cfg.Spawn.MinGap = 120
	}
}

// ApplySnakePreset adjusts how often the snake moves.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Speed.MoveEveryTicks = 8
	case DifficultyHard:
		cfg.Speed.MoveEveryTicks = 4
	}
}

func applyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
