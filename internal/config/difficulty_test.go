package config

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStepProgressionMatchesRacer(t *testing.T) {
	d := NewDifficultyManager(DefaultRacerConfig().Difficulty)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 5},
		{49, 5},
		{50, 5.5},
		{99, 5.5},
		{100, 6},
		{275, 7.5},
	}
	for _, tt := range tests {
		if got := d.Speed(5, tt.score, 0); !near(got, tt.want) {
			t.Errorf("Speed(5, %d) = %g, expected %g", tt.score, got, tt.want)
		}
	}
}

func TestStepProgressionInitialLevel(t *testing.T) {
	cfg := DefaultRacerConfig()
	ApplyRacerPreset(&cfg, DifficultyHard)
	d := NewDifficultyManager(cfg.Difficulty)

	// 5 * (1 + 0.7*0.5) = 6.75
	if got := d.Speed(5, 0, 0); !near(got, 6.75) {
		t.Errorf("hard starting speed = %g, expected 6.75", got)
	}
	if got := d.Speed(5, 50, 0); !near(got, 7.25) {
		t.Errorf("hard speed at 50 = %g, expected 7.25", got)
	}
}

func TestScoreAndTimeProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1},
	}
	d := NewDifficultyManager(cfg)
	if got := d.Level(50, 0); !near(got, 0.5) {
		t.Errorf("Level(50) = %g, expected 0.5", got)
	}
	if got := d.Level(1000, 0); !near(got, 1) {
		t.Errorf("Level(1000) = %g, expected clamp to 1", got)
	}
	if got := d.Speed(2, 100, 0); !near(got, 4) {
		t.Errorf("Speed at max = %g, expected 4", got)
	}

	cfg.Progression.Type = "time"
	d = NewDifficultyManager(cfg)
	if got := d.Level(0, 25); !near(got, 0.25) {
		t.Errorf("Level(ticks=25) = %g, expected 0.25", got)
	}
}

func TestDisabledProgressionIsFlat(t *testing.T) {
	d := NewDifficultyManager(DefaultRacerConfig().Difficulty)
	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Fatalf("IsEnabled() after SetEnabled(false)")
	}
	for _, score := range []int{0, 50, 500} {
		if got := d.Speed(5, score, 10000); !near(got, 5) {
			t.Errorf("disabled Speed(5, %d) = %g, expected 5", score, got)
		}
	}
}

func TestSetInitialLevelClamps(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Scaling: ScalingConfig{SpeedMultiplier: 1}})
	d.SetInitialLevel(3)
	if got := d.Level(0, 0); got != 1 {
		t.Errorf("Level() = %g, expected clamp to 1", got)
	}
	d.SetInitialLevel(-1)
	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level() = %g, expected clamp to 0", got)
	}
}
