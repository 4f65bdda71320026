package config

// DifficultyManager turns a DifficultyConfig into a speed curve. It
// implements engine.Progression.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampUnit(cfg.InitialLevel),
	}
}

// SetInitialLevel overrides the initial difficulty level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampUnit(level)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	t := d.cfg.Progression.Type
	return d.cfg.Enabled && t != "" && t != ProgressionNone
}

// Level returns the difficulty level in [0, 1] for the given score and
// tick count. Score and time progressions interpolate from the initial
// level to 1; every other type stays at the initial level.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	progress := d.progress(score, ticks)
	return d.initialLevel + progress*(1-d.initialLevel)
}

// progress is how far along max_at the run is, in [0, 1].
func (d *DifficultyManager) progress(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return 0
	}
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))

	var done float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		done = float64(score)
	case ProgressionTime:
		done = float64(ticks)
	default:
		return 0
	}
	return clampUnit(done / maxAt)
}

// stepBonus is the flat speed gained from completed score steps.
func (d *DifficultyManager) stepBonus(score int) float64 {
	p := d.cfg.Progression
	if !d.IsEnabled() || p.Type != ProgressionStep || p.Every <= 0 || score <= 0 {
		return 0
	}
	return float64(score/p.Every) * p.Step
}

// Speed returns baseSpeed scaled by the current level plus any step bonus.
// It never falls below its value at score 0 and tick 0.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks uint64) float64 {
	scaled := baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
	return scaled + d.stepBonus(score)
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
