package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/core"
)

// ErrNoFreeCell is returned by CellSpawner when every grid cell is taken.
var ErrNoFreeCell = errors.New("engine: no free cell")

// ErrNoLanes is returned by LaneSpawner when the world has no lanes.
var ErrNoLanes = errors.New("engine: world has no lanes")

// Spawner creates transient entities while a run is in progress.
// MaybeSpawn returns (nil, nil) when nothing should spawn this tick.
// The returned entity is not yet part of the world; the controller appends it.
// A non-nil error is a configuration failure and ends the run.
type Spawner interface {
	MaybeSpawn(rng *rand.Rand, es *Entities, w *World) (*Entity, error)
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(rng *rand.Rand, es *Entities, w *World) (*Entity, error)

// MaybeSpawn implements Spawner.
func (f SpawnerFunc) MaybeSpawn(rng *rand.Rand, es *Entities, w *World) (*Entity, error) {
	return f(rng, es, w)
}

// LaneSpawner spawns hazards at the top of a random lane with a fixed
// per-tick probability.
type LaneSpawner struct {
	Chance  float64  // probability per tick, 0..1
	SpawnY  float64  // y of new hazards, usually above the field
	Size    core.Vec // hazard size
	MinGap  float64  // reject when an existing hazard is vertically closer
	Kind    string
	Palette []core.Color
}

// MaybeSpawn implements Spawner. The random draws happen in a fixed order
// (chance, lane, color) whether or not the candidate is rejected.
func (ls *LaneSpawner) MaybeSpawn(rng *rand.Rand, es *Entities, w *World) (*Entity, error) {
	if len(w.Lanes) == 0 {
		return nil, ErrNoLanes
	}
	if rng.Float64() >= ls.Chance {
		return nil, nil
	}
	lane := rng.Intn(len(w.Lanes))
	color := core.ColorDefault
	if len(ls.Palette) > 0 {
		color = ls.Palette[rng.Intn(len(ls.Palette))]
	}

	for _, h := range es.ByRole(RoleHazard) {
		if math.Abs(h.Pos.Y-ls.SpawnY) < ls.MinGap {
			return nil, nil
		}
	}

	return &Entity{
		Role:  RoleHazard,
		Kind:  ls.Kind,
		Pos:   core.V(w.Lanes[lane], ls.SpawnY),
		Size:  ls.Size,
		Lane:  lane,
		Color: color,
	}, nil
}

// defaultCellAttempts bounds random sampling before the linear scan.
const defaultCellAttempts = 64

// CellSpawner places a single collectible on a free grid cell whenever the
// world has none.
type CellSpawner struct {
	Kind        string
	Points      int
	Color       core.Color
	MaxAttempts int // random samples before scanning; 0 means 64
}

// MaybeSpawn implements Spawner. It samples uniformly for a bounded number of
// attempts, then scans row by row, so it terminates whenever a free cell
// exists and fails with ErrNoFreeCell when none does.
func (cs *CellSpawner) MaybeSpawn(rng *rand.Rand, es *Entities, w *World) (*Entity, error) {
	if es.Count(RoleCollectible) > 0 {
		return nil, nil
	}
	if w.Cols <= 0 || w.Rows <= 0 {
		return nil, fmt.Errorf("%w: empty %dx%d grid", ErrNoFreeCell, w.Cols, w.Rows)
	}

	attempts := cs.MaxAttempts
	if attempts <= 0 {
		attempts = defaultCellAttempts
	}
	for range attempts {
		c := core.Point{X: rng.Intn(w.Cols), Y: rng.Intn(w.Rows)}
		if !occupied(es, c) {
			return cs.food(w, c), nil
		}
	}

	for y := 0; y < w.Rows; y++ {
		for x := 0; x < w.Cols; x++ {
			c := core.Point{X: x, Y: y}
			if !occupied(es, c) {
				return cs.food(w, c), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %dx%d grid holds %d entities", ErrNoFreeCell, w.Cols, w.Rows, es.Len())
}

func (cs *CellSpawner) food(w *World, c core.Point) *Entity {
	size := w.CellSize
	if size <= 0 {
		size = 1
	}
	return &Entity{
		Role:   RoleCollectible,
		Kind:   cs.Kind,
		Cell:   c,
		Pos:    core.V(float64(c.X)*size, float64(c.Y)*size),
		Size:   core.V(size, size),
		Points: cs.Points,
		Color:  cs.Color,
	}
}

func occupied(es *Entities, c core.Point) bool {
	for _, e := range es.items {
		if e.Occupies(c) {
			return true
		}
	}
	return false
}
