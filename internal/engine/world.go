package engine

import "github.com/vovakirdan/gameroom/internal/core"

// World is the play field of one run: immutable bounds, static geometry set
// by Mode.Init, and the entity collection.
type World struct {
	Bounds    core.Rect
	Platforms []core.Rect // free-fall
	Lanes     []float64   // lane x positions, left to right
	Cols      int         // grid columns
	Rows      int         // grid rows
	CellSize  float64     // world units per grid cell

	// Scroll is a cosmetic offset advanced by scrolling modes.
	Scroll float64

	Entities *Entities
}

// NewWorld returns an empty world with the given bounds.
func NewWorld(bounds core.Rect) *World {
	return &World{
		Bounds:   bounds,
		Entities: NewEntities(),
	}
}

// Player returns the first player entity, or nil.
func (w *World) Player() *Entity {
	return w.Entities.First(RolePlayer)
}

// InGrid reports whether p lies inside the grid.
func (w *World) InGrid(p core.Point) bool {
	return p.X >= 0 && p.X < w.Cols && p.Y >= 0 && p.Y < w.Rows
}

// Snapshot is a read-only copy of the world handed to renderers.
type Snapshot struct {
	RunID     string
	State     RunState
	Reason    EndReason
	Bounds    core.Rect
	Platforms []core.Rect
	Lanes     []float64
	Cols      int
	Rows      int
	CellSize  float64
	Scroll    float64
	Entities  []Entity
}

func (w *World) snapshot() Snapshot {
	s := Snapshot{
		Bounds:   w.Bounds,
		Cols:     w.Cols,
		Rows:     w.Rows,
		CellSize: w.CellSize,
		Scroll:   w.Scroll,
		Entities: w.Entities.Snapshot(),
	}
	s.Platforms = append([]core.Rect(nil), w.Platforms...)
	s.Lanes = append([]float64(nil), w.Lanes...)
	return s
}

// Player returns a copy of the first player entity in the snapshot.
func (s Snapshot) Player() (Entity, bool) {
	for _, e := range s.Entities {
		if e.Role == RolePlayer {
			return e, true
		}
	}
	return Entity{}, false
}
