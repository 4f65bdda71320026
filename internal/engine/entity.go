// Package engine implements a deterministic fixed-tick arcade loop.
// A Controller owns one run's world, score and tick counter and drives a
// pluggable Mode (free-fall, lane or grid physics) through
// update, collision and render phases. The package knows nothing about
// terminals or key codes; hosts reach it through Renderer and core.Action.
package engine

import (
	"github.com/vovakirdan/gameroom/internal/core"
)

// EntityID identifies an entity within a single run. IDs are never reused.
type EntityID uint64

// Role classifies what an entity means to the collision phase.
type Role int

const (
	RolePlayer Role = iota
	RoleCollectible
	RoleObstacle
	RoleHazard
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleCollectible:
		return "collectible"
	case RoleObstacle:
		return "obstacle"
	case RoleHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Entity is a single object in the world.
// Free-fall and lane modes use the continuous Pos/Size/Vel fields;
// grid mode uses Cell for single-cell entities and Segments for chains.
type Entity struct {
	ID   EntityID
	Role Role
	Kind string // game-specific tag used by renderers ("apple", "car", ...)

	Pos  core.Vec
	Size core.Vec
	Vel  core.Vec

	Grounded  bool
	Collected bool
	Alive     bool
	Dir       float64 // patrol direction, -1 or 1
	Points    int     // score value for collectibles
	Lane      int     // lane index in lane mode

	Cell     core.Point
	Segments []core.Point // head first

	Color core.Color
}

// Rect returns the entity's bounding box.
func (e *Entity) Rect() core.Rect {
	return core.RectAt(e.Pos, e.Size)
}

// Head returns the first segment of a chain entity.
func (e *Entity) Head() core.Point {
	if len(e.Segments) == 0 {
		return e.Cell
	}
	return e.Segments[0]
}

// Occupies reports whether the entity covers grid cell p.
func (e *Entity) Occupies(p core.Point) bool {
	if len(e.Segments) == 0 {
		return e.Cell == p
	}
	for _, s := range e.Segments {
		if s == p {
			return true
		}
	}
	return false
}

func (e *Entity) clone() Entity {
	c := *e
	if e.Segments != nil {
		c.Segments = make([]core.Point, len(e.Segments))
		copy(c.Segments, e.Segments)
	}
	return c
}

// Entities is the ordered, authoritative entity collection of a run.
// It is not safe for concurrent use; the controller serializes access.
type Entities struct {
	items  []*Entity
	nextID EntityID
}

// NewEntities returns an empty collection.
func NewEntities() *Entities {
	return &Entities{}
}

// Append assigns a fresh ID to e, marks it alive and adds it to the end.
func (es *Entities) Append(e *Entity) *Entity {
	es.nextID++
	e.ID = es.nextID
	e.Alive = true
	es.items = append(es.items, e)
	return e
}

// Get returns the entity with the given ID, or nil.
func (es *Entities) Get(id EntityID) *Entity {
	for _, e := range es.items {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Remove deletes the entity with the given ID and reports whether it existed.
func (es *Entities) Remove(id EntityID) bool {
	n := es.RemoveIf(func(e *Entity) bool { return e.ID == id })
	return n > 0
}

// RemoveIf deletes every entity matching pred and returns how many were
// removed. The survivors are copied into a fresh slice, so pred sees every
// entity exactly once even if it inspects the collection.
func (es *Entities) RemoveIf(pred func(*Entity) bool) int {
	kept := make([]*Entity, 0, len(es.items))
	removed := 0
	for _, e := range es.items {
		if pred(e) {
			e.Alive = false
			removed++
			continue
		}
		kept = append(kept, e)
	}
	es.items = kept
	return removed
}

// Each calls fn for every entity in insertion order. The iteration runs over
// a copy of the current order, so fn may append or remove entities.
func (es *Entities) Each(fn func(*Entity)) {
	items := make([]*Entity, len(es.items))
	copy(items, es.items)
	for _, e := range items {
		fn(e)
	}
}

// ByRole returns the entities with the given role in insertion order.
func (es *Entities) ByRole(r Role) []*Entity {
	var out []*Entity
	for _, e := range es.items {
		if e.Role == r {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity with the given role, or nil.
func (es *Entities) First(r Role) *Entity {
	for _, e := range es.items {
		if e.Role == r {
			return e
		}
	}
	return nil
}

// Count returns the number of entities with the given role.
func (es *Entities) Count(r Role) int {
	n := 0
	for _, e := range es.items {
		if e.Role == r {
			n++
		}
	}
	return n
}

// Len returns the number of live entities.
func (es *Entities) Len() int {
	return len(es.items)
}

// Snapshot returns a deep copy of every entity in order.
func (es *Entities) Snapshot() []Entity {
	out := make([]Entity, len(es.items))
	for i, e := range es.items {
		out[i] = e.clone()
	}
	return out
}
