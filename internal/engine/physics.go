package engine

import (
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/core"
)

// Mode is one physics variant (free-fall, lane or grid). A Mode instance is
// owned by a single Controller and may keep per-run state, which Init resets.
type Mode interface {
	// Name identifies the mode in logs ("freefall", "lane", "grid").
	Name() string

	// Init sets bounds and static geometry on a fresh world and adds the
	// initial entities. Called on every Start.
	Init(w *World, rng *rand.Rand)

	// Apply handles one buffered gameplay action at the tick boundary.
	// Actions the mode does not understand are ignored.
	Apply(w *World, a core.Action)

	// Advance integrates movement for one tick.
	Advance(w *World, s *Step)

	// Collide inspects the world after Advance and reports what happened.
	// The controller applies the events in order.
	Collide(w *World, s *Step) []Event
}

// SpawningMode is implemented by modes that create entities while running.
type SpawningMode interface {
	Mode
	Spawner() Spawner
}

// Step carries per-tick context into Advance and Collide.
type Step struct {
	Tick  uint64 // 1 on the first tick of a run
	Score int    // score before this tick's events
	RNG   *rand.Rand

	timers *timerQueue
}

// After schedules fn to run at the start of the tick delay ticks from now.
// Timers belong to the run and are discarded by Start and by game over.
func (s *Step) After(delay uint64, fn func(w *World)) {
	if s.timers == nil {
		return
	}
	s.timers.schedule(s.Tick, delay, fn)
}

// EventKind classifies collision outcomes.
type EventKind int

const (
	// EventCollect removes a collectible and adds its points.
	EventCollect EventKind = iota
	// EventScore adds points without touching entities.
	EventScore
	// EventCollide ends the run.
	EventCollide
	// EventOutOfBounds removes the entity, or ends the run when Fatal.
	EventOutOfBounds
)

func (k EventKind) String() string {
	switch k {
	case EventCollect:
		return "collect"
	case EventScore:
		return "score"
	case EventCollide:
		return "collide"
	case EventOutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

// Event is produced by Mode.Collide.
type Event struct {
	Kind   EventKind
	Entity EntityID // subject (the collectible, the hazard, the escaping entity)
	Other  EntityID // usually the player
	Points int
	Fatal  bool
}

// Template describes an entity a mode creates at Init or on respawn.
type Template struct {
	Kind   string
	Box    core.Rect
	Speed  float64
	Dir    float64
	Points int
	Color  core.Color
}

func (t Template) entity(role Role) *Entity {
	return &Entity{
		Role:   role,
		Kind:   t.Kind,
		Pos:    core.V(t.Box.X, t.Box.Y),
		Size:   core.V(t.Box.W, t.Box.H),
		Dir:    t.Dir,
		Vel:    core.V(t.Speed, 0),
		Points: t.Points,
		Color:  t.Color,
	}
}
