package engine

import (
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/core"
)

// Progression maps score and elapsed ticks to the current global speed.
// Implementations must never return less than base.
type Progression interface {
	Speed(base float64, score int, ticks uint64) float64
}

// LaneConfig describes a lane racer.
type LaneConfig struct {
	Bounds    core.Rect
	Lanes     []float64 // x position of each lane, left to right
	StartLane int
	Player    Template // Box.X is replaced by the start lane

	BaseSpeed   float64
	EnemyFactor float64 // hazards move at speed*EnemyFactor

	// ScoreEveryTicks awards one point per this many ticks survived.
	ScoreEveryTicks uint64
	// ScrollWrap resets the cosmetic road scroll once it exceeds this value.
	ScrollWrap float64

	// Progression computes the global speed. Nil uses a constant BaseSpeed.
	Progression Progression
	Spawner     *LaneSpawner
}

// Lane is the racer mode: discrete lane changes, downward-moving hazards
// and a monotonically increasing global speed.
type Lane struct {
	cfg   LaneConfig
	speed float64
}

// NewLane creates a lane mode.
func NewLane(cfg LaneConfig) *Lane {
	return &Lane{cfg: cfg, speed: cfg.BaseSpeed}
}

// Speed returns the current global speed.
func (l *Lane) Speed() float64 {
	return l.speed
}

func (l *Lane) Name() string { return "lane" }

func (l *Lane) Init(w *World, _ *rand.Rand) {
	l.speed = l.cfg.BaseSpeed
	w.Bounds = l.cfg.Bounds
	w.Lanes = append([]float64(nil), l.cfg.Lanes...)

	p := l.cfg.Player.entity(RolePlayer)
	p.Vel = core.Vec{}
	if len(w.Lanes) > 0 {
		p.Lane = min(max(l.cfg.StartLane, 0), len(w.Lanes)-1)
		p.Pos.X = w.Lanes[p.Lane]
	}
	w.Entities.Append(p)
}

func (l *Lane) Apply(w *World, a core.Action) {
	p := w.Player()
	if p == nil || len(w.Lanes) == 0 {
		return
	}
	switch a {
	case core.ActionLeftStart:
		p.Lane = max(p.Lane-1, 0)
	case core.ActionRightStart:
		p.Lane = min(p.Lane+1, len(w.Lanes)-1)
	default:
		return
	}
	p.Pos.X = w.Lanes[p.Lane]
}

func (l *Lane) Advance(w *World, s *Step) {
	if l.cfg.Progression != nil {
		l.speed = max(l.speed, l.cfg.Progression.Speed(l.cfg.BaseSpeed, s.Score, s.Tick))
	}

	w.Scroll += l.speed
	if l.cfg.ScrollWrap > 0 && w.Scroll > l.cfg.ScrollWrap {
		w.Scroll = 0
	}

	dy := l.speed * l.cfg.EnemyFactor
	for _, h := range w.Entities.ByRole(RoleHazard) {
		h.Vel.Y = dy
		h.Pos.Y += dy
	}
}

func (l *Lane) Collide(w *World, s *Step) []Event {
	var events []Event
	if every := l.cfg.ScoreEveryTicks; every > 0 && s.Tick%every == 0 {
		events = append(events, Event{Kind: EventScore, Points: 1})
	}

	bottom := w.Bounds.Bottom()
	for _, h := range w.Entities.ByRole(RoleHazard) {
		if h.Pos.Y > bottom {
			events = append(events, Event{Kind: EventOutOfBounds, Entity: h.ID})
		}
	}

	p := w.Player()
	if p == nil {
		return events
	}
	box := p.Rect()
	for _, h := range w.Entities.ByRole(RoleHazard) {
		if h.Pos.Y > bottom {
			continue
		}
		if box.Intersects(h.Rect()) {
			events = append(events, Event{Kind: EventCollide, Entity: h.ID, Other: p.ID})
			break
		}
	}
	return events
}

// Spawner implements SpawningMode.
func (l *Lane) Spawner() Spawner {
	if l.cfg.Spawner == nil {
		return nil
	}
	return l.cfg.Spawner
}
