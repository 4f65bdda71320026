package engine

import (
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/core"
)

// FreeFallConfig describes a platformer level and its physics constants.
// Velocities are in world units per tick; negative Y points up.
type FreeFallConfig struct {
	Bounds       core.Rect
	Gravity      float64
	JumpStrength float64 // negative
	MoveSpeed    float64

	// LandingTolerance extends the band below a platform's top edge in which
	// a falling player still lands on it.
	LandingTolerance float64
	// LandingInset shrinks the player's horizontal extent for landing so
	// brushing a platform corner does not snap onto it.
	LandingInset float64
	// PatrolMargin is the distance from each side where hazards turn around.
	PatrolMargin float64
	// RespawnDelayTicks restores every collectible this many ticks after the
	// last one is taken. Zero disables respawning.
	RespawnDelayTicks uint64

	Player    Template
	Platforms []core.Rect
	Items     []Template
	Hazards   []Template
}

// FreeFall is the platformer mode: gravity, landing-only platform
// resolution, collectibles and patrolling hazards.
type FreeFall struct {
	cfg FreeFallConfig
}

// NewFreeFall creates a free-fall mode for the given level.
func NewFreeFall(cfg FreeFallConfig) *FreeFall {
	return &FreeFall{cfg: cfg}
}

// Config returns the mode's configuration.
func (f *FreeFall) Config() FreeFallConfig {
	return f.cfg
}

func (f *FreeFall) Name() string { return "freefall" }

func (f *FreeFall) Init(w *World, _ *rand.Rand) {
	w.Bounds = f.cfg.Bounds
	w.Platforms = append([]core.Rect(nil), f.cfg.Platforms...)

	p := f.cfg.Player.entity(RolePlayer)
	p.Vel = core.Vec{}
	w.Entities.Append(p)

	f.spawnItems(w)
	for _, h := range f.cfg.Hazards {
		e := h.entity(RoleHazard)
		if e.Dir == 0 {
			e.Dir = 1
		}
		w.Entities.Append(e)
	}
}

func (f *FreeFall) spawnItems(w *World) {
	for _, it := range f.cfg.Items {
		w.Entities.Append(it.entity(RoleCollectible))
	}
}

func (f *FreeFall) Apply(w *World, a core.Action) {
	p := w.Player()
	if p == nil {
		return
	}
	switch a {
	case core.ActionLeftStart:
		p.Vel.X = -f.cfg.MoveSpeed
	case core.ActionRightStart:
		p.Vel.X = f.cfg.MoveSpeed
	case core.ActionLeftStop:
		if p.Vel.X < 0 {
			p.Vel.X = 0
		}
	case core.ActionRightStop:
		if p.Vel.X > 0 {
			p.Vel.X = 0
		}
	case core.ActionJump, core.ActionUp:
		if p.Grounded {
			p.Vel.Y = f.cfg.JumpStrength
			p.Grounded = false
		}
	}
}

func (f *FreeFall) Advance(w *World, _ *Step) {
	if p := w.Player(); p != nil {
		p.Vel.Y += f.cfg.Gravity
		p.Pos = p.Pos.Add(p.Vel)
		p.Pos.X = min(max(p.Pos.X, w.Bounds.X), w.Bounds.Right()-p.Size.X)

		p.Grounded = false
		f.land(w, p)
	}

	left := w.Bounds.X + f.cfg.PatrolMargin
	right := w.Bounds.Right() - f.cfg.PatrolMargin
	for _, h := range w.Entities.ByRole(RoleHazard) {
		h.Pos.X += h.Vel.X * h.Dir
		if h.Pos.X > right || h.Pos.X < left {
			h.Dir = -h.Dir
		}
	}
}

// land snaps a falling player onto any platform whose top band it
// entered. Only downward landings are resolved; platforms can be jumped
// through from below and walked through from the side.
func (f *FreeFall) land(w *World, p *Entity) {
	if p.Vel.Y < 0 {
		return
	}
	inset := f.cfg.LandingInset
	for _, pl := range w.Platforms {
		bottom := p.Pos.Y + p.Size.Y
		if bottom <= pl.Y || bottom >= pl.Bottom()+f.cfg.LandingTolerance {
			continue
		}
		if p.Pos.X+p.Size.X-inset <= pl.X || p.Pos.X+inset >= pl.Right() {
			continue
		}
		p.Grounded = true
		p.Vel.Y = 0
		p.Pos.Y = pl.Y - p.Size.Y
	}
}

func (f *FreeFall) Collide(w *World, s *Step) []Event {
	p := w.Player()
	if p == nil {
		return nil
	}
	if p.Pos.Y > w.Bounds.Bottom() {
		return []Event{{Kind: EventOutOfBounds, Entity: p.ID, Fatal: true}}
	}

	var events []Event
	box := p.Rect()

	taken := 0
	for _, it := range w.Entities.ByRole(RoleCollectible) {
		if it.Collected || !box.Intersects(it.Rect()) {
			continue
		}
		it.Collected = true
		taken++
		events = append(events, Event{Kind: EventCollect, Entity: it.ID, Other: p.ID, Points: it.Points})
	}
	if taken > 0 && f.cfg.RespawnDelayTicks > 0 && remaining(w) == 0 {
		s.After(f.cfg.RespawnDelayTicks, f.respawn)
	}

	if h := firstHit(w, box); h != nil {
		events = append(events, Event{Kind: EventCollide, Entity: h.ID, Other: p.ID})
	}
	return events
}

// firstHit returns the first hazard or obstacle overlapping box.
func firstHit(w *World, box core.Rect) *Entity {
	for _, e := range w.Entities.items {
		if e.Role != RoleHazard && e.Role != RoleObstacle {
			continue
		}
		if box.Intersects(e.Rect()) {
			return e
		}
	}
	return nil
}

func (f *FreeFall) respawn(w *World) {
	if w.Entities.Count(RoleCollectible) > 0 {
		return
	}
	f.spawnItems(w)
}

func remaining(w *World) int {
	n := 0
	for _, e := range w.Entities.ByRole(RoleCollectible) {
		if !e.Collected {
			n++
		}
	}
	return n
}
