package engine

import (
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/core"
)

// GridConfig describes a snake-style grid game.
type GridConfig struct {
	Cols, Rows int
	CellSize   float64 // world units per cell, used for Bounds

	Start []core.Point // initial chain, head first
	Dir   core.Point   // initial direction

	// MoveEveryTicks moves the chain once per this many ticks.
	MoveEveryTicks uint64

	FoodPoints int
	// FirstFood places the first food at a fixed cell instead of sampling.
	FirstFood *core.Point

	PlayerKind  string
	PlayerColor core.Color
	FoodKind    string
	FoodColor   core.Color
}

// Grid is the snake mode: a chain that advances one cell per move, grows on
// food and dies on walls or itself.
type Grid struct {
	cfg     GridConfig
	dir     core.Point
	next    core.Point
	spawner *CellSpawner
}

// NewGrid creates a grid mode.
func NewGrid(cfg GridConfig) *Grid {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	return &Grid{
		cfg: cfg,
		dir: cfg.Dir,
		spawner: &CellSpawner{
			Kind:   cfg.FoodKind,
			Points: cfg.FoodPoints,
			Color:  cfg.FoodColor,
		},
	}
}

// Direction returns the direction of the last move.
func (g *Grid) Direction() core.Point {
	return g.dir
}

// Requested returns the direction the next move will take.
func (g *Grid) Requested() core.Point {
	return g.next
}

func (g *Grid) Name() string { return "grid" }

func (g *Grid) Init(w *World, _ *rand.Rand) {
	w.Cols, w.Rows = g.cfg.Cols, g.cfg.Rows
	w.CellSize = g.cfg.CellSize
	w.Bounds = core.NewRect(0, 0, float64(g.cfg.Cols)*g.cfg.CellSize, float64(g.cfg.Rows)*g.cfg.CellSize)

	g.dir, g.next = g.cfg.Dir, g.cfg.Dir

	p := &Entity{
		Role:     RolePlayer,
		Kind:     g.cfg.PlayerKind,
		Color:    g.cfg.PlayerColor,
		Segments: append([]core.Point(nil), g.cfg.Start...),
	}
	if len(p.Segments) > 0 {
		p.Cell = p.Segments[0]
	}
	w.Entities.Append(p)

	if g.cfg.FirstFood != nil {
		w.Entities.Append(g.spawner.food(w, *g.cfg.FirstFood))
	}
}

func (g *Grid) Apply(_ *World, a core.Action) {
	var d core.Point
	switch a {
	case core.ActionUp:
		d = core.Point{Y: -1}
	case core.ActionDown:
		d = core.Point{Y: 1}
	case core.ActionLeftStart:
		d = core.Point{X: -1}
	case core.ActionRightStart:
		d = core.Point{X: 1}
	default:
		return
	}
	// Reversal is checked against the direction actually travelled, so two
	// quick turns within one move cannot fold the chain onto itself.
	if d.Opposite(g.dir) {
		return
	}
	g.next = d
}

func (g *Grid) Advance(w *World, s *Step) {
	every := max(g.cfg.MoveEveryTicks, 1)
	if s.Tick%every != 0 {
		return
	}
	p := w.Player()
	if p == nil || len(p.Segments) == 0 {
		return
	}

	g.dir = g.next
	head := p.Head().Add(g.dir)
	grow := foodAt(w, head) != nil

	segs := make([]core.Point, 0, len(p.Segments)+1)
	segs = append(segs, head)
	if grow {
		segs = append(segs, p.Segments...)
	} else {
		segs = append(segs, p.Segments[:len(p.Segments)-1]...)
	}
	p.Segments = segs
	p.Cell = head
}

func (g *Grid) Collide(w *World, _ *Step) []Event {
	p := w.Player()
	if p == nil || len(p.Segments) == 0 {
		return nil
	}
	head := p.Head()
	if !w.InGrid(head) {
		return []Event{{Kind: EventOutOfBounds, Entity: p.ID, Fatal: true}}
	}
	for _, seg := range p.Segments[1:] {
		if seg == head {
			return []Event{{Kind: EventCollide, Entity: p.ID, Other: p.ID}}
		}
	}
	if f := foodAt(w, head); f != nil {
		f.Collected = true
		return []Event{{Kind: EventCollect, Entity: f.ID, Other: p.ID, Points: f.Points}}
	}
	return nil
}

// Spawner implements SpawningMode.
func (g *Grid) Spawner() Spawner {
	return g.spawner
}

func foodAt(w *World, c core.Point) *Entity {
	for _, e := range w.Entities.items {
		if e.Role == RoleCollectible && !e.Collected && e.Cell == c {
			return e
		}
	}
	return nil
}
