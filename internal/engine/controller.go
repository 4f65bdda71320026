package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gameroom/internal/core"
)

// RunState is the controller's lifecycle state.
type RunState int

const (
	NotStarted RunState = iota
	Running
	Over
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Continuation tells the host whether to schedule another tick.
type Continuation int

const (
	Reschedule Continuation = iota
	Halt
)

// EndReason records why a run reached Over.
type EndReason string

const (
	ReasonNone        EndReason = ""
	ReasonCollision   EndReason = "collision"
	ReasonOutOfBounds EndReason = "out-of-bounds"
	ReasonStopped     EndReason = "stopped"
	ReasonSpawnFailed EndReason = "spawn-failed"
)

// Renderer draws a read-only snapshot. It is called once per running tick
// and once more when the run ends.
type Renderer interface {
	Render(snap Snapshot, score int, tick uint64)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(snap Snapshot, score int, tick uint64)

// Render implements Renderer.
func (f RendererFunc) Render(snap Snapshot, score int, tick uint64) {
	f(snap, score, tick)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the renderer invoked after every tick.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithLogger sets the logger for run lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSeed sets the RNG seed used by every subsequent Start.
func WithSeed(seed int64) Option {
	return func(c *Controller) { c.seed = seed }
}

// Controller owns one game's mutable state and drives its Mode.
// It is single-threaded: the host must not call it from multiple goroutines
// at once.
type Controller struct {
	mode     Mode
	spawner  Spawner
	renderer Renderer
	logger   *log.Logger

	seed  int64
	rng   *rand.Rand
	world *World

	state   RunState
	score   int
	tick    uint64
	runID   string
	reason  EndReason
	err     error
	pending []core.Action
	timers  timerQueue
}

// New creates a controller for mode. The controller starts in NotStarted.
func New(mode Mode, opts ...Option) *Controller {
	c := &Controller{
		mode:   mode,
		logger: log.New(io.Discard),
		state:  NotStarted,
	}
	if sm, ok := mode.(SpawningMode); ok {
		c.spawner = sm.Spawner()
	}
	for _, opt := range opts {
		opt(c)
	}
	c.world = NewWorld(core.Rect{})
	return c
}

// SetSeed changes the seed used by the next Start.
func (c *Controller) SetSeed(seed int64) {
	c.seed = seed
}

// Seed returns the seed used by the current or next run.
func (c *Controller) Seed() int64 {
	return c.seed
}

// Start begins a new run from NotStarted or Over, discarding everything the
// previous run owned. Calling Start while Running restarts the run.
func (c *Controller) Start() {
	c.runID = uuid.New().String()
	c.score = 0
	c.tick = 0
	c.reason = ReasonNone
	c.err = nil
	c.pending = c.pending[:0]
	c.timers.reset()

	c.rng = rand.New(rand.NewSource(c.seed))
	c.world = NewWorld(core.Rect{})
	c.mode.Init(c.world, c.rng)
	c.state = Running

	c.logger.Info("run started", "run_id", c.runID, "mode", c.mode.Name(), "seed", c.seed)
}

// Stop ends the current run and renders the final state once.
// It is a no-op unless Running.
func (c *Controller) Stop() {
	if c.state != Running {
		return
	}
	c.end(ReasonStopped)
	c.render()
}

// Input buffers a gameplay action for the next tick boundary.
// Actions outside a run and platform actions are ignored.
func (c *Controller) Input(a core.Action) {
	if c.state != Running || !a.IsGameplay() {
		return
	}
	c.pending = append(c.pending, a)
}

// Tick advances the run by one step and reports whether the host should
// schedule another. Ticks outside Running change nothing and return Halt.
func (c *Controller) Tick() Continuation {
	if c.state != Running {
		return Halt
	}

	c.tick++
	for _, a := range c.pending {
		c.mode.Apply(c.world, a)
	}
	c.pending = c.pending[:0]

	step := &Step{Tick: c.tick, Score: c.score, RNG: c.rng, timers: &c.timers}
	c.timers.fire(c.tick, c.world)
	c.mode.Advance(c.world, step)

	for _, ev := range c.mode.Collide(c.world, step) {
		c.apply(ev)
		if c.state != Running {
			break
		}
	}

	if c.state == Running && c.spawner != nil {
		e, err := c.spawner.MaybeSpawn(c.rng, c.world.Entities, c.world)
		switch {
		case err != nil:
			c.err = err
			c.logger.Error("spawn failed", "run_id", c.runID, "tick", c.tick, "err", err)
			c.end(ReasonSpawnFailed)
		case e != nil:
			c.world.Entities.Append(e)
		}
	}

	c.render()

	if c.state != Running {
		return Halt
	}
	return Reschedule
}

func (c *Controller) apply(ev Event) {
	switch ev.Kind {
	case EventCollect:
		c.addScore(ev.Points)
		c.world.Entities.Remove(ev.Entity)
	case EventScore:
		c.addScore(ev.Points)
	case EventCollide:
		c.end(ReasonCollision)
	case EventOutOfBounds:
		if ev.Fatal {
			c.end(ReasonOutOfBounds)
			return
		}
		c.world.Entities.Remove(ev.Entity)
	}
}

// addScore ignores negative awards so the score never decreases in a run.
func (c *Controller) addScore(points int) {
	if points > 0 {
		c.score += points
	}
}

func (c *Controller) end(reason EndReason) {
	c.state = Over
	c.reason = reason
	c.pending = c.pending[:0]
	c.timers.reset()
	c.logger.Info("run over", "run_id", c.runID, "reason", string(reason), "score", c.score, "ticks", c.tick)
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(c.Snapshot(), c.score, c.tick)
}

// Snapshot returns a deep copy of the current world.
func (c *Controller) Snapshot() Snapshot {
	s := c.world.snapshot()
	s.RunID = c.runID
	s.State = c.state
	s.Reason = c.reason
	return s
}

// World exposes the live world for hosts and tests that need to set up
// positions directly. Mutating it outside Tick bypasses the run rules.
func (c *Controller) World() *World {
	return c.world
}

// Mode returns the physics mode driven by this controller.
func (c *Controller) Mode() Mode {
	return c.mode
}

// CurrentScore returns the score of the current or last run.
func (c *Controller) CurrentScore() int {
	return c.score
}

// CurrentState returns the lifecycle state.
func (c *Controller) CurrentState() RunState {
	return c.state
}

// Ticks returns the tick count of the current or last run.
func (c *Controller) Ticks() uint64 {
	return c.tick
}

// RunID returns the identifier of the current or last run.
func (c *Controller) RunID() string {
	return c.runID
}

// EndReason returns why the last run ended.
func (c *Controller) EndReason() EndReason {
	return c.reason
}

// Err returns the configuration error that ended the run, if any.
func (c *Controller) Err() error {
	return c.err
}

// PendingTimers returns the number of scheduled one-shot timers.
func (c *Controller) PendingTimers() int {
	return c.timers.len()
}
