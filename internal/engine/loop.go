package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

// inboxSize bounds buffered input between producers and the loop goroutine.
const inboxSize = 64

// Loop drives a Controller from a single goroutine: one ticker, one input
// inbox and a context for cancellation. It is the headless counterpart of
// the Bubble Tea host.
type Loop struct {
	ctrl     *Controller
	interval time.Duration
	inbox    chan core.Action

	// MaxTicks stops the run after this many ticks. Zero means no limit.
	MaxTicks uint64
	// BeforeTick runs on the loop goroutine right before tick n executes.
	// Inputs given to the controller here apply on tick n.
	BeforeTick func(c *Controller, n uint64)
}

// NewLoop creates a loop ticking tickRate times per second.
// A tickRate of zero or less runs ticks back to back.
func NewLoop(ctrl *Controller, tickRate int) *Loop {
	var interval time.Duration
	if tickRate > 0 {
		interval = time.Second / time.Duration(tickRate)
	}
	return &Loop{
		ctrl:     ctrl,
		interval: interval,
		inbox:    make(chan core.Action, inboxSize),
	}
}

// Send queues an action for the loop goroutine without blocking.
// It reports false when the inbox is full and the action was dropped.
func (l *Loop) Send(a core.Action) bool {
	select {
	case l.inbox <- a:
		return true
	default:
		return false
	}
}

// Run starts a run if none is active and ticks it until the run ends,
// MaxTicks is reached or ctx is cancelled. Cancellation stops the run and
// returns ctx.Err(); a run that ends on its own returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if l.ctrl.CurrentState() != Running {
		l.ctrl.Start()
	}

	if l.interval == 0 {
		for {
			select {
			case <-ctx.Done():
				l.ctrl.Stop()
				return ctx.Err()
			default:
			}
			l.drain()
			if l.step() {
				return nil
			}
		}
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.ctrl.Stop()
			return ctx.Err()
		case a := <-l.inbox:
			l.ctrl.Input(a)
		case <-ticker.C:
			if l.step() {
				return nil
			}
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case a := <-l.inbox:
			l.ctrl.Input(a)
		default:
			return
		}
	}
}

// step runs one tick and reports whether the loop should exit.
func (l *Loop) step() bool {
	if l.BeforeTick != nil {
		l.BeforeTick(l.ctrl, l.ctrl.Ticks()+1)
	}
	if l.ctrl.Tick() == Halt {
		return true
	}
	if l.MaxTicks > 0 && l.ctrl.Ticks() >= l.MaxTicks {
		l.ctrl.Stop()
		return true
	}
	return false
}
