package engine

// timer is a one-shot callback counted in ticks.
type timer struct {
	due uint64
	fn  func(w *World)
}

// timerQueue holds a run's pending timers in scheduling order.
type timerQueue struct {
	pending []timer
}

// schedule registers fn to fire on tick now+delay. A zero delay fires on the
// next tick, never the current one.
func (q *timerQueue) schedule(now, delay uint64, fn func(w *World)) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, timer{due: now + max(delay, 1), fn: fn})
}

// fire runs every timer due at or before tick, in scheduling order.
// Timers scheduled by a firing callback wait for a later tick.
func (q *timerQueue) fire(tick uint64, w *World) int {
	if len(q.pending) == 0 {
		return 0
	}
	var due []timer
	kept := q.pending[:0:0]
	for _, t := range q.pending {
		if t.due <= tick {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	q.pending = kept
	for _, t := range due {
		t.fn(w)
	}
	return len(due)
}

func (q *timerQueue) reset() {
	q.pending = nil
}

func (q *timerQueue) len() int {
	return len(q.pending)
}
