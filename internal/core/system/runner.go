package system

import (
	"sort"
	"time"
)

type entry struct {
	sys      System
	interval int
	elapsed  time.Duration
}

// Runner executes systems in phase order each tick. Systems sharing a
// phase run in registration order; Periodic systems are skipped until
// their interval comes round.
type Runner struct {
	entries []*entry
	sorted  bool
	ticks   int
}

func NewRunner() *Runner {
	return &Runner{
		entries: make([]*entry, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	e := &entry{sys: s, interval: 1}
	if p, ok := s.(Periodic); ok && p.Interval() > 1 {
		e.interval = p.Interval()
	}
	r.entries = append(r.entries, e)
	r.sorted = false
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	r.ticks++
	for _, e := range r.entries {
		r.step(e, dt)
	}
}

func (r *Runner) step(e *entry, dt time.Duration) {
	e.elapsed += dt
	if r.ticks%e.interval != 0 {
		return
	}
	e.sys.Update(e.elapsed)
	e.elapsed = 0
}

// Len is the number of registered systems.
func (r *Runner) Len() int { return len(r.entries) }

// Ticks is the number of full ticks run so far.
func (r *Runner) Ticks() int { return r.ticks }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.entries, func(i, j int) bool {
			return r.entries[i].sys.Phase() < r.entries[j].sys.Phase()
		})
		r.sorted = true
	}
}
