package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents Phase = iota // 0: deliver last tick's membership events
	PhaseMove                // 1: move actors, membership updates emit events
	PhaseQuery               // 2: proximity queries over the settled grid
	PhaseReport              // 3: summaries and counters
)

func (p Phase) String() string {
	switch p {
	case PhaseEvents:
		return "events"
	case PhaseMove:
		return "move"
	case PhaseQuery:
		return "query"
	case PhaseReport:
		return "report"
	}
	return "phase?"
}

// System is the interface every system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Periodic is implemented by systems that only run every Interval ticks.
// The runner passes them the time elapsed since their previous run.
type Periodic interface {
	System
	Interval() int
}
