package world

import "swarmisle/internal/sim/world/kernel/model"

// TickLogEntry is one line of the per-tick event log. Digest is taken after
// the step, so replaying from the same start must reproduce it.
type TickLogEntry struct {
	Tick    uint64  `json:"tick"`
	Clock   float64 `json:"clock"`
	Digest  string  `json:"digest"`
	Alive   [3]int  `json:"alive"`
	Fainted int     `json:"fainted"`
	Food    int     `json:"food"`
}

type TickLogger interface {
	WriteTick(TickLogEntry) error
}

func (e *Engine) tickLogEntry(tick uint64) TickLogEntry {
	entry := TickLogEntry{Tick: tick, Clock: e.clock, Digest: e.Digest(), Food: len(e.food)}
	for _, a := range e.agents {
		switch a.Status {
		case model.StatusAlive:
			entry.Alive[a.Type]++
		case model.StatusFainted:
			entry.Fainted++
		}
	}
	return entry
}
