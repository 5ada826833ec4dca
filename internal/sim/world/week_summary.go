package world

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"swarmisle/internal/sim/world/kernel/model"
)

// WeekSummary describes the population at the end of a narrative week.
type WeekSummary struct {
	Week  int     `json:"week"`
	Tick  uint64  `json:"tick"`
	Clock float64 `json:"clock"`

	Alive   [3]int `json:"alive"`
	Fainted [3]int `json:"fainted"`
	Food    int    `json:"food"`

	MeanHP    float64       `json:"mean_hp"`
	MeanXP    float64       `json:"mean_xp"`
	Centroids [3]model.Vec2 `json:"centroids"`
	Center    model.Vec2    `json:"center"`

	// Spread of alive agents around the overall centroid.
	MeanRadius   float64 `json:"mean_radius"`
	RadiusStdDev float64 `json:"radius_stddev"`
}

// RunWeek steps TicksPerWeek times and advances the week counter.
func (e *Engine) RunWeek() (WeekSummary, error) {
	for i := 0; i < e.ticksPerWeek; i++ {
		if err := e.Step(); err != nil {
			return WeekSummary{}, fmt.Errorf("week %d tick %d: %w", e.week, e.tick, err)
		}
	}
	e.week++
	sum := e.Summary()
	e.log.Printf("week=%d tick=%d alive=%v fainted=%v food=%d mean_hp=%.1f",
		sum.Week, sum.Tick, sum.Alive, sum.Fainted, sum.Food, sum.MeanHP)
	return sum, nil
}

func (e *Engine) Summary() WeekSummary {
	mf := computeMeanField(e.agents)
	s := WeekSummary{
		Week:      e.week,
		Tick:      e.tick,
		Clock:     e.clock,
		Food:      len(e.food),
		Centroids: mf.ByType,
		Center:    mf.All,
	}
	hp := make([]float64, 0, len(e.agents))
	xp := make([]float64, 0, len(e.agents))
	radii := make([]float64, 0, len(e.agents))
	for _, a := range e.agents {
		switch a.Status {
		case model.StatusAlive:
			s.Alive[a.Type]++
			radii = append(radii, a.Pos.Dist(mf.All))
		case model.StatusFainted:
			s.Fainted[a.Type]++
		}
		hp = append(hp, a.Vitals.HP)
		xp = append(xp, a.Vitals.XP)
	}
	if len(hp) > 0 {
		s.MeanHP = stat.Mean(hp, nil)
		s.MeanXP = stat.Mean(xp, nil)
	}
	switch {
	case len(radii) >= 2:
		s.MeanRadius, s.RadiusStdDev = stat.MeanStdDev(radii, nil)
	case len(radii) == 1:
		s.MeanRadius = radii[0]
	}
	return s
}
