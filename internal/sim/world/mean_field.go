package world

import "swarmisle/internal/sim/world/kernel/model"

// MeanField is an immutable per-tick reduction over alive agents. An empty
// population yields a (0,0) centroid.
type MeanField struct {
	ByType [3]model.Vec2
	Counts [3]int
	All    model.Vec2
	Total  int
}

func (m MeanField) Centroid(t model.Type) model.Vec2 { return m.ByType[t] }

func computeMeanField(agents []*model.Agent) MeanField {
	var (
		m     MeanField
		sums  [3]model.Vec2
		total model.Vec2
	)
	for _, a := range agents {
		if !a.Alive() {
			continue
		}
		sums[a.Type] = sums[a.Type].Add(a.Pos)
		m.Counts[a.Type]++
		total = total.Add(a.Pos)
		m.Total++
	}
	for i := range sums {
		if m.Counts[i] > 0 {
			m.ByType[i] = sums[i].Scale(1 / float64(m.Counts[i]))
		}
	}
	if m.Total > 0 {
		m.All = total.Scale(1 / float64(m.Total))
	}
	return m
}

// MeanField recomputes the aggregate for the current agent state.
func (e *Engine) MeanField() MeanField { return computeMeanField(e.agents) }
