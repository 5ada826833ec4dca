package world

import (
	"math"

	"swarmisle/internal/sim/world/kernel/model"
	"swarmisle/internal/sim/world/terrain/gen"
)

const (
	repulsionRange = 2.0
	repulsionMinR  = 1e-3
)

// homeCenters puts the three homes at the middle of their biome sectors.
func homeCenters(radius float64) [3]model.Vec2 {
	var out [3]model.Vec2
	for i := range out {
		a := math.Pi/3 + float64(i)*2*math.Pi/3
		out[i] = model.Vec2{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return out
}

// forceResult is the composed drift on one agent plus whether it is wading
// in shallow water and must be dragged.
type forceResult struct {
	F       model.Vec2
	Shallow bool
}

func (e *Engine) composeForce(a *model.Agent, mf MeanField) forceResult {
	p := e.phys
	pos := a.Pos
	var f model.Vec2

	f = f.Add(e.homes[a.Type].Sub(pos).Scale(p.KHome))

	f = f.Add(mf.All.Sub(pos).Scale(p.KMean))
	f = f.Add(pos.Sub(mf.All).Perp().Scale(p.KRot))

	// R is pushed by B-G, G by R-B, B by G-R.
	f = f.Add(mf.Centroid(a.Type.Predator()).Sub(mf.Centroid(a.Type.Prey())).Scale(p.RPSStrength))

	if p.EcoStrength != 0 {
		f = f.Add(gen.GradEco(a.Type, pos.X, pos.Y, e.terrainSeed).Scale(p.EcoStrength))
	}
	if p.WindStrength != 0 {
		f = f.Add(gen.Wind(pos.X, pos.Y, e.clock, e.terrainSeed).Scale(p.WindStrength))
	}
	if p.Repulsion != 0 && mf.Total > 0 {
		f = f.Add(e.crowding(a).Scale(p.Repulsion / float64(mf.Total)))
	}

	res := forceResult{}
	if mask := gen.IslandMask(pos.X, pos.Y, e.terrainSeed); mask < p.ShoreThreshold {
		deficit := (p.ShoreThreshold - mask) / p.ShoreThreshold
		inland := gen.MaskGradient(pos.X, pos.Y, e.terrainSeed).Unit()
		f = f.Add(inland.Scale(p.ShoreStrength * deficit * deficit))
		res.Shallow = true
	}
	res.F = f
	return res
}

// crowding is the short-range inverse-square push away from nearby alive agents.
func (e *Engine) crowding(a *model.Agent) model.Vec2 {
	var sum model.Vec2
	for _, o := range e.agents {
		if o == a || !o.Alive() {
			continue
		}
		r := a.Pos.Sub(o.Pos)
		d := r.Len()
		if d < repulsionMinR || d >= repulsionRange {
			continue
		}
		sum = sum.Add(r.Scale(1 / (d * d * d)))
	}
	return sum
}
