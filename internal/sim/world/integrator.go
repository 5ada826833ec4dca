package world

import (
	"math"

	"swarmisle/internal/sim/world/kernel/model"
)

// integrate advances one agent by an underdamped Langevin step. It draws
// exactly two Gaussians, x then y.
func (e *Engine) integrate(a *model.Agent, fr forceResult) {
	p := e.phys
	v := a.Vel
	if fr.Shallow {
		v = v.Scale(p.ShoreDrag)
	}

	noise := p.Sigma / p.Mass * math.Sqrt(p.DT)
	gx := e.rng.NextGaussian()
	gy := e.rng.NextGaussian()
	v.X += (-p.Friction*v.X+fr.F.X/p.Mass)*p.DT + noise*gx
	v.Y += (-p.Friction*v.Y+fr.F.Y/p.Mass)*p.DT + noise*gy

	if s := v.Len(); s > p.MaxSpeed {
		v = v.Scale(p.MaxSpeed / s)
	}
	a.Vel = v
	a.Pos = e.bounds.Clamp(a.Pos.Add(v.Scale(p.DT)))
}

func moves(a *model.Agent) bool {
	return a.Status != model.StatusFainted && a.Status != model.StatusDead
}
