package gen

import "swarmisle/internal/sim/world/kernel/model"

const windSeedOffset = 911

func windPotential(x, y, t float64, seed uint32) float64 {
	return FBM(0.5*x+0.05*t, 0.5*y-0.03*t, seed+windSeedOffset)
}

// Wind is the curl of a drifting noise potential, so its divergence is zero
// up to finite-difference error.
func Wind(x, y, t float64, seed uint32) model.Vec2 {
	g := centralDiff(func(x, y float64) float64 { return windPotential(x, y, t, seed) }, x, y)
	return model.Vec2{X: g.Y, Y: -g.X}
}
