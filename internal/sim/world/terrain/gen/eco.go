package gen

import (
	"math"

	"swarmisle/internal/sim/world/kernel/model"
)

const (
	// EcoLandThreshold is the mask level below which ecology treats a point as water.
	EcoLandThreshold = 0.35
	ecoWaterPenalty  = -2.0

	gradStep = 0.05
)

// EcoPhi is the scalar preference of type t for the terrain at (x,y).
// Outside the agent's own biome the field is flat.
func EcoPhi(t model.Type, x, y float64, seed uint32) float64 {
	m := IslandMask(x, y, seed)
	if m < EcoLandThreshold {
		return ecoWaterPenalty
	}
	if Biome(x, y, seed) != t {
		return 0
	}
	switch t {
	case model.TypeR:
		return m
	case model.TypeG:
		return 1 - 2*math.Abs(m-0.7)
	case model.TypeB:
		return 1 - 2*math.Abs(m-0.5)
	}
	return 0
}

func GradEco(t model.Type, x, y float64, seed uint32) model.Vec2 {
	return centralDiff(func(x, y float64) float64 { return EcoPhi(t, x, y, seed) }, x, y)
}

// MaskGradient points toward higher (landward) mask values.
func MaskGradient(x, y float64, seed uint32) model.Vec2 {
	return centralDiff(func(x, y float64) float64 { return IslandMask(x, y, seed) }, x, y)
}

func centralDiff(f func(x, y float64) float64, x, y float64) model.Vec2 {
	const h = gradStep
	return model.Vec2{
		X: (f(x+h, y) - f(x-h, y)) / (2 * h),
		Y: (f(x, y+h) - f(x, y-h)) / (2 * h),
	}
}
