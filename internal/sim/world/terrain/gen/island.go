package gen

import (
	"fmt"
	"math"

	"swarmisle/internal/sim/world/kernel/model"
	"swarmisle/internal/sim/world/logic/mathx"
)

// IslandRadius is the distance at which the radial falloff is normalized.
const IslandRadius = 10.0

// IslandMask is 0 over open ocean and 1 in the land interior.
func IslandMask(x, y float64, seed uint32) float64 {
	r := math.Hypot(x, y) / IslandRadius
	radial := math.Exp(-1.6 * r * r)
	shape := FBM(x, y, seed)
	ridge := FBM(2.3*x+17, 2.3*y-9, seed+101)
	v := 1.15*radial + 0.7*(shape-0.5) + 0.25*(ridge-0.5) - 0.35
	return mathx.Clamp01(mathx.Sigmoid(8 * v))
}

// Biome splits the plane into three 120° sectors (R, G, B counter-clockwise
// from the +x axis) whose edges are bent by a low-frequency wobble.
func Biome(x, y float64, seed uint32) model.Type {
	wobble := 1.2 * (FBM(0.7*x+31, 0.7*y-47, seed+7) - 0.5)
	a := mathx.WrapAngle(math.Atan2(y, x) + wobble)
	sector := int(a / (2 * math.Pi / 3))
	if sector > 2 {
		sector = 2
	}
	return model.AllTypes[sector]
}

type Color struct {
	R, G, B uint8
}

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// TerrainColor is for renderers only. No simulation rule reads it.
func TerrainColor(mask, x, y float64, seed uint32) Color {
	switch {
	case mask < 0.3:
		k := mask / 0.3
		return rgb(15+25*k, 45+50*k, 110+60*k)
	case mask < 0.45:
		return rgb(50, 120, 185)
	case mask < 0.5:
		return rgb(222, 206, 150)
	}
	shade := 0.85 + 0.3*(ValueNoise(x, y, 1.1, seed+577)-0.5)
	h := (mask - 0.5) / 0.5
	switch Biome(x, y, seed) {
	case model.TypeR:
		return rgb((140+90*h)*shade, (90+20*h)*shade, 70*shade)
	case model.TypeG:
		return rgb(55*shade, (115+95*h)*shade, (55+15*h)*shade)
	default:
		return rgb(70*shade, (110+30*h)*shade, (135+85*h)*shade)
	}
}

func rgb(r, g, b float64) Color {
	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

type Sample struct {
	Mask  float64
	Biome model.Type
	Color Color
}

func SampleAt(x, y float64, seed uint32) Sample {
	m := IslandMask(x, y, seed)
	return Sample{Mask: m, Biome: Biome(x, y, seed), Color: TerrainColor(m, x, y, seed)}
}
