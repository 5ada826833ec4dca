// Package gen synthesizes the island terrain. Every function here is a pure
// function of its arguments; nothing is cached and nothing is shared.
package gen

import (
	"math"

	"swarmisle/internal/sim/world/logic/mathx"
)

const (
	fbmOctaves    = 4
	fbmBaseFreq   = 0.18
	fbmGain       = 0.55
	fbmLacunarity = 2.0
)

// Hash maps a lattice point to [0,1).
func Hash(ix, iy int32, seed uint32) float64 {
	return float64(mathx.Hash2u32(seed, ix, iy)) / 4294967296.0
}

// ValueNoise bilinearly blends hashed lattice corners with a smoothstep ease.
func ValueNoise(x, y, freq float64, seed uint32) float64 {
	fx, fy := x*freq, y*freq
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx := mathx.Smoothstep(fx - x0)
	ty := mathx.Smoothstep(fy - y0)
	ix, iy := int32(x0), int32(y0)

	a := Hash(ix, iy, seed)
	b := Hash(ix+1, iy, seed)
	c := Hash(ix, iy+1, seed)
	d := Hash(ix+1, iy+1, seed)
	return mathx.Lerp(mathx.Lerp(a, b, tx), mathx.Lerp(c, d, tx), ty)
}

// FBM sums four octaves of value noise and normalizes to [0,1].
func FBM(x, y float64, seed uint32) float64 {
	sum, norm := 0.0, 0.0
	amp, freq := 1.0, fbmBaseFreq
	for o := 0; o < fbmOctaves; o++ {
		sum += amp * ValueNoise(x, y, freq, seed+uint32(o)*131)
		norm += amp
		amp *= fbmGain
		freq *= fbmLacunarity
	}
	return sum / norm
}
