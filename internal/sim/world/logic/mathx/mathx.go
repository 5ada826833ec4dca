package mathx

import "math"

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Smoothstep is the cubic ease t²(3-2t) on [0,1].
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func Sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// WrapAngle maps a to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Hash2u32 mixes a lattice coordinate and seed into a 32-bit value.
// All arithmetic wraps at 32 bits.
func Hash2u32(seed uint32, x, y int32) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
