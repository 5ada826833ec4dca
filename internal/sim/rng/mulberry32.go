// Package rng implements the world's single deterministic random stream.
//
// The generator is mulberry32: a 32-bit counter advanced by a fixed odd
// increment and finalized with xor-shifts and 32-bit multiplies. The output
// sequence for a given seed is stable across platforms and languages.
package rng

import "math"

const (
	increment = 0x6D2B79F5
	twoTo32   = 4294967296.0
)

// Mulberry32 is not safe for concurrent use. Call order is part of the
// output contract.
type Mulberry32 struct {
	state uint32
}

func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// State returns the internal counter so a run can be resumed exactly.
func (r *Mulberry32) State() uint32 { return r.state }

// Next returns a uniform value in [0,1).
func (r *Mulberry32) Next() float64 {
	r.state += increment
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / twoTo32
}

// NextGaussian returns one standard-normal draw via Box-Muller.
// A uniform of exactly 0 is redrawn so the logarithm stays finite.
func (r *Mulberry32) NextGaussian() float64 {
	u := 0.0
	for u == 0 {
		u = r.Next()
	}
	v := 0.0
	for v == 0 {
		v = r.Next()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
