package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"swarmisle/internal/sim/world/kernel/model"
)

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

// Digest hashes everything a step reads or writes. Two engines with equal
// digests will produce equal futures.
func (e *Engine) Digest() string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, e.tick)
	digestWriteF64(h, &tmp, e.clock)
	digestWriteU64(h, &tmp, uint64(e.rng.State()))

	digestWriteU64(h, &tmp, uint64(len(e.agents)))
	for _, a := range e.agents {
		digestAgent(h, &tmp, a)
	}
	digestWriteU64(h, &tmp, uint64(len(e.food)))
	for _, f := range e.food {
		digestWriteF64(h, &tmp, f.Pos.X)
		digestWriteF64(h, &tmp, f.Pos.Y)
		digestWriteF64(h, &tmp, f.Value)
		digestWriteU64(h, &tmp, uint64(f.Biome))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func digestAgent(h hashWriter, tmp *[8]byte, a *model.Agent) {
	digestWriteU64(h, tmp, uint64(len(a.ID)))
	h.Write([]byte(a.ID))
	h.Write([]byte{0, byte(a.Type)})
	h.Write([]byte(a.Status))
	for _, v := range [...]float64{
		a.Pos.X, a.Pos.Y, a.Vel.X, a.Vel.Y,
		a.Vitals.HP, a.Vitals.MP, a.Vitals.Attack, a.Vitals.Defense, a.Vitals.XP,
	} {
		digestWriteF64(h, tmp, v)
	}
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}
