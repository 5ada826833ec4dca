package world

import (
	"swarmisle/internal/sim/tuning"
	"swarmisle/internal/sim/world/kernel/model"
)

// Record is the plain world document the engine accepts and returns.
// Pointer fields distinguish "absent" from zero so validation can reject
// missing load-bearing fields.
type Record struct {
	Meta   Meta          `json:"meta"`
	Agents []AgentRecord `json:"agents"`
	Food   []FoodRecord  `json:"food,omitempty"`
}

type Meta struct {
	Tick  uint64  `json:"tick"`
	Clock float64 `json:"clock"`
	Week  int     `json:"week"`
	Seed  uint32  `json:"seed"`

	// RNGState resumes the random stream mid-run. Absent means start from Seed.
	RNGState *uint32 `json:"rng_state,omitempty"`

	Config tuning.Overrides `json:"config"`
}

type AgentRecord struct {
	ID          string             `json:"id"`
	Type        *model.Type        `json:"type"`
	Pos         *model.Vec2        `json:"pos"`
	Vel         *model.Vec2        `json:"vel,omitempty"`
	Vitals      *VitalsRecord      `json:"vitals"`
	Personality *PersonalityRecord `json:"personality,omitempty"`
	Status      model.Status       `json:"status"`
}

type VitalsRecord struct {
	HP      *float64 `json:"hp"`
	MP      float64  `json:"mp"`
	Attack  float64  `json:"attack"`
	Defense float64  `json:"defense"`
	XP      float64  `json:"xp"`
}

type PersonalityRecord struct {
	Bravery        float64 `json:"bravery"`
	AffinityCenter float64 `json:"affinity_center"`
}

type FoodRecord struct {
	Pos   model.Vec2 `json:"pos"`
	Value float64    `json:"value"`
	Biome model.Type `json:"biome"`
}

func agentToRecord(a *model.Agent) AgentRecord {
	typ := a.Type
	pos, vel := a.Pos, a.Vel
	hp := a.Vitals.HP
	return AgentRecord{
		ID:   a.ID,
		Type: &typ,
		Pos:  &pos,
		Vel:  &vel,
		Vitals: &VitalsRecord{
			HP:      &hp,
			MP:      a.Vitals.MP,
			Attack:  a.Vitals.Attack,
			Defense: a.Vitals.Defense,
			XP:      a.Vitals.XP,
		},
		Personality: &PersonalityRecord{
			Bravery:        a.Personality.Bravery,
			AffinityCenter: a.Personality.AffinityCenter,
		},
		Status: a.Status,
	}
}
