package world

import (
	"fmt"
	"math"
	"testing"

	"swarmisle/internal/sim/tuning"
	"swarmisle/internal/sim/world/kernel/model"
)

func ptr[T any](v T) *T { return &v }

func agentRec(id string, t model.Type, x, y, hp float64) AgentRecord {
	return AgentRecord{
		ID:     id,
		Type:   ptr(t),
		Pos:    &model.Vec2{X: x, Y: y},
		Vitals: &VitalsRecord{HP: ptr(hp)},
		Status: model.StatusAlive,
	}
}

// populationRecord scatters n agents around their homes deterministically.
func populationRecord(seed uint32, n int) Record {
	homes := homeCenters(tuning.Defaults().Physics.HomeRadius)
	rec := Record{Meta: Meta{Seed: seed}}
	for i := 0; i < n; i++ {
		typ := model.AllTypes[i%3]
		a := float64(i) * 0.7
		h := homes[typ]
		rec.Agents = append(rec.Agents, agentRec(fmt.Sprintf("A%d", i), typ, h.X+math.Cos(a), h.Y+math.Sin(a), 100))
	}
	return rec
}

func mustInit(t *testing.T, rec Record, tune tuning.Tuning) *Engine {
	t.Helper()
	e, err := Initialize(rec, tune)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return e
}

// quietBiology disables random food so biology tests see only what they place.
func quietBiology() tuning.Tuning {
	tune := tuning.Defaults()
	tune.Biology.FoodSpawnProb = 0
	return tune
}
