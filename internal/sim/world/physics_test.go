package world

import (
	"math"
	"testing"

	"swarmisle/internal/sim/tuning"
	"swarmisle/internal/sim/world/kernel/model"
	"swarmisle/internal/sim/world/terrain/gen"
)

func TestStep_BoundsInvariants(t *testing.T) {
	tune := tuning.Defaults()
	tune.Physics.Sigma = 2.5
	tune.Biology.FoodSpawnProb = 0.3
	rec := populationRecord(5, 30)
	// Start some agents in the ocean corners.
	rec.Agents[0].Pos = &model.Vec2{X: 9.9, Y: 9.9}
	rec.Agents[1].Pos = &model.Vec2{X: -9.9, Y: -9.9}
	e := mustInit(t, rec, tune)
	b := e.Bounds()

	for tick := 0; tick < 2000; tick++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
		for _, a := range e.Agents() {
			if a.Vitals.HP < 0 || a.Vitals.HP > model.MaxHP {
				t.Fatalf("tick %d: %s hp=%v", tick, a.ID, a.Vitals.HP)
			}
			if !b.Contains(a.Pos) {
				t.Fatalf("tick %d: %s out of bounds at %+v", tick, a.ID, a.Pos)
			}
			if s := a.Vel.Len(); s > tune.Physics.MaxSpeed+1e-9 {
				t.Fatalf("tick %d: %s speed %v", tick, a.ID, s)
			}
		}
	}
}

func TestIntegrate_SpeedCapKeepsDirection(t *testing.T) {
	tune := quietBiology()
	tune.Physics.Sigma = 0
	r := agentRec("a", model.TypeR, 0, 0, 100)
	r.Vel = &model.Vec2{X: 300, Y: 400}
	e := mustInit(t, Record{Agents: []AgentRecord{r}}, tune)
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	v := e.Agents()[0].Vel
	if math.Abs(v.Len()-tune.Physics.MaxSpeed) > 1e-9 {
		t.Fatalf("speed=%v want %v", v.Len(), tune.Physics.MaxSpeed)
	}
	if math.Abs(v.Y/v.X-4.0/3.0) > 0.05 {
		t.Fatalf("direction changed: %+v", v)
	}
}

func TestSpawnFood_OnlyOnClearLand(t *testing.T) {
	tune := tuning.Defaults()
	tune.Biology.FoodSpawnProb = 1
	e := mustInit(t, Record{Meta: Meta{Seed: 11}}, tune)
	for i := 0; i < 400; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	food := e.Food()
	if len(food) == 0 {
		t.Fatalf("no food spawned in 400 ticks")
	}
	if len(food) == 400 {
		t.Fatalf("every roll accepted; ocean locations should be rejected")
	}
	for _, f := range food {
		if m := gen.IslandMask(f.Pos.X, f.Pos.Y, e.TerrainSeed()); m <= tune.Biology.FoodLandThreshold {
			t.Fatalf("food at %+v has mask %v", f.Pos, m)
		}
		if f.Biome != gen.Biome(f.Pos.X, f.Pos.Y, e.TerrainSeed()) || f.Value != tune.Biology.FoodValue {
			t.Fatalf("food record %+v", f)
		}
	}
}

func TestMeanField_ExcludesNonAlive(t *testing.T) {
	rec := Record{Agents: []AgentRecord{
		agentRec("r1", model.TypeR, 2, 0, 100),
		agentRec("r2", model.TypeR, 4, 2, 100),
		agentRec("g1", model.TypeG, -6, -6, 0),
	}}
	rec.Agents[2].Status = model.StatusFainted
	e := mustInit(t, rec, quietBiology())
	mf := e.MeanField()

	if mf.ByType[model.TypeR] != (model.Vec2{X: 3, Y: 1}) {
		t.Fatalf("R centroid %+v", mf.ByType[model.TypeR])
	}
	if mf.ByType[model.TypeG] != (model.Vec2{}) || mf.Counts[model.TypeG] != 0 {
		t.Fatalf("G centroid should be origin with no alive members: %+v", mf.ByType[model.TypeG])
	}
	if mf.All != (model.Vec2{X: 3, Y: 1}) || mf.Total != 2 {
		t.Fatalf("overall %+v total=%d", mf.All, mf.Total)
	}
}

func TestComposeForce_RPSDriftDirection(t *testing.T) {
	tune := quietBiology()
	p := &tune.Physics
	p.KHome, p.KMean, p.KRot, p.EcoStrength, p.WindStrength = 0, 0, 0, 0, 0
	e := mustInit(t, Record{Agents: []AgentRecord{agentRec("r", model.TypeR, 0, 0, 100)}}, tune)

	mf := MeanField{}
	mf.ByType[model.TypeG] = model.Vec2{X: 1, Y: 0}
	mf.ByType[model.TypeB] = model.Vec2{X: 0, Y: 1}
	fr := e.composeForce(e.agents[0], mf)
	// R is driven by B-G.
	want := model.Vec2{X: -1, Y: 1}.Scale(p.RPSStrength)
	if math.Abs(fr.F.X-want.X) > 1e-12 || math.Abs(fr.F.Y-want.Y) > 1e-12 {
		t.Fatalf("force %+v want %+v", fr.F, want)
	}
	if fr.Shallow {
		t.Fatalf("center of the island flagged as shallow")
	}
}

func TestComposeForce_ShorelinePushesInland(t *testing.T) {
	tune := quietBiology()
	p := &tune.Physics
	p.KHome, p.KMean, p.KRot, p.RPSStrength, p.EcoStrength, p.WindStrength = 0, 0, 0, 0, 0, 0
	e := mustInit(t, Record{Agents: []AgentRecord{agentRec("b", model.TypeB, 9, 0, 100)}}, tune)
	fr := e.composeForce(e.agents[0], MeanField{})
	if !fr.Shallow {
		t.Fatalf("east shore should be shallow")
	}
	if fr.F.X >= 0 {
		t.Fatalf("shore force should point west, got %+v", fr.F)
	}
}

func TestComposeForce_RotationOrbitsCentroid(t *testing.T) {
	tune := quietBiology()
	p := &tune.Physics
	p.KHome, p.KMean, p.RPSStrength, p.EcoStrength, p.WindStrength = 0, 0, 0, 0, 0
	e := mustInit(t, Record{Agents: []AgentRecord{agentRec("g", model.TypeG, 1, 0, 100)}}, tune)
	fr := e.composeForce(e.agents[0], MeanField{})
	// Agent on +x of the centroid is pushed toward +y.
	if math.Abs(fr.F.X) > 1e-12 || fr.F.Y <= 0 {
		t.Fatalf("rotation force %+v", fr.F)
	}
}

func TestCrowding_DisabledByDefault(t *testing.T) {
	base := populationRecord(3, 6)
	base.Agents[1].Pos = &model.Vec2{X: base.Agents[0].Pos.X + 0.3, Y: base.Agents[0].Pos.Y}

	off := mustInit(t, base, tuning.Defaults())
	tune := tuning.Defaults()
	tune.Physics.Repulsion = 2
	on := mustInit(t, base, tune)

	mf := off.MeanField()
	f0 := off.composeForce(off.agents[0], mf).F
	f1 := on.composeForce(on.agents[0], mf).F
	if f1.X >= f0.X {
		t.Fatalf("repulsion should push agent 0 away (-x): off=%+v on=%+v", f0, f1)
	}
}

func TestRunWeek_AdvancesCounters(t *testing.T) {
	tune := tuning.Defaults()
	tune.TicksPerWeek = 25
	e := mustInit(t, populationRecord(8, 9), tune)
	sum, err := e.RunWeek()
	if err != nil {
		t.Fatalf("run week: %v", err)
	}
	if sum.Week != 1 || sum.Tick != 25 || e.Week() != 1 {
		t.Fatalf("summary %+v week=%d", sum, e.Week())
	}
	if math.Abs(sum.Clock-25*tune.Physics.DT) > 1e-9 {
		t.Fatalf("clock=%v", sum.Clock)
	}
	total := 0
	for i := range sum.Alive {
		total += sum.Alive[i] + sum.Fainted[i]
	}
	if total != 9 {
		t.Fatalf("population accounting %+v", sum)
	}
}
