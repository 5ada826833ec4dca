package world

import (
	"fmt"

	"swarmisle/internal/sim/world/kernel/model"
	"swarmisle/internal/sim/world/terrain/gen"
)

// Step advances the world by one tick:
//
//  1. maybe spawn one food item on clear land
//  2. foraging, combat and revival
//  3. mean-field aggregation
//  4. force composition and Langevin integration
//  5. clock advance
//
// The world is left untouched if Step returns an error.
func (e *Engine) Step() error {
	for i, a := range e.agents {
		if !a.Type.Valid() {
			return &ValidationError{Index: i, ID: a.ID, Field: "type", Err: fmt.Errorf("%w %d", ErrUnknownType, int(a.Type))}
		}
	}

	e.spawnFood()
	e.runBiology()
	mf := computeMeanField(e.agents)
	for _, a := range e.agents {
		if !moves(a) {
			continue
		}
		e.integrate(a, e.composeForce(a, mf))
	}

	e.clock += e.phys.DT
	nowTick := e.tick
	e.tick++

	if e.tickLogger != nil {
		if err := e.tickLogger.WriteTick(e.tickLogEntry(nowTick)); err != nil {
			e.log.Printf("tick=%d tick log: %v", nowTick, err)
		}
	}
	return nil
}

// spawnFood consumes one uniform for the roll and, on success, two more for
// the location.
func (e *Engine) spawnFood() {
	if e.rng.Next() >= e.bio.FoodSpawnProb {
		return
	}
	b := e.bounds
	x := b.MinX + e.rng.Next()*(b.MaxX-b.MinX)
	y := b.MinY + e.rng.Next()*(b.MaxY-b.MinY)
	if gen.IslandMask(x, y, e.terrainSeed) <= e.bio.FoodLandThreshold {
		return
	}
	e.food = append(e.food, model.Food{
		Pos:   model.Vec2{X: x, Y: y},
		Value: e.bio.FoodValue,
		Biome: gen.Biome(x, y, e.terrainSeed),
	})
}
