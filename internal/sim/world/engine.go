package world

import (
	"fmt"
	"io"
	"log"
	"math"

	"swarmisle/internal/sim/rng"
	"swarmisle/internal/sim/tuning"
	"swarmisle/internal/sim/world/kernel/model"
)

// Engine owns one world for the length of a run. It is not safe for
// concurrent use: every mutation happens inside Step.
type Engine struct {
	phys         tuning.Physics
	bio          tuning.Biology
	bounds       model.Bounds
	terrainSeed  uint32
	ticksPerWeek int
	homes        [3]model.Vec2

	seed uint32
	rng  *rng.Mulberry32

	// agents keeps record order; combat tie-breaks depend on it.
	agents []*model.Agent
	food   []model.Food

	tick  uint64
	clock float64
	week  int

	overrides  tuning.Overrides
	log        *log.Logger
	tickLogger TickLogger
}

type Option func(*Engine)

// WithLogger routes knockout, revival and week messages to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTickLogger records one TickLogEntry after every step.
func WithTickLogger(tl TickLogger) Option {
	return func(e *Engine) { e.tickLogger = tl }
}

// Initialize validates rec, merges its config overrides over tune, seeds the
// random stream and backfills missing velocities. Nothing is built unless the
// whole record is valid.
func Initialize(rec Record, tune tuning.Tuning, opts ...Option) (*Engine, error) {
	phys := tune.Physics.Merge(rec.Meta.Config)
	tune.Physics = phys
	if err := tune.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !finite(rec.Meta.Clock) || rec.Meta.Clock < 0 {
		return nil, fmt.Errorf("%w: meta.clock must be finite and non-negative, got %v", ErrInvalidConfig, rec.Meta.Clock)
	}
	bounds := tune.Bounds.Model()

	agents, err := buildAgents(rec.Agents, bounds)
	if err != nil {
		return nil, err
	}
	food, err := buildFood(rec.Food)
	if err != nil {
		return nil, err
	}

	state := rec.Meta.Seed
	if rec.Meta.RNGState != nil {
		state = *rec.Meta.RNGState
	}

	e := &Engine{
		phys:         phys,
		bio:          tune.Biology,
		bounds:       bounds,
		terrainSeed:  tune.TerrainSeed,
		ticksPerWeek: tune.TicksPerWeek,
		homes:        homeCenters(phys.HomeRadius),
		seed:         rec.Meta.Seed,
		rng:          rng.New(state),
		agents:       agents,
		food:         food,
		tick:         rec.Meta.Tick,
		clock:        rec.Meta.Clock,
		week:         rec.Meta.Week,
		overrides:    rec.Meta.Config,
		log:          log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func buildAgents(recs []AgentRecord, bounds model.Bounds) ([]*model.Agent, error) {
	seen := make(map[string]bool, len(recs))
	out := make([]*model.Agent, 0, len(recs))
	for i, r := range recs {
		invalid := func(field string, err error) error {
			return &ValidationError{Index: i, ID: r.ID, Field: field, Err: err}
		}
		switch {
		case r.ID == "":
			return nil, invalid("id", fmt.Errorf("%w: missing id", ErrInvalidAgent))
		case seen[r.ID]:
			return nil, invalid("id", fmt.Errorf("%w: duplicate id", ErrInvalidAgent))
		case r.Type == nil:
			return nil, invalid("type", fmt.Errorf("%w: missing type", ErrInvalidAgent))
		case !r.Type.Valid():
			return nil, invalid("type", fmt.Errorf("%w %d", ErrUnknownType, int(*r.Type)))
		case r.Pos == nil:
			return nil, invalid("pos", fmt.Errorf("%w: missing position", ErrInvalidAgent))
		case !r.Pos.Finite():
			return nil, invalid("pos", fmt.Errorf("%w: non-finite position", ErrInvalidAgent))
		case r.Vel != nil && !r.Vel.Finite():
			return nil, invalid("vel", fmt.Errorf("%w: non-finite velocity", ErrInvalidAgent))
		case r.Vitals == nil || r.Vitals.HP == nil:
			return nil, invalid("vitals.hp", fmt.Errorf("%w: missing hp", ErrInvalidAgent))
		case !finite(*r.Vitals.HP):
			return nil, invalid("vitals.hp", fmt.Errorf("%w: non-finite hp", ErrInvalidAgent))
		case r.Status == "":
			return nil, invalid("status", fmt.Errorf("%w: missing status", ErrInvalidAgent))
		case !r.Status.Valid():
			return nil, invalid("status", fmt.Errorf("%w: unknown status %q", ErrInvalidAgent, r.Status))
		}
		seen[r.ID] = true

		a := &model.Agent{
			ID:     r.ID,
			Type:   *r.Type,
			Pos:    bounds.Clamp(*r.Pos),
			Status: r.Status,
			Vitals: model.Vitals{
				HP:      model.ClampHP(*r.Vitals.HP),
				MP:      r.Vitals.MP,
				Attack:  r.Vitals.Attack,
				Defense: r.Vitals.Defense,
				XP:      math.Max(0, r.Vitals.XP),
			},
		}
		if r.Vel != nil {
			a.Vel = *r.Vel
		}
		if r.Personality != nil {
			a.Personality = model.Personality{
				Bravery:        r.Personality.Bravery,
				AffinityCenter: r.Personality.AffinityCenter,
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func buildFood(recs []FoodRecord) ([]model.Food, error) {
	out := make([]model.Food, 0, len(recs))
	for i, f := range recs {
		if !f.Pos.Finite() || !finite(f.Value) {
			return nil, fmt.Errorf("food[%d]: non-finite position or value", i)
		}
		if !f.Biome.Valid() {
			return nil, fmt.Errorf("food[%d]: %w %d", i, ErrUnknownType, int(f.Biome))
		}
		out = append(out, model.Food{Pos: f.Pos, Value: f.Value, Biome: f.Biome})
	}
	return out, nil
}

// Record exports the current world, including the random stream position,
// so a run can resume bit-identically.
func (e *Engine) Record() Record {
	state := e.rng.State()
	rec := Record{
		Meta: Meta{
			Tick:     e.tick,
			Clock:    e.clock,
			Week:     e.week,
			Seed:     e.seed,
			RNGState: &state,
			Config:   e.overrides,
		},
		Agents: make([]AgentRecord, 0, len(e.agents)),
		Food:   make([]FoodRecord, 0, len(e.food)),
	}
	for _, a := range e.agents {
		rec.Agents = append(rec.Agents, agentToRecord(a))
	}
	for _, f := range e.food {
		rec.Food = append(rec.Food, FoodRecord{Pos: f.Pos, Value: f.Value, Biome: f.Biome})
	}
	return rec
}

func (e *Engine) CurrentTick() uint64          { return e.tick }
func (e *Engine) Clock() float64               { return e.clock }
func (e *Engine) Week() int                    { return e.week }
func (e *Engine) TicksPerWeek() int            { return e.ticksPerWeek }
func (e *Engine) TerrainSeed() uint32          { return e.terrainSeed }
func (e *Engine) Bounds() model.Bounds         { return e.bounds }
func (e *Engine) Physics() tuning.Physics      { return e.phys }
func (e *Engine) Home(t model.Type) model.Vec2 { return e.homes[t] }

// Agents returns copies in iteration order.
func (e *Engine) Agents() []model.Agent {
	out := make([]model.Agent, len(e.agents))
	for i, a := range e.agents {
		out[i] = *a
	}
	return out
}

func (e *Engine) Food() []model.Food {
	return append([]model.Food(nil), e.food...)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
