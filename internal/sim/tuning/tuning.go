package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"swarmisle/internal/sim/world/kernel/model"
)

type Tuning struct {
	// TerrainSeed is kept apart from the world seed so the island stays put
	// while agent noise varies.
	TerrainSeed  uint32 `yaml:"terrain_seed"`
	TicksPerWeek int    `yaml:"ticks_per_week"`

	Bounds  Bounds  `yaml:"bounds"`
	Physics Physics `yaml:"physics"`
	Biology Biology `yaml:"biology"`
}

type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

func (b Bounds) Model() model.Bounds {
	return model.Bounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
}

type Physics struct {
	DT       float64 `yaml:"dt"`
	Sigma    float64 `yaml:"sigma"`
	Friction float64 `yaml:"friction"`
	Mass     float64 `yaml:"mass"`
	MaxSpeed float64 `yaml:"max_speed"`

	HomeRadius float64 `yaml:"home_radius"`
	KHome      float64 `yaml:"k_home"`
	KMean      float64 `yaml:"k_mean"`
	KRot       float64 `yaml:"k_rot"`

	RPSStrength   float64 `yaml:"rps_strength"`
	EcoStrength   float64 `yaml:"eco_strength"`
	WindStrength  float64 `yaml:"wind_strength"`
	ShoreStrength float64 `yaml:"shore_strength"`
	Repulsion     float64 `yaml:"repulsion"`

	ShoreThreshold float64 `yaml:"shore_threshold"`
	ShoreDrag      float64 `yaml:"shore_drag"`
}

type Biology struct {
	FoodSpawnProb     float64 `yaml:"food_spawn_prob"`
	FoodLandThreshold float64 `yaml:"food_land_threshold"`
	FoodValue         float64 `yaml:"food_value"`
	FoodRadius        float64 `yaml:"food_radius"`
	FoodXP            float64 `yaml:"food_xp"`

	CombatRadius float64 `yaml:"combat_radius"`
	DamageBase   float64 `yaml:"damage_base"`
	DamagePerXP  float64 `yaml:"damage_per_xp"`
	CombatXP     float64 `yaml:"combat_xp"`
	KnockoutXP   float64 `yaml:"knockout_xp"`

	ReviveRegen     float64 `yaml:"revive_regen"`
	ReviveThreshold float64 `yaml:"revive_threshold"`
	ReviveHomePull  float64 `yaml:"revive_home_pull"`
}

func Defaults() Tuning {
	return Tuning{
		TerrainSeed:  1337,
		TicksPerWeek: 200,
		Bounds:       Bounds{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Physics: Physics{
			DT:             0.05,
			Sigma:          0.6,
			Friction:       0.8,
			Mass:           1.0,
			MaxSpeed:       3.0,
			HomeRadius:     5.0,
			KHome:          0.15,
			KMean:          0.05,
			KRot:           0.08,
			RPSStrength:    0.12,
			EcoStrength:    0.6,
			WindStrength:   0.3,
			ShoreStrength:  3.0,
			Repulsion:      0,
			ShoreThreshold: 0.45,
			ShoreDrag:      0.85,
		},
		Biology: Biology{
			FoodSpawnProb:     0.05,
			FoodLandThreshold: 0.6,
			FoodValue:         15,
			FoodRadius:        0.6,
			FoodXP:            5,
			CombatRadius:      0.5,
			DamageBase:        1.0,
			DamagePerXP:       0.01,
			CombatXP:          1,
			KnockoutXP:        50,
			ReviveRegen:       2,
			ReviveThreshold:   30,
			ReviveHomePull:    0.05,
		},
	}
}

// Load overlays the yaml file at path onto Defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	var errs []error
	if t.TicksPerWeek <= 0 {
		errs = append(errs, fmt.Errorf("ticks_per_week must be positive, got %d", t.TicksPerWeek))
	}
	if t.Bounds.MinX >= t.Bounds.MaxX || t.Bounds.MinY >= t.Bounds.MaxY {
		errs = append(errs, fmt.Errorf("bounds are empty or inverted: %+v", t.Bounds))
	}
	errs = append(errs, t.Physics.Validate())
	if t.Biology.ReviveThreshold <= 0 || t.Biology.ReviveThreshold > model.MaxHP {
		errs = append(errs, fmt.Errorf("revive_threshold must be in (0,%d], got %v", model.MaxHP, t.Biology.ReviveThreshold))
	}
	if t.Biology.FoodSpawnProb < 0 || t.Biology.FoodSpawnProb > 1 {
		errs = append(errs, fmt.Errorf("food_spawn_prob must be in [0,1], got %v", t.Biology.FoodSpawnProb))
	}
	return errors.Join(errs...)
}

func (p Physics) Validate() error {
	var errs []error
	if p.DT <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %v", p.DT))
	}
	if p.Mass <= 0 {
		errs = append(errs, fmt.Errorf("mass must be positive, got %v", p.Mass))
	}
	if p.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max_speed must be positive, got %v", p.MaxSpeed))
	}
	if p.Sigma < 0 {
		errs = append(errs, fmt.Errorf("sigma must not be negative, got %v", p.Sigma))
	}
	if p.Friction < 0 {
		errs = append(errs, fmt.Errorf("friction must not be negative, got %v", p.Friction))
	}
	return errors.Join(errs...)
}
