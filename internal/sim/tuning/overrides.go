package tuning

// Overrides is the partial physics record a world snapshot may carry in
// meta.config. A nil field keeps the tuning value.
type Overrides struct {
	DT            *float64 `json:"dt,omitempty" yaml:"dt,omitempty"`
	Sigma         *float64 `json:"sigma,omitempty" yaml:"sigma,omitempty"`
	Friction      *float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
	Mass          *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`
	MaxSpeed      *float64 `json:"max_speed,omitempty" yaml:"max_speed,omitempty"`
	KHome         *float64 `json:"k_home,omitempty" yaml:"k_home,omitempty"`
	KMean         *float64 `json:"k_mean,omitempty" yaml:"k_mean,omitempty"`
	KRot          *float64 `json:"k_rot,omitempty" yaml:"k_rot,omitempty"`
	RPSStrength   *float64 `json:"rps_strength,omitempty" yaml:"rps_strength,omitempty"`
	EcoStrength   *float64 `json:"eco_strength,omitempty" yaml:"eco_strength,omitempty"`
	WindStrength  *float64 `json:"wind_strength,omitempty" yaml:"wind_strength,omitempty"`
	ShoreStrength *float64 `json:"shore_strength,omitempty" yaml:"shore_strength,omitempty"`
	Repulsion     *float64 `json:"repulsion,omitempty" yaml:"repulsion,omitempty"`
}

// Merge returns p with every non-nil override applied.
func (p Physics) Merge(o Overrides) Physics {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.DT, o.DT)
	set(&p.Sigma, o.Sigma)
	set(&p.Friction, o.Friction)
	set(&p.Mass, o.Mass)
	set(&p.MaxSpeed, o.MaxSpeed)
	set(&p.KHome, o.KHome)
	set(&p.KMean, o.KMean)
	set(&p.KRot, o.KRot)
	set(&p.RPSStrength, o.RPSStrength)
	set(&p.EcoStrength, o.EcoStrength)
	set(&p.WindStrength, o.WindStrength)
	set(&p.ShoreStrength, o.ShoreStrength)
	set(&p.Repulsion, o.Repulsion)
	return p
}
