package model

const MaxHP = 100

type Vitals struct {
	HP      float64
	MP      float64
	Attack  float64
	Defense float64
	XP      float64
}

// Personality is carried for extension. No force reads it.
type Personality struct {
	Bravery        float64
	AffinityCenter float64
}

type Agent struct {
	ID   string
	Type Type

	Pos Vec2
	Vel Vec2

	Vitals      Vitals
	Personality Personality
	Status      Status
}

func (a *Agent) Alive() bool { return a.Status == StatusAlive }

// Heal adds d to hp and clamps the result to [0, MaxHP].
func (a *Agent) Heal(d float64) {
	a.Vitals.HP = ClampHP(a.Vitals.HP + d)
}

func ClampHP(hp float64) float64 {
	if hp < 0 {
		return 0
	}
	if hp > MaxHP {
		return MaxHP
	}
	return hp
}

type Food struct {
	Pos   Vec2    `json:"pos"`
	Value float64 `json:"value"`
	Biome Type    `json:"biome"`
}

// Bounds is the rectangular domain agents are confined to.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{X: clamp(p.X, b.MinX, b.MaxX), Y: clamp(p.Y, b.MinY, b.MaxY)}
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
