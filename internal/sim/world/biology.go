package world

import "swarmisle/internal/sim/world/kernel/model"

// runBiology applies foraging, combat and revival in agent order.
// Earlier agents act on later ones before those get their turn; this
// ordering is part of the simulation's observable behavior.
func (e *Engine) runBiology() {
	faintedAtStart := make([]bool, len(e.agents))
	for i, a := range e.agents {
		faintedAtStart[i] = a.Status == model.StatusFainted
	}

	for i, a := range e.agents {
		switch {
		case a.Alive():
			e.forage(a)
			e.fight(a)
		case faintedAtStart[i]:
			e.recover(a)
		}
	}
}

// forage eats at most one food item: the first in list order within reach.
func (e *Engine) forage(a *model.Agent) {
	for j, f := range e.food {
		if a.Pos.Dist(f.Pos) >= e.bio.FoodRadius {
			continue
		}
		a.Heal(f.Value)
		a.Vitals.XP += e.bio.FoodXP
		e.food = append(e.food[:j], e.food[j+1:]...)
		return
	}
}

func (e *Engine) fight(att *model.Agent) {
	for _, def := range e.agents {
		if def == att || !def.Alive() || !att.Alive() {
			continue
		}
		if !model.Beats(att.Type, def.Type) {
			continue
		}
		if att.Pos.Dist(def.Pos) >= e.bio.CombatRadius {
			continue
		}
		dmg := e.damage(att)
		def.Vitals.HP -= dmg
		att.Vitals.XP += e.bio.CombatXP
		if def.Vitals.HP <= 0 {
			def.Vitals.HP = 0
			def.Status = model.StatusFainted
			att.Vitals.XP += e.bio.KnockoutXP
			e.log.Printf("tick=%d %s knocked out %s", e.tick, att.ID, def.ID)
		}
	}
}

// damage is 1 + xp/100 with the default biology.
func (e *Engine) damage(att *model.Agent) float64 {
	return e.bio.DamageBase + att.Vitals.XP*e.bio.DamagePerXP
}

// recover heals a fainted agent and walks it part of the way home.
func (e *Engine) recover(a *model.Agent) {
	a.Heal(e.bio.ReviveRegen)
	home := e.homes[a.Type]
	a.Pos = e.bounds.Clamp(a.Pos.Add(home.Sub(a.Pos).Scale(e.bio.ReviveHomePull)))
	if a.Vitals.HP >= e.bio.ReviveThreshold {
		a.Status = model.StatusAlive
		e.log.Printf("tick=%d %s revived hp=%.0f", e.tick, a.ID, a.Vitals.HP)
	}
}
