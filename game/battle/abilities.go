package battle

import "github.com/kasuganosora/pokebattle/resource"

const staticChance = 0.30

// onSwitchIn runs entry effects for the combatant that just took the field:
// its own entry ability first, then the hazards waiting for it.
func (s *Session) onSwitchIn(sideIdx int) {
	side := s.sides[sideIdx]
	foe := s.sides[1-sideIdx]
	c := side.ActiveCombatant()

	if c.AbilityTag() == resource.AbilityIntimidate {
		opp := foe.ActiveCombatant()
		if !opp.Fainted() {
			s.emit(AbilityEvent{Side: side.ID, Target: c.Name, Ability: c.Ability.Name})
			applied := opp.AdjustStage(resource.StatAttack, -1)
			s.emit(StatChangeEvent{Side: foe.ID, Target: opp.Name, Stat: resource.StatAttack, Stages: -1, Applied: applied})
		}
	}

	s.applyEntryHazards(sideIdx, c)
}

func (s *Session) applyEntryHazards(sideIdx int, c *Combatant) {
	side := s.sides[sideIdx]

	if side.Hazards[resource.FieldStealthRock] > 0 && !c.Fainted() {
		eff := resource.Effectiveness(resource.TypeRock, c.Species.Types...)
		dmg := int(float64(c.MaxHP()) / 8.0 * eff)
		if dmg > 0 {
			s.residualDamage(sideIdx, c, "stealth rock", dmg)
		}
	}

	if layers := side.Hazards[resource.FieldSpikes]; layers > 0 && !c.Fainted() && grounded(c) {
		var frac int
		switch layers {
		case 1:
			frac = 8
		case 2:
			frac = 6
		default:
			frac = 4
		}
		s.residualDamage(sideIdx, c, "spikes", c.MaxHP()/frac)
	}
}

// onContact runs the defender's contact abilities against the attacker.
func (s *Session) onContact(attackerSideIdx int, attacker, defender *Combatant) {
	if defender.AbilityTag() != resource.AbilityStatic || attacker.Fainted() {
		return
	}
	if s.rng.Float64() >= staticChance {
		return
	}
	defSide := s.sides[1-attackerSideIdx]
	if ok, _ := s.applyStatus(attackerSideIdx, attacker, resource.StatusParalyzed, 0, 0); ok {
		s.emit(AbilityEvent{Side: defSide.ID, Target: defender.Name, Ability: defender.Ability.Name, Detail: "paralyzed the attacker"})
	}
}
