package battle

import "github.com/kasuganosora/pokebattle/resource"

const (
	fullParalysisChance = 0.25
	thawChance          = 0.20
	confusionHitChance  = 1.0 / 3.0
	confusionPower      = 40
)

// applyStatus tries to put a persistent condition on the target. Failure is
// a rule outcome, returned as (false, reason) for the caller's event.
func (s *Session) applyStatus(targetSideIdx int, target *Combatant, status resource.Status, minTurns, maxTurns int) (bool, string) {
	if target.Fainted() {
		return false, "target fainted"
	}
	if target.Status != resource.StatusHealthy {
		return false, "already has a status condition"
	}
	if reason := statusImmunity(target, status); reason != "" {
		return false, reason
	}
	if s.field.Terrain == TerrainMisty && grounded(target) {
		return false, "protected by the misty terrain"
	}
	if s.field.Terrain == TerrainElectric && grounded(target) && status == resource.StatusAsleep {
		return false, "kept awake by the electric terrain"
	}

	target.Status = status
	switch status {
	case resource.StatusAsleep:
		if minTurns <= 0 {
			minTurns = 1
		}
		if maxTurns < minTurns {
			maxTurns = minTurns + 2
		}
		target.SleepTurns = minTurns + s.rng.Intn(maxTurns-minTurns+1)
	case resource.StatusBadlyPoisoned:
		target.ToxicCounter = 0
	}
	side := s.sides[targetSideIdx]
	s.stats.PerSide[1-targetSideIdx].StatusesInflicted++
	s.emit(StatusAppliedEvent{Side: side.ID, Target: target.Name, Status: status})
	return true, ""
}

func statusImmunity(c *Combatant, status resource.Status) string {
	for _, t := range c.Species.Types {
		switch status {
		case resource.StatusBurned:
			if t == resource.TypeFire {
				return "fire types cannot be burned"
			}
		case resource.StatusParalyzed:
			if t == resource.TypeElectric {
				return "electric types cannot be paralyzed"
			}
		case resource.StatusFrozen:
			if t == resource.TypeIce {
				return "ice types cannot be frozen"
			}
		case resource.StatusPoisoned, resource.StatusBadlyPoisoned:
			if t == resource.TypePoison || t == resource.TypeSteel {
				return "target cannot be poisoned"
			}
		}
	}
	return ""
}

// applyVolatile tries to put a temporary condition on the target.
func (s *Session) applyVolatile(targetSideIdx int, target *Combatant, v resource.Volatile, minTurns, maxTurns int) (bool, string) {
	if target.Fainted() {
		return false, "target fainted"
	}
	if target.HasVolatile(v) {
		return false, "already affected"
	}
	if v == resource.VolatileLeechSeed {
		for _, t := range target.Species.Types {
			if t == resource.TypeGrass {
				return false, "grass types cannot be seeded"
			}
		}
	}
	turns := 0
	if maxTurns >= minTurns && maxTurns > 0 {
		turns = minTurns + s.rng.Intn(maxTurns-minTurns+1)
	}
	target.Volatiles[v] = turns
	side := s.sides[targetSideIdx]
	s.emit(VolatileAppliedEvent{Side: side.ID, Target: target.Name, Volatile: v})
	return true, ""
}

// preMoveCheck runs the condition gates before a move action, consuming RNG
// in a fixed order: sleep, freeze, flinch, confusion, paralysis. It returns
// false when the combatant loses its action.
func (s *Session) preMoveCheck(sideIdx int) bool {
	side := s.sides[sideIdx]
	c := side.ActiveCombatant()

	switch c.Status {
	case resource.StatusAsleep:
		if c.SleepTurns > 0 {
			c.SleepTurns--
			s.emit(ActionBlockedEvent{Side: side.ID, Target: c.Name, Reason: "asleep"})
			return false
		}
		c.Status = resource.StatusHealthy
		s.emit(StatusEndedEvent{Side: side.ID, Target: c.Name, Status: resource.StatusAsleep})
	case resource.StatusFrozen:
		if s.rng.Float64() < thawChance {
			c.Status = resource.StatusHealthy
			s.emit(StatusEndedEvent{Side: side.ID, Target: c.Name, Status: resource.StatusFrozen})
		} else {
			s.emit(ActionBlockedEvent{Side: side.ID, Target: c.Name, Reason: "frozen"})
			return false
		}
	}

	if c.HasVolatile(resource.VolatileFlinched) {
		delete(c.Volatiles, resource.VolatileFlinched)
		s.emit(ActionBlockedEvent{Side: side.ID, Target: c.Name, Reason: "flinched"})
		return false
	}

	if turns, ok := c.Volatiles[resource.VolatileConfused]; ok {
		if turns <= 1 {
			delete(c.Volatiles, resource.VolatileConfused)
			s.emit(VolatileEndedEvent{Side: side.ID, Target: c.Name, Volatile: resource.VolatileConfused})
		} else {
			c.Volatiles[resource.VolatileConfused] = turns - 1
			if s.rng.Float64() < confusionHitChance {
				dmg := confusionSelfDamage(c)
				dealt := c.ApplyDamage(dmg)
				s.emit(ConfusionSelfHitEvent{Side: side.ID, Target: c.Name, Amount: dealt, RemainingHP: c.HP})
				if c.Fainted() {
					s.emit(FaintEvent{Side: side.ID, Target: c.Name})
				}
				return false
			}
		}
	}

	if c.Status == resource.StatusParalyzed && s.rng.Float64() < fullParalysisChance {
		s.emit(ActionBlockedEvent{Side: side.ID, Target: c.Name, Reason: "paralyzed"})
		return false
	}
	return true
}

// confusionSelfDamage is a typeless 40-power physical hit against the
// combatant's own defense: no STAB, no crit, no damage roll.
func confusionSelfDamage(c *Combatant) int {
	atk := EffectiveStat(c, resource.StatAttack)
	def := EffectiveStat(c, resource.StatDefense)
	dmg := int((float64(2*c.Level)/5.0+2.0)*confusionPower*float64(atk)/float64(def)/50.0 + 2.0)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// endOfTurn runs the residual phase in fixed order: weather chip, item
// recovery, status residuals, leech seed, binding, then expiries. A faint
// stops that combatant's remaining residuals but never the other side's.
func (s *Session) endOfTurn() {
	for i := range s.sides {
		c := s.sides[i].ActiveCombatant()
		if c.Fainted() {
			continue
		}
		if (s.field.Weather == WeatherSandstorm || s.field.Weather == WeatherHail) && !immuneToWeatherChip(s.field.Weather, c) {
			s.residualDamage(i, c, string(s.field.Weather), c.MaxHP()/16)
		}
	}

	for i := range s.sides {
		c := s.sides[i].ActiveCombatant()
		if c.Fainted() {
			continue
		}
		if c.ItemTag() == resource.ItemLeftovers && c.HP < c.MaxHP() {
			healed := c.Heal(c.MaxHP() / 16)
			s.emit(HealEvent{Side: s.sides[i].ID, Target: c.Name, Source: c.Item.Name, Amount: healed, RemainingHP: c.HP})
		}
	}

	for i := range s.sides {
		c := s.sides[i].ActiveCombatant()
		if c.Fainted() {
			continue
		}
		switch c.Status {
		case resource.StatusBurned:
			s.residualDamage(i, c, "burn", c.MaxHP()/16)
		case resource.StatusPoisoned:
			s.residualDamage(i, c, "poison", c.MaxHP()/8)
		case resource.StatusBadlyPoisoned:
			c.ToxicCounter++
			s.residualDamage(i, c, "toxin", c.MaxHP()*c.ToxicCounter/16)
		}
	}

	for i := range s.sides {
		c := s.sides[i].ActiveCombatant()
		if c.Fainted() || !c.HasVolatile(resource.VolatileLeechSeed) {
			continue
		}
		drained := c.MaxHP() / 8
		s.residualDamage(i, c, "leech seed", drained)
		foe := s.sides[1-i].ActiveCombatant()
		if !foe.Fainted() {
			healed := foe.Heal(drained)
			if healed > 0 {
				s.emit(HealEvent{Side: s.sides[1-i].ID, Target: foe.Name, Source: "leech seed", Amount: healed, RemainingHP: foe.HP})
			}
		}
	}

	for i := range s.sides {
		c := s.sides[i].ActiveCombatant()
		if c.Fainted() || !c.HasVolatile(resource.VolatileBound) {
			continue
		}
		s.residualDamage(i, c, "bound", c.MaxHP()/8)
	}

	s.expireConditions()
}

func (s *Session) expireConditions() {
	for i := range s.sides {
		side := s.sides[i]
		c := side.ActiveCombatant()

		// Flinch never outlives the turn it was inflicted in.
		delete(c.Volatiles, resource.VolatileFlinched)

		if turns, ok := c.Volatiles[resource.VolatileBound]; ok {
			if turns <= 1 {
				delete(c.Volatiles, resource.VolatileBound)
				s.emit(VolatileEndedEvent{Side: side.ID, Target: c.Name, Volatile: resource.VolatileBound})
			} else {
				c.Volatiles[resource.VolatileBound] = turns - 1
			}
		}

		for _, screen := range []resource.FieldEffect{resource.FieldReflect, resource.FieldLightScreen} {
			if side.Screens[screen] > 0 {
				side.Screens[screen]--
				if side.Screens[screen] == 0 {
					s.emit(FieldEndEvent{Side: side.ID, Effect: screen})
				}
			}
		}
	}

	if s.field.Weather != WeatherNone {
		s.field.WeatherTurns--
		if s.field.WeatherTurns <= 0 {
			s.emit(FieldEndEvent{Effect: weatherEffect(s.field.Weather)})
			s.field.Weather = WeatherNone
		}
	}
	if s.field.Terrain != TerrainNone {
		s.field.TerrainTurns--
		if s.field.TerrainTurns <= 0 {
			s.emit(FieldEndEvent{Effect: terrainEffect(s.field.Terrain)})
			s.field.Terrain = TerrainNone
		}
	}
}

func weatherEffect(w Weather) resource.FieldEffect {
	switch w {
	case WeatherSun:
		return resource.FieldSun
	case WeatherRain:
		return resource.FieldRain
	case WeatherSandstorm:
		return resource.FieldSandstorm
	case WeatherHail:
		return resource.FieldHail
	}
	return ""
}

func terrainEffect(t Terrain) resource.FieldEffect {
	switch t {
	case TerrainElectric:
		return resource.FieldElectricTerrain
	case TerrainGrassy:
		return resource.FieldGrassyTerrain
	case TerrainMisty:
		return resource.FieldMistyTerrain
	case TerrainPsychic:
		return resource.FieldPsychicTerrain
	}
	return ""
}
