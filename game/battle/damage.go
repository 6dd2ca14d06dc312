package battle

import (
	"math/rand"

	"github.com/kasuganosora/pokebattle/resource"
)

const (
	critMultiplier = 1.5
	baseCritChance = 1.0 / 16.0
	minDamageRoll  = 0.85
	avgDamageRoll  = 0.925 // midpoint of the uniform [0.85, 1.0] roll
	pinchThreshold = 3     // pinch abilities trigger at HP <= max/3
	pinchBoost     = 1.5
	lifeOrbBoost   = 1.3
	choiceBoost    = 1.5
	gutsBoost      = 1.5
	struggleRecoil = 4 // user loses max HP / 4
)

// stageMultiplier converts a combat stage in [-6, 6] into a stat multiplier.
func stageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// accuracyStageMultiplier converts an accuracy/evasion stage into its
// multiplier, which uses a 3-based curve instead of the 2-based stat curve.
func accuracyStageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(3+stage) / 3.0
	}
	return 3.0 / float64(3-stage)
}

// EffectiveStat returns a combatant's stat after stages, status penalties,
// ability and item modifiers. It is the single source of truth for both the
// damage formula and turn ordering.
func EffectiveStat(c *Combatant, stat resource.StatName) int {
	var base int
	switch stat {
	case resource.StatAttack:
		base = c.Stats.Attack
	case resource.StatDefense:
		base = c.Stats.Defense
	case resource.StatSpAttack:
		base = c.Stats.SpAttack
	case resource.StatSpDefense:
		base = c.Stats.SpDefense
	case resource.StatSpeed:
		base = c.Stats.Speed
	default:
		return 0
	}
	v := float64(base) * stageMultiplier(c.Stage(stat))

	switch stat {
	case resource.StatAttack:
		if c.AbilityTag() == resource.AbilityGuts && statused(c) {
			v *= gutsBoost
		} else if c.Status == resource.StatusBurned {
			v *= 0.5
		}
		if c.ItemTag() == resource.ItemChoiceBand {
			v *= choiceBoost
		}
	case resource.StatSpAttack:
		if c.ItemTag() == resource.ItemChoiceSpecs {
			v *= choiceBoost
		}
	case resource.StatSpeed:
		if c.Status == resource.StatusParalyzed {
			v *= 0.5
		}
	}
	if v < 1 {
		v = 1
	}
	return int(v)
}

func statused(c *Combatant) bool {
	return c.Status != resource.StatusHealthy && c.Status != resource.StatusFainted
}

// DamageResult carries the computed damage and the facts the event log and
// AI scoring need alongside it.
type DamageResult struct {
	Amount        int
	Effectiveness float64
	Critical      bool
	STAB          bool
}

// critChance returns the critical-hit probability for a move use. The base
// rate doubles once for a high-crit move and once for Focus Energy.
func critChance(attacker *Combatant, mv *resource.Move) float64 {
	p := baseCritChance
	if mv.HighCrit {
		p *= 2
	}
	if attacker.HasVolatile(resource.VolatileFocusEnergy) {
		p *= 2
	}
	if p > 0.5 {
		p = 0.5
	}
	return p
}

func hasSTAB(attacker *Combatant, moveType resource.Type) bool {
	for _, t := range attacker.Species.Types {
		if t == moveType {
			return true
		}
	}
	return false
}

// typeImmunity checks type-chart and ability immunities. It runs before any
// RNG so that an immune target consumes no rolls.
func typeImmunity(defender *Combatant, mv *resource.Move) (float64, string, bool) {
	if mv.Type == resource.TypeGround && defender.AbilityTag() == resource.AbilityLevitate {
		return 0, "Levitate", true
	}
	eff := resource.Effectiveness(mv.Type, defender.Species.Types...)
	if eff == 0 {
		return 0, "type", true
	}
	return eff, "", false
}

// computeDamage runs the damage formula for one hit. The caller has already
// ruled out immunity; crit and the damage roll consume RNG here, in that
// order.
func computeDamage(attacker, defender *Combatant, mv *resource.Move, field *Field, defSide *Side, rng *rand.Rand) DamageResult {
	eff := resource.Effectiveness(mv.Type, defender.Species.Types...)
	res := DamageResult{Effectiveness: eff, STAB: hasSTAB(attacker, mv.Type)}

	res.Critical = rng.Float64() < critChance(attacker, mv)
	roll := minDamageRoll + rng.Float64()*(1.0-minDamageRoll)
	res.Amount = damageAmount(attacker, defender, mv, field, defSide, res.Critical, roll)
	return res
}

// ExpectedDamage estimates a move's damage without consuming RNG: no crit,
// average damage roll. The AI scores candidate moves with it.
func ExpectedDamage(attacker, defender *Combatant, mv *resource.Move, field *Field, defSide *Side) float64 {
	if mv.Category == resource.CategoryStatus {
		return 0
	}
	if _, _, immune := typeImmunity(defender, mv); immune {
		return 0
	}
	switch mv.Effect.Kind {
	case resource.EffectFixedDamage:
		return float64(mv.Effect.FixedAmount)
	case resource.EffectOHKO:
		return float64(defender.HP)
	}
	if mv.Power <= 0 {
		return 0
	}
	return float64(damageAmount(attacker, defender, mv, field, defSide, false, avgDamageRoll))
}

func damageAmount(attacker, defender *Combatant, mv *resource.Move, field *Field, defSide *Side, crit bool, roll float64) int {
	var atk, def int
	if mv.Category == resource.CategoryPhysical {
		atk = EffectiveStat(attacker, resource.StatAttack)
		def = EffectiveStat(defender, resource.StatDefense)
	} else {
		atk = EffectiveStat(attacker, resource.StatSpAttack)
		def = EffectiveStat(defender, resource.StatSpDefense)
	}

	base := (float64(2*attacker.Level)/5.0+2.0)*float64(mv.Power)*float64(atk)/float64(def)/50.0 + 2.0

	if hasSTAB(attacker, mv.Type) {
		base *= 1.5
	}
	base *= resource.Effectiveness(mv.Type, defender.Species.Types...)
	base *= field.weatherMultiplier(mv.Type)
	base *= field.terrainMultiplier(mv.Type, grounded(attacker), grounded(defender))

	if pinchAbilityActive(attacker, mv.Type) {
		base *= pinchBoost
	}
	if attacker.ItemTag() == resource.ItemLifeOrb {
		base *= lifeOrbBoost
	}

	// Screens halve the matching category, unless the hit is critical.
	if !crit && defSide != nil {
		if mv.Category == resource.CategoryPhysical && defSide.Screens[resource.FieldReflect] > 0 {
			base *= 0.5
		}
		if mv.Category == resource.CategorySpecial && defSide.Screens[resource.FieldLightScreen] > 0 {
			base *= 0.5
		}
	}
	if crit {
		base *= critMultiplier
	}
	base *= roll

	amount := int(base)
	if amount < 1 {
		amount = 1
	}
	return amount
}

func pinchAbilityActive(c *Combatant, moveType resource.Type) bool {
	if c.HP*pinchThreshold > c.MaxHP() {
		return false
	}
	switch c.AbilityTag() {
	case resource.AbilityBlaze:
		return moveType == resource.TypeFire
	case resource.AbilityTorrent:
		return moveType == resource.TypeWater
	case resource.AbilityOvergrow:
		return moveType == resource.TypeGrass
	}
	return false
}
