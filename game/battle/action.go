package battle

import (
	"github.com/kasuganosora/pokebattle/resource"
)

// ActionType is what a side can do with its turn.
type ActionType string

const (
	ActionMove    ActionType = "move"
	ActionSwitch  ActionType = "switch"
	ActionForfeit ActionType = "forfeit"
)

// Action is one side's choice for a turn.
type Action struct {
	Type        ActionType `json:"type"`
	MoveIndex   int        `json:"move_index,omitempty"`
	SwitchIndex int        `json:"switch_index,omitempty"`
}

// struggleMove is the fallback when every move slot is out of PP. Typeless,
// always hits, costs the user a quarter of its max HP.
var struggleMove = &resource.Move{
	Name:     "Struggle",
	Type:     resource.Type("typeless"),
	Category: resource.CategoryPhysical,
	Power:    50,
	Accuracy: 0,
	PP:       1,
	Contact:  true,
	Effect:   resource.MoveEffect{Kind: resource.EffectDamage},
}

// validateAction checks an action's legality against the current state.
// Illegal submissions are caller errors, never silent coercions.
func (s *Session) validateAction(sideIdx int, act Action) error {
	side := s.sides[sideIdx]
	actor := side.ActiveCombatant()
	switch act.Type {
	case ActionForfeit:
		return nil
	case ActionMove:
		if !actor.HasUsableMove() {
			return nil // resolves as Struggle regardless of the index
		}
		if act.MoveIndex < 0 || act.MoveIndex >= len(actor.Moves) {
			return ErrInvalidMoveIndex
		}
		if actor.Moves[act.MoveIndex].PP <= 0 {
			return ErrNoPP
		}
		if actor.ChoiceLock != nil && actor.Moves[act.MoveIndex].Move != actor.ChoiceLock {
			return ErrChoiceLocked
		}
		return nil
	case ActionSwitch:
		if act.SwitchIndex < 0 || act.SwitchIndex >= len(side.Team) {
			return ErrInactiveCombatant
		}
		if act.SwitchIndex == side.Active || side.Team[act.SwitchIndex].Fainted() {
			return ErrInactiveCombatant
		}
		return nil
	default:
		return contractErr("action-type", "unknown action type %q", act.Type)
	}
}

// executeMove runs the full move pipeline for one actor. The actor is known
// to be on the field and able to have a turn; pre-move condition gates have
// already passed.
func (s *Session) executeMove(sideIdx int, moveIdx int) error {
	side := s.sides[sideIdx]
	foe := s.sides[1-sideIdx]
	actor := side.ActiveCombatant()
	target := foe.ActiveCombatant()

	var mv *resource.Move
	struggle := !actor.HasUsableMove()
	if struggle {
		mv = struggleMove
	} else {
		slot := &actor.Moves[moveIdx]
		slot.PP--
		mv = slot.Move
		// Choice items lock the user into its first selected move.
		if actor.ChoiceLock == nil &&
			(actor.ItemTag() == resource.ItemChoiceBand || actor.ItemTag() == resource.ItemChoiceSpecs) {
			actor.ChoiceLock = mv
		}
	}
	s.stats.PerSide[sideIdx].MovesUsed++
	s.emit(MoveUsedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Target: target.Name, Struggle: struggle})

	selfTargeted := moveTargetsSelf(mv)

	// Immunity short-circuits before any RNG is consumed.
	if !selfTargeted {
		if _, reason, immune := typeImmunity(target, mv); immune && affectedByTypeImmunity(mv) {
			s.emit(ImmuneEvent{Side: foe.ID, Target: target.Name, Move: mv.Name, Reason: reason})
			return nil
		}
	}

	if !s.accuracyCheck(actor, target, mv, selfTargeted) {
		s.emit(MissEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Target: target.Name})
		return nil
	}

	switch mv.Effect.Kind {
	case resource.EffectDamage:
		s.resolveDamagingHit(sideIdx, actor, target, mv, struggle)
	case resource.EffectFixedDamage:
		s.stats.PerSide[sideIdx].DamageDealt += s.dealDamage(1-sideIdx, target, mv.Effect.FixedAmount, DamageResult{Effectiveness: 1})
	case resource.EffectOHKO:
		s.stats.PerSide[sideIdx].DamageDealt += s.dealDamage(1-sideIdx, target, target.HP, DamageResult{Effectiveness: 1})
	case resource.EffectStatChange:
		s.applyStatChanges(sideIdx, actor, target, mv.Effect.StatChanges)
	case resource.EffectStatusInflict:
		s.resolveStatusMove(sideIdx, actor, target, mv)
	case resource.EffectHeal:
		amount := int(float64(actor.MaxHP()) * mv.Effect.HealFraction)
		healed := actor.Heal(amount)
		if healed == 0 {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "hp already full"})
			return nil
		}
		s.emit(HealEvent{Side: side.ID, Target: actor.Name, Source: mv.Name, Amount: healed, RemainingHP: actor.HP})
	case resource.EffectField:
		s.applyFieldEffect(sideIdx, actor, mv)
	case resource.EffectSwitch:
		if mv.Power > 0 {
			s.resolveDamagingHit(sideIdx, actor, target, mv, false)
		}
		if !actor.Fainted() && side.NextAble() >= 0 {
			s.performSwitch(sideIdx, side.NextAble(), true)
		}
	default:
		return contractErr("effect-kind", "move %q has unhandled effect kind %q", mv.Name, mv.Effect.Kind)
	}
	return nil
}

// affectedByTypeImmunity reports whether a type immunity blocks this move.
// Damaging moves and opposing status moves are blocked; a Ground immunity
// does not stop a non-Ground status move, but an Electric one stops Thunder
// Wave via the chart.
func affectedByTypeImmunity(mv *resource.Move) bool {
	switch mv.Effect.Kind {
	case resource.EffectDamage, resource.EffectFixedDamage, resource.EffectOHKO,
		resource.EffectSwitch, resource.EffectStatusInflict:
		return true
	}
	return false
}

// moveTargetsSelf reports whether a move's effect lands on its user.
func moveTargetsSelf(mv *resource.Move) bool {
	switch mv.Effect.Kind {
	case resource.EffectHeal, resource.EffectField:
		return true
	case resource.EffectStatChange:
		for _, sc := range mv.Effect.StatChanges {
			if !sc.Self {
				return false
			}
		}
		return true
	case resource.EffectStatusInflict:
		return mv.Effect.Volatile == resource.VolatileFocusEnergy ||
			mv.Effect.Volatile == resource.VolatileSubstitute
	}
	return false
}

func (s *Session) accuracyCheck(actor, target *Combatant, mv *resource.Move, selfTargeted bool) bool {
	if mv.Accuracy == 0 || selfTargeted {
		return true
	}
	chance := float64(mv.Accuracy) / 100.0
	if mv.Effect.Kind != resource.EffectOHKO {
		stage := actor.Stage(resource.StatAccuracy) - target.Stage(resource.StatEvasion)
		if stage > 6 {
			stage = 6
		}
		if stage < -6 {
			stage = -6
		}
		chance *= accuracyStageMultiplier(stage)
	}
	if chance > 1 {
		chance = 1
	}
	return s.rng.Float64() < chance
}

func (s *Session) resolveDamagingHit(sideIdx int, actor, target *Combatant, mv *resource.Move, struggle bool) {
	side := s.sides[sideIdx]
	foe := s.sides[1-sideIdx]

	res := computeDamage(actor, target, mv, &s.field, foe, s.rng)
	dealt := s.dealDamage(1-sideIdx, target, res.Amount, res)
	s.stats.PerSide[sideIdx].DamageDealt += dealt
	if res.Critical {
		s.stats.PerSide[sideIdx].CriticalHits++
	}

	if mv.Effect.Drain > 0 && dealt > 0 {
		healed := actor.Heal(int(float64(dealt) * mv.Effect.Drain))
		if healed > 0 {
			s.emit(HealEvent{Side: side.ID, Target: actor.Name, Source: mv.Name, Amount: healed, RemainingHP: actor.HP})
		}
	}

	if mv.Effect.Recoil > 0 && dealt > 0 && !actor.Fainted() {
		s.residualDamage(sideIdx, actor, "recoil", int(float64(dealt)*mv.Effect.Recoil))
	}
	if struggle && !actor.Fainted() {
		s.residualDamage(sideIdx, actor, "struggle", actor.MaxHP()/struggleRecoil)
	}

	if len(mv.Effect.StatChanges) > 0 {
		s.applyStatChanges(sideIdx, actor, target, mv.Effect.StatChanges)
	}

	if sec := mv.Secondary; sec != nil && dealt > 0 && !target.Fainted() {
		s.rollSecondary(sideIdx, actor, target, sec)
	}

	if mv.Contact && dealt > 0 {
		s.onContact(sideIdx, actor, target)
	}

	if actor.ItemTag() == resource.ItemLifeOrb && dealt > 0 && !actor.Fainted() {
		s.emit(ItemEvent{Side: side.ID, Target: actor.Name, Item: actor.Item.Name})
		s.residualDamage(sideIdx, actor, "life orb", actor.MaxHP()/10)
	}
}

// dealDamage applies move damage to the target on the given side index,
// running the survival hooks (Sturdy, Focus Sash), and emits the damage and
// faint events. It returns the HP actually removed.
func (s *Session) dealDamage(targetSideIdx int, target *Combatant, amount int, res DamageResult) int {
	side := s.sides[targetSideIdx]
	// A substitute soaks the hit in the target's place; the target itself
	// takes nothing, so drain, recoil and secondary riders see zero dealt.
	if target.HasVolatile(resource.VolatileSubstitute) {
		absorbed := amount
		if absorbed > target.SubstituteHP {
			absorbed = target.SubstituteHP
		}
		target.SubstituteHP -= absorbed
		broken := target.SubstituteHP <= 0
		s.emit(SubstituteDamageEvent{Side: side.ID, Target: target.Name, Amount: absorbed, Remaining: target.SubstituteHP, Broken: broken})
		if broken {
			delete(target.Volatiles, resource.VolatileSubstitute)
			s.emit(VolatileEndedEvent{Side: side.ID, Target: target.Name, Volatile: resource.VolatileSubstitute})
		}
		return 0
	}
	if amount >= target.HP && target.HP == target.MaxHP() {
		if target.AbilityTag() == resource.AbilitySturdy {
			amount = target.HP - 1
			s.emit(AbilityEvent{Side: side.ID, Target: target.Name, Ability: target.Ability.Name, Detail: "endured the hit"})
		} else if target.ItemTag() == resource.ItemFocusSash {
			amount = target.HP - 1
			s.emit(ItemEvent{Side: side.ID, Target: target.Name, Item: target.Item.Name, Consumed: true})
			target.Item = nil
		}
	}
	dealt := target.ApplyDamage(amount)
	s.emit(DamageEvent{
		Side: side.ID, Target: target.Name, Amount: dealt, RemainingHP: target.HP,
		Effectiveness: res.Effectiveness, Critical: res.Critical, STAB: res.STAB,
	})
	if target.Fainted() {
		s.emit(FaintEvent{Side: side.ID, Target: target.Name})
	}
	return dealt
}

// residualDamage applies non-move chip damage, which bypasses survival hooks.
func (s *Session) residualDamage(sideIdx int, c *Combatant, source string, amount int) {
	if amount < 1 {
		amount = 1
	}
	dealt := c.ApplyDamage(amount)
	side := s.sides[sideIdx]
	s.emit(ResidualDamageEvent{Side: side.ID, Target: c.Name, Source: source, Amount: dealt, RemainingHP: c.HP})
	if c.Fainted() {
		s.emit(FaintEvent{Side: side.ID, Target: c.Name})
	}
}

func (s *Session) applyStatChanges(sideIdx int, actor, target *Combatant, changes []resource.StatChange) {
	for _, sc := range changes {
		recipient, recvSide := target, s.sides[1-sideIdx]
		if sc.Self {
			recipient, recvSide = actor, s.sides[sideIdx]
		}
		if recipient.Fainted() {
			continue
		}
		applied := recipient.AdjustStage(sc.Stat, sc.Stages)
		s.emit(StatChangeEvent{Side: recvSide.ID, Target: recipient.Name, Stat: sc.Stat, Stages: sc.Stages, Applied: applied})
	}
}

func (s *Session) resolveStatusMove(sideIdx int, actor, target *Combatant, mv *resource.Move) {
	side := s.sides[sideIdx]
	eff := mv.Effect
	if eff.Volatile == resource.VolatileFocusEnergy {
		if actor.HasVolatile(resource.VolatileFocusEnergy) {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "already pumped"})
			return
		}
		actor.Volatiles[resource.VolatileFocusEnergy] = 0
		s.emit(VolatileAppliedEvent{Side: side.ID, Target: actor.Name, Volatile: resource.VolatileFocusEnergy})
		return
	}
	if eff.Volatile == resource.VolatileSubstitute {
		s.makeSubstitute(sideIdx, actor, mv)
		return
	}
	// A decoy blocks incoming status and volatile moves outright.
	if target.HasVolatile(resource.VolatileSubstitute) {
		s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "blocked by substitute"})
		return
	}
	if eff.Status != "" {
		if ok, reason := s.applyStatus(1-sideIdx, target, eff.Status, eff.MinTurns, eff.MaxTurns); !ok {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: reason})
		}
		return
	}
	if eff.Volatile != "" {
		if ok, reason := s.applyVolatile(1-sideIdx, target, eff.Volatile, eff.MinTurns, eff.MaxTurns); !ok {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: reason})
		}
	}
}

// makeSubstitute pays a quarter of the user's max HP for a decoy that soaks
// move damage and blocks incoming status moves until it breaks.
func (s *Session) makeSubstitute(sideIdx int, actor *Combatant, mv *resource.Move) {
	side := s.sides[sideIdx]
	if actor.HasVolatile(resource.VolatileSubstitute) {
		s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "already has a substitute"})
		return
	}
	cost := actor.MaxHP() / 4
	if cost < 1 {
		cost = 1
	}
	if actor.HP <= cost {
		s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "not enough hp"})
		return
	}
	s.residualDamage(sideIdx, actor, "substitute", cost)
	actor.Volatiles[resource.VolatileSubstitute] = 0
	actor.SubstituteHP = cost
	s.emit(VolatileAppliedEvent{Side: side.ID, Target: actor.Name, Volatile: resource.VolatileSubstitute})
}

func (s *Session) rollSecondary(sideIdx int, actor, target *Combatant, sec *resource.Secondary) {
	if s.rng.Float64() >= sec.Chance {
		return
	}
	if sec.Status != "" {
		s.applyStatus(1-sideIdx, target, sec.Status, sec.MinTurns, sec.MaxTurns)
	}
	if sec.Volatile != "" {
		s.applyVolatile(1-sideIdx, target, sec.Volatile, sec.MinTurns, sec.MaxTurns)
	}
	if len(sec.StatChanges) > 0 {
		s.applyStatChanges(sideIdx, actor, target, sec.StatChanges)
	}
}

func (s *Session) applyFieldEffect(sideIdx int, actor *Combatant, mv *resource.Move) {
	side := s.sides[sideIdx]
	foe := s.sides[1-sideIdx]
	eff := mv.Effect.Field

	if w, ok := weatherForEffect(eff); ok {
		if s.field.Weather == w {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "weather unchanged"})
			return
		}
		s.field.Weather = w
		s.field.WeatherTurns = fieldDuration
		s.emit(FieldStartEvent{Effect: eff, Turns: fieldDuration})
		return
	}
	if tr, ok := terrainForEffect(eff); ok {
		if s.field.Terrain == tr {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "terrain unchanged"})
			return
		}
		s.field.Terrain = tr
		s.field.TerrainTurns = fieldDuration
		s.emit(FieldStartEvent{Effect: eff, Turns: fieldDuration})
		return
	}
	switch eff {
	case resource.FieldReflect, resource.FieldLightScreen:
		if side.Screens[eff] > 0 {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "screen already up"})
			return
		}
		side.Screens[eff] = fieldDuration
		s.emit(FieldStartEvent{Side: side.ID, Effect: eff, Turns: fieldDuration})
	case resource.FieldStealthRock:
		if foe.Hazards[eff] > 0 {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "hazard already set"})
			return
		}
		foe.Hazards[eff] = 1
		s.emit(FieldStartEvent{Side: foe.ID, Effect: eff})
	case resource.FieldSpikes:
		if foe.Hazards[eff] >= 3 {
			s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "hazard already set"})
			return
		}
		foe.Hazards[eff]++
		s.emit(FieldStartEvent{Side: foe.ID, Effect: eff})
	default:
		// Unreachable with validated data; keep the log honest anyway.
		s.emit(MoveFailedEvent{Side: side.ID, User: actor.Name, Move: mv.Name, Reason: "nothing happened"})
	}
}

// performSwitch swaps the active combatant and runs switch-in hooks:
// Intimidate, then entry hazards.
func (s *Session) performSwitch(sideIdx, newIdx int, forced bool) {
	side := s.sides[sideIdx]
	out := side.ActiveCombatant()
	outName := ""
	if !out.Fainted() {
		out.OnSwitchOut()
		outName = out.Name
	}
	side.Active = newIdx
	in := side.ActiveCombatant()
	s.stats.PerSide[sideIdx].Switches++
	s.emit(SwitchEvent{Side: side.ID, Out: outName, In: in.Name, Forced: forced})
	s.onSwitchIn(sideIdx)
}
