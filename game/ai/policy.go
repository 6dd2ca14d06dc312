package ai

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/resource"
)

// Difficulty controls how much of the game state a policy reasons about.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Personality skews the scoring weights of a policy.
type Personality string

const (
	PersonalityAggressive    Personality = "aggressive"
	PersonalityDefensive     Personality = "defensive"
	PersonalityStrategic     Personality = "strategic"
	PersonalityBalanced      Personality = "balanced"
	PersonalityUnpredictable Personality = "unpredictable"
)

// Policy implements battle.Decider. A policy is deterministic for a given
// seed: ties break by kind (damage over status over switch) and then by the
// lowest move index; only the unpredictable personality consumes RNG.
type Policy struct {
	Difficulty  Difficulty
	Personality Personality

	rng *rand.Rand
	log *zap.Logger
}

// weights derived from the personality.
type weights struct {
	damage  float64
	status  float64
	heal    float64
	retreat float64 // switch willingness multiplier
	jitter  float64 // unpredictable noise amplitude
}

// NewPolicy validates the pairing and builds a policy.
func NewPolicy(d Difficulty, p Personality, seed int64, logger *zap.Logger) (*Policy, error) {
	if d == "normal" { // accepted alias for medium in older preset files
		d = DifficultyMedium
	}
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return nil, fmt.Errorf("ai: unknown difficulty %q", d)
	}
	switch p {
	case PersonalityAggressive, PersonalityDefensive, PersonalityStrategic, PersonalityBalanced, PersonalityUnpredictable:
	default:
		return nil, fmt.Errorf("ai: unknown personality %q", p)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Policy{
		Difficulty:  d,
		Personality: p,
		rng:         rand.New(rand.NewSource(seed)),
		log:         logger,
	}, nil
}

func (p *Policy) weights() weights {
	w := weights{damage: 1.0, status: 1.0, heal: 1.0, retreat: 1.0}
	switch p.Personality {
	case PersonalityAggressive:
		w.damage, w.status, w.heal = 1.3, 0.7, 0.6
	case PersonalityDefensive:
		w.damage, w.status, w.heal = 0.8, 1.2, 1.4
	case PersonalityStrategic:
		// Strategic trainers give up a bad matchup sooner.
		w.status, w.retreat = 1.1, 1.4
	case PersonalityUnpredictable:
		w.jitter = 0.25
	}
	return w
}

// candidate is one scored option.
type candidate struct {
	action battle.Action
	score  float64
	rank   int // tie-break: 0 damage move, 1 status move, 2 switch
	index  int // secondary tie-break
}

// ChooseAction picks the best-scoring legal option for the side.
func (p *Policy) ChooseAction(s *battle.Session, sideIdx int) battle.Action {
	side := s.SideAt(sideIdx)
	foe := s.SideAt(1 - sideIdx)
	actor := side.ActiveCombatant()
	target := foe.ActiveCombatant()

	if !actor.HasUsableMove() {
		return battle.Action{Type: battle.ActionMove}
	}

	w := p.weights()
	field := s.FieldState()
	var best *candidate

	for i, slot := range actor.Moves {
		if slot.PP <= 0 {
			continue
		}
		if actor.ChoiceLock != nil && slot.Move != actor.ChoiceLock {
			continue
		}
		c := p.scoreMove(actor, target, slot.Move, &field, foe, w)
		c.action = battle.Action{Type: battle.ActionMove, MoveIndex: i}
		c.index = i
		best = better(best, &c)
	}

	// Easy trainers never switch; the others weigh a retreat when the
	// matchup is hopeless and the bench has someone able.
	if p.Difficulty != DifficultyEasy {
		if c := p.scoreSwitch(s, sideIdx, best, w); c != nil {
			best = better(best, c)
		}
	}

	if best == nil {
		return battle.Action{Type: battle.ActionMove}
	}
	p.log.Debug("ai decision",
		zap.String("side", side.ID),
		zap.String("actor", actor.Name),
		zap.Any("action", best.action),
		zap.Float64("score", best.score))
	return best.action
}

// better keeps the higher score; ties break by rank then index, so the
// decision order is stable across runs.
func better(a, b *candidate) *candidate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.score > a.score {
		return b
	}
	if b.score == a.score {
		if b.rank < a.rank || (b.rank == a.rank && b.index < a.index) {
			return b
		}
	}
	return a
}

func (p *Policy) scoreMove(actor, target *battle.Combatant, mv *resource.Move, field *battle.Field, foeSide *battle.Side, w weights) candidate {
	var c candidate
	if mv.Category == resource.CategoryStatus {
		c.rank = 1
		c.score = p.scoreStatusMove(actor, target, mv, w)
	} else {
		c.rank = 0
		expected := battle.ExpectedDamage(actor, target, mv, field, foeSide)
		frac := expected / float64(target.HP)
		if frac > 1 {
			frac = 1
		}
		c.score = frac * w.damage
		if p.Difficulty == DifficultyHard {
			// A guaranteed KO outranks everything else.
			if expected >= float64(target.HP) {
				c.score += 0.5
			}
			c.score += secondaryValue(mv, target) * 0.3
			if mv.Priority > 0 && p.threatened(actor, target, field, foeSide) {
				c.score += 0.4
			}
		}
	}
	if w.jitter > 0 {
		c.score += p.rng.Float64() * w.jitter
	}
	return c
}

func (p *Policy) scoreStatusMove(actor, target *battle.Combatant, mv *resource.Move, w weights) float64 {
	eff := mv.Effect
	switch eff.Kind {
	case resource.EffectHeal:
		missing := 1.0 - float64(actor.HP)/float64(actor.MaxHP())
		if missing < 0.25 {
			return 0
		}
		return missing * w.heal
	case resource.EffectStatusInflict:
		if eff.Status != "" {
			if target.Status != resource.StatusHealthy {
				return 0
			}
			v := 0.45
			if eff.Status == resource.StatusAsleep || eff.Status == resource.StatusFrozen {
				v = 0.55
			}
			return v * float64(mv.Accuracy) / 100.0 * w.status
		}
		if eff.Volatile == resource.VolatileSubstitute {
			if actor.HasVolatile(eff.Volatile) || actor.HP <= actor.MaxHP()/4 {
				return 0
			}
			return 0.4 * w.status
		}
		if eff.Volatile != "" && !target.HasVolatile(eff.Volatile) {
			return 0.35 * w.status
		}
		return 0
	case resource.EffectStatChange:
		// Boosting early is worth more than boosting while dying.
		healthy := float64(actor.HP) / float64(actor.MaxHP())
		total := 0
		for _, sc := range eff.StatChanges {
			if sc.Self && actor.Stage(sc.Stat) >= 6 {
				continue
			}
			if !sc.Self && target.Stage(sc.Stat) <= -6 {
				continue
			}
			if sc.Stages < 0 {
				total -= sc.Stages
			} else {
				total += sc.Stages
			}
		}
		return float64(total) * 0.18 * healthy * w.status
	case resource.EffectField:
		return 0.3 * w.status
	}
	return 0.1
}

// secondaryValue estimates the worth of a move's rider against this target.
func secondaryValue(mv *resource.Move, target *battle.Combatant) float64 {
	sec := mv.Secondary
	if sec == nil {
		return 0
	}
	if sec.Status != "" && target.Status != resource.StatusHealthy {
		return 0
	}
	return sec.Chance
}

// threatened is the hard policy's one-ply lookahead: can the opposing
// active KO us before a normal-priority move lands?
func (p *Policy) threatened(actor, target *battle.Combatant, field *battle.Field, foeSide *battle.Side) bool {
	if battle.EffectiveStat(target, resource.StatSpeed) <= battle.EffectiveStat(actor, resource.StatSpeed) {
		return false
	}
	for _, slot := range target.Moves {
		if slot.PP <= 0 {
			continue
		}
		if battle.ExpectedDamage(target, actor, slot.Move, field, nil) >= float64(actor.HP) {
			return true
		}
	}
	return false
}

// scoreSwitch proposes the best bench member when the current matchup is
// poor. It never proposes a switch that scores below staying in.
func (p *Policy) scoreSwitch(s *battle.Session, sideIdx int, bestMove *candidate, w weights) *candidate {
	side := s.SideAt(sideIdx)
	foe := s.SideAt(1 - sideIdx)
	actor := side.ActiveCombatant()
	target := foe.ActiveCombatant()
	field := s.FieldState()

	// Retreating spends a turn; a combatant this close to fainting rarely
	// earns it back, and the replacement would face the same hit anyway.
	if float64(actor.HP) < 0.2*float64(actor.MaxHP()) {
		return nil
	}

	// Only consider retreating when our best attack is weak. Hard policies
	// judge the matchup more pessimistically and bail out of it earlier.
	threshold, discount := 0.25, 0.8
	if p.Difficulty == DifficultyHard {
		threshold, discount = 0.4, 0.9
	}
	if bestMove != nil && bestMove.rank == 0 && bestMove.score > threshold*w.damage*w.retreat {
		return nil
	}

	bestIdx, bestScore := -1, 0.0
	for i, c := range side.Team {
		if i == side.Active || c.Fainted() {
			continue
		}
		score := benchScore(c, target, &field)
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return nil
	}
	// Discount for the free hit taken on the way in.
	score := (bestScore*discount*w.damage - 0.1) * w.retreat
	if score <= 0 {
		return nil
	}
	return &candidate{
		action: battle.Action{Type: battle.ActionSwitch, SwitchIndex: bestIdx},
		score:  score,
		rank:   2,
		index:  bestIdx,
	}
}

// benchScore is the best damage fraction a bench member could put out
// against the current target.
func benchScore(c *battle.Combatant, target *battle.Combatant, field *battle.Field) float64 {
	best := 0.0
	for _, slot := range c.Moves {
		if slot.PP <= 0 {
			continue
		}
		frac := battle.ExpectedDamage(c, target, slot.Move, field, nil) / float64(target.HP)
		if frac > 1 {
			frac = 1
		}
		if frac > best {
			best = frac
		}
	}
	return best
}
