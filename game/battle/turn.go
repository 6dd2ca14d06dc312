package battle

import "github.com/kasuganosora/pokebattle/resource"

// actionOrder decides which side acts first this turn. Switches always beat
// moves; among moves, higher priority first, then higher effective speed,
// then a coin flip. Exactly two sides makes this a pairwise decision.
func (s *Session) actionOrder(actions [2]Action) [2]int {
	first := 0
	a, b := actions[0], actions[1]

	switch {
	case a.Type == ActionSwitch && b.Type != ActionSwitch:
		first = 0
	case b.Type == ActionSwitch && a.Type != ActionSwitch:
		first = 1
	default:
		pa, pb := s.actionPriority(0, a), s.actionPriority(1, b)
		switch {
		case pa > pb:
			first = 0
		case pb > pa:
			first = 1
		default:
			sa := EffectiveStat(s.sides[0].ActiveCombatant(), resource.StatSpeed)
			sb := EffectiveStat(s.sides[1].ActiveCombatant(), resource.StatSpeed)
			switch {
			case sa > sb:
				first = 0
			case sb > sa:
				first = 1
			default:
				first = s.rng.Intn(2)
			}
		}
	}
	return [2]int{first, 1 - first}
}

func (s *Session) actionPriority(sideIdx int, act Action) int {
	if act.Type != ActionMove {
		return 0
	}
	actor := s.sides[sideIdx].ActiveCombatant()
	if !actor.HasUsableMove() {
		return struggleMove.Priority
	}
	if act.MoveIndex < 0 || act.MoveIndex >= len(actor.Moves) {
		return 0
	}
	return actor.Moves[act.MoveIndex].Move.Priority
}
