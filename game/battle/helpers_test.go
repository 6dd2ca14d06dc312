package battle

import (
	"testing"

	"github.com/kasuganosora/pokebattle/resource"
)

var testLoader = func() *resource.Loader {
	l := resource.NewLoader("")
	if err := l.Load(); err != nil {
		panic(err)
	}
	return l
}()

// testMon builds a combatant with stats derived from base stats at the
// given level, full PP, and the species' first ability.
func testMon(t *testing.T, species string, level int, moveNames ...string) *Combatant {
	t.Helper()
	sp := testLoader.SpeciesByName(species)
	if sp == nil {
		t.Fatalf("unknown species %q", species)
	}
	bs := sp.BaseStats
	stats := Stats{
		HP:        bs.HP*level/50 + level + 10,
		Attack:    bs.Attack*level/50 + 5,
		Defense:   bs.Defense*level/50 + 5,
		SpAttack:  bs.SpAttack*level/50 + 5,
		SpDefense: bs.SpDefense*level/50 + 5,
		Speed:     bs.Speed*level/50 + 5,
	}
	var moves []MoveSlot
	for _, name := range moveNames {
		mv := testLoader.MoveByName(name)
		if mv == nil {
			t.Fatalf("unknown move %q", name)
		}
		moves = append(moves, MoveSlot{Move: mv, PP: mv.PP})
	}
	var ability *resource.Ability
	if len(sp.Abilities) > 0 {
		ability = testLoader.AbilityByName(sp.Abilities[0])
	}
	c, err := NewCombatant("", sp, level, stats, moves, ability, nil)
	if err != nil {
		t.Fatalf("NewCombatant: %v", err)
	}
	return c
}

func testSide(t *testing.T, id string, team ...*Combatant) *Side {
	t.Helper()
	s, err := NewSide(id, id, team)
	if err != nil {
		t.Fatalf("NewSide: %v", err)
	}
	return s
}

func testSession(t *testing.T, seed int64, a, b *Side) *Session {
	t.Helper()
	s, err := NewSession(Config{Seed: seed}, a, b)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func submitBoth(t *testing.T, s *Session, a, b Action) {
	t.Helper()
	if err := s.SubmitAction("p1", a); err != nil {
		t.Fatalf("p1 submit: %v", err)
	}
	if err := s.SubmitAction("p2", b); err != nil {
		t.Fatalf("p2 submit: %v", err)
	}
}

func moveAction(i int) Action { return Action{Type: ActionMove, MoveIndex: i} }

// eventTypes flattens the log into type names for order assertions.
func eventTypes(events []BattleEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.EventType()
	}
	return out
}

func hasEvent(events []BattleEvent, typ string) bool {
	for _, ev := range events {
		if ev.EventType() == typ {
			return true
		}
	}
	return false
}
