package battle

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/kasuganosora/pokebattle/resource"
)

func TestSubmitActionValidation(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Pikachu", 50, "Thunderbolt"))
	b := testSide(t, "p2", testMon(t, "Blastoise", 50, "Surf"), testMon(t, "Snorlax", 50, "Tackle"))
	s := testSession(t, 1, a, b)

	if err := s.SubmitAction("p3", moveAction(0)); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("unknown side: got %v", err)
	}
	if err := s.SubmitAction("p1", moveAction(5)); !errors.Is(err, ErrInvalidMoveIndex) {
		t.Errorf("bad move index: got %v", err)
	}
	if err := s.SubmitAction("p2", Action{Type: ActionSwitch, SwitchIndex: 0}); !errors.Is(err, ErrInactiveCombatant) {
		t.Errorf("switch to active: got %v", err)
	}
	if err := s.SubmitAction("p1", moveAction(0)); err != nil {
		t.Fatalf("valid submit: %v", err)
	}
	if err := s.SubmitAction("p1", moveAction(0)); !errors.Is(err, ErrActionAlreadySet) {
		t.Errorf("double submit: got %v", err)
	}
}

func TestNoPPRejected(t *testing.T) {
	pika := testMon(t, "Pikachu", 50, "Thunderbolt", "Quick Attack")
	pika.Moves[0].PP = 0
	a := testSide(t, "p1", pika)
	b := testSide(t, "p2", testMon(t, "Snorlax", 50, "Tackle"))
	s := testSession(t, 1, a, b)

	if err := s.SubmitAction("p1", moveAction(0)); !errors.Is(err, ErrNoPP) {
		t.Errorf("empty slot: got %v", err)
	}
	if err := s.SubmitAction("p1", moveAction(1)); err != nil {
		t.Errorf("slot with PP: got %v", err)
	}
}

func TestForfeitEndsBattle(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Pikachu", 50, "Thunderbolt"))
	b := testSide(t, "p2", testMon(t, "Snorlax", 50, "Tackle"))
	s := testSession(t, 1, a, b)

	submitBoth(t, s, Action{Type: ActionForfeit}, moveAction(0))
	out := s.Outcome()
	if out == nil || out.Winner != "p2" || out.Draw {
		t.Fatalf("outcome = %+v, want p2 win", out)
	}
	if s.Phase() != PhaseFinished {
		t.Errorf("phase = %v, want finished", s.Phase())
	}
	if err := s.SubmitAction("p1", moveAction(0)); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("submit after end: got %v", err)
	}
}

func TestBothForfeitIsDraw(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Pikachu", 50, "Thunderbolt"))
	b := testSide(t, "p2", testMon(t, "Snorlax", 50, "Tackle"))
	s := testSession(t, 1, a, b)

	submitBoth(t, s, Action{Type: ActionForfeit}, Action{Type: ActionForfeit})
	out := s.Outcome()
	if out == nil || !out.Draw {
		t.Fatalf("outcome = %+v, want draw", out)
	}
}

func TestPriorityBeatsSpeed(t *testing.T) {
	slow := testMon(t, "Snorlax", 50, "Quick Attack")
	fast := testMon(t, "Alakazam", 50, "Psychic")
	s := testSession(t, 1, testSide(t, "p1", slow), testSide(t, "p2", fast))

	submitBoth(t, s, moveAction(0), moveAction(0))
	var order []string
	for _, ev := range s.Events() {
		if mu, ok := ev.(MoveUsedEvent); ok {
			order = append(order, mu.Side)
		}
	}
	if len(order) == 0 || order[0] != "p1" {
		t.Errorf("move order = %v, want p1 (Quick Attack) first", order)
	}
}

func TestSwitchResolvesBeforeMoves(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Snorlax", 50, "Tackle"), testMon(t, "Blastoise", 50, "Surf"))
	b := testSide(t, "p2", testMon(t, "Alakazam", 50, "Psychic"))
	s := testSession(t, 1, a, b)

	submitBoth(t, s, Action{Type: ActionSwitch, SwitchIndex: 1}, moveAction(0))
	types := eventTypes(s.Events())
	switchAt, moveAt := -1, -1
	for i, typ := range types {
		if typ == "switch" && switchAt == -1 && i > 2 { // skip the two lead entries
			switchAt = i
		}
		if typ == "move_used" && moveAt == -1 {
			moveAt = i
		}
	}
	if switchAt == -1 || moveAt == -1 || switchAt > moveAt {
		t.Errorf("switch at %d, move at %d; want switch first (events %v)", switchAt, moveAt, types)
	}
	// The incoming Blastoise takes the hit.
	if a.Active != 1 {
		t.Errorf("active = %d, want 1", a.Active)
	}
}

func TestFaintAutoReplacement(t *testing.T) {
	weak := testMon(t, "Pikachu", 5, "Thunderbolt")
	bench := testMon(t, "Snorlax", 50, "Tackle")
	a := testSide(t, "p1", weak, bench)
	b := testSide(t, "p2", testMon(t, "Machamp", 100, "Close Combat"))
	s := testSession(t, 7, a, b)

	submitBoth(t, s, moveAction(0), moveAction(0))
	if s.Outcome() != nil {
		t.Fatalf("battle ended early: %+v", s.Outcome())
	}
	if !hasEvent(s.Events(), "faint") {
		t.Fatal("expected a faint")
	}
	if a.Active != 1 {
		t.Errorf("active = %d, want bench member 1 sent in", a.Active)
	}
}

func TestVictoryWhenTeamDown(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Pikachu", 5, "Thunderbolt"))
	b := testSide(t, "p2", testMon(t, "Machamp", 100, "Close Combat"))
	s := testSession(t, 7, a, b)

	submitBoth(t, s, moveAction(0), moveAction(0))
	out := s.Outcome()
	if out == nil || out.Winner != "p2" {
		t.Fatalf("outcome = %+v, want p2 win", out)
	}
}

func TestRecoilDoubleFaintIsDraw(t *testing.T) {
	lax := testMon(t, "Snorlax", 50, "Double-Edge")
	pika := testMon(t, "Pikachu", 50, "Growl")
	lax.HP, pika.HP = 1, 1
	s := testSession(t, 3, testSide(t, "p1", lax), testSide(t, "p2", pika))

	// Double-Edge faints Pikachu; the recoil then faints Snorlax in the
	// same resolving phase.
	submitBoth(t, s, moveAction(0), moveAction(0))
	out := s.Outcome()
	if out == nil || !out.Draw {
		t.Fatalf("outcome = %+v, want draw", out)
	}
	if out.Winner != "" {
		t.Errorf("winner = %q, want none", out.Winner)
	}
	if s.Phase() != PhaseFinished {
		t.Errorf("phase = %v, want finished", s.Phase())
	}
}

func TestTurnLimitDraw(t *testing.T) {
	a, err := NewSide("p1", "p1", []*Combatant{testMon(t, "Snorlax", 50, "Growl")})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSide("p2", "p2", []*Combatant{testMon(t, "Blastoise", 50, "Growl")})
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(Config{Seed: 1, MaxTurns: 3}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		submitBoth(t, s, moveAction(0), moveAction(0))
	}
	out := s.Outcome()
	if out == nil || !out.Draw || out.Turns != 3 {
		t.Fatalf("outcome = %+v, want draw after 3 turns", out)
	}
}

func TestStruggleWhenOutOfPP(t *testing.T) {
	empty := testMon(t, "Snorlax", 50, "Tackle")
	empty.Moves[0].PP = 0
	a := testSide(t, "p1", empty)
	b := testSide(t, "p2", testMon(t, "Blastoise", 50, "Growl"))
	s := testSession(t, 1, a, b)

	if err := s.SubmitAction("p1", moveAction(0)); err != nil {
		t.Fatalf("struggle submit should be legal: %v", err)
	}
	if err := s.SubmitAction("p2", moveAction(0)); err != nil {
		t.Fatal(err)
	}
	var struggled bool
	for _, ev := range s.Events() {
		if mu, ok := ev.(MoveUsedEvent); ok && mu.Struggle {
			struggled = true
		}
	}
	if !struggled {
		t.Fatal("expected a Struggle use")
	}
	if empty.HP >= empty.MaxHP() {
		t.Error("struggle recoil should have cost HP")
	}
}

func TestDeterministicReplay(t *testing.T) {
	build := func() *Session {
		a := testSide(t, "p1",
			testMon(t, "Charizard", 50, "Flamethrower", "Air Slash", "Thunder Wave"),
			testMon(t, "Snorlax", 50, "Tackle"))
		b := testSide(t, "p2",
			testMon(t, "Blastoise", 50, "Surf", "Ice Beam"),
			testMon(t, "Venusaur", 50, "Energy Ball"))
		return testSession(t, 424242, a, b)
	}
	script := [][2]Action{
		{moveAction(2), moveAction(0)},
		{moveAction(0), moveAction(1)},
		{moveAction(1), moveAction(0)},
	}
	run := func() []byte {
		s := build()
		for _, turn := range script {
			if s.Phase() != PhaseAwaitingActions {
				break
			}
			submitBoth(t, s, turn[0], turn[1])
		}
		data, err := json.Marshal(s.Events())
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	if first, second := run(), run(); !reflect.DeepEqual(first, second) {
		t.Error("same seed and actions produced different event logs")
	}
}

func TestIntimidateOnEntry(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Gyarados", 50, "Waterfall"))
	opp := testMon(t, "Machamp", 50, "Close Combat")
	b := testSide(t, "p2", opp)
	s := testSession(t, 1, a, b)

	if got := opp.Stage(resource.StatAttack); got != -1 {
		t.Errorf("opponent attack stage = %d, want -1 after Intimidate", got)
	}
	if !hasEvent(s.Events(), "ability") {
		t.Error("expected an ability event for Intimidate")
	}
}

func TestRunAutoFinishes(t *testing.T) {
	a := testSide(t, "p1",
		testMon(t, "Charizard", 50, "Flamethrower", "Air Slash"),
		testMon(t, "Snorlax", 50, "Tackle"))
	b := testSide(t, "p2",
		testMon(t, "Blastoise", 50, "Surf", "Ice Beam"),
		testMon(t, "Venusaur", 50, "Energy Ball"))
	s, err := NewSession(Config{Seed: 99, MaxTurns: 100}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	first := firstMoveDecider{}
	out, err := s.RunAuto(context.Background(), [2]Decider{first, first})
	if err != nil {
		t.Fatalf("RunAuto: %v", err)
	}
	if out == nil {
		t.Fatal("no outcome")
	}
	stats := s.Stats()
	if stats.Turns != out.Turns || stats.PerSide[0].MovesUsed == 0 {
		t.Errorf("stats not tracked: %+v", stats)
	}
}

func TestEventsSince(t *testing.T) {
	a := testSide(t, "p1", testMon(t, "Snorlax", 50, "Tackle"))
	b := testSide(t, "p2", testMon(t, "Blastoise", 50, "Surf"))
	s := testSession(t, 7, a, b)
	submitBoth(t, s, moveAction(0), moveAction(0))

	all := s.Events()
	if len(all) < 3 {
		t.Fatalf("expected several events, got %d", len(all))
	}
	tail := s.EventsSince(len(all) - 2)
	if len(tail) != 2 {
		t.Fatalf("EventsSince: got %d events, want 2", len(tail))
	}
	if tail[1].EventType() != all[len(all)-1].EventType() {
		t.Errorf("tail mismatch: %s vs %s", tail[1].EventType(), all[len(all)-1].EventType())
	}
	if got := s.EventsSince(len(all) + 10); len(got) != 0 {
		t.Errorf("out-of-range EventsSince returned %d events", len(got))
	}
}

// firstMoveDecider always picks the first usable move.
type firstMoveDecider struct{}

func (firstMoveDecider) ChooseAction(s *Session, sideIdx int) Action {
	actor := s.SideAt(sideIdx).ActiveCombatant()
	for i, slot := range actor.Moves {
		if slot.PP > 0 {
			return Action{Type: ActionMove, MoveIndex: i}
		}
	}
	return Action{Type: ActionMove}
}
