package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/resource"
)

func testLoader(t *testing.T) *resource.Loader {
	t.Helper()
	l := resource.NewLoader("")
	require.NoError(t, l.Load())
	return l
}

func member(species string, level int, moves ...string) PresetMember {
	return PresetMember{Species: species, Level: level, Moves: moves}
}

func buildSide(t *testing.T, l *resource.Loader, id string, members ...PresetMember) *battle.Side {
	t.Helper()
	team := make([]*battle.Combatant, 0, len(members))
	for _, m := range members {
		c, err := BuildCombatant(l, m)
		require.NoError(t, err)
		team = append(team, c)
	}
	side, err := battle.NewSide(id, id, team)
	require.NoError(t, err)
	return side
}

func TestNewPolicyValidation(t *testing.T) {
	_, err := NewPolicy("brutal", PersonalityBalanced, 1, nil)
	assert.Error(t, err)
	_, err = NewPolicy(DifficultyEasy, "moody", 1, nil)
	assert.Error(t, err)
	p, err := NewPolicy(DifficultyHard, PersonalityAggressive, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p.Difficulty)

	p, err = NewPolicy(DifficultyHard, PersonalityStrategic, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, PersonalityStrategic, p.Personality)
}

func TestNewPolicyAcceptsNormalAlias(t *testing.T) {
	p, err := NewPolicy("normal", PersonalityBalanced, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, p.Difficulty)
}

func TestPolicyPrefersEffectiveMove(t *testing.T) {
	l := testLoader(t)
	a := buildSide(t, l, "p1", member("Blastoise", 50, "Surf", "Tackle"))
	b := buildSide(t, l, "p2", member("Charizard", 50, "Flamethrower"))
	s, err := battle.NewSession(battle.Config{Seed: 1}, a, b)
	require.NoError(t, err)

	p, err := NewPolicy(DifficultyEasy, PersonalityBalanced, 1, nil)
	require.NoError(t, err)
	act := p.ChooseAction(s, 0)
	assert.Equal(t, battle.ActionMove, act.Type)
	assert.Equal(t, 0, act.MoveIndex, "Surf is super effective and stronger than Tackle")
}

func TestPolicyAvoidsImmuneMove(t *testing.T) {
	l := testLoader(t)
	a := buildSide(t, l, "p1", member("Pikachu", 50, "Thunderbolt", "Quick Attack"))
	b := buildSide(t, l, "p2", member("Steelix", 50, "Iron Head"))
	s, err := battle.NewSession(battle.Config{Seed: 1}, a, b)
	require.NoError(t, err)

	p, err := NewPolicy(DifficultyMedium, PersonalityAggressive, 1, nil)
	require.NoError(t, err)
	act := p.ChooseAction(s, 0)
	if act.Type == battle.ActionMove {
		assert.Equal(t, 1, act.MoveIndex, "Thunderbolt cannot touch a Ground type")
	}
}

func TestEasyNeverSwitches(t *testing.T) {
	l := testLoader(t)
	// Pikachu into Steelix is hopeless, with a strong bench available.
	a := buildSide(t, l, "p1",
		member("Pikachu", 50, "Thunderbolt"),
		member("Blastoise", 50, "Surf"))
	b := buildSide(t, l, "p2", member("Steelix", 50, "Iron Head"))
	s, err := battle.NewSession(battle.Config{Seed: 1}, a, b)
	require.NoError(t, err)

	easy, err := NewPolicy(DifficultyEasy, PersonalityBalanced, 1, nil)
	require.NoError(t, err)
	assert.NotEqual(t, battle.ActionSwitch, easy.ChooseAction(s, 0).Type)

	medium, err := NewPolicy(DifficultyMedium, PersonalityBalanced, 1, nil)
	require.NoError(t, err)
	act := medium.ChooseAction(s, 0)
	assert.Equal(t, battle.ActionSwitch, act.Type, "medium should retreat to Blastoise")
	assert.Equal(t, 1, act.SwitchIndex)
}

// disadvantagedSession puts a resisted Normal attacker in front of a bulky
// Steel wall, with a strong Water bench option waiting.
func disadvantagedSession(t *testing.T, l *resource.Loader, seed int64) *battle.Session {
	t.Helper()
	a := buildSide(t, l, "p1",
		member("Pikachu", 50, "Quick Attack"),
		member("Blastoise", 50, "Surf"))
	b := buildSide(t, l, "p2", member("Steelix", 50, "Iron Head"))
	s, err := battle.NewSession(battle.Config{Seed: seed}, a, b)
	require.NoError(t, err)
	return s
}

func TestHardSwitchesMoreOftenUnderDisadvantage(t *testing.T) {
	l := testLoader(t)
	easy, err := NewPolicy(DifficultyEasy, PersonalityBalanced, 3, nil)
	require.NoError(t, err)
	medium, err := NewPolicy(DifficultyMedium, PersonalityBalanced, 3, nil)
	require.NoError(t, err)
	hard, err := NewPolicy(DifficultyHard, PersonalityBalanced, 3, nil)
	require.NoError(t, err)

	const trials = 40
	var easySwitches, mediumSwitches, hardSwitches int
	for i := 0; i < trials; i++ {
		s := disadvantagedSession(t, l, int64(i+1))
		// Sweep the wall's remaining HP so the matchup ranges from
		// hopeless to nearly won.
		wall := s.SideAt(1).ActiveCombatant()
		wall.HP = 1 + i*wall.MaxHP()/(2*trials)
		if easy.ChooseAction(s, 0).Type == battle.ActionSwitch {
			easySwitches++
		}
		if medium.ChooseAction(s, 0).Type == battle.ActionSwitch {
			mediumSwitches++
		}
		if hard.ChooseAction(s, 0).Type == battle.ActionSwitch {
			hardSwitches++
		}
	}
	assert.Zero(t, easySwitches, "easy never switches")
	assert.Positive(t, mediumSwitches)
	assert.Greater(t, hardSwitches, mediumSwitches, "hard should give up a bad matchup earlier")
}

func TestStrategicSwitchesMoreOftenThanBalanced(t *testing.T) {
	l := testLoader(t)
	balanced, err := NewPolicy(DifficultyMedium, PersonalityBalanced, 3, nil)
	require.NoError(t, err)
	strategic, err := NewPolicy(DifficultyMedium, PersonalityStrategic, 3, nil)
	require.NoError(t, err)

	const trials = 40
	var balancedSwitches, strategicSwitches int
	for i := 0; i < trials; i++ {
		s := disadvantagedSession(t, l, int64(i+1))
		wall := s.SideAt(1).ActiveCombatant()
		wall.HP = 1 + i*wall.MaxHP()/(2*trials)
		if balanced.ChooseAction(s, 0).Type == battle.ActionSwitch {
			balancedSwitches++
		}
		if strategic.ChooseAction(s, 0).Type == battle.ActionSwitch {
			strategicSwitches++
		}
	}
	assert.Greater(t, strategicSwitches, balancedSwitches)
}

func TestPolicyStaysInWhenNearlyFainted(t *testing.T) {
	l := testLoader(t)
	s := disadvantagedSession(t, l, 1)
	pika := s.SideAt(0).ActiveCombatant()
	pika.HP = pika.MaxHP() / 10

	p, err := NewPolicy(DifficultyHard, PersonalityStrategic, 1, nil)
	require.NoError(t, err)
	act := p.ChooseAction(s, 0)
	assert.NotEqual(t, battle.ActionSwitch, act.Type, "no point saving a nearly fainted combatant")
}

func TestPolicySkipsHealAtFullHP(t *testing.T) {
	l := testLoader(t)
	a := buildSide(t, l, "p1", member("Snorlax", 50, "Recover", "Tackle"))
	b := buildSide(t, l, "p2", member("Machamp", 50, "Cross Chop"))
	s, err := battle.NewSession(battle.Config{Seed: 1}, a, b)
	require.NoError(t, err)

	p, err := NewPolicy(DifficultyMedium, PersonalityDefensive, 1, nil)
	require.NoError(t, err)
	act := p.ChooseAction(s, 0)
	require.Equal(t, battle.ActionMove, act.Type)
	assert.Equal(t, 1, act.MoveIndex, "no reason to Recover at full HP")
}

func TestPolicyHealsWhenLow(t *testing.T) {
	l := testLoader(t)
	a := buildSide(t, l, "p1", member("Snorlax", 50, "Recover", "Tackle"))
	b := buildSide(t, l, "p2", member("Steelix", 50, "Iron Head"))
	s, err := battle.NewSession(battle.Config{Seed: 1}, a, b)
	require.NoError(t, err)

	lax := s.SideAt(0).ActiveCombatant()
	lax.HP = lax.MaxHP() / 5

	p, err := NewPolicy(DifficultyMedium, PersonalityDefensive, 1, nil)
	require.NoError(t, err)
	act := p.ChooseAction(s, 0)
	require.Equal(t, battle.ActionMove, act.Type)
	assert.Equal(t, 0, act.MoveIndex, "defensive policy should Recover at 20%")
}

func TestPolicyIsDeterministic(t *testing.T) {
	l := testLoader(t)
	build := func() *battle.Session {
		a := buildSide(t, l, "p1", member("Charizard", 50, "Flamethrower", "Air Slash", "Thunder Wave"))
		b := buildSide(t, l, "p2", member("Venusaur", 50, "Energy Ball", "Sludge Bomb"))
		s, err := battle.NewSession(battle.Config{Seed: 7}, a, b)
		require.NoError(t, err)
		return s
	}
	p1, err := NewPolicy(DifficultyHard, PersonalityBalanced, 11, nil)
	require.NoError(t, err)
	p2, err := NewPolicy(DifficultyHard, PersonalityBalanced, 11, nil)
	require.NoError(t, err)
	assert.Equal(t, p1.ChooseAction(build(), 0), p2.ChooseAction(build(), 0))
}

func TestPolicyDrivesFullBattle(t *testing.T) {
	l := testLoader(t)
	a := buildSide(t, l, "p1",
		member("Charizard", 50, "Flamethrower", "Air Slash"),
		member("Snorlax", 50, "Double-Edge", "Recover"))
	b := buildSide(t, l, "p2",
		member("Blastoise", 50, "Surf", "Ice Beam"),
		member("Venusaur", 50, "Energy Ball", "Sleep Powder"))
	s, err := battle.NewSession(battle.Config{Seed: 1234, MaxTurns: 150}, a, b)
	require.NoError(t, err)

	hard, err := NewPolicy(DifficultyHard, PersonalityAggressive, 5, nil)
	require.NoError(t, err)
	medium, err := NewPolicy(DifficultyMedium, PersonalityDefensive, 6, nil)
	require.NoError(t, err)

	out, err := s.RunAuto(context.Background(), [2]battle.Decider{hard, medium})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Greater(t, out.Turns, 0)
}

func TestLoadDefaultPresets(t *testing.T) {
	presets, err := LoadPresets("")
	require.NoError(t, err)
	assert.Len(t, presets, 7)

	l := testLoader(t)
	for _, preset := range presets {
		_, err := preset.Policy(1, nil)
		require.NoError(t, err, "preset %s", preset.Name)
		side, err := preset.BuildSide("npc", l)
		require.NoError(t, err, "preset %s", preset.Name)
		assert.NotEmpty(t, side.Team)
	}

	champ, ok := FindPreset(presets, "Champion Rowan")
	require.True(t, ok)
	assert.Equal(t, DifficultyHard, champ.Difficulty)

	sable, ok := FindPreset(presets, "Veteran Sable")
	require.True(t, ok)
	assert.Equal(t, PersonalityStrategic, sable.Personality)
}

func TestLoadPresetsFromFile(t *testing.T) {
	_, err := LoadPresets("/nonexistent/trainers.yaml")
	assert.Error(t, err)
}
