package battle

import (
	"math"
	"testing"

	"github.com/kasuganosora/pokebattle/resource"
)

func TestStageMultiplier(t *testing.T) {
	cases := []struct {
		stage int
		want  float64
	}{
		{0, 1.0}, {1, 1.5}, {2, 2.0}, {6, 4.0},
		{-1, 2.0 / 3.0}, {-2, 0.5}, {-6, 0.25},
	}
	for _, tc := range cases {
		if got := stageMultiplier(tc.stage); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("stageMultiplier(%d) = %v, want %v", tc.stage, got, tc.want)
		}
	}
}

func TestAccuracyStageMultiplier(t *testing.T) {
	if got := accuracyStageMultiplier(1); math.Abs(got-4.0/3.0) > 1e-9 {
		t.Errorf("stage +1 = %v, want 4/3", got)
	}
	if got := accuracyStageMultiplier(-3); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("stage -3 = %v, want 1/2", got)
	}
}

func TestEffectiveStatBurnHalvesAttack(t *testing.T) {
	c := testMon(t, "Charizard", 50, "Flamethrower")
	base := EffectiveStat(c, resource.StatAttack)
	c.Status = resource.StatusBurned
	if got := EffectiveStat(c, resource.StatAttack); got != base/2 {
		t.Errorf("burned attack = %d, want %d", got, base/2)
	}
}

func TestEffectiveStatGutsIgnoresBurn(t *testing.T) {
	c := testMon(t, "Machamp", 50, "Close Combat") // Guts
	base := EffectiveStat(c, resource.StatAttack)
	c.Status = resource.StatusBurned
	got := EffectiveStat(c, resource.StatAttack)
	if got <= base {
		t.Errorf("guts under burn should raise attack: got %d, base %d", got, base)
	}
	if want := int(float64(base) * gutsBoost); got != want {
		t.Errorf("guts attack = %d, want %d", got, want)
	}
}

func TestEffectiveStatParalysisHalvesSpeed(t *testing.T) {
	c := testMon(t, "Pikachu", 50, "Thunderbolt")
	base := EffectiveStat(c, resource.StatSpeed)
	c.Status = resource.StatusParalyzed
	if got := EffectiveStat(c, resource.StatSpeed); got != base/2 {
		t.Errorf("paralyzed speed = %d, want %d", got, base/2)
	}
}

func TestEffectiveStatChoiceBand(t *testing.T) {
	c := testMon(t, "Machamp", 50, "Close Combat")
	base := EffectiveStat(c, resource.StatAttack)
	c.Item = testLoader.ItemByName("Choice Band")
	if got := EffectiveStat(c, resource.StatAttack); got <= base {
		t.Errorf("choice band should raise attack: got %d, base %d", got, base)
	}
}

func TestExpectedDamageImmunity(t *testing.T) {
	atk := testMon(t, "Pikachu", 50, "Thunderbolt")
	def := testMon(t, "Steelix", 50, "Iron Head") // Ground type
	var field Field
	if got := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil); got != 0 {
		t.Errorf("electric vs ground expected damage = %v, want 0", got)
	}
}

func TestExpectedDamageLevitate(t *testing.T) {
	atk := testMon(t, "Machamp", 50, "Earthquake")
	def := testMon(t, "Gengar", 50, "Shadow Ball") // Levitate
	var field Field
	if got := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil); got != 0 {
		t.Errorf("earthquake vs levitate expected damage = %v, want 0", got)
	}
}

func TestExpectedDamageSTABAndEffectiveness(t *testing.T) {
	atk := testMon(t, "Blastoise", 50, "Surf", "Tackle")
	def := testMon(t, "Charizard", 50, "Flamethrower")
	var field Field
	surf := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil)
	tackle := ExpectedDamage(atk, def, atk.Moves[1].Move, &field, nil)
	// Surf: STAB 1.5, 2x vs Fire/Flying, power 90 vs 40. Must dwarf Tackle.
	if surf <= tackle*3 {
		t.Errorf("surf (%v) should far exceed tackle (%v)", surf, tackle)
	}
}

func TestWeatherScalesDamage(t *testing.T) {
	atk := testMon(t, "Charizard", 50, "Flamethrower")
	def := testMon(t, "Venusaur", 50, "Energy Ball")
	var field Field
	clear := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil)
	field.Weather = WeatherSun
	sunny := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil)
	field.Weather = WeatherRain
	rainy := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil)
	if sunny <= clear || rainy >= clear {
		t.Errorf("fire damage: sun %v, clear %v, rain %v; want sun > clear > rain", sunny, clear, rainy)
	}
}

func TestReflectHalvesPhysical(t *testing.T) {
	atk := testMon(t, "Machamp", 50, "Close Combat")
	def := testMon(t, "Snorlax", 50, "Tackle")
	defSide := testSide(t, "p2", def)
	var field Field
	open := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, defSide)
	defSide.Screens[resource.FieldReflect] = 3
	screened := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, defSide)
	if screened >= open || math.Abs(screened*2-open) > 4 {
		t.Errorf("reflect: open %v, screened %v", open, screened)
	}
}

func TestCritChance(t *testing.T) {
	c := testMon(t, "Machamp", 50, "Cross Chop", "Close Combat")
	if got := critChance(c, c.Moves[1].Move); got != baseCritChance {
		t.Errorf("base crit = %v, want %v", got, baseCritChance)
	}
	if got := critChance(c, c.Moves[0].Move); got != baseCritChance*2 {
		t.Errorf("high-crit move = %v, want %v", got, baseCritChance*2)
	}
	c.Volatiles[resource.VolatileFocusEnergy] = 0
	if got := critChance(c, c.Moves[0].Move); got != baseCritChance*4 {
		t.Errorf("high-crit + focus energy = %v, want %v", got, baseCritChance*4)
	}
}

func TestPinchAbilityBoost(t *testing.T) {
	atk := testMon(t, "Charizard", 50, "Flamethrower") // Blaze
	def := testMon(t, "Snorlax", 50, "Tackle")
	var field Field
	normal := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil)
	atk.HP = atk.MaxHP() / 4
	boosted := ExpectedDamage(atk, def, atk.Moves[0].Move, &field, nil)
	if boosted <= normal {
		t.Errorf("blaze in pinch: %v should exceed %v", boosted, normal)
	}
}
