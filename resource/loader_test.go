package resource

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	l := NewLoader("")
	require.NoError(t, l.Load())

	sp := l.SpeciesByName("charizard")
	require.NotNil(t, sp)
	assert.Equal(t, []Type{TypeFire, TypeFlying}, sp.Types)

	mv := l.MoveByName("Thunderbolt")
	require.NotNil(t, mv)
	assert.Equal(t, 90, mv.Power)
	require.NotNil(t, mv.Secondary)
	assert.Equal(t, StatusParalyzed, mv.Secondary.Status)

	require.NotNil(t, l.AbilityByName("Intimidate"))
	require.NotNil(t, l.ItemByName("Focus Sash"))
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "species.json"), []*Species{{
		ID: 1, Name: "Testmon", Types: []Type{TypeNormal},
		BaseStats: BaseStats{HP: 50, Attack: 50, Defense: 50, SpAttack: 50, SpDefense: 50, Speed: 50},
	}})
	writeJSON(t, filepath.Join(dir, "moves.json"), []*Move{{
		Name: "Test Slam", Type: TypeNormal, Category: CategoryPhysical,
		Power: 60, Accuracy: 100, PP: 10,
		Effect: MoveEffect{Kind: EffectDamage},
	}})
	writeJSON(t, filepath.Join(dir, "abilities.json"), []*Ability{{Name: "Inert", Tag: AbilityNone}})
	writeJSON(t, filepath.Join(dir, "items.json"), []*Item{{Name: "Leftovers", Tag: ItemLeftovers}})

	l := NewLoader(dir)
	require.NoError(t, l.Load())
	assert.NotNil(t, l.SpeciesByName("Testmon"))
	assert.NotNil(t, l.MoveByName("test slam"))
}

func TestLoadRejectsMalformedData(t *testing.T) {
	cases := []struct {
		name string
		move *Move
	}{
		{"unknown type", &Move{Name: "X", Type: "plasma", Category: CategoryPhysical, Power: 50, Accuracy: 100, PP: 10, Effect: MoveEffect{Kind: EffectDamage}}},
		{"bad category", &Move{Name: "X", Type: TypeNormal, Category: "melee", Power: 50, Accuracy: 100, PP: 10, Effect: MoveEffect{Kind: EffectDamage}}},
		{"zero power damage", &Move{Name: "X", Type: TypeNormal, Category: CategoryPhysical, Power: 0, Accuracy: 100, PP: 10, Effect: MoveEffect{Kind: EffectDamage}}},
		{"bad effect kind", &Move{Name: "X", Type: TypeNormal, Category: CategoryStatus, Accuracy: 100, PP: 10, Effect: MoveEffect{Kind: "explode"}}},
		{"secondary chance above one", &Move{Name: "X", Type: TypeNormal, Category: CategoryPhysical, Power: 50, Accuracy: 100, PP: 10, Effect: MoveEffect{Kind: EffectDamage}, Secondary: &Secondary{Chance: 1.5, Status: StatusBurned}}},
		{"zero pp", &Move{Name: "X", Type: TypeNormal, Category: CategoryPhysical, Power: 50, Accuracy: 100, PP: 0, Effect: MoveEffect{Kind: EffectDamage}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, validateMove(tc.move))
		})
	}
}

func TestValidateRejectsBadSpecies(t *testing.T) {
	l := NewLoader("")
	l.loadDefaults()
	l.Species["badmon"] = &Species{ID: 999, Name: "Badmon", Types: []Type{TypeNormal},
		BaseStats: BaseStats{HP: 0, Attack: 1, Defense: 1, SpAttack: 1, SpDefense: 1, Speed: 1}}
	assert.Error(t, l.validate())
}

func TestDefaultDataSetIsValid(t *testing.T) {
	l := NewLoader("")
	l.loadDefaults()
	require.NoError(t, l.validate())

	// Species ability references must resolve.
	for _, sp := range l.Species {
		for _, ab := range sp.Abilities {
			assert.NotNil(t, l.AbilityByName(ab), "species %s references unknown ability %s", sp.Name, ab)
		}
	}
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
