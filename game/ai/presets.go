package ai

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/resource"
)

// PresetMember is one team slot of a trainer preset.
type PresetMember struct {
	Species string   `yaml:"species"`
	Level   int      `yaml:"level"`
	Moves   []string `yaml:"moves"`
	Ability string   `yaml:"ability,omitempty"` // overrides the species' first ability
	Item    string   `yaml:"item,omitempty"`
}

// Preset is a named, loadable opponent: a policy pairing plus a team.
type Preset struct {
	Name        string         `yaml:"name"`
	Difficulty  Difficulty     `yaml:"difficulty"`
	Personality Personality    `yaml:"personality"`
	Team        []PresetMember `yaml:"team"`
}

type presetFile struct {
	Trainers []Preset `yaml:"trainers"`
}

// LoadPresets reads trainer presets from a YAML file; an empty path returns
// the built-in roster.
func LoadPresets(path string) ([]Preset, error) {
	var raw []byte
	if path == "" {
		raw = []byte(defaultPresetsYAML)
	} else {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("ai: read presets: %w", err)
		}
	}
	var pf presetFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("ai: parse presets: %w", err)
	}
	if len(pf.Trainers) == 0 {
		return nil, fmt.Errorf("ai: preset file has no trainers")
	}
	for _, p := range pf.Trainers {
		if p.Name == "" || len(p.Team) == 0 {
			return nil, fmt.Errorf("ai: preset %q is incomplete", p.Name)
		}
	}
	return pf.Trainers, nil
}

// FindPreset looks a preset up by name (exact match).
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Policy builds the preset's decision policy.
func (p Preset) Policy(seed int64, logger *zap.Logger) (*Policy, error) {
	return NewPolicy(p.Difficulty, p.Personality, seed, logger)
}

// BuildSide materializes the preset's team against the loaded data tables.
func (p Preset) BuildSide(id string, loader *resource.Loader) (*battle.Side, error) {
	team := make([]*battle.Combatant, 0, len(p.Team))
	for _, m := range p.Team {
		c, err := BuildCombatant(loader, m)
		if err != nil {
			return nil, fmt.Errorf("ai: preset %q: %w", p.Name, err)
		}
		team = append(team, c)
	}
	return battle.NewSide(id, p.Name, team)
}

// BuildCombatant resolves one preset member: species, moves, item lookups,
// the species' first ability, and level-scaled stats.
func BuildCombatant(loader *resource.Loader, m PresetMember) (*battle.Combatant, error) {
	sp := loader.SpeciesByName(m.Species)
	if sp == nil {
		return nil, fmt.Errorf("unknown species %q", m.Species)
	}
	var moves []battle.MoveSlot
	for _, name := range m.Moves {
		mv := loader.MoveByName(name)
		if mv == nil {
			return nil, fmt.Errorf("unknown move %q", name)
		}
		moves = append(moves, battle.MoveSlot{Move: mv, PP: mv.PP})
	}
	var item *resource.Item
	if m.Item != "" {
		if item = loader.ItemByName(m.Item); item == nil {
			return nil, fmt.Errorf("unknown item %q", m.Item)
		}
	}
	var ability *resource.Ability
	if m.Ability != "" {
		if ability = loader.AbilityByName(m.Ability); ability == nil {
			return nil, fmt.Errorf("unknown ability %q", m.Ability)
		}
	} else if len(sp.Abilities) > 0 {
		ability = loader.AbilityByName(sp.Abilities[0])
	}
	return battle.NewCombatant("", sp, m.Level, StatsFor(sp, m.Level), moves, ability, item)
}

// StatsFor derives flat battle stats from base stats at a level.
func StatsFor(sp *resource.Species, level int) battle.Stats {
	bs := sp.BaseStats
	return battle.Stats{
		HP:        bs.HP*level/50 + level + 10,
		Attack:    bs.Attack*level/50 + 5,
		Defense:   bs.Defense*level/50 + 5,
		SpAttack:  bs.SpAttack*level/50 + 5,
		SpDefense: bs.SpDefense*level/50 + 5,
		Speed:     bs.Speed*level/50 + 5,
	}
}

const defaultPresetsYAML = `
trainers:
  - name: Youngster Ben
    difficulty: easy
    personality: aggressive
    team:
      - species: Pikachu
        level: 20
        moves: [Thunderbolt, Quick Attack, Growl]
  - name: Hiker Clark
    difficulty: easy
    personality: balanced
    team:
      - species: Steelix
        level: 30
        moves: [Iron Head, Earthquake, Screech]
      - species: Machamp
        level: 28
        moves: [Cross Chop, Tackle]
  - name: Ranger Maya
    difficulty: medium
    personality: defensive
    team:
      - species: Ludicolo
        level: 40
        moves: [Surf, Energy Ball, Synthesis, Toxic]
        item: Leftovers
      - species: Venusaur
        level: 40
        moves: [Giga Drain, Sludge Bomb, Sleep Powder]
  - name: Ace Trainer Quinn
    difficulty: medium
    personality: aggressive
    team:
      - species: Gyarados
        level: 45
        moves: [Waterfall, Ice Punch, Dragon Dance]
      - species: Alakazam
        level: 45
        moves: [Psychic, Shadow Ball, Calm Mind]
  - name: Channeler Iris
    difficulty: medium
    personality: unpredictable
    team:
      - species: Gengar
        level: 42
        moves: [Shadow Ball, Sludge Bomb, Hypnosis, Confuse Ray]
  - name: Veteran Sable
    difficulty: hard
    personality: strategic
    team:
      - species: Tyranitar
        level: 55
        moves: [Crunch, Stone Edge, Earthquake, Sandstorm]
        item: Focus Sash
      - species: Mamoswine
        level: 55
        moves: [Ice Punch, Earthquake, Stealth Rock]
      - species: Snorlax
        level: 54
        moves: [Double-Edge, Recover, Toxic]
        item: Leftovers
  - name: Champion Rowan
    difficulty: hard
    personality: aggressive
    team:
      - species: Dragonite
        level: 60
        moves: [Outrage, Extreme Speed, Fire Punch, Dragon Dance]
        item: Life Orb
      - species: Charizard
        level: 60
        moves: [Fire Blast, Air Slash, Sunny Day]
        item: Choice Specs
      - species: Blastoise
        level: 60
        moves: [Hydro Pump, Ice Beam, Rain Dance]
`
