package resource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MoveCategory determines which attack/defense pair a move uses.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// EffectKind is the closed set of primary move effects. The battle pipeline
// dispatches on it exhaustively; adding a kind here without a pipeline case
// is caught by the pipeline's contract check.
type EffectKind string

const (
	EffectDamage        EffectKind = "damage"
	EffectStatChange    EffectKind = "stat_change"
	EffectStatusInflict EffectKind = "status_inflict"
	EffectHeal          EffectKind = "heal"
	EffectField         EffectKind = "field"
	EffectSwitch        EffectKind = "switch"
	EffectFixedDamage   EffectKind = "fixed_damage"
	EffectOHKO          EffectKind = "ohko"
)

// Status is a persistent condition name. A combatant holds at most one.
type Status string

const (
	StatusHealthy       Status = "healthy"
	StatusPoisoned      Status = "poisoned"
	StatusBadlyPoisoned Status = "badly_poisoned"
	StatusBurned        Status = "burned"
	StatusParalyzed     Status = "paralyzed"
	StatusAsleep        Status = "asleep"
	StatusFrozen        Status = "frozen"
	StatusFainted       Status = "fainted"
)

// Volatile is a temporary condition cleared on switch-out.
type Volatile string

const (
	VolatileConfused    Volatile = "confused"
	VolatileFlinched    Volatile = "flinched"
	VolatileSubstitute  Volatile = "substitute"
	VolatileBound       Volatile = "bound"
	VolatileLeechSeed   Volatile = "leech_seed"
	VolatileFocusEnergy Volatile = "focus_energy"
)

// StatName identifies a stage-modifiable stat.
type StatName string

const (
	StatAttack    StatName = "attack"
	StatDefense   StatName = "defense"
	StatSpAttack  StatName = "sp_attack"
	StatSpDefense StatName = "sp_defense"
	StatSpeed     StatName = "speed"
	StatAccuracy  StatName = "accuracy"
	StatEvasion   StatName = "evasion"
)

// FieldEffect names a weather, terrain, screen, or hazard a move can set.
type FieldEffect string

const (
	FieldSun             FieldEffect = "sun"
	FieldRain            FieldEffect = "rain"
	FieldSandstorm       FieldEffect = "sandstorm"
	FieldHail            FieldEffect = "hail"
	FieldElectricTerrain FieldEffect = "electric_terrain"
	FieldGrassyTerrain   FieldEffect = "grassy_terrain"
	FieldMistyTerrain    FieldEffect = "misty_terrain"
	FieldPsychicTerrain  FieldEffect = "psychic_terrain"
	FieldReflect         FieldEffect = "reflect"
	FieldLightScreen     FieldEffect = "light_screen"
	FieldSpikes          FieldEffect = "spikes"
	FieldStealthRock     FieldEffect = "stealth_rock"
)

// AbilityTag selects the passive behavior implemented by the battle engine.
type AbilityTag string

const (
	AbilityNone       AbilityTag = "none"
	AbilityBlaze      AbilityTag = "blaze"
	AbilityTorrent    AbilityTag = "torrent"
	AbilityOvergrow   AbilityTag = "overgrow"
	AbilityLevitate   AbilityTag = "levitate"
	AbilityStatic     AbilityTag = "static"
	AbilityGuts       AbilityTag = "guts"
	AbilityIntimidate AbilityTag = "intimidate"
	AbilitySturdy     AbilityTag = "sturdy"
)

// ItemTag selects held-item behavior.
type ItemTag string

const (
	ItemLeftovers   ItemTag = "leftovers"
	ItemLifeOrb     ItemTag = "life_orb"
	ItemChoiceBand  ItemTag = "choice_band"
	ItemChoiceSpecs ItemTag = "choice_specs"
	ItemFocusSash   ItemTag = "focus_sash"
)

// StatChange is one stage adjustment carried by a move effect.
type StatChange struct {
	Stat   StatName `json:"stat"`
	Stages int      `json:"stages"`
	Self   bool     `json:"self"` // true = applies to the user
}

// MoveEffect is the primary effect payload; which fields are meaningful
// depends on Kind.
type MoveEffect struct {
	Kind         EffectKind   `json:"kind"`
	Recoil       float64      `json:"recoil,omitempty"` // fraction of damage dealt
	Drain        float64      `json:"drain,omitempty"`  // fraction of damage healed
	StatChanges  []StatChange `json:"stat_changes,omitempty"`
	Status       Status       `json:"status,omitempty"`
	Volatile     Volatile     `json:"volatile,omitempty"`
	MinTurns     int          `json:"min_turns,omitempty"`
	MaxTurns     int          `json:"max_turns,omitempty"`
	HealFraction float64      `json:"heal_fraction,omitempty"`
	Field        FieldEffect  `json:"field,omitempty"`
	FixedAmount  int          `json:"fixed_amount,omitempty"`
}

// Secondary is a chance-based rider rolled independently after a hit.
type Secondary struct {
	Chance      float64      `json:"chance"`
	Status      Status       `json:"status,omitempty"`
	Volatile    Volatile     `json:"volatile,omitempty"`
	StatChanges []StatChange `json:"stat_changes,omitempty"`
	MinTurns    int          `json:"min_turns,omitempty"`
	MaxTurns    int          `json:"max_turns,omitempty"`
}

// Move is an immutable move definition.
type Move struct {
	Name      string       `json:"name"`
	Type      Type         `json:"type"`
	Category  MoveCategory `json:"category"`
	Power     int          `json:"power"`
	Accuracy  int          `json:"accuracy"` // 0 = always hits
	PP        int          `json:"pp"`
	Priority  int          `json:"priority"`
	HighCrit  bool         `json:"high_crit,omitempty"`
	Contact   bool         `json:"contact,omitempty"`
	Effect    MoveEffect   `json:"effect"`
	Secondary *Secondary   `json:"secondary,omitempty"`
}

// BaseStats are a species' base values; final in-battle stats are computed
// by the excluded team builder and supplied precomputed.
type BaseStats struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
}

// Species is an immutable species definition.
type Species struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Types     []Type    `json:"types"`
	BaseStats BaseStats `json:"base_stats"`
	Abilities []string  `json:"abilities,omitempty"`
}

// Ability is an immutable ability definition.
type Ability struct {
	Name        string     `json:"name"`
	Tag         AbilityTag `json:"tag"`
	Description string     `json:"description,omitempty"`
}

// Item is an immutable held-item definition.
type Item struct {
	Name string  `json:"name"`
	Tag  ItemTag `json:"tag"`
}

// Loader loads and indexes the static reference tables. Load is called once
// at engine start; the tables are never mutated afterwards.
type Loader struct {
	dataPath string

	Species   map[string]*Species
	Moves     map[string]*Move
	Abilities map[string]*Ability
	Items     map[string]*Item
}

// NewLoader creates a Loader. An empty dataPath loads the built-in data set.
func NewLoader(dataPath string) *Loader {
	return &Loader{dataPath: dataPath}
}

// Load reads the data files (or the built-in tables) and validates them.
// Any validation failure is fatal: the engine refuses to start sessions on
// malformed static data.
func (l *Loader) Load() error {
	if l.dataPath == "" {
		l.loadDefaults()
	} else {
		if err := l.loadFiles(); err != nil {
			return err
		}
	}
	return l.validate()
}

func (l *Loader) loadFiles() error {
	var species []*Species
	if err := readJSON(filepath.Join(l.dataPath, "species.json"), &species); err != nil {
		return err
	}
	var moves []*Move
	if err := readJSON(filepath.Join(l.dataPath, "moves.json"), &moves); err != nil {
		return err
	}
	var abilities []*Ability
	if err := readJSON(filepath.Join(l.dataPath, "abilities.json"), &abilities); err != nil {
		return err
	}
	var items []*Item
	if err := readJSON(filepath.Join(l.dataPath, "items.json"), &items); err != nil {
		return err
	}
	l.index(species, moves, abilities, items)
	return nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("resource: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("resource: parse %s: %w", path, err)
	}
	return nil
}

func (l *Loader) index(species []*Species, moves []*Move, abilities []*Ability, items []*Item) {
	l.Species = make(map[string]*Species, len(species))
	for _, s := range species {
		l.Species[key(s.Name)] = s
	}
	l.Moves = make(map[string]*Move, len(moves))
	for _, m := range moves {
		l.Moves[key(m.Name)] = m
	}
	l.Abilities = make(map[string]*Ability, len(abilities))
	for _, a := range abilities {
		l.Abilities[key(a.Name)] = a
	}
	l.Items = make(map[string]*Item, len(items))
	for _, it := range items {
		l.Items[key(it.Name)] = it
	}
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// SpeciesByName looks up a species (case-insensitive).
func (l *Loader) SpeciesByName(name string) *Species { return l.Species[key(name)] }

// MoveByName looks up a move (case-insensitive).
func (l *Loader) MoveByName(name string) *Move { return l.Moves[key(name)] }

// AbilityByName looks up an ability (case-insensitive).
func (l *Loader) AbilityByName(name string) *Ability { return l.Abilities[key(name)] }

// ItemByName looks up an item (case-insensitive).
func (l *Loader) ItemByName(name string) *Item { return l.Items[key(name)] }

var validEffects = map[EffectKind]bool{
	EffectDamage: true, EffectStatChange: true, EffectStatusInflict: true,
	EffectHeal: true, EffectField: true, EffectSwitch: true,
	EffectFixedDamage: true, EffectOHKO: true,
}

var validStatuses = map[Status]bool{
	StatusPoisoned: true, StatusBadlyPoisoned: true, StatusBurned: true,
	StatusParalyzed: true, StatusAsleep: true, StatusFrozen: true,
}

var validVolatiles = map[Volatile]bool{
	VolatileConfused: true, VolatileFlinched: true, VolatileSubstitute: true,
	VolatileBound: true, VolatileLeechSeed: true, VolatileFocusEnergy: true,
}

var validStats = map[StatName]bool{
	StatAttack: true, StatDefense: true, StatSpAttack: true,
	StatSpDefense: true, StatSpeed: true, StatAccuracy: true, StatEvasion: true,
}

var validFields = map[FieldEffect]bool{
	FieldSun: true, FieldRain: true, FieldSandstorm: true, FieldHail: true,
	FieldElectricTerrain: true, FieldGrassyTerrain: true,
	FieldMistyTerrain: true, FieldPsychicTerrain: true,
	FieldReflect: true, FieldLightScreen: true,
	FieldSpikes: true, FieldStealthRock: true,
}

var validAbilityTags = map[AbilityTag]bool{
	AbilityNone: true, AbilityBlaze: true, AbilityTorrent: true,
	AbilityOvergrow: true, AbilityLevitate: true, AbilityStatic: true,
	AbilityGuts: true, AbilityIntimidate: true, AbilitySturdy: true,
}

var validItemTags = map[ItemTag]bool{
	ItemLeftovers: true, ItemLifeOrb: true, ItemChoiceBand: true,
	ItemChoiceSpecs: true, ItemFocusSash: true,
}

func (l *Loader) validate() error {
	for _, s := range l.Species {
		if s.Name == "" {
			return fmt.Errorf("resource: species %d has no name", s.ID)
		}
		if len(s.Types) == 0 || len(s.Types) > 2 {
			return fmt.Errorf("resource: species %q must have 1 or 2 types", s.Name)
		}
		for _, t := range s.Types {
			if !KnownType(t) {
				return fmt.Errorf("resource: species %q references unknown type %q", s.Name, t)
			}
		}
		bs := s.BaseStats
		if bs.HP <= 0 || bs.Attack <= 0 || bs.Defense <= 0 ||
			bs.SpAttack <= 0 || bs.SpDefense <= 0 || bs.Speed <= 0 {
			return fmt.Errorf("resource: species %q has non-positive base stats", s.Name)
		}
	}

	for _, m := range l.Moves {
		if err := validateMove(m); err != nil {
			return err
		}
	}

	for _, a := range l.Abilities {
		if !validAbilityTags[a.Tag] {
			return fmt.Errorf("resource: ability %q has unknown tag %q", a.Name, a.Tag)
		}
	}
	for _, it := range l.Items {
		if !validItemTags[it.Tag] {
			return fmt.Errorf("resource: item %q has unknown tag %q", it.Name, it.Tag)
		}
	}
	return nil
}

func validateMove(m *Move) error {
	if m.Name == "" {
		return fmt.Errorf("resource: move with empty name")
	}
	if !KnownType(m.Type) {
		return fmt.Errorf("resource: move %q references unknown type %q", m.Name, m.Type)
	}
	switch m.Category {
	case CategoryPhysical, CategorySpecial, CategoryStatus:
	default:
		return fmt.Errorf("resource: move %q has invalid category %q", m.Name, m.Category)
	}
	if m.Power < 0 || m.Accuracy < 0 || m.Accuracy > 100 {
		return fmt.Errorf("resource: move %q has out-of-range power/accuracy", m.Name)
	}
	if m.PP < 1 || m.PP > 64 {
		return fmt.Errorf("resource: move %q has out-of-range PP %d", m.Name, m.PP)
	}
	if m.Priority < -7 || m.Priority > 5 {
		return fmt.Errorf("resource: move %q has out-of-range priority %d", m.Name, m.Priority)
	}
	eff := m.Effect
	if !validEffects[eff.Kind] {
		return fmt.Errorf("resource: move %q has unknown effect kind %q", m.Name, eff.Kind)
	}
	switch eff.Kind {
	case EffectDamage:
		if m.Power <= 0 {
			return fmt.Errorf("resource: damaging move %q has no power", m.Name)
		}
	case EffectStatChange:
		if len(eff.StatChanges) == 0 {
			return fmt.Errorf("resource: move %q stat_change effect has no changes", m.Name)
		}
	case EffectStatusInflict:
		if !validStatuses[eff.Status] && !validVolatiles[eff.Volatile] {
			return fmt.Errorf("resource: move %q inflicts nothing valid", m.Name)
		}
	case EffectHeal:
		if eff.HealFraction <= 0 || eff.HealFraction > 1 {
			return fmt.Errorf("resource: move %q has invalid heal fraction", m.Name)
		}
	case EffectField:
		if !validFields[eff.Field] {
			return fmt.Errorf("resource: move %q sets unknown field effect %q", m.Name, eff.Field)
		}
	case EffectFixedDamage:
		if eff.FixedAmount <= 0 {
			return fmt.Errorf("resource: move %q fixed damage must be positive", m.Name)
		}
	}
	for _, sc := range eff.StatChanges {
		if !validStats[sc.Stat] {
			return fmt.Errorf("resource: move %q changes unknown stat %q", m.Name, sc.Stat)
		}
		if sc.Stages == 0 || sc.Stages < -6 || sc.Stages > 6 {
			return fmt.Errorf("resource: move %q has invalid stage delta %d", m.Name, sc.Stages)
		}
	}
	if sec := m.Secondary; sec != nil {
		if sec.Chance <= 0 || sec.Chance > 1 {
			return fmt.Errorf("resource: move %q secondary chance %.2f out of (0,1]", m.Name, sec.Chance)
		}
		if sec.Status != "" && !validStatuses[sec.Status] {
			return fmt.Errorf("resource: move %q secondary has unknown status %q", m.Name, sec.Status)
		}
		if sec.Volatile != "" && !validVolatiles[sec.Volatile] {
			return fmt.Errorf("resource: move %q secondary has unknown volatile %q", m.Name, sec.Volatile)
		}
		for _, sc := range sec.StatChanges {
			if !validStats[sc.Stat] {
				return fmt.Errorf("resource: move %q secondary changes unknown stat %q", m.Name, sc.Stat)
			}
		}
	}
	return nil
}
