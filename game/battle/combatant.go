package battle

import (
	"fmt"

	"github.com/kasuganosora/pokebattle/resource"
)

// Stats are the precomputed full battle stats of a combatant. Deriving them
// from base stats, level and training values is the team builder's job; the
// engine takes them as given.
type Stats struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
}

// MoveSlot pairs a known move with its remaining PP.
type MoveSlot struct {
	Move *resource.Move `json:"move"`
	PP   int            `json:"pp"`
}

// Combatant is one battle-ready team member. All mutable battle state lives
// here; the referenced resource definitions are never written.
type Combatant struct {
	Name    string
	Species *resource.Species
	Level   int
	Stats   Stats
	HP      int
	Moves   []MoveSlot
	Ability *resource.Ability
	Item    *resource.Item

	Status       resource.Status
	SleepTurns   int
	ToxicCounter int

	Stages    map[resource.StatName]int
	Volatiles map[resource.Volatile]int // value = remaining turns; 0 means indefinite

	// SubstituteHP is the decoy's remaining pool while VolatileSubstitute
	// is active.
	SubstituteHP int

	// ChoiceLock restricts move selection while holding a choice item.
	ChoiceLock *resource.Move
}

// NewCombatant builds and structurally validates a combatant. Validation
// failures here are team-construction bugs and abort session creation.
func NewCombatant(name string, species *resource.Species, level int, stats Stats, moves []MoveSlot, ability *resource.Ability, item *resource.Item) (*Combatant, error) {
	if species == nil {
		return nil, fmt.Errorf("battle: combatant %q has no species", name)
	}
	if name == "" {
		name = species.Name
	}
	if level < 1 || level > 100 {
		return nil, fmt.Errorf("battle: combatant %q has invalid level %d", name, level)
	}
	if stats.HP < 1 || stats.Attack < 1 || stats.Defense < 1 ||
		stats.SpAttack < 1 || stats.SpDefense < 1 || stats.Speed < 1 {
		return nil, fmt.Errorf("battle: combatant %q has non-positive stats", name)
	}
	if len(moves) < 1 || len(moves) > 4 {
		return nil, fmt.Errorf("battle: combatant %q must know 1 to 4 moves, has %d", name, len(moves))
	}
	for i, slot := range moves {
		if slot.Move == nil {
			return nil, fmt.Errorf("battle: combatant %q move slot %d is empty", name, i)
		}
		if slot.PP < 0 || slot.PP > slot.Move.PP {
			return nil, fmt.Errorf("battle: combatant %q has invalid PP for %s", name, slot.Move.Name)
		}
	}
	c := &Combatant{
		Name:    name,
		Species: species,
		Level:   level,
		Stats:   stats,
		HP:      stats.HP,
		Moves:   append([]MoveSlot(nil), moves...),
		Ability: ability,
		Item:    item,
		Status:  resource.StatusHealthy,
	}
	c.resetTransient()
	return c, nil
}

func (c *Combatant) resetTransient() {
	c.Stages = make(map[resource.StatName]int)
	c.Volatiles = make(map[resource.Volatile]int)
	c.SubstituteHP = 0
	c.ChoiceLock = nil
}

// MaxHP returns the combatant's full hit points.
func (c *Combatant) MaxHP() int { return c.Stats.HP }

// Fainted reports whether the combatant is out of the battle.
func (c *Combatant) Fainted() bool { return c.HP <= 0 }

// ApplyDamage subtracts HP, clamped so HP never goes below zero, and returns
// the amount actually dealt.
func (c *Combatant) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > c.HP {
		amount = c.HP
	}
	c.HP -= amount
	if c.HP == 0 {
		c.Status = resource.StatusFainted
	}
	return amount
}

// Heal restores HP, clamped to MaxHP, and returns the amount restored.
// Fainted combatants cannot be healed.
func (c *Combatant) Heal(amount int) int {
	if c.Fainted() || amount <= 0 {
		return 0
	}
	room := c.MaxHP() - c.HP
	if amount > room {
		amount = room
	}
	c.HP += amount
	return amount
}

// Stage returns the current stage for a stat, zero when unset.
func (c *Combatant) Stage(stat resource.StatName) int { return c.Stages[stat] }

// AdjustStage applies a stage delta clamped to ±6 and returns the delta that
// actually took effect.
func (c *Combatant) AdjustStage(stat resource.StatName, delta int) int {
	cur := c.Stages[stat]
	next := cur + delta
	if next > 6 {
		next = 6
	}
	if next < -6 {
		next = -6
	}
	c.Stages[stat] = next
	return next - cur
}

// HasVolatile reports whether a volatile condition is active.
func (c *Combatant) HasVolatile(v resource.Volatile) bool {
	_, ok := c.Volatiles[v]
	return ok
}

// AbilityTag returns the combatant's ability tag, AbilityNone when absent.
func (c *Combatant) AbilityTag() resource.AbilityTag {
	if c.Ability == nil {
		return resource.AbilityNone
	}
	return c.Ability.Tag
}

// ItemTag returns the held item tag, empty when no item is held.
func (c *Combatant) ItemTag() resource.ItemTag {
	if c.Item == nil {
		return ""
	}
	return c.Item.Tag
}

// HasUsableMove reports whether any move slot has PP left. When false the
// combatant can only Struggle.
func (c *Combatant) HasUsableMove() bool {
	for _, slot := range c.Moves {
		if slot.PP > 0 {
			return true
		}
	}
	return false
}

// OnSwitchOut clears everything that does not persist across a switch:
// stat stages, volatile conditions, the toxic counter and any choice lock.
// Persistent status and sleep turns remain.
func (c *Combatant) OnSwitchOut() {
	c.resetTransient()
	c.ToxicCounter = 0
}

// Side is one participant: a trainer with a team and a pointer to the
// active team slot, plus side-local field state (screens and entry hazards).
type Side struct {
	ID     string
	Name   string
	Team   []*Combatant
	Active int

	Screens map[resource.FieldEffect]int // remaining turns
	Hazards map[resource.FieldEffect]int // spikes layer count, stealth rock presence

	Forfeited bool
}

// NewSide validates and assembles a participant.
func NewSide(id, name string, team []*Combatant) (*Side, error) {
	if id == "" {
		return nil, fmt.Errorf("battle: side needs an id")
	}
	if len(team) < 1 || len(team) > 6 {
		return nil, fmt.Errorf("battle: side %q must field 1 to 6 combatants, has %d", id, len(team))
	}
	for i, c := range team {
		if c == nil {
			return nil, fmt.Errorf("battle: side %q team slot %d is nil", id, i)
		}
	}
	return &Side{
		ID:      id,
		Name:    name,
		Team:    team,
		Screens: make(map[resource.FieldEffect]int),
		Hazards: make(map[resource.FieldEffect]int),
	}, nil
}

// ActiveCombatant returns the combatant currently on the field.
func (s *Side) ActiveCombatant() *Combatant { return s.Team[s.Active] }

// NextAble returns the index of the first bench member able to battle, or -1.
func (s *Side) NextAble() int {
	for i, c := range s.Team {
		if i != s.Active && !c.Fainted() {
			return i
		}
	}
	return -1
}

// Defeated reports whether every team member has fainted.
func (s *Side) Defeated() bool {
	for _, c := range s.Team {
		if !c.Fainted() {
			return false
		}
	}
	return true
}

// AbleCount returns the number of team members still able to battle.
func (s *Side) AbleCount() int {
	n := 0
	for _, c := range s.Team {
		if !c.Fainted() {
			n++
		}
	}
	return n
}
