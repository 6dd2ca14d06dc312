package battle

import "github.com/kasuganosora/pokebattle/resource"

// BattleEvent is one entry in the ordered battle log. Given the same seed
// and the same submitted actions, a session emits a byte-identical event
// sequence.
type BattleEvent interface {
	EventType() string
}

type TurnStartEvent struct {
	Turn int `json:"turn"`
}

func (TurnStartEvent) EventType() string { return "turn_start" }

type TurnEndEvent struct {
	Turn int `json:"turn"`
}

func (TurnEndEvent) EventType() string { return "turn_end" }

type MoveUsedEvent struct {
	Side     string `json:"side"`
	User     string `json:"user"`
	Move     string `json:"move"`
	Target   string `json:"target"`
	Struggle bool   `json:"struggle,omitempty"`
}

func (MoveUsedEvent) EventType() string { return "move_used" }

type DamageEvent struct {
	Side          string  `json:"side"` // side taking the damage
	Target        string  `json:"target"`
	Amount        int     `json:"amount"`
	RemainingHP   int     `json:"remaining_hp"`
	Effectiveness float64 `json:"effectiveness"`
	Critical      bool    `json:"critical,omitempty"`
	STAB          bool    `json:"stab,omitempty"`
}

func (DamageEvent) EventType() string { return "damage" }

// ResidualDamageEvent is end-of-turn chip damage: weather, status, seeding,
// binding, recoil, hazards.
type ResidualDamageEvent struct {
	Side        string `json:"side"`
	Target      string `json:"target"`
	Source      string `json:"source"`
	Amount      int    `json:"amount"`
	RemainingHP int    `json:"remaining_hp"`
}

func (ResidualDamageEvent) EventType() string { return "residual_damage" }

type HealEvent struct {
	Side        string `json:"side"`
	Target      string `json:"target"`
	Source      string `json:"source"`
	Amount      int    `json:"amount"`
	RemainingHP int    `json:"remaining_hp"`
}

func (HealEvent) EventType() string { return "heal" }

type MissEvent struct {
	Side   string `json:"side"`
	User   string `json:"user"`
	Move   string `json:"move"`
	Target string `json:"target"`
}

func (MissEvent) EventType() string { return "miss" }

type ImmuneEvent struct {
	Side   string `json:"side"` // side of the immune combatant
	Target string `json:"target"`
	Move   string `json:"move"`
	Reason string `json:"reason,omitempty"` // "type" or ability name
}

func (ImmuneEvent) EventType() string { return "immune" }

// MoveFailedEvent covers rule-level failures that are not misses: healing at
// full HP, statusing an already statused target, redundant field effects.
type MoveFailedEvent struct {
	Side   string `json:"side"`
	User   string `json:"user"`
	Move   string `json:"move"`
	Reason string `json:"reason"`
}

func (MoveFailedEvent) EventType() string { return "move_failed" }

type StatusAppliedEvent struct {
	Side   string          `json:"side"`
	Target string          `json:"target"`
	Status resource.Status `json:"status"`
}

func (StatusAppliedEvent) EventType() string { return "status_applied" }

type StatusEndedEvent struct {
	Side   string          `json:"side"`
	Target string          `json:"target"`
	Status resource.Status `json:"status"`
}

func (StatusEndedEvent) EventType() string { return "status_ended" }

type VolatileAppliedEvent struct {
	Side     string            `json:"side"`
	Target   string            `json:"target"`
	Volatile resource.Volatile `json:"volatile"`
}

func (VolatileAppliedEvent) EventType() string { return "volatile_applied" }

type VolatileEndedEvent struct {
	Side     string            `json:"side"`
	Target   string            `json:"target"`
	Volatile resource.Volatile `json:"volatile"`
}

func (VolatileEndedEvent) EventType() string { return "volatile_ended" }

// SubstituteDamageEvent reports a hit soaked by a substitute instead of the
// combatant behind it.
type SubstituteDamageEvent struct {
	Side      string `json:"side"`
	Target    string `json:"target"`
	Amount    int    `json:"amount"`
	Remaining int    `json:"remaining"`
	Broken    bool   `json:"broken"`
}

func (SubstituteDamageEvent) EventType() string { return "substitute_damage" }

// ActionBlockedEvent reports a combatant losing its action to its own
// condition: full paralysis, sleep, freeze, flinch.
type ActionBlockedEvent struct {
	Side   string `json:"side"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

func (ActionBlockedEvent) EventType() string { return "action_blocked" }

type ConfusionSelfHitEvent struct {
	Side        string `json:"side"`
	Target      string `json:"target"`
	Amount      int    `json:"amount"`
	RemainingHP int    `json:"remaining_hp"`
}

func (ConfusionSelfHitEvent) EventType() string { return "confusion_self_hit" }

type StatChangeEvent struct {
	Side    string            `json:"side"`
	Target  string            `json:"target"`
	Stat    resource.StatName `json:"stat"`
	Stages  int               `json:"stages"`  // requested delta
	Applied int               `json:"applied"` // delta after the ±6 clamp
}

func (StatChangeEvent) EventType() string { return "stat_change" }

type SwitchEvent struct {
	Side   string `json:"side"`
	Out    string `json:"out,omitempty"`
	In     string `json:"in"`
	Forced bool   `json:"forced,omitempty"` // replacement after a faint or U-turn
}

func (SwitchEvent) EventType() string { return "switch" }

type FaintEvent struct {
	Side   string `json:"side"`
	Target string `json:"target"`
}

func (FaintEvent) EventType() string { return "faint" }

// SkippedFaintedEvent is emitted when a queued action is discarded because
// its actor fainted earlier in the same turn.
type SkippedFaintedEvent struct {
	Side  string `json:"side"`
	Actor string `json:"actor"`
}

func (SkippedFaintedEvent) EventType() string { return "skipped_fainted" }

type FieldStartEvent struct {
	Side   string               `json:"side,omitempty"` // empty for global weather/terrain
	Effect resource.FieldEffect `json:"effect"`
	Turns  int                  `json:"turns,omitempty"`
}

func (FieldStartEvent) EventType() string { return "field_start" }

type FieldEndEvent struct {
	Side   string               `json:"side,omitempty"`
	Effect resource.FieldEffect `json:"effect"`
}

func (FieldEndEvent) EventType() string { return "field_end" }

type AbilityEvent struct {
	Side    string `json:"side"`
	Target  string `json:"target"`
	Ability string `json:"ability"`
	Detail  string `json:"detail,omitempty"`
}

func (AbilityEvent) EventType() string { return "ability" }

type ItemEvent struct {
	Side     string `json:"side"`
	Target   string `json:"target"`
	Item     string `json:"item"`
	Consumed bool   `json:"consumed,omitempty"`
}

func (ItemEvent) EventType() string { return "item" }

type ForfeitEvent struct {
	Side string `json:"side"`
}

func (ForfeitEvent) EventType() string { return "forfeit" }

type BattleEndEvent struct {
	Winner string `json:"winner,omitempty"`
	Draw   bool   `json:"draw,omitempty"`
	Reason string `json:"reason"`
	Turns  int    `json:"turns"`
}

func (BattleEndEvent) EventType() string { return "battle_end" }
