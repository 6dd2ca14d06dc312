package rest

import (
	"github.com/kasuganosora/pokebattle/game/arena"
	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/resource"
)

// CombatantView is the client-visible state of one team member.
type CombatantView struct {
	Name    string          `json:"name"`
	Species string          `json:"species"`
	Level   int             `json:"level"`
	HP      int             `json:"hp"`
	MaxHP   int             `json:"max_hp"`
	Status  resource.Status `json:"status"`
	Active  bool            `json:"active"`
	Moves   []MoveView      `json:"moves"`
}

// MoveView is one move slot with remaining PP.
type MoveView struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	PP    int    `json:"pp"`
	MaxPP int    `json:"max_pp"`
}

// SideView is one participant's visible state.
type SideView struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Team []CombatantView `json:"team"`
}

// BattleView is the full state snapshot returned by battle endpoints.
type BattleView struct {
	ID      string          `json:"id"`
	Trainer string          `json:"trainer"`
	Turn    int             `json:"turn"`
	Phase   battle.Phase    `json:"phase"`
	Outcome *battle.Outcome `json:"outcome,omitempty"`
	Field   battle.Field    `json:"field"`
	Sides   [2]SideView     `json:"sides"`
}

func battleView(b *arena.Battle) BattleView {
	view := BattleView{
		ID:      b.ID,
		Trainer: b.TrainerName,
		Turn:    b.Session.Turn(),
		Phase:   b.Session.Phase(),
		Outcome: b.Session.Outcome(),
		Field:   b.Session.FieldState(),
	}
	for i := 0; i < 2; i++ {
		view.Sides[i] = sideView(b.Session.SideAt(i))
	}
	return view
}

func sideView(s *battle.Side) SideView {
	view := SideView{ID: s.ID, Name: s.Name, Team: make([]CombatantView, len(s.Team))}
	for i, c := range s.Team {
		moves := make([]MoveView, len(c.Moves))
		for j, slot := range c.Moves {
			moves[j] = MoveView{
				Name:  slot.Move.Name,
				Type:  string(slot.Move.Type),
				PP:    slot.PP,
				MaxPP: slot.Move.PP,
			}
		}
		view.Team[i] = CombatantView{
			Name:    c.Name,
			Species: c.Species.Name,
			Level:   c.Level,
			HP:      c.HP,
			MaxHP:   c.MaxHP(),
			Status:  c.Status,
			Active:  i == s.Active,
			Moves:   moves,
		}
	}
	return view
}
