package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kasuganosora/pokebattle/game/ai"
	"github.com/kasuganosora/pokebattle/game/arena"
	"github.com/kasuganosora/pokebattle/game/battle"
)

// BattleHandler handles battle lifecycle REST endpoints.
type BattleHandler struct {
	arena  *arena.Manager
	logger *zap.Logger
}

// NewBattleHandler creates a BattleHandler.
func NewBattleHandler(m *arena.Manager, logger *zap.Logger) *BattleHandler {
	return &BattleHandler{arena: m, logger: logger}
}

// TeamMemberRequest is one team slot in a battle creation request.
type TeamMemberRequest struct {
	Species string   `json:"species" binding:"required"`
	Level   int      `json:"level" binding:"required"`
	Moves   []string `json:"moves" binding:"required"`
	Ability string   `json:"ability"`
	Item    string   `json:"item"`
}

// CreateBattleRequest starts a battle against a named trainer preset.
type CreateBattleRequest struct {
	PlayerID string              `json:"player_id" binding:"required"`
	Trainer  string              `json:"trainer" binding:"required"`
	Seed     int64               `json:"seed"`
	Team     []TeamMemberRequest `json:"team" binding:"required"`
}

// Create starts a new battle.
// POST /api/battles
func (h *BattleHandler) Create(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	team := make([]ai.PresetMember, len(req.Team))
	for i, m := range req.Team {
		team[i] = ai.PresetMember{
			Species: m.Species,
			Level:   m.Level,
			Moves:   m.Moves,
			Ability: m.Ability,
			Item:    m.Item,
		}
	}
	b, err := h.arena.StartBattle(req.PlayerID, team, req.Trainer, req.Seed)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, arena.ErrUnknownTrainer):
			status = http.StatusNotFound
		case errors.Is(err, arena.ErrArenaFull):
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"battle_id": b.ID,
		"trainer":   b.TrainerName,
		"seed":      b.Seed,
		"state":     battleView(b),
	})
}

// List returns summaries of all tracked battles.
// GET /api/battles
func (h *BattleHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"battles": h.arena.List()})
}

// Get returns the current state of one battle.
// GET /api/battles/:id
func (h *BattleHandler) Get(c *gin.Context) {
	b, ok := h.arena.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}
	c.JSON(http.StatusOK, battleView(b))
}

// Events returns the event log of one battle. ?since=N skips the first N
// events so pollers only fetch what they have not seen.
// GET /api/battles/:id/events
func (h *BattleHandler) Events(c *gin.Context) {
	b, ok := h.arena.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}
	since := 0
	if n, err := strconv.Atoi(c.Query("since")); err == nil && n > 0 {
		since = n
	}
	events := b.Session.EventsSince(since)
	out := make([]gin.H, len(events))
	for i, ev := range events {
		out[i] = gin.H{"type": ev.EventType(), "event": ev}
	}
	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"since":     since,
		"next":      since + len(events),
		"events":    out,
	})
}

// ActionRequest is the player's choice for the current turn.
type ActionRequest struct {
	Type        string `json:"type" binding:"required"` // move, switch, forfeit
	MoveIndex   int    `json:"move_index"`
	SwitchIndex int    `json:"switch_index"`
}

// SubmitAction submits the player's action; the trainer answers immediately,
// so a successful call resolves the turn.
// POST /api/battles/:id/actions
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	b, ok := h.arena.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	act, err := parseAction(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.arena.SubmitAction(b.ID, act); err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, battle.ErrSessionFinished),
			errors.Is(err, battle.ErrNotAwaitingActions),
			errors.Is(err, battle.ErrActionAlreadySet):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, battleView(b))
}

// Delete drops a battle from the arena registry.
// DELETE /api/battles/:id
func (h *BattleHandler) Delete(c *gin.Context) {
	if _, ok := h.arena.Get(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}
	h.arena.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ExhibitionRequest pits two trainer presets against each other.
type ExhibitionRequest struct {
	TrainerA string `json:"trainer_a" binding:"required"`
	TrainerB string `json:"trainer_b" binding:"required"`
	Seed     int64  `json:"seed"`
}

// Exhibition runs a full AI-versus-AI battle and returns the outcome.
// POST /api/exhibitions
func (h *BattleHandler) Exhibition(c *gin.Context) {
	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, out, err := h.arena.RunExhibition(c.Request.Context(), req.TrainerA, req.TrainerB, req.Seed)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, arena.ErrUnknownTrainer) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"seed":      b.Seed,
		"outcome":   out,
		"turns":     b.Session.Turn(),
	})
}

func parseAction(req ActionRequest) (battle.Action, error) {
	switch req.Type {
	case "move":
		return battle.Action{Type: battle.ActionMove, MoveIndex: req.MoveIndex}, nil
	case "switch":
		return battle.Action{Type: battle.ActionSwitch, SwitchIndex: req.SwitchIndex}, nil
	case "forfeit":
		return battle.Action{Type: battle.ActionForfeit}, nil
	}
	return battle.Action{}, errors.New("action type must be move, switch or forfeit")
}
