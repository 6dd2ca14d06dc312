package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasuganosora/pokebattle/game/ai"
)

// PresetHandler lists the AI trainer presets available as opponents.
type PresetHandler struct {
	presets []ai.Preset
}

// NewPresetHandler creates a PresetHandler.
func NewPresetHandler(presets []ai.Preset) *PresetHandler {
	return &PresetHandler{presets: presets}
}

// PresetView hides team movesets from the client; opponents stay a surprise.
type PresetView struct {
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Personality string `json:"personality"`
	TeamSize    int    `json:"team_size"`
}

// List returns all trainer presets.
// GET /api/presets
func (h *PresetHandler) List(c *gin.Context) {
	out := make([]PresetView, len(h.presets))
	for i, p := range h.presets {
		out[i] = PresetView{
			Name:        p.Name,
			Difficulty:  string(p.Difficulty),
			Personality: string(p.Personality),
			TeamSize:    len(p.Team),
		}
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}
