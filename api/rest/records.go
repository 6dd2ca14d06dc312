package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kasuganosora/pokebattle/game/arena"
	"github.com/kasuganosora/pokebattle/record"
)

// RecordHandler serves persisted battle records and the win leaderboard.
type RecordHandler struct {
	records *record.Service
	arena   *arena.Manager
	logger  *zap.Logger
}

// NewRecordHandler creates a RecordHandler. records may be nil when
// persistence is disabled; the endpoints then report 404.
func NewRecordHandler(records *record.Service, m *arena.Manager, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{records: records, arena: m, logger: logger}
}

// Recent returns the latest finished battles, newest first.
// GET /api/records?limit=20
func (h *RecordHandler) Recent(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle recording is disabled"})
		return
	}
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	recs, err := h.records.Recent(limit)
	if err != nil {
		h.logger.Error("recent records query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

// ByBattleID returns one persisted battle record with its full event log.
// GET /api/records/:battle_id
func (h *RecordHandler) ByBattleID(c *gin.Context) {
	if h.records == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle recording is disabled"})
		return
	}
	rec, err := h.records.ByBattleID(c.Param("battle_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error("record query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// LeaderboardEntry is one row of the win leaderboard.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	SideID string `json:"side_id"`
	Wins   int    `json:"wins"`
}

// Leaderboard returns sides ranked by battle wins.
// GET /api/leaderboard?limit=10
func (h *RecordHandler) Leaderboard(c *gin.Context) {
	limit := 10
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	members, err := h.arena.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("leaderboard query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	entries := make([]LeaderboardEntry, len(members))
	for i, m := range members {
		entries[i] = LeaderboardEntry{Rank: i + 1, SideID: m.Member, Wins: int(m.Score)}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
