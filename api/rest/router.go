package rest

import "github.com/gin-gonic/gin"

// Register mounts every REST endpoint under /api.
func Register(r *gin.Engine, battles *BattleHandler, presets *PresetHandler, records *RecordHandler) {
	api := r.Group("/api")

	api.POST("/battles", battles.Create)
	api.GET("/battles", battles.List)
	api.GET("/battles/:id", battles.Get)
	api.GET("/battles/:id/events", battles.Events)
	api.POST("/battles/:id/actions", battles.SubmitAction)
	api.DELETE("/battles/:id", battles.Delete)
	api.POST("/exhibitions", battles.Exhibition)

	api.GET("/presets", presets.List)
	api.GET("/records", records.Recent)
	api.GET("/records/:battle_id", records.ByBattleID)
	api.GET("/leaderboard", records.Leaderboard)
}
