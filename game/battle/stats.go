package battle

// SideStats aggregates one side's totals over a battle.
type SideStats struct {
	DamageDealt       int `json:"damage_dealt"`
	MovesUsed         int `json:"moves_used"`
	Switches          int `json:"switches"`
	CriticalHits      int `json:"critical_hits"`
	StatusesInflicted int `json:"statuses_inflicted"`
}

// Statistics is the running aggregate for a session, updated as the battle
// plays out and frozen when it finishes.
type Statistics struct {
	SideIDs [2]string    `json:"side_ids"`
	Turns   int          `json:"turns"`
	PerSide [2]SideStats `json:"per_side"`
}
