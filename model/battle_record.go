package model

import (
	"time"

	"gorm.io/datatypes"
)

// BattleRecord is the persisted outcome of a finished battle session.
// Events and statistics go in as JSON documents; the scalar columns exist
// for querying.
type BattleRecord struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	BattleID  string         `gorm:"uniqueIndex:idx_battle_id;size:36;not null" json:"battle_id"`
	SideA     string         `gorm:"size:64;not null" json:"side_a"`
	SideB     string         `gorm:"size:64;not null" json:"side_b"`
	Winner    string         `gorm:"index:idx_battle_winner;size:64" json:"winner"`
	Draw      bool           `json:"draw"`
	Reason    string         `gorm:"size:128" json:"reason"`
	Turns     int            `json:"turns"`
	Seed      int64          `json:"seed"`
	Events    datatypes.JSON `json:"events"`
	Stats     datatypes.JSON `json:"stats"`
	CreatedAt time.Time      `gorm:"index:idx_battle_created;autoCreateTime:milli" json:"created_at"`
}
