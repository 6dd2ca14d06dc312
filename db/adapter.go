package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kasuganosora/pokebattle/config"
	dbmysql "github.com/kasuganosora/pokebattle/db/mysql"
	dbsqlite "github.com/kasuganosora/pokebattle/db/sqlite"
)

const (
	ModeSQLite = "sqlite"
	ModeMemory = "memory"
	ModeMySQL  = "mysql"
)

// Open returns a *gorm.DB for the configured database mode.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Mode {
	case ModeSQLite:
		return dbsqlite.Open(cfg.SQLitePath)
	case ModeMemory:
		return dbsqlite.Open(":memory:")
	case ModeMySQL:
		return dbmysql.Open(cfg.MySQLDSN, cfg.MySQLMaxOpen, cfg.MySQLMaxIdle, cfg.MySQLMaxLife)
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}
