package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool bounds for the battle-record store. Records arrive in small batches
// from a single writer goroutine, so the defaults stay modest.
const (
	defaultMaxOpen = 10
	defaultMaxIdle = 5
	defaultMaxLife = time.Hour
)

// Open connects to the MySQL battle-record store described by dsn.
// Non-positive pool arguments fall back to the defaults above.
func Open(dsn string, maxOpen, maxIdle int, maxLife time.Duration) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql: empty dsn")
	}
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpen
	}
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	if maxLife <= 0 {
		maxLife = defaultMaxLife
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLife)
	return db, nil
}
