// Package database opens the gorm connection and owns the schema.
package database

import (
	"fmt"
	"strings"

	"snake-arena/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// oneActiveSessionIndex backs the "one active session per user" rule at the
// storage level. Both Postgres and SQLite accept partial indexes.
const oneActiveSessionIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_game_sessions_one_active
	ON game_sessions (user_id) WHERE is_active`

// Dialector picks the driver from the DSN: postgres URLs and key=value DSNs go
// to Postgres, anything else is treated as a SQLite file (an optional
// "sqlite://" prefix is stripped).
func Dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn)
	default:
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	}
}

// Open connects and returns a pool. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey on every driver.
func Open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if db.Dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; a single connection keeps in-memory
		// databases alive and turns concurrent transactions into a queue.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.GameSession{},
		&models.LeaderboardEntry{},
		&models.Todo{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := db.Exec(oneActiveSessionIndex).Error; err != nil {
		return fmt.Errorf("create active session index: %w", err)
	}
	return nil
}
