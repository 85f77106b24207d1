package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

// OpenSQLite opens a file database, or a private in-memory one for ":memory:".
// An in-memory database lives on a single connection, so the pool is pinned to one.
func OpenSQLite(path string, logg *logger.Logger) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	logg.With("service", "SQLiteStore").Info("opened", "path", path)
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
