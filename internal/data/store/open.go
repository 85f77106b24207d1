package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vwconsorcio/consorcio-backend/internal/data/db"
	errs "github.com/vwconsorcio/consorcio-backend/internal/pkg/errors"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverBolt     = "bolt"
	DriverMongo    = "mongo"
)

type Config struct {
	Driver      string
	PostgresDSN string
	Postgres    db.PostgresConfig
	SQLitePath  string
	BoltPath    string
	MongoURL    string
	DBName      string
}

// Open connects the configured backend and prepares its schema.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverPostgres
	}
	log = log.With("service", "Store", "driver", driver)

	switch driver {
	case DriverPostgres, DriverSQLite:
		gdb, err := openSQL(driver, cfg, log)
		if err != nil {
			return nil, errs.Unavailable(driver+".open", err)
		}
		if err := db.AutoMigrateAll(gdb); err != nil {
			_ = db.Close(gdb)
			return nil, errs.Unavailable(driver+".migrate", err)
		}
		log.Info("store ready")
		return NewGormStore(gdb, driver), nil
	case DriverBolt:
		s, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		log.Info("store ready", "path", cfg.BoltPath)
		return s, nil
	case DriverMongo:
		s, err := OpenMongo(ctx, cfg.MongoURL, cfg.DBName)
		if err != nil {
			return nil, err
		}
		log.Info("store ready", "database", cfg.DBName)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openSQL(driver string, cfg Config, log *logger.Logger) (*gorm.DB, error) {
	if driver == DriverSQLite {
		return db.OpenSQLite(cfg.SQLitePath, log)
	}
	return db.OpenPostgres(cfg.PostgresDSN, cfg.Postgres, log)
}
