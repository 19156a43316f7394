package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jominki354/maulwurf/internal/config"
	"github.com/jominki354/maulwurf/internal/database/migrations"
	"github.com/jominki354/maulwurf/internal/timeline"
)

// NewOperationLogFromConfig creates an OperationLog based on the database
// config type, running pending schema migrations.
func NewOperationLogFromConfig(cfg config.DatabaseConfig, appID string) (timeline.OperationLog, error) {
	var path string
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		path = filepath.Join(cfg.DataDir, appID+".db")
	case "memory":
		path = ":memory:"
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}

	log, err := NewSQLiteOperationLog(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(log.DB()); err != nil {
		log.Close()
		return nil, fmt.Errorf("migrating operation log: %w", err)
	}

	return log, nil
}
