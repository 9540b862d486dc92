package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jipsifred/Vorlesungen/internal/config"
	"github.com/jipsifred/Vorlesungen/internal/database/migrations"
	"github.com/jipsifred/Vorlesungen/internal/library"
)

// NewStoreFromConfig creates a MetadataStore based on the database
// config type and brings the schema up to date.
func NewStoreFromConfig(cfg config.DatabaseConfig) (library.MetadataStore, error) {
	var path string
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = filepath.Join(cfg.DataDir, "library.db")
	case "memory":
		path = ":memory:"
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}

	store, err := NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(store.db); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return store, nil
}
