package storage

import (
	"fmt"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/storage/memory"
	"github.com/aerocats/massprops/internal/storage/postgres"
	sqlitestorage "github.com/aerocats/massprops/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, db config.DBConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		b, err := postgres.New(db, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "sqlite":
		b, err := sqlitestorage.New(cfg.SQLite, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
