// Package sqlitestorage implements the storage.Backend interface on SQLite.
// It wraps the GORM backend. The database is either a file, or kept in
// memory and written to disk via VACUUM INTO after every save.
package sqlitestorage

import (
	"context"
	"fmt"
	"time"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/database"
	gormstorage "github.com/aerocats/massprops/internal/storage/gorm"
	"github.com/aerocats/massprops/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db  *gorm.DB
	cfg config.SQLiteConfig
	log zerolog.Logger
}

// New opens the SQLite database described by cfg.
func New(cfg config.SQLiteConfig, log zerolog.Logger) (*Backend, error) {
	path := cfg.Path
	if cfg.InMemory {
		path = ""
	} else if path == "" {
		return nil, fmt.Errorf("sqlite path not set")
	}

	db, err := database.GetSqliteDBStandalone(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{DB: db, Logger: log}),
		db:      db,
		cfg:     cfg,
		log:     log,
	}, nil
}

// SaveReport saves through the GORM backend, then dumps an in-memory
// database to disk.
func (b *Backend) SaveReport(ctx context.Context, r *core.Report) (string, error) {
	id, err := b.Backend.SaveReport(ctx, r)
	if err != nil {
		return "", err
	}
	if err := b.dump(); err != nil {
		return id, err
	}
	return id, nil
}

// Close dumps a final snapshot and closes the embedded GORM backend.
func (b *Backend) Close() error {
	if err := b.dump(); err != nil {
		b.log.Error().Err(err).Msg("Error dumping to disk")
	}
	return b.Backend.Close()
}

func (b *Backend) dump() error {
	if !b.cfg.InMemory || b.cfg.Path == "" {
		return nil
	}
	start := time.Now()
	if err := database.DumpMemoryDBToDisk(b.db, b.cfg.Path); err != nil {
		return err
	}
	b.log.Debug().Str("path", b.cfg.Path).Dur("duration", time.Since(start)).Msg("Dumped to disk")
	return nil
}
