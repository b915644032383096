// Package postgres implements the storage.Backend interface using GORM/PostgreSQL.
package postgres

import (
	"fmt"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/database"
	gormstorage "github.com/aerocats/massprops/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend is the GORM backend bound to a Postgres connection.
type Backend struct {
	*gormstorage.Backend
	cfg config.DBConfig
}

// New connects to Postgres. The schema is migrated by Init.
func New(cfg config.DBConfig, log zerolog.Logger) (*Backend, error) {
	m := database.NewManager(log)
	if err := m.ConnectPostgres(cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres at %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{DB: m.DB, Logger: log}),
		cfg:     cfg,
	}, nil
}
