package storage_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/storage"
	gormstorage "github.com/aerocats/massprops/internal/storage/gorm"
	"github.com/aerocats/massprops/internal/storage/memory"
	"github.com/aerocats/massprops/internal/storage/postgres"
	sqlitestorage "github.com/aerocats/massprops/internal/storage/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ storage.Backend    = (*memory.Backend)(nil)
	_ storage.Loader     = (*memory.Backend)(nil)
	_ storage.Exportable = (*memory.Backend)(nil)
	_ storage.Backend    = (*gormstorage.Backend)(nil)
	_ storage.Loader     = (*gormstorage.Backend)(nil)
	_ storage.Backend    = (*sqlitestorage.Backend)(nil)
	_ storage.Loader     = (*sqlitestorage.Backend)(nil)
	_ storage.Backend    = (*postgres.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	log := zerolog.New(io.Discard)

	b, err := storage.NewBackend(config.StorageConfig{Type: "memory"}, config.DBConfig{}, log)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)

	b, err = storage.NewBackend(config.StorageConfig{}, config.DBConfig{}, log)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)

	b, err = storage.NewBackend(config.StorageConfig{
		Type:   "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "runs.db")},
	}, config.DBConfig{}, log)
	require.NoError(t, err)
	assert.IsType(t, &sqlitestorage.Backend{}, b)
	require.NoError(t, b.Close())
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{Type: "s3"}, config.DBConfig{}, zerolog.New(io.Discard))
	assert.EqualError(t, err, "unknown storage type: s3")
}

func TestNewBackend_SqliteWithoutPath(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{Type: "sqlite"}, config.DBConfig{}, zerolog.New(io.Discard))
	assert.Error(t, err)
}
