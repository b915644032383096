// Package storage defines where finished mass property reports are kept.
package storage

import (
	"context"

	"github.com/aerocats/massprops/pkg/core"
)

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveReport persists one report and returns a reference to it: a file
	// path for file backends, a run id for database backends.
	SaveReport(ctx context.Context, r *core.Report) (string, error)
}

// Loader is an optional interface for backends that can read reports back.
type Loader interface {
	// LoadReports returns the newest reports first. An empty aircraft name
	// matches every aircraft; limit <= 0 means no limit.
	LoadReports(ctx context.Context, aircraft string, limit int) ([]core.Report, error)
}

// Exportable is an optional interface for backends that produce files.
type Exportable interface {
	GetExportedFilePath() string
}
