// Package memory keeps reports in memory and exports each one to a JSON file.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/pkg/core"
)

// ErrNotInitialized is returned when the backend is used before Init.
var ErrNotInitialized = errors.New("memory backend not initialized")

// Backend stores reports in memory and exports to JSON
type Backend struct {
	cfg config.MemoryConfig

	reports        []core.Report
	lastExportPath string
	initialized    bool
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = false
	return nil
}

// SaveReport keeps a copy of r and, when an output directory is configured,
// writes it to disk. The returned reference is the exported file path, or
// empty when nothing was written.
func (b *Backend) SaveReport(ctx context.Context, r *core.Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return "", ErrNotInitialized
	}

	b.reports = append(b.reports, *r)
	if b.cfg.OutputDir == "" {
		return "", nil
	}

	path, err := b.exportJSON(r)
	if err != nil {
		return "", err
	}
	b.lastExportPath = path
	return path, nil
}

// LoadReports returns the reports saved during this process, newest first.
func (b *Backend) LoadReports(ctx context.Context, aircraft string, limit int) ([]core.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Report, 0, len(b.reports))
	for i := len(b.reports) - 1; i >= 0; i-- {
		if aircraft != "" && b.reports[i].Aircraft != aircraft {
			continue
		}
		out = append(out, b.reports[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetExportedFilePath returns the path of the most recent export.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
