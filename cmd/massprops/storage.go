package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/internal/influx"
	"github.com/aerocats/massprops/internal/storage"
	"github.com/aerocats/massprops/pkg/core"
)

// subtotalHistorian is implemented by the database backends.
type subtotalHistorian interface {
	SubtotalHistory(ctx context.Context, aircraft, label string) ([]float64, error)
}

// openStorage creates and initializes the configured backend.
func (a *app) openStorage() (storage.Backend, error) {
	sc := config.GetStorageConfig()
	backend, err := storage.NewBackend(sc, config.GetDBConfig(), a.zlog)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to initialize storage backend %q: %w", sc.Type, err)
	}
	a.logger.Info("Storage backend initialized", "type", sc.Type)
	return backend, nil
}

// saveReport stores r and returns the backend's reference to it.
func (a *app) saveReport(ctx context.Context, r *core.Report) (string, error) {
	backend, err := a.openStorage()
	if err != nil {
		return "", err
	}

	ref, err := backend.SaveReport(ctx, r)
	if closeErr := backend.Close(); closeErr != nil {
		a.logger.Warn("Failed to close storage backend", "error", closeErr)
	}
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	a.logger.Info("Report saved", "ref", ref)
	return ref, nil
}

// publishReport sends the run summary to InfluxDB when enabled. Failures
// are logged and do not fail the run.
func (a *app) publishReport(ctx context.Context, r *core.Report) {
	m := influx.NewManager(a.zlog, config.GetInfluxConfig())
	if err := m.Connect(ctx); err != nil {
		if !errors.Is(err, influx.ErrDisabled) {
			a.logger.Warn("InfluxDB unavailable", "error", err)
		}
		return
	}
	defer func() {
		if err := m.Close(); err != nil {
			a.logger.Warn("Failed to close InfluxDB manager", "error", err)
		}
	}()

	if err := m.WriteReport(ctx, r); err != nil {
		a.logger.Warn("Failed to publish run summary", "error", err)
		return
	}
	a.logger.Debug("Run summary published", "valid", m.IsValid)
}
