// Package gormstorage implements the storage.Backend interface on top of any
// GORM dialect. The sqlite and postgres backends embed it.
package gormstorage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aerocats/massprops/internal/database"
	"github.com/aerocats/massprops/internal/model"
	"github.com/aerocats/massprops/internal/model/convert"
	"github.com/aerocats/massprops/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// Backend implements storage.Backend with GORM.
type Backend struct {
	deps    Dependencies
	dbReady bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the report tables.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return database.ErrNoDB
	}
	if err := database.Migrate(b.deps.DB); err != nil {
		return err
	}
	b.dbReady = true
	b.deps.Logger.Debug().Msg("GORM storage ready")
	return nil
}

// Close closes the connection pool.
func (b *Backend) Close() error {
	b.dbReady = false
	if b.deps.DB == nil {
		return nil
	}
	sqlDB, err := b.deps.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveReport inserts the run with its node and subtotal rows in one
// transaction and returns the run id.
func (b *Backend) SaveReport(ctx context.Context, r *core.Report) (string, error) {
	if !b.dbReady {
		return "", database.ErrNoDB
	}

	run, err := convert.CoreToMassRun(*r)
	if err != nil {
		return "", err
	}

	err = b.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&run).Error
	})
	if err != nil {
		b.deps.Logger.Error().Err(err).Str("aircraft", r.Aircraft).Msg("Failed to save run")
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	b.deps.Logger.Info().
		Uint("runID", run.ID).
		Str("aircraft", run.Aircraft).
		Int("nodes", len(run.Nodes)).
		Msg("Saved run")
	return strconv.FormatUint(uint64(run.ID), 10), nil
}

// LoadReports returns stored runs newest first.
func (b *Backend) LoadReports(ctx context.Context, aircraft string, limit int) ([]core.Report, error) {
	if !b.dbReady {
		return nil, database.ErrNoDB
	}

	q := b.deps.DB.WithContext(ctx).
		Preload("Nodes").
		Order("created_at DESC").
		Order("id DESC")
	if aircraft != "" {
		q = q.Where("aircraft = ?", aircraft)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var runs []model.MassRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	out := make([]core.Report, 0, len(runs))
	for _, run := range runs {
		r, err := convert.MassRunToCore(run)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", run.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadReport returns one run by id.
func (b *Backend) LoadReport(ctx context.Context, id uint) (*core.Report, error) {
	if !b.dbReady {
		return nil, database.ErrNoDB
	}

	var run model.MassRun
	if err := b.deps.DB.WithContext(ctx).Preload("Nodes").First(&run, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	r, err := convert.MassRunToCore(run)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SubtotalHistory returns the stored weights of one group label across runs
// of an aircraft, oldest first.
func (b *Backend) SubtotalHistory(ctx context.Context, aircraft, label string) ([]float64, error) {
	if !b.dbReady {
		return nil, database.ErrNoDB
	}

	var weights []float64
	err := b.deps.DB.WithContext(ctx).
		Model(&model.MassSubtotal{}).
		Joins("JOIN mass_runs ON mass_runs.id = mass_subtotals.run_id").
		Where("mass_runs.aircraft = ? AND mass_subtotals.label = ?", aircraft, label).
		Order("mass_runs.created_at ASC").
		Order("mass_runs.id ASC").
		Pluck("mass_subtotals.weight", &weights).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subtotal history: %w", err)
	}
	return weights, nil
}
