package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aerocats/massprops/internal/config"
	"github.com/aerocats/massprops/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(name string, at time.Time, weight float64) *core.Report {
	return &core.Report{
		Aircraft:    name,
		GeneratedAt: at,
		Gravity:     9.80665,
		TotalWeight: weight,
		CG:          core.NewVec3(0.4, 0, -0.02),
		InertiaCG:   core.Inertia{Ixx: 0.5, Iyy: 0.3, Izz: 0.7},
		Subtotals:   []core.Subtotal{{Label: "Wing", Weight: weight / 2}},
		Nodes:       []core.NodeSummary{{Path: name, Weight: weight, CG: core.NewVec3(0.4, 0, -0.02), HasCG: true}},
	}
}

func TestSaveReport_NotInitialized(t *testing.T) {
	b := New(config.MemoryConfig{})
	_, err := b.SaveReport(context.Background(), report("Cub", time.Now(), 10))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSaveReport_NoOutputDir(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())
	defer b.Close()

	ref, err := b.SaveReport(context.Background(), report("Cub", time.Now(), 10))
	require.NoError(t, err)
	assert.Empty(t, ref)
	assert.Empty(t, b.GetExportedFilePath())

	got, err := b.LoadReports(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveReport_WritesJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	b := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, b.Init())

	at := time.Date(2026, 3, 4, 9, 15, 2, 0, time.UTC)
	ref, err := b.SaveReport(context.Background(), report("Turbo Time", at, 40))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Turbo_Time_20260304_091502.json"), ref)
	assert.Equal(t, ref, b.GetExportedFilePath())

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"aircraft": "Turbo Time"`)

	back, err := ReadReport(ref)
	require.NoError(t, err)
	assert.Equal(t, 40.0, back.TotalWeight)
	assert.Equal(t, core.NewVec3(0.4, 0, -0.02), back.CG)
	assert.True(t, at.Equal(back.GeneratedAt))
}

func TestSaveReport_Gzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.Init())

	ref, err := b.SaveReport(context.Background(), report("Cub", time.Now(), 12))
	require.NoError(t, err)
	assert.Equal(t, ".gz", filepath.Ext(ref))

	back, err := ReadReport(ref)
	require.NoError(t, err)
	assert.Equal(t, "Cub", back.Aircraft)
	require.Len(t, back.Subtotals, 1)
	assert.Equal(t, 6.0, back.Subtotals[0].Weight)
}

func TestSaveReport_CancelledContext(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.SaveReport(ctx, report("Cub", time.Now(), 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadReports_FilterAndLimit(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()
	for i, name := range []string{"Cub", "Glider", "Cub", "Cub"} {
		_, err := b.SaveReport(ctx, report(name, base.Add(time.Duration(i)*time.Hour), float64(i)))
		require.NoError(t, err)
	}

	got, err := b.LoadReports(ctx, "Cub", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3.0, got[0].TotalWeight)
	assert.Equal(t, 2.0, got[1].TotalWeight)

	all, err := b.LoadReports(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestReadReport_Missing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
