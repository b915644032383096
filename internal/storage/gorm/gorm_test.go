package gormstorage

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/aerocats/massprops/internal/database"
	"github.com/aerocats/massprops/internal/model"
	"github.com/aerocats/massprops/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := database.GetSqliteDBStandalone("")
	require.NoError(t, err)
	b := New(Dependencies{DB: db, Logger: zerolog.New(io.Discard)})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func testReport(name string, at time.Time, wing float64) *core.Report {
	return &core.Report{
		Aircraft:    name,
		GeneratedAt: at,
		Gravity:     9.80665,
		TotalWeight: wing + 10,
		CG:          core.NewVec3(0.42, 0, -0.01),
		InertiaCG:   core.Inertia{Ixx: 1.2, Iyy: 0.8, Izz: 1.9, Ixz: -0.02},
		Design:      core.DesignReference{Section: "PayBay", Fraction: 0.3},
		DesignCGX:   0.4,
		CGOffsetX:   0.02,
		Subtotals: []core.Subtotal{
			{Label: "Fuselage", Weight: 10},
			{Label: "Wing", Weight: wing},
		},
		Nodes: []core.NodeSummary{
			{Path: name, Weight: wing + 10, CG: core.NewVec3(0.42, 0, -0.01), HasCG: true},
			{Path: name + "/Wing", Depth: 1, Label: "Wing", Weight: wing, CG: core.NewVec3(0.5, 0, 0), HasCG: true},
			{Path: name + "/Fuselage", Depth: 1, IsLeaf: true, Label: "Fuselage", Weight: 10, CG: core.NewVec3(0.3, 0, -0.04), HasCG: true},
		},
	}
}

func TestInit_NoDB(t *testing.T) {
	b := New(Dependencies{Logger: zerolog.New(io.Discard)})
	assert.ErrorIs(t, b.Init(), database.ErrNoDB)
	assert.NoError(t, b.Close())
}

func TestSaveReport_BeforeInit(t *testing.T) {
	db, err := database.GetSqliteDBStandalone("")
	require.NoError(t, err)
	b := New(Dependencies{DB: db, Logger: zerolog.New(io.Discard)})

	_, err = b.SaveReport(context.Background(), testReport("Cub", time.Now(), 20))
	assert.ErrorIs(t, err, database.ErrNoDB)
	_, err = b.LoadReports(context.Background(), "", 0)
	assert.ErrorIs(t, err, database.ErrNoDB)
}

func TestSaveReport_Rows(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	id, err := b.SaveReport(ctx, testReport("TurboTime", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), 30))
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	var nodes int64
	require.NoError(t, b.DB().Model(&model.MassNode{}).Where("run_id = ?", 1).Count(&nodes).Error)
	assert.Equal(t, int64(3), nodes)

	var subtotals int64
	require.NoError(t, b.DB().Model(&model.MassSubtotal{}).Count(&subtotals).Error)
	assert.Equal(t, int64(2), subtotals)
}

func TestLoadReport_RoundTrip(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	in := testReport("TurboTime", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), 30)
	_, err := b.SaveReport(ctx, in)
	require.NoError(t, err)

	out, err := b.LoadReport(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, in.Aircraft, out.Aircraft)
	assert.Equal(t, in.TotalWeight, out.TotalWeight)
	assert.Equal(t, in.CG, out.CG)
	assert.Equal(t, in.InertiaCG, out.InertiaCG)
	assert.Equal(t, in.Subtotals, out.Subtotals)
	assert.Equal(t, in.Nodes, out.Nodes)
	assert.Equal(t, "PayBay", out.Design.Section)
	assert.Equal(t, 0.02, out.CGOffsetX)

	_, err = b.LoadReport(ctx, 99)
	assert.Error(t, err)
}

func TestLoadReports_NewestFirst(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Cub", "Glider", "Cub"} {
		_, err := b.SaveReport(ctx, testReport(name, base.Add(time.Duration(i)*time.Hour), float64(20+i)))
		require.NoError(t, err)
	}

	got, err := b.LoadReports(ctx, "Cub", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 32.0, got[0].TotalWeight)
	assert.Equal(t, 30.0, got[1].TotalWeight)
	require.Len(t, got[0].Nodes, 3)
	assert.Equal(t, "Cub/Wing", got[0].Nodes[1].Path)

	got, err = b.LoadReports(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cub", got[0].Aircraft)
}

func TestSubtotalHistory(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, wing := range []float64{20, 22, 21} {
		_, err := b.SaveReport(ctx, testReport("Cub", base.Add(time.Duration(i)*time.Minute), wing))
		require.NoError(t, err)
	}
	_, err := b.SaveReport(ctx, testReport("Glider", base, 50))
	require.NoError(t, err)

	weights, err := b.SubtotalHistory(ctx, "Cub", "Wing")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 22, 21}, weights)

	weights, err = b.SubtotalHistory(ctx, "Cub", "Tail")
	require.NoError(t, err)
	assert.Empty(t, weights)
}
