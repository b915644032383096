package aircraft

import (
	"testing"

	"github.com/aerocats/massprops/internal/fuselage"
	"github.com/aerocats/massprops/internal/mass"
	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/propulsion"
	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/internal/wing"
	"github.com/aerocats/massprops/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ply() materials.Spec { return materials.Spec{Material: "aircraftply"} }

func trainer() Config {
	return Config{
		Name:  "Trainer",
		Units: units.SI,
		Materials: map[string]materials.Spec{
			"HeavySkin": {Material: "monokote", AreaForceDensityScale: 2},
		},
		Fuselage: fuselage.Config{
			Sections: []fuselage.SectionConfig{
				{
					Name: "Nose", Length: 0.2, Align: 0.05,
					FrontBulk: fuselage.BulkheadConfig{Width: 0.1, Height: 0.1, Material: ply()},
					BackBulk:  fuselage.BulkheadConfig{Width: 0.1, Height: 0.1, Material: ply()},
				},
				{
					Name: "Body", Length: 0.6, Align: 1,
					FrontBulk: fuselage.BulkheadConfig{Width: 0.1, Height: 0.1, Material: ply()},
					BackBulk:  fuselage.BulkheadConfig{Width: 0.05, Height: 0.05, Material: ply()},
				},
			},
			XcgSection: "Body",
			XcgSecFrac: 0.25,
		},
		WingX:        0.3,
		WingFuseFrac: 1,
		Wing: &wing.SurfaceConfig{
			Span: 1.5, RootChord: 0.2,
			Skin: materials.Spec{Material: "HeavySkin"},
		},
		HTail: &TailConfig{
			L:       0.8,
			Surface: wing.SurfaceConfig{Span: 0.5, RootChord: 0.1, Skin: materials.Spec{Material: "monokote"}},
		},
		MainGear: &MainGearConfig{
			GearHeight: 0.15, WheelDiam: 0.06, WheelThickness: 0.02, HalfTrack: 0.2,
			StrutWeight: 1, WheelWeight: 0.5,
		},
		NoseGear: &NoseGearConfig{X: 0.05, WheelDiam: 0.05, StrutWeight: 0.3, WheelWeight: 0.4},
		Propulsion: &propulsion.Config{
			Motor:     propulsion.MotorConfig{Model: "Hacker_A50_14L"},
			Propeller: propulsion.PropellerConfig{Model: "APC_22x12E"},
			Battery: propulsion.BatteryConfig{
				Model: "Turnigy_6Cell_3000",
				Mount: propulsion.Mount{Section: "Nose"},
			},
			SpeedController: propulsion.SpeedControllerConfig{
				Model: "Phoenix25",
				Mount: propulsion.Mount{Section: "Body", Face: "bottom"},
			},
		},
		Equipment: []EquipmentConfig{
			{Section: "Body", Component: fuselage.ComponentConfig{Name: "Receiver", Weight: 0.2, Size: []float64{0.05, 0.03, 0.02}}},
		},
		EngineAlign: 0.5,
	}
}

func newAgg(t *testing.T) *mass.Aggregator {
	t.Helper()
	agg, err := mass.New(mass.StandardGravity)
	require.NoError(t, err)
	return agg
}

func element(t *testing.T, ac *core.Aircraft, path string) core.Element {
	t.Helper()
	n, ok := ac.Root.Find(path)
	require.True(t, ok, path)
	e, ok := n.(core.Element)
	require.True(t, ok, path)
	return e
}

func TestBuild_Trainer(t *testing.T) {
	agg := newAgg(t)
	built, err := Build(trainer(), agg)
	require.NoError(t, err)
	ac := built.Aircraft

	assert.Equal(t, "Trainer", ac.Name)
	for _, name := range []string{"Fuselage", "Wing", "HTail", "MainGear", "NoseGear", "Propulsion", "Equipment"} {
		_, ok := ac.Subsystem(name)
		assert.True(t, ok, name)
	}

	assert.InDelta(t, 0.35, ac.Reference.X(), 1e-12)

	skin := element(t, ac, "Wing/Right/Skin")
	assert.InDelta(t, 0.05, skin.Position.Z, 1e-12)
	assert.Greater(t, skin.Position.Y, 0.0)

	tail := element(t, ac, "HTail/Right/Skin")
	assert.Greater(t, tail.Position.X, 1.1)
	assert.Equal(t, "HTail", tail.WeightGroup)

	left := element(t, ac, "MainGear/LeftWheel")
	assert.InDelta(t, 0.35, left.Position.X, 1e-12)
	assert.InDelta(t, -0.2, left.Position.Y, 1e-12)
	assert.InDelta(t, -0.17, left.Position.Z, 1e-12)
	assert.Equal(t, LabelLandingGear, left.WeightGroup)

	strut := element(t, ac, "NoseGear/Strut")
	assert.InDelta(t, 0.05, strut.Position.X, 1e-12)
	assert.InDelta(t, (-0.05-0.175)/2, strut.Position.Z, 1e-12)

	motor := element(t, ac, "Propulsion/Motor")
	assert.InDelta(t, 0, motor.Position.Z, 1e-12)

	rx := element(t, ac, "Equipment/Receiver")
	assert.InDelta(t, 0.5, rx.Position.X, 1e-12)
	assert.InDelta(t, 0, rx.Position.Z, 1e-12)
	assert.Equal(t, LabelEquipment, rx.WeightGroup)

	require.Len(t, built.Warnings, 1)
	assert.Contains(t, built.Warnings[0], "Phoenix25")

	assert.InDelta(t, 1+2*0.5+0.3+0.4, agg.SubtotalByGroupLabel(ac.Root, LabelLandingGear), 1e-12)

	cg, err := agg.CenterOfGravity(ac.Root)
	require.NoError(t, err)
	assert.InDelta(t, 0, cg.Y, 1e-12)
}

func TestNewEnv_CustomMaterials(t *testing.T) {
	env, err := NewEnv(trainer(), mass.StandardGravity)
	require.NoError(t, err)

	m, err := env.Materials.Get("heavyskin")
	require.NoError(t, err)
	assert.Equal(t, "HeavySkin", m.Name)
	assert.InDelta(t, 2*0.068*units.StandardGravity, m.AreaForceDensity, 1e-12)

	env, err = NewEnv(Config{}, mass.StandardGravity)
	require.NoError(t, err)
	assert.InDelta(t, units.IN, env.Conv.Length(1), 1e-15)
}

func TestBuild_Errors(t *testing.T) {
	agg := newAgg(t)

	cfg := trainer()
	cfg.BoxWing = &wing.BiplaneConfig{Span: 1, Area: 0.2, Gap: 0.2}
	_, err := Build(cfg, agg)
	assert.ErrorIs(t, err, ErrWingConflict)

	cfg = trainer()
	cfg.Units.Length = "furlong"
	_, err = Build(cfg, agg)
	assert.ErrorIs(t, err, units.ErrUnknownUnit)

	cfg = trainer()
	cfg.Fuselage.Sections = nil
	_, err = Build(cfg, agg)
	assert.Error(t, err)

	cfg = trainer()
	cfg.Equipment[0].Section = "Cockpit"
	_, err = Build(cfg, agg)
	assert.ErrorIs(t, err, fuselage.ErrUnknownSection)

	cfg = trainer()
	cfg.Materials["Broken"] = materials.Spec{Material: "unobtainium"}
	_, err = Build(cfg, agg)
	assert.ErrorIs(t, err, materials.ErrUnknownMaterial)
}
