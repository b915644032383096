package fuselage

import (
	"testing"

	"github.com/aerocats/massprops/internal/mass"
	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) parts.Env {
	t.Helper()
	env, err := parts.NewEnv(units.Imperial, materials.Default(), mass.StandardGravity)
	require.NoError(t, err)
	return env
}

func twoSectionConfig() Config {
	return Config{
		BaseWeight: 1.5,
		Sections: []SectionConfig{
			{
				Name:      "Nose",
				Length:    10,
				Align:     4,
				FrontBulk: BulkheadConfig{Width: 2, Height: 2, BaseWeightFraction: 0.01},
				BackBulk:  BulkheadConfig{Width: 8, Height: 8, BaseWeightFraction: 0.03},
				Components: []ComponentConfig{
					{Name: "Servo", Weight: 0.05, Size: []float64{1, 1, 0.5}, Face: "Front", Fraction: []float64{0.5, 0.5, 0.5}, WeightGroup: "Controls"},
				},
			},
			{
				Name:      "PayBay",
				Length:    20,
				Align:     0,
				FrontBulk: BulkheadConfig{Width: 8, Height: 6, Material: materials.Spec{Material: "AircraftPly"}},
				BackBulk:  BulkheadConfig{Width: 8, Height: 6, Material: materials.Spec{Material: "AircraftPly"}},
				Skin:      materials.Spec{Material: "Ultracote"},
				Stringer:  materials.Spec{LinearForceDensity: 0.005},
			},
		},
		XcgSection: "PayBay",
		XcgSecFrac: 0.25,
	}
}

func TestBox_Place(t *testing.T) {
	b := Box{StartX: 0, Length: 10, Width: 4, Height: 2, Top: 1}

	assert.Equal(t, core.NewVec3(5, 0, 0), b.Place(Front, core.NewVec3(0.5, 0.5, 0.5)))
	assert.InDelta(t, 14.0, b.Place(Back, core.NewVec3(-0.4, 0.5, 0.5)).X, 1e-12)
	assert.InDelta(t, 0.5, b.Place(Top, core.NewVec3(0, 0, 0.25)).Z, 1e-12)
	assert.InDelta(t, 1.0, b.Place(Right, core.NewVec3(0, 0.25, 0)).Y, 1e-12)
	assert.InDelta(t, -1.0, b.Place(Left, core.NewVec3(0, 0.25, 0)).Y, 1e-12)
}

func TestParseFace(t *testing.T) {
	f, err := ParseFace("Back")
	require.NoError(t, err)
	assert.Equal(t, Back, f)

	f, err = ParseFace("")
	require.NoError(t, err)
	assert.Equal(t, Front, f)

	_, err = ParseFace("Inside")
	assert.ErrorIs(t, err, ErrUnknownFace)
}

func TestBuild_BulkheadsAndAlignment(t *testing.T) {
	env := testEnv(t)
	f, err := Build(twoSectionConfig(), env)
	require.NoError(t, err)

	nose, err := f.Layout.Section("nose")
	require.NoError(t, err)
	assert.InDelta(t, 4*units.IN, nose.Top, 1e-12)

	// Align 0 puts the bottom of the 6 in front bulkhead on the bottom of the
	// 8 in back bulkhead of the nose.
	bay, err := f.Layout.Section("PayBay")
	require.NoError(t, err)
	assert.InDelta(t, 2*units.IN, bay.Top, 1e-12)
	assert.InDelta(t, 10*units.IN, bay.StartX, 1e-12)
	assert.InDelta(t, 30*units.IN, f.Layout.Length(), 1e-12)

	n, ok := f.Group.Find("Nose/FrontBulk")
	require.True(t, ok)
	front := n.(core.Element)
	assert.InDelta(t, 0.01*1.5*units.LBF, front.Weight, 1e-12)
	assert.InDelta(t, 3*units.IN, front.Position.Z, 1e-12)
	assert.Equal(t, DefaultLabel, front.WeightGroup)

	n, ok = f.Group.Find("Nose/Servo")
	require.True(t, ok)
	servo := n.(core.Element)
	assert.Equal(t, "Controls", servo.WeightGroup)
	assert.InDelta(t, 5*units.IN, servo.Position.X, 1e-12)
	assert.InDelta(t, 0.0, servo.Position.Y, 1e-12)
	assert.InDelta(t, 0.0, servo.Position.Z, 1e-12)
}

func TestBuild_SkinAndStringers(t *testing.T) {
	env := testEnv(t)
	f, err := Build(twoSectionConfig(), env)
	require.NoError(t, err)
	agg, err := mass.New(mass.StandardGravity)
	require.NoError(t, err)

	skin, ok := f.Group.Find("PayBay/Skin")
	require.True(t, ok)
	ultracote, _ := env.Materials.Get("Ultracote")
	area := 2 * (20*6 + 20*8) * units.IN * units.IN
	assert.InDelta(t, ultracote.AreaWeight(area), agg.TotalWeight(skin), 1e-9)

	str, ok := f.Group.Find("PayBay/Stringers")
	require.True(t, ok)
	assert.InDelta(t, 4*20*0.005*units.LBF, agg.TotalWeight(str), 1e-9)

	cg, err := agg.CenterOfGravity(str)
	require.NoError(t, err)
	assert.InDelta(t, 20*units.IN, cg.X, 1e-12)
	assert.InDelta(t, 0.0, cg.Y, 1e-12)

	assert.InDelta(t, agg.TotalWeight(f.Group), agg.SubtotalByGroupLabel(f.Group, DefaultLabel)+0.05*units.LBF, 1e-9)
}

func TestBuild_Reference(t *testing.T) {
	f, err := Build(twoSectionConfig(), testEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "PayBay", f.Reference.Section)
	assert.InDelta(t, 15*units.IN, f.Reference.X(), 1e-12)
}

func TestBuild_Payload(t *testing.T) {
	cfg := twoSectionConfig()
	cfg.Payload = &PayloadConfig{
		Section:  "PayBay",
		Weight:   2,
		Width:    4,
		Length:   2,
		Material: materials.Spec{ForceDensity: 0.25},
	}
	f, err := Build(cfg, testEnv(t))
	require.NoError(t, err)

	n, ok := f.Group.Child("Payload")
	require.True(t, ok)
	p := n.(core.Element)
	assert.Equal(t, "Payload", p.WeightGroup)
	assert.InDelta(t, 2*units.LBF, p.Weight, 1e-12)
	assert.InDelta(t, 20*units.IN, p.Position.X, 1e-12)
	assert.Greater(t, p.Inertia.Ixx, 0.0)
}

func TestBuild_Errors(t *testing.T) {
	env := testEnv(t)

	_, err := Build(Config{}, env)
	assert.Error(t, err)

	cfg := twoSectionConfig()
	cfg.XcgSection = "Wing"
	_, err = Build(cfg, env)
	assert.ErrorIs(t, err, ErrUnknownSection)

	cfg = twoSectionConfig()
	cfg.Sections[0].Components[0].Face = "Sideways"
	_, err = Build(cfg, env)
	assert.ErrorIs(t, err, ErrUnknownFace)

	cfg = twoSectionConfig()
	cfg.Sections[1].Skin = materials.Spec{Material: "Kevlar"}
	_, err = Build(cfg, env)
	assert.ErrorIs(t, err, materials.ErrUnknownMaterial)
}

func TestBuild_BulkheadWeightSource(t *testing.T) {
	env := testEnv(t)

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{
			name: "unknown material with fraction",
			modify: func(c *Config) {
				c.Sections[0].FrontBulk.Material = materials.Spec{Material: "AircraftPlyy"}
			},
			want: materials.ErrUnknownMaterial,
		},
		{
			name: "no material and no fraction",
			modify: func(c *Config) {
				c.Sections[1].FrontBulk = BulkheadConfig{Width: 8, Height: 6}
			},
			want: core.ErrContractViolation,
		},
		{
			name:   "fraction without base weight",
			modify: func(c *Config) { c.BaseWeight = 0 },
			want:   core.ErrContractViolation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := twoSectionConfig()
			tt.modify(&cfg)
			_, err := Build(cfg, env)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	cfg := twoSectionConfig()
	cfg.Sections[0].FrontBulk.Material = materials.Spec{Material: "AircraftPly"}
	f, err := Build(cfg, env)
	require.NoError(t, err)
	n, ok := f.Group.Find("Nose/FrontBulk")
	require.True(t, ok)
	assert.InDelta(t, 0.01*1.5*units.LBF, n.(core.Element).Weight, 1e-12)
}

func TestLayout_SectionAtAndLocate(t *testing.T) {
	f, err := Build(twoSectionConfig(), testEnv(t))
	require.NoError(t, err)

	b, ok := f.Layout.SectionAt(12 * units.IN)
	require.True(t, ok)
	assert.Equal(t, "PayBay", b.Name)
	b, _ = f.Layout.SectionAt(-1)
	assert.Equal(t, "Nose", b.Name)
	b, _ = f.Layout.SectionAt(100)
	assert.Equal(t, "PayBay", b.Name)

	p, err := f.Layout.Locate("PayBay", "bottom", []float64{0, 0.5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 10*units.IN, p.X, 1e-12)
	assert.InDelta(t, bay(t, f).Bottom(), p.Z, 1e-12)

	_, err = f.Layout.Locate("PayBay", "front", []float64{1, 2})
	assert.Error(t, err)

	tail, ok := f.Layout.Tail()
	require.True(t, ok)
	assert.Equal(t, "PayBay", tail.Name)
}

func bay(t *testing.T, f *Fuselage) Box {
	t.Helper()
	b, err := f.Layout.Section("PayBay")
	require.NoError(t, err)
	return b
}
