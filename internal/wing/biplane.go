package wing

import (
	"fmt"

	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/pkg/core"
)

// BiplaneConfig is a box wing: two stacked wings joined at the tips by end
// plates. Gap and Stagger are fractions of Span; positive stagger moves the
// upper wing forward.
type BiplaneConfig struct {
	Name        string  `mapstructure:"name"`
	WeightGroup string  `mapstructure:"weightGroup"`
	Span        float64 `mapstructure:"span"`
	// Area is the total of both wings. Each wing gets half unless it sets its own.
	Area     float64        `mapstructure:"area"`
	Gap      float64        `mapstructure:"gap"`
	Stagger  float64        `mapstructure:"stagger"`
	Position []float64      `mapstructure:"position"`
	Lower    SurfaceConfig  `mapstructure:"lower"`
	Upper    SurfaceConfig  `mapstructure:"upper"`
	EndPlate *SurfaceConfig `mapstructure:"endPlate"`
}

// Biplane is a built box wing.
type Biplane struct {
	Group *core.Group
	Lower *Surface
	Upper *Surface
}

// Area returns the total planform area of both wings.
func (b *Biplane) Area() float64 { return b.Lower.Area() + b.Upper.Area() }

// BuildBiplane assembles the box wing with the lower root leading edge at root (SI).
func BuildBiplane(cfg BiplaneConfig, env parts.Env, root core.Vec3) (*Biplane, error) {
	name := cfg.Name
	if name == "" {
		name = "BoxWing"
	}
	label := cfg.WeightGroup
	if label == "" {
		label = name
	}
	if !(cfg.Span > 0) {
		return nil, fmt.Errorf("biplane %q: span must be positive", name)
	}
	span := env.Conv.Length(cfg.Span)
	gap := cfg.Gap * span

	lowerCfg := wingOf(cfg.Lower, cfg, "LowerWing", label)
	upperCfg := wingOf(cfg.Upper, cfg, "UpperWing", label)

	lower, err := BuildAt(lowerCfg, env, root)
	if err != nil {
		return nil, fmt.Errorf("biplane %q: %w", name, err)
	}
	upperRoot := root.Add(core.NewVec3(-cfg.Stagger*span, 0, gap))
	upper, err := BuildAt(upperCfg, env, upperRoot)
	if err != nil {
		return nil, fmt.Errorf("biplane %q: %w", name, err)
	}

	gb := core.NewGroupBuilder(name).Label(label).Add(lower.Group, upper.Group)

	if cfg.EndPlate != nil {
		plates, err := buildEndPlates(*cfg.EndPlate, env, lower.Planform, gap, label)
		if err != nil {
			return nil, fmt.Errorf("biplane %q: %w", name, err)
		}
		gb.Add(plates)
	}

	g, err := gb.Build()
	if err != nil {
		return nil, err
	}
	return &Biplane{Group: g, Lower: lower, Upper: upper}, nil
}

func wingOf(w SurfaceConfig, cfg BiplaneConfig, name, label string) SurfaceConfig {
	if w.Name == "" {
		w.Name = name
	}
	if w.WeightGroup == "" {
		w.WeightGroup = label
	}
	if w.Span == 0 {
		w.Span = cfg.Span
	}
	if w.Area == 0 && w.RootChord == 0 {
		w.Area = cfg.Area / 2
	}
	w.Vertical = false
	w.Half = false
	return w
}

// buildEndPlates hangs a vertical plate of height gap from each lower wing tip.
// Without its own size a plate starts at the lower tip chord.
func buildEndPlates(pc SurfaceConfig, env parts.Env, lower Planform, gap float64, label string) (*core.Group, error) {
	if pc.Name == "" {
		pc.Name = "EndPlate"
	}
	if pc.WeightGroup == "" {
		pc.WeightGroup = label
	}
	pc.Vertical = true
	pc.Span = gap / env.Conv.Length(1)
	if pc.Area == 0 && pc.RootChord == 0 {
		pc.RootChord = lower.TipChord() / env.Conv.Length(1)
	}

	group := pc.Name + "s"
	pc.Name = "Right"
	right, err := BuildAt(pc, env, lower.Point(1, 0))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", group, err)
	}
	left := mirror(right.Group, "Left")
	return core.NewGroupBuilder(group).Label(pc.WeightGroup).Add(right.Group, left).Build()
}
