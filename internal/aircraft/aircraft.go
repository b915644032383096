// Package aircraft assembles a complete aircraft mass tree from a definition
// file: fuselage, wings, tails, landing gear, propulsion and equipment.
package aircraft

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aerocats/massprops/internal/fuselage"
	"github.com/aerocats/massprops/internal/mass"
	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/internal/propulsion"
	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/internal/wing"
	"github.com/aerocats/massprops/pkg/core"
)

// ErrWingConflict is returned when a definition sets both a wing and a box wing.
var ErrWingConflict = errors.New("definition sets both wing and boxWing")

// Built is the result of assembling a definition.
type Built struct {
	Aircraft *core.Aircraft
	Fuselage *fuselage.Fuselage
	// Warnings are non-fatal findings such as propulsion rating mismatches.
	Warnings []string
}

// NewEnv prepares the unit converter and material library for a definition.
// Missing input units default to the imperial system.
func NewEnv(cfg Config, gravity float64) (parts.Env, error) {
	input := cfg.Units
	if input.Length == "" {
		input.Length = units.Imperial.Length
	}
	if input.Force == "" {
		input.Force = units.Imperial.Force
	}
	if input.Inertia == "" {
		input.Inertia = units.Imperial.Inertia
	}
	if err := input.Validate(); err != nil {
		return parts.Env{}, err
	}

	env, err := parts.NewEnv(input, materials.Default(), gravity)
	if err != nil {
		return parts.Env{}, err
	}

	names := make([]string, 0, len(cfg.Materials))
	for name := range cfg.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m, err := env.Material(cfg.Materials[name])
		if err != nil {
			return parts.Env{}, fmt.Errorf("material %q: %w", name, err)
		}
		m.Name = name
		env.Materials[strings.ToLower(name)] = m
	}
	return env, nil
}

// Build assembles the aircraft described by cfg.
func Build(cfg Config, agg *mass.Aggregator) (*Built, error) {
	if cfg.Wing != nil && cfg.BoxWing != nil {
		return nil, ErrWingConflict
	}
	env, err := NewEnv(cfg, agg.Gravity())
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = "Aircraft"
	}

	fus, err := fuselage.Build(cfg.Fuselage, env)
	if err != nil {
		return nil, fmt.Errorf("fuselage: %w", err)
	}
	layout := fus.Layout
	root := core.NewGroupBuilder(name).Add(fus.Group)
	out := &Built{Fuselage: fus}

	wingX := env.Conv.Length(cfg.WingX)
	wingRoot := core.NewVec3(wingX, 0, 0)
	if box, ok := layout.SectionAt(wingX); ok {
		wingRoot.Z = box.Bottom() + cfg.WingFuseFrac*box.Height
	}

	var rootChord float64
	switch {
	case cfg.Wing != nil:
		wc := *cfg.Wing
		if wc.Name == "" {
			wc.Name = "Wing"
		}
		s, err := wing.BuildAt(wc, env, wingRoot)
		if err != nil {
			return nil, err
		}
		root.Add(s.Group)
		rootChord = s.Planform.RootChord
	case cfg.BoxWing != nil:
		bp, err := wing.BuildBiplane(*cfg.BoxWing, env, wingRoot)
		if err != nil {
			return nil, err
		}
		root.Add(bp.Group)
		rootChord = bp.Lower.Planform.RootChord
	}

	tail, _ := layout.Tail()
	for _, t := range []struct {
		cfg      *TailConfig
		name     string
		vertical bool
	}{
		{cfg.HTail, "HTail", false},
		{cfg.VTail, "VTail", true},
	} {
		if t.cfg == nil {
			continue
		}
		sc := t.cfg.Surface
		if sc.Name == "" {
			sc.Name = t.name
		}
		if t.vertical {
			sc.Vertical = true
		}
		at := core.NewVec3(wingX+env.Conv.Length(t.cfg.L), 0, tail.Top+env.Conv.Length(t.cfg.Z))
		s, err := wing.BuildAt(sc, env, at)
		if err != nil {
			return nil, err
		}
		root.Add(s.Group)
	}

	ground := 0.0
	if cfg.MainGear != nil {
		x := env.Conv.Length(cfg.MainGear.X)
		if x == 0 {
			x = wingX + rootChord/4
		}
		g, z, err := mainGear(*cfg.MainGear, env, layout, x)
		if err != nil {
			return nil, err
		}
		ground = z
		root.Add(g)
	}
	if cfg.NoseGear != nil {
		g, err := noseGear(*cfg.NoseGear, env, layout, ground, cfg.MainGear != nil)
		if err != nil {
			return nil, err
		}
		root.Add(g)
	}

	if cfg.Propulsion != nil {
		firewall, err := thrustLine(cfg, env, layout)
		if err != nil {
			return nil, err
		}
		p, err := propulsion.Build(*cfg.Propulsion, env, firewall, layoutLocator{layout})
		if err != nil {
			return nil, fmt.Errorf("propulsion: %w", err)
		}
		root.Add(p.Group)
		out.Warnings = append(out.Warnings, p.Warnings()...)
	}

	if len(cfg.Equipment) > 0 {
		eb := core.NewGroupBuilder("Equipment").Label(LabelEquipment)
		for _, ec := range cfg.Equipment {
			e, err := layout.Mount(ec.Section, ec.Component, env)
			if err != nil {
				return nil, fmt.Errorf("equipment: %w", err)
			}
			eb.AddElement(e)
		}
		eq, err := eb.Build()
		if err != nil {
			return nil, err
		}
		root.Add(eq)
	}

	g, err := root.Build()
	if err != nil {
		return nil, err
	}
	ac, err := core.NewAircraft(name, g, fus.Reference)
	if err != nil {
		return nil, err
	}
	out.Aircraft = ac
	return out, nil
}

// thrustLine returns the firewall point on the nose front bulkhead.
func thrustLine(cfg Config, env parts.Env, layout fuselage.Layout) (core.Vec3, error) {
	boxes := layout.Sections()
	if len(boxes) == 0 {
		return core.Vec3{}, errors.New("propulsion needs a fuselage")
	}
	nose := boxes[0]
	p := core.NewVec3(nose.StartX, 0, 0)
	if cfg.EngineAlign > 0 {
		h := env.Conv.Length(cfg.Fuselage.Sections[0].FrontBulk.Height)
		p.Z = nose.Top - h + cfg.EngineAlign*h
	}
	return p, nil
}

type layoutLocator struct {
	layout fuselage.Layout
}

func (l layoutLocator) Locate(m propulsion.Mount) (core.Vec3, error) {
	return l.layout.Locate(m.Section, m.Face, m.Fraction)
}
