// Package fuselage builds the mass tree of a box-section fuselage: bulkheads,
// skin panels, corner stringers, a payload block and mounted components.
package fuselage

import (
	"errors"
	"fmt"
	"math"

	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/pkg/core"
)

// DefaultLabel is the weight group for fuselage structure.
const DefaultLabel = "Fuselage"

// Config describes a fuselage in the definition file's input units.
type Config struct {
	Name string `mapstructure:"name"`
	// BaseWeight calibrates bulkheads that use BaseWeightFraction.
	BaseWeight float64         `mapstructure:"baseWeight"`
	Sections   []SectionConfig `mapstructure:"sections"`
	Payload    *PayloadConfig  `mapstructure:"payload"`
	// XcgSection and XcgSecFrac place the design CG inside a section.
	XcgSection string  `mapstructure:"xcgSection"`
	XcgSecFrac float64 `mapstructure:"xcgSecFrac"`
}

// SectionConfig is one box section between two bulkheads.
type SectionConfig struct {
	Name   string  `mapstructure:"name"`
	Length float64 `mapstructure:"length"`
	// Align is the top z relative to the thrust line for the first section.
	// Later sections blend between top-aligned (1) and bottom-aligned (0)
	// with the previous section's back bulkhead.
	Align       float64           `mapstructure:"align"`
	WeightGroup string            `mapstructure:"weightGroup"`
	FrontBulk   BulkheadConfig    `mapstructure:"frontBulk"`
	BackBulk    BulkheadConfig    `mapstructure:"backBulk"`
	Skin        materials.Spec    `mapstructure:"skin"`
	Stringer    materials.Spec    `mapstructure:"stringer"`
	Components  []ComponentConfig `mapstructure:"components"`
}

// BulkheadConfig sizes a bulkhead plate. When BaseWeightFraction is set the
// area density is BaseWeightFraction*BaseWeight/CalibrationArea, with the
// plate's own area used when CalibrationArea is zero.
type BulkheadConfig struct {
	Width              float64        `mapstructure:"width"`
	Height             float64        `mapstructure:"height"`
	Material           materials.Spec `mapstructure:"material"`
	BaseWeightFraction float64        `mapstructure:"baseWeightFraction"`
	CalibrationArea    float64        `mapstructure:"calibrationArea"`
	WeightGroup        string         `mapstructure:"weightGroup"`
}

// ComponentConfig is a discrete item mounted inside a section.
type ComponentConfig struct {
	Name   string  `mapstructure:"name"`
	Weight float64 `mapstructure:"weight"`
	// Size is length, width, height.
	Size        []float64 `mapstructure:"size"`
	Face        string    `mapstructure:"face"`
	Fraction    []float64 `mapstructure:"fraction"`
	WeightGroup string    `mapstructure:"weightGroup"`
}

// PayloadConfig is a solid payload block. Its height follows from weight,
// footprint and material density.
type PayloadConfig struct {
	Name        string         `mapstructure:"name"`
	Section     string         `mapstructure:"section"`
	Weight      float64        `mapstructure:"weight"`
	Width       float64        `mapstructure:"width"`
	Length      float64        `mapstructure:"length"`
	Material    materials.Spec `mapstructure:"material"`
	Face        string         `mapstructure:"face"`
	Fraction    []float64      `mapstructure:"fraction"`
	WeightGroup string         `mapstructure:"weightGroup"`
}

// Fuselage is a built fuselage: the mass tree plus the geometry other
// subsystems mount against.
type Fuselage struct {
	Group     *core.Group
	Layout    Layout
	Reference core.DesignReference
}

var errNoSections = errors.New("fuselage has no sections")

// Build assembles the fuselage. The nose front bulkhead sits at x=0 and z=0
// is the thrust line.
func Build(cfg Config, env parts.Env) (*Fuselage, error) {
	if len(cfg.Sections) == 0 {
		return nil, errNoSections
	}
	name := cfg.Name
	if name == "" {
		name = "Fuselage"
	}
	baseWeight := env.Conv.Force(cfg.BaseWeight)

	layout := Layout{}
	fb := core.NewGroupBuilder(name).Label(DefaultLabel)

	x := 0.0
	for i, sc := range cfg.Sections {
		box, err := sectionBox(sc, env, x, layout, i)
		if err != nil {
			return nil, err
		}
		layout.boxes = append(layout.boxes, box)

		g, err := buildSection(sc, box, env, baseWeight)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sc.Name, err)
		}
		fb.Add(g)
		x = box.EndX()
	}

	if cfg.Payload != nil {
		e, err := buildPayload(*cfg.Payload, layout, env)
		if err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
		fb.AddElement(e)
	}

	root, err := fb.Build()
	if err != nil {
		return nil, err
	}

	f := &Fuselage{Group: root, Layout: layout}
	if cfg.XcgSection != "" {
		ref, err := layout.Reference(cfg.XcgSection, cfg.XcgSecFrac)
		if err != nil {
			return nil, err
		}
		f.Reference = ref
	}
	return f, nil
}

func sectionBox(sc SectionConfig, env parts.Env, startX float64, prev Layout, i int) (Box, error) {
	if sc.Name == "" {
		return Box{}, fmt.Errorf("fuselage section %d has no name", i)
	}
	if !(sc.Length > 0) {
		return Box{}, fmt.Errorf("fuselage section %q: length must be positive", sc.Name)
	}
	frontW, frontH := env.Conv.Length(sc.FrontBulk.Width), env.Conv.Length(sc.FrontBulk.Height)
	backW, backH := env.Conv.Length(sc.BackBulk.Width), env.Conv.Length(sc.BackBulk.Height)

	box := Box{
		Name:       sc.Name,
		StartX:     startX,
		Length:     env.Conv.Length(sc.Length),
		Width:      math.Max(frontW, backW),
		Height:     math.Max(frontH, backH),
		backHeight: backH,
	}

	if i == 0 {
		box.Top = env.Conv.Length(sc.Align)
		return box, nil
	}
	p := prev.boxes[i-1]
	bottomAligned := p.Top - p.backHeight + frontH
	box.Top = bottomAligned + sc.Align*(p.Top-bottomAligned)
	return box, nil
}

func buildSection(sc SectionConfig, box Box, env parts.Env, baseWeight float64) (*core.Group, error) {
	label := sc.WeightGroup
	if label == "" {
		label = DefaultLabel
	}
	sb := core.NewGroupBuilder(sc.Name).Label(label)

	front, err := bulkhead("FrontBulk", sc.FrontBulk, box, box.StartX, env, baseWeight)
	if err != nil {
		return nil, err
	}
	back, err := bulkhead("BackBulk", sc.BackBulk, box, box.EndX(), env, baseWeight)
	if err != nil {
		return nil, err
	}
	sb.AddElement(front).AddElement(back)

	fw, fh := env.Conv.Length(sc.FrontBulk.Width), env.Conv.Length(sc.FrontBulk.Height)
	bw, bh := env.Conv.Length(sc.BackBulk.Width), env.Conv.Length(sc.BackBulk.Height)

	if !sc.Skin.IsZero() {
		skin, err := env.Material(sc.Skin)
		if err != nil {
			return nil, fmt.Errorf("skin: %w", err)
		}
		sb.Add(skinPanels(box, fw, fh, bw, bh, skin, env, label))
	}

	if !sc.Stringer.IsZero() {
		mat, err := env.Material(sc.Stringer)
		if err != nil {
			return nil, fmt.Errorf("stringers: %w", err)
		}
		sb.Add(stringers(box, fw, fh, bw, bh, mat, env, label))
	}

	for _, cc := range sc.Components {
		e, err := component(cc, box, env)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", cc.Name, err)
		}
		sb.AddElement(e)
	}
	return sb.Build()
}

func bulkhead(name string, bc BulkheadConfig, box Box, x float64, env parts.Env, baseWeight float64) (core.Element, error) {
	w, h := env.Conv.Length(bc.Width), env.Conv.Length(bc.Height)
	if w < 0 || h < 0 {
		return core.Element{}, fmt.Errorf("%s: negative size", name)
	}
	area := w * h

	var weight, thickness float64
	switch {
	case bc.BaseWeightFraction > 0:
		calib := env.Conv.Area(bc.CalibrationArea)
		if calib == 0 {
			calib = area
		}
		if calib == 0 {
			return core.Element{}, fmt.Errorf("%s: zero area with a base weight fraction", name)
		}
		if baseWeight <= 0 {
			return core.Element{}, fmt.Errorf("%w: %s: base weight fraction set without a fuselage base weight",
				core.ErrContractViolation, name)
		}
		weight = bc.BaseWeightFraction * baseWeight / calib * area
		if !bc.Material.IsZero() {
			m, err := env.Material(bc.Material)
			if err != nil {
				return core.Element{}, fmt.Errorf("%s: %w", name, err)
			}
			thickness = m.Thickness
		}
	case !bc.Material.IsZero():
		m, err := env.Material(bc.Material)
		if err != nil {
			return core.Element{}, fmt.Errorf("%s: %w", name, err)
		}
		weight = m.AreaWeight(area)
		thickness = m.Thickness
	default:
		return core.Element{}, fmt.Errorf("%w: %s: no material and no base weight fraction",
			core.ErrContractViolation, name)
	}

	pos := core.NewVec3(x, 0, box.Top-h/2)
	e := env.Box(name, weight, pos, thickness, w, h)
	e.WeightGroup = bc.WeightGroup
	return e, nil
}

// skinPanels covers the four lateral faces with trapezoidal panels between
// the front and back bulkhead outlines.
func skinPanels(box Box, fw, fh, bw, bh float64, skin materials.Material, env parts.Env, label string) *core.Group {
	l := box.Length
	midX := box.StartX + l/2
	avgW, avgH := (fw+bw)/2, (fh+bh)/2
	side := l * avgH
	capArea := l * avgW

	sideZ := box.Top - avgH/2
	b := core.NewGroupBuilder("Skin").Label(label)
	b.AddElement(env.Box("Left", skin.AreaWeight(side), core.NewVec3(midX, -avgW/2, sideZ), l, 0, avgH))
	b.AddElement(env.Box("Right", skin.AreaWeight(side), core.NewVec3(midX, avgW/2, sideZ), l, 0, avgH))
	b.AddElement(env.Box("Top", skin.AreaWeight(capArea), core.NewVec3(midX, 0, box.Top), l, avgW, 0))
	b.AddElement(env.Box("Bottom", skin.AreaWeight(capArea), core.NewVec3(midX, 0, box.Top-avgH), l, avgW, 0))
	return b.MustBuild()
}

func stringers(box Box, fw, fh, bw, bh float64, mat materials.Material, env parts.Env, label string) *core.Group {
	b := core.NewGroupBuilder("Stringers").Label(label)
	corners := []struct {
		name   string
		sy, sz float64
	}{
		{"UpperLeft", -1, 0}, {"UpperRight", 1, 0}, {"LowerLeft", -1, 1}, {"LowerRight", 1, 1},
	}
	for _, c := range corners {
		a := core.NewVec3(box.StartX, c.sy*fw/2, box.Top-c.sz*fh)
		z := core.NewVec3(box.EndX(), c.sy*bw/2, box.Top-c.sz*bh)
		length := z.Sub(a).Norm()
		b.AddElement(env.Rod(c.name, mat.LinearWeight(length, 0), a, z))
	}
	return b.MustBuild()
}

func component(cc ComponentConfig, box Box, env parts.Env) (core.Element, error) {
	if cc.Name == "" {
		return core.Element{}, errors.New("component has no name")
	}
	face, err := ParseFace(cc.Face)
	if err != nil {
		return core.Element{}, err
	}
	size, err := env.Vec(cc.Size)
	if err != nil {
		return core.Element{}, err
	}
	frac, err := fraction(cc.Fraction)
	if err != nil {
		return core.Element{}, err
	}
	e := env.Box(cc.Name, env.Conv.Force(cc.Weight), box.Place(face, frac), size.X, size.Y, size.Z)
	e.WeightGroup = cc.WeightGroup
	return e, nil
}

func buildPayload(pc PayloadConfig, layout Layout, env parts.Env) (core.Element, error) {
	name := pc.Name
	if name == "" {
		name = "Payload"
	}
	box, err := layout.Section(pc.Section)
	if err != nil {
		return core.Element{}, err
	}
	face, err := ParseFace(pc.Face)
	if err != nil {
		return core.Element{}, err
	}
	frac, err := fraction(pc.Fraction)
	if err != nil {
		return core.Element{}, err
	}
	weight := env.Conv.Force(pc.Weight)
	w, l := env.Conv.Length(pc.Width), env.Conv.Length(pc.Length)

	var h float64
	if weight > 0 {
		m, err := env.Material(pc.Material)
		if err != nil {
			return core.Element{}, err
		}
		if m.ForceDensity > 0 && w > 0 && l > 0 {
			h = weight / (m.ForceDensity * w * l)
		}
	}

	e := env.Box(name, weight, box.Place(face, frac), l, w, h)
	e.WeightGroup = pc.WeightGroup
	if e.WeightGroup == "" {
		e.WeightGroup = "Payload"
	}
	return e, nil
}

// fraction converts a placement triple. An empty triple is the box centre.
func fraction(v []float64) (core.Vec3, error) {
	switch len(v) {
	case 0:
		return core.NewVec3(0.5, 0.5, 0.5), nil
	case 3:
		return core.NewVec3(v[0], v[1], v[2]), nil
	}
	return core.Vec3{}, fmt.Errorf("placement fraction needs 3 values, got %d", len(v))
}

// Mount builds a component inside a named section of the layout.
func (l Layout) Mount(section string, cc ComponentConfig, env parts.Env) (core.Element, error) {
	box, err := l.Section(section)
	if err != nil {
		return core.Element{}, err
	}
	e, err := component(cc, box, env)
	if err != nil {
		return core.Element{}, fmt.Errorf("component %q: %w", cc.Name, err)
	}
	return e, nil
}
