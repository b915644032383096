// Package wing estimates the mass distribution of lifting surfaces: rib-built
// and foam-core wings, tails, and biplane box wings with end plates.
package wing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/parts"
	"github.com/aerocats/massprops/pkg/core"
)

// Weight estimation methods.
const (
	MethodRib   = "rib"
	MethodSolid = "solid"
)

// strips is the number of span strips used to integrate distributed weights.
const strips = 24

// Section chord fractions of the rib and core area centroids and the skin.
const (
	sectionCentroidFc = 0.42
	skinCentroidFc    = 0.45
)

// SurfaceConfig describes a lifting surface in the definition file's input units.
type SurfaceConfig struct {
	Name        string `mapstructure:"name"`
	WeightGroup string `mapstructure:"weightGroup"`
	Airfoil     string `mapstructure:"airfoil"`
	// Span is tip to tip for mirrored surfaces, root to tip otherwise.
	Span float64 `mapstructure:"span"`
	// Area is the total planform area. RootChord, when set, takes precedence.
	Area       float64   `mapstructure:"area"`
	RootChord  float64   `mapstructure:"rootChord"`
	TaperRatio float64   `mapstructure:"taperRatio"`
	Stations   []Station `mapstructure:"stations"`
	SweepFc    float64   `mapstructure:"sweepFc"`
	// Dihedral in degrees.
	Dihedral float64 `mapstructure:"dihedral"`
	Vertical bool    `mapstructure:"vertical"`
	// Half turns off mirroring of a horizontal surface.
	Half bool `mapstructure:"half"`
	// Position is the root leading edge. Callers that place the surface
	// themselves leave it empty.
	Position []float64 `mapstructure:"position"`

	Method   string          `mapstructure:"method"`
	Ribs     RibConfig       `mapstructure:"ribs"`
	Skin     materials.Spec  `mapstructure:"skin"`
	Core     materials.Spec  `mapstructure:"core"`
	Spars    []SparConfig    `mapstructure:"spars"`
	Controls []ControlConfig `mapstructure:"controls"`
}

// RibConfig spaces constant-thickness ribs along the span.
type RibConfig struct {
	Material materials.Spec `mapstructure:"material"`
	Spacing  float64        `mapstructure:"spacing"`
}

// SparConfig is a spanwise member at a fixed chord fraction. The cross section
// is a tube when Diameter is set, otherwise Width times Height. HeightFraction
// derives the height from the local airfoil thickness at the spar position.
type SparConfig struct {
	Name           string         `mapstructure:"name"`
	Chord          float64        `mapstructure:"chord"`
	Width          float64        `mapstructure:"width"`
	Height         float64        `mapstructure:"height"`
	HeightFraction float64        `mapstructure:"heightFraction"`
	Diameter       float64        `mapstructure:"diameter"`
	InnerDiameter  float64        `mapstructure:"innerDiameter"`
	SpanFraction   float64        `mapstructure:"spanFraction"`
	Material       materials.Spec `mapstructure:"material"`
	WeightGroup    string         `mapstructure:"weightGroup"`
}

// ControlConfig is a trailing-edge control surface of chord fraction Fc
// spanning Fb of the side, ending Ft short of the tip.
type ControlConfig struct {
	Name        string      `mapstructure:"name"`
	Fc          float64     `mapstructure:"fc"`
	Fb          float64     `mapstructure:"fb"`
	Ft          float64     `mapstructure:"ft"`
	Weight      float64     `mapstructure:"weight"`
	WeightGroup string      `mapstructure:"weightGroup"`
	Servo       ServoConfig `mapstructure:"servo"`
}

// ServoConfig places the actuator at chord fraction Fc and at Fbc along the
// control span from its inboard end.
type ServoConfig struct {
	Weight      float64 `mapstructure:"weight"`
	Fc          float64 `mapstructure:"fc"`
	Fbc         float64 `mapstructure:"fbc"`
	WeightGroup string  `mapstructure:"weightGroup"`
}

// Surface is a built lifting surface.
type Surface struct {
	Group *core.Group
	// Planform is the right side of a mirrored surface or the only side.
	Planform Planform
	Mirrored bool
}

// Area returns the total planform area.
func (s *Surface) Area() float64 {
	if s.Mirrored {
		return 2 * s.Planform.Area()
	}
	return s.Planform.Area()
}

// Span returns tip-to-tip span, or root-to-tip for unmirrored surfaces.
func (s *Surface) Span() float64 {
	if s.Mirrored {
		return 2 * s.Planform.Length
	}
	return s.Planform.Length
}

// Build assembles the surface with its root leading edge at cfg.Position.
func Build(cfg SurfaceConfig, env parts.Env) (*Surface, error) {
	pos, err := env.Vec(cfg.Position)
	if err != nil {
		return nil, fmt.Errorf("surface %q: %w", cfg.Name, err)
	}
	return BuildAt(cfg, env, pos)
}

// BuildAt assembles the surface with its root leading edge at root (SI).
func BuildAt(cfg SurfaceConfig, env parts.Env, root core.Vec3) (*Surface, error) {
	pf, mirrored, err := planformFor(cfg, env)
	if err != nil {
		return nil, fmt.Errorf("surface %q: %w", cfg.Name, err)
	}
	pf.Root = root
	return buildFromPlanform(cfg, env, pf, mirrored)
}

func planformFor(cfg SurfaceConfig, env parts.Env) (Planform, bool, error) {
	if cfg.Name == "" {
		return Planform{}, false, errors.New("surface has no name")
	}
	foilName := cfg.Airfoil
	if foilName == "" {
		foilName = "NACA0012"
	}
	foil, err := LookupAirfoil(foilName)
	if err != nil {
		return Planform{}, false, err
	}

	stations := cfg.Stations
	if len(stations) == 0 {
		stations = taperStations(cfg.TaperRatio)
	}

	mirrored := !cfg.Vertical && !cfg.Half
	length := env.Conv.Length(cfg.Span)
	area := env.Conv.Area(cfg.Area)
	if mirrored {
		length /= 2
		area /= 2
	}

	rootChord := env.Conv.Length(cfg.RootChord)
	if rootChord == 0 && length > 0 {
		if mr := meanRatio(stations); mr > 0 {
			rootChord = area / (length * mr)
		}
	}

	pf, err := newPlanform(length, rootChord, stations)
	if err != nil {
		return Planform{}, false, err
	}
	pf.SweepFc = cfg.SweepFc
	pf.Dihedral = cfg.Dihedral * math.Pi / 180
	pf.Vertical = cfg.Vertical
	pf.Airfoil = foil
	return pf, mirrored, nil
}

func buildFromPlanform(cfg SurfaceConfig, env parts.Env, pf Planform, mirrored bool) (*Surface, error) {
	label := cfg.WeightGroup
	if label == "" {
		label = cfg.Name
	}

	sideName := cfg.Name
	if mirrored {
		sideName = "Right"
	}
	side, err := buildSide(sideName, label, cfg, env, pf)
	if err != nil {
		return nil, fmt.Errorf("surface %q: %w", cfg.Name, err)
	}

	if !mirrored {
		return &Surface{Group: side, Planform: pf}, nil
	}
	left := mirror(side, "Left").(*core.Group)
	g, err := core.NewGroupBuilder(cfg.Name).Label(label).Add(side, left).Build()
	if err != nil {
		return nil, err
	}
	return &Surface{Group: g, Planform: pf, Mirrored: true}, nil
}

func buildSide(name, label string, cfg SurfaceConfig, env parts.Env, pf Planform) (*core.Group, error) {
	b := core.NewGroupBuilder(name).Label(label)

	method := strings.ToLower(cfg.Method)
	if method == "" {
		method = MethodRib
		if !cfg.Core.IsZero() {
			method = MethodSolid
		}
	}

	switch method {
	case MethodRib:
		if !cfg.Ribs.Material.IsZero() {
			ribs, err := buildRibs(cfg.Ribs, label, env, pf)
			if err != nil {
				return nil, fmt.Errorf("ribs: %w", err)
			}
			b.Add(ribs)
		}
	case MethodSolid:
		mat, err := env.Material(cfg.Core)
		if err != nil {
			return nil, fmt.Errorf("core: %w", err)
		}
		b.AddElement(distributed("Core", env, pf, 0, 1, func(eta, ds float64) (float64, float64) {
			c := pf.Chord(eta)
			return mat.VolumeWeight(pf.Airfoil.AreaRatio() * c * c * ds), sectionCentroidFc
		}))
	default:
		return nil, fmt.Errorf("unknown weight method %q", cfg.Method)
	}

	if !cfg.Skin.IsZero() {
		skin, err := env.Material(cfg.Skin)
		if err != nil {
			return nil, fmt.Errorf("skin: %w", err)
		}
		wet := 2 * (1 + 0.2*pf.Airfoil.Thickness)
		b.AddElement(distributed("Skin", env, pf, 0, 1, func(eta, ds float64) (float64, float64) {
			return skin.AreaWeight(wet * pf.Chord(eta) * ds), skinCentroidFc
		}))
	}

	for _, sc := range cfg.Spars {
		e, err := buildSpar(sc, env, pf)
		if err != nil {
			return nil, fmt.Errorf("spar %q: %w", sc.Name, err)
		}
		b.AddElement(e)
	}

	for _, cc := range cfg.Controls {
		els, err := buildControl(cc, env, pf)
		if err != nil {
			return nil, fmt.Errorf("control %q: %w", cc.Name, err)
		}
		for _, e := range els {
			b.AddElement(e)
		}
	}
	return b.Build()
}

func buildRibs(rc RibConfig, label string, env parts.Env, pf Planform) (*core.Group, error) {
	mat, err := env.Material(rc.Material)
	if err != nil {
		return nil, err
	}
	spacing := env.Conv.Length(rc.Spacing)
	if !(spacing > 0) {
		return nil, fmt.Errorf("rib spacing must be positive, got %g", spacing)
	}

	var stations []float64
	for s := 0.0; s < pf.Length-1e-9; s += spacing {
		stations = append(stations, s/pf.Length)
	}
	stations = append(stations, 1)

	b := core.NewGroupBuilder("Ribs").Label(label)
	for i, eta := range stations {
		c := pf.Chord(eta)
		w := mat.AreaWeight(pf.Airfoil.AreaRatio() * c * c)
		t := pf.MaxThickness(eta)
		lx, ly, lz := c, mat.Thickness, t
		if pf.Vertical {
			ly, lz = t, mat.Thickness
		}
		b.AddElement(env.Box(fmt.Sprintf("Rib%02d", i+1), w, pf.Point(eta, sectionCentroidFc), lx, ly, lz))
	}
	return b.Build()
}

func buildSpar(sc SparConfig, env parts.Env, pf Planform) (core.Element, error) {
	if sc.Name == "" {
		return core.Element{}, errors.New("spar has no name")
	}
	mat, err := env.Material(sc.Material)
	if err != nil {
		return core.Element{}, err
	}
	extent := sc.SpanFraction
	if extent == 0 {
		extent = 1
	}
	if extent < 0 || extent > 1 {
		return core.Element{}, fmt.Errorf("span fraction %g outside (0,1]", extent)
	}

	w := env.Conv.Length(sc.Width)
	h := env.Conv.Length(sc.Height)
	d, di := env.Conv.Length(sc.Diameter), env.Conv.Length(sc.InnerDiameter)
	if di > d {
		return core.Element{}, fmt.Errorf("inner diameter exceeds outer diameter")
	}

	e := distributed(sc.Name, env, pf, 0, extent, func(eta, ds float64) (float64, float64) {
		var area float64
		switch {
		case d > 0:
			area = math.Pi / 4 * (d*d - di*di)
		case sc.HeightFraction > 0:
			area = w * sc.HeightFraction * pf.Thickness(eta, sc.Chord)
		default:
			area = w * h
		}
		return mat.LinearWeight(ds, area), sc.Chord
	})
	e.WeightGroup = sc.WeightGroup
	return e, nil
}

func buildControl(cc ControlConfig, env parts.Env, pf Planform) ([]core.Element, error) {
	if cc.Name == "" {
		return nil, errors.New("control surface has no name")
	}
	start, end := 1-cc.Ft-cc.Fb, 1-cc.Ft
	if cc.Fb <= 0 || start < -1e-9 || end > 1+1e-9 {
		return nil, fmt.Errorf("control span [%g, %g] outside the surface", start, end)
	}
	if cc.Fc <= 0 || cc.Fc > 1 {
		return nil, fmt.Errorf("control chord fraction %g outside (0,1]", cc.Fc)
	}
	start = math.Max(start, 0)

	mid := (start + end) / 2
	a, b := pf.Point(start, 1-cc.Fc/2), pf.Point(end, 1-cc.Fc/2)
	surface := env.Rod(cc.Name, env.Conv.Force(cc.Weight), a, b)
	surface.Position = pf.Point(mid, 1-cc.Fc/2)
	surface.WeightGroup = cc.WeightGroup

	out := []core.Element{surface}
	if cc.Servo.Weight > 0 {
		eta := start + cc.Servo.Fbc*(end-start)
		servo := core.Element{
			Name:        cc.Name + "Servo",
			Weight:      env.Conv.Force(cc.Servo.Weight),
			Position:    pf.Point(eta, cc.Servo.Fc),
			WeightGroup: cc.Servo.WeightGroup,
		}
		out = append(out, servo)
	}
	return out, nil
}

type sample struct {
	weight float64
	pos    core.Vec3
}

// distributed integrates a spanwise weight distribution over [from, to] into
// one element carrying the distribution's inertia about its own CG. fn
// returns the strip weight and the chord fraction of its centroid.
func distributed(name string, env parts.Env, pf Planform, from, to float64, fn func(eta, ds float64) (float64, float64)) core.Element {
	n := int(math.Ceil(strips * (to - from)))
	if n < 1 {
		n = 1
	}
	deta := (to - from) / float64(n)
	ds := pf.stripLength(1) * deta
	samples := make([]sample, 0, n)
	for i := 0; i < n; i++ {
		eta := from + (float64(i)+0.5)*deta
		w, fc := fn(eta, ds)
		samples = append(samples, sample{weight: w, pos: pf.Point(eta, fc)})
	}
	return lump(name, env, samples, pf.spanAxis(), ds)
}

// lump collapses point samples into a single element at their weighted
// centroid. Each sample also carries the inertia of a rod of length ds along axis.
func lump(name string, env parts.Env, samples []sample, axis core.Vec3, ds float64) core.Element {
	var total float64
	var moment core.Vec3
	for _, s := range samples {
		total += s.weight
		moment = moment.Add(s.pos.Mul(s.weight))
	}
	if total == 0 {
		var pos core.Vec3
		if len(samples) > 0 {
			pos = samples[len(samples)/2].pos
		}
		return core.Element{Name: name, Position: pos}
	}
	cg := moment.Mul(1 / total)

	var inertia core.Inertia
	for _, s := range samples {
		m := env.Mass(s.weight)
		inertia = inertia.Add(core.RodInertia(m, ds, axis).Translate(m, s.pos.Sub(cg)))
	}
	return core.Element{Name: name, Weight: total, Position: cg, Inertia: inertia}
}

// mirror reflects a subtree about the y=0 plane, renaming its root.
func mirror(n core.Node, name string) core.Node {
	switch v := n.(type) {
	case core.Element:
		v.Name = name
		v.Position = v.Position.MirrorY()
		v.Inertia = v.Inertia.Mirror()
		return v
	case *core.Group:
		b := core.NewGroupBuilder(name).Label(v.Label())
		for _, c := range v.Children() {
			b.Add(mirror(c, c.NodeName()))
		}
		return b.MustBuild()
	}
	return n
}
