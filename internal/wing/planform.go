package wing

import (
	"fmt"
	"math"
	"sort"

	"github.com/aerocats/massprops/pkg/core"
)

// Station sets the chord, relative to the root chord, at a span fraction.
type Station struct {
	Fb         float64 `mapstructure:"fb"`
	ChordRatio float64 `mapstructure:"chordRatio"`
}

// Planform is the geometry of one side of a lifting surface in SI body axes.
// Span fraction eta runs from 0 at the root to 1 at the tip.
type Planform struct {
	// Length is the distance from root to tip along the span direction.
	Length    float64
	RootChord float64
	// SweepFc is the chord fraction that stays unswept: 0 keeps the leading
	// edge straight, 1 the trailing edge, 0.25 the quarter chord.
	SweepFc  float64
	Dihedral float64
	Vertical bool
	Root     core.Vec3
	Airfoil  Airfoil

	stations []Station
}

func newPlanform(length, rootChord float64, stations []Station) (Planform, error) {
	if !(length > 0) {
		return Planform{}, fmt.Errorf("span must be positive, got %g", length)
	}
	if !(rootChord > 0) {
		return Planform{}, fmt.Errorf("root chord must be positive, got %g", rootChord)
	}
	st, err := normalizeStations(stations)
	if err != nil {
		return Planform{}, err
	}
	return Planform{Length: length, RootChord: rootChord, stations: st}, nil
}

func normalizeStations(in []Station) ([]Station, error) {
	st := make([]Station, 0, len(in)+2)
	st = append(st, in...)
	sort.SliceStable(st, func(i, j int) bool { return st[i].Fb < st[j].Fb })
	for _, s := range st {
		if s.Fb < 0 || s.Fb > 1 {
			return nil, fmt.Errorf("station span fraction %g outside [0,1]", s.Fb)
		}
		if s.ChordRatio < 0 {
			return nil, fmt.Errorf("station chord ratio %g is negative", s.ChordRatio)
		}
	}
	if len(st) == 0 || st[0].Fb > 0 {
		st = append([]Station{{Fb: 0, ChordRatio: 1}}, st...)
	}
	if last := st[len(st)-1]; last.Fb < 1 {
		st = append(st, Station{Fb: 1, ChordRatio: last.ChordRatio})
	}
	return st, nil
}

// taperStations returns the two stations of a straight-tapered panel.
func taperStations(tr float64) []Station {
	if tr == 0 {
		tr = 1
	}
	return []Station{{Fb: 0, ChordRatio: 1}, {Fb: 1, ChordRatio: tr}}
}

// meanRatio is the span-averaged chord ratio.
func meanRatio(st []Station) float64 {
	st, err := normalizeStations(st)
	if err != nil {
		return 0
	}
	var sum float64
	for i := 1; i < len(st); i++ {
		sum += (st[i].Fb - st[i-1].Fb) * (st[i].ChordRatio + st[i-1].ChordRatio) / 2
	}
	return sum
}

// ChordRatio interpolates the chord ratio at eta.
func (p Planform) ChordRatio(eta float64) float64 {
	st := p.stations
	if eta <= st[0].Fb {
		return st[0].ChordRatio
	}
	for i := 1; i < len(st); i++ {
		if eta <= st[i].Fb {
			a, b := st[i-1], st[i]
			if b.Fb == a.Fb {
				return b.ChordRatio
			}
			t := (eta - a.Fb) / (b.Fb - a.Fb)
			return a.ChordRatio + t*(b.ChordRatio-a.ChordRatio)
		}
	}
	return st[len(st)-1].ChordRatio
}

// Chord returns the local chord at eta.
func (p Planform) Chord(eta float64) float64 { return p.RootChord * p.ChordRatio(eta) }

// TipChord returns the chord at the tip.
func (p Planform) TipChord() float64 { return p.Chord(1) }

// Area is the planform area of this side.
func (p Planform) Area() float64 { return p.Length * p.RootChord * meanRatio(p.stations) }

// Point returns the body-frame point at span fraction eta and chord fraction fc.
func (p Planform) Point(eta, fc float64) core.Vec3 {
	c := p.Chord(eta)
	x := p.Root.X + p.SweepFc*(p.RootChord-c) + fc*c
	s := eta * p.Length
	if p.Vertical {
		return core.NewVec3(x, p.Root.Y, p.Root.Z+s)
	}
	return core.NewVec3(x, p.Root.Y+s, p.Root.Z+s*math.Tan(p.Dihedral))
}

// Thickness returns the airfoil thickness at (eta, fc).
func (p Planform) Thickness(eta, fc float64) float64 {
	return p.Airfoil.ThicknessAt(fc) * p.Chord(eta)
}

// MaxThickness returns the maximum section thickness at eta.
func (p Planform) MaxThickness(eta float64) float64 {
	return p.Airfoil.Thickness * p.Chord(eta)
}

// spanAxis is the unit vector from root to tip.
func (p Planform) spanAxis() core.Vec3 {
	if p.Vertical {
		return core.NewVec3(0, 0, 1)
	}
	return core.NewVec3(0, 1, math.Tan(p.Dihedral)).Normalize()
}

// stripLength is the true length of one of n equal span strips.
func (p Planform) stripLength(n int) float64 {
	l := p.Length / float64(n)
	if !p.Vertical {
		l /= math.Cos(p.Dihedral)
	}
	return l
}
