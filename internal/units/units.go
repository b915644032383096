// Package units converts between the unit names used in aircraft definition
// files and SI. Internally everything is metres, newtons, kilograms.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUnit is returned for a unit name that is not in the table.
var ErrUnknownUnit = errors.New("unknown unit")

// Kind groups units that measure the same quantity.
type Kind string

const (
	Length  Kind = "length"
	Force   Kind = "force"
	Mass    Kind = "mass"
	Inertia Kind = "inertia"
	Area    Kind = "area"
)

// StandardGravity is used to define the gravitational force units.
const StandardGravity = 9.80665

// Base unit factors
const (
	M  = 1.0
	MM = 0.001
	CM = 0.01
	IN = 0.0254
	FT = 12 * IN

	N    = 1.0
	LBM  = 0.45359237
	KG   = 1.0
	GRAM = 0.001
	SLUG = LBM * StandardGravity / FT
	LBF  = LBM * StandardGravity
	OZF  = LBF / 16
	GF   = GRAM * StandardGravity
)

var table = map[Kind]map[string]float64{
	Length: {
		"m":  M,
		"mm": MM,
		"cm": CM,
		"in": IN,
		"ft": FT,
	},
	Force: {
		"n":   N,
		"lbf": LBF,
		"ozf": OZF,
		"gf":  GF,
		"kgf": KG * StandardGravity,
	},
	Mass: {
		"kg":   KG,
		"g":    GRAM,
		"lbm":  LBM,
		"oz":   LBM / 16,
		"slug": SLUG,
	},
	Inertia: {
		"kg*m**2":    KG * M * M,
		"slug*ft**2": SLUG * FT * FT,
		"lbm*in**2":  LBM * IN * IN,
		"oz*in**2":   LBM / 16 * IN * IN,
	},
	Area: {
		"m**2":  M * M,
		"in**2": IN * IN,
		"ft**2": FT * FT,
	},
}

// Factor returns the multiplier that converts one unit of name into SI.
func Factor(kind Kind, name string) (float64, error) {
	units, ok := table[kind]
	if !ok {
		return 0, fmt.Errorf("%w: kind %q", ErrUnknownUnit, kind)
	}
	f, ok := units[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %s unit %q", ErrUnknownUnit, kind, name)
	}
	return f, nil
}

// ToSI converts value expressed in name to SI.
func ToSI(kind Kind, value float64, name string) (float64, error) {
	f, err := Factor(kind, name)
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// FromSI converts an SI value into the named unit.
func FromSI(kind Kind, value float64, name string) (float64, error) {
	f, err := Factor(kind, name)
	if err != nil {
		return 0, err
	}
	return value / f, nil
}

// System is a consistent set of display or input units.
type System struct {
	Length  string `json:"length" mapstructure:"length"`
	Force   string `json:"force" mapstructure:"force"`
	Inertia string `json:"inertia" mapstructure:"inertia"`
}

// Imperial is the unit system the RC design scripts were written in.
var Imperial = System{Length: "in", Force: "lbf", Inertia: "slug*ft**2"}

// SI uses metres, newtons and kg*m^2.
var SI = System{Length: "m", Force: "N", Inertia: "kg*m**2"}

// Validate checks that every unit in the system is known.
func (s System) Validate() error {
	for kind, name := range map[Kind]string{Length: s.Length, Force: s.Force, Inertia: s.Inertia} {
		if _, err := Factor(kind, name); err != nil {
			return err
		}
	}
	return nil
}

// Converter turns raw numbers from a definition file into SI.
// It assumes the system has been validated.
type Converter struct {
	length float64
	force  float64
}

// NewConverter builds a converter for a validated input system.
func NewConverter(s System) (Converter, error) {
	l, err := Factor(Length, s.Length)
	if err != nil {
		return Converter{}, err
	}
	f, err := Factor(Force, s.Force)
	if err != nil {
		return Converter{}, err
	}
	return Converter{length: l, force: f}, nil
}

// Length converts a length.
func (c Converter) Length(v float64) float64 { return v * c.length }

// Force converts a weight.
func (c Converter) Force(v float64) float64 { return v * c.force }

// Area converts an area.
func (c Converter) Area(v float64) float64 { return v * c.length * c.length }

// LinearForceDensity converts a weight per length, e.g. lbf/in.
func (c Converter) LinearForceDensity(v float64) float64 { return v * c.force / c.length }

// AreaForceDensity converts a weight per area, e.g. ozf/in**2.
func (c Converter) AreaForceDensity(v float64) float64 {
	return v * c.force / (c.length * c.length)
}

// ForceDensity converts a weight per volume, e.g. lbf/in**3.
func (c Converter) ForceDensity(v float64) float64 {
	return v * c.force / (c.length * c.length * c.length)
}

// AsUnit formats an SI value in the named unit with the unit appended.
func AsUnit(kind Kind, value float64, name string) string {
	v, err := FromSI(kind, value, name)
	if err != nil {
		return fmt.Sprintf("%.4g (SI)", value)
	}
	return fmt.Sprintf("%.4f %s", v, name)
}
