// Package materials holds the default building-material library and the
// per-part overrides applied on top of it.
package materials

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aerocats/massprops/internal/units"
)

// ErrUnknownMaterial is returned when a spec names a material missing from the library.
var ErrUnknownMaterial = errors.New("unknown material")

// Material describes how much a building material weighs. All densities are
// weights (newtons) per unit volume, area or length; zero means unset.
type Material struct {
	Name               string  `json:"name"`
	ForceDensity       float64 `json:"forceDensity"`
	AreaForceDensity   float64 `json:"areaForceDensity"`
	LinearForceDensity float64 `json:"linearForceDensity"`
	Thickness          float64 `json:"thickness"`
}

// AreaWeight returns the weight of a sheet of the given area. It prefers the
// area density and falls back to volume density times thickness.
func (m Material) AreaWeight(area float64) float64 {
	if m.AreaForceDensity > 0 {
		return m.AreaForceDensity * area
	}
	return m.ForceDensity * m.Thickness * area
}

// LinearWeight returns the weight of a member of the given length and cross
// section. It prefers the linear density and falls back to volume density.
func (m Material) LinearWeight(length, crossSection float64) float64 {
	if m.LinearForceDensity > 0 {
		return m.LinearForceDensity * length
	}
	return m.ForceDensity * crossSection * length
}

// VolumeWeight returns the weight of a solid of the given volume.
func (m Material) VolumeWeight(volume float64) float64 {
	return m.ForceDensity * volume
}

// Library maps material names to materials. Lookups are case-insensitive.
type Library map[string]Material

// Default returns a fresh copy of the built-in library.
func Default() Library {
	g := units.StandardGravity
	lib := Library{}
	for _, m := range []Material{
		{Name: "Balsa", ForceDensity: 160 * g},
		{Name: "Basswood", ForceDensity: 420 * g},
		{Name: "AircraftPly", ForceDensity: 550 * g, Thickness: 0.125 * units.IN},
		{Name: "PinkFoam", ForceDensity: 29 * g},
		{Name: "CarbonBar", ForceDensity: 1600 * g},
		{Name: "Steel", ForceDensity: 7850 * g},
		{Name: "Aluminum", ForceDensity: 2700 * g},
		{Name: "Monokote", AreaForceDensity: 0.068 * g, Thickness: 0.0015 * units.IN},
		{Name: "Ultracote", AreaForceDensity: 0.078 * g, Thickness: 0.0017 * units.IN},
	} {
		lib[strings.ToLower(m.Name)] = m
	}
	return lib
}

// Get returns a copy of the named material.
func (l Library) Get(name string) (Material, error) {
	m, ok := l[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Material{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownMaterial, name, strings.Join(l.Names(), ", "))
	}
	return m, nil
}

// Names returns the material names in sorted order.
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for _, m := range l {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

// Spec selects a base material and adjusts it for one part. Override values
// are in the definition file's input units and replace the base value when
// positive. Scale values multiply the (possibly overridden) value when positive.
type Spec struct {
	Material           string  `json:"material" mapstructure:"material"`
	ForceDensity       float64 `json:"forceDensity" mapstructure:"forceDensity"`
	AreaForceDensity   float64 `json:"areaForceDensity" mapstructure:"areaForceDensity"`
	LinearForceDensity float64 `json:"linearForceDensity" mapstructure:"linearForceDensity"`
	Thickness          float64 `json:"thickness" mapstructure:"thickness"`

	ForceDensityScale     float64 `json:"forceDensityScale" mapstructure:"forceDensityScale"`
	AreaForceDensityScale float64 `json:"areaForceDensityScale" mapstructure:"areaForceDensityScale"`
}

// Resolve produces the material for a part. A spec with no material name but
// explicit densities describes an ad-hoc material.
func (s Spec) Resolve(lib Library, conv units.Converter) (Material, error) {
	var m Material
	if s.Material != "" {
		base, err := lib.Get(s.Material)
		if err != nil {
			return Material{}, err
		}
		m = base
	} else {
		m.Name = "custom"
	}

	if s.ForceDensity > 0 {
		m.ForceDensity = conv.ForceDensity(s.ForceDensity)
	}
	if s.AreaForceDensity > 0 {
		m.AreaForceDensity = conv.AreaForceDensity(s.AreaForceDensity)
	}
	if s.LinearForceDensity > 0 {
		m.LinearForceDensity = conv.LinearForceDensity(s.LinearForceDensity)
	}
	if s.Thickness > 0 {
		m.Thickness = conv.Length(s.Thickness)
	}
	if s.ForceDensityScale > 0 {
		m.ForceDensity *= s.ForceDensityScale
	}
	if s.AreaForceDensityScale > 0 {
		m.AreaForceDensity *= s.AreaForceDensityScale
	}

	if m.ForceDensity == 0 && m.AreaForceDensity == 0 && m.LinearForceDensity == 0 {
		return Material{}, fmt.Errorf("material %q has no density", m.Name)
	}
	return m, nil
}

// IsZero reports whether s selects no material.
func (s Spec) IsZero() bool {
	return s == Spec{}
}
