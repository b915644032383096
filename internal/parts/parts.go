// Package parts holds the shared environment the subsystem builders use to
// turn definition-file numbers into mass elements.
package parts

import (
	"fmt"

	"github.com/aerocats/massprops/internal/materials"
	"github.com/aerocats/massprops/internal/units"
	"github.com/aerocats/massprops/pkg/core"
)

// Env converts input units, resolves materials and turns weights into masses
// for inertia estimates.
type Env struct {
	Conv      units.Converter
	Materials materials.Library
	Gravity   float64
}

// NewEnv builds an environment for the given input unit system.
func NewEnv(input units.System, lib materials.Library, gravity float64) (Env, error) {
	conv, err := units.NewConverter(input)
	if err != nil {
		return Env{}, err
	}
	if gravity <= 0 {
		return Env{}, fmt.Errorf("gravity must be positive, got %v", gravity)
	}
	if lib == nil {
		lib = materials.Default()
	}
	return Env{Conv: conv, Materials: lib, Gravity: gravity}, nil
}

// Mass converts a weight in newtons to kilograms.
func (e Env) Mass(weight float64) float64 { return weight / e.Gravity }

// Material resolves a material spec against the library.
func (e Env) Material(s materials.Spec) (materials.Material, error) {
	return s.Resolve(e.Materials, e.Conv)
}

// Vec converts an input-unit coordinate triple. Missing entries are zero.
func (e Env) Vec(v []float64) (core.Vec3, error) {
	if len(v) > 3 {
		return core.Vec3{}, fmt.Errorf("expected at most 3 coordinates, got %d", len(v))
	}
	var c [3]float64
	copy(c[:], v)
	return core.NewVec3(e.Conv.Length(c[0]), e.Conv.Length(c[1]), e.Conv.Length(c[2])), nil
}

// Box returns an element with the inertia of a uniform box of size (lx, ly, lz).
func (e Env) Box(name string, weight float64, pos core.Vec3, lx, ly, lz float64) core.Element {
	return core.Element{
		Name:     name,
		Weight:   weight,
		Position: pos,
		Inertia:  core.BoxInertia(e.Mass(weight), lx, ly, lz),
	}
}

// Rod returns an element with the inertia of a slender rod spanning a to b.
func (e Env) Rod(name string, weight float64, a, b core.Vec3) core.Element {
	d := b.Sub(a)
	return core.Element{
		Name:     name,
		Weight:   weight,
		Position: a.Add(b).Mul(0.5),
		Inertia:  core.RodInertia(e.Mass(weight), d.Norm(), d),
	}
}

// Labeled returns e with its weight group set.
func Labeled(e core.Element, label string) core.Element {
	e.WeightGroup = label
	return e
}
