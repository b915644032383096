// Package mass derives weight, center of gravity and moment of inertia from
// a tree of core.Node values. Every query walks the live tree; nothing is cached.
package mass

import (
	"errors"
	"fmt"
	"math"

	"github.com/aerocats/massprops/pkg/core"
)

// StandardGravity in m/s^2.
const StandardGravity = 9.80665

var (
	// ErrZeroWeight is returned when the CG of a group with zero total weight is requested.
	ErrZeroWeight = errors.New("division by zero: group has zero total weight")
	// ErrInvalidAxis is returned for an axis with a zero or non-finite direction.
	ErrInvalidAxis = errors.New("invalid reference axis")
	// ErrInvalidGravity is returned for a non-positive gravitational acceleration.
	ErrInvalidGravity = errors.New("gravity must be positive")
)

// Axis is a line in the body frame: a point it passes through and a direction.
type Axis struct {
	Point     core.Vec3
	Direction core.Vec3
}

// BodyAxes returns the longitudinal, lateral and vertical axes through p.
func BodyAxes(p core.Vec3) (x, y, z Axis) {
	return Axis{p, core.NewVec3(1, 0, 0)},
		Axis{p, core.NewVec3(0, 1, 0)},
		Axis{p, core.NewVec3(0, 0, 1)}
}

// Aggregator computes mass properties. Gravity converts element weights to
// masses for inertia; weight and CG queries do not depend on it.
type Aggregator struct {
	gravity float64
}

// New creates an aggregator for the given gravitational acceleration.
func New(gravity float64) (*Aggregator, error) {
	if !(gravity > 0) || math.IsInf(gravity, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidGravity, gravity)
	}
	return &Aggregator{gravity: gravity}, nil
}

// leaf dereferences *core.Element so every query treats element pointers
// the same as element values.
func leaf(n core.Node) core.Node {
	if e, ok := n.(*core.Element); ok && e != nil {
		return *e
	}
	return n
}

// Gravity returns the gravitational acceleration in use.
func (a *Aggregator) Gravity() float64 { return a.gravity }

// Mass converts a weight to a mass.
func (a *Aggregator) Mass(weight float64) float64 { return weight / a.gravity }

// TotalWeight sums the weights of all leaves under n. An empty group weighs zero.
func (a *Aggregator) TotalWeight(n core.Node) float64 {
	switch v := leaf(n).(type) {
	case core.Element:
		return v.Weight
	case *core.Group:
		var total float64
		for _, c := range v.Children() {
			total += a.TotalWeight(c)
		}
		return total
	}
	return 0
}

// CenterOfGravity returns the weight-weighted mean position of n.
// A group whose total weight is zero has no CG and yields ErrZeroWeight.
// Zero-weight child groups are skipped since their weight term vanishes.
func (a *Aggregator) CenterOfGravity(n core.Node) (core.Vec3, error) {
	switch v := leaf(n).(type) {
	case core.Element:
		return v.Position, nil
	case *core.Group:
		moment, weight, err := a.firstMoment(v)
		if err != nil {
			return core.Vec3{}, err
		}
		if weight == 0 {
			return core.Vec3{}, fmt.Errorf("group %q: %w", v.NodeName(), ErrZeroWeight)
		}
		return moment.Mul(1 / weight), nil
	}
	return core.Vec3{}, fmt.Errorf("%w: unsupported node %T", core.ErrContractViolation, n)
}

// firstMoment returns sum(w*cg) and sum(w) over the direct children of g.
func (a *Aggregator) firstMoment(g *core.Group) (core.Vec3, float64, error) {
	var moment core.Vec3
	var weight float64
	for _, c := range g.Children() {
		w := a.TotalWeight(c)
		if w == 0 {
			continue
		}
		cg, err := a.CenterOfGravity(c)
		if err != nil {
			return core.Vec3{}, 0, fmt.Errorf("group %q: %w", g.NodeName(), err)
		}
		moment = moment.Add(cg.Mul(w))
		weight += w
	}
	return moment, weight, nil
}

// MomentOfInertia returns the scalar moment of inertia of n about axis, in
// kg*m^2. Each leaf contributes its centroidal inertia projected on the axis
// plus m*d^2, d being the perpendicular distance from its CG to the axis.
func (a *Aggregator) MomentOfInertia(n core.Node, axis Axis) (float64, error) {
	u := axis.Direction.Normalize()
	if u == (core.Vec3{}) || !u.IsFinite() || !axis.Point.IsFinite() {
		return 0, fmt.Errorf("%w: direction %+v through %+v", ErrInvalidAxis, axis.Direction, axis.Point)
	}
	return a.momentOfInertia(n, axis.Point, u), nil
}

func (a *Aggregator) momentOfInertia(n core.Node, p, u core.Vec3) float64 {
	switch v := leaf(n).(type) {
	case core.Element:
		r := v.Position.Sub(p)
		perp := r.Sub(u.Mul(r.Dot(u)))
		return v.Inertia.About(u) + a.Mass(v.Weight)*perp.Dot(perp)
	case *core.Group:
		var total float64
		for _, c := range v.Children() {
			total += a.momentOfInertia(c, p, u)
		}
		return total
	}
	return 0
}

// InertiaTensor returns the full inertia tensor of n about the point p.
func (a *Aggregator) InertiaTensor(n core.Node, p core.Vec3) core.Inertia {
	switch v := leaf(n).(type) {
	case core.Element:
		return v.Inertia.Translate(a.Mass(v.Weight), v.Position.Sub(p))
	case *core.Group:
		var total core.Inertia
		for _, c := range v.Children() {
			total = total.Add(a.InertiaTensor(c, p))
		}
		return total
	}
	return core.Inertia{}
}

// SubtotalByGroupLabel sums the weight of every leaf at any depth whose
// weight group equals label. Structural nesting is ignored.
func (a *Aggregator) SubtotalByGroupLabel(n core.Node, label string) float64 {
	var total float64
	a.eachLeaf(n, func(e core.Element) {
		if e.WeightGroup == label {
			total += e.Weight
		}
	})
	return total
}

// Subtotals returns the weight of every weight group label present under n.
// Unlabelled leaves are reported under the empty label.
func (a *Aggregator) Subtotals(n core.Node) map[string]float64 {
	out := make(map[string]float64)
	a.eachLeaf(n, func(e core.Element) {
		out[e.WeightGroup] += e.Weight
	})
	return out
}

func (a *Aggregator) eachLeaf(n core.Node, fn func(core.Element)) {
	switch v := leaf(n).(type) {
	case core.Element:
		fn(v)
	case *core.Group:
		for _, c := range v.Children() {
			a.eachLeaf(c, fn)
		}
	}
}
