// pkg/core/aircraft.go
package core

import (
	"fmt"
	"time"
)

// DesignReference expresses a target CG as a fraction along a fuselage
// section, independent of the bottom-up computed CG.
type DesignReference struct {
	Section  string  `json:"section"`
	StartX   float64 `json:"startX"`
	Length   float64 `json:"length"`
	Fraction float64 `json:"fraction"`
}

// X returns the body-frame x coordinate of the design CG.
func (r DesignReference) X() float64 {
	return r.StartX + r.Fraction*r.Length
}

// Aircraft is the aggregate root: the top-level group of subsystem groups.
type Aircraft struct {
	Name      string
	Root      *Group
	Reference DesignReference
}

// NewAircraft validates and wraps a finished root group.
func NewAircraft(name string, root *Group, ref DesignReference) (*Aircraft, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: aircraft %q has no root group", ErrContractViolation, name)
	}
	if !isFinite(ref.StartX) || !isFinite(ref.Length) || !isFinite(ref.Fraction) {
		return nil, fmt.Errorf("%w: aircraft %q has a non-finite design reference", ErrContractViolation, name)
	}
	return &Aircraft{Name: name, Root: root, Reference: ref}, nil
}

// Subsystem returns a direct child group of the root, e.g. "Fuselage".
func (a *Aircraft) Subsystem(name string) (*Group, bool) {
	n, ok := a.Root.Child(name)
	if !ok {
		return nil, false
	}
	g, ok := n.(*Group)
	return g, ok
}

// Subtotal is the total weight of one weight group label.
type Subtotal struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// NodeSummary is one row of a mass breakdown.
type NodeSummary struct {
	Path   string  `json:"path"`
	Depth  int     `json:"depth"`
	IsLeaf bool    `json:"isLeaf"`
	Label  string  `json:"label,omitempty"`
	Weight float64 `json:"weight"`
	// CG is unset when HasCG is false (zero-weight group).
	CG    Vec3 `json:"cg"`
	HasCG bool `json:"hasCg"`
}

// Report is the full set of derived mass properties for one aircraft.
// All quantities are SI: newtons, metres, kg*m^2.
type Report struct {
	Aircraft    string          `json:"aircraft"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Gravity     float64         `json:"gravity"`
	TotalWeight float64         `json:"totalWeight"`
	CG          Vec3            `json:"cg"`
	InertiaCG   Inertia         `json:"inertiaAboutCg"`
	Design      DesignReference `json:"design"`
	DesignCGX   float64         `json:"designCgX"`
	// CGOffsetX is computed CG x minus design CG x; positive means aft of target.
	CGOffsetX float64       `json:"cgOffsetX"`
	Subtotals []Subtotal    `json:"subtotals"`
	Nodes     []NodeSummary `json:"nodes"`
}
