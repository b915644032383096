// pkg/core/node.go
package core

import (
	"errors"
	"strings"
)

// ErrContractViolation is returned when a mass element or group is assembled
// from incomplete or invalid data.
var ErrContractViolation = errors.New("mass contract violation")

// PathSeparator joins node names into tree paths such as "Fuselage/Nose/FrontBulk".
const PathSeparator = "/"

// Node is either an Element or a *Group.
type Node interface {
	NodeName() string
	isNode()
}

// Element is a leaf mass item: a bulkhead, spar, servo, battery and so on.
type Element struct {
	Name string `json:"name"`
	// Weight is a force (mass times local gravity) in newtons.
	Weight   float64 `json:"weight"`
	Position Vec3    `json:"position"`
	// WeightGroup is a reporting label only. It never affects aggregation.
	WeightGroup string `json:"weightGroup,omitempty"`
	// Inertia about the element's own centroid. Zero means point mass.
	Inertia Inertia `json:"inertia"`
}

// NodeName returns the element's name.
func (e Element) NodeName() string { return e.Name }

func (Element) isNode() {}

// Group is an immutable, ordered collection of child nodes. Its weight and
// CG are always derived from the children by the mass package.
type Group struct {
	name     string
	label    string
	children []Node
	owned    bool
}

// NodeName returns the group's name.
func (g *Group) NodeName() string { return g.name }

func (*Group) isNode() {}

// Label returns the weight group label assigned to the group, if any.
func (g *Group) Label() string { return g.label }

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }

// Children returns a copy of the direct children in insertion order.
func (g *Group) Children() []Node {
	out := make([]Node, len(g.children))
	copy(out, g.children)
	return out
}

// Child returns the direct child with the given name.
func (g *Group) Child(name string) (Node, bool) {
	for _, c := range g.children {
		if c.NodeName() == name {
			return c, true
		}
	}
	return nil, false
}

// Find resolves a slash separated path relative to g. An empty path returns g itself.
func (g *Group) Find(path string) (Node, bool) {
	path = strings.Trim(path, PathSeparator)
	if path == "" {
		return g, true
	}
	var cur Node = g
	for _, part := range strings.Split(path, PathSeparator) {
		grp, ok := cur.(*Group)
		if !ok {
			return nil, false
		}
		next, ok := grp.Child(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
