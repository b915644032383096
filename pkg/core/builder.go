// pkg/core/builder.go
package core

import (
	"fmt"
	"strings"
)

// GroupBuilder assembles a Group. All mutation happens here; the Group
// produced by Build is immutable. The first error encountered is kept and
// returned by Build.
type GroupBuilder struct {
	name     string
	label    string
	children []Node
	err      error
}

// NewGroupBuilder starts a group with the given name.
func NewGroupBuilder(name string) *GroupBuilder {
	return &GroupBuilder{name: name}
}

// Label sets the weight group label. Direct element children without a label
// inherit it at Build time.
func (b *GroupBuilder) Label(label string) *GroupBuilder {
	b.label = label
	return b
}

// Add appends child nodes.
func (b *GroupBuilder) Add(nodes ...Node) *GroupBuilder {
	for _, n := range nodes {
		if b.err != nil {
			return b
		}
		switch c := n.(type) {
		case Element:
			b.AddElement(c)
		case *Element:
			if c == nil {
				b.fail("nil element")
				continue
			}
			b.AddElement(*c)
		case *Group:
			b.addGroup(c)
		default:
			b.fail("unsupported node type %T", n)
		}
	}
	return b
}

// AddElement validates and appends a leaf element.
func (b *GroupBuilder) AddElement(e Element) *GroupBuilder {
	if b.err != nil {
		return b
	}
	if err := validateElement(e); err != nil {
		b.err = fmt.Errorf("group %q: %w", b.name, err)
		return b
	}
	if b.hasChild(e.Name) {
		b.fail("duplicate child %q", e.Name)
		return b
	}
	b.children = append(b.children, e)
	return b
}

func (b *GroupBuilder) addGroup(g *Group) {
	switch {
	case g == nil:
		b.fail("nil group")
	case g.owned:
		b.fail("group %q already belongs to another group", g.name)
	case b.hasChild(g.name):
		b.fail("duplicate child %q", g.name)
	default:
		b.children = append(b.children, g)
	}
}

// Remove drops the direct child with the given name. Removing a missing child is an error.
func (b *GroupBuilder) Remove(name string) *GroupBuilder {
	if b.err != nil {
		return b
	}
	i := b.index(name)
	if i < 0 {
		b.fail("no child %q to remove", name)
		return b
	}
	b.children = append(b.children[:i], b.children[i+1:]...)
	return b
}

// SetWeight replaces the weight of a direct element child.
func (b *GroupBuilder) SetWeight(name string, weight float64) *GroupBuilder {
	return b.updateElement(name, func(e *Element) { e.Weight = weight })
}

// SetPosition replaces the position of a direct element child.
func (b *GroupBuilder) SetPosition(name string, pos Vec3) *GroupBuilder {
	return b.updateElement(name, func(e *Element) { e.Position = pos })
}

// SetWeightGroup replaces the reporting label of a direct element child.
func (b *GroupBuilder) SetWeightGroup(name, label string) *GroupBuilder {
	return b.updateElement(name, func(e *Element) { e.WeightGroup = label })
}

func (b *GroupBuilder) updateElement(name string, fn func(*Element)) *GroupBuilder {
	if b.err != nil {
		return b
	}
	i := b.index(name)
	if i < 0 {
		b.fail("no child %q", name)
		return b
	}
	e, ok := b.children[i].(Element)
	if !ok {
		b.fail("child %q is a group, not an element", name)
		return b
	}
	fn(&e)
	if err := validateElement(e); err != nil {
		b.err = fmt.Errorf("group %q: %w", b.name, err)
		return b
	}
	b.children[i] = e
	return b
}

// Build finalizes the group and takes ownership of its child groups.
func (b *GroupBuilder) Build() (*Group, error) {
	if b.err != nil {
		return nil, b.err
	}
	if strings.TrimSpace(b.name) == "" {
		return nil, fmt.Errorf("%w: group name is empty", ErrContractViolation)
	}
	if strings.Contains(b.name, PathSeparator) {
		return nil, fmt.Errorf("%w: group name %q contains %q", ErrContractViolation, b.name, PathSeparator)
	}
	for _, c := range b.children {
		if g, ok := c.(*Group); ok && g.owned {
			return nil, fmt.Errorf("%w: group %q already belongs to another group", ErrContractViolation, g.name)
		}
	}

	children := make([]Node, len(b.children))
	for i, c := range b.children {
		switch n := c.(type) {
		case Element:
			if n.WeightGroup == "" {
				n.WeightGroup = b.label
			}
			children[i] = n
		case *Group:
			n.owned = true
			children[i] = n
		}
	}
	return &Group{name: b.name, label: b.label, children: children}, nil
}

func (b *GroupBuilder) hasChild(name string) bool {
	return b.index(name) >= 0
}

func (b *GroupBuilder) index(name string) int {
	for i, c := range b.children {
		if c.NodeName() == name {
			return i
		}
	}
	return -1
}

func (b *GroupBuilder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: group %q: %s", ErrContractViolation, b.name, fmt.Sprintf(format, args...))
	}
}

func validateElement(e Element) error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: element name is empty", ErrContractViolation)
	case strings.Contains(e.Name, PathSeparator):
		return fmt.Errorf("%w: element name %q contains %q", ErrContractViolation, e.Name, PathSeparator)
	case !isFinite(e.Weight):
		return fmt.Errorf("%w: element %q has non-finite weight", ErrContractViolation, e.Name)
	case e.Weight < 0:
		return fmt.Errorf("%w: element %q has negative weight %g", ErrContractViolation, e.Name, e.Weight)
	case !e.Position.IsFinite():
		return fmt.Errorf("%w: element %q has non-finite position", ErrContractViolation, e.Name)
	case !e.Inertia.IsFinite():
		return fmt.Errorf("%w: element %q has non-finite inertia", ErrContractViolation, e.Name)
	}
	return nil
}

// MustBuild is Build for static fixtures; it panics on error.
func (b *GroupBuilder) MustBuild() *Group {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
