package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBuilder_Build(t *testing.T) {
	g, err := NewGroupBuilder("Nose").
		Label("Fuselage").
		AddElement(Element{Name: "FrontBulk", Weight: 1, Position: NewVec3(0, 0, 0)}).
		AddElement(Element{Name: "Receiver", Weight: 0.1, WeightGroup: "Controls"}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Nose", g.NodeName())
	assert.Equal(t, "Fuselage", g.Label())
	require.Equal(t, 2, g.Len())

	bulk, ok := g.Child("FrontBulk")
	require.True(t, ok)
	assert.Equal(t, "Fuselage", bulk.(Element).WeightGroup, "unlabelled element inherits group label")

	rx, ok := g.Child("Receiver")
	require.True(t, ok)
	assert.Equal(t, "Controls", rx.(Element).WeightGroup, "explicit label is kept")
}

func TestGroupBuilder_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		b    *GroupBuilder
	}{
		{"empty group name", NewGroupBuilder(" ")},
		{"empty element name", NewGroupBuilder("G").AddElement(Element{Weight: 1})},
		{"negative weight", NewGroupBuilder("G").AddElement(Element{Name: "A", Weight: -1})},
		{"NaN weight", NewGroupBuilder("G").AddElement(Element{Name: "A", Weight: math.NaN()})},
		{"infinite position", NewGroupBuilder("G").AddElement(Element{Name: "A", Weight: 1, Position: NewVec3(math.Inf(1), 0, 0)})},
		{"duplicate child", NewGroupBuilder("G").AddElement(Element{Name: "A"}).AddElement(Element{Name: "A"})},
		{"nil group", NewGroupBuilder("G").Add((*Group)(nil))},
		{"remove missing", NewGroupBuilder("G").Remove("nope")},
		{"set weight on missing", NewGroupBuilder("G").SetWeight("nope", 1)},
		{"separator in name", NewGroupBuilder("G").AddElement(Element{Name: "a/b"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}

func TestGroupBuilder_SingleOwner(t *testing.T) {
	child := NewGroupBuilder("Tail").AddElement(Element{Name: "Bulk", Weight: 1}).MustBuild()

	_, err := NewGroupBuilder("First").Add(child).Build()
	require.NoError(t, err)

	_, err = NewGroupBuilder("Second").Add(child).Build()
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestGroupBuilder_SetAndRemove(t *testing.T) {
	sub := NewGroupBuilder("Sub").MustBuild()
	g, err := NewGroupBuilder("Bay").
		AddElement(Element{Name: "Payload", Weight: 1}).
		AddElement(Element{Name: "Ballast", Weight: 2}).
		Add(sub).
		SetWeight("Payload", 5).
		SetPosition("Payload", NewVec3(1, 2, 3)).
		SetWeightGroup("Payload", "Payload").
		Remove("Ballast").
		Build()
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())

	p, ok := g.Child("Payload")
	require.True(t, ok)
	e := p.(Element)
	assert.Equal(t, 5.0, e.Weight)
	assert.Equal(t, NewVec3(1, 2, 3), e.Position)
	assert.Equal(t, "Payload", e.WeightGroup)

	_, err = NewGroupBuilder("X").Add(NewGroupBuilder("Y").MustBuild()).SetWeight("Y", 1).Build()
	assert.ErrorIs(t, err, ErrContractViolation, "groups have no settable weight")
}

func TestGroupBuilder_BuiltGroupIsIsolated(t *testing.T) {
	b := NewGroupBuilder("G").AddElement(Element{Name: "A", Weight: 1})
	g := b.MustBuild()
	b.SetWeight("A", 10)

	a, _ := g.Child("A")
	assert.Equal(t, 1.0, a.(Element).Weight)

	children := g.Children()
	children[0] = Element{Name: "Z"}
	_, ok := g.Child("A")
	assert.True(t, ok, "Children returns a copy")
}

func TestGroup_Find(t *testing.T) {
	nose := NewGroupBuilder("Nose").AddElement(Element{Name: "Receiver", Weight: 0.1}).MustBuild()
	fuse := NewGroupBuilder("Fuselage").Add(nose).MustBuild()

	n, ok := fuse.Find("Nose/Receiver")
	require.True(t, ok)
	assert.Equal(t, "Receiver", n.NodeName())

	n, ok = fuse.Find("")
	require.True(t, ok)
	assert.Equal(t, fuse, n)

	_, ok = fuse.Find("Nose/Receiver/Deeper")
	assert.False(t, ok)
	_, ok = fuse.Find("Tail")
	assert.False(t, ok)
}

func TestNewAircraft(t *testing.T) {
	root := NewGroupBuilder("Aircraft").MustBuild()
	ac, err := NewAircraft("Turbo Time", root, DesignReference{Section: "PayBay", StartX: 0.2, Length: 0.5, Fraction: 0.694})
	require.NoError(t, err)
	assert.InDelta(t, 0.2+0.347, ac.Reference.X(), 1e-12)

	_, err = NewAircraft("none", nil, DesignReference{})
	assert.ErrorIs(t, err, ErrContractViolation)
}
