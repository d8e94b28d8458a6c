package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_DistanceTo(t *testing.T) {
	assert.InDelta(t, 5.0, Point{0, 0}.DistanceTo(Point{3, 4}), 1e-9)
	assert.Zero(t, Point{7, 7}.DistanceTo(Point{7, 7}))
}

func TestBondOrder_Next(t *testing.T) {
	assert.Equal(t, DoubleBond, SingleBond.Next())
	assert.Equal(t, TripleBond, DoubleBond.Next())
	assert.Equal(t, SingleBond, TripleBond.Next())
}

func TestBondOrder_Symbol(t *testing.T) {
	assert.Equal(t, "", SingleBond.Symbol())
	assert.Equal(t, "=", DoubleBond.Symbol())
	assert.Equal(t, "#", TripleBond.Symbol())
	assert.False(t, BondOrder(4).IsValid())
	assert.False(t, BondOrder(0).IsValid())
}

func TestGraph_FindAtomNear_Boundary(t *testing.T) {
	g := NewGraph()
	g.addAtom(Atom{ID: 1, Position: Point{100, 100}, Element: Carbon})

	tests := []struct {
		name  string
		point Point
		hit   bool
	}{
		{"center", Point{100, 100}, true},
		{"inside", Point{110, 105}, true},
		{"exactly on radius", Point{100 + HitRadius, 100}, true},
		{"just outside radius", Point{100 + HitRadius + 0.01, 100}, false},
		{"far away", Point{400, 400}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := g.FindAtomNear(tt.point, HitRadius)
			assert.Equal(t, tt.hit, ok)
		})
	}
}

func TestGraph_FindAtomNear_FirstInCreationOrder(t *testing.T) {
	g := NewGraph()
	g.addAtom(Atom{ID: 1, Position: Point{0, 0}, Element: Carbon})
	g.addAtom(Atom{ID: 2, Position: Point{10, 0}, Element: Oxygen})

	a, ok := g.FindAtomNear(Point{9, 0}, HitRadius)
	require.True(t, ok)
	assert.Equal(t, AtomID(1), a.ID, "both atoms qualify; the older one wins")

	again, ok := g.FindAtomNear(Point{9, 0}, HitRadius)
	require.True(t, ok)
	assert.Equal(t, a, again)
}

func TestGraph_FindBondBetween_Unordered(t *testing.T) {
	g := NewGraph()
	g.addAtom(Atom{ID: 1, Element: Carbon})
	g.addAtom(Atom{ID: 2, Element: Carbon})
	g.addBond(Bond{ID: 3, Source: 1, Target: 2, Order: DoubleBond})

	b1, ok := g.FindBondBetween(1, 2)
	require.True(t, ok)
	b2, ok := g.FindBondBetween(2, 1)
	require.True(t, ok)
	assert.Equal(t, b1, b2)

	_, ok = g.FindBondBetween(1, 1)
	assert.False(t, ok)
}

func TestGraph_NeighborsOf(t *testing.T) {
	g := NewGraph()
	for id := AtomID(1); id <= 3; id++ {
		g.addAtom(Atom{ID: id, Element: Carbon})
	}
	g.addBond(Bond{ID: 4, Source: 1, Target: 2, Order: SingleBond})
	g.addBond(Bond{ID: 5, Source: 3, Target: 1, Order: TripleBond})

	assert.Equal(t, []Neighbor{{AtomID: 2, Order: SingleBond}, {AtomID: 3, Order: TripleBond}}, g.NeighborsOf(1))
	assert.Equal(t, []Neighbor{{AtomID: 1, Order: SingleBond}}, g.NeighborsOf(2))
	assert.Empty(t, g.NeighborsOf(99))
}

func TestGraph_RemoveAtomCascades(t *testing.T) {
	g := NewGraph()
	for id := AtomID(1); id <= 3; id++ {
		g.addAtom(Atom{ID: id, Element: Carbon})
	}
	g.addBond(Bond{ID: 4, Source: 1, Target: 2, Order: SingleBond})
	g.addBond(Bond{ID: 5, Source: 2, Target: 3, Order: SingleBond})

	require.True(t, g.removeAtom(2))
	assert.Equal(t, 2, g.AtomCount())
	assert.Zero(t, g.BondCount())
	assert.False(t, g.removeAtom(2))
}

func TestSnapshot_IsIsolatedFromGraph(t *testing.T) {
	g := NewGraph()
	g.addAtom(Atom{ID: 1, Element: Carbon})
	snap := g.Snapshot()

	g.setElement(1, Nitrogen)
	g.addAtom(Atom{ID: 2, Element: Oxygen})

	atoms := snap.Atoms()
	require.Len(t, atoms, 1)
	assert.Equal(t, Carbon, atoms[0].Element)

	atoms[0].Element = Sulfur
	assert.Equal(t, Carbon, snap.Atoms()[0].Element, "Atoms returns a copy")
}

func TestParseElement(t *testing.T) {
	el, err := ParseElement("Cl")
	require.NoError(t, err)
	assert.Equal(t, Chlorine, el)

	el, err = ParseElement("br")
	require.NoError(t, err)
	assert.Equal(t, Bromine, el)

	_, err = ParseElement("Xe")
	assert.Error(t, err)

	assert.Len(t, Elements(), 10)
	assert.True(t, Hydrogen.IsValid())
	assert.False(t, Element("Na").IsValid())
}

//Personal.AI order the ending
