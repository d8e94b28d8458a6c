package sketch

import "math"

// HitRadius is the distance, in editor units, within which a pointer
// position counts as being on an atom.  The boundary is inclusive.
const HitRadius = 20.0

// Point is a position in editor coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// AtomID identifies an atom for its whole lifetime.  IDs are never reused.
type AtomID int64

// BondID identifies a bond.  Atoms and bonds draw from one id sequence.
type BondID int64

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	SingleBond BondOrder = 1
	DoubleBond BondOrder = 2
	TripleBond BondOrder = 3
)

// IsValid reports whether o is single, double or triple.
func (o BondOrder) IsValid() bool { return o >= SingleBond && o <= TripleBond }

// Next returns the order produced by reconnecting an already bonded pair.
// Triple wraps back to single.
func (o BondOrder) Next() BondOrder {
	if o < TripleBond {
		return o + 1
	}
	return SingleBond
}

// Symbol is the notation token written before an atom reached through a
// bond of this order.  Single bonds are implicit.
func (o BondOrder) Symbol() string {
	switch o {
	case DoubleBond:
		return "="
	case TripleBond:
		return "#"
	default:
		return ""
	}
}

// Atom is a node of the structure graph.
type Atom struct {
	ID       AtomID
	Position Point
	Element  Element
}

// Bond is an undirected edge between two distinct atoms.
type Bond struct {
	ID     BondID
	Source AtomID
	Target AtomID
	Order  BondOrder
}

// Connects reports whether b joins a and c, in either direction.
func (b Bond) Connects(a, c AtomID) bool {
	return (b.Source == a && b.Target == c) || (b.Source == c && b.Target == a)
}

// Touches reports whether id is one of b's endpoints.
func (b Bond) Touches(id AtomID) bool {
	return b.Source == id || b.Target == id
}

// Neighbor is one adjacency entry of an atom.
type Neighbor struct {
	AtomID AtomID
	Order  BondOrder
}

// Graph holds the current atom and bond sets.  Atoms and bonds are kept in
// creation order, which makes hit-testing and traversal deterministic.
//
// Read methods are exported; mutation happens only through the Editor so
// that every change is recorded in history.
type Graph struct {
	atoms []Atom
	bonds []Bond
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Atoms returns a copy of the atoms in creation order.
func (g *Graph) Atoms() []Atom {
	out := make([]Atom, len(g.atoms))
	copy(out, g.atoms)
	return out
}

// Bonds returns a copy of the bonds in creation order.
func (g *Graph) Bonds() []Bond {
	out := make([]Bond, len(g.bonds))
	copy(out, g.bonds)
	return out
}

// AtomCount returns the number of atoms.
func (g *Graph) AtomCount() int { return len(g.atoms) }

// BondCount returns the number of bonds.
func (g *Graph) BondCount() int { return len(g.bonds) }

// IsEmpty reports whether the graph has no atoms and no bonds.
func (g *Graph) IsEmpty() bool { return len(g.atoms) == 0 && len(g.bonds) == 0 }

// Atom looks an atom up by id.
func (g *Graph) Atom(id AtomID) (Atom, bool) {
	if i := g.atomIndex(id); i >= 0 {
		return g.atoms[i], true
	}
	return Atom{}, false
}

// FindAtomNear returns the first atom, in creation order, whose position lies
// within radius of p (inclusive).
func (g *Graph) FindAtomNear(p Point, radius float64) (Atom, bool) {
	for _, a := range g.atoms {
		if a.Position.DistanceTo(p) <= radius {
			return a, true
		}
	}
	return Atom{}, false
}

// FindBondBetween returns the bond joining the unordered pair {a, b}.
func (g *Graph) FindBondBetween(a, b AtomID) (Bond, bool) {
	if i := g.bondIndexBetween(a, b); i >= 0 {
		return g.bonds[i], true
	}
	return Bond{}, false
}

// NeighborsOf returns the atoms bonded to id with the order of each bond,
// in bond creation order.
func (g *Graph) NeighborsOf(id AtomID) []Neighbor {
	var out []Neighbor
	for _, b := range g.bonds {
		switch id {
		case b.Source:
			out = append(out, Neighbor{AtomID: b.Target, Order: b.Order})
		case b.Target:
			out = append(out, Neighbor{AtomID: b.Source, Order: b.Order})
		}
	}
	return out
}

// Notation derives the linear notation for the current graph.
func (g *Graph) Notation() string {
	return GenerateNotation(g.atoms, g.bonds)
}

// Snapshot captures the current atom and bond sets.
func (g *Graph) Snapshot() Snapshot {
	return Snapshot{atoms: g.Atoms(), bonds: g.Bonds()}
}

func (g *Graph) atomIndex(id AtomID) int {
	for i, a := range g.atoms {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (g *Graph) bondIndexBetween(a, b AtomID) int {
	for i, bond := range g.bonds {
		if bond.Connects(a, b) {
			return i
		}
	}
	return -1
}

func (g *Graph) addAtom(a Atom) { g.atoms = append(g.atoms, a) }

func (g *Graph) addBond(b Bond) { g.bonds = append(g.bonds, b) }

func (g *Graph) setElement(id AtomID, e Element) {
	if i := g.atomIndex(id); i >= 0 {
		g.atoms[i].Element = e
	}
}

// setBondOrder changes the order of the bond joining a and b.
func (g *Graph) setBondOrder(a, b AtomID, o BondOrder) {
	if i := g.bondIndexBetween(a, b); i >= 0 {
		g.bonds[i].Order = o
	}
}

func (g *Graph) clear() {
	g.atoms = nil
	g.bonds = nil
}

// removeAtom deletes the atom and every bond that references it.
func (g *Graph) removeAtom(id AtomID) bool {
	i := g.atomIndex(id)
	if i < 0 {
		return false
	}
	g.atoms = append(g.atoms[:i:i], g.atoms[i+1:]...)

	kept := make([]Bond, 0, len(g.bonds))
	for _, b := range g.bonds {
		if !b.Touches(id) {
			kept = append(kept, b)
		}
	}
	g.bonds = kept
	return true
}

func (g *Graph) restore(s Snapshot) {
	g.atoms = s.Atoms()
	g.bonds = s.Bonds()
}

// Snapshot is an immutable capture of a graph at one point in history.
type Snapshot struct {
	atoms []Atom
	bonds []Bond
}

// Atoms returns a copy of the captured atoms.
func (s Snapshot) Atoms() []Atom {
	out := make([]Atom, len(s.atoms))
	copy(out, s.atoms)
	return out
}

// Bonds returns a copy of the captured bonds.
func (s Snapshot) Bonds() []Bond {
	out := make([]Bond, len(s.bonds))
	copy(out, s.bonds)
	return out
}

// IsEmpty reports whether the snapshot holds no atoms and no bonds.
func (s Snapshot) IsEmpty() bool { return len(s.atoms) == 0 && len(s.bonds) == 0 }

//Personal.AI order the ending
