package sketch

import (
	"sort"
	"strings"
)

// GenerateNotation derives a SMILES-like string from atoms and bonds by a
// depth-first walk.  The result is a best-effort structural encoding:
//
//   - the walk starts at the atom with the most neighbors (first in atom
//     order on ties);
//   - "=" or "#" precedes an atom reached through a double or triple bond;
//   - neighbors are visited by descending bond order, then ascending element
//     symbol; the first continues the chain and the rest become "(...)"
//     branches written after it;
//   - each atom is written once, so ring bonds other than the one that first
//     reached a ring atom are dropped (no ring-closure digits).
//
// Bonds whose endpoints are not in atoms are ignored.  An empty input yields
// "" and a single atom yields its element symbol.
func GenerateNotation(atoms []Atom, bonds []Bond) string {
	switch len(atoms) {
	case 0:
		return ""
	case 1:
		return string(atoms[0].Element)
	}

	w := newNotationWalk(atoms, bonds)
	w.visit(w.start(), SingleBond)

	out := strings.ReplaceAll(w.out.String(), "()", "")
	out = strings.TrimPrefix(out, "=")
	out = strings.TrimPrefix(out, "#")
	if out == "" {
		return string(Carbon)
	}
	return out
}

// notationWalk owns the adjacency map and visited set of a single
// GenerateNotation call.
type notationWalk struct {
	atoms     []Atom
	elements  map[AtomID]Element
	adjacency map[AtomID][]Neighbor
	visited   map[AtomID]bool
	out       strings.Builder
}

func newNotationWalk(atoms []Atom, bonds []Bond) *notationWalk {
	w := &notationWalk{
		atoms:     atoms,
		elements:  make(map[AtomID]Element, len(atoms)),
		adjacency: make(map[AtomID][]Neighbor, len(atoms)),
		visited:   make(map[AtomID]bool, len(atoms)),
	}
	for _, a := range atoms {
		w.elements[a.ID] = a.Element
	}
	for _, b := range bonds {
		_, okS := w.elements[b.Source]
		_, okT := w.elements[b.Target]
		if !okS || !okT || b.Source == b.Target {
			continue
		}
		w.adjacency[b.Source] = append(w.adjacency[b.Source], Neighbor{AtomID: b.Target, Order: b.Order})
		w.adjacency[b.Target] = append(w.adjacency[b.Target], Neighbor{AtomID: b.Source, Order: b.Order})
	}
	return w
}

func (w *notationWalk) start() AtomID {
	best := w.atoms[0].ID
	for _, a := range w.atoms[1:] {
		if len(w.adjacency[a.ID]) > len(w.adjacency[best]) {
			best = a.ID
		}
	}
	return best
}

func (w *notationWalk) visit(id AtomID, via BondOrder) {
	if w.visited[id] {
		return
	}
	w.visited[id] = true

	w.out.WriteString(via.Symbol())
	w.out.WriteString(string(w.elements[id]))

	next := w.unvisited(id)
	if len(next) == 0 {
		return
	}
	w.visit(next[0].AtomID, next[0].Order)
	for _, n := range next[1:] {
		w.out.WriteByte('(')
		w.visit(n.AtomID, n.Order)
		w.out.WriteByte(')')
	}
}

// unvisited returns id's unvisited neighbors in visiting priority.
func (w *notationWalk) unvisited(id AtomID) []Neighbor {
	var next []Neighbor
	for _, n := range w.adjacency[id] {
		if !w.visited[n.AtomID] {
			next = append(next, n)
		}
	}
	sort.SliceStable(next, func(i, j int) bool {
		if next[i].Order != next[j].Order {
			return next[i].Order > next[j].Order
		}
		return w.elements[next[i].AtomID] < w.elements[next[j].AtomID]
	})
	return next
}

//Personal.AI order the ending
