package sketch

// Editor owns a structure graph and its history and exposes the edit
// operations.  Every operation is total: finding nothing to act on is a
// no-op reported as EffectNone, never an error.
//
// The history is seeded with the empty graph and each committed operation
// records the graph it produced, so the entry under the cursor always equals
// the live graph and Undo returns to the state before the last edit.
// Operations that change nothing record nothing and notify nobody.
type Editor struct {
	graph   *Graph
	history *History
	lastID  int64

	pending AtomID
	drawing bool

	onChange  ChangeFunc
	notifying bool
}

// NewEditor returns an editor with an empty graph.
func NewEditor() *Editor {
	e := &Editor{
		graph:   NewGraph(),
		history: NewHistory(),
	}
	e.history.Record(e.graph.Snapshot())
	return e
}

// OnChange installs the change callback, replacing any previous one.
// Installing a callback never triggers a notification by itself.
func (e *Editor) OnChange(fn ChangeFunc) {
	e.onChange = fn
}

// Graph exposes the current graph for read-only queries.
func (e *Editor) Graph() *Graph { return e.graph }

// Document returns the current graph in neutral node/link form.
func (e *Editor) Document() Document {
	return NewDocument(e.graph.atoms, e.graph.bonds)
}

// Notation returns the linear notation for the current graph.
func (e *Editor) Notation() string { return e.graph.Notation() }

// CanUndo reports whether Undo would change the graph.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the graph.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Drawing reports whether a bond is pending.
func (e *Editor) Drawing() bool { return e.drawing }

// Pending returns the origin atom of the pending bond.
func (e *Editor) Pending() (Atom, bool) {
	if !e.drawing {
		return Atom{}, false
	}
	return e.graph.Atom(e.pending)
}

// AddOrRetypeAtom retypes the atom under p to el, or places a new atom at p
// when there is none.  Unsupported elements and retyping an atom to its own
// element are no-ops.
func (e *Editor) AddOrRetypeAtom(p Point, el Element) Effect {
	if e.notifying || !el.IsValid() {
		return EffectNone
	}
	if a, ok := e.graph.FindAtomNear(p, HitRadius); ok {
		if a.Element == el {
			return EffectNone
		}
		e.graph.setElement(a.ID, el)
		return e.commit(EffectAtomRetyped)
	}
	e.graph.addAtom(Atom{ID: AtomID(e.nextID()), Position: p, Element: el})
	return e.commit(EffectAtomAdded)
}

// BeginBond marks the atom under p as the origin of a pending bond.  It
// reports false, leaving the editor untouched, when p hits no atom.
func (e *Editor) BeginBond(p Point) bool {
	if e.notifying {
		return false
	}
	a, ok := e.graph.FindAtomNear(p, HitRadius)
	if !ok {
		return false
	}
	e.pending = a.ID
	e.drawing = true
	return true
}

// CompleteBond finishes the pending bond at p:
//   - on the origin itself the bond is cancelled;
//   - on another atom the pair is bonded, or its existing bond's order is
//     cycled 1 -> 2 -> 3 -> 1;
//   - on empty space a carbon is placed at p and bonded to the origin.
//
// The pending state is cleared in every case.
func (e *Editor) CompleteBond(p Point) Effect {
	if e.notifying || !e.drawing {
		return EffectNone
	}
	origin := e.pending
	e.CancelBond()

	if _, ok := e.graph.Atom(origin); !ok {
		return EffectNone
	}

	target, ok := e.graph.FindAtomNear(p, HitRadius)
	switch {
	case ok && target.ID == origin:
		return EffectNone
	case ok:
		if b, found := e.graph.FindBondBetween(origin, target.ID); found {
			e.graph.setBondOrder(origin, target.ID, b.Order.Next())
			return e.commit(EffectBondOrderCycled)
		}
		e.graph.addBond(Bond{ID: BondID(e.nextID()), Source: origin, Target: target.ID, Order: SingleBond})
		return e.commit(EffectBondAdded)
	default:
		atom := Atom{ID: AtomID(e.nextID()), Position: p, Element: Carbon}
		e.graph.addAtom(atom)
		e.graph.addBond(Bond{ID: BondID(e.nextID()), Source: origin, Target: atom.ID, Order: SingleBond})
		return e.commit(EffectAtomAndBondAdded)
	}
}

// CancelBond drops the pending bond, if any.
func (e *Editor) CancelBond() {
	e.pending = 0
	e.drawing = false
}

// Erase removes the atom under p together with all of its bonds.
func (e *Editor) Erase(p Point) Effect {
	if e.notifying {
		return EffectNone
	}
	a, ok := e.graph.FindAtomNear(p, HitRadius)
	if !ok {
		return EffectNone
	}
	e.CancelBond()
	e.graph.removeAtom(a.ID)
	return e.commit(EffectAtomErased)
}

// Clear removes every atom and bond.  Clearing an empty graph is a no-op.
func (e *Editor) Clear() Effect {
	if e.notifying || e.graph.IsEmpty() {
		return EffectNone
	}
	e.CancelBond()
	e.graph.clear()
	return e.commit(EffectCleared)
}

// Load replaces the graph with the contents of doc as a single undoable
// edit.  Nodes with unsupported elements or repeated ids are dropped, as are
// links that repeat a link id, reference missing nodes, join a node to
// itself, repeat an already linked pair or carry an order outside 1..3.  The id sequence is
// advanced past every loaded id.
func (e *Editor) Load(doc Document) Effect {
	if e.notifying {
		return EffectNone
	}
	next := NewGraph()
	maxID := e.lastID
	for _, n := range doc.Nodes {
		el := Element(n.Atom)
		if !el.IsValid() {
			continue
		}
		if _, dup := next.Atom(AtomID(n.ID)); dup {
			continue
		}
		next.addAtom(Atom{ID: AtomID(n.ID), Position: Point{X: n.X, Y: n.Y}, Element: el})
		maxID = max(maxID, n.ID)
	}
	linkIDs := make(map[int64]bool, len(doc.Links))
	for _, l := range doc.Links {
		src, dst, order := AtomID(l.Source), AtomID(l.Target), BondOrder(l.Bond)
		if src == dst || !order.IsValid() || linkIDs[l.ID] {
			continue
		}
		if _, ok := next.Atom(src); !ok {
			continue
		}
		if _, ok := next.Atom(dst); !ok {
			continue
		}
		if _, dup := next.FindBondBetween(src, dst); dup {
			continue
		}
		next.addBond(Bond{ID: BondID(l.ID), Source: src, Target: dst, Order: order})
		linkIDs[l.ID] = true
		maxID = max(maxID, l.ID)
	}

	if next.IsEmpty() && e.graph.IsEmpty() {
		return EffectNone
	}
	e.CancelBond()
	e.lastID = maxID
	e.graph.atoms, e.graph.bonds = next.atoms, next.bonds
	return e.commit(EffectLoaded)
}

// Undo restores the graph as it was before the most recent edit.  It
// reports false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if e.notifying {
		return false
	}
	snap, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.CancelBond()
	e.graph.restore(snap)
	e.notify(EffectUndone)
	return true
}

// Redo re-applies the most recently undone edit.  It reports false when
// there is nothing to redo.
func (e *Editor) Redo() bool {
	if e.notifying {
		return false
	}
	snap, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.CancelBond()
	e.graph.restore(snap)
	e.notify(EffectRedone)
	return true
}

func (e *Editor) nextID() int64 {
	e.lastID++
	return e.lastID
}

func (e *Editor) commit(effect Effect) Effect {
	e.history.Record(e.graph.Snapshot())
	e.notify(effect)
	return effect
}

// notify hands the committed state to the callback.  Nothing is delivered
// while a bond is pending.
func (e *Editor) notify(effect Effect) {
	if e.onChange == nil || e.drawing {
		return
	}
	e.notifying = true
	defer func() { e.notifying = false }()
	e.onChange(Change{
		Effect:   effect,
		Document: e.Document(),
		Notation: e.graph.Notation(),
	})
}

//Personal.AI order the ending
