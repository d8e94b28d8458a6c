package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ptA = Point{X: 100, Y: 100}
	ptB = Point{X: 200, Y: 100}
	ptC = Point{X: 300, Y: 100}
)

// drawBond drags from one point to another.
func drawBond(e *Editor, from, to Point) Effect {
	e.BeginBond(from)
	return e.CompleteBond(to)
}

type changeRecorder struct {
	changes []Change
}

func (r *changeRecorder) record(c Change) { r.changes = append(r.changes, c) }

func (r *changeRecorder) last() Change { return r.changes[len(r.changes)-1] }

// ─────────────────────────────────────────────────────────────────────────────
// Atoms
// ─────────────────────────────────────────────────────────────────────────────

func TestEditor_AddOrRetypeAtom(t *testing.T) {
	e := NewEditor()

	assert.Equal(t, EffectAtomAdded, e.AddOrRetypeAtom(ptA, Carbon))
	require.Equal(t, 1, e.Graph().AtomCount())

	assert.Equal(t, EffectAtomRetyped, e.AddOrRetypeAtom(Point{X: 110, Y: 100}, Oxygen))
	atoms := e.Graph().Atoms()
	require.Len(t, atoms, 1)
	assert.Equal(t, Oxygen, atoms[0].Element)
	assert.Equal(t, ptA, atoms[0].Position, "retype keeps position")

	assert.Equal(t, EffectNone, e.AddOrRetypeAtom(ptA, Oxygen), "same element is a no-op")
	assert.Equal(t, EffectNone, e.AddOrRetypeAtom(ptC, Element("Xx")))
	assert.Equal(t, 1, e.Graph().AtomCount())
}

func TestEditor_AddOrRetypeAtom_HitRadiusBoundary(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)

	assert.Equal(t, EffectAtomRetyped, e.AddOrRetypeAtom(Point{X: ptA.X + HitRadius, Y: ptA.Y}, Nitrogen))
	assert.Equal(t, EffectAtomAdded, e.AddOrRetypeAtom(Point{X: ptA.X + HitRadius + 0.5, Y: ptA.Y}, Nitrogen))
	assert.Equal(t, 2, e.Graph().AtomCount())
}

func TestEditor_IDsAreNeverReused(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	e.AddOrRetypeAtom(ptB, Carbon)
	e.Erase(ptB)
	e.AddOrRetypeAtom(ptB, Carbon)

	atoms := e.Graph().Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, AtomID(1), atoms[0].ID)
	assert.Equal(t, AtomID(3), atoms[1].ID)

	e.Undo()
	e.Undo()
	e.AddOrRetypeAtom(ptC, Carbon)
	atoms = e.Graph().Atoms()
	assert.Equal(t, AtomID(4), atoms[len(atoms)-1].ID, "undo does not rewind the id sequence")
}

// ─────────────────────────────────────────────────────────────────────────────
// Bonds
// ─────────────────────────────────────────────────────────────────────────────

func TestEditor_BeginBond(t *testing.T) {
	e := NewEditor()
	assert.False(t, e.BeginBond(ptA), "no atom under the pointer")
	assert.False(t, e.Drawing())

	e.AddOrRetypeAtom(ptA, Carbon)
	assert.True(t, e.BeginBond(ptA))
	assert.True(t, e.Drawing())

	origin, ok := e.Pending()
	require.True(t, ok)
	assert.Equal(t, AtomID(1), origin.ID)
}

func TestEditor_CompleteBond_WithoutPendingIsNoop(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	e.AddOrRetypeAtom(ptB, Carbon)

	assert.Equal(t, EffectNone, e.CompleteBond(ptB))
	assert.Zero(t, e.Graph().BondCount())
}

func TestEditor_CompleteBond_OnOriginCancels(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	before := e.history.Len()

	assert.Equal(t, EffectNone, drawBond(e, ptA, Point{X: 105, Y: 95}))
	assert.False(t, e.Drawing())
	assert.Zero(t, e.Graph().BondCount())
	assert.Equal(t, before, e.history.Len(), "cancel records nothing")
}

func TestEditor_CompleteBond_BetweenAtoms(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	e.AddOrRetypeAtom(ptB, Oxygen)

	assert.Equal(t, EffectBondAdded, drawBond(e, ptA, ptB))
	assert.False(t, e.Drawing())

	b, ok := e.Graph().FindBondBetween(1, 2)
	require.True(t, ok)
	assert.Equal(t, SingleBond, b.Order)
	assert.Equal(t, BondID(3), b.ID)
}

func TestEditor_CompleteBond_IntoEmptySpaceAddsCarbon(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Nitrogen)

	assert.Equal(t, EffectAtomAndBondAdded, drawBond(e, ptA, ptC))

	atoms := e.Graph().Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, Carbon, atoms[1].Element)
	assert.Equal(t, ptC, atoms[1].Position)

	b, ok := e.Graph().FindBondBetween(atoms[0].ID, atoms[1].ID)
	require.True(t, ok)
	assert.Equal(t, SingleBond, b.Order)
	assert.Equal(t, "NC", e.Notation())
}

func TestEditor_BondOrderWraps(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	e.AddOrRetypeAtom(ptB, Carbon)

	want := []BondOrder{SingleBond, DoubleBond, TripleBond, SingleBond, DoubleBond}
	for i, order := range want {
		// alternate drag direction; the pair is unordered
		if i%2 == 0 {
			drawBond(e, ptA, ptB)
		} else {
			drawBond(e, ptB, ptA)
		}
		require.Equal(t, 1, e.Graph().BondCount(), "exactly one bond per pair")
		b, ok := e.Graph().FindBondBetween(1, 2)
		require.True(t, ok)
		assert.Equal(t, order, b.Order, "after drag %d", i+1)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Erase / Clear
// ─────────────────────────────────────────────────────────────────────────────

func TestEditor_EraseCascades(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	drawBond(e, ptA, ptB)
	drawBond(e, ptB, ptC)
	drawBond(e, ptC, ptA)
	require.Equal(t, 3, e.Graph().BondCount())

	assert.Equal(t, EffectAtomErased, e.Erase(ptB))

	assert.Equal(t, 2, e.Graph().AtomCount())
	require.Equal(t, 1, e.Graph().BondCount())
	for _, b := range e.Graph().Bonds() {
		_, okS := e.Graph().Atom(b.Source)
		_, okT := e.Graph().Atom(b.Target)
		assert.True(t, okS && okT, "bond %d references a removed atom", b.ID)
	}

	assert.Equal(t, EffectNone, e.Erase(Point{X: 999, Y: 999}))
}

func TestEditor_Clear(t *testing.T) {
	e := NewEditor()
	assert.Equal(t, EffectNone, e.Clear(), "clearing an empty graph is a no-op")
	assert.False(t, e.CanUndo())

	e.AddOrRetypeAtom(ptA, Carbon)
	drawBond(e, ptA, ptB)
	assert.Equal(t, EffectCleared, e.Clear())
	assert.True(t, e.Graph().IsEmpty())

	require.True(t, e.Undo())
	assert.Equal(t, 2, e.Graph().AtomCount())
}

// ─────────────────────────────────────────────────────────────────────────────
// Undo / Redo
// ─────────────────────────────────────────────────────────────────────────────

func TestEditor_UndoRedoInverseLaw(t *testing.T) {
	e := NewEditor()
	ops := []func() Effect{
		func() Effect { return e.AddOrRetypeAtom(ptA, Carbon) },
		func() Effect { return drawBond(e, ptA, ptB) },
		func() Effect { return drawBond(e, ptB, ptC) },
		func() Effect { return drawBond(e, ptA, ptB) },
		func() Effect { return e.AddOrRetypeAtom(ptC, Oxygen) },
		func() Effect { return e.Erase(ptA) },
	}
	for i, op := range ops {
		require.True(t, op().Changed(), "op %d", i)
	}
	final := e.Document()

	for range ops {
		require.True(t, e.Undo())
	}
	assert.True(t, e.Graph().IsEmpty())
	assert.False(t, e.Undo(), "nothing left to undo")

	for range ops {
		require.True(t, e.Redo())
	}
	assert.Equal(t, final, e.Document())
	assert.False(t, e.Redo(), "nothing left to redo")
}

func TestEditor_FirstEditIsUndoable(t *testing.T) {
	e := NewEditor()
	assert.False(t, e.CanUndo())

	e.AddOrRetypeAtom(ptA, Carbon)
	assert.True(t, e.CanUndo())
	require.True(t, e.Undo())
	assert.True(t, e.Graph().IsEmpty())
	assert.True(t, e.CanRedo())
}

func TestEditor_NewEditAfterUndoDiscardsRedo(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	e.AddOrRetypeAtom(ptB, Carbon)
	e.AddOrRetypeAtom(ptC, Carbon)

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	e.AddOrRetypeAtom(ptC, Nitrogen)

	assert.False(t, e.CanRedo())
	assert.False(t, e.Redo())
	assert.Equal(t, "C", string(e.Graph().Atoms()[0].Element))
	assert.Equal(t, Nitrogen, e.Graph().Atoms()[1].Element)
}

func TestEditor_UndoCancelsPendingBond(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Carbon)
	e.AddOrRetypeAtom(ptB, Carbon)
	e.BeginBond(ptA)

	require.True(t, e.Undo())
	assert.False(t, e.Drawing())
}

// ─────────────────────────────────────────────────────────────────────────────
// Change notification
// ─────────────────────────────────────────────────────────────────────────────

func TestEditor_NotifiesAfterEachCommit(t *testing.T) {
	e := NewEditor()
	rec := &changeRecorder{}
	e.OnChange(rec.record)
	assert.Empty(t, rec.changes, "installing a callback does not notify")

	e.AddOrRetypeAtom(ptA, Carbon)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, EffectAtomAdded, rec.last().Effect)
	assert.Equal(t, "C", rec.last().Notation)
	assert.Len(t, rec.last().Document.Nodes, 1)

	e.BeginBond(ptA)
	assert.Len(t, rec.changes, 1, "pending bond does not notify")

	e.CompleteBond(Point{X: 100, Y: 200})
	require.Len(t, rec.changes, 2)
	assert.Equal(t, "CC", rec.last().Notation)
	assert.Len(t, rec.last().Document.Links, 1)
	assert.Equal(t, 1, rec.last().Document.Links[0].Bond)
}

func TestEditor_NoopsDoNotNotify(t *testing.T) {
	e := NewEditor()
	rec := &changeRecorder{}
	e.OnChange(rec.record)

	e.Erase(ptA)
	e.Clear()
	e.BeginBond(ptA)
	e.CompleteBond(ptA)
	e.Undo()
	e.Redo()
	assert.Empty(t, rec.changes)

	e.AddOrRetypeAtom(ptA, Carbon)
	drawBond(e, ptA, ptA)
	assert.Len(t, rec.changes, 1, "cancelled bond does not notify")
}

func TestEditor_UndoRedoNotify(t *testing.T) {
	e := NewEditor()
	e.AddOrRetypeAtom(ptA, Oxygen)
	rec := &changeRecorder{}
	e.OnChange(rec.record)

	e.Undo()
	require.Len(t, rec.changes, 1)
	assert.Equal(t, EffectUndone, rec.last().Effect)
	assert.Equal(t, "", rec.last().Notation)

	e.Redo()
	require.Len(t, rec.changes, 2)
	assert.Equal(t, EffectRedone, rec.last().Effect)
	assert.Equal(t, "O", rec.last().Notation)
}

func TestEditor_ReplacingCallbackDoesNotRefire(t *testing.T) {
	e := NewEditor()
	first := &changeRecorder{}
	second := &changeRecorder{}

	e.OnChange(first.record)
	e.AddOrRetypeAtom(ptA, Carbon)
	e.OnChange(second.record)
	e.OnChange(second.record)

	assert.Len(t, first.changes, 1)
	assert.Empty(t, second.changes)

	e.AddOrRetypeAtom(ptB, Carbon)
	assert.Len(t, first.changes, 1)
	assert.Len(t, second.changes, 1)
}

func TestEditor_ReentrantEditFromCallbackIsIgnored(t *testing.T) {
	e := NewEditor()
	calls := 0
	e.OnChange(func(Change) {
		calls++
		assert.Equal(t, EffectNone, e.AddOrRetypeAtom(ptC, Carbon))
		assert.False(t, e.Undo())
	})

	e.AddOrRetypeAtom(ptA, Carbon)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, e.Graph().AtomCount())
}

// ─────────────────────────────────────────────────────────────────────────────
// Load
// ─────────────────────────────────────────────────────────────────────────────

func TestEditor_LoadSkipsMalformedEntries(t *testing.T) {
	e := NewEditor()
	doc := Document{
		Nodes: []Node{
			{ID: 10, Atom: "C", X: 0, Y: 0},
			{ID: 11, Atom: "O", X: 50, Y: 0},
			{ID: 11, Atom: "N", X: 90, Y: 0},
			{ID: 12, Atom: "Xx", X: 99, Y: 0},
		},
		Links: []Link{
			{ID: 20, Source: 10, Target: 11, Bond: 2},
			{ID: 21, Source: 11, Target: 10, Bond: 1},
			{ID: 22, Source: 10, Target: 77, Bond: 1},
			{ID: 23, Source: 10, Target: 10, Bond: 1},
			{ID: 24, Source: 10, Target: 11, Bond: 5},
		},
	}

	assert.Equal(t, EffectLoaded, e.Load(doc))
	assert.Equal(t, 2, e.Graph().AtomCount())
	assert.Equal(t, 1, e.Graph().BondCount())
	assert.Equal(t, "C=O", e.Notation())

	e.AddOrRetypeAtom(Point{X: 500, Y: 500}, Carbon)
	atoms := e.Graph().Atoms()
	assert.Equal(t, AtomID(21), atoms[len(atoms)-1].ID, "ids continue after the largest loaded id")

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	assert.True(t, e.Graph().IsEmpty())
}

func TestEditor_LoadSkipsRepeatedLinkIDs(t *testing.T) {
	e := NewEditor()
	doc := Document{
		Nodes: []Node{
			{ID: 1, Atom: "C", X: 0, Y: 0},
			{ID: 2, Atom: "C", X: 100, Y: 0},
			{ID: 3, Atom: "O", X: 200, Y: 0},
		},
		Links: []Link{
			{ID: 10, Source: 1, Target: 2, Bond: 1},
			{ID: 10, Source: 2, Target: 3, Bond: 1},
		},
	}

	require.Equal(t, EffectLoaded, e.Load(doc))
	require.Equal(t, 1, e.Graph().BondCount())

	// Reconnecting 2-3 now adds a fresh bond with an unused id.
	require.True(t, e.BeginBond(Point{X: 100, Y: 0}))
	assert.Equal(t, EffectBondAdded, e.CompleteBond(Point{X: 200, Y: 0}))

	bonds := e.Graph().Bonds()
	require.Len(t, bonds, 2)
	assert.NotEqual(t, bonds[0].ID, bonds[1].ID)
	assert.Equal(t, SingleBond, bonds[0].Order)
}

func TestEditor_CompleteBond_CyclesTheReconnectedPair(t *testing.T) {
	e := NewEditor()
	e.Graph().addAtom(Atom{ID: 1, Element: Carbon, Position: Point{X: 0, Y: 0}})
	e.Graph().addAtom(Atom{ID: 2, Element: Carbon, Position: Point{X: 100, Y: 0}})
	e.Graph().addAtom(Atom{ID: 3, Element: Oxygen, Position: Point{X: 200, Y: 0}})
	e.Graph().addBond(Bond{ID: 10, Source: 1, Target: 2, Order: SingleBond})
	e.Graph().addBond(Bond{ID: 10, Source: 2, Target: 3, Order: SingleBond})

	require.True(t, e.BeginBond(Point{X: 100, Y: 0}))
	assert.Equal(t, EffectBondOrderCycled, e.CompleteBond(Point{X: 200, Y: 0}))

	b12, _ := e.Graph().FindBondBetween(1, 2)
	b23, _ := e.Graph().FindBondBetween(2, 3)
	assert.Equal(t, SingleBond, b12.Order)
	assert.Equal(t, DoubleBond, b23.Order)
}

func TestEditor_LoadEmptyIntoEmptyIsNoop(t *testing.T) {
	e := NewEditor()
	assert.Equal(t, EffectNone, e.Load(Document{}))
	assert.False(t, e.CanUndo())
}

//Personal.AI order the ending
