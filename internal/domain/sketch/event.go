package sketch

import (
	"context"
	"time"
)

// Effect names what a committed operation did to the graph.
type Effect int

const (
	EffectNone Effect = iota
	EffectAtomAdded
	EffectAtomRetyped
	EffectBondAdded
	EffectBondOrderCycled
	EffectAtomAndBondAdded
	EffectAtomErased
	EffectCleared
	EffectLoaded
	EffectUndone
	EffectRedone
)

var effectNames = map[Effect]string{
	EffectNone:             "none",
	EffectAtomAdded:        "atom_added",
	EffectAtomRetyped:      "atom_retyped",
	EffectBondAdded:        "bond_added",
	EffectBondOrderCycled:  "bond_order_cycled",
	EffectAtomAndBondAdded: "atom_and_bond_added",
	EffectAtomErased:       "atom_erased",
	EffectCleared:          "cleared",
	EffectLoaded:           "loaded",
	EffectUndone:           "undone",
	EffectRedone:           "redone",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "unknown"
}

// Changed reports whether the graph was modified.
func (e Effect) Changed() bool { return e != EffectNone }

// Change is delivered to the editor's change callback after every committed
// modification.
type Change struct {
	Effect   Effect
	Document Document
	Notation string
}

// ChangeFunc receives committed changes.  It runs synchronously and must not
// call back into the editor.
type ChangeFunc func(Change)

// ChangeEvent is a committed change addressed to one hosted editing session.
type ChangeEvent struct {
	SessionID  string    `json:"session_id"`
	Revision   uint64    `json:"revision"`
	Effect     string    `json:"effect"`
	Document   Document  `json:"document"`
	Notation   string    `json:"smiles"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventType identifies the event on message buses.
func (ChangeEvent) EventType() string { return "sketch.structure_changed" }

// Notifier pushes change events to an external consumer.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, event ChangeEvent) error
	Close() error
}

//Personal.AI order the ending
