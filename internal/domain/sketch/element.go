// Package sketch is the molecule editor core: the atom/bond structure graph,
// the edit operations that mutate it, the undo/redo history, the pointer
// interaction surface and the SMILES-like notation derived from the graph.
//
// Everything in this package is synchronous and single-threaded.  An Editor
// is owned by exactly one caller; hosts that share an editor across
// goroutines must serialize access themselves.
package sketch

import (
	"strings"

	"github.com/turtacn/molsketch/pkg/errors"
)

// Element is a chemical element symbol that can be placed on the canvas.
type Element string

const (
	Carbon     Element = "C"
	Nitrogen   Element = "N"
	Oxygen     Element = "O"
	Sulfur     Element = "S"
	Phosphorus Element = "P"
	Fluorine   Element = "F"
	Chlorine   Element = "Cl"
	Bromine    Element = "Br"
	Iodine     Element = "I"
	Hydrogen   Element = "H"
)

// palette is the fixed element set in toolbar order.
var palette = []Element{
	Carbon, Nitrogen, Oxygen, Sulfur, Phosphorus,
	Fluorine, Chlorine, Bromine, Iodine, Hydrogen,
}

// Elements returns the supported element symbols in toolbar order.
func Elements() []Element {
	out := make([]Element, len(palette))
	copy(out, palette)
	return out
}

// IsValid reports whether e belongs to the supported element set.
func (e Element) IsValid() bool {
	for _, p := range palette {
		if p == e {
			return true
		}
	}
	return false
}

func (e Element) String() string { return string(e) }

// ParseElement resolves a symbol to an Element.  Matching is exact for the
// canonical spelling and case-insensitive otherwise ("cl" -> Cl).
func ParseElement(symbol string) (Element, error) {
	s := strings.TrimSpace(symbol)
	for _, p := range palette {
		if string(p) == s {
			return p, nil
		}
	}
	for _, p := range palette {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidElement, "unsupported element symbol").
		WithDetail("element=" + symbol)
}

//Personal.AI order the ending
