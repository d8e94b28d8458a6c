package sketch

import (
	"encoding/json"

	"github.com/turtacn/molsketch/pkg/errors"
)

// Node is an atom in the neutral document form handed to renderers.
type Node struct {
	ID   int64   `json:"id"`
	Atom string  `json:"atom"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Link is a bond in the neutral document form.
type Link struct {
	ID     int64 `json:"id"`
	Source int64 `json:"source"`
	Target int64 `json:"target"`
	Bond   int   `json:"bond"`
}

// Document is the node/link list exchanged with rendering collaborators and
// offered as the "download structure" payload.
type Document struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// NewDocument converts atoms and bonds into document form, preserving order.
func NewDocument(atoms []Atom, bonds []Bond) Document {
	doc := Document{
		Nodes: make([]Node, 0, len(atoms)),
		Links: make([]Link, 0, len(bonds)),
	}
	for _, a := range atoms {
		doc.Nodes = append(doc.Nodes, Node{
			ID:   int64(a.ID),
			Atom: string(a.Element),
			X:    a.Position.X,
			Y:    a.Position.Y,
		})
	}
	for _, b := range bonds {
		doc.Links = append(doc.Links, Link{
			ID:     int64(b.ID),
			Source: int64(b.Source),
			Target: int64(b.Target),
			Bond:   int(b.Order),
		})
	}
	return doc
}

// Atoms converts the nodes back to atoms without validating element symbols.
func (d Document) Atoms() []Atom {
	out := make([]Atom, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		out = append(out, Atom{
			ID:       AtomID(n.ID),
			Position: Point{X: n.X, Y: n.Y},
			Element:  Element(n.Atom),
		})
	}
	return out
}

// Bonds converts the links back to bonds.  Links are not checked against
// the node set; consumers skip dangling ones.
func (d Document) Bonds() []Bond {
	out := make([]Bond, 0, len(d.Links))
	for _, l := range d.Links {
		out = append(out, Bond{
			ID:     BondID(l.ID),
			Source: AtomID(l.Source),
			Target: AtomID(l.Target),
			Order:  BondOrder(l.Bond),
		})
	}
	return out
}

// Notation derives the linear notation straight from the document.  Links
// that reference missing nodes are skipped.
func (d Document) Notation() string {
	return GenerateNotation(d.Atoms(), d.Bonds())
}

// MarshalDocument renders the document as indented JSON.
func MarshalDocument(d Document) ([]byte, error) {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Links == nil {
		d.Links = []Link{}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "encode structure document")
	}
	return data, nil
}

// ParseDocument decodes a JSON node/link document.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(err, errors.ErrCodeInvalidDocument, "decode structure document")
	}
	return d, nil
}

//Personal.AI order the ending
