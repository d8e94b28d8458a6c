package sketch

import "github.com/turtacn/molsketch/pkg/errors"

// Tool is the interaction mode selected on the toolbar.
type Tool string

const (
	ToolPlaceAtom Tool = "place-atom"
	ToolBond      Tool = "bond"
	ToolErase     Tool = "erase"
)

// Tools lists the available tools.
func Tools() []Tool {
	return []Tool{ToolPlaceAtom, ToolBond, ToolErase}
}

// IsValid reports whether t is a known tool.
func (t Tool) IsValid() bool {
	switch t {
	case ToolPlaceAtom, ToolBond, ToolErase:
		return true
	}
	return false
}

// ParseTool resolves a tool name.
func ParseTool(name string) (Tool, error) {
	t := Tool(name)
	if !t.IsValid() {
		return "", errors.New(errors.ErrCodeInvalidTool, "unknown editor tool").
			WithDetail("tool=" + name)
	}
	return t, nil
}

// Preview is the provisional line drawn while a bond is being dragged.  It
// carries no chemical meaning.
type Preview struct {
	Origin  Point `json:"origin"`
	Pointer Point `json:"pointer"`
}

// Surface turns pointer input, already mapped into editor coordinates, into
// edit operations according to the selected tool.
type Surface struct {
	editor  *Editor
	tool    Tool
	element Element
	pointer Point
}

// NewSurface binds a surface to editor.  The bond tool and carbon are
// selected initially.
func NewSurface(editor *Editor) *Surface {
	return &Surface{
		editor:  editor,
		tool:    ToolBond,
		element: Carbon,
	}
}

// Editor returns the editor driven by the surface.
func (s *Surface) Editor() *Editor { return s.editor }

// Tool returns the selected tool.
func (s *Surface) Tool() Tool { return s.tool }

// Element returns the element placed by the place-atom tool.
func (s *Surface) Element() Element { return s.element }

// SelectTool switches tools, dropping any pending bond.
func (s *Surface) SelectTool(t Tool) error {
	if !t.IsValid() {
		return errors.New(errors.ErrCodeInvalidTool, "unknown editor tool").
			WithDetail("tool=" + string(t))
	}
	s.editor.CancelBond()
	s.tool = t
	return nil
}

// SelectElement chooses the element placed by the place-atom tool.
func (s *Surface) SelectElement(el Element) error {
	if !el.IsValid() {
		return errors.New(errors.ErrCodeInvalidElement, "unsupported element symbol").
			WithDetail("element=" + string(el))
	}
	s.element = el
	return nil
}

// Press handles a pointer press at p.
func (s *Surface) Press(p Point) Effect {
	s.pointer = p
	switch s.tool {
	case ToolPlaceAtom:
		return s.editor.AddOrRetypeAtom(p, s.element)
	case ToolBond:
		s.editor.BeginBond(p)
	case ToolErase:
		return s.editor.Erase(p)
	}
	return EffectNone
}

// Move tracks the pointer for the bond preview.
func (s *Surface) Move(p Point) {
	s.pointer = p
}

// Release handles a pointer release at p.  A pending bond is completed in
// bond mode and discarded otherwise.
func (s *Surface) Release(p Point) Effect {
	s.pointer = p
	if !s.editor.Drawing() {
		return EffectNone
	}
	if s.tool != ToolBond {
		s.editor.CancelBond()
		return EffectNone
	}
	return s.editor.CompleteBond(p)
}

// Preview returns the pending bond's origin and the live pointer position.
func (s *Surface) Preview() (Preview, bool) {
	origin, ok := s.editor.Pending()
	if !ok {
		return Preview{}, false
	}
	return Preview{Origin: origin.Position, Pointer: s.pointer}, true
}

//Personal.AI order the ending
