// Package sketch hosts molecule editing sessions on the server. Each session
// owns one editor and interaction surface, serializes access to them, and
// turns committed changes into events for the configured notifiers.
package sketch

import (
	"context"
	"sync"
	"time"

	domainSketch "github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molsketch/pkg/errors"
)

// Pointer actions accepted by Session.Pointer.
const (
	ActionPress   = "press"
	ActionMove    = "move"
	ActionRelease = "release"
)

// State is the externally visible snapshot of a session.
type State struct {
	ID         string                `json:"id"`
	Tool       string                `json:"tool"`
	Element    string                `json:"element"`
	Document   domainSketch.Document `json:"document"`
	SMILES     string                `json:"smiles"`
	CanUndo    bool                  `json:"can_undo"`
	CanRedo    bool                  `json:"can_redo"`
	Revision   uint64                `json:"revision"`
	Preview    *domainSketch.Preview `json:"preview,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	LastActive time.Time             `json:"last_active"`
}

// Session is one hosted editor. All methods are safe for concurrent use.
type Session struct {
	id      string
	manager *Manager

	mu         sync.Mutex
	editor     *domainSketch.Editor
	surface    *domainSketch.Surface
	revision   uint64
	createdAt  time.Time
	lastActive time.Time
	pending    []domainSketch.ChangeEvent
}

func newSession(id string, m *Manager) *Session {
	now := m.now()
	s := &Session{
		id:         id,
		manager:    m,
		editor:     domainSketch.NewEditor(),
		createdAt:  now,
		lastActive: now,
	}
	s.surface = domainSketch.NewSurface(s.editor)
	s.editor.OnChange(s.onChange)
	return s
}

func (s *Session) ID() string { return s.id }

// onChange runs inside an editor operation while s.mu is held.
func (s *Session) onChange(c domainSketch.Change) {
	s.revision++
	s.pending = append(s.pending, domainSketch.ChangeEvent{
		SessionID:  s.id,
		Revision:   s.revision,
		Effect:     c.Effect.String(),
		Document:   c.Document,
		Notation:   c.Notation,
		OccurredAt: s.manager.now(),
	})
	prometheus.RecordSketchEdit(s.manager.metrics, c.Effect.String())
}

// do runs fn under the session lock and delivers the events it produced
// before releasing the lock, so subscribers see them in revision order.
func (s *Session) do(ctx context.Context, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.manager.now()
	fn()
	events := s.pending
	s.pending = nil
	for _, ev := range events {
		s.manager.dispatch(ctx, ev)
	}
}

// SelectTool switches the active tool and, when element is not empty, the
// element placed by the place-atom tool.
func (s *Session) SelectTool(ctx context.Context, tool, element string) error {
	var (
		t   domainSketch.Tool
		el  domainSketch.Element
		err error
	)
	if tool != "" {
		if t, err = domainSketch.ParseTool(tool); err != nil {
			return err
		}
	}
	if element != "" {
		if el, err = domainSketch.ParseElement(element); err != nil {
			return err
		}
	}
	s.do(ctx, func() {
		if t != "" {
			_ = s.surface.SelectTool(t)
		}
		if el != "" {
			_ = s.surface.SelectElement(el)
		}
	})
	return nil
}

// Pointer feeds one pointer event, in editor coordinates, to the surface.
func (s *Session) Pointer(ctx context.Context, action string, p domainSketch.Point) (domainSketch.Effect, error) {
	effect := domainSketch.EffectNone
	switch action {
	case ActionPress:
		s.do(ctx, func() { effect = s.surface.Press(p) })
	case ActionMove:
		s.do(ctx, func() { s.surface.Move(p) })
	case ActionRelease:
		s.do(ctx, func() { effect = s.surface.Release(p) })
	default:
		return effect, errors.New(errors.ErrCodeInvalidPointer, "unknown pointer action").
			WithDetail("action=" + action)
	}
	return effect, nil
}

// Undo reports whether a step was undone.
func (s *Session) Undo(ctx context.Context) bool {
	var ok bool
	s.do(ctx, func() { ok = s.editor.Undo() })
	return ok
}

// Redo reports whether a step was redone.
func (s *Session) Redo(ctx context.Context) bool {
	var ok bool
	s.do(ctx, func() { ok = s.editor.Redo() })
	return ok
}

// Clear removes every atom and bond as one undoable edit.
func (s *Session) Clear(ctx context.Context) domainSketch.Effect {
	var effect domainSketch.Effect
	s.do(ctx, func() { effect = s.editor.Clear() })
	return effect
}

// Import validates raw document JSON and replaces the structure with it as
// one undoable edit.
func (s *Session) Import(ctx context.Context, data []byte) (domainSketch.Effect, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return domainSketch.EffectNone, err
	}
	var effect domainSketch.Effect
	s.do(ctx, func() { effect = s.editor.Load(doc) })
	return effect, nil
}

// Document returns the current structure.
func (s *Session) Document() domainSketch.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Document()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := prometheus.NewTimer(nil)
	smiles := s.editor.Notation()
	prometheus.RecordNotation(s.manager.metrics, timer.ObserveDuration())

	st := State{
		ID:         s.id,
		Tool:       string(s.surface.Tool()),
		Element:    string(s.surface.Element()),
		Document:   s.editor.Document(),
		SMILES:     smiles,
		CanUndo:    s.editor.CanUndo(),
		CanRedo:    s.editor.CanRedo(),
		Revision:   s.revision,
		CreatedAt:  s.createdAt,
		LastActive: s.lastActive,
	}
	if p, ok := s.surface.Preview(); ok {
		st.Preview = &p
	}
	return st
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

//Personal.AI order the ending
