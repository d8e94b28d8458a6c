package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	appSketch "github.com/turtacn/molsketch/internal/application/sketch"
	domainSketch "github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/pkg/errors"
)

// EventStreamer upgrades a request into a live change-event stream.
type EventStreamer interface {
	Serve(w http.ResponseWriter, r *http.Request, sessionID string, initial func() interface{}) error
}

// SessionHandler exposes hosted editing sessions.
type SessionHandler struct {
	manager  *appSketch.Manager
	streamer EventStreamer
	logger   logging.Logger
}

// NewSessionHandler creates the handler.  A nil streamer disables the
// events endpoint.
func NewSessionHandler(manager *appSketch.Manager, streamer EventStreamer, logger logging.Logger) *SessionHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SessionHandler{manager: manager, streamer: streamer, logger: logger.Named("sessions")}
}

// ToolRequest is the body of PUT /sessions/{id}/tool.  Empty fields keep
// the current selection.
type ToolRequest struct {
	Tool    string `json:"tool"`
	Element string `json:"element"`
}

// PointerRequest is the body of POST /sessions/{id}/pointer.
type PointerRequest struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// ActionResponse reports what an edit did and the resulting state.
type ActionResponse struct {
	Effect string          `json:"effect"`
	State  appSketch.State `json:"state"`
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*appSketch.Session, bool) {
	s, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, h.logger, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) respond(w http.ResponseWriter, s *appSketch.Session, effect domainSketch.Effect) {
	writeJSON(w, http.StatusOK, ActionResponse{Effect: effect.String(), State: s.State()})
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Create(r.Context())
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", r.URL.Path+"/"+s.ID())
	writeJSON(w, http.StatusCreated, s.State())
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if s, ok := h.session(w, r); ok {
		writeJSON(w, http.StatusOK, s.State())
	}
}

// Delete handles DELETE /sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectTool handles PUT /sessions/{id}/tool.
func (h *SessionHandler) SelectTool(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ToolRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if err := s.SelectTool(r.Context(), req.Tool, req.Element); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s.State())
}

// Pointer handles POST /sessions/{id}/pointer.
func (h *SessionHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req PointerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	effect, err := s.Pointer(r.Context(), req.Action, domainSketch.Point{X: req.X, Y: req.Y})
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	h.respond(w, s, effect)
}

// Undo handles POST /sessions/{id}/undo.  Undoing with nothing to undo is
// not an error; the effect is "none".
func (h *SessionHandler) Undo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	effect := domainSketch.EffectNone
	if s.Undo(r.Context()) {
		effect = domainSketch.EffectUndone
	}
	h.respond(w, s, effect)
}

// Redo handles POST /sessions/{id}/redo.
func (h *SessionHandler) Redo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	effect := domainSketch.EffectNone
	if s.Redo(r.Context()) {
		effect = domainSketch.EffectRedone
	}
	h.respond(w, s, effect)
}

// Clear handles POST /sessions/{id}/clear.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respond(w, s, s.Clear(r.Context()))
}

// Download handles GET /sessions/{id}/document: the node/link document as
// an indented JSON attachment.
func (h *SessionHandler) Download(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	data, err := domainSketch.MarshalDocument(s.Document())
	if err != nil {
		writeAppError(w, h.logger, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode document"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="molecule.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles PUT /sessions/{id}/document.
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	data, err := readBody(r)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	effect, err := s.Import(r.Context(), data)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	h.respond(w, s, effect)
}

// Events handles GET /sessions/{id}/events.  The connection first receives
// the current state, then every ChangeEvent of the session.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.streamer == nil {
		writeAppError(w, h.logger, errors.New(errors.ErrCodeFeatureDisabled, "event streaming is disabled"))
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	// On upgrade failure the upgrader has already answered the request.
	// The state is read only after the subscription exists.
	if err := h.streamer.Serve(w, r, s.ID(), func() interface{} { return s.State() }); err != nil {
		h.logger.Debug("Event stream not established",
			logging.String("session_id", s.ID()), logging.Err(err))
	}
}

//Personal.AI order the ending
