package handlers

import (
	"net/http"

	appSketch "github.com/turtacn/molsketch/internal/application/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
)

// NotationHandler derives SMILES from a posted node/link document without
// opening a session.
type NotationHandler struct {
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

func NewNotationHandler(metrics *prometheus.AppMetrics, logger logging.Logger) *NotationHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NotationHandler{metrics: metrics, logger: logger.Named("notation")}
}

// NotationResponse is the body returned by POST /notation.
type NotationResponse struct {
	SMILES string `json:"smiles"`
	Atoms  int    `json:"atoms"`
	Bonds  int    `json:"bonds"`
}

// Notation handles POST /notation.
func (h *NotationHandler) Notation(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	doc, err := appSketch.DecodeDocument(data)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	timer := prometheus.NewTimer(nil)
	smiles := doc.Notation()
	prometheus.RecordNotation(h.metrics, timer.ObserveDuration())

	writeJSON(w, http.StatusOK, NotationResponse{
		SMILES: smiles,
		Atoms:  len(doc.Nodes),
		Bonds:  len(doc.Links),
	})
}

//Personal.AI order the ending
