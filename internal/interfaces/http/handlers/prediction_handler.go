package handlers

import (
	"net/http"

	appPred "github.com/turtacn/molsketch/internal/application/prediction"
	domainPred "github.com/turtacn/molsketch/internal/domain/prediction"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
)

// PredictionHandler proxies prediction requests to the configured service,
// sparing browsers a cross-origin call.
type PredictionHandler struct {
	service appPred.Service
	logger  logging.Logger
}

func NewPredictionHandler(service appPred.Service, logger logging.Logger) *PredictionHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &PredictionHandler{service: service, logger: logger.Named("predict")}
}

// PredictRequest names either a SMILES string or an example molecule.
type PredictRequest struct {
	SMILES  string `json:"smiles"`
	Example string `json:"example,omitempty"`
}

// Predict handles POST /predict.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	var (
		res *domainPred.Result
		err error
	)
	if req.Example != "" && req.SMILES == "" {
		res, err = h.service.PredictExample(r.Context(), req.Example)
	} else {
		res, err = h.service.Predict(r.Context(), req.SMILES)
	}
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Examples handles GET /examples.
func (h *PredictionHandler) Examples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Examples())
}

//Personal.AI order the ending
