// Package handlers implements the HTTP handlers of the sketch API.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/pkg/errors"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeAppError maps err to its HTTP status.  Server-side failures are
// logged and their message masked.
func writeAppError(w http.ResponseWriter, log logging.Logger, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	resp := ErrorResponse{Code: string(code), Message: err.Error()}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	}
	if status >= 500 {
		log.Error("Request failed", logging.String("code", string(code)), logging.Err(err))
		if code == errors.ErrCodeInternal || code == errors.CodeUnknown {
			resp.Message = errors.DefaultMessageForCode(errors.ErrCodeInternal)
			resp.Detail = ""
		}
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads a JSON body into dst.  The body size is bounded by the
// router's RequestSize middleware.
func decodeJSON(r *http.Request, dst interface{}) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "malformed JSON body")
	}
	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeBadRequest, "request body too large")
		}
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read request body")
	}
	return data, nil
}

//Personal.AI order the ending
