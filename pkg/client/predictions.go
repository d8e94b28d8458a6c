package client

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/turtacn/molsketch/pkg/errors"
)

// StatusSuccess is the status value of a successful prediction response.
const StatusSuccess = "success"

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	SMILES string `json:"smiles"`
}

// Prediction is the drug-sensitivity estimate for one molecule.
type Prediction struct {
	IC50                float64 `json:"ic50_prediction"`
	SensitivityScore    float64 `json:"sensitivity_score"`
	SensitivityCategory string  `json:"sensitivity_category"`
}

// PredictResponse is the body of a 2xx answer to POST /predict.
type PredictResponse struct {
	Status     string      `json:"status"`
	Prediction *Prediction `json:"prediction,omitempty"`
}

// PredictionsClient groups the prediction endpoints.
type PredictionsClient struct {
	client *Client
}

// Predict submits smiles to the service.  Blank input is rejected before any
// request is made.  Errors carry one of:
//   - ErrCodePredictionEmptyInput: nothing to submit;
//   - ErrCodePredictionUnreachable: the service could not be reached;
//   - ErrCodePredictionRejected: the service refused the input (4xx or a
//     non-success status);
//   - ErrCodeExternalService: the service failed (5xx);
//   - ErrCodePredictionMalformed: the answer could not be understood.
func (p *PredictionsClient) Predict(ctx context.Context, smiles string) (*Prediction, error) {
	s := strings.TrimSpace(smiles)
	if s == "" {
		return nil, errors.New(errors.ErrCodePredictionEmptyInput, "Please enter a SMILES string.")
	}

	var resp PredictResponse
	if err := p.client.post(ctx, "/predict", PredictRequest{SMILES: s}, &resp); err != nil {
		var apiErr *APIError
		if stderrors.As(err, &apiErr) {
			code := errors.ErrCodePredictionRejected
			if apiErr.IsServerError() {
				code = errors.ErrCodeExternalService
			}
			return nil, errors.Wrap(apiErr, code, apiErr.Message)
		}
		return nil, err
	}

	if resp.Status != StatusSuccess {
		return nil, errors.New(errors.ErrCodePredictionRejected, "Prediction failed. Check your SMILES string.").
			WithDetail("status=" + resp.Status)
	}
	if resp.Prediction == nil {
		return nil, errors.New(errors.ErrCodePredictionMalformed, "prediction missing from response")
	}
	return resp.Prediction, nil
}

//Personal.AI order the ending
