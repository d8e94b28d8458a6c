// Package prediction models drug-sensitivity predictions requested for a
// molecule's SMILES string.  The prediction itself is computed by a remote
// service reached through the Predictor port.
package prediction

import (
	"context"
	"strings"

	"github.com/turtacn/molsketch/pkg/errors"
)

// Result is a drug-sensitivity estimate.
type Result struct {
	SMILES              string  `json:"smiles"`
	IC50                float64 `json:"ic50_prediction"`
	SensitivityScore    float64 `json:"sensitivity_score"`
	SensitivityCategory string  `json:"sensitivity_category"`
	Level               Level   `json:"level"`
}

// Predictor produces a Result for a validated SMILES string.
type Predictor interface {
	Predict(ctx context.Context, smiles string) (*Result, error)
}

// Level is a coarse reading of the service's free-text category.
type Level string

const (
	LevelHigh     Level = "high"
	LevelModerate Level = "moderate"
	LevelLow      Level = "low"
)

// ClassifySensitivity maps a category such as "High Sensitivity" to a Level.
// Anything that mentions neither "high" nor "moderate" is low.
func ClassifySensitivity(category string) Level {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "high"):
		return LevelHigh
	case strings.Contains(c, "moderate"):
		return LevelModerate
	default:
		return LevelLow
	}
}

// ValidateSMILES trims s and rejects blank input.
func ValidateSMILES(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", errors.New(errors.ErrCodePredictionEmptyInput, "Please enter a SMILES string.")
	}
	return trimmed, nil
}

//Personal.AI order the ending
