package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeMessageQueueError  ErrorCode = "COMMON_010"
	ErrCodeExternalService    ErrorCode = "COMMON_011"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_012"
	ErrCodeRateLimited        ErrorCode = "COMMON_013"
)

// Aliases used by the factory helpers.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeUnavailable  = ErrCodeServiceUnavailable
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Sketch Module Error Codes
const (
	ErrCodeSessionNotFound     ErrorCode = "SKETCH_001"
	ErrCodeSessionLimitReached ErrorCode = "SKETCH_002"
	ErrCodeInvalidTool         ErrorCode = "SKETCH_003"
	ErrCodeInvalidElement      ErrorCode = "SKETCH_004"
	ErrCodeInvalidDocument     ErrorCode = "SKETCH_005"
	ErrCodeInvalidPointer      ErrorCode = "SKETCH_006"
)

// Prediction Module Error Codes
const (
	ErrCodePredictionEmptyInput     ErrorCode = "PRED_001"
	ErrCodePredictionUnreachable    ErrorCode = "PRED_002"
	ErrCodePredictionRejected       ErrorCode = "PRED_003"
	ErrCodePredictionMalformed      ErrorCode = "PRED_004"
	ErrCodePredictionUnknownExample ErrorCode = "PRED_005"
	ErrCodePredictionNotConfigured  ErrorCode = "PRED_006"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessageQueueError:  http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusForbidden,
	ErrCodeRateLimited:        http.StatusTooManyRequests,

	ErrCodeSessionNotFound:     http.StatusNotFound,
	ErrCodeSessionLimitReached: http.StatusTooManyRequests,
	ErrCodeInvalidTool:         http.StatusBadRequest,
	ErrCodeInvalidElement:      http.StatusBadRequest,
	ErrCodeInvalidDocument:     http.StatusUnprocessableEntity,
	ErrCodeInvalidPointer:      http.StatusBadRequest,

	ErrCodePredictionEmptyInput:     http.StatusBadRequest,
	ErrCodePredictionUnreachable:    http.StatusBadGateway,
	ErrCodePredictionRejected:       http.StatusUnprocessableEntity,
	ErrCodePredictionMalformed:      http.StatusBadGateway,
	ErrCodePredictionUnknownExample: http.StatusNotFound,
	ErrCodePredictionNotConfigured:  http.StatusServiceUnavailable,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization error",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessageQueueError:  "message queue error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",
	ErrCodeRateLimited:        "rate limit exceeded, please retry later",

	ErrCodeSessionNotFound:     "sketch session not found",
	ErrCodeSessionLimitReached: "too many open sketch sessions",
	ErrCodeInvalidTool:         "unknown editor tool",
	ErrCodeInvalidElement:      "unsupported element symbol",
	ErrCodeInvalidDocument:     "invalid structure document",
	ErrCodeInvalidPointer:      "invalid pointer event",

	ErrCodePredictionEmptyInput:     "Please enter a SMILES string.",
	ErrCodePredictionUnreachable:    "prediction service unreachable",
	ErrCodePredictionRejected:       "Prediction failed. Check your SMILES string.",
	ErrCodePredictionMalformed:      "malformed prediction response",
	ErrCodePredictionUnknownExample: "unknown example molecule",
	ErrCodePredictionNotConfigured:  "prediction service not configured",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
