// Package client is the Go SDK for the drug-sensitivity prediction service.
// The service accepts a SMILES string and answers with an IC50 estimate and a
// sensitivity category.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/turtacn/molsketch/pkg/errors"
)

const Version = "0.1.0"

// Logger defines the logging interface used by the Client
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// noopLogger is a no-op implementation of Logger
type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client talks to the prediction service.  Requests are sent once; failed
// requests are reported to the caller and never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	userAgent  string
	logger     Logger

	predictions     *PredictionsClient
	predictionsOnce sync.Once
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("predictor: HTTP %d: %s [request_id=%s]", e.StatusCode, e.Message, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodePredictionNotConfigured, "predictor base URL is empty")
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePredictionNotConfigured, "invalid predictor base URL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New(errors.ErrCodePredictionNotConfigured, "predictor base URL scheme must be http or https").
			WithDetail("url=" + baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  fmt.Sprintf("molsketch-go-sdk/%s", Version),
		logger:     &noopLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the service root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Predictions returns the predictions sub-client (lazy initialization, thread-safe)
func (c *Client) Predictions() *PredictionsClient {
	c.predictionsOnce.Do(func() {
		c.predictions = &PredictionsClient{client: c}
	})
	return c.predictions
}

// do performs a single JSON request.  Transport failures are reported with
// ErrCodePredictionUnreachable, non-2xx answers as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal request body")
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create request")
	}

	requestID := uuid.New().String()
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Errorf("Request failed: %v", err)
		return errors.Wrap(err, errors.ErrCodePredictionUnreachable, "prediction service unreachable").
			WithDetail(method + " " + fullURL)
	}
	defer resp.Body.Close()

	c.logger.Debugf("%s %s %d (%v)", method, path, resp.StatusCode, duration)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePredictionUnreachable, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, respBody, requestID)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrap(err, errors.ErrCodePredictionMalformed, "failed to unmarshal response")
		}
	}
	return nil
}

// newAPIError prefers the service's {"error": "..."} message and falls back
// to "<code> <status text>".
func newAPIError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{StatusCode: status, RequestID: requestID}

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &errResp) == nil {
		apiErr.Message = errResp.Error
		if apiErr.Message == "" {
			apiErr.Message = errResp.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	return apiErr
}

func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

//Personal.AI order the ending
