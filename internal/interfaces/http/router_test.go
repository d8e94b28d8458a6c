package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appSketch "github.com/turtacn/molsketch/internal/application/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molsketch/internal/interfaces/http/handlers"
	"github.com/turtacn/molsketch/internal/interfaces/http/middleware"
	"github.com/turtacn/molsketch/internal/testutil"
)

type testRouter struct {
	handler   http.Handler
	manager   *appSketch.Manager
	collector prometheus.MetricsCollector
}

func newTestRouter(t *testing.T, mutate func(*RouterConfig)) testRouter {
	t.Helper()

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test"}, nil)
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)
	logger := testutil.NewMockLogger()

	manager := appSketch.NewManager(appSketch.Config{MaxSessions: 10}, appSketch.WithMetrics(metrics))
	t.Cleanup(func() { _ = manager.Close() })

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = []string{"*"}
	cfg := RouterConfig{
		SessionHandler:   handlers.NewSessionHandler(manager, nil, logger),
		NotationHandler:  handlers.NewNotationHandler(metrics, logger),
		HealthHandler:    handlers.NewHealthHandler("test"),
		CORS:             &cors,
		Logging:          middleware.DefaultLoggingConfig(),
		MaxBodySize:      1 << 16,
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return testRouter{handler: NewRouter(cfg), manager: manager, collector: collector}
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewRouter_Probes(t *testing.T) {
	tr := newTestRouter(t, nil)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detail"} {
		w := serve(tr.handler, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNewRouter_SessionLifecycle(t *testing.T) {
	tr := newTestRouter(t, nil)

	w := serve(tr.handler, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var state appSketch.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "/api/v1/sessions/"+state.ID, w.Header().Get("Location"))

	base := "/api/v1/sessions/" + state.ID
	w = serve(tr.handler, http.MethodPut, base+"/tool", `{"tool":"place-atom"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = serve(tr.handler, http.MethodPost, base+"/pointer", `{"action":"press","x":10,"y":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"effect":"atom_added"`)

	w = serve(tr.handler, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, "C", state.SMILES)
	assert.True(t, state.CanUndo)

	assert.Equal(t, http.StatusOK, serve(tr.handler, http.MethodPost, base+"/undo", "").Code)
	assert.Equal(t, http.StatusOK, serve(tr.handler, http.MethodGet, base+"/document", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(tr.handler, http.MethodDelete, base, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(tr.handler, http.MethodGet, base, "").Code)
}

func TestNewRouter_Notation(t *testing.T) {
	tr := newTestRouter(t, nil)

	body := `{"nodes":[{"id":1,"atom":"C","x":0,"y":0},{"id":2,"atom":"O","x":60,"y":0}],` +
		`"links":[{"id":3,"source":1,"target":2,"bond":2}]}`
	w := serve(tr.handler, http.MethodPost, "/api/v1/notation", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"smiles":"C=O"`)
}

func TestNewRouter_BodyLimit(t *testing.T) {
	tr := newTestRouter(t, func(cfg *RouterConfig) { cfg.MaxBodySize = 16 })

	w := serve(tr.handler, http.MethodPost, "/api/v1/notation", `{"nodes":[],"links":[],"padding":"xxxxxxxx"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "request body too large")
}

func TestNewRouter_NilHandlersNotMounted(t *testing.T) {
	tr := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.SessionHandler = nil
		cfg.NotationHandler = nil
		cfg.HealthHandler = nil
		cfg.MetricsCollector = nil
	})

	for _, path := range []string{"/healthz", "/metrics", "/api/v1/sessions", "/api/v1/examples"} {
		w := serve(tr.handler, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestNewRouter_RateLimitsSessionCreation(t *testing.T) {
	limiter := middleware.NewTokenBucketLimiter(0.001, 1, time.Hour)
	t.Cleanup(limiter.Stop)
	tr := newTestRouter(t, func(cfg *RouterConfig) { cfg.RateLimiter = limiter })

	assert.Equal(t, http.StatusCreated, serve(tr.handler, http.MethodPost, "/api/v1/sessions", "").Code)
	w := serve(tr.handler, http.MethodPost, "/api/v1/sessions", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 1, tr.manager.Count())

	// Other endpoints draw from their own bucket.
	body := `{"nodes":[],"links":[]}`
	assert.Equal(t, http.StatusOK, serve(tr.handler, http.MethodPost, "/api/v1/notation", body).Code)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	tr := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	tr.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestNewRouter_MetricsExposed(t *testing.T) {
	tr := newTestRouter(t, nil)

	serve(tr.handler, http.MethodPost, "/api/v1/sessions", "")
	w := serve(tr.handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
	assert.Contains(t, w.Body.String(), `route="/api/v1/sessions`)
	assert.Contains(t, w.Body.String(), "test_active_sessions 1")
}

//Personal.AI order the ending
