package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the service exports.
type AppMetrics struct {
	// Sketch
	SketchEditsTotal  CounterVec
	NotationsTotal    CounterVec
	NotationDuration  HistogramVec
	ActiveSessions    GaugeVec
	ChangeEventsTotal CounterVec

	// Prediction
	PredictionsTotal   CounterVec
	PredictionDuration HistogramVec
	CacheLookupsTotal  CounterVec

	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
}

var (
	DefaultHTTPDurationBuckets       = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultNotationDurationBuckets   = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05}
	DefaultPredictionDurationBuckets = []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.SketchEditsTotal = collector.RegisterCounter("sketch_edits_total", "Committed sketch edits", "operation")
	m.NotationsTotal = collector.RegisterCounter("notations_total", "Generated SMILES notations")
	m.NotationDuration = collector.RegisterHistogram("notation_duration_seconds", "SMILES generation duration", DefaultNotationDurationBuckets)
	m.ActiveSessions = collector.RegisterGauge("active_sessions", "Open sketch sessions")
	m.ChangeEventsTotal = collector.RegisterCounter("change_events_total", "Structure change events delivered to notifiers", "notifier", "status")

	m.PredictionsTotal = collector.RegisterCounter("predictions_total", "Sensitivity predictions", "status")
	m.PredictionDuration = collector.RegisterHistogram("prediction_duration_seconds", "Sensitivity prediction duration", DefaultPredictionDurationBuckets)
	m.CacheLookupsTotal = collector.RegisterCounter("cache_lookups_total", "Prediction cache lookups", "result")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")

	return m
}

// NewNopMetrics returns metrics that record nothing.
func NewNopMetrics() *AppMetrics {
	return NewAppMetrics(NewNopCollector())
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordSketchEdit counts one committed edit. Nil metrics are ignored.
func RecordSketchEdit(m *AppMetrics, operation string) {
	if m == nil {
		return
	}
	m.SketchEditsTotal.WithLabelValues(operation).Inc()
}

func RecordNotation(m *AppMetrics, duration time.Duration) {
	if m == nil {
		return
	}
	m.NotationsTotal.WithLabelValues().Inc()
	m.NotationDuration.WithLabelValues().Observe(duration.Seconds())
}

func SetActiveSessions(m *AppMetrics, n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.WithLabelValues().Set(float64(n))
}

func RecordChangeEvent(m *AppMetrics, notifier string, err error) {
	if m == nil {
		return
	}
	m.ChangeEventsTotal.WithLabelValues(notifier, statusLabel(err)).Inc()
}

func RecordPrediction(m *AppMetrics, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.PredictionsTotal.WithLabelValues(statusLabel(err)).Inc()
	m.PredictionDuration.WithLabelValues().Observe(duration.Seconds())
}

// RecordCacheLookup labels the lookup "hit", "miss" or "error".
func RecordCacheLookup(m *AppMetrics, result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func RecordHTTPRequest(m *AppMetrics, method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

//Personal.AI order the ending
