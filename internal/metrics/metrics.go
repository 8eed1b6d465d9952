package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Handler struct {
	LinesAppendedTotal    *prometheus.CounterVec
	LinesParsedTotal      *prometheus.CounterVec
	ViewQueriesTotal      *prometheus.CounterVec
	EvaluationsTotal      *prometheus.CounterVec
	ProblemsDetectedTotal *prometheus.CounterVec
	RequestLatency        *prometheus.HistogramVec
}

type Options struct {
	// Additional labels necessary
}

func New(name string) (*Handler, error) {
	return &Handler{
		LinesAppendedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "log_lines_appended_total",
			Help: "The total number of raw log lines appended to views",
		}, []string{"source"}),
		LinesParsedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "log_lines_parsed_total",
			Help: "The total number of log lines parsed, by outcome",
		}, []string{"outcome"}),
		ViewQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "log_view_queries_total",
			Help: "The total number of queries served by log views",
		}, []string{"op"}),
		EvaluationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "selinux_evaluations_total",
			Help: "The total number of consistency evaluations performed",
		}, []string{"verdict"}),
		ProblemsDetectedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "selinux_problems_detected_total",
			Help: "The total number of problems detected, by kind",
		}, []string{"kind"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "The latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}, nil
}

// IncLinesAppended adds the number of appended lines for a source.
func (h *Handler) IncLinesAppended(source string, n int) {
	h.LinesAppendedTotal.WithLabelValues(source).Add(float64(n))
}

// IncLinesParsed increments the parse counter with "matched" or "unmatched".
func (h *Handler) IncLinesParsed(outcome string) {
	h.LinesParsedTotal.WithLabelValues(outcome).Inc()
}

// IncViewQueries increments the query counter for an operation.
func (h *Handler) IncViewQueries(op string) {
	h.ViewQueriesTotal.WithLabelValues(op).Inc()
}

// IncEvaluations increments the evaluation counter with "ok" or "problems".
func (h *Handler) IncEvaluations(ok bool) {
	verdict := "ok"
	if !ok {
		verdict = "problems"
	}
	h.EvaluationsTotal.WithLabelValues(verdict).Inc()
}

// IncProblemsDetected increments the detected-problem counter for a kind.
func (h *Handler) IncProblemsDetected(kind string) {
	h.ProblemsDetectedTotal.WithLabelValues(kind).Inc()
}

// ObserveRequestLatency records the latency of one HTTP request.
func (h *Handler) ObserveRequestLatency(route, status string, duration time.Duration) {
	h.RequestLatency.WithLabelValues(route, status).Observe(duration.Seconds())
}
