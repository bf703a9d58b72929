// Package metrics wires prometheus/client_golang the way the teacher's
// internal/platform/server/metrics.go does: promauto-registered
// CounterVec/HistogramVec instruments, served from the same mux as
// /healthz rather than a dedicated collector process.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

type Metrics struct {
	transactionsTotal    *prometheus.CounterVec
	authorizationDenials prometheus.Counter
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestLatency   *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		transactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "centralbank",
				Subsystem: "transactions",
				Name:      "applied_total",
				Help:      "Total transactions applied, partitioned by action and result.",
			},
			[]string{"action", "result"},
		),
		authorizationDenials: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "centralbank",
				Subsystem: "transactions",
				Name:      "authorization_denials_total",
				Help:      "Total transactions rejected as Unauthorized.",
			},
		),
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "centralbank",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests partitioned by method/path/status.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "centralbank",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration partitioned by method/path.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveTransaction records one applied (or failed) transaction.
func (m *Metrics) ObserveTransaction(action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.transactionsTotal.WithLabelValues(action, result).Inc()
	if errors.Is(err, domain.ErrUnauthorized) {
		m.authorizationDenials.Inc()
	}
}

type metricsResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *metricsResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Middleware records HTTP request count and latency by method/path/status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		mw := &metricsResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(mw, r)
		m.httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, statusClass(mw.status)).Inc()
		m.httpRequestLatency.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(started).Seconds())
	})
}

// Handler exposes the registered collectors on /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

func statusClass(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
